package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// bookingTransitions is the legal status transition table. Cancelled and
// completed are terminal; nothing leaves them.
var bookingTransitions = map[string][]string{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCancelled, BookingStatusCompleted},
	BookingStatusCancelled: {},
	BookingStatusCompleted: {},
}

// ValidBookingStatus reports whether s is one of the four booking states.
func ValidBookingStatus(s string) bool {
	_, ok := bookingTransitions[s]
	return ok
}

// CanTransitionBooking reports whether a booking may move from one status
// to another.
func CanTransitionBooking(from, to string) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Booking struct {
	gorm.Model
	RestaurantID    uint      `json:"restaurantID" gorm:"not null;index"`
	UserID          uint      `json:"userID" gorm:"not null;index"`
	Date            time.Time `json:"-" gorm:"type:date;index"`
	Time            string    `json:"time" gorm:"type:varchar(5)"` // "HH:MM" slot string
	PartySize       int       `json:"partySize" gorm:"not null;check:party_size >= 1"`
	Status          string    `json:"status" gorm:"type:varchar(12);index"`
	SpecialRequests string    `json:"specialRequests,omitempty" gorm:"type:text"`

	Restaurant Restaurant `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	User       User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// DateString renders the booking's calendar date as "YYYY-MM-DD".
func (b *Booking) DateString() string {
	return b.Date.Format("2006-01-02")
}

// IsForDate reports whether the booking falls on the given day.
func (b *Booking) IsForDate(day time.Time) bool {
	return b.DateString() == day.Format("2006-01-02")
}

// NextBookingsToday applies a delta to a restaurant's bookings-today
// counter. The counter never goes below zero.
func NextBookingsToday(current, delta int) int {
	next := current + delta
	if next < 0 {
		return 0
	}
	return next
}

// CountBookingsForDay tallies non-cancelled bookings per restaurant for a
// single calendar day. Ledger truth for the bookings-today counters.
func CountBookingsForDay(bookings []Booking, day time.Time) map[uint]int {
	counts := make(map[uint]int)
	for i := range bookings {
		if bookings[i].Status == BookingStatusCancelled {
			continue
		}
		if !bookings[i].IsForDate(day) {
			continue
		}
		counts[bookings[i].RestaurantID]++
	}
	return counts
}

// MarshalJSON flattens the calendar date to "YYYY-MM-DD" and drops
// unloaded associations. Value receiver so both Booking and *Booking
// pick it up.
func (b Booking) MarshalJSON() ([]byte, error) {
	type Alias Booking
	aux := &struct {
		Date       string      `json:"date"`
		Restaurant *Restaurant `json:"restaurant,omitempty"`
		User       *User       `json:"user,omitempty"`
		*Alias
	}{
		Date:  b.DateString(),
		Alias: (*Alias)(&b),
	}

	if b.Restaurant.ID > 0 {
		restaurantCopy := b.Restaurant
		restaurantCopy.Bookings = nil
		aux.Restaurant = &restaurantCopy
	}
	if b.User.ID > 0 {
		userCopy := b.User
		userCopy.Restaurants = nil
		aux.User = &userCopy
	}

	return json.Marshal(aux)
}
