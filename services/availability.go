package services

import (
	"math/rand"
	"strings"
	"time"

	"dinereserve-server/models"

	"gorm.io/gorm"
)

// SlotGranularity is the fixed step used to enumerate bookable times
// between a restaurant's open and close time.
const SlotGranularity = 30 * time.Minute

// TimeSlot is a derived, never persisted bookable time for one day.
type TimeSlot struct {
	Time      string `json:"time"` // "HH:MM"
	Available bool   `json:"available"`
}

// OccupancyChecker answers whether a (restaurant, date, time, partySize)
// slot can still take the requested party.
type OccupancyChecker interface {
	SlotAvailable(restaurantID uint, date time.Time, slot string, partySize int) bool
}

// GenerateTimeSlots enumerates the bookable grid for one restaurant and
// calendar date: slots start at the day's opening time and step by
// SlotGranularity while current <= close, so a slot exactly at closing
// time is included. A day without an hours entry yields no slots.
func GenerateTimeSlots(hours models.WeeklyHours, restaurantID uint, date time.Time, partySize int, checker OccupancyChecker) []TimeSlot {
	day := strings.ToLower(date.Weekday().String())
	dayHours, ok := hours[day]
	if !ok {
		return nil
	}

	open, openErr := time.Parse("15:04", dayHours.Open)
	closeAt, closeErr := time.Parse("15:04", dayHours.Close)
	if openErr != nil || closeErr != nil || closeAt.Before(open) {
		return nil
	}

	var slots []TimeSlot
	for current := open; !current.After(closeAt); current = current.Add(SlotGranularity) {
		slot := current.Format("15:04")
		slots = append(slots, TimeSlot{
			Time:      slot,
			Available: checker.SlotAvailable(restaurantID, date, slot, partySize),
		})
	}
	return slots
}

// RandomOccupancy is the simulation-mode placeholder: each slot is an
// independent draw with 70% probability of being available. The party size
// is accepted for interface symmetry but ignored.
type RandomOccupancy struct {
	rng *rand.Rand
}

func NewRandomOccupancy() *RandomOccupancy {
	return &RandomOccupancy{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeededRandomOccupancy pins the RNG for reproducible grids.
func NewSeededRandomOccupancy(seed int64) *RandomOccupancy {
	return &RandomOccupancy{rng: rand.New(rand.NewSource(seed))}
}

func (o *RandomOccupancy) SlotAvailable(uint, time.Time, string, int) bool {
	return o.rng.Float64() > 0.3
}

// LedgerOccupancy is the production check: a slot can take a party while
// the summed size of its non-cancelled bookings plus the request stays
// within the per-slot ceiling.
type LedgerOccupancy struct {
	DB              *gorm.DB
	MaxPartyPerSlot int
}

func (o *LedgerOccupancy) SlotAvailable(restaurantID uint, date time.Time, slot string, partySize int) bool {
	var booked int64
	o.DB.Model(&models.Booking{}).
		Select("COALESCE(SUM(party_size), 0)").
		Where("restaurant_id = ? AND date = ? AND time = ? AND status != ?",
			restaurantID, date.Format("2006-01-02"), slot, models.BookingStatusCancelled).
		Scan(&booked)
	return int(booked)+partySize <= o.MaxPartyPerSlot
}
