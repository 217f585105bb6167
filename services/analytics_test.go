package services

import (
	"testing"
	"time"

	"dinereserve-server/models"

	"gorm.io/gorm"
)

func day(now time.Time, offset int) time.Time {
	return now.AddDate(0, 0, offset)
}

func booking(id uint, restaurantID uint, date time.Time, party int, status string) models.Booking {
	return models.Booking{
		Model:        gorm.Model{ID: id},
		RestaurantID: restaurantID,
		UserID:       1,
		Date:         date,
		Time:         "19:00",
		PartySize:    party,
		Status:       status,
	}
}

func restaurant(id uint, name string) models.Restaurant {
	return models.Restaurant{Model: gorm.Model{ID: id}, Name: name}
}

func TestBuildAnalyticsCounts(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	bookings := []models.Booking{
		booking(1, 1, day(now, -1), 2, models.BookingStatusCompleted),
		booking(2, 1, day(now, -1), 4, models.BookingStatusCancelled),
		booking(3, 2, day(now, -5), 6, models.BookingStatusConfirmed),
		booking(4, 2, day(now, -40), 8, models.BookingStatusCompleted), // outside window
	}
	restaurants := []models.Restaurant{restaurant(1, "Fog City Diner"), restaurant(2, "Sushi Ran")}

	a := BuildAnalytics(bookings, restaurants, now)

	if a.TotalBookings != 3 {
		t.Errorf("TotalBookings = %d, want 3 (40-day-old booking excluded)", a.TotalBookings)
	}
	if a.CompletedBookings != 1 || a.CancelledBookings != 1 {
		t.Errorf("completed/cancelled = %d/%d, want 1/1", a.CompletedBookings, a.CancelledBookings)
	}
	if want := (2.0 + 4.0 + 6.0) / 3.0; a.AveragePartySize != want {
		t.Errorf("AveragePartySize = %v, want %v", a.AveragePartySize, want)
	}
}

func TestBuildAnalyticsByDayChronological(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		booking(1, 1, day(now, -2), 2, models.BookingStatusConfirmed),
		booking(2, 1, day(now, -2), 2, models.BookingStatusConfirmed),
		booking(3, 1, day(now, 0), 3, models.BookingStatusPending),
	}

	a := BuildAnalytics(bookings, []models.Restaurant{restaurant(1, "Benu")}, now)

	if len(a.BookingsByDay) != AnalyticsWindowDays {
		t.Fatalf("BookingsByDay has %d buckets, want %d", len(a.BookingsByDay), AnalyticsWindowDays)
	}
	first, last := a.BookingsByDay[0], a.BookingsByDay[len(a.BookingsByDay)-1]
	if first.Date >= last.Date {
		t.Errorf("buckets not oldest-first: %s .. %s", first.Date, last.Date)
	}
	if last.Date != now.Format("2006-01-02") || last.Count != 1 {
		t.Errorf("today's bucket = %+v, want {%s 1}", last, now.Format("2006-01-02"))
	}
	twoDaysAgo := day(now, -2).Format("2006-01-02")
	found := false
	for _, d := range a.BookingsByDay {
		if d.Date == twoDaysAgo {
			found = true
			if d.Count != 2 {
				t.Errorf("bucket %s count = %d, want 2", d.Date, d.Count)
			}
		}
	}
	if !found {
		t.Errorf("missing bucket for %s", twoDaysAgo)
	}
}

func TestBuildAnalyticsTopRestaurants(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	restaurants := []models.Restaurant{
		restaurant(1, "A"), restaurant(2, "B"), restaurant(3, "C"),
		restaurant(4, "D"), restaurant(5, "E"), restaurant(6, "F"),
	}
	var bookings []models.Booking
	id := uint(1)
	addBookings := func(restaurantID uint, n int) {
		for i := 0; i < n; i++ {
			bookings = append(bookings, booking(id, restaurantID, day(now, -1), 2, models.BookingStatusConfirmed))
			id++
		}
	}
	addBookings(3, 5)
	addBookings(1, 3)
	addBookings(2, 3) // ties with restaurant 1; id order must win
	addBookings(5, 1)

	a := BuildAnalytics(bookings, restaurants, now)

	if len(a.TopRestaurants) != 5 {
		t.Fatalf("TopRestaurants has %d entries, want 5", len(a.TopRestaurants))
	}
	wantOrder := []uint{3, 1, 2, 5}
	for i, want := range wantOrder {
		if a.TopRestaurants[i].RestaurantID != want {
			t.Errorf("TopRestaurants[%d] = %d, want %d", i, a.TopRestaurants[i].RestaurantID, want)
		}
	}
	// zero-count tail is still stable by id
	if a.TopRestaurants[4].RestaurantID != 4 {
		t.Errorf("TopRestaurants[4] = %d, want 4", a.TopRestaurants[4].RestaurantID)
	}
}

func TestBuildAnalyticsEmptySnapshot(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	a := BuildAnalytics(nil, nil, now)
	if a.TotalBookings != 0 || a.AveragePartySize != 0 {
		t.Errorf("empty snapshot should aggregate to zero, got %+v", a)
	}
	if len(a.BookingsByDay) != AnalyticsWindowDays {
		t.Errorf("empty snapshot still buckets %d days, got %d", AnalyticsWindowDays, len(a.BookingsByDay))
	}
}
