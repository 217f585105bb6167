package services

import (
	"time"

	"dinereserve-server/models"

	"golang.org/x/exp/slices"
)

// AnalyticsWindowDays is the trailing window the dashboard aggregates over.
const AnalyticsWindowDays = 30

type DayCount struct {
	Date  string `json:"date"` // "YYYY-MM-DD"
	Count int    `json:"count"`
}

type RestaurantCount struct {
	RestaurantID uint   `json:"restaurantID"`
	Name         string `json:"name"`
	Count        int    `json:"count"`
}

type Analytics struct {
	TotalBookings        int               `json:"totalBookings"`
	CompletedBookings    int               `json:"completedBookings"`
	CancelledBookings    int               `json:"cancelledBookings"`
	AveragePartySize     float64           `json:"averagePartySize"`
	BookingsByDay        []DayCount        `json:"bookingsByDay"` // oldest -> newest
	BookingsByRestaurant []RestaurantCount `json:"bookingsByRestaurant"`
	TopRestaurants       []RestaurantCount `json:"topRestaurants"`
}

// BuildAnalytics aggregates a booking snapshot over the trailing 30-day
// window ending at now. Pure function: no queries, no stored state.
func BuildAnalytics(bookings []models.Booking, restaurants []models.Restaurant, now time.Time) Analytics {
	windowStart := now.AddDate(0, 0, -AnalyticsWindowDays)

	var recent []models.Booking
	for _, b := range bookings {
		if b.Date.Before(windowStart) || b.Date.After(now) {
			continue
		}
		recent = append(recent, b)
	}

	analytics := Analytics{TotalBookings: len(recent)}

	totalParty := 0
	countsByDate := make(map[string]int)
	countsByRestaurant := make(map[uint]int)
	for _, b := range recent {
		totalParty += b.PartySize
		countsByDate[b.DateString()]++
		countsByRestaurant[b.RestaurantID]++
		switch b.Status {
		case models.BookingStatusCompleted:
			analytics.CompletedBookings++
		case models.BookingStatusCancelled:
			analytics.CancelledBookings++
		}
	}

	if len(recent) > 0 {
		analytics.AveragePartySize = float64(totalParty) / float64(len(recent))
	}

	// One bucket per calendar day, oldest first.
	analytics.BookingsByDay = make([]DayCount, 0, AnalyticsWindowDays)
	for i := AnalyticsWindowDays - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format("2006-01-02")
		analytics.BookingsByDay = append(analytics.BookingsByDay, DayCount{Date: date, Count: countsByDate[date]})
	}

	analytics.BookingsByRestaurant = make([]RestaurantCount, 0, len(restaurants))
	for _, r := range restaurants {
		analytics.BookingsByRestaurant = append(analytics.BookingsByRestaurant, RestaurantCount{
			RestaurantID: r.ID,
			Name:         r.Name,
			Count:        countsByRestaurant[r.ID],
		})
	}

	// Top five by booking count, descending; ties break stably by the
	// restaurant id ordering established above.
	top := slices.Clone(analytics.BookingsByRestaurant)
	slices.SortStableFunc(top, func(a, b RestaurantCount) int {
		return b.Count - a.Count
	})
	if len(top) > 5 {
		top = top[:5]
	}
	analytics.TopRestaurants = top

	return analytics
}
