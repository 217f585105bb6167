package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DayHours is a single day's operating window, "HH:MM" 24-hour local time.
type DayHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// WeeklyHours maps a lowercase English weekday name ("monday") to its hours.
// A missing day means the restaurant is closed that day.
type WeeklyHours map[string]DayHours

type Restaurant struct {
	gorm.Model
	ManagerID   uint    `json:"managerID" gorm:"not null;index"`
	Name        string  `json:"name"`
	Description string  `json:"description" gorm:"type:text"`
	Cuisine     string  `json:"cuisine" gorm:"index"`
	PriceRange  int     `json:"priceRange"` // 1 (cheap) .. 4 (fine dining)
	Street      string  `json:"street"`
	City        string  `json:"city" gorm:"index"`
	State       string  `json:"state"`
	Zip         string  `json:"zip"`
	Country     string  `json:"country"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Phone       string  `json:"phone"`
	Email       string  `json:"email"`
	Website     string  `json:"website"`

	Hours  datatypes.JSON `json:"hours"`  // WeeklyHours
	Images datatypes.JSON `json:"images"` // []string of URLs

	Rating        float32 `json:"rating"`
	ReviewCount   int     `json:"reviewCount"`
	BookingsToday int     `json:"bookingsToday"` // denormalized count of today's non-cancelled bookings

	IsApproved bool `json:"isApproved" gorm:"default:false;index"`
	Suspended  bool `json:"suspended" gorm:"default:false;index"`

	Manager  User      `json:"manager,omitempty" gorm:"foreignKey:ManagerID;references:ID"`
	Reviews  []Review  `json:"reviews,omitempty"`
	Bookings []Booking `json:"bookings,omitempty"`
}

// WeeklyHours decodes the Hours JSON column. Returns an empty map when unset.
func (r *Restaurant) WeeklyHours() WeeklyHours {
	hours := WeeklyHours{}
	if r.Hours != nil {
		json.Unmarshal(r.Hours, &hours)
	}
	return hours
}

// Bookable reports whether the restaurant can take reservations:
// it must be approved and not suspended.
func (r *Restaurant) Bookable() bool {
	return r.IsApproved && !r.Suspended
}

// Custom JSON marshaling to expand the Hours and Images columns into
// structured fields and to avoid circular manager references. Value
// receiver so both Restaurant and *Restaurant pick it up.
func (r Restaurant) MarshalJSON() ([]byte, error) {
	type Alias Restaurant
	aux := &struct {
		Hours   WeeklyHours `json:"hours"`
		Images  []string    `json:"images"`
		Manager *User       `json:"manager,omitempty"`
		*Alias
	}{
		Hours:  WeeklyHours{},
		Images: []string{},
		Alias:  (*Alias)(&r),
	}

	if r.Hours != nil {
		var hours WeeklyHours
		if err := json.Unmarshal(r.Hours, &hours); err == nil {
			aux.Hours = hours
		}
	}

	if r.Images != nil {
		var images []string
		if err := json.Unmarshal(r.Images, &images); err == nil {
			aux.Images = images
		}
	}

	if r.Manager.ID > 0 {
		managerCopy := r.Manager
		managerCopy.Restaurants = nil
		aux.Manager = &managerCopy
	}

	return json.Marshal(aux)
}
