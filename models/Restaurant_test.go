package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRestaurantJSONExpandsColumns(t *testing.T) {
	restaurant := Restaurant{
		ManagerID: 1,
		Name:      "Zuni Cafe",
		Cuisine:   "California",
		Hours:     []byte(`{"monday":{"open":"11:00","close":"22:00"}}`),
		Images:    []byte(`["https://img.example/1.jpg"]`),
	}

	// Value and pointer must behave identically; handlers pass either.
	for name, v := range map[string]interface{}{"value": restaurant, "pointer": &restaurant} {
		out, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("%s: marshal: %v", name, err)
		}
		s := string(out)
		if !strings.Contains(s, `"hours":{"monday":{"open":"11:00","close":"22:00"}}`) {
			t.Errorf("%s: hours column not expanded: %s", name, s)
		}
		if !strings.Contains(s, `"images":["https://img.example/1.jpg"]`) {
			t.Errorf("%s: images column not expanded: %s", name, s)
		}
	}
}

func TestRestaurantJSONDefaultsAndManagerScrub(t *testing.T) {
	restaurant := Restaurant{Name: "Benu"}
	out, err := json.Marshal(restaurant)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(out)

	if !strings.Contains(s, `"hours":{}`) {
		t.Errorf("unset hours should render as an empty object: %s", s)
	}
	if !strings.Contains(s, `"images":[]`) {
		t.Errorf("unset images should render as an empty array: %s", s)
	}
	if strings.Contains(s, `"manager"`) {
		t.Errorf("unloaded manager leaked into JSON: %s", s)
	}
}

func TestBookableRequiresApprovalAndNoSuspension(t *testing.T) {
	cases := []struct {
		approved, suspended, want bool
	}{
		{true, false, true},
		{false, false, false},
		{true, true, false},
		{false, true, false},
	}
	for _, c := range cases {
		r := Restaurant{IsApproved: c.approved, Suspended: c.suspended}
		if got := r.Bookable(); got != c.want {
			t.Errorf("Bookable(approved=%v, suspended=%v) = %v, want %v", c.approved, c.suspended, got, c.want)
		}
	}
}
