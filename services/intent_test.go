package services

import (
	"strings"
	"testing"

	"dinereserve-server/models"

	"gorm.io/gorm"
)

func namedRestaurant(id uint, name, cuisine, city string) models.Restaurant {
	return models.Restaurant{Model: gorm.Model{ID: id}, Name: name, Cuisine: cuisine, City: city}
}

var chatRestaurants = []models.Restaurant{
	namedRestaurant(1, "Fog City Diner", "American", "San Francisco"),
	namedRestaurant(2, "Sushi Ran", "Japanese", "Sausalito"),
	namedRestaurant(3, "Chez Panisse", "California", "Berkeley"),
	namedRestaurant(4, "Tacolicious", "Mexican", "San Francisco"),
}

func TestExtractFilters(t *testing.T) {
	f := ExtractFilters("Can I get a table for 4 at a Japanese place in Sausalito tomorrow at 7:30 pm?")

	if !strings.EqualFold(f.Cuisine, "japanese") {
		t.Errorf("Cuisine = %q, want japanese", f.Cuisine)
	}
	if !strings.EqualFold(f.City, "sausalito tomorrow at") && !strings.HasPrefix(strings.ToLower(f.City), "sausalito") {
		t.Errorf("City = %q, want a Sausalito-prefixed match", f.City)
	}
	if f.Date == "" {
		t.Error("expected a date match for 'tomorrow'")
	}
	if f.Time == "" {
		t.Error("expected a time match for '7:30'")
	}
	if f.PartySize != 4 {
		t.Errorf("PartySize = %d, want 4", f.PartySize)
	}
	if !f.Any() {
		t.Error("filters with matches should report Any() = true")
	}
}

func TestExtractFiltersNoIntent(t *testing.T) {
	f := ExtractFilters("what is your cancellation policy?")
	if f.Any() {
		t.Errorf("small-talk message should extract nothing, got %+v", f)
	}
}

func TestExtractFiltersISODate(t *testing.T) {
	f := ExtractFilters("book 2026-09-04 please, table for 2")
	if f.Date != "2026-09-04" {
		t.Errorf("Date = %q, want 2026-09-04", f.Date)
	}
	if f.PartySize != 2 {
		t.Errorf("PartySize = %d, want 2", f.PartySize)
	}
}

func TestMatchRestaurantByName(t *testing.T) {
	r := MatchRestaurantByName("tell me more about sushi ran", chatRestaurants)
	if r == nil || r.ID != 2 {
		t.Fatalf("expected Sushi Ran (id 2), got %+v", r)
	}
	if MatchRestaurantByName("any good pizza?", chatRestaurants) != nil {
		t.Error("no restaurant name mentioned, expected nil")
	}
}

func TestFilterByIntent(t *testing.T) {
	got := FilterByIntent(ChatFilters{Cuisine: "mexican"}, chatRestaurants)
	if len(got) != 1 || got[0].Name != "Tacolicious" {
		t.Fatalf("cuisine filter = %+v, want only Tacolicious", got)
	}

	got = FilterByIntent(ChatFilters{City: "san francisco", Cuisine: "american"}, chatRestaurants)
	if len(got) != 1 || got[0].Name != "Fog City Diner" {
		t.Fatalf("ANDed filters = %+v, want only Fog City Diner", got)
	}

	got = FilterByIntent(ChatFilters{PartySize: 2}, chatRestaurants)
	if len(got) != len(chatRestaurants) {
		t.Errorf("party size alone should not constrain the listing, got %d matches", len(got))
	}
}

func TestRenderListing(t *testing.T) {
	text := RenderListing(ChatFilters{City: "San Francisco", Cuisine: "Mexican"},
		[]models.Restaurant{chatRestaurants[3]})
	if !strings.Contains(text, "in San Francisco") || !strings.Contains(text, "serving Mexican cuisine") {
		t.Errorf("listing header missing filters: %q", text)
	}
	if !strings.Contains(text, "- Tacolicious (Mexican, San Francisco)") {
		t.Errorf("listing missing restaurant line: %q", text)
	}

	if got := RenderListing(ChatFilters{Cuisine: "indian"}, nil); got != "Sorry, no restaurants match your criteria." {
		t.Errorf("empty listing = %q", got)
	}
}
