package services

import (
	"testing"

	"dinereserve-server/models"
)

func searchCatalog() []models.Restaurant {
	return []models.Restaurant{
		{Name: "Trattoria Roma", Cuisine: "Italian", City: "San Francisco", State: "CA", Zip: "94109"},
		{Name: "Sushi Zen", Cuisine: "Japanese", City: "Oakland", State: "CA", Zip: "94607"},
		{Name: "Casa Azul", Cuisine: "Mexican", City: "Portland", State: "OR", Zip: "97201"},
	}
}

func TestMatchesSearchCuisineSubstring(t *testing.T) {
	catalog := searchCatalog()

	got := FilterRestaurants(catalog, "", "ital")
	if len(got) != 1 || got[0].Name != "Trattoria Roma" {
		t.Fatalf("cuisine 'ital' matched %v, want Trattoria Roma only", names(got))
	}

	if got := FilterRestaurants(catalog, "", "ITALIAN"); len(got) != 1 {
		t.Fatalf("cuisine match should be case-insensitive, got %v", names(got))
	}
}

func TestMatchesSearchLocationAcrossCityStateZip(t *testing.T) {
	catalog := searchCatalog()

	if got := FilterRestaurants(catalog, "94109", ""); len(got) != 1 || got[0].Zip != "94109" {
		t.Fatalf("zip lookup matched %v, want the 94109 restaurant", names(got))
	}

	if got := FilterRestaurants(catalog, "oakland", ""); len(got) != 1 || got[0].City != "Oakland" {
		t.Fatalf("city lookup matched %v, want Oakland", names(got))
	}

	// State is part of the same OR group.
	if got := FilterRestaurants(catalog, "OR", ""); len(got) != 1 || got[0].State != "OR" {
		t.Fatalf("state lookup matched %v, want the Oregon restaurant", names(got))
	}
}

func TestMatchesSearchFiltersAndTogether(t *testing.T) {
	catalog := searchCatalog()

	if got := FilterRestaurants(catalog, "san francisco", "japanese"); len(got) != 0 {
		t.Fatalf("conflicting filters matched %v, want none", names(got))
	}

	got := FilterRestaurants(catalog, "CA", "japanese")
	if len(got) != 1 || got[0].Name != "Sushi Zen" {
		t.Fatalf("combined filters matched %v, want Sushi Zen", names(got))
	}
}

func TestMatchesSearchEmptyFiltersMatchEverything(t *testing.T) {
	catalog := searchCatalog()

	got := FilterRestaurants(catalog, "", "")
	if len(got) != len(catalog) {
		t.Fatalf("empty filters matched %d restaurants, want %d", len(got), len(catalog))
	}
	for i := range got {
		if got[i].Name != catalog[i].Name {
			t.Fatalf("input order not preserved at %d: %s", i, got[i].Name)
		}
	}
}

func names(restaurants []models.Restaurant) []string {
	out := make([]string, 0, len(restaurants))
	for _, r := range restaurants {
		out = append(out, r.Name)
	}
	return out
}
