package services

import (
	"strings"

	"dinereserve-server/models"
)

// MatchesSearch reports whether a restaurant satisfies the catalog search
// filters. Location is a case-insensitive substring matched against city,
// state or zip (any of the three); cuisine is a case-insensitive substring
// of the restaurant's cuisine. Both must hold when present; empty filters
// impose no constraint.
func MatchesSearch(r models.Restaurant, location, cuisine string) bool {
	if location != "" {
		loc := strings.ToLower(location)
		if !strings.Contains(strings.ToLower(r.City), loc) &&
			!strings.Contains(strings.ToLower(r.State), loc) &&
			!strings.Contains(r.Zip, location) {
			return false
		}
	}
	if cuisine != "" && !strings.Contains(strings.ToLower(r.Cuisine), strings.ToLower(cuisine)) {
		return false
	}
	return true
}

// FilterRestaurants applies MatchesSearch over a catalog slice, keeping
// input order.
func FilterRestaurants(restaurants []models.Restaurant, location, cuisine string) []models.Restaurant {
	matched := make([]models.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if MatchesSearch(r, location, cuisine) {
			matched = append(matched, r)
		}
	}
	return matched
}
