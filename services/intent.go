package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"dinereserve-server/models"
)

// ChatFilters are the reservation slots the chat widget can pull out of a
// free-text message. Single-match, first-cuisine-found; no negation.
type ChatFilters struct {
	Cuisine   string
	City      string
	Date      string
	Time      string
	PartySize int
}

// Any reports whether at least one filter was extracted, i.e. the message
// looks like a booking or search request.
func (f ChatFilters) Any() bool {
	return f.Cuisine != "" || f.City != "" || f.Date != "" || f.Time != "" || f.PartySize > 0
}

var (
	cuisineRe = regexp.MustCompile(`(?i)(indian|japanese|mexican|american|california)`)
	cityRe    = regexp.MustCompile(`(?i)in ([a-zA-Z ]+)`)
	dateRe    = regexp.MustCompile(`(?i)tomorrow|today|\d{4}-\d{2}-\d{2}`)
	timeRe    = regexp.MustCompile(`(?i)(\d{1,2}:\d{2}|\d{1,2} ?(am|pm))`)
	partyRe   = regexp.MustCompile(`(?i)table for (\d+)`)
)

// ExtractFilters runs the slot regexes over a user message.
func ExtractFilters(text string) ChatFilters {
	var filters ChatFilters
	if m := cuisineRe.FindStringSubmatch(text); m != nil {
		filters.Cuisine = m[1]
	}
	if m := cityRe.FindStringSubmatch(text); m != nil {
		filters.City = strings.TrimSpace(m[1])
	}
	if m := dateRe.FindString(text); m != "" {
		filters.Date = m
	}
	if m := timeRe.FindStringSubmatch(text); m != nil {
		filters.Time = m[1]
	}
	if m := partyRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			filters.PartySize = n
		}
	}
	return filters
}

// MatchRestaurantByName returns the first restaurant whose name appears in
// the message (case-insensitive), or nil.
func MatchRestaurantByName(text string, restaurants []models.Restaurant) *models.Restaurant {
	lower := strings.ToLower(text)
	for i := range restaurants {
		if restaurants[i].Name == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(restaurants[i].Name)) {
			return &restaurants[i]
		}
	}
	return nil
}

// FilterByIntent narrows a restaurant set by the extracted cuisine and city
// (case-insensitive substrings, ANDed). Date, time and party size do not
// constrain the listing; they are acknowledged in the rendered reply only.
func FilterByIntent(filters ChatFilters, restaurants []models.Restaurant) []models.Restaurant {
	var matched []models.Restaurant
	for _, r := range restaurants {
		if filters.Cuisine != "" && !strings.Contains(strings.ToLower(r.Cuisine), strings.ToLower(filters.Cuisine)) {
			continue
		}
		if filters.City != "" && !strings.Contains(strings.ToLower(r.City), strings.ToLower(filters.City)) {
			continue
		}
		matched = append(matched, r)
	}
	return matched
}

// RenderListing formats the filtered restaurants as the chat reply text.
func RenderListing(filters ChatFilters, matched []models.Restaurant) string {
	if len(matched) == 0 {
		return "Sorry, no restaurants match your criteria."
	}

	var sb strings.Builder
	sb.WriteString("Here are some available restaurants")
	if filters.City != "" {
		sb.WriteString(" in " + filters.City)
	}
	if filters.Cuisine != "" {
		sb.WriteString(" serving " + filters.Cuisine + " cuisine")
	}
	sb.WriteString(":\n")
	for _, r := range matched {
		sb.WriteString(fmt.Sprintf("- %s (%s, %s)\n", r.Name, r.Cuisine, r.City))
	}
	return strings.TrimRight(sb.String(), "\n")
}
