package services

import (
	"testing"
	"time"

	"dinereserve-server/models"
)

type fixedOccupancy struct{ available bool }

func (f fixedOccupancy) SlotAvailable(uint, time.Time, string, int) bool { return f.available }

// recordingOccupancy captures the arguments the generator passes through.
type recordingOccupancy struct {
	partySizes []int
	slots      []string
}

func (r *recordingOccupancy) SlotAvailable(_ uint, _ time.Time, slot string, partySize int) bool {
	r.partySizes = append(r.partySizes, partySize)
	r.slots = append(r.slots, slot)
	return true
}

var weekHours = models.WeeklyHours{
	"monday": {Open: "11:00", Close: "22:00"},
	"friday": {Open: "17:30", Close: "22:30"},
}

// 2026-08-31 is a Monday.
var aMonday = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

func TestGenerateTimeSlotsGrid(t *testing.T) {
	slots := GenerateTimeSlots(weekHours, 4, aMonday, 2, fixedOccupancy{true})

	if len(slots) != 23 {
		t.Fatalf("expected 23 slots for 11:00-22:00, got %d", len(slots))
	}
	if slots[0].Time != "11:00" {
		t.Errorf("first slot = %q, want 11:00", slots[0].Time)
	}
	if slots[len(slots)-1].Time != "22:00" {
		t.Errorf("last slot = %q, want 22:00 (closing time slot is included)", slots[len(slots)-1].Time)
	}

	// Exactly 30 minutes apart, earliest first.
	for i := 1; i < len(slots); i++ {
		prev, _ := time.Parse("15:04", slots[i-1].Time)
		cur, _ := time.Parse("15:04", slots[i].Time)
		if cur.Sub(prev) != SlotGranularity {
			t.Fatalf("slots %q -> %q not %v apart", slots[i-1].Time, slots[i].Time, SlotGranularity)
		}
	}
}

func TestGenerateTimeSlotsMissingDay(t *testing.T) {
	aTuesday := aMonday.AddDate(0, 0, 1)
	if slots := GenerateTimeSlots(weekHours, 4, aTuesday, 2, fixedOccupancy{true}); len(slots) != 0 {
		t.Errorf("day without hours should yield zero slots, got %d", len(slots))
	}
}

func TestGenerateTimeSlotsHalfHourOpen(t *testing.T) {
	aFriday := aMonday.AddDate(0, 0, 4)
	slots := GenerateTimeSlots(weekHours, 4, aFriday, 2, fixedOccupancy{true})
	if len(slots) != 11 {
		t.Fatalf("expected 11 slots for 17:30-22:30, got %d", len(slots))
	}
	if slots[0].Time != "17:30" || slots[len(slots)-1].Time != "22:30" {
		t.Errorf("grid = %q..%q, want 17:30..22:30", slots[0].Time, slots[len(slots)-1].Time)
	}
}

func TestGenerateTimeSlotsPassesPartySizeThrough(t *testing.T) {
	rec := &recordingOccupancy{}
	GenerateTimeSlots(weekHours, 4, aMonday, 6, rec)
	for _, size := range rec.partySizes {
		if size != 6 {
			t.Fatalf("occupancy checker saw party size %d, want 6", size)
		}
	}
}

func TestGenerateTimeSlotsUnavailableFlag(t *testing.T) {
	slots := GenerateTimeSlots(weekHours, 4, aMonday, 2, fixedOccupancy{false})
	for _, s := range slots {
		if s.Available {
			t.Fatalf("slot %s should be unavailable", s.Time)
		}
	}
}

func TestGenerateTimeSlotsMalformedHours(t *testing.T) {
	bad := models.WeeklyHours{"monday": {Open: "22:00", Close: "11:00"}}
	if slots := GenerateTimeSlots(bad, 4, aMonday, 2, fixedOccupancy{true}); slots != nil {
		t.Errorf("close before open should yield no slots, got %d", len(slots))
	}
}

func TestRandomOccupancyIsDeterministicWithSeed(t *testing.T) {
	a := GenerateTimeSlots(weekHours, 4, aMonday, 2, NewSeededRandomOccupancy(42))
	b := GenerateTimeSlots(weekHours, 4, aMonday, 2, NewSeededRandomOccupancy(42))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seeded grids diverge at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}
