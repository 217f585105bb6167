package utils

import (
	"os"
	"strconv"
)

// SimulationMode reports whether the server runs with demo scaffolding:
// random slot occupancy, auto-confirmed bookings and the demo admin login.
func SimulationMode() bool {
	v, _ := strconv.ParseBool(os.Getenv("SIMULATION_MODE"))
	return v
}

// MaxPartyPerSlot is the per-slot party ceiling used by the ledger-backed
// occupancy check in production mode.
func MaxPartyPerSlot() int {
	if v, err := strconv.Atoi(os.Getenv("MAX_PARTY_PER_SLOT")); err == nil && v > 0 {
		return v
	}
	return 8
}
