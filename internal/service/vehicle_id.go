package service

import (
	"fmt"
	"strconv"
	"strings"
)

// vehicleIDPrefix is the fixed prefix of every human-readable vehicle
// identifier (VEH-0001, VEH-0025, ...).
const vehicleIDPrefix = "VEH-"

// FormatVehicleID renders a sequence number as a vehicle identifier,
// zero-padded to 4 digits. Numbers beyond 9999 simply widen (VEH-10000).
func FormatVehicleID(n int) string {
	return fmt.Sprintf("%s%04d", vehicleIDPrefix, n)
}

// parseVehicleIDNumber extracts the numeric suffix from a vehicle identifier.
// Returns 0 and false when the identifier does not match the VEH-NNNN shape.
func parseVehicleIDNumber(id string) (int, bool) {
	digits, ok := strings.CutPrefix(id, vehicleIDPrefix)
	if !ok || digits == "" {
		return 0, false
	}

	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, false
	}

	return n, true
}

// NextVehicleID derives the identifier following last. An empty or
// unparseable last identifier starts the sequence at VEH-0001.
//
// Deriving the next identifier from a read is inherently racy: two concurrent
// creates can both observe the same last identifier. The unique constraint on
// the column catches the collision, and the create path retries with a fresh
// read.
func NextVehicleID(last string) string {
	n, ok := parseVehicleIDNumber(last)
	if !ok {
		return FormatVehicleID(1)
	}
	return FormatVehicleID(n + 1)
}
