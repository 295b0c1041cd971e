package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatVehicleID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "VEH-0001", FormatVehicleID(1))
	assert.Equal(t, "VEH-0025", FormatVehicleID(25))
	assert.Equal(t, "VEH-9999", FormatVehicleID(9999))
	assert.Equal(t, "VEH-10000", FormatVehicleID(10000), "identifiers widen past 9999")
}

func TestNextVehicleID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		last string
		want string
	}{
		{"empty store starts at one", "", "VEH-0001"},
		{"increments", "VEH-0003", "VEH-0004"},
		{"carries over digit boundary", "VEH-0009", "VEH-0010"},
		{"widens past four digits", "VEH-9999", "VEH-10000"},
		{"keeps counting when wide", "VEH-10000", "VEH-10001"},
		{"unparseable restarts", "garbage", "VEH-0001"},
		{"missing digits restarts", "VEH-", "VEH-0001"},
		{"wrong prefix restarts", "CAR-0007", "VEH-0001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextVehicleID(tt.last))
		})
	}
}
