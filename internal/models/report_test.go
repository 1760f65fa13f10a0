package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCycleFor(t *testing.T) {
	assert.Equal(t, "2026-W35", CycleFor(time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)))
	// ISO weeks at the year boundary can roll into the next year's first week
	assert.Equal(t, "2025-W01", CycleFor(time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC)))
}

func TestDeriveConfidenceMonotoneInConfirmations(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	prev := -1.0
	for confirmations := 0; confirmations <= 6; confirmations++ {
		r := CommunityPriceReport{ReportedAt: now, Confirmations: confirmations}
		score := r.DeriveConfidence(now)
		assert.GreaterOrEqual(t, score, prev)
		assert.LessOrEqual(t, score, 1.0)
		prev = score
	}
}

func TestDeriveConfidenceDecaysWithAge(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	fresh := CommunityPriceReport{ReportedAt: now, Confirmations: 3}
	stale := CommunityPriceReport{ReportedAt: now.Add(-48 * time.Hour), Confirmations: 3}
	ancient := CommunityPriceReport{ReportedAt: now.Add(-30 * 24 * time.Hour), Confirmations: 3}

	assert.Greater(t, fresh.DeriveConfidence(now), stale.DeriveConfidence(now))
	assert.GreaterOrEqual(t, stale.DeriveConfidence(now), ancient.DeriveConfidence(now))
}

func TestAmenitiesValidate(t *testing.T) {
	assert.NoError(t, Amenities{"car_wash": true, "atm": false}.Validate())
	assert.Error(t, Amenities{"time_machine": true}.Validate())
}

func TestOperatingHoursValidate(t *testing.T) {
	assert.NoError(t, OperatingHours{"monday": {Open: "06:00", Close: "22:00"}}.Validate())
	assert.Error(t, OperatingHours{"someday": {}}.Validate())
}

func TestParseFuelType(t *testing.T) {
	ft, err := ParseFuelType("diesel")
	assert.NoError(t, err)
	assert.Equal(t, Diesel, ft)

	_, err = ParseFuelType("rocket_fuel")
	assert.Error(t, err)
}
