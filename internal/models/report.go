package models

import (
	"fmt"
	"math"
	"time"
)

// CommunityPriceReport is a pump price submitted by an app user during a
// reporting cycle. Reports are never deleted; those outside the current
// cycle simply stop being "active".
type CommunityPriceReport struct {
	ID            int64     `json:"id"`
	StationID     string    `json:"station_id"`
	FuelType      FuelType  `json:"fuel_type"`
	Price         float64   `json:"price"`
	ReportedBy    string    `json:"reported_by"`
	ReportedAt    time.Time `json:"reported_at"`
	CycleID       string    `json:"cycle_id"`
	Confirmations int       `json:"confirmations"`
	Confidence    float64   `json:"confidence"`
}

// CycleFor returns the reporting-cycle identifier for a point in time.
// Cycles are ISO weeks, e.g. "2026-W35".
func CycleFor(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// DeriveConfidence scores a report from its confirmation count and age.
// Each confirmation adds weight up to a cap; the score decays linearly to
// half over the first three days since submission.
func (r *CommunityPriceReport) DeriveConfidence(now time.Time) float64 {
	base := math.Min(1.0, 0.25+0.15*float64(r.Confirmations))

	age := now.Sub(r.ReportedAt)
	if age < 0 {
		age = 0
	}
	const halfLife = 72 * time.Hour
	decay := 1.0
	if age < halfLife {
		decay = 1.0 - 0.5*(age.Hours()/halfLife.Hours())
	} else {
		decay = 0.5
	}

	return math.Round(base*decay*100) / 100
}

func (r *CommunityPriceReport) ToTuple() []any {
	return []any{
		r.StationID,
		string(r.FuelType),
		r.Price,
		r.ReportedBy,
		r.ReportedAt,
		r.CycleID,
		r.Confirmations,
	}
}
