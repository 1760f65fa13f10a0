package models

import "time"

// BestPrice is one entry of the ranked output: a station, a fuel type, the
// resolved display price, and the provenance of whichever source won
// arbitration. Never persisted.
type BestPrice struct {
	StationID string   `json:"station_id"`
	Name      string   `json:"name"`
	Brand     string   `json:"brand"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	Province  string   `json:"province"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	FuelType  FuelType `json:"fuel_type"`

	// Price is the community-reported price. Nil for reference-only
	// entries, which display the min/common/max triple instead.
	Price *float64 `json:"price"`

	ReportedBy    *string    `json:"reported_by,omitempty"`
	ReportedAt    *time.Time `json:"reported_at,omitempty"`
	CycleID       *string    `json:"cycle_id,omitempty"`
	Confirmations *int       `json:"confirmations,omitempty"`
	Confidence    *float64   `json:"confidence,omitempty"`

	RefMin        *float64   `json:"ref_min,omitempty"`
	RefCommon     *float64   `json:"ref_common,omitempty"`
	RefMax        *float64   `json:"ref_max,omitempty"`
	RefWeekOf     *time.Time `json:"ref_week_of,omitempty"`
	RefSourceType *string    `json:"ref_source_type,omitempty"`

	DistanceKm float64 `json:"distance_km"`
}

type Stats struct {
	Count        int      `json:"count"`
	LowestPrice  *float64 `json:"lowest_price"`
	HighestPrice *float64 `json:"highest_price"`
	AveragePrice *float64 `json:"average_price"`
}

type BestPricesResponse struct {
	Results       []BestPrice `json:"results"`
	Statistics    *Stats      `json:"statistics"`
	ReferenceWeek *time.Time  `json:"reference_week,omitempty"`
	Attribution   []string    `json:"attribution"`
}
