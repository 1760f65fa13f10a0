package models

import "time"

const (
	SourceTypeBrand = "brand"
	SourceTypeArea  = "area"
)

// ReferencePriceRecord is one row of the weekly official price bulletin:
// a min/common/max triple for a station and fuel type. Records are
// append-only; later weeks supersede earlier ones without overwriting.
type ReferencePriceRecord struct {
	StationID  string    `json:"station_id"`
	FuelType   FuelType  `json:"fuel_type"`
	Min        float64   `json:"min"`
	Common     float64   `json:"common"`
	Max        float64   `json:"max"`
	WeekOf     time.Time `json:"week_of"`
	SourceType string    `json:"source_type"`
}

func (r *ReferencePriceRecord) ToTuple() []any {
	return []any{
		r.StationID,
		string(r.FuelType),
		r.Min,
		r.Common,
		r.Max,
		r.WeekOf,
		r.SourceType,
	}
}

type MetaData struct {
	BatchNumber  int  `json:"batch_number"`
	BatchSize    int  `json:"batch_size"`
	TotalBatches int  `json:"total_batches"`
	Cached       bool `json:"cached"`
}

type ReferencePricesResponse struct {
	Success  bool                   `json:"success"`
	Data     []ReferencePriceRecord `json:"data"`
	Message  string                 `json:"message,omitempty"`
	MetaData MetaData               `json:"metadata"`
}
