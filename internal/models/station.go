package models

import (
	"log"
	"time"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Amenities is a set of named boolean flags (e.g. "convenience_store",
// "air_pump"). The flag names are validated at the store boundary; the
// ranking engine never inspects them.
type Amenities map[string]bool

var knownAmenities = map[string]struct{}{
	"convenience_store": {},
	"restroom":          {},
	"air_pump":          {},
	"car_wash":          {},
	"atm":               {},
	"ev_charging":       {},
	"full_service":      {},
	"open_24_hours":     {},
}

func (a Amenities) Validate() error {
	for name := range a {
		if _, ok := knownAmenities[name]; !ok {
			return errors.Newf("unknown amenity flag: %q", name)
		}
	}
	return nil
}

type DailyHours struct {
	Open      string `json:"open"`
	Close     string `json:"close"`
	Is24Hours bool   `json:"is_24_hours"`
}

// OperatingHours maps lowercase weekday names to that day's hours.
type OperatingHours map[string]DailyHours

var weekdays = map[string]struct{}{
	"monday": {}, "tuesday": {}, "wednesday": {}, "thursday": {},
	"friday": {}, "saturday": {}, "sunday": {},
}

func (h OperatingHours) Validate() error {
	for day := range h {
		if _, ok := weekdays[day]; !ok {
			return errors.Newf("unknown weekday: %q", day)
		}
	}
	return nil
}

type Station struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Brand          string         `json:"brand"`
	Address        string         `json:"address"`
	City           string         `json:"city"`
	Province       string         `json:"province"`
	Latitude       float64        `json:"latitude"`
	Longitude      float64        `json:"longitude"`
	Active         bool           `json:"active"`
	Amenities      Amenities      `json:"amenities,omitempty"`
	OperatingHours OperatingHours `json:"operating_hours,omitempty"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (s *Station) Location() LatLng {
	return LatLng{Latitude: s.Latitude, Longitude: s.Longitude}
}

func (s *Station) ToTuple() []any {
	return []any{
		s.ID,
		s.Name,
		s.Brand,
		s.Address,
		s.City,
		s.Province,
		s.Latitude,
		s.Longitude,
		s.Active,
		toJSON(s.Amenities),
		toJSON(s.OperatingHours),
		s.UpdatedAt,
	}
}

func toJSON(v any) string {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		log.Fatalf("Error marshaling to JSON: %v", err)
	}
	return string(jsonBytes)
}
