package models

import "github.com/cockroachdb/errors"

type FuelType string

const (
	Gasoline91 FuelType = "gasoline_91"
	Gasoline95 FuelType = "gasoline_95"
	Gasoline97 FuelType = "gasoline_97"
	Diesel     FuelType = "diesel"
	Kerosene   FuelType = "kerosene"
)

// AllFuelTypes is the universe considered when no specific fuel type is
// requested ("cheapest per station, any fuel").
var AllFuelTypes = []FuelType{Gasoline91, Gasoline95, Gasoline97, Diesel, Kerosene}

func ParseFuelType(s string) (FuelType, error) {
	for _, ft := range AllFuelTypes {
		if s == string(ft) {
			return ft, nil
		}
	}
	return "", errors.Newf("unknown fuel type: %q", s)
}
