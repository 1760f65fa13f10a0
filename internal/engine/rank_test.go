package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcarag/presyo-api/internal/models"
)

func point(stationId string, fuel models.FuelType, distanceKm float64, communityPrice *float64, refMin *float64) pricePoint {
	p := pricePoint{
		station:    models.Station{ID: stationId},
		fuelType:   fuel,
		distanceKm: distanceKm,
	}
	if communityPrice != nil {
		p.report = &models.CommunityPriceReport{
			StationID: stationId,
			FuelType:  fuel,
			Price:     *communityPrice,
		}
	}
	if refMin != nil {
		p.reference = &models.ReferencePriceRecord{
			StationID: stationId,
			FuelType:  fuel,
			Min:       *refMin,
			Common:    *refMin + 2,
			Max:       *refMin + 4,
		}
	}
	return p
}

func f(v float64) *float64 { return &v }

func TestEffectivePriceFallback(t *testing.T) {
	withCommunity := point("s", models.Diesel, 1, f(52), f(50))
	referenceOnly := point("s", models.Diesel, 1, nil, f(50))
	noSignal := pricePoint{station: models.Station{ID: "s"}}

	assert.Equal(t, 52.0, effectivePrice(&withCommunity))
	assert.Equal(t, 50.0, effectivePrice(&referenceOnly))
	assert.True(t, math.IsInf(effectivePrice(&noSignal), 1))
}

func TestPointLessTiers(t *testing.T) {
	cheap := point("a", models.Diesel, 5, f(50), nil)
	pricey := point("b", models.Diesel, 1, f(55), nil)
	assert.True(t, pointLess(&cheap, &pricey))
	assert.False(t, pointLess(&pricey, &cheap))

	// equal effective price: lower reference min wins
	lowRef := point("a", models.Diesel, 5, f(50), f(48))
	highRef := point("b", models.Diesel, 1, f(50), f(49))
	assert.True(t, pointLess(&lowRef, &highRef))

	// equal on both: distance decides
	near := point("a", models.Diesel, 1, f(50), f(48))
	far := point("b", models.Diesel, 5, f(50), f(48))
	assert.True(t, pointLess(&near, &far))
	assert.False(t, pointLess(&far, &near))

	// missing reference ranks after a present one at equal price
	noRef := point("a", models.Diesel, 1, f(50), nil)
	withRef := point("b", models.Diesel, 5, f(50), f(49))
	assert.True(t, pointLess(&withRef, &noRef))
}

func TestArbitrationPicksCheapestFuel(t *testing.T) {
	points := []pricePoint{
		point("s1", models.Gasoline95, 1, f(55), nil),
		point("s1", models.Diesel, 1, f(52), nil),
		point("s1", models.Kerosene, 1, f(58), nil),
	}

	winners := arbitratePerStation(points)
	require.Len(t, winners, 1)
	assert.Equal(t, models.Diesel, winners[0].fuelType)
}

func TestArbitrationCommunityPriceTieFallsToReferenceMin(t *testing.T) {
	points := []pricePoint{
		point("s1", models.Gasoline95, 1, f(52), f(51)),
		point("s1", models.Diesel, 1, f(52), f(49)),
	}

	winners := arbitratePerStation(points)
	require.Len(t, winners, 1)
	assert.Equal(t, models.Diesel, winners[0].fuelType)
}

func TestArbitrationReferenceOnlyLosesToCommunity(t *testing.T) {
	// a reference-only point has an infinite community price in the
	// arbitration's first tier, even when its reference min is lower
	points := []pricePoint{
		point("s1", models.Gasoline95, 1, nil, f(48)),
		point("s1", models.Diesel, 1, f(53), nil),
	}

	winners := arbitratePerStation(points)
	require.Len(t, winners, 1)
	assert.Equal(t, models.Diesel, winners[0].fuelType)
}

func TestArbitrationKeepsFirstOnFullTie(t *testing.T) {
	points := []pricePoint{
		point("s1", models.Gasoline95, 1, f(52), nil),
		point("s1", models.Diesel, 1, f(52), nil),
	}

	winners := arbitratePerStation(points)
	require.Len(t, winners, 1)
	assert.Equal(t, models.Gasoline95, winners[0].fuelType)
}

func TestArbitrationPreservesStationOrder(t *testing.T) {
	points := []pricePoint{
		point("near", models.Diesel, 1, f(55), nil),
		point("far", models.Diesel, 3, f(52), nil),
		point("near", models.Gasoline95, 1, f(54), nil),
	}

	winners := arbitratePerStation(points)
	require.Len(t, winners, 2)
	assert.Equal(t, "near", winners[0].station.ID)
	assert.Equal(t, "far", winners[1].station.ID)
	assert.Equal(t, models.Gasoline95, winners[0].fuelType)
}

func TestSortPointsStable(t *testing.T) {
	points := []pricePoint{
		point("a", models.Diesel, 2, f(55), nil),
		point("b", models.Diesel, 1, f(52), nil),
		point("c", models.Diesel, 3, f(52), nil),
	}

	sortPoints(points)
	assert.Equal(t, "b", points[0].station.ID)
	assert.Equal(t, "c", points[1].station.ID)
	assert.Equal(t, "a", points[2].station.ID)
}
