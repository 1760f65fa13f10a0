// Package engine implements best-price resolution: given an origin, a radius
// and an optional fuel-type filter, it merges community price reports with
// official reference prices for nearby stations and returns a ranked list of
// best price points. The engine is stateless and read-only; all context is
// passed in per call.
package engine

import (
	"context"
	"math"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/rcarag/presyo-api/internal/geo"
	"github.com/rcarag/presyo-api/internal/models"
	"github.com/rcarag/presyo-api/internal/stats"
)

// Store is the read-only persistence surface the engine depends on.
type Store interface {
	FindActiveStationsInBoundingBox(ctx context.Context, box geo.BoundingBox) ([]models.Station, error)
	FindActiveCommunityReports(ctx context.Context, stationIds []string, fuelType *models.FuelType) ([]models.CommunityPriceReport, error)
	FindLatestReferencePrices(ctx context.Context, stationIds []string, fuelTypes []models.FuelType) ([]models.ReferencePriceRecord, error)
}

type Options struct {
	// FuelType restricts ranking to a single fuel type. Nil means "all
	// fuel types": one best offer per station, regardless of fuel.
	FuelType *models.FuelType

	MaxDistanceKm float64
}

type Result struct {
	Prices []models.BestPrice
	Stats  *models.Stats
}

type Engine struct {
	store Store
}

func New(store Store) *Engine {
	return &Engine{store: store}
}

// ResolveBestPrices runs the full pipeline: candidate selection, concurrent
// community/reference fetch, assembly, ranking and summary statistics.
// Running it twice against the same store state yields identical output.
func (e *Engine) ResolveBestPrices(ctx context.Context, origin *models.LatLng, opts Options) (*Result, error) {
	if origin == nil {
		return nil, errors.Mark(errors.New("origin location is required"), ErrInvalidInput)
	}
	if math.IsNaN(origin.Latitude) || math.IsNaN(origin.Longitude) {
		return nil, errors.Mark(errors.New("origin coordinates must be numbers"), ErrInvalidInput)
	}
	if !(opts.MaxDistanceKm > 0) {
		return nil, errors.Mark(errors.Newf("max distance must be positive, got %v", opts.MaxDistanceKm), ErrInvalidInput)
	}

	candidates, err := e.selectCandidates(ctx, *origin, opts.MaxDistanceKm)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return &Result{Prices: []models.BestPrice{}}, nil
	}

	stationIds := make([]string, len(candidates))
	for i, c := range candidates {
		stationIds[i] = c.station.ID
	}

	fuelTypes := models.AllFuelTypes
	if opts.FuelType != nil {
		fuelTypes = []models.FuelType{*opts.FuelType}
	}

	// the two fetches are independent; issue them in parallel and join
	// before assembly
	var communityByPair map[pairKey]*models.CommunityPriceReport
	var referenceByPair map[pairKey]*models.ReferencePriceRecord
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		communityByPair, err = e.fetchCommunityPrices(gctx, stationIds, opts.FuelType)
		return err
	})
	g.Go(func() error {
		referenceByPair = e.fetchReferencePrices(gctx, stationIds, fuelTypes)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	points := assemble(candidates, fuelTypes, communityByPair, referenceByPair)

	if opts.FuelType == nil {
		points = arbitratePerStation(points)
	}
	sortPoints(points)

	prices := make([]models.BestPrice, len(points))
	for i, p := range points {
		prices[i] = p.toBestPrice()
	}

	return &Result{
		Prices: prices,
		Stats:  stats.Derive(prices),
	}, nil
}
