package engine

import (
	"context"
	"math"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/rcarag/presyo-api/internal/geo"
	"github.com/rcarag/presyo-api/internal/models"
)

type candidate struct {
	station    models.Station
	distanceKm float64
}

// selectCandidates finds active stations within the radius of the origin,
// each annotated with its exact distance, nearest first. The bounding box is
// only a cheap pre-filter; stations inside the box but outside the true
// radius are discarded, as are stations with invalid coordinates.
func (e *Engine) selectCandidates(ctx context.Context, origin models.LatLng, radiusKm float64) ([]candidate, error) {
	box := geo.BoundsAround(origin.Latitude, origin.Longitude, radiusKm)

	stations, err := e.store.FindActiveStationsInBoundingBox(ctx, box)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "station query failed"), ErrStoreFailure)
	}

	candidates := make([]candidate, 0, len(stations))
	for _, station := range stations {
		d := geo.Distance(origin.Latitude, origin.Longitude, station.Latitude, station.Longitude)
		if math.IsNaN(d) || d > radiusKm {
			continue
		}
		candidates = append(candidates, candidate{station: station, distanceKm: d})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distanceKm < candidates[j].distanceKm
	})

	return candidates, nil
}
