package engine

import (
	"context"
	"log"

	"github.com/cockroachdb/errors"

	"github.com/rcarag/presyo-api/internal/models"
)

type pairKey struct {
	stationId string
	fuelType  models.FuelType
}

// fetchCommunityPrices returns the single representative community report
// per (station, fuel type) pair. The store returns reports ordered by
// confirmations then recency, so first-wins keeps the most-confirmed, most
// recent one; multiple reports are never merged or averaged.
func (e *Engine) fetchCommunityPrices(ctx context.Context, stationIds []string, fuelType *models.FuelType) (map[pairKey]*models.CommunityPriceReport, error) {
	reports, err := e.store.FindActiveCommunityReports(ctx, stationIds, fuelType)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "community report query failed"), ErrStoreFailure)
	}

	byPair := make(map[pairKey]*models.CommunityPriceReport, len(reports))
	for i := range reports {
		report := &reports[i]
		key := pairKey{stationId: report.StationID, fuelType: report.FuelType}
		if _, ok := byPair[key]; !ok {
			byPair[key] = report
		}
	}
	return byPair, nil
}

// fetchReferencePrices returns the latest reference record per (station,
// fuel type) pair. Reference data is an enhancement, not a hard dependency:
// a query failure is logged and degrades to an empty mapping so that
// community-only prices still rank.
func (e *Engine) fetchReferencePrices(ctx context.Context, stationIds []string, fuelTypes []models.FuelType) map[pairKey]*models.ReferencePriceRecord {
	records, err := e.store.FindLatestReferencePrices(ctx, stationIds, fuelTypes)
	if err != nil {
		log.Printf("reference price fetch degraded, continuing without reference data: %v", err)
		return map[pairKey]*models.ReferencePriceRecord{}
	}

	byPair := make(map[pairKey]*models.ReferencePriceRecord, len(records))
	for i := range records {
		record := &records[i]
		key := pairKey{stationId: record.StationID, fuelType: record.FuelType}
		if _, ok := byPair[key]; !ok {
			byPair[key] = record
		}
	}
	return byPair
}
