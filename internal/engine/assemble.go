package engine

import "github.com/rcarag/presyo-api/internal/models"

// pricePoint is the ephemeral join of one station, one fuel type and
// whichever price signals exist for the pair. At least one of report and
// reference is always non-nil; pairs with neither are never constructed.
type pricePoint struct {
	station    models.Station
	fuelType   models.FuelType
	distanceKm float64
	report     *models.CommunityPriceReport
	reference  *models.ReferencePriceRecord
}

// assemble joins candidates with both price mappings, emitting one point per
// (station, fuel type) pair that has at least one signal. Points come out in
// candidate (distance) order, fuel types in their declared order, keeping
// later stages deterministic.
func assemble(
	candidates []candidate,
	fuelTypes []models.FuelType,
	communityByPair map[pairKey]*models.CommunityPriceReport,
	referenceByPair map[pairKey]*models.ReferencePriceRecord,
) []pricePoint {
	points := make([]pricePoint, 0, len(candidates))
	for _, c := range candidates {
		for _, ft := range fuelTypes {
			key := pairKey{stationId: c.station.ID, fuelType: ft}
			report := communityByPair[key]
			reference := referenceByPair[key]
			if report == nil && reference == nil {
				continue
			}
			points = append(points, pricePoint{
				station:    c.station,
				fuelType:   ft,
				distanceKm: c.distanceKm,
				report:     report,
				reference:  reference,
			})
		}
	}
	return points
}

func (p *pricePoint) toBestPrice() models.BestPrice {
	best := models.BestPrice{
		StationID:  p.station.ID,
		Name:       p.station.Name,
		Brand:      p.station.Brand,
		Address:    p.station.Address,
		City:       p.station.City,
		Province:   p.station.Province,
		Latitude:   p.station.Latitude,
		Longitude:  p.station.Longitude,
		FuelType:   p.fuelType,
		DistanceKm: p.distanceKm,
	}

	if p.report != nil {
		best.Price = &p.report.Price
		best.ReportedBy = &p.report.ReportedBy
		best.ReportedAt = &p.report.ReportedAt
		best.CycleID = &p.report.CycleID
		best.Confirmations = &p.report.Confirmations
		best.Confidence = &p.report.Confidence
	}

	if p.reference != nil {
		best.RefMin = &p.reference.Min
		best.RefCommon = &p.reference.Common
		best.RefMax = &p.reference.Max
		best.RefWeekOf = &p.reference.WeekOf
		best.RefSourceType = &p.reference.SourceType
	}

	return best
}
