package stats

import (
	"math"

	"github.com/rcarag/presyo-api/internal/models"
)

// Derive summarises an already-ranked best-price list. The list is sorted
// ascending, so the lowest price is the first entry's and the highest the
// last's. Reference-only entries have no singular price and are excluded
// from the average. An empty list yields nil, not a zero-filled summary.
func Derive(results []models.BestPrice) *models.Stats {
	if len(results) == 0 {
		return nil
	}

	stats := &models.Stats{
		Count:        len(results),
		LowestPrice:  results[0].Price,
		HighestPrice: results[len(results)-1].Price,
	}

	sum := 0.0
	priced := 0
	for _, result := range results {
		if result.Price == nil {
			continue
		}
		sum += *result.Price
		priced++
	}

	if priced > 0 {
		avg := math.Round(sum/float64(priced)*100) / 100
		stats.AveragePrice = &avg
	}

	return stats
}
