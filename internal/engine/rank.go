package engine

import (
	"math"
	"sort"
)

// effectivePrice is the value used for primary ranking: the community price
// if available, else the reference minimum, else +Inf (ranks last).
func effectivePrice(p *pricePoint) float64 {
	if p.report != nil {
		return p.report.Price
	}
	if p.reference != nil {
		return p.reference.Min
	}
	return math.Inf(1)
}

func referenceMinPrice(p *pricePoint) float64 {
	if p.reference != nil {
		return p.reference.Min
	}
	return math.Inf(1)
}

// pointLess orders by effective price, then reference minimum, then
// distance. Each tier is a total order on reals with +Inf as a valid value,
// so the whole comparison is a strict weak ordering.
func pointLess(a, b *pricePoint) bool {
	ea, eb := effectivePrice(a), effectivePrice(b)
	if ea != eb {
		return ea < eb
	}
	ra, rb := referenceMinPrice(a), referenceMinPrice(b)
	if ra != rb {
		return ra < rb
	}
	return a.distanceKm < b.distanceKm
}

func sortPoints(points []pricePoint) {
	sort.SliceStable(points, func(i, j int) bool {
		return pointLess(&points[i], &points[j])
	})
}

// arbitratePerStation reduces each station's per-fuel-type points to the
// single best offer, as a running best-so-far over the input order. The
// pairwise rule mirrors the sort tiering, so each station's winner is
// consistent with the later global sort. Input order (candidates sorted by
// distance, fuel types in declared order) makes the reduction deterministic.
func arbitratePerStation(points []pricePoint) []pricePoint {
	winnerIdx := make(map[string]int, len(points))
	winners := make([]pricePoint, 0, len(points))

	for _, p := range points {
		i, ok := winnerIdx[p.station.ID]
		if !ok {
			winnerIdx[p.station.ID] = len(winners)
			winners = append(winners, p)
			continue
		}
		if beats(&p, &winners[i]) {
			winners[i] = p
		}
	}

	return winners
}

// beats reports whether the candidate point displaces the running best:
// strictly cheaper community price wins outright; on equal price, the lower
// reference minimum wins, then the shorter distance.
func beats(candidate, best *pricePoint) bool {
	cp, bp := communityOrInf(candidate), communityOrInf(best)
	if cp != bp {
		return cp < bp
	}
	cr, br := referenceMinPrice(candidate), referenceMinPrice(best)
	if cr != br {
		return cr < br
	}
	return candidate.distanceKm < best.distanceKm
}

func communityOrInf(p *pricePoint) float64 {
	if p.report != nil {
		return p.report.Price
	}
	return math.Inf(1)
}
