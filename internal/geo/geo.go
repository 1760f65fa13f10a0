// Package geo provides great-circle distance and bounding-box helpers for
// pre-filtering station queries. The app's geographic scope is a single
// mid-latitude country, so antimeridian and polar handling is not needed.
package geo

import "math"

const earthRadiusKm = 6371.0

// metres per degree of latitude, also used for the bbox longitude scaling
const metresPerDegree = 111132.0

type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

func (b BoundingBox) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// Distance returns the haversine great-circle distance in kilometres.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180.0
	phi2 := lat2 * math.Pi / 180.0
	dPhi := (lat2 - lat1) * math.Pi / 180.0
	dLambda := (lng2 - lng1) * math.Pi / 180.0

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// BoundsAround returns a rectangle guaranteed to contain every point within
// radiusKm of the centre. It may over-include (the corners are further away
// than the radius); it never under-includes.
func BoundsAround(lat, lng, radiusKm float64) BoundingBox {
	latDelta := radiusKm * 1000 / metresPerDegree

	// longitude degrees shrink with latitude; guard the cosine so a centre
	// near (but not at) the poles still yields a finite box
	cosLat := math.Cos(lat * math.Pi / 180.0)
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	lngDelta := radiusKm * 1000 / (metresPerDegree * cosLat)

	return BoundingBox{
		MinLat: lat - latDelta,
		MaxLat: lat + latDelta,
		MinLng: lng - lngDelta,
		MaxLng: lng + lngDelta,
	}
}
