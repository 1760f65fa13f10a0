package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcarag/presyo-api/internal/models"
)

func price(v float64) *float64 { return &v }

func TestDeriveEmptyList(t *testing.T) {
	assert.Nil(t, Derive(nil))
	assert.Nil(t, Derive([]models.BestPrice{}))
}

func TestDeriveSortedList(t *testing.T) {
	results := []models.BestPrice{
		{StationID: "s1", Price: price(50.0)},
		{StationID: "s2", Price: price(52.5)},
		{StationID: "s3", Price: price(55.0)},
	}

	stats := Derive(results)
	require.NotNil(t, stats)
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 50.0, *stats.LowestPrice)
	assert.Equal(t, 55.0, *stats.HighestPrice)
	assert.Equal(t, 52.5, *stats.AveragePrice)
}

func TestDeriveExcludesReferenceOnlyFromAverage(t *testing.T) {
	results := []models.BestPrice{
		{StationID: "s1", Price: price(50.0)},
		{StationID: "s2", Price: nil, RefMin: price(48.0)},
		{StationID: "s3", Price: price(54.0)},
	}

	stats := Derive(results)
	require.NotNil(t, stats)
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 52.0, *stats.AveragePrice)
}

func TestDeriveAllReferenceOnly(t *testing.T) {
	results := []models.BestPrice{
		{StationID: "s1", Price: nil, RefMin: price(48.0)},
		{StationID: "s2", Price: nil, RefMin: price(49.0)},
	}

	stats := Derive(results)
	require.NotNil(t, stats)
	assert.Equal(t, 2, stats.Count)
	assert.Nil(t, stats.LowestPrice)
	assert.Nil(t, stats.HighestPrice)
	assert.Nil(t, stats.AveragePrice)
}

func TestDeriveAverageRounding(t *testing.T) {
	results := []models.BestPrice{
		{StationID: "s1", Price: price(50.0)},
		{StationID: "s2", Price: price(50.0)},
		{StationID: "s3", Price: price(50.5)},
	}

	stats := Derive(results)
	require.NotNil(t, stats)
	assert.Equal(t, 50.17, *stats.AveragePrice)
}
