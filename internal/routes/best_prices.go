package routes

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/kofalt/go-memoize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rcarag/presyo-api/internal"
	"github.com/rcarag/presyo-api/internal/engine"
	"github.com/rcarag/presyo-api/internal/models"
)

const DEFAULT_RADIUS_KM = 5.0

var resolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "best_price_resolutions_total",
	Help: "Number of best-price resolutions served, by ranking mode.",
}, []string{"mode"})

func BestPrices(eng *engine.Engine, repo internal.PriceRepository) func(c *gin.Context) {
	// the bulletin only changes weekly; cache the week lookup
	cache := memoize.NewMemoizer(15*time.Minute, time.Hour)

	return func(c *gin.Context) {
		origin, err := parseOrigin(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		opts, mode, err := parseOptions(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result, err := eng.ResolveBestPrices(c.Request.Context(), origin, opts)
		if errors.Is(err, engine.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			log.Printf("error while resolving best prices: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
			return
		}
		resolutionsTotal.WithLabelValues(mode).Inc()

		c.JSON(http.StatusOK, models.BestPricesResponse{
			Results:       result.Prices,
			Statistics:    result.Stats,
			ReferenceWeek: referenceWeek(cache, repo),
			Attribution:   internal.ATTRIBUTION,
		})
	}
}

// parseOrigin returns nil when both coordinates are absent; the engine then
// rejects the request. It does not invent a default location.
func parseOrigin(c *gin.Context) (*models.LatLng, error) {
	latStr := c.Query("lat")
	lngStr := c.Query("lng")
	if latStr == "" && lngStr == "" {
		return nil, nil
	}
	if latStr == "" || lngStr == "" {
		return nil, errors.New("both lat and lng are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, errors.Newf("invalid lat value %q", latStr)
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return nil, errors.Newf("invalid lng value %q", lngStr)
	}

	return &models.LatLng{Latitude: lat, Longitude: lng}, nil
}

func parseOptions(c *gin.Context) (engine.Options, string, error) {
	opts := engine.Options{MaxDistanceKm: DEFAULT_RADIUS_KM}

	if radiusStr := c.Query("radius_km"); radiusStr != "" {
		radius, err := strconv.ParseFloat(radiusStr, 64)
		if err != nil {
			return opts, "", errors.Newf("invalid radius_km value %q", radiusStr)
		}
		opts.MaxDistanceKm = radius
	}

	mode := "all_fuel_types"
	if fuelStr := c.Query("fuel_type"); fuelStr != "" {
		fuelType, err := models.ParseFuelType(fuelStr)
		if err != nil {
			return opts, "", err
		}
		opts.FuelType = &fuelType
		mode = "single_fuel_type"
	}

	return opts, mode, nil
}

func referenceWeek(cache *memoize.Memoizer, repo internal.PriceRepository) *time.Time {
	week, err, _ := cache.Memoize("reference-week", func() (any, error) {
		return repo.LatestReferenceWeek(context.Background())
	})
	if err != nil {
		log.Printf("failed to determine latest reference week: %v", err)
		return nil
	}
	return week.(*time.Time)
}
