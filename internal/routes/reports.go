package routes

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/rcarag/presyo-api/internal"
	"github.com/rcarag/presyo-api/internal/models"
)

type submitReportRequest struct {
	StationID  string  `json:"station_id" binding:"required"`
	FuelType   string  `json:"fuel_type" binding:"required"`
	Price      float64 `json:"price" binding:"required"`
	ReportedBy string  `json:"reported_by" binding:"required"`
}

// SubmitReport records a community price report. The reporting cycle is
// assigned server-side from the submission time; clients never pick cycles.
func SubmitReport(repo internal.PriceRepository) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req submitReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		fuelType, err := models.ParseFuelType(req.FuelType)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be positive"})
			return
		}

		now := time.Now().UTC()
		report := &models.CommunityPriceReport{
			StationID:  req.StationID,
			FuelType:   fuelType,
			Price:      req.Price,
			ReportedBy: req.ReportedBy,
			ReportedAt: now,
			CycleID:    models.CycleFor(now),
		}

		if err := repo.SubmitReport(c.Request.Context(), report); err != nil {
			log.Printf("error while submitting price report: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
			return
		}

		c.JSON(http.StatusCreated, report)
	}
}

// ConfirmReport increments a report's confirmation count. The count is
// plain command/response against the store; any optimistic bookkeeping is a
// client concern.
func ConfirmReport(repo internal.PriceRepository) func(c *gin.Context) {
	return func(c *gin.Context) {
		reportId, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
			return
		}

		confirmations, err := repo.ConfirmReport(c.Request.Context(), reportId)
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
			return
		}
		if err != nil {
			log.Printf("error while confirming report %d: %v", reportId, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": reportId, "confirmations": confirmations})
	}
}
