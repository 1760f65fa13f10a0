package internal

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/tavsec/gin-healthcheck/checks"

	"github.com/rcarag/presyo-api/internal/geo"
	"github.com/rcarag/presyo-api/internal/models"
)

//go:embed sql/search_stations_bbox.sql
var searchStationsBboxSQL string

//go:embed sql/active_reports.sql
var activeReportsSQL string

//go:embed sql/latest_reference_prices.sql
var latestReferencePricesSQL string

//go:embed sql/upsert_station.sql
var upsertStationSQL string

//go:embed sql/insert_reference_price.sql
var insertReferencePriceSQL string

//go:embed sql/insert_report.sql
var insertReportSQL string

//go:embed sql/confirm_report.sql
var confirmReportSQL string

//go:embed sql/latest_reference_week.sql
var latestReferenceWeekSQL string

var ATTRIBUTION = []string{
	"Community-reported pump prices, confirmed by other users",
	"DOE weekly retail price bulletin (min/common/max)",
}

type PriceRepository interface {
	FindActiveStationsInBoundingBox(ctx context.Context, box geo.BoundingBox) ([]models.Station, error)
	FindActiveCommunityReports(ctx context.Context, stationIds []string, fuelType *models.FuelType) ([]models.CommunityPriceReport, error)
	FindLatestReferencePrices(ctx context.Context, stationIds []string, fuelTypes []models.FuelType) ([]models.ReferencePriceRecord, error)
	UpsertStations(batch []models.Station) (int, error)
	InsertReferencePrices(batch []models.ReferencePriceRecord) (int, error)
	SubmitReport(ctx context.Context, report *models.CommunityPriceReport) error
	ConfirmReport(ctx context.Context, reportId int64) (int, error)
	LatestReferenceWeek(ctx context.Context) (*time.Time, error)
	Check() checks.Check
	Close() error
}

type sqliteRepository struct {
	db *sql.DB
}

func NewPriceRepository(db *sql.DB) PriceRepository {
	return &sqliteRepository{
		db: db,
	}
}

func (repo *sqliteRepository) FindActiveStationsInBoundingBox(ctx context.Context, box geo.BoundingBox) ([]models.Station, error) {

	rows, err := repo.db.QueryContext(ctx, searchStationsBboxSQL, box.MinLat, box.MaxLat, box.MinLng, box.MaxLng)
	if err != nil {
		return nil, fmt.Errorf("failed to execute station search query: %w", err)
	}
	defer closeRows(rows)

	var results []models.Station
	for rows.Next() {
		var station models.Station
		var amenitiesJSON, operatingHoursJSON string
		if err := rows.Scan(
			&station.ID, &station.Name, &station.Brand, &station.Address, &station.City,
			&station.Province, &station.Latitude, &station.Longitude, &station.Active,
			&amenitiesJSON, &operatingHoursJSON, &station.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan station row: %w", err)
		}
		if err := json.Unmarshal([]byte(amenitiesJSON), &station.Amenities); err != nil {
			return nil, fmt.Errorf("failed to unmarshal amenities: %w", err)
		}
		if err := json.Unmarshal([]byte(operatingHoursJSON), &station.OperatingHours); err != nil {
			return nil, fmt.Errorf("failed to unmarshal operating hours: %w", err)
		}
		results = append(results, station)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over station rows: %w", err)
	}

	return results, nil
}

// FindActiveCommunityReports returns reports belonging to the current
// reporting cycle for the given stations, ordered by confirmation count then
// recency. Callers that keep the first row per (station, fuel type) pair get
// the most-confirmed, most recent report; that ordering is this store's
// contract, not incidental.
func (repo *sqliteRepository) FindActiveCommunityReports(ctx context.Context, stationIds []string, fuelType *models.FuelType) ([]models.CommunityPriceReport, error) {
	if len(stationIds) == 0 {
		return nil, nil
	}

	fuelCondition := ""
	args := []any{models.CycleFor(time.Now())}
	for _, id := range stationIds {
		args = append(args, id)
	}
	if fuelType != nil {
		fuelCondition = " AND fuel_type = ?"
		args = append(args, string(*fuelType))
	}

	query := fmt.Sprintf(activeReportsSQL, placeholders(len(stationIds)), fuelCondition)
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute report query: %w", err)
	}
	defer closeRows(rows)

	now := time.Now()
	var results []models.CommunityPriceReport
	for rows.Next() {
		var report models.CommunityPriceReport
		var fuel string
		if err := rows.Scan(
			&report.ID, &report.StationID, &fuel, &report.Price, &report.ReportedBy,
			&report.ReportedAt, &report.CycleID, &report.Confirmations,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		report.FuelType = models.FuelType(fuel)
		report.Confidence = report.DeriveConfidence(now)
		results = append(results, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over report rows: %w", err)
	}

	return results, nil
}

// FindLatestReferencePrices returns bulletin rows for the given stations and
// fuel types, most recent week first.
func (repo *sqliteRepository) FindLatestReferencePrices(ctx context.Context, stationIds []string, fuelTypes []models.FuelType) ([]models.ReferencePriceRecord, error) {
	if len(stationIds) == 0 || len(fuelTypes) == 0 {
		return nil, nil
	}

	args := make([]any, 0, len(stationIds)+len(fuelTypes))
	for _, id := range stationIds {
		args = append(args, id)
	}
	for _, ft := range fuelTypes {
		args = append(args, string(ft))
	}

	query := fmt.Sprintf(latestReferencePricesSQL, placeholders(len(stationIds)), placeholders(len(fuelTypes)))
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute reference price query: %w", err)
	}
	defer closeRows(rows)

	var results []models.ReferencePriceRecord
	for rows.Next() {
		var record models.ReferencePriceRecord
		var fuel string
		if err := rows.Scan(
			&record.StationID, &fuel, &record.Min, &record.Common, &record.Max,
			&record.WeekOf, &record.SourceType,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reference price row: %w", err)
		}
		record.FuelType = models.FuelType(fuel)
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over reference price rows: %w", err)
	}

	return results, nil
}

func (repo *sqliteRepository) UpsertStations(batch []models.Station) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	for i := range batch {
		if err := batch[i].Amenities.Validate(); err != nil {
			return 0, fmt.Errorf("station %s: %w", batch[i].ID, err)
		}
		if err := batch[i].OperatingHours.Validate(); err != nil {
			return 0, fmt.Errorf("station %s: %w", batch[i].ID, err)
		}
	}

	return repo.insertBatch(upsertStationSQL, len(batch), func(stmt *sql.Stmt) error {
		for _, station := range batch {
			if _, err := stmt.Exec(station.ToTuple()...); err != nil {
				return fmt.Errorf("failed to execute individual insert: %w", err)
			}
		}
		return nil
	})
}

func (repo *sqliteRepository) InsertReferencePrices(batch []models.ReferencePriceRecord) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	return repo.insertBatch(insertReferencePriceSQL, len(batch), func(stmt *sql.Stmt) error {
		for _, record := range batch {
			if _, err := stmt.Exec(record.ToTuple()...); err != nil {
				return fmt.Errorf("failed to execute individual insert: %w", err)
			}
		}
		return nil
	})
}

func (repo *sqliteRepository) insertBatch(query string, size int, exec func(*sql.Stmt) error) (int, error) {
	tx, err := repo.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("error rolling back transaction: %v", rbErr)
			}
		}
	}()

	stmt, err := tx.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Printf("failed to close statement: %v", err)
		}
	}()

	if err = exec(stmt); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return size, nil
}

func (repo *sqliteRepository) SubmitReport(ctx context.Context, report *models.CommunityPriceReport) error {
	result, err := repo.db.ExecContext(ctx, insertReportSQL, report.ToTuple()...)
	if err != nil {
		return fmt.Errorf("failed to insert price report: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to obtain report id: %w", err)
	}
	report.ID = id
	report.Confidence = report.DeriveConfidence(time.Now())

	return nil
}

func (repo *sqliteRepository) ConfirmReport(ctx context.Context, reportId int64) (int, error) {
	var confirmations int
	err := repo.db.QueryRowContext(ctx, confirmReportSQL, reportId).Scan(&confirmations)
	if err == sql.ErrNoRows {
		return 0, err
	}
	if err != nil {
		return 0, fmt.Errorf("failed to confirm report %d: %w", reportId, err)
	}
	return confirmations, nil
}

func (repo *sqliteRepository) LatestReferenceWeek(ctx context.Context) (*time.Time, error) {
	var week sql.NullTime
	if err := repo.db.QueryRowContext(ctx, latestReferenceWeekSQL).Scan(&week); err != nil {
		return nil, fmt.Errorf("failed to query latest reference week: %w", err)
	}
	if !week.Valid {
		return nil, nil
	}
	return &week.Time, nil
}

func (repo *sqliteRepository) Check() checks.Check {
	return checks.SqlCheck{Sql: repo.db}
}

func (repo *sqliteRepository) Close() error {
	return repo.db.Close()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		log.Printf("failed to close rows: %v", err)
	}
}
