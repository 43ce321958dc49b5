package storage

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/archcost/archcost/pkg/models"
)

//go:embed migrations/*.sql
var postgresFS embed.FS

// PostgresStore implements Store using PostgreSQL
type PostgresStore struct {
	db  *sql.DB
	dsn string
}

// NewPostgresStore creates a new PostgreSQL store
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{
		db:  db,
		dsn: dsn,
	}

	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// migrate runs database migrations
func (s *PostgresStore) migrate() error {
	schema, err := postgresFS.ReadFile("migrations/001_schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}

	if _, err := s.db.Exec(string(schema)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// SaveReport stores the full report plus queryable summary columns.
func (s *PostgresStore) SaveReport(ctx context.Context, report *models.Report) error {
	if report == nil || report.Pricing == nil {
		return fmt.Errorf("report has no pricing estimate")
	}
	if report.RunID == "" {
		report.RunID = uuid.New().String()
	}
	if report.GeneratedAt.IsZero() {
		report.GeneratedAt = time.Now()
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	serviceCount := 0
	if report.Architecture != nil {
		serviceCount = len(report.Architecture.Services)
	}

	query := `
		INSERT INTO estimate_runs (
			id, project_title, region, total_monthly, total_annual,
			service_count, report, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = s.db.ExecContext(ctx, query,
		report.RunID,
		report.Pricing.ProjectTitle,
		report.Pricing.Region,
		report.Pricing.TotalMonthlyCost.String(),
		report.Pricing.TotalAnnualCost.String(),
		serviceCount,
		payload,
		report.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, project_title, region, total_monthly, total_annual,
		       service_count, created_at
		FROM estimate_runs
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var run RunRecord
		var monthly, annual string
		if err := rows.Scan(&run.ID, &run.ProjectTitle, &run.Region,
			&monthly, &annual, &run.ServiceCount, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if run.TotalMonthly, err = decimal.NewFromString(monthly); err != nil {
			return nil, fmt.Errorf("invalid stored monthly total: %w", err)
		}
		if run.TotalAnnual, err = decimal.NewFromString(annual); err != nil {
			return nil, fmt.Errorf("invalid stored annual total: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetReport loads a stored report by run ID.
func (s *PostgresStore) GetReport(ctx context.Context, runID string) (*models.Report, error) {
	var payload []byte
	query := `SELECT report FROM estimate_runs WHERE id = $1`
	if err := s.db.QueryRowContext(ctx, query, runID).Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run %s not found", runID)
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}

	var report models.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &report, nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
