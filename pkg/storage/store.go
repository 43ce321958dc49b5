package storage

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/archcost/archcost/pkg/models"
)

// RunRecord summarizes one stored pipeline run.
type RunRecord struct {
	ID           string
	ProjectTitle string
	Region       string
	TotalMonthly decimal.Decimal
	TotalAnnual  decimal.Decimal
	ServiceCount int
	CreatedAt    time.Time
}

// Store persists pipeline reports so past estimates can be reviewed.
type Store interface {
	SaveReport(ctx context.Context, report *models.Report) error
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)
	GetReport(ctx context.Context, runID string) (*models.Report, error)
	Close() error
}
