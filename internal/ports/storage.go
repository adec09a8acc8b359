package ports

import (
	"context"

	"github.com/switchyard/switchyard/internal/domain"
)

// RunStorePort archives finished execution records so callers can inspect
// runs after the fact.
type RunStorePort interface {
	SaveRun(ctx context.Context, record *domain.ExecutionRecord) error
	GetRun(ctx context.Context, runID string) (*domain.ExecutionRecord, error)
	ListRuns(ctx context.Context) ([]string, error)
	DeleteRun(ctx context.Context, runID string) error
	Close() error
}
