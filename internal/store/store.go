package store

import (
	"context"

	"github.com/cicadas-dev/chorus/internal/models"
)

// Store defines the persistence interface for the review audit trail.
type Store interface {
	RecordEvent(ctx context.Context, e *models.ReviewEvent) error
	ListEvents(ctx context.Context, branch string, limit int) ([]*models.ReviewEvent, error)

	Migrate(ctx context.Context) error
	Close() error
}
