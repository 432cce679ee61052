package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/AndyQiu2234/MergeSpec/pkg/models"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("record not found")

// ExportRepository defines the interface for export record operations
type ExportRepository interface {
	Create(ctx context.Context, export *models.Export) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Export, error)
	ListBySession(ctx context.Context, sessionID string) ([]*models.Export, error)
}
