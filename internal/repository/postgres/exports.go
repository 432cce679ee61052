package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AndyQiu2234/MergeSpec/internal/repository"
	"github.com/AndyQiu2234/MergeSpec/pkg/models"
)

// PostgresExportRepository implements ExportRepository for PostgreSQL
type PostgresExportRepository struct {
	db *sql.DB
}

// NewPostgresExportRepository creates a new PostgreSQL export repository
func NewPostgresExportRepository(db *sql.DB) repository.ExportRepository {
	return &PostgresExportRepository{db: db}
}

const exportColumns = `id, session_id, reference, sample_count, spectrum_key, params_key, params, created_at`

// Create inserts a new export record. ID and CreatedAt are filled in when empty.
func (r *PostgresExportRepository) Create(ctx context.Context, export *models.Export) error {
	if export.ID == "" {
		export.ID = uuid.New().String()
	}
	if export.CreatedAt.IsZero() {
		export.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO exports (` + exportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		export.ID,
		export.SessionID,
		export.Reference,
		export.SampleCount,
		export.SpectrumKey,
		export.ParamsKey,
		export.Params,
		export.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert export: %w", err)
	}
	return nil
}

// GetByID retrieves an export by ID
func (r *PostgresExportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Export, error) {
	query := `SELECT ` + exportColumns + ` FROM exports WHERE id = $1`

	export, err := scanExport(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get export: %w", err)
	}
	return export, nil
}

// ListBySession retrieves a session's exports, newest first
func (r *PostgresExportRepository) ListBySession(ctx context.Context, sessionID string) ([]*models.Export, error) {
	query := `
		SELECT ` + exportColumns + `
		FROM exports
		WHERE session_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	defer rows.Close()

	var exports []*models.Export
	for rows.Next() {
		export, err := scanExport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		exports = append(exports, export)
	}
	return exports, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExport(row scanner) (*models.Export, error) {
	var export models.Export
	err := row.Scan(
		&export.ID,
		&export.SessionID,
		&export.Reference,
		&export.SampleCount,
		&export.SpectrumKey,
		&export.ParamsKey,
		&export.Params,
		&export.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &export, nil
}
