package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/AndyQiu2234/MergeSpec/internal/merge"
	"github.com/AndyQiu2234/MergeSpec/internal/processing"
	"github.com/AndyQiu2234/MergeSpec/internal/render"
	"github.com/AndyQiu2234/MergeSpec/internal/repository"
	"github.com/AndyQiu2234/MergeSpec/internal/session"
)

// apiError maps engine and storage errors onto HTTP status codes. Errors that
// already carry a status are passed through.
func apiError(msg string, err error) error {
	var se huma.StatusError
	switch {
	case errors.As(err, &se):
		return err
	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, render.ErrNotFound),
		errors.Is(err, repository.ErrNotFound):
		return huma.Error404NotFound(msg, err)
	case errors.Is(err, merge.ErrLoad):
		return huma.Error400BadRequest(msg, err)
	case errors.Is(err, merge.ErrDomain),
		errors.Is(err, merge.ErrParamImport),
		errors.Is(err, processing.ErrEmptySpectrum):
		return huma.Error422UnprocessableEntity(msg, err)
	default:
		return huma.Error500InternalServerError(msg, err)
	}
}
