// Package processing turns merge sessions into stored exports and fetches
// uploaded band files from object storage.
package processing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/AndyQiu2234/MergeSpec/internal/merge"
	"github.com/AndyQiu2234/MergeSpec/internal/metrics"
	"github.com/AndyQiu2234/MergeSpec/internal/render"
	"github.com/AndyQiu2234/MergeSpec/internal/repository"
	"github.com/AndyQiu2234/MergeSpec/internal/session"
	"github.com/AndyQiu2234/MergeSpec/internal/spectrumio"
	"github.com/AndyQiu2234/MergeSpec/internal/storage"
	"github.com/AndyQiu2234/MergeSpec/pkg/models"
)

// ErrEmptySpectrum is returned when a session has nothing to export.
var ErrEmptySpectrum = errors.New("no band data to export")

// ExportService stores merge results and reads uploaded spectra
type ExportService interface {
	Export(ctx context.Context, sessionID string) (*models.Export, error)
	FetchSeries(ctx context.Context, key string) (freq, refl []float64, err error)
}

type exportService struct {
	s3       storage.S3Service
	repo     repository.ExportRepository
	sessions session.Manager
	metrics  *metrics.Metrics
}

// NewExportService wires the export pipeline. pm may be nil.
func NewExportService(s3Service storage.S3Service, repo repository.ExportRepository, sessions session.Manager, pm *metrics.Metrics) ExportService {
	return &exportService{
		s3:       s3Service,
		repo:     repo,
		sessions: sessions,
		metrics:  pm,
	}
}

// ExportKeys returns the object keys of an export's spectrum and parameter files.
func ExportKeys(sessionID, exportID string) (spectrumKey, paramsKey string) {
	prefix := path.Join("exports", sessionID, exportID)
	return path.Join(prefix, "spectrum.txt"), path.Join(prefix, "params.txt")
}

// Export assembles and normalises the session's spectrum, uploads the
// spectrum and parameter files and records the export.
func (s *exportService) Export(ctx context.Context, sessionID string) (*models.Export, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	var (
		spectrum  merge.Spectrum
		params    merge.Params
		reference string
	)
	err = sess.Do(func(m *merge.Merger, _ *render.CurveList) error {
		reference = m.Reference()
		params = m.Params()
		var err error
		spectrum, err = m.Export()
		return err
	})
	if err == nil && spectrum.Len() == 0 {
		err = ErrEmptySpectrum
	}
	if err != nil {
		s.metrics.RecordExport(reference, err)
		return nil, err
	}

	var spectrumBuf, paramsBuf bytes.Buffer
	if err := spectrumio.WriteSpectrum(&spectrumBuf, spectrum); err != nil {
		return nil, s.fail(reference, fmt.Errorf("failed to write spectrum: %w", err))
	}
	if err := spectrumio.WriteParams(&paramsBuf, params); err != nil {
		return nil, s.fail(reference, fmt.Errorf("failed to write params: %w", err))
	}

	exportID := uuid.New().String()
	spectrumKey, paramsKey := ExportKeys(sessionID, exportID)

	log.Info().
		Str("sessionID", sessionID).
		Str("exportID", exportID).
		Int("samples", spectrum.Len()).
		Str("reference", reference).
		Msg("Uploading export")

	if err := s.s3.UploadFile(ctx, spectrumKey, "text/plain", spectrumBuf.Bytes()); err != nil {
		return nil, s.fail(reference, err)
	}
	if err := s.s3.UploadFile(ctx, paramsKey, "text/plain", paramsBuf.Bytes()); err != nil {
		s.discard(ctx, spectrumKey)
		return nil, s.fail(reference, err)
	}

	export := &models.Export{
		ID:          exportID,
		SessionID:   sessionID,
		Reference:   reference,
		SampleCount: spectrum.Len(),
		SpectrumKey: spectrumKey,
		ParamsKey:   paramsKey,
		Params:      paramsBuf.String(),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, export); err != nil {
		s.discard(ctx, spectrumKey, paramsKey)
		return nil, s.fail(reference, fmt.Errorf("failed to save export: %w", err))
	}

	s.metrics.RecordExport(reference, nil)
	log.Info().Str("exportID", exportID).Msg("Export stored")
	return export, nil
}

func (s *exportService) fail(reference string, err error) error {
	s.metrics.RecordExport(reference, err)
	log.Error().Err(err).Msg("Export failed")
	return err
}

// discard removes objects of an export that could not be completed.
func (s *exportService) discard(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := s.s3.DeleteFile(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to remove orphaned export object")
		}
	}
}

// FetchSeries downloads key and parses it as a two-column spectrum.
func (s *exportService) FetchSeries(ctx context.Context, key string) ([]float64, []float64, error) {
	data, err := s.s3.DownloadFile(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	freq, refl, err := spectrumio.ReadBand(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", key, err)
	}
	return freq, refl, nil
}
