package handlers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AndyQiu2234/MergeSpec/internal/merge"
	"github.com/AndyQiu2234/MergeSpec/internal/processing"
	"github.com/AndyQiu2234/MergeSpec/internal/repository"
	"github.com/AndyQiu2234/MergeSpec/pkg/models"
)

func sampleExport(sessionID string) *models.Export {
	id := uuid.New().String()
	spectrumKey, paramsKey := processing.ExportKeys(sessionID, id)
	return &models.Export{
		ID:          id,
		SessionID:   sessionID,
		Reference:   "Au",
		SampleCount: 5,
		SpectrumKey: spectrumKey,
		ParamsKey:   paramsKey,
		CreatedAt:   time.Now(),
	}
}

func TestCreateExport(t *testing.T) {
	f := newFixture(t)
	export := sampleExport(f.sessionID)
	f.exportSvc.On("Export", mock.Anything, f.sessionID).Return(export, nil)
	f.s3.On("GenerateDownloadURL", mock.Anything, export.SpectrumKey).Return("https://example.com/spectrum", nil)
	f.s3.On("GenerateDownloadURL", mock.Anything, export.ParamsKey).Return("https://example.com/params", nil)

	resp, err := f.handler.CreateExport(context.Background(), &models.SessionPath{ID: f.sessionID})
	require.NoError(t, err)
	assert.Equal(t, export.ID, resp.Body.ID)
	assert.Equal(t, "Au", resp.Body.Reference)
	assert.Equal(t, "https://example.com/spectrum", resp.Body.SpectrumURL)
	assert.Equal(t, "https://example.com/params", resp.Body.ParamsURL)
}

func TestCreateExportErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nothing loaded", processing.ErrEmptySpectrum, 422},
		{"outside reference", merge.ErrDomain, 422},
		{"upload failed", assert.AnError, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.exportSvc.On("Export", mock.Anything, f.sessionID).Return(nil, tt.err)

			_, err := f.handler.CreateExport(context.Background(), &models.SessionPath{ID: f.sessionID})
			assertStatus(t, err, tt.want)
		})
	}
}

func TestGetExport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	export := sampleExport(f.sessionID)
	id := uuid.MustParse(export.ID)
	missing := uuid.New()

	f.repo.On("GetByID", mock.Anything, id).Return(export, nil)
	f.repo.On("GetByID", mock.Anything, missing).Return(nil, repository.ErrNotFound)
	f.s3.On("GenerateDownloadURL", mock.Anything, mock.Anything).Return("", assert.AnError)

	resp, err := f.handler.GetExport(ctx, &models.ExportPath{ID: export.ID})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Body.SampleCount)
	assert.Empty(t, resp.Body.SpectrumURL)

	_, err = f.handler.GetExport(ctx, &models.ExportPath{ID: "not-a-uuid"})
	assertStatus(t, err, 400)

	_, err = f.handler.GetExport(ctx, &models.ExportPath{ID: missing.String()})
	assertStatus(t, err, 404)
}

func TestListExports(t *testing.T) {
	f := newFixture(t)
	newer, older := sampleExport(f.sessionID), sampleExport(f.sessionID)
	f.repo.On("ListBySession", mock.Anything, f.sessionID).Return([]*models.Export{newer, older}, nil)
	f.repo.On("ListBySession", mock.Anything, "other").Return([]*models.Export(nil), nil)
	f.s3.On("GenerateDownloadURL", mock.Anything, mock.Anything).Return("https://example.com/x", nil)

	resp, err := f.handler.ListExports(context.Background(), &models.SessionPath{ID: f.sessionID})
	require.NoError(t, err)
	require.Len(t, resp.Body.Exports, 2)
	assert.Equal(t, newer.ID, resp.Body.Exports[0].ID)

	resp, err = f.handler.ListExports(context.Background(), &models.SessionPath{ID: "other"})
	require.NoError(t, err)
	assert.NotNil(t, resp.Body.Exports)
	assert.Empty(t, resp.Body.Exports)
}

func TestCreateUpload(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
		fileName  string
		mockSetup func(*MockS3Service)
		want      int
	}{
		{
			name:     "band file",
			fileName: "../FIR scan 01.txt",
			mockSetup: func(s3 *MockS3Service) {
				s3.On("GenerateUploadURL", mock.Anything, mock.MatchedBy(func(k string) bool {
					return strings.HasSuffix(k, "-FIR_scan_01.txt") && !strings.Contains(k, "..")
				}), "text/plain").Return("https://example.com/upload", nil)
			},
		},
		{
			name:      "unknown session",
			sessionID: "missing",
			fileName:  "fir.txt",
			mockSetup: func(*MockS3Service) {},
			want:      404,
		},
		{
			name:     "presign failure",
			fileName: "fir.txt",
			mockSetup: func(s3 *MockS3Service) {
				s3.On("GenerateUploadURL", mock.Anything, mock.Anything, "text/plain").Return("", assert.AnError)
			},
			want: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.mockSetup(f.s3)

			req := &models.CreateUploadRequest{}
			req.Body.SessionID = f.sessionID
			if tt.sessionID != "" {
				req.Body.SessionID = tt.sessionID
			}
			req.Body.FileName = tt.fileName
			req.Body.FileSize = 2048
			req.Body.MimeType = "text/plain"

			resp, err := f.handler.CreateUpload(context.Background(), req)
			if tt.want != 0 {
				assertStatus(t, err, tt.want)
				return
			}
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(resp.Body.ObjectKey, "uploads/"+f.sessionID+"/"))
			assert.Equal(t, "https://example.com/upload", resp.Body.UploadURL)
			assert.Equal(t, 900, resp.Body.ExpiresIn)
		})
	}
}
