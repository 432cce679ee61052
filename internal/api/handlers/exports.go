package handlers

import (
	"context"
	"fmt"
	"path"
	"regexp"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/AndyQiu2234/MergeSpec/pkg/models"
)

// uploadURLExpiry matches the storage presign expiry, in seconds
const uploadURLExpiry = 900

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func (h *SessionHandler) exportInfo(ctx context.Context, e *models.Export) models.ExportInfo {
	info := models.ExportInfo{
		ID:          e.ID,
		SessionID:   e.SessionID,
		Reference:   e.Reference,
		SampleCount: e.SampleCount,
		CreatedAt:   e.CreatedAt,
	}
	var err error
	if info.SpectrumURL, err = h.s3Service.GenerateDownloadURL(ctx, e.SpectrumKey); err != nil {
		log.Warn().Err(err).Str("exportID", e.ID).Msg("Failed to sign spectrum URL")
	}
	if info.ParamsURL, err = h.s3Service.GenerateDownloadURL(ctx, e.ParamsKey); err != nil {
		log.Warn().Err(err).Str("exportID", e.ID).Msg("Failed to sign params URL")
	}
	return info
}

// CreateExport stores the session's merged spectrum and parameters
func (h *SessionHandler) CreateExport(ctx context.Context, req *models.SessionPath) (*models.ExportResponse, error) {
	export, err := h.exportSvc.Export(ctx, req.ID)
	if err != nil {
		return nil, apiError("Failed to export spectrum", err)
	}
	return &models.ExportResponse{Body: h.exportInfo(ctx, export)}, nil
}

// GetExport returns a stored export with download links
func (h *SessionHandler) GetExport(ctx context.Context, req *models.ExportPath) (*models.ExportResponse, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid export ID", err)
	}
	export, err := h.exports.GetByID(ctx, id)
	if err != nil {
		return nil, apiError("Export not found", err)
	}
	return &models.ExportResponse{Body: h.exportInfo(ctx, export)}, nil
}

// ListExports returns a session's exports, newest first
func (h *SessionHandler) ListExports(ctx context.Context, req *models.SessionPath) (*models.ListExportsResponse, error) {
	exports, err := h.exports.ListBySession(ctx, req.ID)
	if err != nil {
		return nil, apiError("Failed to list exports", err)
	}
	resp := &models.ListExportsResponse{}
	resp.Body.Exports = make([]models.ExportInfo, 0, len(exports))
	for _, e := range exports {
		resp.Body.Exports = append(resp.Body.Exports, h.exportInfo(ctx, e))
	}
	return resp, nil
}

// CreateUpload returns a pre-signed URL for uploading a band file
func (h *SessionHandler) CreateUpload(ctx context.Context, req *models.CreateUploadRequest) (*models.CreateUploadResponse, error) {
	if _, err := h.sessions.Get(req.Body.SessionID); err != nil {
		return nil, apiError("Session not found", err)
	}

	name := unsafeName.ReplaceAllString(path.Base(req.Body.FileName), "_")
	key := fmt.Sprintf("uploads/%s/%s-%s", req.Body.SessionID, uuid.New().String()[:8], name)

	log.Info().Str("objectKey", key).Str("mimeType", req.Body.MimeType).Msg("Generating S3 upload URL")
	uploadURL, err := h.s3Service.GenerateUploadURL(ctx, key, req.Body.MimeType)
	if err != nil {
		return nil, huma.Error400BadRequest("Failed to prepare upload. Please try again.", err)
	}

	resp := &models.CreateUploadResponse{}
	resp.Body.ObjectKey = key
	resp.Body.UploadURL = uploadURL
	resp.Body.ExpiresIn = uploadURLExpiry
	return resp, nil
}
