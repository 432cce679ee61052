package models

import (
	"time"
)

// Export is a stored merge result (for internal use)
type Export struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	Reference   string    `json:"reference"`
	SampleCount int       `json:"sample_count"`
	SpectrumKey string    `json:"spectrum_key"`
	ParamsKey   string    `json:"params_key"`
	Params      string    `json:"params"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExportInfo describes a stored export with download links
type ExportInfo struct {
	ID          string    `json:"id" doc:"Export ID"`
	SessionID   string    `json:"session_id" doc:"Session that produced the export"`
	Reference   string    `json:"reference,omitempty" doc:"Reference used for normalisation"`
	SampleCount int       `json:"sample_count" doc:"Number of samples in the spectrum"`
	SpectrumURL string    `json:"spectrum_url,omitempty" doc:"Pre-signed URL of the spectrum file"`
	ParamsURL   string    `json:"params_url,omitempty" doc:"Pre-signed URL of the parameter file"`
	CreatedAt   time.Time `json:"created_at" doc:"Export time"`
}

// ExportPath addresses an export
type ExportPath struct {
	ID string `path:"id" doc:"Export ID"`
}

// ExportResponse returns one export
type ExportResponse struct {
	Body ExportInfo
}

// ListExportsResponse returns a session's exports, newest first
type ListExportsResponse struct {
	Body struct {
		Exports []ExportInfo `json:"exports" doc:"Exports, newest first"`
	}
}

// CreateUploadRequest asks for an upload URL for a band file
type CreateUploadRequest struct {
	Body struct {
		SessionID string `json:"session_id" required:"true" doc:"Session the file belongs to"`
		FileName  string `json:"file_name" required:"true" minLength:"1" maxLength:"255" doc:"Original file name"`
		FileSize  int64  `json:"file_size" minimum:"1" maximum:"20971520" required:"true" doc:"File size in bytes"`
		MimeType  string `json:"mime_type" enum:"text/plain,text/csv,text/tab-separated-values,application/octet-stream" required:"true" doc:"File MIME type"`
	}
}

// CreateUploadResponse returns a pre-signed upload URL
type CreateUploadResponse struct {
	Body struct {
		ObjectKey string `json:"object_key" doc:"Key to pass as object_key when loading a band"`
		UploadURL string `json:"upload_url" doc:"Pre-signed S3 URL for file upload"`
		ExpiresIn int    `json:"expires_in" doc:"URL expiration time in seconds"`
	}
}
