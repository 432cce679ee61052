package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateContentType(t *testing.T) {
	for _, ct := range []string{"text/plain", "text/csv", "text/tab-separated-values", "application/octet-stream"} {
		assert.NoError(t, ValidateContentType(ct), ct)
	}
	for _, ct := range []string{"", "audio/wav", "image/png"} {
		assert.Error(t, ValidateContentType(ct), ct)
	}
}

func TestNewS3ServiceRequiresBucket(t *testing.T) {
	_, err := NewS3Service(S3Config{})
	assert.Error(t, err)
}

func TestPresignedURLs(t *testing.T) {
	svc, err := NewS3Service(S3Config{
		Bucket:    "spectra",
		Endpoint:  "localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	})
	require.NoError(t, err)

	ctx := context.Background()
	up, err := svc.GenerateUploadURL(ctx, "uploads/a/fir.txt", "text/plain")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(up, "http://localhost:9000/spectra/uploads/a/fir.txt?"), up)
	assert.Contains(t, up, "X-Amz-Signature=")

	_, err = svc.GenerateUploadURL(ctx, "uploads/a/fir.wav", "audio/wav")
	assert.Error(t, err)

	down, err := svc.GenerateDownloadURL(ctx, "exports/e/spectrum.txt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(down, "http://localhost:9000/spectra/exports/e/spectrum.txt?"), down)
}
