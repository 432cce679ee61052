package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndyQiu2234/MergeSpec/pkg/models"
)

func TestOverlayLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	add := &models.AddOverlayRequest{ID: f.sessionID}
	add.Body.Label = "sample 1"
	add.Body.Data = "100 0.9\n200 0.8\n300 0.7\n"
	created, err := f.handler.AddOverlay(ctx, add)
	require.NoError(t, err)
	assert.Equal(t, "sample 1", created.Body.Label)
	assert.Equal(t, 3, created.Body.Samples)
	assert.True(t, created.Body.Visible)

	label, color, hidden := "renamed", "#112233", false
	upd := &models.UpdateOverlayRequest{ID: f.sessionID, OverlayID: created.Body.ID}
	upd.Body.Label = &label
	upd.Body.Color = &color
	upd.Body.Visible = &hidden
	updated, err := f.handler.UpdateOverlay(ctx, upd)
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Body.Label)
	assert.Equal(t, "#112233", updated.Body.Color)
	assert.False(t, updated.Body.Visible)

	bad := "red"
	upd.Body.Label, upd.Body.Visible = nil, nil
	upd.Body.Color = &bad
	_, err = f.handler.UpdateOverlay(ctx, upd)
	assertStatus(t, err, 400)

	list, err := f.handler.ListOverlays(ctx, &models.SessionPath{ID: f.sessionID})
	require.NoError(t, err)
	require.Len(t, list.Body.Overlays, 1)
	assert.Equal(t, "#112233", list.Body.Overlays[0].Color)

	_, err = f.handler.DeleteOverlay(ctx, &models.OverlayPath{ID: f.sessionID, OverlayID: created.Body.ID})
	require.NoError(t, err)
	_, err = f.handler.DeleteOverlay(ctx, &models.OverlayPath{ID: f.sessionID, OverlayID: created.Body.ID})
	assertStatus(t, err, 404)
	_, err = f.handler.UpdateOverlay(ctx, upd)
	assertStatus(t, err, 404)
}

func TestAddOverlayRejectsBadData(t *testing.T) {
	f := newFixture(t)
	add := &models.AddOverlayRequest{ID: f.sessionID}
	add.Body.Label = "broken"
	add.Body.Data = "frequency reflectance\n"

	_, err := f.handler.AddOverlay(context.Background(), add)
	assertStatus(t, err, 400)
}
