package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/AndyQiu2234/MergeSpec/internal/merge"
	"github.com/AndyQiu2234/MergeSpec/internal/render"
	"github.com/AndyQiu2234/MergeSpec/pkg/models"
)

func overlayInfo(c render.Curve) models.OverlayInfo {
	return models.OverlayInfo{
		ID:      c.ID,
		Label:   c.Label,
		Color:   c.Color,
		Visible: c.Visible,
		Source:  c.Source,
		Samples: c.Spectrum.Len(),
	}
}

// ListOverlays returns the session's overlay curves
func (h *SessionHandler) ListOverlays(ctx context.Context, req *models.SessionPath) (*models.ListOverlaysResponse, error) {
	resp := &models.ListOverlaysResponse{}
	err := h.do(req.ID, func(_ *merge.Merger, overlays *render.CurveList) error {
		resp.Body.Overlays = []models.OverlayInfo{}
		for _, c := range overlays.All() {
			resp.Body.Overlays = append(resp.Body.Overlays, overlayInfo(c))
		}
		return nil
	})
	if err != nil {
		return nil, apiError("Failed to list overlays", err)
	}
	return resp, nil
}

// AddOverlay adds a previously merged spectrum to the plot
func (h *SessionHandler) AddOverlay(ctx context.Context, req *models.AddOverlayRequest) (*models.OverlayResponse, error) {
	if _, err := h.sessions.Get(req.ID); err != nil {
		return nil, apiError("Session not found", err)
	}
	freq, refl, source, err := h.readSeries(ctx, req.Body.Data, req.Body.ObjectKey)
	if err != nil {
		return nil, apiError("Invalid overlay file", err)
	}

	resp := &models.OverlayResponse{}
	err = h.do(req.ID, func(_ *merge.Merger, overlays *render.CurveList) error {
		c := overlays.Add(req.Body.Label, source, merge.Spectrum{Frequency: freq, Reflectance: refl})
		resp.Body = overlayInfo(c)
		return nil
	})
	if err != nil {
		return nil, apiError("Failed to add overlay", err)
	}
	return resp, nil
}

// UpdateOverlay renames, recolours or hides an overlay
func (h *SessionHandler) UpdateOverlay(ctx context.Context, req *models.UpdateOverlayRequest) (*models.OverlayResponse, error) {
	resp := &models.OverlayResponse{}
	err := h.do(req.ID, func(_ *merge.Merger, overlays *render.CurveList) error {
		if _, err := overlays.Get(req.OverlayID); err != nil {
			return err
		}
		if req.Body.Color != nil {
			if err := overlays.Recolor(req.OverlayID, *req.Body.Color); err != nil {
				return huma.Error400BadRequest("Invalid colour", err)
			}
		}
		if req.Body.Label != nil {
			if err := overlays.Rename(req.OverlayID, *req.Body.Label); err != nil {
				return err
			}
		}
		if req.Body.Visible != nil {
			if err := overlays.SetVisible(req.OverlayID, *req.Body.Visible); err != nil {
				return err
			}
		}
		c, err := overlays.Get(req.OverlayID)
		if err != nil {
			return err
		}
		resp.Body = overlayInfo(c)
		return nil
	})
	if err != nil {
		return nil, apiError("Failed to update overlay", err)
	}
	return resp, nil
}

// DeleteOverlay removes an overlay
func (h *SessionHandler) DeleteOverlay(ctx context.Context, req *models.OverlayPath) (*models.DeleteResponse, error) {
	err := h.do(req.ID, func(_ *merge.Merger, overlays *render.CurveList) error {
		return overlays.Remove(req.OverlayID)
	})
	if err != nil {
		return nil, apiError("Overlay not found", err)
	}
	resp := &models.DeleteResponse{}
	resp.Body.Message = "Overlay deleted"
	return resp, nil
}
