package handlers

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/plot/vg"

	"github.com/AndyQiu2234/MergeSpec/internal/merge"
	"github.com/AndyQiu2234/MergeSpec/internal/metrics"
	"github.com/AndyQiu2234/MergeSpec/internal/processing"
	"github.com/AndyQiu2234/MergeSpec/internal/render"
	"github.com/AndyQiu2234/MergeSpec/internal/repository"
	"github.com/AndyQiu2234/MergeSpec/internal/session"
	"github.com/AndyQiu2234/MergeSpec/internal/spectrumio"
	"github.com/AndyQiu2234/MergeSpec/internal/storage"
	"github.com/AndyQiu2234/MergeSpec/pkg/models"
)

// SessionHandler handles merge session HTTP requests
type SessionHandler struct {
	sessions  session.Manager
	s3Service storage.S3Service
	exports   repository.ExportRepository
	exportSvc processing.ExportService
	metrics   *metrics.Metrics
}

// NewSessionHandler creates a new session handler. pm may be nil.
func NewSessionHandler(sessions session.Manager, s3Service storage.S3Service, exports repository.ExportRepository, exportSvc processing.ExportService, pm *metrics.Metrics) *SessionHandler {
	return &SessionHandler{
		sessions:  sessions,
		s3Service: s3Service,
		exports:   exports,
		exportSvc: exportSvc,
		metrics:   pm,
	}
}

// Sessions returns the number of open sessions
func (h *SessionHandler) Sessions() int {
	return h.sessions.Count()
}

// do runs fn against session id's merger and overlays.
func (h *SessionHandler) do(id string, fn func(m *merge.Merger, overlays *render.CurveList) error) error {
	s, err := h.sessions.Get(id)
	if err != nil {
		return huma.Error404NotFound("Session not found", err)
	}
	return s.Do(fn)
}

// apply runs fn and returns the resulting session state.
func (h *SessionHandler) apply(id, msg string, fn func(m *merge.Merger) error) (*models.SessionResponse, error) {
	s, err := h.sessions.Get(id)
	if err != nil {
		return nil, huma.Error404NotFound("Session not found", err)
	}
	resp := &models.SessionResponse{}
	err = s.Do(func(m *merge.Merger, _ *render.CurveList) error {
		if err := fn(m); err != nil {
			return err
		}
		resp.Body = sessionState(s, m)
		return nil
	})
	if err != nil {
		return nil, apiError(msg, err)
	}
	return resp, nil
}

func parseBand(name string) (merge.BandID, error) {
	id, err := merge.ParseBand(name)
	if err != nil {
		return 0, huma.Error400BadRequest("Unknown band", err)
	}
	return id, nil
}

func sessionState(s *session.Session, m *merge.Merger) models.SessionState {
	st := models.SessionState{
		ID:              s.ID,
		CreatedAt:       s.CreatedAt,
		ArtifactRemoval: m.ArtifactRemoval(),
		Reference:       m.Reference(),
		References:      m.References(),
		Samples:         m.Assemble().Len(),
	}
	for _, id := range merge.Bands() {
		b, _ := m.Band(id)
		info := models.BandInfo{
			Band:          id.String(),
			Source:        b.Source,
			Samples:       b.Samples,
			ActiveStart:   b.Active.Start,
			ActiveEnd:     b.Active.End,
			Measured:      b.Measured,
			Offset:        b.Offset,
			Multiplier:    b.Multiplier,
			AutoFill:      b.AutoFill.Enabled,
			FillAvailable: b.FillAvailable,
			MinFrequency:  b.MinFrequency,
			MaxFrequency:  b.MaxFrequency,
		}
		if b.AutoFill.Enabled {
			info.AutoFillOrder = int(b.AutoFill.Order)
		}
		st.Bands = append(st.Bands, info)
	}
	inUse := make(map[int]bool)
	for _, mk := range m.Markers() {
		inUse[mk.Index] = true
	}
	bp := m.Breakpoints()
	for k := 1; k <= merge.NumBreakpoints; k++ {
		st.Breakpoints = append(st.Breakpoints, models.BreakpointInfo{
			Index:     k,
			Frequency: bp.Get(k),
			InUse:     inUse[k],
		})
	}
	return st
}

// CreateSession opens a new merge session
func (h *SessionHandler) CreateSession(ctx context.Context, _ *struct{}) (*models.SessionResponse, error) {
	s, err := h.sessions.Create()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to create session", err)
	}
	resp := &models.SessionResponse{}
	_ = s.Do(func(m *merge.Merger, _ *render.CurveList) error {
		resp.Body = sessionState(s, m)
		return nil
	})
	return resp, nil
}

// GetSession returns a session snapshot
func (h *SessionHandler) GetSession(ctx context.Context, req *models.SessionPath) (*models.SessionResponse, error) {
	return h.apply(req.ID, "Failed to read session", func(*merge.Merger) error { return nil })
}

// DeleteSession closes a session
func (h *SessionHandler) DeleteSession(ctx context.Context, req *models.SessionPath) (*models.DeleteResponse, error) {
	if err := h.sessions.Delete(req.ID); err != nil {
		return nil, apiError("Session not found", err)
	}
	resp := &models.DeleteResponse{}
	resp.Body.Message = "Session deleted"
	return resp, nil
}

// readSeries reads inline text or an uploaded object. Exactly one must be given.
func (h *SessionHandler) readSeries(ctx context.Context, data, objectKey string) (freq, refl []float64, source string, err error) {
	switch {
	case data != "" && objectKey != "":
		return nil, nil, "", huma.Error400BadRequest("Provide either data or object_key, not both")
	case data != "":
		freq, refl, err = spectrumio.ReadBand(strings.NewReader(data))
		return freq, refl, "inline", err
	case objectKey != "":
		freq, refl, err = h.exportSvc.FetchSeries(ctx, objectKey)
		return freq, refl, objectKey, err
	default:
		return nil, nil, "", huma.Error400BadRequest("Provide data or object_key")
	}
}

// LoadBand loads measured data into a band
func (h *SessionHandler) LoadBand(ctx context.Context, req *models.LoadBandRequest) (*models.SessionResponse, error) {
	id, err := parseBand(req.Band)
	if err != nil {
		return nil, err
	}
	if _, err := h.sessions.Get(req.ID); err != nil {
		return nil, huma.Error404NotFound("Session not found", err)
	}

	freq, refl, source, err := h.readSeries(ctx, req.Body.Data, req.Body.ObjectKey)
	if err != nil {
		var se huma.StatusError
		switch {
		case errors.As(err, &se):
			return nil, err
		case errors.Is(err, merge.ErrLoad):
			h.metrics.RecordBandLoadFailure(id)
			return nil, huma.Error400BadRequest("Invalid band file", err)
		default:
			return nil, huma.Error502BadGateway("Failed to fetch band file", err)
		}
	}
	if req.Body.Source != "" {
		source = req.Body.Source
	}

	log.Info().Str("sessionID", req.ID).Str("band", id.String()).Int("samples", len(freq)).Msg("Loading band")
	resp, err := h.apply(req.ID, "Invalid band data", func(m *merge.Merger) error {
		return m.LoadBand(id, freq, refl, source)
	})
	if err != nil {
		h.metrics.RecordBandLoadFailure(id)
	}
	return resp, err
}

// UnloadBand clears a band
func (h *SessionHandler) UnloadBand(ctx context.Context, req *models.BandPath) (*models.SessionResponse, error) {
	id, err := parseBand(req.Band)
	if err != nil {
		return nil, err
	}
	return h.apply(req.ID, "Failed to unload band", func(m *merge.Merger) error {
		return m.UnloadBand(id)
	})
}

// SetBreakpoint moves a breakpoint; the applied value is clamped to its range
func (h *SessionHandler) SetBreakpoint(ctx context.Context, req *models.SetBreakpointRequest) (*models.SessionResponse, error) {
	return h.apply(req.ID, "Failed to set breakpoint", func(m *merge.Merger) error {
		if req.K < 1 || req.K > merge.NumBreakpoints {
			return huma.Error400BadRequest("Breakpoint must be 1 to 4")
		}
		_, err := m.SetBreakpoint(req.K, req.Body.Frequency)
		return err
	})
}

// SetScale sets a band's offset and multiplier
func (h *SessionHandler) SetScale(ctx context.Context, req *models.SetScaleRequest) (*models.SessionResponse, error) {
	id, err := parseBand(req.Band)
	if err != nil {
		return nil, err
	}
	return h.apply(req.ID, "Failed to set scale", func(m *merge.Merger) error {
		return m.SetScale(id, req.Body.Offset, req.Body.Multiplier)
	})
}

// ResetScale restores a band's identity scale
func (h *SessionHandler) ResetScale(ctx context.Context, req *models.BandPath) (*models.SessionResponse, error) {
	id, err := parseBand(req.Band)
	if err != nil {
		return nil, err
	}
	return h.apply(req.ID, "Failed to reset scale", func(m *merge.Merger) error {
		return m.ResetScale(id)
	})
}

// SetAutoFill toggles auto-fill for an interior band
func (h *SessionHandler) SetAutoFill(ctx context.Context, req *models.SetAutoFillRequest) (*models.SessionResponse, error) {
	id, err := parseBand(req.Band)
	if err != nil {
		return nil, err
	}
	if !id.Interior() {
		return nil, huma.Error400BadRequest("Auto-fill is only available for FIR, MIR and NIR")
	}
	order := merge.Order(req.Body.Order)
	if order == 0 {
		order = merge.OrderLinear
	}
	return h.apply(req.ID, "Failed to set auto-fill", func(m *merge.Merger) error {
		_, err := m.SetAutoFill(id, req.Body.Enabled, order)
		return err
	})
}

// SetArtifact toggles the VIS artifact filter
func (h *SessionHandler) SetArtifact(ctx context.Context, req *models.SetArtifactRequest) (*models.SessionResponse, error) {
	return h.apply(req.ID, "Artifact removal is not possible on the current data", func(m *merge.Merger) error {
		return m.SetArtifactRemoval(req.Body.Enabled)
	})
}

// SetReference selects the reference material used for normalisation
func (h *SessionHandler) SetReference(ctx context.Context, req *models.SetReferenceRequest) (*models.SessionResponse, error) {
	return h.apply(req.ID, "Failed to select reference", func(m *merge.Merger) error {
		if err := m.SelectReference(req.Body.Reference); err != nil {
			return huma.Error400BadRequest("Unknown reference", err)
		}
		return nil
	})
}

// GetSegments returns every band's active, scaled samples and the drawn breakpoints
func (h *SessionHandler) GetSegments(ctx context.Context, req *models.SessionPath) (*models.SegmentsResponse, error) {
	resp := &models.SegmentsResponse{}
	err := h.do(req.ID, func(m *merge.Merger, _ *render.CurveList) error {
		resp.Body.Segments = []models.SegmentInfo{}
		for _, seg := range m.Segments() {
			resp.Body.Segments = append(resp.Body.Segments, models.SegmentInfo{
				Band:   seg.Band.String(),
				Points: models.Points(seg.Frequency, seg.Reflectance),
			})
		}
		resp.Body.Markers = []models.BreakpointInfo{}
		for _, mk := range m.Markers() {
			resp.Body.Markers = append(resp.Body.Markers, models.BreakpointInfo{Index: mk.Index, Frequency: mk.Frequency, InUse: true})
		}
		return nil
	})
	if err != nil {
		return nil, apiError("Failed to read segments", err)
	}
	return resp, nil
}

// GetSpectrum returns the assembled spectrum, normalised when a reference is selected
func (h *SessionHandler) GetSpectrum(ctx context.Context, req *models.SessionPath) (*models.SpectrumResponse, error) {
	resp := &models.SpectrumResponse{}
	err := h.do(req.ID, func(m *merge.Merger, _ *render.CurveList) error {
		s, err := m.Export()
		if err != nil {
			return err
		}
		resp.Body.Reference = m.Reference()
		resp.Body.Points = models.Points(s.Frequency, s.Reflectance)
		return nil
	})
	if err != nil {
		return nil, apiError("Spectrum cannot be normalised", err)
	}
	return resp, nil
}

func paramsBody(p merge.Params) models.ParamsBody {
	var text bytes.Buffer
	_ = spectrumio.WriteParams(&text, p)
	body := models.ParamsBody{
		Scale: make(map[string]models.Scaling, merge.NumBands),
		Text:  text.String(),
	}
	for k := 1; k <= merge.NumBreakpoints; k++ {
		body.Breakpoints = append(body.Breakpoints, p.Breakpoints.Get(k))
	}
	for _, id := range merge.Bands() {
		body.Scale[id.String()] = models.Scaling{Offset: p.Offsets[id], Multiplier: p.Multipliers[id]}
	}
	return body
}

// GetParams returns the current breakpoints and scales
func (h *SessionHandler) GetParams(ctx context.Context, req *models.SessionPath) (*models.ParamsResponse, error) {
	resp := &models.ParamsResponse{}
	err := h.do(req.ID, func(m *merge.Merger, _ *render.CurveList) error {
		resp.Body = paramsBody(m.Params())
		return nil
	})
	if err != nil {
		return nil, apiError("Failed to read params", err)
	}
	return resp, nil
}

// ImportParams applies a parameter file; nothing changes if any value is malformed
func (h *SessionHandler) ImportParams(ctx context.Context, req *models.ImportParamsRequest) (*models.ParamsResponse, error) {
	resp := &models.ParamsResponse{}
	err := h.do(req.ID, func(m *merge.Merger, _ *render.CurveList) error {
		p, err := spectrumio.ParseParams(strings.NewReader(req.Body.Text), m.Params())
		if err != nil {
			return err
		}
		if err := m.ApplyParams(p); err != nil {
			return err
		}
		resp.Body = paramsBody(m.Params())
		return nil
	})
	if err != nil {
		return nil, apiError("Invalid parameter file", err)
	}
	return resp, nil
}

// Plot renders segments, breakpoints and visible overlays as PNG
func (h *SessionHandler) Plot(ctx context.Context, req *models.PlotRequest) (*models.PlotResponse, error) {
	width, height := render.DefaultWidth, render.DefaultHeight
	if req.Width > 0 {
		width = vg.Length(req.Width)
	}
	if req.Height > 0 {
		height = vg.Length(req.Height)
	}

	var buf bytes.Buffer
	err := h.do(req.ID, func(m *merge.Merger, overlays *render.CurveList) error {
		return render.WritePNG(&buf, render.SceneFor(m, overlays), width, height)
	})
	if err != nil {
		return nil, apiError("Failed to render plot", err)
	}
	return &models.PlotResponse{ContentType: "image/png", Body: buf.Bytes()}, nil
}
