package models

// OverlayInfo describes one overlay curve
type OverlayInfo struct {
	ID      string `json:"id" doc:"Overlay ID"`
	Label   string `json:"label" doc:"Legend label"`
	Color   string `json:"color" doc:"Line colour as #rrggbb"`
	Visible bool   `json:"visible" doc:"Whether the curve is drawn"`
	Source  string `json:"source,omitempty" doc:"Where the data came from"`
	Samples int    `json:"samples" doc:"Number of samples"`
}

// AddOverlayRequest adds a previously merged spectrum as an overlay
type AddOverlayRequest struct {
	ID   string `path:"id" doc:"Session ID"`
	Body struct {
		Label     string `json:"label" required:"true" maxLength:"255" doc:"Legend label"`
		Data      string `json:"data,omitempty" doc:"Two-column spectrum text"`
		ObjectKey string `json:"object_key,omitempty" doc:"Object storage key of the spectrum"`
	}
}

// UpdateOverlayRequest renames, recolours or hides an overlay
type UpdateOverlayRequest struct {
	ID        string `path:"id" doc:"Session ID"`
	OverlayID string `path:"overlayID" doc:"Overlay ID"`
	Body      struct {
		Label   *string `json:"label,omitempty" doc:"New legend label"`
		Color   *string `json:"color,omitempty" doc:"New colour as #rrggbb"`
		Visible *bool   `json:"visible,omitempty" doc:"Show or hide the curve"`
	}
}

// OverlayPath addresses one overlay
type OverlayPath struct {
	ID        string `path:"id" doc:"Session ID"`
	OverlayID string `path:"overlayID" doc:"Overlay ID"`
}

// OverlayResponse returns one overlay
type OverlayResponse struct {
	Body OverlayInfo
}

// ListOverlaysResponse returns every overlay in load order
type ListOverlaysResponse struct {
	Body struct {
		Overlays []OverlayInfo `json:"overlays" doc:"Overlays in load order"`
	}
}
