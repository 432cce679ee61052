package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status   string    `json:"status" example:"healthy" doc:"Service health status"`
		Version  string    `json:"version" example:"1.0.0" doc:"API version"`
		Sessions int       `json:"sessions" doc:"Number of open merge sessions"`
		Time     time.Time `json:"time" doc:"Current server time"`
	}
}

// SessionPath addresses a merge session
type SessionPath struct {
	ID string `path:"id" doc:"Session ID"`
}

// BandPath addresses one band of a session
type BandPath struct {
	ID   string `path:"id" doc:"Session ID"`
	Band string `path:"band" doc:"Band name (THz, FIR, MIR, NIR, VIS; EEIR is accepted for THz)"`
}

// BandInfo describes the state of one band
type BandInfo struct {
	Band          string  `json:"band" doc:"Band name"`
	Source        string  `json:"source,omitempty" doc:"File or object the data came from"`
	Samples       int     `json:"samples" doc:"Number of raw samples held"`
	ActiveStart   int     `json:"active_start" doc:"First active sample index"`
	ActiveEnd     int     `json:"active_end" doc:"One past the last active sample index"`
	Measured      bool    `json:"measured" doc:"Whether the data was loaded rather than synthesised"`
	Offset        float64 `json:"offset" doc:"Additive offset"`
	Multiplier    float64 `json:"multiplier" doc:"Multiplicative factor"`
	AutoFill      bool    `json:"autofill" doc:"Whether auto-fill is enabled"`
	AutoFillOrder int     `json:"autofill_order,omitempty" doc:"Auto-fill order: 1 quadratic, 2 cubic, 3 linear"`
	FillAvailable bool    `json:"fill_available" doc:"Whether an auto-fill bridge is currently built"`
	MinFrequency  float64 `json:"min_frequency,omitempty" doc:"Lowest raw frequency"`
	MaxFrequency  float64 `json:"max_frequency,omitempty" doc:"Highest raw frequency"`
}

// BreakpointInfo is one breakpoint and whether it is drawn
type BreakpointInfo struct {
	Index     int     `json:"index" doc:"Breakpoint number, 1 to 4"`
	Frequency float64 `json:"frequency" doc:"Breakpoint frequency in cm^-1"`
	InUse     bool    `json:"in_use" doc:"Whether both neighbouring bands hold data"`
}

// SessionState is a full snapshot of a merge session
type SessionState struct {
	ID              string           `json:"id" doc:"Session ID"`
	CreatedAt       time.Time        `json:"created_at" doc:"Session creation time"`
	Bands           []BandInfo       `json:"bands" doc:"Band states in ascending frequency order"`
	Breakpoints     []BreakpointInfo `json:"breakpoints" doc:"Breakpoints 1 to 4"`
	ArtifactRemoval bool             `json:"artifact_removal" doc:"Whether the VIS artifact filter is on"`
	Reference       string           `json:"reference,omitempty" doc:"Selected reference material"`
	References      []string         `json:"references" doc:"Available reference materials"`
	Samples         int              `json:"samples" doc:"Number of samples in the assembled spectrum"`
}

// SessionResponse wraps a session snapshot
type SessionResponse struct {
	Body SessionState
}

// DeleteResponse confirms a removal
type DeleteResponse struct {
	Body struct {
		Message string `json:"message" doc:"Confirmation message"`
	}
}

// LoadBandRequest loads band data from inline text or an uploaded object
type LoadBandRequest struct {
	ID   string `path:"id" doc:"Session ID"`
	Band string `path:"band" doc:"Band name"`
	Body struct {
		Data      string `json:"data,omitempty" doc:"Two-column band file contents"`
		ObjectKey string `json:"object_key,omitempty" doc:"Object storage key of an uploaded band file"`
		Source    string `json:"source,omitempty" maxLength:"255" doc:"Label recorded as the data source"`
	}
}

// SetBreakpointRequest moves one breakpoint
type SetBreakpointRequest struct {
	ID   string `path:"id" doc:"Session ID"`
	K    int    `path:"k" minimum:"1" maximum:"4" doc:"Breakpoint number"`
	Body struct {
		Frequency float64 `json:"frequency" doc:"Requested frequency; clamped to the breakpoint's range"`
	}
}

// SetScaleRequest sets a band's offset and multiplier
type SetScaleRequest struct {
	ID   string `path:"id" doc:"Session ID"`
	Band string `path:"band" doc:"Band name"`
	Body struct {
		Offset     float64 `json:"offset" doc:"Additive offset, clamped to [-0.5, 0.5]"`
		Multiplier float64 `json:"multiplier" doc:"Multiplicative factor, clamped to [0, 2]"`
	}
}

// SetAutoFillRequest toggles auto-fill for an interior band
type SetAutoFillRequest struct {
	ID   string `path:"id" doc:"Session ID"`
	Band string `path:"band" doc:"Band name (FIR, MIR or NIR)"`
	Body struct {
		Enabled bool `json:"enabled" doc:"Whether to synthesise the band"`
		Order   int  `json:"order,omitempty" minimum:"1" maximum:"3" doc:"1 quadratic, 2 cubic, 3 linear"`
	}
}

// SetArtifactRequest toggles the VIS artifact filter
type SetArtifactRequest struct {
	ID   string `path:"id" doc:"Session ID"`
	Body struct {
		Enabled bool `json:"enabled" doc:"Whether to remove the detector artifact"`
	}
}

// SetReferenceRequest selects the reference material
type SetReferenceRequest struct {
	ID   string `path:"id" doc:"Session ID"`
	Body struct {
		Reference string `json:"reference" doc:"Material name, or empty/none to disable"`
	}
}

// SegmentInfo is one band's active, scaled contribution
type SegmentInfo struct {
	Band   string          `json:"band" doc:"Band name"`
	Points []SpectrumPoint `json:"points" doc:"Active scaled samples"`
}

// SegmentsResponse returns per-band segments and the drawn breakpoints
type SegmentsResponse struct {
	Body struct {
		Segments []SegmentInfo    `json:"segments" doc:"Segments in ascending band order"`
		Markers  []BreakpointInfo `json:"markers" doc:"Breakpoints whose neighbouring bands both hold data"`
	}
}

// SpectrumResponse returns the assembled, normalised spectrum
type SpectrumResponse struct {
	Body struct {
		Reference string          `json:"reference,omitempty" doc:"Reference used for normalisation"`
		Points    []SpectrumPoint `json:"points" doc:"Assembled spectrum"`
	}
}

// ParamsBody is a parameter set
type ParamsBody struct {
	Breakpoints []float64          `json:"breakpoints" doc:"Breakpoints 1 to 4"`
	Scale       map[string]Scaling `json:"scale" doc:"Offset and multiplier per band"`
	Text        string             `json:"text,omitempty" doc:"Parameter file text"`
}

// Scaling is one band's offset and multiplier
type Scaling struct {
	Offset     float64 `json:"offset"`
	Multiplier float64 `json:"multiplier"`
}

// ParamsResponse returns the current parameter set
type ParamsResponse struct {
	Body ParamsBody
}

// ImportParamsRequest applies a parameter file
type ImportParamsRequest struct {
	ID   string `path:"id" doc:"Session ID"`
	Body struct {
		Text string `json:"text" required:"true" maxLength:"65536" doc:"Parameter file contents"`
	}
}

// PlotRequest renders the session
type PlotRequest struct {
	ID     string `path:"id" doc:"Session ID"`
	Width  int    `query:"width" minimum:"0" maximum:"4000" doc:"Image width in points; 0 uses the default"`
	Height int    `query:"height" minimum:"0" maximum:"4000" doc:"Image height in points; 0 uses the default"`
}

// PlotResponse is a PNG image
type PlotResponse struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}
