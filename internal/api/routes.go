package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/AndyQiu2234/MergeSpec/internal/api/handlers"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(api huma.API, sessionHandler *handlers.SessionHandler) {
	// Sessions
	huma.Register(api, huma.Operation{
		OperationID: "createSession",
		Method:      http.MethodPost,
		Path:        "/api/sessions",
		Summary:     "Create a merge session",
		Description: "Opens a new session with five empty bands",
		Tags:        []string{"Sessions"},
	}, sessionHandler.CreateSession)

	huma.Register(api, huma.Operation{
		OperationID: "getSession",
		Method:      http.MethodGet,
		Path:        "/api/sessions/{id}",
		Summary:     "Get session state",
		Description: "Returns bands, breakpoints and settings of a session",
		Tags:        []string{"Sessions"},
	}, sessionHandler.GetSession)

	huma.Register(api, huma.Operation{
		OperationID: "deleteSession",
		Method:      http.MethodDelete,
		Path:        "/api/sessions/{id}",
		Summary:     "Delete a session",
		Description: "Closes a session and discards its data",
		Tags:        []string{"Sessions"},
	}, sessionHandler.DeleteSession)


	// Bands
	huma.Register(api, huma.Operation{
		OperationID: "loadBand",
		Method:      http.MethodPut,
		Path:        "/api/sessions/{id}/bands/{band}",
		Summary:     "Load band data",
		Description: "Loads a two-column band file from inline text or an uploaded object",
		Tags:        []string{"Bands"},
	}, sessionHandler.LoadBand)

	huma.Register(api, huma.Operation{
		OperationID: "unloadBand",
		Method:      http.MethodDelete,
		Path:        "/api/sessions/{id}/bands/{band}",
		Summary:     "Unload band data",
		Description: "Clears a band",
		Tags:        []string{"Bands"},
	}, sessionHandler.UnloadBand)

	huma.Register(api, huma.Operation{
		OperationID: "setScale",
		Method:      http.MethodPut,
		Path:        "/api/sessions/{id}/bands/{band}/scale",
		Summary:     "Set band scale",
		Description: "Sets a band's offset and multiplier; values are clamped",
		Tags:        []string{"Bands"},
	}, sessionHandler.SetScale)

	huma.Register(api, huma.Operation{
		OperationID: "resetScale",
		Method:      http.MethodPost,
		Path:        "/api/sessions/{id}/bands/{band}/scale/reset",
		Summary:     "Reset band scale",
		Description: "Restores offset 0 and multiplier 1",
		Tags:        []string{"Bands"},
	}, sessionHandler.ResetScale)

	huma.Register(api, huma.Operation{
		OperationID: "setAutoFill",
		Method:      http.MethodPut,
		Path:        "/api/sessions/{id}/bands/{band}/autofill",
		Summary:     "Set auto-fill",
		Description: "Synthesises an interior band from its neighbours",
		Tags:        []string{"Bands"},
	}, sessionHandler.SetAutoFill)


	// Merge
	huma.Register(api, huma.Operation{
		OperationID: "setBreakpoint",
		Method:      http.MethodPut,
		Path:        "/api/sessions/{id}/breakpoints/{k}",
		Summary:     "Move a breakpoint",
		Description: "Sets a breakpoint; the value is clamped to its range and neighbours",
		Tags:        []string{"Merge"},
	}, sessionHandler.SetBreakpoint)

	huma.Register(api, huma.Operation{
		OperationID: "setArtifact",
		Method:      http.MethodPut,
		Path:        "/api/sessions/{id}/artifact",
		Summary:     "Set artifact removal",
		Description: "Switches the VIS detector artifact filter",
		Tags:        []string{"Merge"},
	}, sessionHandler.SetArtifact)

	huma.Register(api, huma.Operation{
		OperationID: "setReference",
		Method:      http.MethodPut,
		Path:        "/api/sessions/{id}/reference",
		Summary:     "Select reference",
		Description: "Selects the reference material used to normalise exports",
		Tags:        []string{"Merge"},
	}, sessionHandler.SetReference)

	huma.Register(api, huma.Operation{
		OperationID: "getSegments",
		Method:      http.MethodGet,
		Path:        "/api/sessions/{id}/segments",
		Summary:     "Get segments",
		Description: "Returns every band's active, scaled samples and the drawn breakpoints",
		Tags:        []string{"Merge"},
	}, sessionHandler.GetSegments)

	huma.Register(api, huma.Operation{
		OperationID: "getSpectrum",
		Method:      http.MethodGet,
		Path:        "/api/sessions/{id}/spectrum",
		Summary:     "Get merged spectrum",
		Description: "Returns the assembled spectrum, normalised when a reference is selected",
		Tags:        []string{"Merge"},
	}, sessionHandler.GetSpectrum)

	huma.Register(api, huma.Operation{
		OperationID: "getParams",
		Method:      http.MethodGet,
		Path:        "/api/sessions/{id}/params",
		Summary:     "Get parameters",
		Description: "Returns breakpoints and band scales",
		Tags:        []string{"Merge"},
	}, sessionHandler.GetParams)

	huma.Register(api, huma.Operation{
		OperationID: "importParams",
		Method:      http.MethodPost,
		Path:        "/api/sessions/{id}/params",
		Summary:     "Import parameters",
		Description: "Applies a parameter file; a malformed file changes nothing",
		Tags:        []string{"Merge"},
	}, sessionHandler.ImportParams)

	huma.Register(api, huma.Operation{
		OperationID: "plot",
		Method:      http.MethodGet,
		Path:        "/api/sessions/{id}/plot",
		Summary:     "Render plot",
		Description: "Renders segments, breakpoints and visible overlays as PNG",
		Tags:        []string{"Merge"},
	}, sessionHandler.Plot)


	// Overlays
	huma.Register(api, huma.Operation{
		OperationID: "listOverlays",
		Method:      http.MethodGet,
		Path:        "/api/sessions/{id}/overlays",
		Summary:     "List overlays",
		Description: "Returns overlay curves in load order",
		Tags:        []string{"Overlays"},
	}, sessionHandler.ListOverlays)

	huma.Register(api, huma.Operation{
		OperationID: "addOverlay",
		Method:      http.MethodPost,
		Path:        "/api/sessions/{id}/overlays",
		Summary:     "Add overlay",
		Description: "Adds a previously merged spectrum to the plot",
		Tags:        []string{"Overlays"},
	}, sessionHandler.AddOverlay)

	huma.Register(api, huma.Operation{
		OperationID: "updateOverlay",
		Method:      http.MethodPatch,
		Path:        "/api/sessions/{id}/overlays/{overlayID}",
		Summary:     "Update overlay",
		Description: "Renames, recolours or hides an overlay",
		Tags:        []string{"Overlays"},
	}, sessionHandler.UpdateOverlay)

	huma.Register(api, huma.Operation{
		OperationID: "deleteOverlay",
		Method:      http.MethodDelete,
		Path:        "/api/sessions/{id}/overlays/{overlayID}",
		Summary:     "Delete overlay",
		Description: "Removes an overlay",
		Tags:        []string{"Overlays"},
	}, sessionHandler.DeleteOverlay)


	// Exports
	huma.Register(api, huma.Operation{
		OperationID: "createExport",
		Method:      http.MethodPost,
		Path:        "/api/sessions/{id}/exports",
		Summary:     "Export spectrum",
		Description: "Stores the merged spectrum and parameters in object storage",
		Tags:        []string{"Exports"},
	}, sessionHandler.CreateExport)

	huma.Register(api, huma.Operation{
		OperationID: "listExports",
		Method:      http.MethodGet,
		Path:        "/api/sessions/{id}/exports",
		Summary:     "List exports",
		Description: "Returns a session's exports, newest first",
		Tags:        []string{"Exports"},
	}, sessionHandler.ListExports)

	huma.Register(api, huma.Operation{
		OperationID: "getExport",
		Method:      http.MethodGet,
		Path:        "/api/exports/{id}",
		Summary:     "Get export",
		Description: "Returns an export with pre-signed download URLs",
		Tags:        []string{"Exports"},
	}, sessionHandler.GetExport)

	huma.Register(api, huma.Operation{
		OperationID: "createUpload",
		Method:      http.MethodPost,
		Path:        "/api/uploads",
		Summary:     "Create upload URL",
		Description: "Returns a pre-signed URL for uploading a band file",
		Tags:        []string{"Exports"},
	}, sessionHandler.CreateUpload)
}
