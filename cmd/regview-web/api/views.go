package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/regview/regview-go/internal/viewer"
	"github.com/regview/regview-go/pkg/browse"
	"github.com/regview/regview-go/pkg/classify"
	"github.com/regview/regview-go/pkg/inspect"
	"github.com/regview/regview-go/pkg/layout"
	"github.com/regview/regview-go/pkg/log"
	"github.com/regview/regview-go/pkg/nav"
)

// ViewsAPI serves the register views of the currently loaded dataset.
// Reload swaps the dataset; requests in flight keep the one they started
// with.
type ViewsAPI struct {
	mu     sync.RWMutex
	viewer *viewer.Viewer

	trace *log.Session
}

// NewViewsAPI creates the API over an initial dataset. A nil trace
// discards events.
func NewViewsAPI(v *viewer.Viewer, trace *log.Session) *ViewsAPI {
	if trace == nil {
		trace = log.NewSession(nil, "web")
	}
	return &ViewsAPI{viewer: v, trace: trace}
}

// Viewer returns the current dataset.
func (a *ViewsAPI) Viewer() *viewer.Viewer {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.viewer
}

// Reload re-reads the dataset from its source. On failure the current
// dataset stays in place.
func (a *ViewsAPI) Reload() (*viewer.Viewer, error) {
	next, err := a.Viewer().Reload()
	if err != nil {
		a.trace.Error("reload", "", err)
		return nil, err
	}

	a.mu.Lock()
	a.viewer = next
	a.mu.Unlock()

	a.trace.Load(next.LoadData())
	return next, nil
}

// HandleDashboard handles GET /api/v1/dashboard.
func (a *ViewsAPI) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	v := a.Viewer()
	a.trace.Render(nav.ViewDashboard.String(), "", 0, 0)
	writeJSON(w, http.StatusOK, dashboardResponse(v.Browser.Dashboard()))
}

// HandleGroup handles GET /api/v1/groups/{group}.
func (a *ViewsAPI) HandleGroup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	v := a.Viewer()

	group, err := v.Resolver.Group(r.PathValue("group"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	view, err := v.Browser.Instances(group)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.trace.Render(nav.ViewInstances.String(), group, 0, 0)
	writeJSON(w, http.StatusOK, instancesResponse(view))
}

// HandlePeripheral handles GET /api/v1/peripherals/{name}.
func (a *ViewsAPI) HandlePeripheral(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	v := a.Viewer()

	p, err := v.Resolver.Peripheral(r.PathValue("name"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	view, err := v.Browser.Registers(p.Name)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.trace.Render(nav.ViewRegisters.String(), nav.Registers(view.Group, p.Name).Path(), 0, 0)
	writeJSON(w, http.StatusOK, registersResponse(view))
}

// HandleRegister handles GET /api/v1/peripherals/{name}/registers/{register}.
func (a *ViewsAPI) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	v := a.Viewer()

	p, err := v.Resolver.Peripheral(r.PathValue("name"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	reg, err := v.Resolver.Register(p, r.PathValue("register"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	path := nav.Detail(classify.GroupName(p), p.Name, reg).Path()
	d, err := v.Browser.Detail(p.Name, reg)
	if err != nil {
		a.trace.Error("detail", path, err)
		a.writeError(w, err)
		return
	}
	a.trace.Render(nav.ViewDetail.String(), path, len(d.Segments), len(d.Rows))
	writeJSON(w, http.StatusOK, detailResponse(p.Name, d))
}

// HandleNav handles GET /api/v1/nav?path=GROUP/PERIPHERAL/REGISTER and
// returns the page for that navigation state with its breadcrumb.
func (a *ViewsAPI) HandleNav(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	v := a.Viewer()

	s, err := v.Resolver.State(r.URL.Query().Get("path"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	page, err := v.Browser.Render(s)
	if err != nil {
		a.trace.Error("nav", s.Path(), err)
		a.writeError(w, err)
		return
	}

	var segments, fields int
	if page.Detail != nil {
		segments, fields = len(page.Detail.Segments), len(page.Detail.Rows)
	}
	a.trace.Render(s.View().String(), s.Path(), segments, fields)
	writeJSON(w, http.StatusOK, navResponse(page))
}

// HandleReload handles POST /api/v1/reload.
func (a *ViewsAPI) HandleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	v, err := a.Reload()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, LoadSummary(v))
}

// LoadSummary describes a loaded dataset.
func LoadSummary(v *viewer.Viewer) LoadResponse {
	data := v.LoadData()
	resp := LoadResponse{
		Source:      data.Source,
		Peripherals: data.Peripherals,
		Groups:      data.Groups,
		LoadedAt:    v.LoadedAt.UTC(),
		DurationMS:  float64(v.Duration.Microseconds()) / 1000,
	}
	for _, f := range v.Failed {
		resp.Failed = append(resp.Failed, f.Path)
	}
	return resp
}

// writeError maps lookup and layout errors to status codes.
func (a *ViewsAPI) writeError(w http.ResponseWriter, err error) {
	var le *layout.LayoutError
	switch {
	case errors.As(err, &le):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error: err.Error(),
			Kind:  le.Kind.String(),
			Field: le.Field,
			Other: le.Other,
		})
	case errors.Is(err, browse.ErrNotFound),
		errors.Is(err, inspect.ErrGroupNotFound),
		errors.Is(err, inspect.ErrPeripheralNotFound),
		errors.Is(err, inspect.ErrRegisterNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, nav.ErrInvalidPath):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
