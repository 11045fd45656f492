package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regview/regview-go/internal/viewer"
	"github.com/regview/regview-go/pkg/log"
)

const gpioJSON = `{
  "name": "GPIO1",
  "groupName": "GPIO",
  "baseAddress": "0x401B8000",
  "registers": [
    {"name": "GDIR", "addressOffset": 4},
    {"name": "DR", "addressOffset": 0, "resetValue": "0x00000005",
     "fields": [
       {"name": "MODE", "bitOffset": 0, "bitWidth": 3, "access": "read-write",
        "enumeratedValues": [{"name": "OFF", "value": 0}, {"name": "ON", "value": 5}]},
       {"name": "EN", "bitOffset": 8, "bitWidth": 1}
     ]},
    {"name": "BAD", "addressOffset": 8,
     "fields": [{"name": "A", "bitOffset": 0, "bitWidth": 4},
                {"name": "B", "bitOffset": 2, "bitWidth": 4}]}
  ]
}`

type recorder struct {
	mu     sync.Mutex
	events []log.Event
}

func (r *recorder) Log(e log.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func setup(t *testing.T) (*ViewsAPI, *http.ServeMux, string, *recorder) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "GPIO1.json"), []byte(gpioJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "MYSTERY.json"), []byte(`{"name":"MYSTERY","groupName":"MYSTERY"}`), 0o644))

	v, err := viewer.Open(viewer.Config{DataPath: dir})
	require.NoError(t, err)

	rec := &recorder{}
	a := NewViewsAPI(v, log.NewSession(rec, "web"))

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/dashboard", a.HandleDashboard)
	mux.HandleFunc("/api/v1/groups/{group}", a.HandleGroup)
	mux.HandleFunc("/api/v1/peripherals/{name}", a.HandlePeripheral)
	mux.HandleFunc("/api/v1/peripherals/{name}/registers/{register}", a.HandleRegister)
	mux.HandleFunc("/api/v1/nav", a.HandleNav)
	mux.HandleFunc("/api/v1/reload", a.HandleReload)
	return a, mux, dir, rec
}

func get(t *testing.T, mux *http.ServeMux, path string, out any) int {
	t.Helper()
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	if out != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func TestHandleDashboard(t *testing.T) {
	_, mux, _, _ := setup(t)

	var resp DashboardResponse
	require.Equal(t, http.StatusOK, get(t, mux, "/api/v1/dashboard", &resp))

	assert.Equal(t, 2, resp.PeripheralCount)
	require.Len(t, resp.Categories, 1)
	assert.Equal(t, "IO", resp.Categories[0].Name)
	assert.Equal(t, []ModuleCard{{Group: "MYSTERY", Count: 1}}, resp.Uncategorized)
}

func TestHandleGroupAndPeripheral(t *testing.T) {
	_, mux, _, _ := setup(t)

	var inst InstancesResponse
	require.Equal(t, http.StatusOK, get(t, mux, "/api/v1/groups/gpio", &inst))
	assert.Equal(t, "GPIO", inst.Group)
	assert.Equal(t, "IO", inst.Category)
	require.Len(t, inst.Instances, 1)
	assert.Equal(t, 3, inst.Instances[0].RegisterCount)

	var regs RegistersResponse
	require.Equal(t, http.StatusOK, get(t, mux, "/api/v1/peripherals/GPIO1", &regs))
	require.Len(t, regs.Registers, 3)
	assert.Equal(t, "DR", regs.Registers[0].Name)
	assert.Equal(t, "+0x04", regs.Registers[1].OffsetLabel)

	var errResp ErrorResponse
	assert.Equal(t, http.StatusNotFound, get(t, mux, "/api/v1/groups/NOPE", &errResp))
	assert.Contains(t, errResp.Error, "NOPE")
	assert.Equal(t, http.StatusNotFound, get(t, mux, "/api/v1/peripherals/NOPE", nil))
}

func TestHandleRegister(t *testing.T) {
	_, mux, _, rec := setup(t)

	var d DetailResponse
	require.Equal(t, http.StatusOK, get(t, mux, "/api/v1/peripherals/GPIO1/registers/DR", &d))

	assert.Equal(t, 32, d.WordWidth)
	assert.Equal(t, "R/W", d.Access)

	// [31:9] reserved, EN, [7:3] reserved, MODE
	require.Len(t, d.Segments, 4)
	assert.True(t, d.Segments[0].Reserved)
	assert.Equal(t, "EN", d.Segments[1].Key)
	assert.Equal(t, "", d.Segments[1].Label)
	assert.Equal(t, "EN [8:8]", d.Segments[1].Title)
	assert.Equal(t, "MODE", d.Segments[3].Label)

	var sum float64
	for _, s := range d.Segments {
		sum += s.Fraction
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	require.Len(t, d.Fields, 2)
	assert.Equal(t, "EN", d.Fields[0].Name)
	assert.Equal(t, "8", d.Fields[0].Bits)
	assert.Equal(t, "2:0", d.Fields[1].Bits)
	assert.Equal(t, "0x5", d.Fields[1].Reset)
	require.Len(t, d.Fields[1].Values, 2)
	assert.Equal(t, "5", d.Fields[1].Values[1].Label)

	last := rec.events[len(rec.events)-1]
	assert.Equal(t, log.KindRender, last.Kind)
	assert.Equal(t, "GPIO/GPIO1/DR", last.Path)
	assert.Equal(t, 4, last.Segments)
}

func TestHandleRegister_LayoutError(t *testing.T) {
	_, mux, _, rec := setup(t)

	var resp ErrorResponse
	require.Equal(t, http.StatusUnprocessableEntity, get(t, mux, "/api/v1/peripherals/GPIO1/registers/BAD", &resp))
	assert.Equal(t, "overlapping fields", resp.Kind)
	assert.Equal(t, "B", resp.Field)
	assert.Equal(t, "A", resp.Other)

	last := rec.events[len(rec.events)-1]
	assert.Equal(t, log.KindError, last.Kind)

	assert.Equal(t, http.StatusNotFound, get(t, mux, "/api/v1/peripherals/GPIO1/registers/NOPE", nil))
}

func TestHandleNav(t *testing.T) {
	_, mux, _, _ := setup(t)

	var resp NavResponse
	require.Equal(t, http.StatusOK, get(t, mux, "/api/v1/nav?path=gpio1/dr", &resp))
	assert.Equal(t, "detail", resp.View)
	assert.Equal(t, "GPIO/GPIO1/DR", resp.Path)
	require.NotNil(t, resp.Detail)
	assert.Nil(t, resp.Dashboard)

	require.Len(t, resp.Breadcrumb, 4)
	assert.Equal(t, Crumb{Label: "System", Path: "", Link: true}, resp.Breadcrumb[0])
	assert.Equal(t, Crumb{Label: "GPIO1", Path: "GPIO/GPIO1", Link: true}, resp.Breadcrumb[2])
	assert.Equal(t, Crumb{Label: "DR", Path: "GPIO/GPIO1/DR", Active: true}, resp.Breadcrumb[3])

	resp = NavResponse{}
	require.Equal(t, http.StatusOK, get(t, mux, "/api/v1/nav", &resp))
	assert.Equal(t, "dashboard", resp.View)
	require.NotNil(t, resp.Dashboard)

	assert.Equal(t, http.StatusBadRequest, get(t, mux, "/api/v1/nav?path=a/b/c/d", nil))
	assert.Equal(t, http.StatusNotFound, get(t, mux, "/api/v1/nav?path=NOPE", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, get(t, mux, "/api/v1/nav?path=GPIO/GPIO1/BAD", nil))
}

func TestHandleReload(t *testing.T) {
	a, mux, dir, rec := setup(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "LPUART1.json"), []byte(`{"name":"LPUART1","groupName":"LPUART"}`), 0o644))

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/reload", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp LoadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Peripherals)
	assert.Equal(t, 3, a.Viewer().Browser.Dataset().Len())
	assert.Equal(t, log.KindLoad, rec.events[len(rec.events)-1].Kind)

	// A failed reload keeps the current dataset.
	require.NoError(t, os.RemoveAll(dir))
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/reload", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 3, a.Viewer().Browser.Dataset().Len())
}

func TestConcurrentReadsDuringReload(t *testing.T) {
	a, mux, _, _ := setup(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/peripherals/GPIO1/registers/DR", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}()
		go func() {
			defer wg.Done()
			_, err := a.Reload()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
