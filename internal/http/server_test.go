package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pharmakpi/internal/config"
	"pharmakpi/internal/core"
	"pharmakpi/internal/dataset"
	"pharmakpi/internal/log"
)

type fixtureLoader struct {
	snap *dataset.Snapshot
}

func (l *fixtureLoader) Load(ctx context.Context) (*dataset.Snapshot, error) {
	return l.snap, nil
}

func fixtureSnapshot() *dataset.Snapshot {
	return dataset.NewSnapshot(
		[]core.Category{
			{ID: "c1", Name: "Dermocosmétique"},
			{ID: "c2", Name: "OTC"},
		},
		[]core.Product{
			{ID: "p1", Name: "Crème Hydratante", Brand: "Marque A", SKU: "SKU-001", CategoryID: "c1", Active: true},
			{ID: "p2", Name: "Paracétamol 500mg", Brand: "Marque B", SKU: "SKU-002", CategoryID: "c2", Active: true},
		},
		[]core.SalesRow{
			{ID: "s1", ProductID: "p1", Year: 2023, Month: 1, Quantity: 10, UnitPrice: 5},
			{ID: "s2", ProductID: "p1", Year: 2024, Month: 1, Quantity: 12, UnitPrice: 5.5},
			{ID: "s3", ProductID: "p2", Year: 2023, Month: 2, Quantity: 100, UnitPrice: 6},
			{ID: "s4", ProductID: "p2", Year: 2024, Month: 2, Quantity: 90, UnitPrice: 6},
		},
	)
}

func newTestServer(t *testing.T, loader dataset.Loader) (*Server, *dataset.Store) {
	t.Helper()

	store := dataset.NewStore(loader)
	if _, err := store.Reload(context.Background()); err != nil {
		t.Fatalf("initial reload: %v", err)
	}

	cfg := &config.Config{
		Port:            "0",
		CacheTTL:        time.Minute,
		CacheMaxEntries: 16,
	}
	logger := log.New(log.Config{
		Component: log.ComponentHTTP,
		Handler:   slog.NewTextHandler(io.Discard, nil),
	})

	s := NewServer(cfg, store, logger)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	})
	return s, store
}

func doRequest(s *Server, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestHealthEndpoint(t *testing.T) {
	s, _ := newTestServer(t, &fixtureLoader{snap: fixtureSnapshot()})

	rec := doRequest(s, http.MethodGet, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["ok"] != true {
		t.Error("ok should be true")
	}
	loaded := body["loaded"].(map[string]any)
	if loaded["categories"].(float64) != 2 || loaded["products"].(float64) != 2 || loaded["sales"].(float64) != 4 {
		t.Errorf("loaded = %v", loaded)
	}
}

func TestMetaEndpoints(t *testing.T) {
	s, _ := newTestServer(t, &fixtureLoader{snap: fixtureSnapshot()})

	rec := doRequest(s, http.MethodGet, "/meta/years")
	body := decodeBody(t, rec)
	years := body["years"].([]any)
	if len(years) != 2 || years[0].(float64) != 2023 || years[1].(float64) != 2024 {
		t.Errorf("years = %v, want [2023 2024]", years)
	}

	rec = doRequest(s, http.MethodGet, "/meta/categories")
	body = decodeBody(t, rec)
	cats := body["categories"].([]any)
	if len(cats) != 2 {
		t.Fatalf("len(categories) = %d, want 2", len(cats))
	}
	first := cats[0].(map[string]any)
	if first["id_categorie"] != "c1" || first["nom"] != "Dermocosmétique" {
		t.Errorf("first category = %v", first)
	}
}

func TestYearlyKPIsScopeNulls(t *testing.T) {
	s, _ := newTestServer(t, &fixtureLoader{snap: fixtureSnapshot()})

	rec := doRequest(s, http.MethodGet, "/kpis/yearly")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := decodeBody(t, rec)
	scope := body["scope"].(map[string]any)
	if scope["year"] != nil || scope["categoryId"] != nil {
		t.Errorf("scope = %v, want nulls", scope)
	}
	kpis := body["kpis"].(map[string]any)
	if kpis["chiffre_affaires"].(float64) != 1256 {
		t.Errorf("chiffre_affaires = %v, want 1256", kpis["chiffre_affaires"])
	}
}

func TestCompareYearly(t *testing.T) {
	s, _ := newTestServer(t, &fixtureLoader{snap: fixtureSnapshot()})

	rec := doRequest(s, http.MethodGet, "/compare/yearly?year=2024&ref=2023&categoryId=c1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := decodeBody(t, rec)
	year := body["year"].(map[string]any)
	delta := body["delta"].(map[string]any)
	if year["chiffre_affaires"].(float64) != 66 {
		t.Errorf("year chiffre_affaires = %v, want 66", year["chiffre_affaires"])
	}
	if delta["chiffre_affaires"].(float64) != 16 || delta["pct_chiffre_affaires"].(float64) != 32 {
		t.Errorf("delta = %v, want 16 / 32", delta)
	}
}

func TestValidationErrors(t *testing.T) {
	s, _ := newTestServer(t, &fixtureLoader{snap: fixtureSnapshot()})

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantError  string
	}{
		{name: "missing ref", target: "/compare/yearly?year=2024", wantStatus: 400, wantError: "Missing ref"},
		{name: "malformed year", target: "/compare/yearly?year=abcd&ref=2023", wantStatus: 400, wantError: "Invalid year: must be an integer"},
		{name: "year out of range", target: "/timeseries/revenue?year=1980", wantStatus: 400, wantError: "Invalid year: must be between 2000 and 2100"},
		{name: "month out of range", target: "/analysis/month-detail?year=2024&month=13", wantStatus: 400, wantError: "Invalid month: must be between 1 and 12"},
		{name: "missing productId", target: "/timeseries/product?year=2024", wantStatus: 400, wantError: "Missing productId"},
		{name: "unknown product", target: "/analysis/product?year=2024&ref=2023&productId=ghost", wantStatus: 404, wantError: "Product not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(s, http.MethodGet, tt.target)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			body := decodeBody(t, rec)
			if body["error"] != tt.wantError {
				t.Errorf("error = %q, want %q", body["error"], tt.wantError)
			}
		})
	}
}

func TestTopProductsLimitFallback(t *testing.T) {
	s, _ := newTestServer(t, &fixtureLoader{snap: fixtureSnapshot()})

	rec := doRequest(s, http.MethodGet, "/analysis/top-products?year=2024&ref=2023&limit=many")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := decodeBody(t, rec)
	scope := body["scope"].(map[string]any)
	if scope["limit"].(float64) != 10 {
		t.Errorf("limit = %v, want fallback 10", scope["limit"])
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t, &fixtureLoader{snap: fixtureSnapshot()})

	rec := doRequest(s, http.MethodPost, "/kpis/yearly")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST on GET endpoint: status = %d, want 405", rec.Code)
	}

	rec = doRequest(s, http.MethodGet, "/admin/reload")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET on reload: status = %d, want 405", rec.Code)
	}
	if rec.Header().Get("Allow") != http.MethodPost {
		t.Errorf("Allow = %q, want POST", rec.Header().Get("Allow"))
	}
}

func TestReloadPurgesResponseCache(t *testing.T) {
	loader := &fixtureLoader{snap: fixtureSnapshot()}
	s, _ := newTestServer(t, loader)

	rec := doRequest(s, http.MethodGet, "/meta/years")
	if got := decodeBody(t, rec)["years"].([]any); len(got) != 2 {
		t.Fatalf("years = %v, want 2 entries", got)
	}

	// Swap the backing data. The cached response must survive until reload.
	loader.snap = dataset.NewSnapshot(nil, nil, []core.SalesRow{
		{ID: "s1", ProductID: "p1", Year: 2025, Month: 1, Quantity: 1, UnitPrice: 1},
	})

	rec = doRequest(s, http.MethodGet, "/meta/years")
	if got := decodeBody(t, rec)["years"].([]any); len(got) != 2 {
		t.Fatalf("cached years = %v, want stale 2 entries", got)
	}

	rec = doRequest(s, http.MethodPost, "/admin/reload")
	if rec.Code != http.StatusOK {
		t.Fatalf("reload status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["ok"] != true {
		t.Error("reload ok should be true")
	}
	if reloaded := body["reloaded"].(map[string]any); reloaded["sales"].(float64) != 1 {
		t.Errorf("reloaded = %v, want 1 sale", reloaded)
	}

	rec = doRequest(s, http.MethodGet, "/meta/years")
	got := decodeBody(t, rec)["years"].([]any)
	if len(got) != 1 || got[0].(float64) != 2025 {
		t.Errorf("years after reload = %v, want [2025]", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t, &fixtureLoader{snap: fixtureSnapshot()})

	rec := doRequest(s, http.MethodOptions, "/kpis/yearly")
	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS allow-origin header")
	}
}

func TestReloadRateLimit(t *testing.T) {
	s, _ := newTestServer(t, &fixtureLoader{snap: fixtureSnapshot()})

	var limited bool
	for i := 0; i < rateLimitPerMinute+1; i++ {
		rec := doRequest(s, http.MethodPost, "/admin/reload")
		if rec.Code == http.StatusTooManyRequests {
			limited = true
			if rec.Header().Get("Retry-After") != "60" {
				t.Errorf("Retry-After = %q, want 60", rec.Header().Get("Retry-After"))
			}
			break
		}
	}
	if !limited {
		t.Error("rate limiter never kicked in")
	}
}
