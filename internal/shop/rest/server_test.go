package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	cartapp "github.com/nightscoops/shopcore/internal/cart/app"
	"github.com/nightscoops/shopcore/internal/kv"
	"github.com/nightscoops/shopcore/internal/prefs"
	shopapp "github.com/nightscoops/shopcore/internal/shop/app"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	ctrl := shopapp.NewController(cartapp.NewService(nil), prefs.NewStore(kv.NewMemory()), nil, nil)
	mux := http.NewServeMux()
	NewServer(ctrl, nil).Register(mux)
	return mux
}

func do(t *testing.T, mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestCatalogSelectThenConfirm(t *testing.T) {
	mux := newTestMux(t)

	rec := do(t, mux, http.MethodPost, "/v1/catalog/select",
		`{"name":"Vanilla","base_price_cents":350}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("select status %d", rec.Code)
	}

	rec = do(t, mux, http.MethodPost, "/v1/customize/confirm",
		`{"base":"Cup","scoops":2,"toppings":["Sprinkles","Caramel"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm status %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["added"] != true {
		t.Fatalf("confirm body %v", body)
	}

	rec = do(t, mux, http.MethodGet, "/v1/cart", "")
	body = decodeBody(t, rec)
	if body["total"] != "$5.75" {
		t.Fatalf("total = %v, want $5.75", body["total"])
	}
}

func TestConfirmWithoutOpenDialog(t *testing.T) {
	mux := newTestMux(t)

	rec := do(t, mux, http.MethodPost, "/v1/customize/confirm", `{"base":"Cup","scoops":1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["added"] != false {
		t.Fatalf("expected added=false, got %v", body)
	}
}

func TestSelectRequiresName(t *testing.T) {
	mux := newTestMux(t)

	rec := do(t, mux, http.MethodPost, "/v1/catalog/select", `{"name":"  "}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}

func TestAddAndRemoveLine(t *testing.T) {
	mux := newTestMux(t)

	rec := do(t, mux, http.MethodPost, "/v1/cart/lines",
		`{"name":"Mint","base":"Cup","scoops":1,"price_cents":400}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add status %d", rec.Code)
	}
	line := decodeBody(t, rec)["line"].(map[string]any)
	id := int64(line["id"].(float64))

	rec = do(t, mux, http.MethodDelete, fmt.Sprintf("/v1/cart/lines/%d", id), "")
	body := decodeBody(t, rec)
	if body["removed"] != true {
		t.Fatalf("remove body %v", body)
	}

	// Removing the same id again is a no-op response, not an error.
	rec = do(t, mux, http.MethodDelete, fmt.Sprintf("/v1/cart/lines/%d", id), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("repeat remove status %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["removed"] != false {
		t.Fatalf("repeat remove body %v", body)
	}

	rec = do(t, mux, http.MethodDelete, "/v1/cart/lines/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed id status %d, want 400", rec.Code)
	}
}

func TestBuilderSubmitAndPreferences(t *testing.T) {
	mux := newTestMux(t)

	rec := do(t, mux, http.MethodPost, "/v1/builder/submit",
		`{"flavor1":"Vanilla","flavor2":"Mint","toppings":["Oreo Crumbles"]}`)
	line := decodeBody(t, rec)["line"].(map[string]any)
	if line["name"] != "Vanilla + Mint (Custom)" {
		t.Fatalf("name = %v", line["name"])
	}
	if line["price"] != "$5.25" {
		t.Fatalf("price = %v", line["price"])
	}

	rec = do(t, mux, http.MethodGet, "/v1/preferences/flavors", "")
	flavors := decodeBody(t, rec)
	if flavors["vanilla + mint (custom)"] != float64(1) {
		t.Fatalf("flavors %v", flavors)
	}

	rec = do(t, mux, http.MethodGet, "/v1/preferences/stats", "")
	stats := decodeBody(t, rec)
	toppings := stats["toppings"].(map[string]any)
	if toppings["oreo crumbles"] != float64(1) {
		t.Fatalf("stats %v", stats)
	}
}

func TestClearCart(t *testing.T) {
	mux := newTestMux(t)

	do(t, mux, http.MethodPost, "/v1/cart/lines", `{"name":"a","price_cents":100}`)
	do(t, mux, http.MethodPost, "/v1/cart/lines", `{"name":"b","price_cents":200}`)

	rec := do(t, mux, http.MethodPost, "/v1/cart/clear", "")
	body := decodeBody(t, rec)
	if body["total"] != "$0.00" {
		t.Fatalf("total after clear = %v", body["total"])
	}
	if lines := body["lines"].([]any); len(lines) != 0 {
		t.Fatalf("lines after clear = %v", lines)
	}
}

func TestCheckoutIsAStub(t *testing.T) {
	mux := newTestMux(t)

	rec := do(t, mux, http.MethodPost, "/v1/cart/checkout", "")
	if rec.Code != http.StatusNotImplemented {
		t.Fatalf("status %d, want 501", rec.Code)
	}
}

func TestMalformedBodyIsRejected(t *testing.T) {
	mux := newTestMux(t)

	for _, path := range []string{
		"/v1/catalog/select",
		"/v1/customize/confirm",
		"/v1/builder/submit",
		"/v1/cart/lines",
	} {
		rec := do(t, mux, http.MethodPost, path, "{oops")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status %d, want 400", path, rec.Code)
		}
	}
}
