package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func doJSON(t *testing.T, router *gin.Engine, method, path, session, body string) (*httptest.ResponseRecorder, cartResponse) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.Header.Set(cartSessionHeader, session)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp cartResponse
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return rec, resp
}

func TestCartFlow_AddRemoveClear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, testDeps())
	if err != nil {
		t.Fatalf("buildRouter: %v", err)
	}

	// First add mints a session.
	rec, resp := doJSON(t, router, http.MethodPost, "/restaurants/chez-ada/cart/items", "", `{"menuItemId":"burger"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if resp.Session == "" {
		t.Fatalf("expected minted session")
	}
	session := resp.Session

	// Second add of the same item increments the line.
	_, resp = doJSON(t, router, http.MethodPost, "/restaurants/chez-ada/cart/items", session, `{"menuItemId":"burger"}`)
	if resp.Totals.TotalItems != 2 || resp.Totals.TotalCents != 200 {
		t.Fatalf("unexpected totals %+v", resp.Totals)
	}
	if len(resp.Lines) != 1 {
		t.Fatalf("expected one line, got %d", len(resp.Lines))
	}

	// Remove decrements, then deletes.
	_, resp = doJSON(t, router, http.MethodDelete, "/restaurants/chez-ada/cart/items/burger", session, "")
	if resp.Totals.TotalItems != 1 {
		t.Fatalf("expected one item after remove, got %+v", resp.Totals)
	}
	_, resp = doJSON(t, router, http.MethodDelete, "/restaurants/chez-ada/cart/items/burger", session, "")
	if resp.Totals.TotalItems != 0 || len(resp.Lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", resp)
	}

	// Removing an absent item is a no-op, not an error.
	rec, _ = doJSON(t, router, http.MethodDelete, "/restaurants/chez-ada/cart/items/burger", session, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for absent remove, got %d", rec.Code)
	}

	// Clear resets an arbitrary cart.
	_, _ = doJSON(t, router, http.MethodPost, "/restaurants/chez-ada/cart/items", session, `{"menuItemId":"burger"}`)
	rec, resp = doJSON(t, router, http.MethodDelete, "/restaurants/chez-ada/cart", session, "")
	if rec.Code != http.StatusOK || resp.Totals.TotalItems != 0 {
		t.Fatalf("expected cleared cart, got %d %+v", rec.Code, resp)
	}
}

func TestCartAdd_UnknownItem(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, testDeps())
	if err != nil {
		t.Fatalf("buildRouter: %v", err)
	}

	rec, _ := doJSON(t, router, http.MethodPost, "/restaurants/chez-ada/cart/items", "", `{"menuItemId":"nope"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCartAdd_UnavailableItem(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, testDeps())
	if err != nil {
		t.Fatalf("buildRouter: %v", err)
	}

	rec, _ := doJSON(t, router, http.MethodPost, "/restaurants/chez-ada/cart/items", "", `{"menuItemId":"soup"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}
