package expansion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"caribmenu/internal/catalog"

	"github.com/gin-gonic/gin"
)

type stubItemSource struct {
	items []catalog.MenuItem
}

func (s *stubItemSource) ListItems(ctx context.Context) ([]catalog.MenuItem, error) {
	return s.items, nil
}

func newTestHandlerRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	source := &stubItemSource{items: []catalog.MenuItem{
		{Slug: "ice-cream", Name: "Ice Cream"},
		{Slug: "doubles", Name: "Doubles"},
	}}
	h := NewHandler(stubLoader{}, source)

	r := gin.New()
	r.POST("/session", h.CreateSession)
	r.GET("/session/:id", h.GetState)
	r.DELETE("/session/:id", h.EndSession)
	r.POST("/session/:id/cards/:card/click", h.Click)
	r.POST("/session/:id/cards/:card/selection", h.Mutate)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("bad response body %q: %v", w.Body.String(), err)
		}
	}
	return w, out
}

func openSession(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w, body := postJSON(t, r, "/session", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 opening session, got %d", w.Code)
	}
	id, _ := body["session_id"].(string)
	if id == "" {
		t.Fatal("expected a session id")
	}
	return id
}

func TestSession_ClickExpandsWithDefaultsAndPrice(t *testing.T) {
	r := newTestHandlerRouter(t)
	sid := openSession(t, r)

	w, card := postJSON(t, r, fmt.Sprintf("/session/%s/cards/ice-cream/click", sid),
		map[string]string{"target": "primary"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if card["state"] != "expanded" {
		t.Fatalf("expected expanded card, got %v", card["state"])
	}
	if card["flavour"] != "Vanilla" {
		t.Fatalf("expected default flavour Vanilla, got %v", card["flavour"])
	}
	if card["total"] != 5.0 {
		t.Fatalf("expected total 5 for the default flavour, got %v", card["total"])
	}
}

func TestSession_MutateFlavourRepricesCard(t *testing.T) {
	r := newTestHandlerRouter(t)
	sid := openSession(t, r)
	postJSON(t, r, fmt.Sprintf("/session/%s/cards/ice-cream/click", sid), nil)

	w, card := postJSON(t, r, fmt.Sprintf("/session/%s/cards/ice-cream/selection", sid),
		map[string]string{"action": "flavour", "value": "Chocolate"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if card["total"] != 6.0 {
		t.Fatalf("expected total 6 after switching to Chocolate, got %v", card["total"])
	}

	w, card = postJSON(t, r, fmt.Sprintf("/session/%s/cards/ice-cream/selection", sid),
		map[string]string{"action": "quantity-up"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if card["total"] != 12.0 {
		t.Fatalf("expected total 12 at quantity 2, got %v", card["total"])
	}
}

func TestSession_MutateCollapsedCardConflicts(t *testing.T) {
	r := newTestHandlerRouter(t)
	sid := openSession(t, r)

	w, _ := postJSON(t, r, fmt.Sprintf("/session/%s/cards/doubles/selection", sid),
		map[string]string{"action": "quantity-up"})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 mutating a collapsed card, got %d", w.Code)
	}
}

func TestSession_SecondClickCollapsesOverHTTP(t *testing.T) {
	r := newTestHandlerRouter(t)
	sid := openSession(t, r)
	path := fmt.Sprintf("/session/%s/cards/ice-cream/click", sid)

	postJSON(t, r, path, nil)
	w, card := postJSON(t, r, path, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if card["state"] != "collapsed" {
		t.Fatalf("expected collapsed after second click, got %v", card["state"])
	}
	if _, ok := card["total"]; ok {
		t.Fatal("a collapsed card should carry no pricing detail")
	}
}

func TestSession_EndSessionForgetsIt(t *testing.T) {
	r := newTestHandlerRouter(t)
	sid := openSession(t, r)

	req := httptest.NewRequest(http.MethodDelete, "/session/"+sid, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 ending session, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/session/"+sid, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for an ended session, got %d", w.Code)
	}
}
