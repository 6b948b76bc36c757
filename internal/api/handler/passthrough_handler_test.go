package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func TestPassthroughHandler_Hello(t *testing.T) {
	e := newEcho()
	c, rec := newJSONContext(e, http.MethodGet, "/", nil)

	if err := NewPassthroughHandler().Hello(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	mustStatus(t, rec, http.StatusOK)
	if rec.Body.String() != "Hello World!" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestPassthroughHandler_EchoesBody(t *testing.T) {
	e := newEcho()
	c, rec := newJSONContext(e, http.MethodPost, "/api", strings.NewReader(`{"storeName":"Corner Shop","tags":["a","b"],"n":3}`))

	if err := NewPassthroughHandler().Echo(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	mustStatus(t, rec, http.StatusCreated)

	var resp struct {
		Message string         `json:"message"`
		Data    map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Message != "success" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if resp.Data["storeName"] != "Corner Shop" || resp.Data["n"] != float64(3) {
		t.Fatalf("unexpected data %+v", resp.Data)
	}
}

func TestPassthroughHandler_EmptyAndInvalidBodies(t *testing.T) {
	e := newEcho()

	c, rec := newJSONContext(e, http.MethodPost, "/api", nil)
	_ = NewPassthroughHandler().Echo(c)
	mustStatus(t, rec, http.StatusCreated)
	if !strings.Contains(rec.Body.String(), `"data":{}`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}

	c, rec = newJSONContext(e, http.MethodPost, "/api", strings.NewReader("{oops"))
	_ = NewPassthroughHandler().Echo(c)
	mustStatus(t, rec, http.StatusBadRequest)
}
