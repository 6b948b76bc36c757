package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/ports"
)

func TestStoreHandler_List_PassesViewerAndFilters(t *testing.T) {
	e := newEcho()
	four := 4
	stub := &stubStoreService{
		listFn: func(ctx context.Context, in ports.ListStoresInput) ([]domain.Store, error) {
			want := ports.ListStoresInput{ViewerID: "u1", Name: "mart", Address: "main"}
			if in != want {
				t.Fatalf("got %+v, want %+v", in, want)
			}
			return []domain.Store{{ID: "s1", Name: "SuperMart", Address: "1 Main St", UserRating: &four}}, nil
		},
	}
	handler := NewStoreHandler(stub)

	c, rec := newJSONContext(e, http.MethodGet, "/stores?name=mart&address=main", nil)
	authenticate(c, "u1", domain.RoleEndUser)
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	mustStatus(t, rec, http.StatusOK)

	var got []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 1 || got[0]["storeName"] != "SuperMart" || got[0]["userRating"] != float64(4) {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if got[0]["overallRating"] != nil {
		t.Fatalf("unrated store must serialize overallRating as null")
	}
}

func TestStoreHandler_List_ServiceFailure(t *testing.T) {
	e := newEcho()
	boom := errors.New("mongo down")
	stub := &stubStoreService{
		listFn: func(ctx context.Context, in ports.ListStoresInput) ([]domain.Store, error) {
			return nil, boom
		},
	}
	handler := NewStoreHandler(stub)

	c, _ := newJSONContext(e, http.MethodGet, "/stores", nil)
	authenticate(c, "u1", domain.RoleEndUser)
	if err := handler.List(c); !errors.Is(err, boom) {
		t.Fatalf("expected unexpected errors to reach the error handler, got %v", err)
	}
}

func TestStoreHandler_Rate(t *testing.T) {
	e := newEcho()
	var got ports.RateStoreInput
	stub := &stubStoreService{
		rateFn: func(ctx context.Context, in ports.RateStoreInput) error {
			got = in
			return nil
		},
	}
	handler := NewStoreHandler(stub)

	c, rec := newJSONContext(e, http.MethodPut, "/stores/s3/rating", strings.NewReader(`{"rating":5}`))
	c.SetParamNames("id")
	c.SetParamValues("s3")
	authenticate(c, "u1", domain.RoleEndUser)
	if err := handler.Rate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	mustStatus(t, rec, http.StatusOK)
	want := ports.RateStoreInput{StoreID: "s3", UserID: "u1", Score: 5}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestStoreHandler_Rate_Rejected(t *testing.T) {
	cases := []struct {
		name string
		body string
		err  error
		want int
	}{
		{"score too high", `{"rating":6}`, nil, http.StatusBadRequest},
		{"score zero", `{"rating":0}`, nil, http.StatusBadRequest},
		{"not json", `{`, nil, http.StatusBadRequest},
		{"unknown store", `{"rating":3}`, domain.ErrStoreNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEcho()
			stub := &stubStoreService{
				rateFn: func(ctx context.Context, in ports.RateStoreInput) error {
					if tc.err == nil {
						t.Fatalf("should not be called")
					}
					return tc.err
				},
			}
			handler := NewStoreHandler(stub)

			c, rec := newJSONContext(e, http.MethodPut, "/stores/x/rating", strings.NewReader(tc.body))
			c.SetParamNames("id")
			c.SetParamValues("x")
			authenticate(c, "u1", domain.RoleEndUser)
			_ = handler.Rate(c)

			mustStatus(t, rec, tc.want)
		})
	}
}
