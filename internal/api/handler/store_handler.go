package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storerating/store-rating/internal/api/metrics"
	"github.com/storerating/store-rating/internal/core/ports"
)

// StoreHandler serves the end-user store list and rating submission.
type StoreHandler struct {
	service ports.StoreService
}

func NewStoreHandler(service ports.StoreService) *StoreHandler {
	return &StoreHandler{service: service}
}

// List returns every store matching the filters, each with the caller's own rating.
//
// @Summary      List stores
// @Tags         stores
// @Produce      json
// @Security     BearerAuth
// @Param        name     query     string  false  "Case-insensitive name substring"
// @Param        address  query     string  false  "Case-insensitive address substring"
// @Success      200      {array}   domain.Store
// @Failure      401      {object}  map[string]string
// @Router       /stores [get]
func (h *StoreHandler) List(c echo.Context) error {
	cl, err := ctxClaims(c)
	if err != nil {
		return err
	}

	stores, err := h.service.ListForViewer(c.Request().Context(), ports.ListStoresInput{
		ViewerID: cl.UserID,
		Name:     c.QueryParam("name"),
		Address:  c.QueryParam("address"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stores)
}

// Rate records or replaces the caller's rating of a store.
//
// @Summary      Rate a store
// @Tags         stores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Store id"
// @Param        body  body      rateRequest  true  "Score 1-5"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /stores/{id}/rating [put]
func (h *StoreHandler) Rate(c echo.Context) error {
	cl, err := ctxClaims(c)
	if err != nil {
		return err
	}
	var req rateRequest
	if err := c.Bind(&req); err != nil {
		return badPayload(c)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	err = h.service.Rate(c.Request().Context(), ports.RateStoreInput{
		StoreID: c.Param("id"),
		UserID:  cl.UserID,
		Score:   req.Rating,
	})
	if err != nil {
		return respondError(c, err)
	}

	metrics.ObserveRating(req.Rating)
	return c.JSON(http.StatusOK, messageResponse{Message: "rating submitted"})
}
