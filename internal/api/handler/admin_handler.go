package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storerating/store-rating/internal/api/metrics"
	"github.com/storerating/store-rating/internal/core/domain"
	"github.com/storerating/store-rating/internal/core/ports"
)

// AdminHandler serves the system-administrator dashboard. Every route is
// mounted behind RBAC(RoleAdministrator).
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// Dashboard returns the platform totals.
//
// @Summary      Dashboard totals
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.DashboardStats
// @Router       /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	stats, err := h.service.Dashboard(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// ListUsers
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        name     query  string  false  "Name substring"
// @Param        email    query  string  false  "Email substring"
// @Param        address  query  string  false  "Address substring"
// @Param        role     query  string  false  "Exact role"
// @Success      200      {array}  domain.User
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context(), ports.UserFilter{
		Name:    c.QueryParam("name"),
		Email:   c.QueryParam("email"),
		Address: c.QueryParam("address"),
		Role:    domain.Role(c.QueryParam("role")),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// AddUser creates an account with any role.
//
// @Summary      Add user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addUserRequest  true  "New account"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /admin/users [post]
func (h *AdminHandler) AddUser(c echo.Context) error {
	var req addUserRequest
	if err := c.Bind(&req); err != nil {
		return badPayload(c)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	user, err := h.service.AddUser(c.Request().Context(), ports.AddUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Address:  req.Address,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return respondError(c, err)
	}

	metrics.SignupsTotal.WithLabelValues(string(user.Role)).Inc()
	return c.JSON(http.StatusCreated, user)
}

// ListStores
//
// @Summary      List stores (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        name     query  string  false  "Name substring"
// @Param        address  query  string  false  "Address substring"
// @Success      200      {array}  domain.Store
// @Router       /admin/stores [get]
func (h *AdminHandler) ListStores(c echo.Context) error {
	stores, err := h.service.ListStores(c.Request().Context(), ports.StoreFilter{
		Name:    c.QueryParam("name"),
		Address: c.QueryParam("address"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stores)
}

// AddStore
//
// @Summary      Add store
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addStoreRequest  true  "New store"
// @Success      201   {object}  domain.Store
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /admin/stores [post]
func (h *AdminHandler) AddStore(c echo.Context) error {
	var req addStoreRequest
	if err := c.Bind(&req); err != nil {
		return badPayload(c)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	store, err := h.service.AddStore(c.Request().Context(), ports.AddStoreInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, store)
}

// ListRatings
//
// @Summary      List ratings
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Rating
// @Router       /admin/ratings [get]
func (h *AdminHandler) ListRatings(c echo.Context) error {
	ratings, err := h.service.ListRatings(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ratings)
}
