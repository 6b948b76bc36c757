package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/storerating/store-rating/internal/api/metrics"
)

// maxPassthroughBody bounds the echoed request body.
const maxPassthroughBody = 1 << 20

// PassthroughHandler answers the two legacy endpoints: the root greeting and
// POST /api, which echoes the JSON body it receives.
type PassthroughHandler struct{}

func NewPassthroughHandler() *PassthroughHandler {
	return &PassthroughHandler{}
}

// Hello
//
// @Summary      Greeting
// @Tags         misc
// @Produce      plain
// @Success      200  {string}  string  "Hello World!"
// @Router       / [get]
func (h *PassthroughHandler) Hello(c echo.Context) error {
	return c.String(http.StatusOK, "Hello World!")
}

// Echo returns the posted JSON unchanged inside a success envelope. Nothing
// is stored. An empty body echoes as an empty object.
//
// @Summary      Echo body
// @Tags         misc
// @Accept       json
// @Produce      json
// @Success      201  {object}  passthroughResponse
// @Failure      400  {object}  map[string]string
// @Router       /api [post]
func (h *PassthroughHandler) Echo(c echo.Context) error {
	raw, err := io.ReadAll(io.LimitReader(c.Request().Body, maxPassthroughBody))
	if err != nil {
		return badPayload(c)
	}

	var data any = map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			return badPayload(c)
		}
	}

	metrics.PassthroughRequestsTotal.Inc()
	return c.JSON(http.StatusCreated, passthroughResponse{Message: "success", Data: data})
}
