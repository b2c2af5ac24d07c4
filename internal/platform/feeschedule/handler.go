package feeschedule

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/claimlens/claimlens/pkg/respond"
)

type Handler struct {
	lookup Lookuper
}

func NewHandler(lookup Lookuper) *Handler {
	return &Handler{lookup: lookup}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/fees/lookup", h.LookupFee)
}

func (h *Handler) LookupFee(c echo.Context) error {
	code := c.QueryParam("code")
	if code == "" {
		return respond.Error(c, http.StatusBadRequest, "BAD_REQUEST", "code query parameter is required")
	}

	year, _ := strconv.Atoi(c.QueryParam("year"))
	if year == 0 {
		year = time.Now().Year()
	}

	price, err := h.lookup.Lookup(c.Request().Context(), code, year, c.QueryParam("locality"))
	if err != nil {
		return respond.Error(c, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
	}
	return respond.OK(c, price)
}
