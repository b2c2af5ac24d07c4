package risk

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/claimlens/claimlens/internal/domain/claims"
	"github.com/claimlens/claimlens/pkg/respond"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/claims/analyze", h.AnalyzeClaim)
}

func (h *Handler) AnalyzeClaim(c echo.Context) error {
	var in claims.Input
	if err := c.Bind(&in); err != nil {
		return respond.Error(c, http.StatusBadRequest, claims.CodeBadRequest, "invalid request body")
	}
	assessment, err := h.svc.Analyze(c.Request().Context(), in)
	if err != nil {
		return claims.WriteCodedError(c, err)
	}
	return respond.OK(c, assessment)
}
