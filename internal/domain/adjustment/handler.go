package adjustment

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
	api.POST("/claims/plan", h.PlanAdjustments)
}

func (h *Handler) PlanAdjustments(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return respond.Error(c, http.StatusBadRequest, claims.CodeBadRequest, "invalid request body")
	}
	plan, err := h.svc.Plan(c.Request().Context(), req)
	if err != nil {
		return claims.WriteCodedError(c, err)
	}
	return respond.OK(c, plan)
}
