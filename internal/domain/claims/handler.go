package claims

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/claimlens/claimlens/pkg/pagination"
	"github.com/claimlens/claimlens/pkg/respond"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/transactions/parse", h.ParseTransaction)
	api.GET("/transactions", h.ListParseRecords)
	api.GET("/transactions/:id", h.GetParseRecord)
}

// WriteCodedError maps a pipeline error onto the response envelope. Coded
// errors (BAD_REQUEST, PARSE_ERROR) become 400s; anything else is a 500.
func WriteCodedError(c echo.Context, err error) error {
	var coded *CodedError
	if errors.As(err, &coded) {
		return respond.Error(c, http.StatusBadRequest, coded.Code, coded.Message)
	}
	return respond.Error(c, http.StatusInternalServerError, "INTERNAL", err.Error())
}

func (h *Handler) ParseTransaction(c echo.Context) error {
	var in Input
	if err := c.Bind(&in); err != nil {
		return respond.Error(c, http.StatusBadRequest, CodeBadRequest, "invalid request body")
	}
	result, err := h.svc.Parse(c.Request().Context(), in)
	if err != nil {
		return WriteCodedError(c, err)
	}
	return respond.OK(c, result)
}

func (h *Handler) ListParseRecords(c echo.Context) error {
	pg := pagination.FromContext(c)
	records, total, err := h.svc.ListRecords(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return respond.Error(c, http.StatusInternalServerError, "INTERNAL", err.Error())
	}
	return respond.OK(c, pagination.NewResponse(records, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetParseRecord(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respond.Error(c, http.StatusBadRequest, CodeBadRequest, "invalid id")
	}
	rec, err := h.svc.GetRecord(c.Request().Context(), id)
	if err != nil {
		return respond.Error(c, http.StatusNotFound, "NOT_FOUND", "parse record not found")
	}
	return respond.OK(c, rec)
}
