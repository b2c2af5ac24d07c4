// Package respond renders the API's uniform response envelope: every reply
// carries a status field, successful replies carry data, failed ones carry a
// structured {code, message} error.
package respond

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorBody is the structured error carried on failed responses.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Envelope is the wire shape of every API response.
type Envelope struct {
	Status string      `json:"status"` // "success" or "error"
	Data   interface{} `json:"data,omitempty"`
	Error  *ErrorBody  `json:"error,omitempty"`
}

// OK writes a 200 success envelope.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Envelope{Status: "success", Data: data})
}

// Created writes a 201 success envelope.
func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Envelope{Status: "success", Data: data})
}

// Error writes an error envelope with the given HTTP status.
func Error(c echo.Context, httpStatus int, code, message string) error {
	return c.JSON(httpStatus, Envelope{Status: "error", Error: &ErrorBody{Code: code, Message: message}})
}
