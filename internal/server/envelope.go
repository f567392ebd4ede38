package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// successEnvelope is the JSON shape of every succeeding mutation or read.
// Data is omitted when a message alone suffices.
type successEnvelope struct {
	Failed  bool   `json:"failed"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func respondOK(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusOK, successEnvelope{Failed: false, Message: message, Data: data})
}

func respondCreated(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusCreated, successEnvelope{Failed: false, Message: message, Data: data})
}
