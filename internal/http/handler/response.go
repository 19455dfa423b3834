package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{jsonKeyError: message})
}

func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, echo.Map{jsonKeyMessage: message})
}

// handleHTTPError flattens echo.HTTPError values raised during binding into
// the handler package's error body shape.
func handleHTTPError(c echo.Context, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		message, ok := he.Message.(string)
		if !ok || message == "" {
			message = http.StatusText(he.Code)
		}
		return respondError(c, he.Code, message)
	}

	return respondError(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
