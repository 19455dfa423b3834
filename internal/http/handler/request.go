package handler

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"
)

// requestBodyLimit caps how much of a request body the strict decoder reads.
// Matches the server-level body limit.
const requestBodyLimit int64 = 1 << 20

// bindStrictJSON decodes a JSON request body into dst, rejecting unknown
// fields and trailing content. Non-JSON content types are rejected outright
// rather than silently binding an empty struct.
func bindStrictJSON(c echo.Context, dst interface{}) error {
	mediaType, _, err := mime.ParseMediaType(c.Request().Header.Get(echo.HeaderContentType))
	if err != nil || mediaType != echo.MIMEApplicationJSON {
		return echo.NewHTTPError(http.StatusUnsupportedMediaType, msgContentTypeJSONRequired)
	}

	decoder := json.NewDecoder(io.LimitReader(c.Request().Body, requestBodyLimit))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequestBody)
	}

	if decoder.More() {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidRequestBody)
	}

	return nil
}
