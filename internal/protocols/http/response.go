package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"mdcatalog/pkg/logger"
	"mdcatalog/pkg/models"
)

// writeOK answers with a status "OK" envelope
func writeOK[T any](c *gin.Context, data T) {
	c.JSON(http.StatusOK, models.NewOK(http.StatusOK, data))
}

// abortWithError answers with a status "error" envelope. Upstream envelope
// errors keep their code and message.
func abortWithError(c *gin.Context, err error) {
	appErr := models.AsAppError(err)
	if appErr.StatusCode >= http.StatusInternalServerError && appErr.Code == models.ErrCodeInternal {
		logger.WithRequestID(c.Request.Context()).Error(err.Error())
	}
	c.AbortWithStatusJSON(appErr.StatusCode, appErr.ToFailure())
}

func notFound(path string) error {
	return models.NewHTTPError(models.ErrCodeNotFound, fmt.Sprintf("no route for %s", path), http.StatusNotFound, nil)
}

func badRequest(message string, err error) error {
	return models.NewHTTPError(models.ErrCodeBadRequest, message, http.StatusBadRequest, err)
}

// readBody reads a size-limited JSON request body
func readBody(c *gin.Context) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, models.NewHTTPError(models.ErrCodeBadRequest, "request body too large", http.StatusRequestEntityTooLarge, err)
		}
		return nil, badRequest("failed to read request body", err)
	}
	if !json.Valid(body) {
		return nil, badRequest("request body is not valid JSON", nil)
	}
	return body, nil
}

// decodeEnvelope parses a catalog envelope and returns its payload
func decodeEnvelope[T any](raw []byte) (T, error) {
	resp, err := models.DecodeResponse[T](raw)
	if err != nil {
		var zero T
		return zero, err
	}
	return models.Unwrap(resp)
}

// bindEnvelope reads the request body as a catalog envelope. On failure it
// has already answered the request.
func bindEnvelope[T any](c *gin.Context) (T, bool) {
	var zero T
	body, err := readBody(c)
	if err != nil {
		abortWithError(c, err)
		return zero, false
	}
	data, err := decodeEnvelope[T](body)
	if err != nil {
		abortWithError(c, err)
		return zero, false
	}
	return data, true
}
