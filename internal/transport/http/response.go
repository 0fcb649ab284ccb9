package httptransport

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"trading-analyzer-go/internal/platform/errors"
)

// ErrorDetail is the body returned on every failed request.
type ErrorDetail struct {
	Detail string `json:"detail"`
}

// RespondDetail writes an error body with a human-readable detail message.
func RespondDetail(c *gin.Context, httpStatus int, detail string) {
	c.JSON(httpStatus, ErrorDetail{Detail: detail})
}

// StatusForError maps the error taxonomy onto HTTP status codes.
func StatusForError(err error) int {
	switch errors.KindOf(err) {
	case errors.KindContentType, errors.KindCorruptImage:
		return http.StatusBadRequest
	case errors.KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.KindTransport:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// DetailForError extracts the caller-facing message from an error chain.
func DetailForError(err error) string {
	var typed *errors.Error
	if stderrors.As(err, &typed) {
		return typed.Detail()
	}
	return err.Error()
}
