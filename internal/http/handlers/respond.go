package handlers

import (
	"net/http"

	"github.com/freshbite/shop/internal/apperrors"
	"github.com/gin-gonic/gin"
)

type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"requestId,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

// kindStatus is the one place an error kind turns into an HTTP status.
// Authentication failures are 400s in this API's contract, not 401s.
var kindStatus = map[apperrors.Kind]int{
	apperrors.KindValidation: http.StatusBadRequest,
	apperrors.KindAuth:       http.StatusBadRequest,
	apperrors.KindNotFound:   http.StatusNotFound,
	apperrors.KindStore:      http.StatusInternalServerError,
}

func requestIDFrom(ctx *gin.Context) string {
	v, ok := ctx.Get("request_id")

	if ok {
		s, ok := v.(string)
		if ok && s != "" {
			return s
		}
	}

	// fallback header
	return ctx.GetHeader("X-Request-Id")
}

// RespondAppError maps any error to the wire envelope. Errors that never
// went through apperrors are treated as store failures.
func RespondAppError(ctx *gin.Context, err error) {
	appErr, ok := apperrors.From(err)

	if !ok {
		appErr = apperrors.Store(err)
	}

	status, ok := kindStatus[appErr.Kind]

	if !ok {
		status = http.StatusInternalServerError
	}

	var details interface{}

	if len(appErr.Fields) > 0 {
		details = gin.H{"fields": appErr.Fields}
	}

	RespondError(ctx, status, appErr.Code, appErr.Message, details)
}

func RespondError(ctx *gin.Context, status int, code, message string, details interface{}) {
	ctx.JSON(status, gin.H{
		"error": APIError{
			Code:      code,
			Message:   message,
			RequestID: requestIDFrom(ctx),
			Details:   details,
		},
	})
}

func RespondBadRequest(ctx *gin.Context, message string, details interface{}) {
	RespondError(ctx, http.StatusBadRequest, "invalid_request", message, details)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, "not_found", message, nil)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, "internal_error", message, nil)
}
