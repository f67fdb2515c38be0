// Package response writes JSON bodies and turns errors into localized,
// user-facing messages.
package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fekuna/gesstock-service/internal/apperror"
	"github.com/fekuna/gesstock-service/internal/pkg/i18n"
	"github.com/fekuna/gesstock-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ErrorBody struct {
	Error   string                `json:"error"`
	Message string                `json:"message"`
	Fields  []apperror.FieldError `json:"fields,omitempty"`
}

type Responder struct {
	tr       *i18n.Translator
	logger   logger.ZapLogger
	messages map[error]string
}

func NewResponder(tr *i18n.Translator, log logger.ZapLogger) *Responder {
	return &Responder{tr: tr, logger: log, messages: map[error]string{}}
}

// WithMessages returns a copy that renders the given sentinel errors with
// handler-specific message ids.
func (r *Responder) WithMessages(m map[error]string) *Responder {
	merged := make(map[error]string, len(r.messages)+len(m))
	for k, v := range r.messages {
		merged[k] = v
	}
	for k, v := range m {
		merged[k] = v
	}
	return &Responder{tr: r.tr, logger: r.logger, messages: merged}
}

func (r *Responder) Localize(c *gin.Context, messageID string, data map[string]any) string {
	return r.tr.Localize(c.GetHeader("Accept-Language"), messageID, data)
}

func (r *Responder) JSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// Message writes {"message": ...} plus any extra keys.
func (r *Responder) Message(c *gin.Context, status int, messageID string, extra gin.H) {
	body := gin.H{"message": r.Localize(c, messageID, nil)}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

func (r *Responder) InvalidBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorBody{
		Error:   "invalid_body",
		Message: r.Localize(c, "InvalidBody", nil),
	})
	r.logger.Debug("invalid request body", zap.Error(err))
}

func (r *Responder) Error(c *gin.Context, err error) {
	status, code, messageID := r.classify(err)

	body := ErrorBody{Error: code}

	var ve *apperror.ValidationError
	if errors.As(err, &ve) {
		names := make([]string, len(ve.Fields))
		for i, f := range ve.Fields {
			names[i] = f.Field
		}
		body.Fields = ve.Fields
		body.Message = r.Localize(c, messageID, map[string]any{"Fields": strings.Join(names, ", ")})
	} else {
		body.Message = r.Localize(c, messageID, nil)
	}

	if status >= http.StatusInternalServerError {
		r.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		r.logger.Debug("request rejected", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, body)
}

func (r *Responder) classify(err error) (status int, code, messageID string) {
	var ve *apperror.ValidationError
	switch {
	case errors.As(err, &ve):
		status, code, messageID = http.StatusBadRequest, "validation_error", "ValidationFailed"
	case errors.Is(err, apperror.ErrUnauthenticated):
		status, code, messageID = http.StatusUnauthorized, "unauthenticated", "Unauthenticated"
	case errors.Is(err, apperror.ErrNotFound):
		status, code, messageID = http.StatusNotFound, "not_found", "NotFound"
	case errors.Is(err, apperror.ErrAlreadyExists):
		status, code, messageID = http.StatusConflict, "already_exists", "Internal"
	case errors.Is(err, apperror.ErrBusy):
		status, code, messageID = http.StatusServiceUnavailable, "busy", "Busy"
	case apperror.IsStorageReadError(err):
		status, code, messageID = http.StatusInternalServerError, "storage_read_error", "StorageRead"
	case apperror.IsStorageWriteError(err):
		status, code, messageID = http.StatusInternalServerError, "storage_write_error", "StorageWrite"
	default:
		status, code, messageID = http.StatusInternalServerError, "internal", "Internal"
	}

	for sentinel, id := range r.messages {
		if errors.Is(err, sentinel) {
			messageID = id
			break
		}
	}
	return status, code, messageID
}
