package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/releasegpt/pkg/domain/model"
)

// maxBodySize limits request bodies, including webhook payloads
const maxBodySize = 1 << 20

// LoggingMiddleware returns a middleware that logs HTTP requests and puts a
// request scoped logger into the request context
func LoggingMiddleware(ctx context.Context) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			logger := ctxlog.From(ctx).With("request_id", middleware.GetReqID(r.Context()))

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("HTTP request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"duration_ms", time.Since(start).Milliseconds(),
				)
			}()

			next.ServeHTTP(ww, r.WithContext(ctxlog.With(r.Context(), logger)))
		})
	}
}

// errorStatus maps domain errors to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err with the mapped status. Internal errors are logged and
// passed to the error reporter.
func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	status := errorStatus(err)

	if status == http.StatusInternalServerError {
		ctxlog.From(ctx).Error("Request failed", "error", err)
		if h.report != nil {
			h.report(ctx, err)
		}
	} else {
		ctxlog.From(ctx).Debug("Request rejected", "error", err, "status", status)
	}

	writeError(w, err, status)
}

// writeError writes an error response
func writeError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
	}); err != nil {
		ctxlog.From(context.Background()).Error("Failed to encode error response", "error", err)
	}
}

// writeJSON writes v as a JSON response
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}

// decodeBody validates the request body against the named schema and decodes
// it into v. An empty body is accepted when optional is set and leaves v
// untouched.
func (h *handler) decodeBody(r *http.Request, name string, v any, optional bool) error {
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxBodySize))
	if err != nil {
		return goerr.Wrap(model.ErrInvalidInput, "failed to read request body", goerr.V("error", err.Error()))
	}

	if len(body) == 0 {
		if optional {
			return nil
		}
		return goerr.Wrap(model.ErrInvalidInput, "request body is required", goerr.V("schema", name))
	}

	if err := h.validator.Validate(name, body); err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return goerr.Wrap(model.ErrInvalidInput, "failed to decode request body",
			goerr.V("schema", name),
			goerr.V("error", err.Error()),
		)
	}
	return nil
}
