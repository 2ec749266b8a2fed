// Package respond writes the JSON envelope every API route answers with:
//
//	{"success": true,  "message": "...", "count": 3, "data": ...}
//	{"success": false, "message": "..."}
package respond

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"runtime/debug"

	"github.com/YatharthSanghavi/wt-project/internal/app/system/apierr"
	"github.com/YatharthSanghavi/wt-project/internal/app/system/limits"
	"go.uber.org/zap"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

func OKMessage(w http.ResponseWriter, msg string, data any) {
	JSON(w, http.StatusOK, envelope{Success: true, Message: msg, Data: data})
}

func Created(w http.ResponseWriter, msg string, data any) {
	JSON(w, http.StatusCreated, envelope{Success: true, Message: msg, Data: data})
}

// List writes a collection with its element count.
func List(w http.ResponseWriter, data any, count int) {
	JSON(w, http.StatusOK, envelope{Success: true, Count: &count, Data: data})
}

// Deleted answers a successful delete with an empty data object.
func Deleted(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, envelope{Success: true, Message: msg, Data: struct{}{}})
}

// Fail writes a failure envelope.
func Fail(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, envelope{Success: false, Message: msg})
}

// StatusFor maps an error kind to its HTTP status. Conflicts (guard blocks,
// duplicate names, full events) are reported as 400 like validation errors.
func StatusFor(kind apierr.Kind) int {
	switch kind {
	case apierr.KindNotFound:
		return http.StatusNotFound
	case apierr.KindForbidden:
		return http.StatusForbidden
	case apierr.KindValidation, apierr.KindConflict:
		return http.StatusBadRequest
	case apierr.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err. Client errors carry their own message; anything else is
// logged and hidden behind a generic 500.
func Error(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	var ae *apierr.Error
	if errors.As(err, &ae) && ae.Kind != apierr.KindInternal {
		Fail(w, StatusFor(ae.Kind), ae.Message)
		return
	}
	if log != nil {
		log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	Fail(w, http.StatusInternalServerError, "Internal Server Error")
}

// Decode reads a JSON body into dst. Malformed or oversized bodies are
// validation errors.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apierr.Validation("Request body is required")
		}
		return apierr.Wrap(apierr.KindValidation, "Invalid request body", err)
	}
	return nil
}

// NotFound is the router's fallback for unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	Fail(w, http.StatusNotFound, "Route not found")
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	Fail(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// Recoverer turns a panicking handler into a 500 envelope.
func Recoverer(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.Error("panic recovered",
						zap.Any("panic", rec),
						zap.String("path", r.URL.Path),
						zap.ByteString("stack", debug.Stack()))
					Fail(w, http.StatusInternalServerError, "Internal Server Error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
