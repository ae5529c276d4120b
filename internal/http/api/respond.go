// Package api holds the request decoding and response writing shared by the resource handlers.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fleet/internal/fleet"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func Message(w http.ResponseWriter, r *http.Request, msg string) {
	JSON(w, r, http.StatusOK, messageResponse{Message: msg})
}

// Error maps err onto a status code. Unknown errors are logged and answered with a generic 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *fleet.ValidationError

	switch {
	case errors.As(err, &vErr):
		msg := vErr.Message
		if err != error(vErr) {
			msg = err.Error()
		}

		JSON(w, r, http.StatusBadRequest, errorResponse{Error: msg, Field: vErr.Field})
	case errors.Is(err, fleet.ErrInvalidParameter):
		JSON(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, fleet.ErrNotFound):
		JSON(w, r, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, fleet.ErrUnauthorized):
		JSON(w, r, http.StatusUnauthorized, errorResponse{Error: "no active account found with the given credentials"})
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		JSON(w, r, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// Money renders an amount with exactly two fraction digits.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// OptionalDate renders a nullable day.
func OptionalDate(t *time.Time) *fleet.Date {
	if t == nil {
		return nil
	}

	return new(fleet.NewDate(*t))
}
