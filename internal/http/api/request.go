package api

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/MrJamesThe3rd/fleet/internal/fleet"
)

var validate = newValidator()

// newValidator reports fields by their JSON name so errors match the request body.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Decode reads a JSON body into dst, a pointer to a struct, and checks its validate tags.
func Decode(r *http.Request, dst any) error {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		return fleet.Invalid("", "malformed request body: %v", err)
	}

	err := validate.Struct(dst)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validating request: %w", err)
	}

	fe := fieldErrs[0]

	return fleet.Invalid(fe.Field(), "%s", describe(fe))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "max":
		return "must have at most " + fe.Param() + " characters"
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice", fmt.Sprint(fe.Value()))
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// ID parses the {id} path parameter. A non-numeric id names no record.
func ID(r *http.Request) (int64, error) {
	s := chi.URLParam(r, "id")

	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("record %q: %w", s, fleet.ErrNotFound)
	}

	return id, nil
}

// QueryID parses an optional integer query parameter.
func QueryID(r *http.Request, name string) (*int64, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}

	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q must be an integer", fleet.ErrInvalidParameter, name, s)
	}

	return &id, nil
}

// QueryMonth parses the optional mes parameter.
func QueryMonth(r *http.Request) (*fleet.Month, error) {
	s := r.URL.Query().Get("mes")
	if s == "" {
		return nil, nil
	}

	m, err := fleet.ParseMonth(s)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// QueryDate parses an optional YYYY-MM-DD query parameter.
func QueryDate(r *http.Request, name string) (*time.Time, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}

	d, err := fleet.ParseDate(s)
	if err != nil {
		return nil, err
	}

	return &d.Time, nil
}

// DayOf unwraps a nullable day from a request body.
func DayOf(d *fleet.Date) *time.Time {
	if d == nil {
		return nil
	}

	return &d.Time
}
