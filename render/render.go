// Package render holds the HTTP helpers shared by every feature package:
// writing JSON bodies, converting errors into apperror responses, and decoding
// plus validating request payloads.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/user/onlinestore/apperror"
)

// maxBodyBytes caps request bodies; every payload in this API is a small JSON object.
const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// JSON serializes data and writes it with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "op", "render.JSON", "err", err)
	}
}

// NoContent writes a 204 response.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error writes err as a standardized apperror.ErrorResponse. Errors that are not
// AppErrors become 500s; server-side failures are logged with their cause and the
// request ID, client errors are not.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}

	if appErr.StatusCode() >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"err", err,
		)
	}

	JSON(w, appErr.StatusCode(), appErr.ToResponse())
}

// Decode reads a JSON request body into dst and validates it with the
// `validate` struct tags. Problems are returned as field-scoped validation errors.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return decodeError(err)
	}
	return Validate(dst)
}

// Validate runs struct validation on v and converts failures into an AppError.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.NewInternalError("failed to validate request", err)
	}

	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = append(fields[fe.Field()], fieldMessage(fe))
	}
	return apperror.NewFieldsError(fields)
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var maxErr *http.MaxBytesError

	switch {
	case errors.Is(err, io.EOF):
		return apperror.NewBadRequestError("request body must not be empty", nil)
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return apperror.NewFieldError(typeErr.Field, fmt.Sprintf("expected %s", typeErr.Type))
	case errors.As(err, &syntaxErr):
		return apperror.NewBadRequestError(fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset), err)
	case errors.As(err, &maxErr):
		return apperror.NewBadRequestError("request body is too large", err)
	default:
		return apperror.NewBadRequestError("invalid request body", err)
	}
}

func fieldMessage(fe validator.FieldError) string {
	isText := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "min", "gte":
		if isText {
			return fmt.Sprintf("ensure this field has at least %s characters", fe.Param())
		}
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "max", "lte":
		if isText {
			return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
		}
		return fmt.Sprintf("ensure this value is less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "alphanum":
		return "may contain only letters and digits"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
