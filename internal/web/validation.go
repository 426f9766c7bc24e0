package web

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/leobarberi/Projeto-organizador-react-version2/internal/core"
)

var errInvalidRequest = errors.New("invalid request")

// summaryRequest carries the optional date bounds of a summary.
type summaryRequest struct {
	DataInicial string `json:"data_inicial" validate:"omitempty,saledate"`
	DataFinal   string `json:"data_final" validate:"omitempty,saledate"`
}

// exportRequest adds the output format to the summary bounds.
type exportRequest struct {
	Bounds summaryRequest
	Format string `json:"format" validate:"required,oneof=csv xlsx"`
}

func summaryRequestFromQuery(r *http.Request) summaryRequest {
	q := r.URL.Query()
	return summaryRequest{
		DataInicial: strings.TrimSpace(q.Get("data_inicial")),
		DataFinal:   strings.TrimSpace(q.Get("data_final")),
	}
}

// ValidationDetail describes one rejected field.
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validationError wraps the sentinel that decides the status and code,
// plus per-field details for JSON clients.
type validationError struct {
	base    error
	details []ValidationDetail
}

func (e *validationError) Error() string {
	parts := make([]string, len(e.details))
	for i, d := range e.details {
		parts[i] = d.Field + ": " + d.Message
	}
	return fmt.Sprintf("%s: %s", e.base, strings.Join(parts, "; "))
}

func (e *validationError) Unwrap() error { return e.base }

// newValidator returns a validator that reports JSON field names and knows
// the saledate tag.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// saledate accepts anything core.ParseDate understands.
	err := v.RegisterValidation("saledate", func(fl validator.FieldLevel) bool {
		_, ok := core.ParseDate(fl.Field().String())
		return ok
	})
	if err != nil {
		panic(fmt.Sprintf("register saledate validation: %v", err))
	}
	return v
}

// validateRequest checks req and converts failures to a *validationError.
// A bad date wraps core.ErrInvalidDate; anything else wraps errInvalidRequest.
func (s *Server) validateRequest(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", errInvalidRequest, err)
	}

	verr := &validationError{base: errInvalidRequest}
	for _, fe := range fieldErrs {
		if fe.Tag() == "saledate" {
			verr.base = core.ErrInvalidDate
		}
		verr.details = append(verr.details, ValidationDetail{
			Field:   fe.Field(),
			Message: validationMessage(fe),
		})
	}
	return verr
}

// validationMessage returns a human-readable validation message.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "oneof":
		return "Must be one of: " + fe.Param()
	case "saledate":
		return "Invalid date, use YYYY-MM-DD or DD/MM/YYYY"
	default:
		return "Invalid value"
	}
}
