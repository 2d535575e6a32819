package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/trailmate/trailmate-api/internal/core/domain"
)

const locationBody = "body"

// FieldError is one entry of a validation failure response.
type FieldError struct {
	Msg      string `json:"msg"`
	Param    string `json:"param,omitempty"`
	Location string `json:"location,omitempty"`
	Value    any    `json:"value,omitempty"`
}

// ValidationError is rendered as 400 {"errors": [...]}.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Msg
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// NewValidationError builds a ValidationError from already formatted entries.
func NewValidationError(errs ...FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// messenger is implemented by request types that carry their own messages,
// keyed by JSON field name.
type messenger interface {
	messages() map[string]string
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	var msgs map[string]string
	if m, ok := i.(messenger); ok {
		msgs = m.messages()
	}

	out := make([]FieldError, 0, len(ve))
	for _, fe := range ve {
		msg, ok := msgs[fe.Field()]
		if !ok {
			msg = defaultMessage(fe)
		}
		out = append(out, FieldError{
			Msg:      msg,
			Param:    fe.Field(),
			Location: locationBody,
			Value:    fe.Value(),
		})
	}
	return &ValidationError{Errors: out}
}

// Fields checks raw against schema. Text fields must be a non-empty scalar and
// number fields must hold a number, either as a JSON number or a numeric string.
// Keys not named by the schema are dropped.
func (ev *echoValidator) Fields(schema domain.PostSchema, raw map[string]any) (domain.Fields, error) {
	fields := make(domain.Fields, len(schema.Fields))
	var errs []FieldError

	for _, spec := range schema.Fields {
		v, ok := ev.field(spec, raw[spec.Name])
		if !ok {
			errs = append(errs, FieldError{
				Msg:      spec.Message,
				Param:    spec.Name,
				Location: locationBody,
				Value:    raw[spec.Name],
			})
			continue
		}
		fields[spec.Name] = v
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return fields, nil
}

func (ev *echoValidator) field(spec domain.FieldSpec, v any) (any, bool) {
	switch spec.Type {
	case domain.FieldNumber:
		switch n := v.(type) {
		case float64:
			return n, true
		case string:
			s := strings.TrimSpace(n)
			if ev.v.Var(s, "required,numeric") != nil {
				return nil, false
			}
			f, err := strconv.ParseFloat(s, 64)
			return f, err == nil
		default:
			return nil, false
		}
	default:
		var s string
		switch t := v.(type) {
		case string:
			s = t
		case float64:
			s = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			s = strconv.FormatBool(t)
		default:
			return nil, false
		}
		if ev.v.Var(s, "required") != nil {
			return nil, false
		}
		return s, true
	}
}

func defaultMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s must match %s", field, strings.ToLower(fe.Param()))
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
