// Package validation wraps go-playground/validator so that every service
// reports rejected payloads the same way: a field-keyed map with localized,
// human-readable messages, batching all violations instead of stopping at the
// first one.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tecnimaq/maintenance-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report violations under the wire name, not the Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct validates the tagged rules of an input struct and returns a
// *domain.ValidationError with every violated field, or nil when the payload
// is accepted. Fields in partial-update inputs are pointers, so absent fields
// are skipped by their omitempty tags.
func Struct(input interface{}) *domain.ValidationError {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	ve := domain.NewValidationError()
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		ve.Add("_", "payload inválido")
		return ve
	}
	for _, fe := range verrs {
		ve.Add(fe.Field(), message(fe))
	}
	return ve
}

// message translates a validator tag into a user-facing Spanish message
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("El campo %s es obligatorio", fe.Field())
	case "email":
		return "Debe ser una dirección de correo válida"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Debe tener al menos %s caracteres", fe.Param())
		}
		return fmt.Sprintf("Debe ser al menos %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Debe tener como máximo %s caracteres", fe.Param())
		}
		return fmt.Sprintf("Debe ser como máximo %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Debe ser mayor o igual a %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Debe ser mayor a %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Debe ser uno de: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return "Debe ser una fecha válida con formato AAAA-MM-DD"
	default:
		return fmt.Sprintf("El campo %s no es válido", fe.Field())
	}
}
