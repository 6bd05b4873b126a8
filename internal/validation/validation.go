// Package validation checks payloads before they are sent, so an invalid
// form never reaches the network.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"sgpj-client/internal/models"
)

// Mensajes shown inline next to the offending field.
const (
	MsgMontoMayorSaldo = "El monto no puede ser mayor al saldo pendiente"
	MsgMontoPositivo   = "El monto debe ser mayor a 0"
)

// Error lists the invalid fields by their JSON name.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	if len(e.Fields) == 1 {
		for _, msg := range e.Fields {
			return msg
		}
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return strings.Join(parts, "; ")
}

func IsValidation(err error) bool {
	var vErr *Error
	return errors.As(err, &vErr)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateStruct runs the validate tags of v.
func ValidateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate payload: %w", err)
	}
	out := &Error{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields[fe.Field()] = message(fe)
	}
	return out
}

// ValidatePago checks a payment against the contract it is paid into.
func ValidatePago(pago models.PagoCreate, contrato models.Contrato) error {
	if pago.Monto <= 0 {
		return &Error{Fields: map[string]string{"monto": MsgMontoPositivo}}
	}
	if cents(pago.Monto) > cents(contrato.MontoPendiente()) {
		return &Error{Fields: map[string]string{"monto": MsgMontoMayorSaldo}}
	}
	return ValidateStruct(pago)
}

// cents rounds a soles amount to whole céntimos.
func cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_with":
		return "Este campo es obligatorio"
	case "email":
		return "Email inválido"
	case "url":
		return "URL inválida"
	case "e164":
		return "Teléfono inválido, use el formato +51999999999"
	case "oneof":
		return fmt.Sprintf("Valor no permitido, use uno de: %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Debe ser mayor a %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Debe ser mayor o igual a %s", fe.Param())
	case "ltefield":
		return "No puede superar el monto total"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Debe tener al menos %s caracteres", fe.Param())
		}
		return fmt.Sprintf("Debe tener al menos %s elementos", fe.Param())
	case "datetime":
		return fmt.Sprintf("Formato inválido, se espera %s", fe.Param())
	default:
		return "Valor inválido"
	}
}
