package order

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError names the form field that failed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("missing required field: %s", e.Field)
	}
	return fmt.Sprintf("invalid field %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// CheckoutForm is the customer-submitted part of an order. Totals and prices
// are never part of it.
type CheckoutForm struct {
	Name          string `form:"name" validate:"required"`
	Address       string `form:"address" validate:"required"`
	Phone         string `form:"phone" validate:"required"`
	Email         string `form:"email"`
	PaymentMethod string `form:"payment_method" validate:"required,oneof=card cash"`
	CardRef       string `form:"card_number"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	return v
}

// Normalize trims surrounding whitespace from every field.
func (f *CheckoutForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Address = strings.TrimSpace(f.Address)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Email = strings.TrimSpace(f.Email)
	f.PaymentMethod = strings.ToLower(strings.TrimSpace(f.PaymentMethod))
	f.CardRef = strings.TrimSpace(f.CardRef)
}

// Validate reports the first missing or invalid field. Call Normalize first
// so blank values count as missing.
func (f CheckoutForm) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "oneof" {
			return &ValidationError{Field: fe.Field(), Reason: "must be one of card, cash"}
		}
		return &ValidationError{Field: fe.Field()}
	}
	return err
}

// Method is the payment method as a typed value.
func (f CheckoutForm) Method() PaymentMethod {
	return PaymentMethod(f.PaymentMethod)
}
