package command

import (
	"errors"

	"github.com/example/storefront/internal/domain/order"
)

func outcome(err error) string {
	switch {
	case errors.Is(err, order.ErrValidation):
		return "invalid"
	case errors.Is(err, order.ErrEmptyCart):
		return "empty_cart"
	default:
		return "failed"
	}
}
