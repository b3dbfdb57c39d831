package command

import (
	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/domain/order"
	"github.com/example/storefront/internal/i18n"
)

// Cart Commands
type AddToCart struct {
	ProductID int64 `json:"product_id"`
}

type UpdateCart struct {
	ProductID int64       `json:"product_id"`
	Action    cart.Action `json:"action"`
}

// Session Commands
type SetLanguage struct {
	Lang i18n.Lang `json:"lang"`
}

// Order Commands
type PlaceOrder struct {
	Form order.CheckoutForm
}
