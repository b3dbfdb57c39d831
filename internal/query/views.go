package query

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/order"
	"github.com/example/storefront/internal/i18n"
)

// Page is shared by every storefront view.
type Page struct {
	Lang      i18n.Lang   `json:"lang"`
	Dir       string      `json:"dir"`
	Languages []i18n.Lang `json:"languages"`
	Currency  string      `json:"currency"`
}

func newPage(lang i18n.Lang) Page {
	return Page{
		Lang:      lang,
		Dir:       i18n.Direction(lang),
		Languages: i18n.Supported,
		Currency:  i18n.Translate("currency", lang),
	}
}

// CartView is the cart overlay. The overlay is shown whenever the cart has
// something in it.
type CartView struct {
	Lines          []catalog.QuotedLine `json:"lines"`
	Total          decimal.Decimal      `json:"total"`
	Count          int                  `json:"count"`
	IsEmpty        bool                 `json:"is_empty"`
	OverlayVisible bool                 `json:"overlay_visible"`
}

type ProductsView struct {
	Page
	Search   string           `json:"search,omitempty"`
	Products []*catalog.Entry `json:"products"`
	Cart     CartView         `json:"cart"`
}

type CartPageView struct {
	Page
	Cart CartView `json:"cart"`
}

type CheckoutView struct {
	Page
	Lines []catalog.QuotedLine `json:"lines"`
	Total decimal.Decimal      `json:"total"`
}

type ConfirmationView struct {
	Page
	Message string          `json:"message"`
	Total   decimal.Decimal `json:"total"`
}

// OrderItemView is an order line resolved against the catalog for display.
type OrderItemView struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderView is the admin view of a stored order. The card reference is
// always masked.
type OrderView struct {
	ID            string              `json:"id"`
	CustomerName  string              `json:"customer_name"`
	Address       string              `json:"address"`
	Phone         string              `json:"phone"`
	Email         string              `json:"email,omitempty"`
	PaymentMethod order.PaymentMethod `json:"payment_method"`
	CardRef       string              `json:"card_ref,omitempty"`
	Total         decimal.Decimal     `json:"total"`
	CreatedAt     time.Time           `json:"created_at"`
	Items         []OrderItemView     `json:"items"`
}
