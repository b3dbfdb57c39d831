package email

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/example/storefront/internal/domain/order"
	"github.com/example/storefront/internal/i18n"
)

// Line is one ordered product as shown in the confirmation email
type Line struct {
	Name     string
	Quantity int
	Subtotal decimal.Decimal
}

// Confirmation carries everything needed to render an order confirmation
type Confirmation struct {
	Lang          i18n.Lang
	CustomerName  string
	CustomerEmail string
	Phone         string
	Address       string
	PaymentMethod order.PaymentMethod
	MaskedCardRef string
	Lines         []Line
	Total         decimal.Decimal
}

// Subject returns the localized subject line
func Subject(lang i18n.Lang) string {
	return i18n.Translate("email_subject", lang)
}

// BuildOrderConfirmationBody builds the plain-text body for order confirmation email
func BuildOrderConfirmationBody(c Confirmation) string {
	var b strings.Builder

	b.WriteString(i18n.Translate("email_body_intro", c.Lang, c.CustomerName))
	b.WriteString("\n\n")

	b.WriteString(i18n.Translate("email_body_items", c.Lang))
	b.WriteString("\n")
	for _, l := range c.Lines {
		fmt.Fprintf(&b, "- %s x %d: %s TND\n", l.Name, l.Quantity, l.Subtotal.StringFixed(2))
	}
	b.WriteString("\n")

	b.WriteString(i18n.Translate("email_body_total", c.Lang, c.Total.StringFixed(2)))
	b.WriteString("\n\n")

	b.WriteString(i18n.Translate("email_payment_method", c.Lang, string(c.PaymentMethod)))
	b.WriteString("\n")
	if c.PaymentMethod == order.PaymentCard {
		b.WriteString(i18n.Translate("email_card", c.Lang, c.MaskedCardRef))
	} else {
		b.WriteString(i18n.Translate("email_cash_on_delivery", c.Lang))
	}
	b.WriteString("\n")

	b.WriteString(i18n.Translate("email_phone", c.Lang, c.Phone))
	b.WriteString("\n")
	b.WriteString(i18n.Translate("email_address", c.Lang, c.Address))
	b.WriteString("\n\n")

	b.WriteString(i18n.Translate("email_body_thanks", c.Lang))
	return b.String()
}
