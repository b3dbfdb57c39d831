package order

import (
	"time"

	"github.com/shopspring/decimal"
)

const EventOrderPlaced = "OrderPlaced"

// OrderPlaced is published after an order commits. It carries no customer
// contact or card data.
type OrderPlaced struct {
	OrderID       string          `json:"order_id"`
	Items         []Item          `json:"items"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	PlacedAt      time.Time       `json:"placed_at"`
}

// PlacedEvent builds the OrderPlaced event for o.
func PlacedEvent(o *Order) OrderPlaced {
	return OrderPlaced{
		OrderID:       o.ID,
		Items:         o.Items,
		Total:         o.Total,
		PaymentMethod: o.PaymentMethod,
		PlacedAt:      o.CreatedAt,
	}
}
