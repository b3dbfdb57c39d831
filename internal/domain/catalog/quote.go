package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/i18n"
)

// QuotedLine is a cart line priced against the current catalog.
type QuotedLine struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	ImageRef  string          `json:"image_ref,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Quote is a priced cart. Lines whose product no longer exists are left out
// of both Lines and Total.
type Quote struct {
	Lines []QuotedLine    `json:"lines"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

func (q *Quote) IsEmpty() bool {
	return len(q.Lines) == 0
}

// Quote prices lines in lang using current catalog prices.
func (s *Service) Quote(ctx context.Context, lines []cart.Line, lang i18n.Lang) (*Quote, error) {
	q := &Quote{Lines: make([]QuotedLine, 0, len(lines))}
	prices := make(map[int64]decimal.Decimal, len(lines))

	for _, l := range lines {
		e, err := s.Lookup(ctx, l.ProductID, lang)
		if errors.Is(err, ErrProductNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		prices[l.ProductID] = e.Price
		q.Lines = append(q.Lines, QuotedLine{
			ProductID: l.ProductID,
			Name:      e.Name,
			ImageRef:  e.ImageRef,
			Quantity:  l.Quantity,
			UnitPrice: e.Price,
			Subtotal:  e.Price.Mul(decimal.NewFromInt(int64(l.Quantity))),
		})
		q.Count += l.Quantity
	}

	c := cart.Cart{Lines: lines}
	q.Total = c.Total(func(id int64) (decimal.Decimal, bool) {
		p, ok := prices[id]
		return p, ok
	})
	return q, nil
}
