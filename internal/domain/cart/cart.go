package cart

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidProduct = errors.New("product_id must be positive")
	ErrInvalidAction  = errors.New("action must be increase, decrease or remove")
)

// Action is a quantity change applied to an existing line.
type Action string

const (
	ActionIncrease Action = "increase"
	ActionDecrease Action = "decrease"
	ActionRemove   Action = "remove"
)

// ParseAction validates an action name.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionIncrease, ActionDecrease, ActionRemove:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAction, s)
}

// Line is one product's accumulated quantity. Quantity is always positive.
type Line struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// Cart holds at most one line per product, in the order products were first
// added. The zero value is an empty cart.
type Cart struct {
	Lines []Line `json:"lines"`
}

// PriceFunc resolves the current catalog price of a product; ok is false when
// the product no longer exists.
type PriceFunc func(productID int64) (price decimal.Decimal, ok bool)

// Add increments the line for productID, appending a new line with quantity 1
// if there is none.
func (c *Cart) Add(productID int64) error {
	if productID <= 0 {
		return ErrInvalidProduct
	}
	if i := c.index(productID); i >= 0 {
		c.Lines[i].Quantity++
		return nil
	}
	c.Lines = append(c.Lines, Line{ProductID: productID, Quantity: 1})
	return nil
}

// SetQuantityDelta applies action to the line for productID. Decreasing to
// zero removes the line. A product that is not in the cart is left alone.
func (c *Cart) SetQuantityDelta(productID int64, action Action) error {
	if _, err := ParseAction(string(action)); err != nil {
		return err
	}
	i := c.index(productID)
	if i < 0 {
		return nil
	}

	switch action {
	case ActionIncrease:
		c.Lines[i].Quantity++
	case ActionDecrease:
		c.Lines[i].Quantity--
		if c.Lines[i].Quantity <= 0 {
			c.removeAt(i)
		}
	case ActionRemove:
		c.removeAt(i)
	}
	return nil
}

// Total sums quantity x current price. Lines whose product no longer
// resolves are skipped.
func (c Cart) Total(price PriceFunc) decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		p, ok := price(l.ProductID)
		if !ok {
			continue
		}
		total = total.Add(p.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Count is the number of distinct lines.
func (c Cart) Count() int {
	return len(c.Lines)
}

// Quantity returns the quantity held for productID, or 0.
func (c Cart) Quantity(productID int64) int {
	if i := c.index(productID); i >= 0 {
		return c.Lines[i].Quantity
	}
	return 0
}

func (c *Cart) Clear() {
	c.Lines = nil
}

// Snapshot returns a copy of the lines that later mutations do not affect.
func (c Cart) Snapshot() []Line {
	if len(c.Lines) == 0 {
		return nil
	}
	return append([]Line(nil), c.Lines...)
}

func (c Cart) index(productID int64) int {
	for i, l := range c.Lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	if len(c.Lines) == 0 {
		c.Lines = nil
	}
}
