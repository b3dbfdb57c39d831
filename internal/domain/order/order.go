package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrPersistence   = errors.New("order could not be stored")
)

type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
)

// Item is the snapshot of one cart line at checkout. Price is the catalog
// price at that moment.
type Item struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Subtotal is Price x Quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is an immutable record of a completed checkout.
type Order struct {
	ID            string          `json:"id"`
	CustomerName  string          `json:"customer_name"`
	Address       string          `json:"address"`
	Phone         string          `json:"phone"`
	Email         string          `json:"email,omitempty"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	CardRef       string          `json:"-"`
	Total         decimal.Decimal `json:"total"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []Item          `json:"items"`
}

// MaskedCardRef is the card reference with all but the last four characters
// hidden. Cash orders have none.
func (o *Order) MaskedCardRef() string {
	if o.PaymentMethod != PaymentCard {
		return ""
	}
	return MaskCardRef(o.CardRef)
}

// MaskCardRef replaces every character except the last four with '*'.
func MaskCardRef(ref string) string {
	r := []rune(ref)
	if len(r) <= 4 {
		return ref
	}
	masked := make([]rune, len(r))
	for i := range r {
		if i < len(r)-4 {
			masked[i] = '*'
		} else {
			masked[i] = r[i]
		}
	}
	return string(masked)
}

// Repository persists orders. CreateOrder must store the header and all of
// its items atomically.
type Repository interface {
	CreateOrder(ctx context.Context, o *Order) error
	GetOrder(ctx context.Context, id string) (*Order, error)
	ListOrders(ctx context.Context, limit int) ([]*Order, error)
}

type Service struct {
	repo  Repository
	newID func() string
	now   func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		newID: func() string { return uuid.New().String() },
		now:   time.Now,
	}
}

// WithClock replaces the creation-time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Place validates the form and persists a new order for items with the given
// server-side total. The card reference is kept only for card payments.
func (s *Service) Place(ctx context.Context, form CheckoutForm, items []Item, total decimal.Decimal) (*Order, error) {
	form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	cardRef := ""
	if form.Method() == PaymentCard {
		cardRef = form.CardRef
	}

	o := &Order{
		ID:            s.newID(),
		CustomerName:  form.Name,
		Address:       form.Address,
		Phone:         form.Phone,
		Email:         form.Email,
		PaymentMethod: form.Method(),
		CardRef:       cardRef,
		Total:         total,
		CreatedAt:     s.now().UTC(),
		Items:         append([]Item(nil), items...),
	}

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return o, nil
}

// Get returns a stored order or ErrOrderNotFound.
func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrOrderNotFound
	}
	return s.repo.GetOrder(ctx, id)
}

// List returns the most recent orders first.
func (s *Service) List(ctx context.Context, limit int) ([]*Order, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListOrders(ctx, limit)
}
