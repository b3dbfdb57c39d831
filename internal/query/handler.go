package query

import (
	"context"
	"errors"

	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/order"
	"github.com/example/storefront/internal/i18n"
	"github.com/example/storefront/internal/session"
)

type Handler struct {
	catalogSvc *catalog.Service
	orderSvc   *order.Service
}

func NewHandler(catalogSvc *catalog.Service, orderSvc *order.Service) *Handler {
	return &Handler{catalogSvc: catalogSvc, orderSvc: orderSvc}
}

// Products
func (h *Handler) Products(ctx context.Context, sess *session.Session, search string) (*ProductsView, error) {
	st := sess.Snapshot()
	products, err := h.catalogSvc.List(ctx, st.Lang, search)
	if err != nil {
		return nil, err
	}
	cv, err := h.cartView(ctx, st)
	if err != nil {
		return nil, err
	}
	return &ProductsView{
		Page:     newPage(st.Lang),
		Search:   search,
		Products: products,
		Cart:     *cv,
	}, nil
}

// Cart
func (h *Handler) Cart(ctx context.Context, sess *session.Session) (*CartPageView, error) {
	st := sess.Snapshot()
	cv, err := h.cartView(ctx, st)
	if err != nil {
		return nil, err
	}
	return &CartPageView{Page: newPage(st.Lang), Cart: *cv}, nil
}

func (h *Handler) cartView(ctx context.Context, st session.State) (*CartView, error) {
	q, err := h.catalogSvc.Quote(ctx, st.Cart.Snapshot(), st.Lang)
	if err != nil {
		return nil, err
	}
	return &CartView{
		Lines:          q.Lines,
		Total:          q.Total,
		Count:          q.Count,
		IsEmpty:        q.IsEmpty(),
		OverlayVisible: !q.IsEmpty(),
	}, nil
}

// Checkout renders a reviewed quote.
func Checkout(lang i18n.Lang, q *catalog.Quote) *CheckoutView {
	return &CheckoutView{Page: newPage(lang), Lines: q.Lines, Total: q.Total}
}

// Confirmation shows the total of the session's last order.
func (h *Handler) Confirmation(sess *session.Session) *ConfirmationView {
	st := sess.Snapshot()
	return &ConfirmationView{
		Page:    newPage(st.Lang),
		Message: i18n.Translate("order_success_message", st.Lang),
		Total:   st.LastOrderTotal,
	}
}

// Orders
func (h *Handler) GetOrder(ctx context.Context, id string, lang i18n.Lang) (*OrderView, error) {
	o, err := h.orderSvc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return h.orderView(ctx, o, lang)
}

// ListOrders returns the most recent orders first (for admin use)
func (h *Handler) ListOrders(ctx context.Context, limit int, lang i18n.Lang) ([]*OrderView, error) {
	orders, err := h.orderSvc.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	views := make([]*OrderView, 0, len(orders))
	for _, o := range orders {
		v, err := h.orderView(ctx, o, lang)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func (h *Handler) orderView(ctx context.Context, o *order.Order, lang i18n.Lang) (*OrderView, error) {
	items := make([]OrderItemView, 0, len(o.Items))
	for _, item := range o.Items {
		name := ""
		e, err := h.catalogSvc.Lookup(ctx, item.ProductID, lang)
		switch {
		case err == nil:
			name = e.Name
		case !errors.Is(err, catalog.ErrProductNotFound):
			return nil, err
		}
		items = append(items, OrderItemView{
			ProductID: item.ProductID,
			Name:      name,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Subtotal:  item.Subtotal(),
		})
	}
	return &OrderView{
		ID:            o.ID,
		CustomerName:  o.CustomerName,
		Address:       o.Address,
		Phone:         o.Phone,
		Email:         o.Email,
		PaymentMethod: o.PaymentMethod,
		CardRef:       o.MaskedCardRef(),
		Total:         o.Total.Round(2),
		CreatedAt:     o.CreatedAt,
		Items:         items,
	}, nil
}
