package command

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/example/storefront/internal/audit"
	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/order"
	"github.com/example/storefront/internal/email"
	"github.com/example/storefront/internal/i18n"
	"github.com/example/storefront/internal/metrics"
	"github.com/example/storefront/internal/session"
)

// Auditor appends completed orders to the audit log.
type Auditor interface {
	Append(ctx context.Context, r audit.Record) error
}

// Publisher emits domain events to the message broker.
type Publisher interface {
	Publish(ctx context.Context, key, eventType string, event any) error
}

// Notifier sends the order confirmation email.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, c email.Confirmation) error
}

type Handler struct {
	catalogSvc *catalog.Service
	orderSvc   *order.Service
	auditor    Auditor
	publisher  Publisher
	notifier   Notifier
	log        *logrus.Entry
}

// NewHandler wires the command side. publisher may be nil when no broker is
// configured.
func NewHandler(
	catalogSvc *catalog.Service,
	orderSvc *order.Service,
	auditor Auditor,
	publisher Publisher,
	notifier Notifier,
	log *logrus.Entry,
) *Handler {
	return &Handler{
		catalogSvc: catalogSvc,
		orderSvc:   orderSvc,
		auditor:    auditor,
		publisher:  publisher,
		notifier:   notifier,
		log:        log,
	}
}

// SetLanguage changes the session's display language
func (h *Handler) SetLanguage(sess *session.Session, cmd SetLanguage) {
	sess.Update(func(st *session.State) {
		st.Lang = cmd.Lang
	})
}

// AddToCart adds one unit of a catalog product to the session cart
func (h *Handler) AddToCart(ctx context.Context, sess *session.Session, cmd AddToCart) error {
	lang := sess.Snapshot().Lang
	if _, err := h.catalogSvc.Lookup(ctx, cmd.ProductID, lang); err != nil {
		return err
	}
	return sess.UpdateErr(func(st *session.State) error {
		return st.Cart.Add(cmd.ProductID)
	})
}

// UpdateCart applies an increase, decrease or remove action to a cart line
func (h *Handler) UpdateCart(ctx context.Context, sess *session.Session, cmd UpdateCart) error {
	return sess.UpdateErr(func(st *session.State) error {
		return st.Cart.SetQuantityDelta(cmd.ProductID, cmd.Action)
	})
}

// ReviewCheckout prices the cart and remembers the total on the session.
// An empty cart returns order.ErrEmptyCart and leaves the session unchanged.
func (h *Handler) ReviewCheckout(ctx context.Context, sess *session.Session) (*catalog.Quote, error) {
	var quote *catalog.Quote
	err := sess.UpdateErr(func(st *session.State) error {
		q, err := h.catalogSvc.Quote(ctx, st.Cart.Snapshot(), st.Lang)
		if err != nil {
			return err
		}
		if q.IsEmpty() {
			return order.ErrEmptyCart
		}
		st.PendingCheckoutTotal = q.Total
		quote = q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quote, nil
}

// PlaceOrder converts the session cart into a persisted order.
//
// Validation, pricing, persistence and clearing the cart happen under the
// session lock, so a replayed submission sees the emptied cart. The audit,
// publish and notify steps run afterwards; their failures are logged and
// never returned.
func (h *Handler) PlaceOrder(ctx context.Context, sess *session.Session, cmd PlaceOrder) (*order.Order, error) {
	var (
		placed *order.Order
		quote  *catalog.Quote
		lang   i18n.Lang
	)

	err := sess.UpdateErr(func(st *session.State) error {
		lang = st.Lang
		form := cmd.Form
		form.Normalize()
		if err := form.Validate(); err != nil {
			return err
		}
		if st.Cart.IsEmpty() {
			return order.ErrEmptyCart
		}

		q, err := h.catalogSvc.Quote(ctx, st.Cart.Snapshot(), st.Lang)
		if err != nil {
			return err
		}
		if q.IsEmpty() {
			return order.ErrEmptyCart
		}
		if !st.PendingCheckoutTotal.IsZero() && !st.PendingCheckoutTotal.Equal(q.Total) {
			h.log.WithFields(logrus.Fields{
				"reviewed": st.PendingCheckoutTotal.StringFixed(2),
				"current":  q.Total.StringFixed(2),
			}).Warn("cart total changed since review")
		}

		o, err := h.orderSvc.Place(ctx, form, orderItems(q), q.Total)
		if err != nil {
			return err
		}

		st.Cart.Clear()
		st.PendingCheckoutTotal = decimal.Zero
		st.LastOrderTotal = o.Total
		placed, quote = o, q
		return nil
	})
	if err != nil {
		metrics.OrdersTotal.WithLabelValues(outcome(err)).Inc()
		return nil, err
	}
	metrics.OrdersTotal.WithLabelValues("placed").Inc()

	log := h.log.WithFields(logrus.Fields{
		"order_id": placed.ID,
		"total":    placed.Total.StringFixed(2),
		"payment":  placed.PaymentMethod,
	})
	log.Info("order placed")

	// The order is committed; a cancelled request must not skip its audit row.
	stepCtx := context.WithoutCancel(ctx)
	h.bestEffort(log, "audit", h.appendAudit(stepCtx, placed))
	h.bestEffort(log, "publish", h.publishPlaced(stepCtx, placed))
	h.bestEffort(log, "notify", h.notify(stepCtx, placed, quote, lang))

	return placed, nil
}

func (h *Handler) bestEffort(log *logrus.Entry, step string, err error) {
	if err == nil {
		return
	}
	metrics.BestEffortFailures.WithLabelValues(step).Inc()
	log.WithError(err).WithField("step", step).Warn("post-order step failed")
}

func (h *Handler) appendAudit(ctx context.Context, o *order.Order) error {
	if h.auditor == nil {
		return nil
	}
	names := h.frenchNames(ctx, o.Items)
	return h.auditor.Append(ctx, audit.NewRecord(o, func(id int64) (string, bool) {
		n, ok := names[id]
		return n, ok
	}))
}

// frenchNames resolves the names used in the audit log, which is always
// written in French.
func (h *Handler) frenchNames(ctx context.Context, items []order.Item) map[int64]string {
	names := make(map[int64]string, len(items))
	for _, item := range items {
		e, err := h.catalogSvc.Lookup(ctx, item.ProductID, i18n.French)
		if err != nil {
			continue
		}
		names[item.ProductID] = e.Name
	}
	return names
}

func (h *Handler) publishPlaced(ctx context.Context, o *order.Order) error {
	if h.publisher == nil {
		return nil
	}
	return h.publisher.Publish(ctx, o.ID, order.EventOrderPlaced, order.PlacedEvent(o))
}

func (h *Handler) notify(ctx context.Context, o *order.Order, q *catalog.Quote, lang i18n.Lang) error {
	if h.notifier == nil {
		return nil
	}
	lines := make([]email.Line, 0, len(q.Lines))
	for _, l := range q.Lines {
		lines = append(lines, email.Line{Name: l.Name, Quantity: l.Quantity, Subtotal: l.Subtotal})
	}
	return h.notifier.SendOrderConfirmation(ctx, email.Confirmation{
		Lang:          lang,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.Email,
		Phone:         o.Phone,
		Address:       o.Address,
		PaymentMethod: o.PaymentMethod,
		MaskedCardRef: o.MaskedCardRef(),
		Lines:         lines,
		Total:         o.Total,
	})
}

func orderItems(q *catalog.Quote) []order.Item {
	items := make([]order.Item, 0, len(q.Lines))
	for _, l := range q.Lines {
		items = append(items, order.Item{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     l.UnitPrice,
		})
	}
	return items
}
