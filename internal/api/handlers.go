package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/example/storefront/internal/api/middleware"
	"github.com/example/storefront/internal/command"
	"github.com/example/storefront/internal/domain/cart"
	"github.com/example/storefront/internal/domain/catalog"
	"github.com/example/storefront/internal/domain/order"
	"github.com/example/storefront/internal/query"
	"github.com/example/storefront/internal/session"
)

type Handlers struct {
	cmdHandler   *command.Handler
	queryHandler *query.Handler
	log          *logrus.Entry
}

func NewHandlers(cmdHandler *command.Handler, queryHandler *query.Handler, log *logrus.Entry) *Handlers {
	return &Handlers{
		cmdHandler:   cmdHandler,
		queryHandler: queryHandler,
		log:          log,
	}
}

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// Product Handlers

func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)
	view, err := h.queryHandler.Products(r.Context(), sess, r.URL.Query().Get("search"))
	if err != nil {
		h.respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Cart Handlers

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.queryHandler.Cart(r.Context(), mustSession(r))
	if err != nil {
		h.respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDParam(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Field: "product_id"})
		return
	}

	if err := h.cmdHandler.AddToCart(r.Context(), mustSession(r), command.AddToCart{ProductID: productID}); err != nil {
		h.respondErr(w, err)
		return
	}
	http.Redirect(w, r, "/products", http.StatusFound)
}

func (h *Handlers) UpdateCart(w http.ResponseWriter, r *http.Request) {
	productID, err := productIDParam(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Field: "product_id"})
		return
	}
	action, err := cart.ParseAction(r.FormValue("action"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Field: "action"})
		return
	}

	cmd := command.UpdateCart{ProductID: productID, Action: action}
	if err := h.cmdHandler.UpdateCart(r.Context(), mustSession(r), cmd); err != nil {
		h.respondErr(w, err)
		return
	}
	http.Redirect(w, r, "/products", http.StatusFound)
}

// Checkout Handlers

func (h *Handlers) ReviewCheckout(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)
	quote, err := h.cmdHandler.ReviewCheckout(r.Context(), sess)
	if errors.Is(err, order.ErrEmptyCart) {
		http.Redirect(w, r, "/cart", http.StatusFound)
		return
	}
	if err != nil {
		h.respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, query.Checkout(sess.Snapshot().Lang, quote))
}

func (h *Handlers) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid form body"})
		return
	}

	form := order.CheckoutForm{
		Name:          r.PostForm.Get("name"),
		Address:       r.PostForm.Get("address"),
		Phone:         r.PostForm.Get("phone"),
		Email:         r.PostForm.Get("email"),
		PaymentMethod: r.PostForm.Get("payment_method"),
		CardRef:       r.PostForm.Get("card_number"),
	}

	if _, err := h.cmdHandler.PlaceOrder(r.Context(), mustSession(r), command.PlaceOrder{Form: form}); err != nil {
		h.respondErr(w, err)
		return
	}
	http.Redirect(w, r, "/confirmation", http.StatusSeeOther)
}

func (h *Handlers) Confirmation(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.queryHandler.Confirmation(mustSession(r)))
}

// Helper functions

// respondErr maps domain errors to status codes. Anything unrecognised is
// logged and reported as a 500 without details.
func (h *Handlers) respondErr(w http.ResponseWriter, err error) {
	var verr *order.ValidationError
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: verr.Error(), Field: verr.Field})
	case errors.Is(err, order.ErrEmptyCart):
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, catalog.ErrProductNotFound), errors.Is(err, order.ErrOrderNotFound):
		respondJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, cart.ErrInvalidProduct), errors.Is(err, cart.ErrInvalidAction):
		respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		h.log.WithError(err).Error("request failed")
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

var errBadProductID = errors.New("product_id must be a positive integer")

func productIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.FormValue("product_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadProductID
	}
	return id, nil
}

// mustSession returns the session attached by middleware.Sessions, which
// every storefront route runs behind.
func mustSession(r *http.Request) *session.Session {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		panic("api: storefront route mounted without session middleware")
	}
	return sess
}
