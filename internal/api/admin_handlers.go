package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/example/storefront/internal/i18n"
)

const defaultOrderLimit = 50

// AdminHandlers serves read-only order views
type AdminHandlers struct {
	*Handlers
	lang i18n.Lang
}

func NewAdminHandlers(h *Handlers, lang i18n.Lang) *AdminHandlers {
	return &AdminHandlers{Handlers: h, lang: lang}
}

func (h *AdminHandlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit := defaultOrderLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "limit must be a positive integer", Field: "limit"})
			return
		}
		limit = n
	}

	orders, err := h.queryHandler.ListOrders(r.Context(), limit, h.langFor(r))
	if err != nil {
		h.respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func (h *AdminHandlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	view, err := h.queryHandler.GetOrder(r.Context(), chi.URLParam(r, "id"), h.langFor(r))
	if err != nil {
		h.respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *AdminHandlers) langFor(r *http.Request) i18n.Lang {
	if lang, ok := i18n.Parse(r.URL.Query().Get("lang")); ok {
		return lang
	}
	return h.lang
}
