package cart

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/mercato-go/apperror"
	"github.com/user/mercato-go/auth"
)

// Handlers exposes the cart service over HTTP. Every route here sits behind
// the session middleware; the username always comes from the verified claims
// in the request context, never from the request body.
type Handlers struct {
	service *Service
}

// NewHandlers creates the cart handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// claims pulls the verified session claims or rejects the request. A missing
// claim on a protected route means the middleware was not applied.
func claims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	c, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("no session in request context", nil))
		return nil, false
	}
	return c, true
}

// decodeItem reads a line item from the request body. The body is the item:
// an open product-snapshot document.
func decodeItem(w http.ResponseWriter, r *http.Request) (LineItem, bool) {
	var item LineItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
		return nil, false
	}
	defer r.Body.Close()
	if len(item) == 0 {
		auth.WriteError(w, r, apperror.NewBadRequestError("empty line item", nil))
		return nil, false
	}
	return item, true
}

// cartResponse wraps the line items the way the original API returns them.
type cartResponse struct {
	Items []LineItem `json:"articoli"`
}

// HandleReadOwn godoc
// @Summary Read own cart
// @Produce json
// @Success 200 {object} cart.cartResponse
// @Failure 401 {object} apperror.ErrorResponse "Unauthenticated"
// @Failure 404 {object} apperror.ErrorResponse "Cart not found"
// @Failure 409 {object} apperror.ErrorResponse "Stale session"
// @Router /carrello/utente [get]
func (h *Handlers) HandleReadOwn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := claims(w, r)
		if !ok {
			return
		}
		items, err := h.service.ReadOwn(r.Context(), c.Username)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, cartResponse{Items: items})
	}
}

// HandleAddOwn godoc
// @Summary Add an item to own cart
// @Accept json
// @Produce json
// @Success 200 {object} auth.MessageResponse
// @Failure 404 {object} apperror.ErrorResponse "Cart not found"
// @Failure 409 {object} apperror.ErrorResponse "Stale session"
// @Router /carrello/utente/aggiungi [put]
func (h *Handlers) HandleAddOwn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := claims(w, r)
		if !ok {
			return
		}
		item, ok := decodeItem(w, r)
		if !ok {
			return
		}
		if err := h.service.AddOwn(r.Context(), c.Username, item); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, auth.MessageResponse{Message: "item added to cart"})
	}
}

// HandleRemoveOwn godoc
// @Summary Remove items from own cart by article id
// @Produce json
// @Success 200 {object} auth.MessageResponse
// @Failure 404 {object} apperror.ErrorResponse "Cart or article not found"
// @Failure 409 {object} apperror.ErrorResponse "Stale session"
// @Router /rimuoviArticolo/utente/{id_articolo} [put]
func (h *Handlers) HandleRemoveOwn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := claims(w, r)
		if !ok {
			return
		}
		articleID, err := strconv.Atoi(chi.URLParam(r, "id_articolo"))
		if err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("article id must be numeric", err))
			return
		}
		if err := h.service.RemoveOwn(r.Context(), c.Username, articleID); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, auth.MessageResponse{Message: "item removed from cart"})
	}
}

// HandleClearOwn godoc
// @Summary Empty own cart
// @Produce json
// @Success 200 {object} auth.MessageResponse
// @Failure 404 {object} apperror.ErrorResponse "Cart not found"
// @Failure 409 {object} apperror.ErrorResponse "Stale session"
// @Router /carrello/utente/svuota [put]
func (h *Handlers) HandleClearOwn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := claims(w, r)
		if !ok {
			return
		}
		if err := h.service.ClearOwn(r.Context(), c.Username); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, auth.MessageResponse{Message: "cart emptied"})
	}
}

// HandleAddByRef godoc
// @Summary Add an item to a cart by cart id
// @Accept json
// @Produce json
// @Success 200 {object} auth.MessageResponse
// @Failure 404 {object} apperror.ErrorResponse "Cart not found"
// @Router /aggiungiArticolo/{id_carrello} [put]
func (h *Handlers) HandleAddByRef() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item, ok := decodeItem(w, r)
		if !ok {
			return
		}
		if err := h.service.AddByRef(r.Context(), chi.URLParam(r, "id_carrello"), item); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, auth.MessageResponse{Message: "item added to cart"})
	}
}

// HandleClearByRef godoc
// @Summary Empty a cart by cart id
// @Produce json
// @Success 200 {object} auth.MessageResponse
// @Failure 404 {object} apperror.ErrorResponse "Cart not found"
// @Router /svuotacarrello/{id_carrello} [put]
func (h *Handlers) HandleClearByRef() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.service.ClearByRef(r.Context(), chi.URLParam(r, "id_carrello")); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, auth.MessageResponse{Message: "cart emptied"})
	}
}

// HandleListAll godoc
// @Summary List every cart
// @Produce json
// @Success 200 {array} cart.Cart
// @Router /carrelli [get]
func (h *Handlers) HandleListAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		carts, err := h.service.ListAll(r.Context())
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, carts)
	}
}
