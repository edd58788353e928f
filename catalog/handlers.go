package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/mercato-go/apperror"
	"github.com/user/mercato-go/auth"
)

// Handlers exposes the catalog service over HTTP. All routes sit behind the
// session middleware.
type Handlers struct {
	service *Service
}

// NewHandlers creates the catalog handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleList godoc
// @Summary List all articles
// @Produce json
// @Success 200 {array} catalog.Article
// @Failure 401 {object} apperror.ErrorResponse "Unauthenticated"
// @Router /articoli [get]
func (h *Handlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		articles, err := h.service.List(r.Context())
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, articles)
	}
}

// HandleListByCategory godoc
// @Summary List articles in a category
// @Produce json
// @Success 200 {array} catalog.Article
// @Router /articoli/categoria/{categoria} [get]
func (h *Handlers) HandleListByCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		articles, err := h.service.ListByCategory(r.Context(), chi.URLParam(r, "categoria"))
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, articles)
	}
}

// HandleSearch godoc
// @Summary Search articles by term
// @Description Case-insensitive substring match over name, description,
// brand, category and ingredients.
// @Produce json
// @Success 200 {array} catalog.Article
// @Router /articoli/ricerca/{termine} [get]
func (h *Handlers) HandleSearch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		articles, err := h.service.Search(r.Context(), chi.URLParam(r, "termine"))
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, articles)
	}
}

// HandleInsert godoc
// @Summary Insert an article
// @Accept json
// @Produce json
// @Success 201 {object} auth.MessageResponse
// @Router /articoli [post]
func (h *Handlers) HandleInsert() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var article Article
		if err := json.NewDecoder(r.Body).Decode(&article); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if err := h.service.Insert(r.Context(), article); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusCreated, auth.MessageResponse{Message: "article inserted"})
	}
}

// HandleDelete godoc
// @Summary Delete an article by its numeric id
// @Produce json
// @Success 200 {object} auth.MessageResponse
// @Failure 404 {object} apperror.ErrorResponse "Article not found"
// @Router /articoli/{id} [delete]
func (h *Handlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		articleID, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("article id must be numeric", err))
			return
		}
		if err := h.service.DeleteByArticleID(r.Context(), articleID); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, auth.MessageResponse{Message: "article deleted"})
	}
}
