package cart

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/mercato-go/apperror"
	"github.com/user/mercato-go/auth"
)

// TestScenario_RegisterLoginCartLifecycle walks the full journey over the
// HTTP surface: register "ann", login, add an item, read it back, remove it,
// and remove it again expecting the article-not-in-cart outcome.
func TestScenario_RegisterLoginCartLifecycle(t *testing.T) {
	userStore := newFakeUserStore()
	cartStore := newFakeCartStore()

	hasher := auth.NewPasswordHasher(4)
	codec := auth.NewTokenCodec("jwt-secret", time.Hour)
	sessionCookie := auth.NewSessionCookie("cookie-secret")

	authService := auth.NewService(userStore, cartStore, hasher, codec)
	authHandlers := auth.NewHandlers(authService, sessionCookie)
	cartHandlers := NewHandlers(NewService(userStore, cartStore))

	r := chi.NewRouter()
	r.Post("/login", authHandlers.HandleLogin())
	r.Post("/registr", authHandlers.HandleRegister())
	r.Group(func(r chi.Router) {
		r.Use(auth.SessionMiddleware(sessionCookie, codec))
		r.Get("/carrello/utente", cartHandlers.HandleReadOwn())
		r.Put("/carrello/utente/aggiungi", cartHandlers.HandleAddOwn())
		r.Put("/rimuoviArticolo/utente/{id_articolo}", cartHandlers.HandleRemoveOwn())
	})

	do := func(method, path string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
		t.Helper()
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, path, &buf)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	// Register.
	rec := do(http.MethodPost, "/registr", auth.RegisterRequest{
		Nome: "Anna", Cognome: "Rossi", Username: "ann",
		Email: "ann@example.com", Password: "strongpassword123",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Login and keep the session cookie.
	rec = do(http.MethodPost, "/login", auth.LoginRequest{Username: "ann", Password: "strongpassword123"}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	session := rec.Result().Cookies()
	require.NotEmpty(t, session)

	readCart := func() []LineItem {
		t.Helper()
		rec := do(http.MethodGet, "/carrello/utente", nil, session)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Items []LineItem `json:"articoli"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		return resp.Items
	}

	// A fresh cart is empty.
	assert.Empty(t, readCart())

	// Add an apple.
	rec = do(http.MethodPut, "/carrello/utente/aggiungi", LineItem{"Id_art": 7, "nome_prodotto": "Mela"}, session)
	require.Equal(t, http.StatusOK, rec.Code)

	items := readCart()
	require.Len(t, items, 1)
	assert.Equal(t, float64(7), items[0]["Id_art"])
	assert.Equal(t, "Mela", items[0]["nome_prodotto"])

	// Remove it.
	rec = do(http.MethodPut, "/rimuoviArticolo/utente/7", nil, session)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, readCart())

	// Removing again: the cart exists, the article does not.
	rec = do(http.MethodPut, "/rimuoviArticolo/utente/7", nil, session)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var errResp apperror.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	assert.Equal(t, "article_not_in_cart", errResp.Code)

	// Without the cookie the cart routes reject.
	rec = do(http.MethodGet, "/carrello/utente", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// TestScenario_StaleSessionOverHTTP verifies that a valid token whose user
// vanished is surfaced as a conflict, distinct from cart-not-found.
func TestScenario_StaleSessionOverHTTP(t *testing.T) {
	userStore := newFakeUserStore()
	cartStore := newFakeCartStore()
	codec := auth.NewTokenCodec("jwt-secret", time.Hour)
	sessionCookie := auth.NewSessionCookie("cookie-secret")
	cartHandlers := NewHandlers(NewService(userStore, cartStore))

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(auth.SessionMiddleware(sessionCookie, codec))
		r.Get("/carrello/utente", cartHandlers.HandleReadOwn())
	})

	// Token for a user that was never registered.
	token, err := codec.Issue("ghost", "")
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	require.NoError(t, sessionCookie.Set(rec, token))
	session := rec.Result().Cookies()

	req := httptest.NewRequest(http.MethodGet, "/carrello/utente", nil)
	for _, c := range session {
		req.AddCookie(c)
	}
	out := httptest.NewRecorder()
	r.ServeHTTP(out, req)

	assert.Equal(t, http.StatusConflict, out.Code)
	var errResp apperror.ErrorResponse
	require.NoError(t, json.NewDecoder(out.Body).Decode(&errResp))
	assert.Equal(t, "stale_session", errResp.Code)
}
