package auth

import (
	"encoding/json"
	"net/http"

	"github.com/user/mercato-go/apperror"
)

// Handlers exposes the auth service over HTTP and owns the session cookie on
// the way out: login sets it, logout and verification failures clear it.
type Handlers struct {
	service *Service
	cookie  *SessionCookie
}

// NewHandlers creates the auth handlers.
func NewHandlers(service *Service, cookie *SessionCookie) *Handlers {
	return &Handlers{service: service, cookie: cookie}
}

// HandleRegister godoc
// @Summary User registration
// @Description Creates a new user together with an empty cart.
// @Tags Auth
// @Accept json
// @Produce json
// @Param registerBody body auth.RegisterRequest true "User registration details"
// @Success 201 {object} auth.MessageResponse "Registration completed"
// @Failure 400 {object} apperror.ErrorResponse "Missing fields"
// @Failure 409 {object} apperror.ErrorResponse "User already exists"
// @Router /registr [post]
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if req.Username == "" || req.Email == "" || req.Password == "" {
			WriteError(w, r, apperror.NewBadRequestError("username, email and password are required", nil))
			return
		}

		if err := h.service.Register(r.Context(), req); err != nil {
			WriteError(w, r, err)
			return
		}
		WriteJSON(w, http.StatusCreated, MessageResponse{Message: "registration completed"})
	}
}

// HandleLogin godoc
// @Summary User login
// @Description Verifies credentials and sets the signed session cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param loginBody body auth.LoginRequest true "User credentials"
// @Success 200 {object} auth.MessageResponse "Login successful, cookie set"
// @Failure 401 {object} apperror.ErrorResponse "Invalid credentials"
// @Router /login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		if req.Username == "" || req.Password == "" {
			WriteError(w, r, apperror.NewBadRequestError("username and password are required", nil))
			return
		}

		token, err := h.service.Login(r.Context(), req)
		if err != nil {
			WriteError(w, r, err)
			return
		}

		if err := h.cookie.Set(w, token); err != nil {
			WriteError(w, r, apperror.NewInternalError("failed to set session cookie", err))
			return
		}
		WriteJSON(w, http.StatusOK, MessageResponse{Message: "login successful"})
	}
}

// HandleLogout godoc
// @Summary User logout
// @Description Clears the session cookie. Always succeeds; the token itself
// stays valid until it expires (stateless sessions, no revocation list).
// @Tags Auth
// @Produce json
// @Success 200 {object} auth.MessageResponse "Logout successful"
// @Router /logout [post]
func (h *Handlers) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.cookie.Clear(w)
		WriteJSON(w, http.StatusOK, MessageResponse{Message: "logout successful"})
	}
}

// WriteJSON serializes data to the response with the given status. Shared by
// every handler package.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}

// WriteError writes a standardized error response. Errors that are not
// *apperror.AppError are wrapped as internal errors so nothing leaks raw.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("an unexpected error occurred", err)
	}
	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
