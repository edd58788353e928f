// Package apperror defines a centralized system for application-specific errors.
// Every failure that crosses a handler boundary is expressed as an *AppError,
// which carries an error class, a user-facing message, and an optional wrapped
// underlying error. The class decides both the HTTP status code and a stable
// machine-readable code in the response body, so API clients can distinguish
// outcomes that share a status (e.g. a missing cart vs. a missing article in
// the cart, both 404).
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType enumerates the error classes of the application.
type ErrorType int

const (
	// UnknownError is for unspecified errors.
	UnknownError ErrorType = iota
	// DatabaseError represents a failure inside the document store.
	DatabaseError
	// ConfigError represents an error in application configuration.
	ConfigError
	// AuthError represents a missing, invalid or expired session (401).
	AuthError
	// InvalidCredentialsError is returned by login only. The message is
	// identical whether the username or the password was wrong.
	InvalidCredentialsError
	// ConflictError represents a resource that already exists (409).
	ConflictError
	// StaleSessionError marks a valid token whose user no longer exists.
	// Distinct from the not-found classes: the client must re-login.
	StaleSessionError
	// InvalidCartRefError marks a user document whose cart reference is
	// neither an object id nor its string encoding.
	InvalidCartRefError
	// NotFoundError represents a generic resource-not-found error.
	NotFoundError
	// CartNotFoundError means the referenced cart document is missing.
	CartNotFoundError
	// ArticleNotInCartError means the cart exists but held no line item
	// with the requested article id.
	ArticleNotInCartError
	// ValidationError represents an input validation error.
	ValidationError
	// BadRequestError represents a generic bad request.
	BadRequestError
	// InternalError represents a generic internal server error.
	InternalError
	// UnavailableError means the store connection is not established.
	// Surfaced as 503; never retried server-side.
	UnavailableError
)

// AppError is the custom error type for the application. It wraps an optional
// underlying error so that errors.Is / errors.As keep working across layers.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error // underlying error, never shown to clients
}

// Error satisfies the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is / errors.As chains.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error class.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case AuthError, InvalidCredentialsError:
		return http.StatusUnauthorized
	case ConflictError, StaleSessionError, InvalidCartRefError:
		return http.StatusConflict
	case NotFoundError, CartNotFoundError, ArticleNotInCartError:
		return http.StatusNotFound
	case ValidationError, BadRequestError:
		return http.StatusBadRequest
	case UnavailableError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Code returns the stable machine-readable identifier of the error class.
func (e *AppError) Code() string {
	switch e.Type {
	case AuthError:
		return "unauthenticated"
	case InvalidCredentialsError:
		return "invalid_credentials"
	case ConflictError:
		return "already_exists"
	case StaleSessionError:
		return "stale_session"
	case InvalidCartRefError:
		return "invalid_cart_reference"
	case NotFoundError:
		return "not_found"
	case CartNotFoundError:
		return "cart_not_found"
	case ArticleNotInCartError:
		return "article_not_in_cart"
	case ValidationError:
		return "validation_failed"
	case BadRequestError:
		return "bad_request"
	case UnavailableError:
		return "store_unavailable"
	default:
		return "internal"
	}
}

// NewAppError creates a new AppError. Generic constructor used by the typed
// constructors below.
func NewAppError(errType ErrorType, message string, underlyingError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     underlyingError,
	}
}

// NewDatabaseError creates a new DatabaseError.
func NewDatabaseError(message string, underlyingError error) *AppError {
	return NewAppError(DatabaseError, message, underlyingError)
}

// NewConfigError creates a new ConfigError.
func NewConfigError(message string, underlyingError error) *AppError {
	return NewAppError(ConfigError, message, underlyingError)
}

// NewAuthError creates a new AuthError (unauthenticated).
func NewAuthError(message string, underlyingError error) *AppError {
	return NewAppError(AuthError, message, underlyingError)
}

// NewInvalidCredentialsError creates the uniform login failure.
func NewInvalidCredentialsError() *AppError {
	return NewAppError(InvalidCredentialsError, "invalid credentials", nil)
}

// NewConflictError creates a new ConflictError (already exists).
func NewConflictError(message string, underlyingError error) *AppError {
	return NewAppError(ConflictError, message, underlyingError)
}

// NewStaleSessionError creates a new StaleSessionError.
func NewStaleSessionError(message string) *AppError {
	return NewAppError(StaleSessionError, message, nil)
}

// NewInvalidCartRefError creates a new InvalidCartRefError.
func NewInvalidCartRefError(message string, underlyingError error) *AppError {
	return NewAppError(InvalidCartRefError, message, underlyingError)
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(message string, underlyingError error) *AppError {
	return NewAppError(NotFoundError, message, underlyingError)
}

// NewCartNotFoundError creates a new CartNotFoundError.
func NewCartNotFoundError(message string) *AppError {
	return NewAppError(CartNotFoundError, message, nil)
}

// NewArticleNotInCartError creates a new ArticleNotInCartError.
func NewArticleNotInCartError(message string) *AppError {
	return NewAppError(ArticleNotInCartError, message, nil)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string, underlyingError error) *AppError {
	return NewAppError(ValidationError, message, underlyingError)
}

// NewBadRequestError creates a new BadRequestError.
func NewBadRequestError(message string, underlyingError error) *AppError {
	return NewAppError(BadRequestError, message, underlyingError)
}

// NewInternalError creates a new InternalError.
func NewInternalError(message string, underlyingError error) *AppError {
	return NewAppError(InternalError, message, underlyingError)
}

// NewUnavailableError creates a new UnavailableError.
func NewUnavailableError(message string, underlyingError error) *AppError {
	return NewAppError(UnavailableError, message, underlyingError)
}

// ErrorResponse is the error payload returned to API clients. Only the
// user-facing message and the class code are included; wrapped store errors
// stay server-side.
type ErrorResponse struct {
	Error string `json:"error" example:"a description of the error"`
	Code  string `json:"code" example:"cart_not_found"`
}

// ToResponse converts an AppError to the payload written to API clients.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message, Code: e.Code()}
}

// FromError attempts to convert a generic error to an *AppError.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// Is checks whether an error in the chain is an AppError of the given class.
func Is(err error, errType ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == errType
}

// IsNotFound checks if an error is any of the not-found classes.
func IsNotFound(err error) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	switch appErr.Type {
	case NotFoundError, CartNotFoundError, ArticleNotInCartError:
		return true
	}
	return false
}

// IsAuthError checks if an error is an AuthError.
func IsAuthError(err error) bool {
	return Is(err, AuthError)
}

// IsConflictError checks if an error is a ConflictError.
func IsConflictError(err error) bool {
	return Is(err, ConflictError)
}
