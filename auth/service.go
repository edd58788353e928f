package auth

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/user/mercato-go/apperror"
	"github.com/user/mercato-go/users"
)

// CartCreator is the slice of the cart store the auth service needs:
// registration creates exactly one empty cart per new user. Defined on the
// consumer side so auth does not depend on the cart package.
type CartCreator interface {
	InsertEmpty(ctx context.Context) (primitive.ObjectID, error)
}

// Service implements register, login and logout. It binds the identity store,
// the cart creator, the credential hasher and the token codec together; all
// four are injected at construction and read-only afterwards.
type Service struct {
	users  users.Store
	carts  CartCreator
	hasher *PasswordHasher
	codec  *TokenCodec
}

// NewService creates the auth service.
func NewService(userStore users.Store, carts CartCreator, hasher *PasswordHasher, codec *TokenCodec) *Service {
	return &Service{
		users:  userStore,
		carts:  carts,
		hasher: hasher,
		codec:  codec,
	}
}

// Register creates a new identity with an empty cart. The cart is inserted
// before the user so the user's cart reference always points at an existing
// document; a failure between the two steps leaves at worst an unreferenced
// empty cart, never a user without a cart.
func (s *Service) Register(ctx context.Context, req RegisterRequest) error {
	_, err := s.users.FindByUsername(ctx, req.Username)
	if err == nil {
		return apperror.NewConflictError("user already exists", nil)
	}
	if !apperror.IsNotFound(err) {
		return err
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return apperror.NewInternalError("failed to hash password", err)
	}

	cartID, err := s.carts.InsertEmpty(ctx)
	if err != nil {
		return err
	}

	user := &users.User{
		Nome:           req.Nome,
		Cognome:        req.Cognome,
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashed,
		CartID:         cartID,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		log.Printf("Registration of %q failed after cart %s was created: %v", req.Username, cartID.Hex(), err)
		return err
	}
	return nil
}

// Login verifies the credentials and issues a session token. Unknown username
// and wrong password produce the same InvalidCredentials outcome so the
// endpoint cannot be used to enumerate users.
func (s *Service) Login(ctx context.Context, req LoginRequest) (string, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return "", apperror.NewInvalidCredentialsError()
		}
		return "", err
	}

	if !s.hasher.Verify(req.Password, user.HashedPassword) {
		return "", apperror.NewInvalidCredentialsError()
	}

	// The cart reference is denormalized into the claim at issuance. The
	// cart service re-resolves it per request and never trusts this copy.
	token, err := s.codec.Issue(user.Username, user.CartID.Hex())
	if err != nil {
		return "", apperror.NewInternalError(fmt.Sprintf("failed to issue session for %q", req.Username), err)
	}
	return token, nil
}
