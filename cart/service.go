package cart

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/user/mercato-go/apperror"
	"github.com/user/mercato-go/users"
)

// Service resolves a verified identity to its cart and applies the requested
// mutation. Each request walks the same path: resolve the identity by
// username, read its cart reference, run one atomic store operation. Nothing
// is cached between requests and the claim's denormalized cart field is never
// trusted.
type Service struct {
	users users.Store
	carts Store
}

// NewService creates the cart service.
func NewService(userStore users.Store, cartStore Store) *Service {
	return &Service{users: userStore, carts: cartStore}
}

// resolveCartRef maps the username from a verified claim to the user's cart
// reference. A username with no identity behind it is a stale session, not a
// lookup bug: the account was deleted or renamed after the token was issued.
func (s *Service) resolveCartRef(ctx context.Context, username string) (primitive.ObjectID, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if apperror.IsNotFound(err) {
			return primitive.NilObjectID, apperror.NewStaleSessionError("session user no longer exists")
		}
		return primitive.NilObjectID, err
	}
	return user.CartID, nil
}

// ReadOwn returns the full line-item collection of the user's cart.
func (s *Service) ReadOwn(ctx context.Context, username string) ([]LineItem, error) {
	cartID, err := s.resolveCartRef(ctx, username)
	if err != nil {
		return nil, err
	}
	cart, err := s.carts.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return cart.Items, nil
}

// AddOwn inserts the item into the user's cart with set semantics. A
// duplicate add is a silent success.
func (s *Service) AddOwn(ctx context.Context, username string, item LineItem) error {
	cartID, err := s.resolveCartRef(ctx, username)
	if err != nil {
		return err
	}
	matched, err := s.carts.AddItemIfAbsent(ctx, cartID, item)
	if err != nil {
		return err
	}
	if !matched {
		return apperror.NewCartNotFoundError("cart not found")
	}
	return nil
}

// RemoveOwn deletes every line item with the given article id from the user's
// cart. The two not-found outcomes stay distinct: a missing cart is a storage
// anomaly, a missing article is an ordinary no-op the client must learn about.
func (s *Service) RemoveOwn(ctx context.Context, username string, articleID int) error {
	cartID, err := s.resolveCartRef(ctx, username)
	if err != nil {
		return err
	}
	matched, removed, err := s.carts.RemoveItemsByArticleID(ctx, cartID, articleID)
	if err != nil {
		return err
	}
	if !matched {
		return apperror.NewCartNotFoundError("cart not found")
	}
	if !removed {
		return apperror.NewArticleNotInCartError("article not found in cart")
	}
	return nil
}

// ClearOwn empties the user's cart. Clearing an already-empty cart succeeds.
func (s *Service) ClearOwn(ctx context.Context, username string) error {
	cartID, err := s.resolveCartRef(ctx, username)
	if err != nil {
		return err
	}
	matched, err := s.carts.Clear(ctx, cartID)
	if err != nil {
		return err
	}
	if !matched {
		return apperror.NewCartNotFoundError("cart not found")
	}
	return nil
}

// AddByRef inserts an item into a cart addressed directly by its reference.
func (s *Service) AddByRef(ctx context.Context, refHex string, item LineItem) error {
	cartID, err := primitive.ObjectIDFromHex(refHex)
	if err != nil {
		return apperror.NewBadRequestError("invalid cart id", err)
	}
	matched, err := s.carts.AddItemIfAbsent(ctx, cartID, item)
	if err != nil {
		return err
	}
	if !matched {
		return apperror.NewCartNotFoundError("cart not found")
	}
	return nil
}

// ClearByRef empties a cart addressed directly by its reference.
func (s *Service) ClearByRef(ctx context.Context, refHex string) error {
	cartID, err := primitive.ObjectIDFromHex(refHex)
	if err != nil {
		return apperror.NewBadRequestError("invalid cart id", err)
	}
	matched, err := s.carts.Clear(ctx, cartID)
	if err != nil {
		return err
	}
	if !matched {
		return apperror.NewCartNotFoundError("cart not found")
	}
	return nil
}

// ListAll returns every cart document.
func (s *Service) ListAll(ctx context.Context) ([]Cart, error) {
	return s.carts.FindAll(ctx)
}
