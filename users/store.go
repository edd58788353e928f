package users

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/user/mercato-go/apperror"
)

// Store is the identity store consumed by the auth and cart services. Users
// returned by FindByUsername always carry a canonical CartID; any legacy
// string encoding of the cart reference is coerced here, never in service
// logic.
type Store interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	Insert(ctx context.Context, user *User) error
}

const collectionName = "utenti"

// MongoStore is the MongoDB-backed identity store.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a MongoStore over the utenti collection.
func NewMongoStore(database *mongo.Database) *MongoStore {
	return &MongoStore{coll: database.Collection(collectionName)}
}

// FindByUsername looks up a user document by its natural key. Returns a
// NotFound app error when no document matches, and an InvalidCartRef app
// error when the stored cart reference cannot be normalized.
func (s *MongoStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	err := s.coll.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user %q not found", username), nil)
		}
		return nil, apperror.NewDatabaseError("failed to look up user", err)
	}

	cartID, err := normalizeCartRef(user.RawCartID)
	if err != nil {
		return nil, err
	}
	user.CartID = cartID
	return &user, nil
}

// Insert stores a new user document. The caller sets CartID; the adapter
// writes it in the canonical object-id form.
func (s *MongoStore) Insert(ctx context.Context, user *User) error {
	user.RawCartID = user.CartID
	if _, err := s.coll.InsertOne(ctx, user); err != nil {
		return apperror.NewDatabaseError("failed to insert user", err)
	}
	return nil
}

// normalizeCartRef coerces the stored id_carrello value into an object id.
// Documents written by this service store a typed id; documents written by
// older clients may store its hex string. Anything else is a data-integrity
// anomaly surfaced as InvalidCartRef.
func normalizeCartRef(raw interface{}) (primitive.ObjectID, error) {
	switch ref := raw.(type) {
	case primitive.ObjectID:
		if ref.IsZero() {
			return primitive.NilObjectID, apperror.NewInvalidCartRefError("user has a zero cart reference", nil)
		}
		return ref, nil
	case string:
		id, err := primitive.ObjectIDFromHex(ref)
		if err != nil {
			return primitive.NilObjectID, apperror.NewInvalidCartRefError("user cart reference is not a valid id string", err)
		}
		return id, nil
	case nil:
		return primitive.NilObjectID, apperror.NewInvalidCartRefError("user has no cart reference", nil)
	default:
		return primitive.NilObjectID, apperror.NewInvalidCartRefError(
			fmt.Sprintf("user cart reference has unsupported type %T", raw), nil)
	}
}
