package cart

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/user/mercato-go/apperror"
)

// Store persists cart documents keyed by object id. Every mutation is a
// single atomic document-level update expressed with the store's native
// operators; the application never read-modify-writes a cart, so two
// concurrent adds against the same cart both land.
type Store interface {
	InsertEmpty(ctx context.Context) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*Cart, error)
	FindAll(ctx context.Context) ([]Cart, error)
	// AddItemIfAbsent unions item into the cart's item set. matched is
	// false when no cart document has the given id; a duplicate item is
	// not an error, the operation simply has no effect.
	AddItemIfAbsent(ctx context.Context, id primitive.ObjectID, item LineItem) (matched bool, err error)
	// RemoveItemsByArticleID deletes every line item whose Id_art equals
	// articleID. removed reports whether the document changed.
	RemoveItemsByArticleID(ctx context.Context, id primitive.ObjectID, articleID int) (matched, removed bool, err error)
	// Clear replaces the item collection with an empty one. Idempotent.
	Clear(ctx context.Context, id primitive.ObjectID) (matched bool, err error)
}

const collectionName = "carrelli"

// articleIDField is the line-item field carrying the numeric article id.
const articleIDField = "Id_art"

// MongoStore is the MongoDB-backed cart store.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a MongoStore over the carrelli collection.
func NewMongoStore(database *mongo.Database) *MongoStore {
	return &MongoStore{coll: database.Collection(collectionName)}
}

// InsertEmpty creates a new cart with no items and returns its id.
func (s *MongoStore) InsertEmpty(ctx context.Context) (primitive.ObjectID, error) {
	res, err := s.coll.InsertOne(ctx, bson.M{"articoli": bson.A{}})
	if err != nil {
		return primitive.NilObjectID, apperror.NewDatabaseError("failed to create cart", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, apperror.NewDatabaseError("cart insert returned a non object id", nil)
	}
	return id, nil
}

// FindByID returns the cart document or a CartNotFound app error.
func (s *MongoStore) FindByID(ctx context.Context, id primitive.ObjectID) (*Cart, error) {
	var cart Cart
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NewCartNotFoundError("cart not found")
		}
		return nil, apperror.NewDatabaseError("failed to load cart", err)
	}
	if cart.Items == nil {
		cart.Items = []LineItem{}
	}
	return &cart, nil
}

// FindAll returns every cart document.
func (s *MongoStore) FindAll(ctx context.Context) ([]Cart, error) {
	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list carts", err)
	}
	defer cursor.Close(ctx)

	carts := []Cart{}
	if err := cursor.All(ctx, &carts); err != nil {
		return nil, apperror.NewDatabaseError("failed to decode carts", err)
	}
	return carts, nil
}

// AddItemIfAbsent unions the item into the cart with $addToSet: one atomic
// update, duplicate items (structural equality) leave the document untouched.
func (s *MongoStore) AddItemIfAbsent(ctx context.Context, id primitive.ObjectID, item LineItem) (bool, error) {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$addToSet": bson.M{"articoli": item}},
	)
	if err != nil {
		return false, apperror.NewDatabaseError("failed to add item to cart", err)
	}
	return res.MatchedCount > 0, nil
}

// RemoveItemsByArticleID pulls every line item matching the article id in one
// atomic update. MatchedCount distinguishes a missing cart from a cart that
// held no such item (ModifiedCount zero).
func (s *MongoStore) RemoveItemsByArticleID(ctx context.Context, id primitive.ObjectID, articleID int) (bool, bool, error) {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$pull": bson.M{"articoli": bson.M{articleIDField: articleID}}},
	)
	if err != nil {
		return false, false, apperror.NewDatabaseError("failed to remove item from cart", err)
	}
	return res.MatchedCount > 0, res.ModifiedCount > 0, nil
}

// Clear sets the item collection to empty in one atomic update. Clearing an
// already-empty cart matches and succeeds.
func (s *MongoStore) Clear(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"articoli": bson.A{}}},
	)
	if err != nil {
		return false, apperror.NewDatabaseError("failed to clear cart", err)
	}
	return res.MatchedCount > 0, nil
}
