// Package cart owns cart documents and every mutation applied to them. A cart
// is an ordered-set-like collection of line items; the add operation has set
// semantics over the whole item document, applied atomically inside the store.
package cart

import "go.mongodb.org/mongo-driver/bson/primitive"

// LineItem is one entry of a cart: a numeric article id under "Id_art" plus
// an arbitrary product snapshot. The cart stores a copy of the article, not a
// reference, so the shape is left open. Two items are duplicates only when
// every field matches; same article id with a different snapshot counts as a
// distinct entry.
type LineItem map[string]interface{}

// Cart represents a cart document in the carrelli collection.
type Cart struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Items []LineItem         `bson:"articoli" json:"articoli"`
}
