// Package catalog provides the article catalog: list, insert, delete, filter
// by category and free-text search. These are pass-through document queries
// with no business rule beyond a literal field match or a case-insensitive
// substring search; the cart subsystem never reads the catalog.
package catalog

import "go.mongodb.org/mongo-driver/bson/primitive"

// Article represents an article document in the articoli collection. Field
// names follow the stored documents and the wire contract of the existing
// clients.
type Article struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ArticleID   int                `bson:"Id_art" json:"Id_art"`
	Name        string             `bson:"nome_prodotto" json:"nome_prodotto"`
	Description string             `bson:"descrizione_prodotto" json:"descrizione_prodotto"`
	Category    string             `bson:"categoria" json:"categoria"`
	Brand       string             `bson:"marca" json:"marca"`
	Price       float64            `bson:"prezzo" json:"prezzo"`
	Quantity    int                `bson:"quantità" json:"quantità"`
	State       string             `bson:"stato" json:"stato"`
	Discount    float64            `bson:"sconto" json:"sconto"`
	Origin      string             `bson:"origine" json:"origine"`
	ImageURL    string             `bson:"urlImg" json:"urlImg"`
	Supplier    string             `bson:"fornitore" json:"fornitore"`
	Allergens   string             `bson:"allergeni" json:"allergeni"`
	Ingredients string             `bson:"ingredienti" json:"ingredienti"`
	Rating      float64            `bson:"rating" json:"rating"`
	Shelf       string             `bson:"scaffale" json:"scaffale"`
	Aisle       string             `bson:"corsia" json:"corsia"`
}
