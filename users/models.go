// Package users owns the identity records of the application: who a user is,
// their credential hash, and the reference to their one cart. The mapping
// username -> cart reference lives here and nowhere else.
package users

import "go.mongodb.org/mongo-driver/bson/primitive"

// User represents a user document in the utenti collection. The bson field
// names follow the stored documents; the credential hash is never serialized
// to JSON.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Nome           string             `bson:"nome" json:"nome"`
	Cognome        string             `bson:"cognome" json:"cognome"`
	Username       string             `bson:"username" json:"username"`
	Email          string             `bson:"email" json:"email"`
	HashedPassword string             `bson:"password" json:"-"`

	// RawCartID is the id_carrello field exactly as stored. Legacy documents
	// hold the hex string form instead of an object id, so it is decoded
	// untyped and normalized into CartID by the store adapter.
	RawCartID interface{} `bson:"id_carrello" json:"-"`

	// CartID is the canonical cart reference. It is set once at registration
	// and never reassigned. Populated by the store, not decoded from bson.
	CartID primitive.ObjectID `bson:"-" json:"-"`
}
