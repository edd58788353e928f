// Package db provides document-store connectivity for the mercato application.
// It establishes a single MongoDB client at startup, verifies the connection
// with a ping, and hands the database handle to the rest of the application.
// The handle is shared read-only between requests; no per-request connections
// are ever created.
package db

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/user/mercato-go/apperror"
	"github.com/user/mercato-go/config"
)

const (
	connectTimeout = 10 * time.Second
	pingTimeout    = 5 * time.Second
)

// Connect establishes the MongoDB client and returns it together with the
// configured database handle. The connection is verified with a ping so that
// a wrong URI fails at startup rather than on the first request.
func Connect(cfg *config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, apperror.NewUnavailableError("failed to connect to document store", err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), pingTimeout)
	defer pingCancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		// Release the client's resources before reporting the failure.
		_ = client.Disconnect(context.Background())
		return nil, nil, apperror.NewUnavailableError("document store did not answer ping", err)
	}

	log.Printf("Connected to document store, database %q", cfg.DBName)
	return client, client.Database(cfg.DBName), nil
}

// Disconnect closes the client, logging rather than returning the error since
// it runs during shutdown where nothing can act on it.
func Disconnect(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Printf("Error disconnecting from document store: %v", err)
	}
}
