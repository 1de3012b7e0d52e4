package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"

	mongodb "github.com/explora/travel-booking/internal/infrastructure/db/mongo"
	"github.com/explora/travel-booking/internal/infrastructure/db/postgres"
)

// Handle owns the connection pool of the selected backend. Exactly one of
// Pool and Mongo is set.
type Handle struct {
	Backend Backend
	Pool    *pgxpool.Pool
	Mongo   *mongo.Database

	client *mongo.Client
}

// Open builds the pool for rawURL without contacting the server.
func Open(ctx context.Context, rawURL, mongoDatabase string) (*Handle, error) {
	backend, err := BackendFor(rawURL)
	if err != nil {
		return nil, err
	}

	switch backend {
	case Mongo:
		client, database, err := mongodb.Open(ctx, mongodb.Config{URI: rawURL, Database: mongoDatabase})
		if err != nil {
			return nil, err
		}
		return &Handle{Backend: backend, Mongo: database, client: client}, nil
	case Postgres:
		pool, err := postgres.NewPool(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		return &Handle{Backend: backend, Pool: pool}, nil
	default:
		return nil, fmt.Errorf("unsupported backend %q", backend)
	}
}

// Ping checks the server is reachable.
func (h *Handle) Ping(ctx context.Context) error {
	if h.client != nil {
		return mongodb.Ping(ctx, h.client)
	}
	return h.Pool.Ping(ctx)
}

// Close releases every pooled connection.
func (h *Handle) Close() {
	if h.client != nil {
		_ = h.client.Disconnect(context.Background())
		return
	}
	h.Pool.Close()
}
