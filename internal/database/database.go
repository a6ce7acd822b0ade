// Package database owns the MongoDB client.
//
// It builds the client options from config, wires command logging, verifies
// connectivity at startup and exposes the collection that holds business
// documents.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/deppfellow/bizreviews/internal/config"
	loggerPkg "github.com/deppfellow/bizreviews/internal/logger"
)

// DatabasePingTimeout bounds the startup ping.
const DatabasePingTimeout = 10 * time.Second

// Database wraps the mongo client and the configured database handle.
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database

	collection string
	log        *zerolog.Logger
}

// New connects to MongoDB and pings the primary.
func New(cfg *config.Config, logger *zerolog.Logger) (*Database, error) {
	clientOpts := options.Client().
		ApplyURI(cfg.Database.URI).
		SetAppName(cfg.Observability.ServiceName).
		SetConnectTimeout(cfg.Database.ConnectTimeout).
		SetServerSelectionTimeout(cfg.Database.ConnectTimeout).
		SetMaxPoolSize(cfg.Database.MaxPoolSize)

	// Command logging is noisy, keep it to local runs unless slow queries are tracked.
	if cfg.Primary.Env == "local" || cfg.Observability.Logging.SlowQueryThreshold > 0 {
		clientOpts.SetMonitor(loggerPkg.NewMongoCommandMonitor(logger, cfg.Observability.Logging.SlowQueryThreshold))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	database := &Database{
		Client:     client,
		DB:         client.Database(cfg.Database.Name),
		collection: cfg.Database.Collection,
		log:        logger,
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), DatabasePingTimeout)
	defer pingCancel()
	if err := database.Ping(pingCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().
		Str("database", cfg.Database.Name).
		Str("collection", cfg.Database.Collection).
		Msg("connected to the database")

	return database, nil
}

// Businesses returns the collection holding business documents.
func (db *Database) Businesses() *mongo.Collection {
	return db.DB.Collection(db.collection)
}

// Ping checks that the primary is reachable.
func (db *Database) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client, waiting for in-use connections until ctx expires.
func (db *Database) Close(ctx context.Context) error {
	db.log.Info().Msg("closing database connection pool")
	return db.Client.Disconnect(ctx)
}
