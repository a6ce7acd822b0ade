package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// indexes lists the secondary indexes the business collection needs.
// CreateMany is idempotent for identical specs, so the list only grows.
var indexes = []mongo.IndexModel{
	{
		// Review lookups match on the embedded review id.
		Keys:    bson.D{{Key: "reviews._id", Value: 1}},
		Options: options.Index().SetName("reviews_id"),
	},
	{
		Keys:    bson.D{{Key: "town", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetName("town_name"),
	},
}

// Migrate creates the collection indexes.
func Migrate(ctx context.Context, logger *zerolog.Logger, coll *mongo.Collection) error {
	names, err := coll.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("creating indexes on %s: %w", coll.Name(), err)
	}

	logger.Info().
		Str("collection", coll.Name()).
		Strs("indexes", names).
		Msg("collection indexes up to date")
	return nil
}
