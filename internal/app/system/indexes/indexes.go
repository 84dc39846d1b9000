// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureAll creates every index the application relies on. Index creation
// is idempotent, so this runs on every startup.
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	specs := []struct {
		collection string
		models     []mongo.IndexModel
	}{
		{
			collection: "users",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "uid", Value: 1}}, Options: options.Index().SetUnique(true)},
				{Keys: bson.D{{Key: "email_ci", Value: 1}}, Options: options.Index().SetUnique(true)},
				{Keys: bson.D{{Key: "organization_id", Value: 1}}},
			},
		},
		{
			collection: "organizations",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "name_ci", Value: 1}}},
			},
		},
		{
			// Join codes are keyed by the code itself (_id), which gives
			// uniqueness for free; this index serves org-scoped lookups.
			collection: "join_codes",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "org_id", Value: 1}}},
			},
		},
		{
			// TTL cleanup for abandoned OAuth flows.
			collection: "oauth_states",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(0)},
			},
		},
		{
			collection: "cyber_news",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "published_at", Value: -1}}},
			},
		},
		{
			collection: "readiness_attestations",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "org_id", Value: 1}, {Key: "created_at", Value: -1}}},
			},
		},
		{
			collection: "training_progress",
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "module_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			},
		},
	}

	for _, spec := range specs {
		if _, err := db.Collection(spec.collection).Indexes().CreateMany(ctx, spec.models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", spec.collection, err)
		}
		logger.Debug("ensured indexes", zap.String("collection", spec.collection), zap.Int("count", len(spec.models)))
	}
	return nil
}
