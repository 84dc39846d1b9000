// internal/app/store/progress/progressstore.go
package progressstore

import (
	"context"
	"time"

	"github.com/dalemusser/cyberhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("training_progress")}
}

// Record upserts a user's result for a module. There is a unique index on
// (user_id, module_id); re-taking a quiz overwrites the previous result.
func (s *Store) Record(ctx context.Context, userID primitive.ObjectID, moduleID string, score, total int) error {
	now := time.Now().UTC()
	_, err := s.c.UpdateOne(ctx,
		bson.M{"user_id": userID, "module_id": moduleID},
		bson.M{
			"$set": bson.M{
				"score":        score,
				"total":        total,
				"completed_at": now,
			},
			"$setOnInsert": bson.M{"_id": primitive.NewObjectID()},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// ForUser returns all of a user's module results.
func (s *Store) ForUser(ctx context.Context, userID primitive.ObjectID) ([]models.TrainingProgress, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var progress []models.TrainingProgress
	if err := cur.All(ctx, &progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// CompletionByModule returns, for the given users, how many completed each
// module. Used for the coordinator's organization view.
func (s *Store) CompletionByModule(ctx context.Context, userIDs []primitive.ObjectID) (map[string]int, error) {
	counts := make(map[string]int)
	if len(userIDs) == 0 {
		return counts, nil
	}

	cur, err := s.c.Find(ctx, bson.M{"user_id": bson.M{"$in": userIDs}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var progress []models.TrainingProgress
	if err := cur.All(ctx, &progress); err != nil {
		return nil, err
	}
	for _, p := range progress {
		counts[p.ModuleID]++
	}
	return counts, nil
}
