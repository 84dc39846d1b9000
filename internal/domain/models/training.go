// internal/domain/models/training.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingProgress records a user's best quiz result for one training
// module. There is a unique index on (user_id, module_id); re-taking a quiz
// updates the existing document.
type TrainingProgress struct {
	ID          primitive.ObjectID `bson:"_id"`
	UserID      primitive.ObjectID `bson:"user_id"`
	ModuleID    string             `bson:"module_id"`
	Score       int                `bson:"score"`
	Total       int                `bson:"total"`
	CompletedAt time.Time          `bson:"completed_at"`
}
