// internal/domain/models/joincode.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JoinCode is a short human-enterable token that resolves to exactly one
// organization. The code string itself is the document key, so a racing
// insert of the same code fails with a duplicate-key error instead of
// silently overwriting.
//
// Join-code documents are never mutated. Regeneration inserts a new document
// and deletes the superseded one in the same transaction.
type JoinCode struct {
	Code      string             `bson:"_id"`
	OrgID     primitive.ObjectID `bson:"org_id"`
	Active    bool               `bson:"active"`
	CreatedBy string             `bson:"created_by"` // identity-provider uid
	CreatedAt time.Time          `bson:"created_at"`
}
