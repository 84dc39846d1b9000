// internal/domain/models/readiness.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReadinessAttestation is one saved security-readiness checklist submission
// for an organization. Submissions are append-only; the newest one is the
// organization's current readiness state.
type ReadinessAttestation struct {
	ID               primitive.ObjectID `bson:"_id"`
	OrgID            primitive.ObjectID `bson:"org_id"`
	ChecklistVersion int                `bson:"checklist_version"`
	Checked          map[string]bool    `bson:"checked"`
	ReadinessPct     int                `bson:"readiness_pct"`
	AttestedBy       string             `bson:"attested_by"`
	Notes            string             `bson:"notes,omitempty"`
	CreatedBy        string             `bson:"created_by"` // identity-provider uid
	CreatedAt        time.Time          `bson:"created_at"`
}
