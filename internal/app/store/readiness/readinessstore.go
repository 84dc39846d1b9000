// internal/app/store/readiness/readinessstore.go
package readinessstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/cyberhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNoAttestation is returned when an organization has never submitted the
// checklist.
var ErrNoAttestation = errors.New("no readiness attestation for organization")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("readiness_attestations")}
}

// Insert appends a new attestation. Attestations are never updated; the
// newest one is the organization's current readiness state.
func (s *Store) Insert(ctx context.Context, att models.ReadinessAttestation) (models.ReadinessAttestation, error) {
	att.ID = primitive.NewObjectID()
	att.CreatedAt = time.Now().UTC()
	_, err := s.c.InsertOne(ctx, att)
	if err != nil {
		return models.ReadinessAttestation{}, err
	}
	return att, nil
}

// LatestForOrg returns the most recent attestation for an organization.
func (s *Store) LatestForOrg(ctx context.Context, orgID primitive.ObjectID) (models.ReadinessAttestation, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var att models.ReadinessAttestation
	err := s.c.FindOne(ctx, bson.M{"org_id": orgID}, opts).Decode(&att)
	if err == mongo.ErrNoDocuments {
		return models.ReadinessAttestation{}, ErrNoAttestation
	}
	if err != nil {
		return models.ReadinessAttestation{}, err
	}
	return att, nil
}

// HistoryForOrg returns attestations for an organization, newest first.
func (s *Store) HistoryForOrg(ctx context.Context, orgID primitive.ObjectID, limit int64) ([]models.ReadinessAttestation, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, bson.M{"org_id": orgID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var atts []models.ReadinessAttestation
	if err := cur.All(ctx, &atts); err != nil {
		return nil, err
	}
	return atts, nil
}
