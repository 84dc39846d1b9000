// internal/app/store/organizations/organizationstore.go
package organizationstore

import (
	"context"
	"time"

	"github.com/dalemusser/cyberhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("organizations")}
}

// Prepare stamps a new organization with an ID, folded name, and timestamps.
// The insert itself happens inside the membership transaction, so preparation
// and persistence are separate steps.
func Prepare(org models.Organization) models.Organization {
	now := time.Now().UTC()
	org.ID = primitive.NewObjectID()
	org.NameCI = text.Fold(org.Name)
	org.CreatedAt = now
	org.UpdatedAt = now
	return org
}

// Insert writes a prepared organization document. Call inside a transaction
// when pairing it with a join-code insert.
func (s *Store) Insert(ctx context.Context, org models.Organization) error {
	_, err := s.c.InsertOne(ctx, org)
	return err
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Organization, error) {
	var org models.Organization
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&org)
	if err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

// SetJoinCode repoints the organization's current join code. Call inside the
// same transaction that inserts the new join-code document.
func (s *Store) SetJoinCode(ctx context.Context, id primitive.ObjectID, code string) error {
	now := time.Now().UTC()
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"join_code":            code,
		"join_code_updated_at": now,
		"updated_at":           now,
	}})
	return err
}

// SetBanner replaces the organization's status banner message.
func (s *Store) SetBanner(ctx context.Context, id primitive.ObjectID, message string) error {
	now := time.Now().UTC()
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"banner_message":    message,
		"banner_updated_at": now,
		"updated_at":        now,
	}})
	return err
}

// Find returns organizations matching the given filter with optional find
// options. The caller builds the filter and options.
func (s *Store) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Organization, error) {
	cur, err := s.c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var orgs []models.Organization
	if err := cur.All(ctx, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

// Count returns the number of organizations matching the given filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
