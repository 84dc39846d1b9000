// internal/app/store/joincodes/joincodestore.go
package joincodestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/cyberhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicateCode is returned when inserting a code string that already
// exists. Because the code is the document _id, this is the hard backstop
// behind the generator's best-effort uniqueness check.
var ErrDuplicateCode = errors.New("join code already exists")

// ErrNotFound is returned when a code does not resolve to any document.
var ErrNotFound = errors.New("join code not found")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("join_codes")}
}

// Insert writes a new join-code document keyed by the code string. Call
// inside the transaction that creates or repoints the organization.
func (s *Store) Insert(ctx context.Context, code string, orgID primitive.ObjectID, createdBy string) error {
	doc := models.JoinCode{
		Code:      code,
		OrgID:     orgID,
		Active:    true,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.c.InsertOne(ctx, doc)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateCode
		}
		return err
	}
	return nil
}

// Get reads a join-code document by its exact (already normalized) code.
func (s *Store) Get(ctx context.Context, code string) (models.JoinCode, error) {
	var jc models.JoinCode
	err := s.c.FindOne(ctx, bson.M{"_id": code}).Decode(&jc)
	if err == mongo.ErrNoDocuments {
		return models.JoinCode{}, ErrNotFound
	}
	if err != nil {
		return models.JoinCode{}, err
	}
	return jc, nil
}

// Exists reports whether a document for code exists, regardless of its
// active flag. Used by the generator's uniqueness pre-check.
func (s *Store) Exists(ctx context.Context, code string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"_id": code}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes a superseded code document. Call inside the regeneration
// transaction so the old code disappears atomically with the new one
// appearing.
func (s *Store) Delete(ctx context.Context, code string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": code})
	return err
}

// Deactivate flips a code's active flag off without removing the record.
func (s *Store) Deactivate(ctx context.Context, code string) error {
	_, err := s.c.UpdateByID(ctx, code, bson.M{"$set": bson.M{"active": false}})
	return err
}
