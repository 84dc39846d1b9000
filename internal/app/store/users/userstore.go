// internal/app/store/users/userstore.go
package userstore

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
	return &Store{c: db.Collection("users")}
}

// EnsureFromIdentity upserts the minimal user record for a signed-in
// identity (uid + email + display name) and returns the stored document.
// Called on every login so a first-time visitor gets a record before
// onboarding, without disturbing profile fields on later logins.
func (s *Store) EnsureFromIdentity(ctx context.Context, uid, email, displayName string) (models.User, error) {
	now := time.Now().UTC()

	set := bson.M{
		"email":      email,
		"email_ci":   text.Fold(email),
		"updated_at": now,
	}
	if displayName != "" {
		set["display_name"] = displayName
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var u models.User
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"uid": uid},
		bson.M{
			"$set":         set,
			"$setOnInsert": bson.M{"uid": uid, "created_at": now},
		},
		opts,
	).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// ProfileUpdate is the onboarding payload merged onto a user document.
// Organization fields come from the membership service's
// OrganizationSummary projection, never assembled by callers.
type ProfileUpdate struct {
	DisplayName  string
	Role         string
	Organization models.OrganizationSummary
	Department   string
}

// CompleteOnboarding merges the onboarding profile onto users/{uid}.
// Fields are individually $set (merge semantics); the document is never
// wholesale replaced, and created_at is only written on first insert.
func (s *Store) CompleteOnboarding(ctx context.Context, uid string, p ProfileUpdate) (models.User, error) {
	now := time.Now().UTC()

	set := bson.M{
		"display_name":        p.DisplayName,
		"role":                p.Role,
		"organization_id":     p.Organization.ID,
		"organization_name":   p.Organization.Name,
		"organization_type":   p.Organization.Type,
		"onboarding_complete": true,
		"onboarding_version":  models.OnboardingVersion,
		"updated_at":          now,
	}
	if p.Organization.EmployeeRange != "" {
		set["employee_range"] = p.Organization.EmployeeRange
	}
	if p.Organization.JoinCode != "" {
		set["join_code"] = p.Organization.JoinCode
	}
	if p.Department != "" {
		set["department"] = p.Department
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var u models.User
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"uid": uid},
		bson.M{
			"$set":         set,
			"$setOnInsert": bson.M{"uid": uid, "created_at": now},
		},
		opts,
	).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetByUID(ctx context.Context, uid string) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"uid": uid}).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetByEmailCI looks a user up by folded email (password login path).
func (s *Store) GetByEmailCI(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(email)}).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// SetPasswordHash stores a bcrypt hash for password login.
func (s *Store) SetPasswordHash(ctx context.Context, uid string, hash []byte) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"uid": uid}, bson.M{"$set": bson.M{
		"password_hash": hash,
		"auth_method":   "password",
		"updated_at":    time.Now().UTC(),
	}})
	return err
}

// SetJoinCode updates the denormalized join code on a user's profile.
func (s *Store) SetJoinCode(ctx context.Context, uid, code string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"uid": uid}, bson.M{"$set": bson.M{
		"join_code":  code,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// ListByOrg returns the users attached to an organization, sorted by name.
func (s *Store) ListByOrg(ctx context.Context, orgID primitive.ObjectID) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "display_name", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"organization_id": orgID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CountByOrg returns how many users belong to an organization.
func (s *Store) CountByOrg(ctx context.Context, orgID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"organization_id": orgID})
}
