// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/cyberhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateOrganization creates a test organization with the given name and
// join code, plus the matching join-code document.
func (f *Fixtures) CreateOrganization(ctx context.Context, name, joinCode string) models.Organization {
	f.t.Helper()

	now := time.Now().UTC()
	org := models.Organization{
		ID:                primitive.NewObjectID(),
		Name:              name,
		NameCI:            text.Fold(name),
		Type:              models.OrgTypeSmallBusiness,
		CreatedBy:         "fixture-uid",
		JoinCode:          joinCode,
		JoinCodeUpdatedAt: now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if _, err := f.db.Collection("organizations").InsertOne(ctx, org); err != nil {
		f.t.Fatalf("failed to create test organization: %v", err)
	}

	if joinCode != "" {
		jc := models.JoinCode{
			Code:      joinCode,
			OrgID:     org.ID,
			Active:    true,
			CreatedBy: "fixture-uid",
			CreatedAt: now,
		}
		if _, err := f.db.Collection("join_codes").InsertOne(ctx, jc); err != nil {
			f.t.Fatalf("failed to create test join code: %v", err)
		}
	}

	return org
}

// DeactivateJoinCode flips a join code's active flag off.
func (f *Fixtures) DeactivateJoinCode(ctx context.Context, code string) {
	f.t.Helper()
	_, err := f.db.Collection("join_codes").UpdateByID(ctx, code,
		map[string]interface{}{"$set": map[string]interface{}{"active": false}})
	if err != nil {
		f.t.Fatalf("failed to deactivate join code: %v", err)
	}
}

// CreateUser creates a test user. For participants and coordinators
// attached to an organization, pass its ID; nil means not yet onboarded.
func (f *Fixtures) CreateUser(ctx context.Context, displayName, email, role string, orgID *primitive.ObjectID) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:                 primitive.NewObjectID(),
		UID:                "uid-" + primitive.NewObjectID().Hex(),
		Email:              email,
		EmailCI:            text.Fold(email),
		DisplayName:        displayName,
		Role:               role,
		AuthMethod:         "trust",
		OrganizationID:     orgID,
		OnboardingComplete: orgID != nil,
		OnboardingVersion:  models.OnboardingVersion,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateCoordinator creates a coordinator attached to the organization.
func (f *Fixtures) CreateCoordinator(ctx context.Context, displayName, email string, orgID primitive.ObjectID) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, displayName, email, models.RoleCoordinator, &orgID)
}

// CreateParticipant creates a participant attached to the organization.
func (f *Fixtures) CreateParticipant(ctx context.Context, displayName, email string, orgID primitive.ObjectID) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, displayName, email, models.RoleParticipant, &orgID)
}

// CreateNewsItem inserts a stored news item with the given link and title.
func (f *Fixtures) CreateNewsItem(ctx context.Context, id, title, source, link string, publishedAt time.Time) models.NewsItem {
	f.t.Helper()

	item := models.NewsItem{
		ID:          id,
		Title:       title,
		Source:      source,
		Link:        link,
		PublishedAt: publishedAt.UTC(),
		FetchedAt:   time.Now().UTC(),
	}
	if _, err := f.db.Collection("cyber_news").InsertOne(ctx, item); err != nil {
		f.t.Fatalf("failed to create test news item: %v", err)
	}
	return item
}
