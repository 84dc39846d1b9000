// internal/app/store/oauthstate/oauthstatestore.go
package oauthstate

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store persists short-lived OAuth state tokens. States are single use:
// Validate consumes the document.
type Store struct {
	col *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{col: db.Collection("oauth_states")}
}

type stateDoc struct {
	State     string    `bson:"_id"`
	ReturnURL string    `bson:"return_url,omitempty"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// Save stores a state token with its return URL and expiry.
func (s *Store) Save(ctx context.Context, state, returnURL string, expiresAt time.Time) error {
	_, err := s.col.InsertOne(ctx, stateDoc{
		State:     state,
		ReturnURL: returnURL,
		ExpiresAt: expiresAt.UTC(),
	})
	return err
}

// Validate consumes a state token. It returns the stored return URL and
// whether the token existed and had not expired. Unknown and expired
// tokens are both reported as invalid, not as errors.
func (s *Store) Validate(ctx context.Context, state string) (returnURL string, valid bool, err error) {
	var doc stateDoc
	err = s.col.FindOneAndDelete(ctx, bson.M{"_id": state}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if time.Now().UTC().After(doc.ExpiresAt) {
		return "", false, nil
	}
	return doc.ReturnURL, true, nil
}
