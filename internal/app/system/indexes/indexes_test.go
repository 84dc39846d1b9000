package indexes

import (
	"testing"

	"github.com/dalemusser/cyberhub/internal/testutil"
	"go.uber.org/zap"
)

func TestEnsureAllIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("first EnsureAll: %v", err)
	}
	if err := EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("second EnsureAll: %v", err)
	}

	cur, err := db.Collection("users").Indexes().List(ctx)
	if err != nil {
		t.Fatalf("list indexes: %v", err)
	}
	var names []string
	for cur.Next(ctx) {
		var idx struct {
			Name string `bson:"name"`
		}
		if err := cur.Decode(&idx); err != nil {
			t.Fatalf("decode index: %v", err)
		}
		names = append(names, idx.Name)
	}
	// _id plus the three declared indexes.
	if len(names) != 4 {
		t.Errorf("users has indexes %v, want 4", names)
	}
}
