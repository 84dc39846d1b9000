package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/cyberhub/internal/app/system/auth"
	"github.com/dalemusser/cyberhub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserCtx_Anonymous(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)

	role, name, id, ok := authz.UserCtx(r)
	if ok {
		t.Error("expected ok=false for anonymous request")
	}
	if role != "visitor" || name != "" || id != primitive.NilObjectID {
		t.Errorf("unexpected anonymous ctx: role=%q name=%q id=%v", role, name, id)
	}
}

func TestUserCtx_MalformedID(t *testing.T) {
	r := auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.SessionUser{ID: "not-an-object-id", Role: "coordinator"})

	if _, _, _, ok := authz.UserCtx(r); ok {
		t.Error("expected ok=false for malformed user ID")
	}
}

func TestUserCtx_NormalizesRole(t *testing.T) {
	id := primitive.NewObjectID()
	r := auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.SessionUser{ID: id.Hex(), Name: "Pat", Role: "Coordinator"})

	role, name, gotID, ok := authz.UserCtx(r)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if role != "coordinator" || name != "Pat" || gotID != id {
		t.Errorf("unexpected ctx: role=%q name=%q id=%v", role, name, gotID)
	}
	if !authz.IsCoordinator(r) {
		t.Error("IsCoordinator should be true")
	}
	if authz.IsParticipant(r) {
		t.Error("IsParticipant should be false")
	}
}

func TestUserOrgID(t *testing.T) {
	orgID := primitive.NewObjectID()
	r := auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.SessionUser{ID: primitive.NewObjectID().Hex(), Role: "participant", OrganizationID: orgID.Hex()})

	if got := authz.UserOrgID(r); got != orgID {
		t.Errorf("UserOrgID: got %v, want %v", got, orgID)
	}

	// No org yet (pre-onboarding).
	r = auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.SessionUser{ID: primitive.NewObjectID().Hex(), Role: "participant"})
	if got := authz.UserOrgID(r); got != primitive.NilObjectID {
		t.Errorf("UserOrgID without org: got %v, want NilObjectID", got)
	}
}
