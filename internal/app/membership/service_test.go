package membership

import (
	"context"
	"errors"
	"strings"
	"testing"

	joincodestore "github.com/dalemusser/cyberhub/internal/app/store/joincodes"
	organizationstore "github.com/dalemusser/cyberhub/internal/app/store/organizations"
	"github.com/dalemusser/cyberhub/internal/app/system/txn"
	"github.com/dalemusser/cyberhub/internal/domain/models"
	"github.com/dalemusser/cyberhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func TestCreateOrganizationValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewService(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tests := []struct {
		name string
		in   CreateOrganizationInput
		want *Error
	}{
		{
			name: "missing name",
			in:   CreateOrganizationInput{Type: models.OrgTypeSmallBusiness, CreatedBy: "uid-1"},
			want: ErrOrgNameRequired,
		},
		{
			name: "whitespace name",
			in:   CreateOrganizationInput{Name: "   ", Type: models.OrgTypeSmallBusiness, CreatedBy: "uid-1"},
			want: ErrOrgNameRequired,
		},
		{
			name: "missing type",
			in:   CreateOrganizationInput{Name: "Acme", CreatedBy: "uid-1"},
			want: ErrOrgTypeRequired,
		},
		{
			name: "unknown type",
			in:   CreateOrganizationInput{Name: "Acme", Type: "franchise", CreatedBy: "uid-1"},
			want: ErrOrgTypeRequired,
		},
		{
			name: "missing creator",
			in:   CreateOrganizationInput{Name: "Acme", Type: models.OrgTypeSmallBusiness},
			want: ErrCreatedByRequired,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateOrganization(ctx, tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCreateAndRedeemRoundtrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewService(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	res, err := svc.CreateOrganization(ctx, CreateOrganizationInput{
		Name:          "  Harbor Credit Union  ",
		Type:          models.OrgTypeSmallBusiness,
		EmployeeRange: "11-50",
		CreatedBy:     "uid-founder",
	})
	if err != nil {
		t.Fatalf("CreateOrganization: %v", err)
	}
	if len(res.JoinCode) != CodeLength {
		t.Fatalf("join code %q has length %d, want %d", res.JoinCode, len(res.JoinCode), CodeLength)
	}
	if res.Summary.Name != "Harbor Credit Union" {
		t.Errorf("summary name %q, want trimmed %q", res.Summary.Name, "Harbor Credit Union")
	}

	// The code document must exist and point at the organization.
	jc, err := joincodestore.New(db).Get(ctx, res.JoinCode)
	if err != nil {
		t.Fatalf("join code document missing after create: %v", err)
	}
	if jc.OrgID != res.OrgID {
		t.Errorf("code points at %s, want %s", jc.OrgID.Hex(), res.OrgID.Hex())
	}
	if !jc.Active {
		t.Error("freshly issued code is not active")
	}

	// Redemption normalizes whitespace and case.
	messy := "  " + strings.ToLower(res.JoinCode) + "  "
	summary, err := svc.RedeemJoinCode(ctx, messy)
	if err != nil {
		t.Fatalf("RedeemJoinCode(%q): %v", messy, err)
	}
	if summary.ID != res.OrgID {
		t.Errorf("redeemed org %s, want %s", summary.ID.Hex(), res.OrgID.Hex())
	}
	if summary.JoinCode != res.JoinCode {
		t.Errorf("summary join code %q, want %q", summary.JoinCode, res.JoinCode)
	}
}

// TestCreateRollsBackOnCodeCollision drives the same two-write sequence
// CreateOrganization runs, with the code pre-claimed so the second write
// fails after the organization insert succeeded. The organization document
// must not survive.
func TestCreateRollsBackOnCodeCollision(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewService(db, zap.NewNop())
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if !txn.Supported(ctx, svc.client) {
		t.Skip("skipping: MongoDB deployment does not support transactions")
	}

	// Claims the code and makes sure both collections exist beforehand.
	fx.CreateOrganization(ctx, "Rival Org", "AB23CD")

	org := organizationstore.Prepare(models.Organization{
		Name:      "Phantom Org",
		Type:      models.OrgTypeSmallBusiness,
		CreatedBy: "uid-founder",
		JoinCode:  "AB23CD",
	})
	err := txn.WithTxn(ctx, svc.client, svc.log, func(ctx context.Context) error {
		if err := svc.orgs.Insert(ctx, org); err != nil {
			return err
		}
		return svc.codes.Insert(ctx, "AB23CD", org.ID, "uid-founder")
	})
	if !errors.Is(err, joincodestore.ErrDuplicateCode) {
		t.Fatalf("got %v, want ErrDuplicateCode", err)
	}

	if _, err := svc.orgs.GetByID(ctx, org.ID); err != mongo.ErrNoDocuments {
		t.Errorf("organization survived the failed transaction (lookup err: %v)", err)
	}
}

func TestRedeemJoinCodeFailures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewService(db, zap.NewNop())
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := svc.RedeemJoinCode(ctx, "   "); !errors.Is(err, ErrInviteCodeRequired) {
		t.Errorf("blank code: got %v, want ErrInviteCodeRequired", err)
	}

	if _, err := svc.RedeemJoinCode(ctx, "ZZZZZZ"); !errors.Is(err, ErrOrgNotFound) {
		t.Errorf("unknown code: got %v, want ErrOrgNotFound", err)
	}

	org := fx.CreateOrganization(ctx, "Dormant Org", "AB23CD")
	fx.DeactivateJoinCode(ctx, org.JoinCode)
	if _, err := svc.RedeemJoinCode(ctx, org.JoinCode); !errors.Is(err, ErrInviteInactive) {
		t.Errorf("inactive code: got %v, want ErrInviteInactive", err)
	}
}

func TestRegenerateJoinCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewService(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	res, err := svc.CreateOrganization(ctx, CreateOrganizationInput{
		Name:      "Rotating Lock Co",
		Type:      models.OrgTypeEducation,
		CreatedBy: "uid-founder",
	})
	if err != nil {
		t.Fatalf("CreateOrganization: %v", err)
	}
	oldCode := res.JoinCode

	newCode, err := svc.RegenerateJoinCode(ctx, res.OrgID, "uid-founder")
	if err != nil {
		t.Fatalf("RegenerateJoinCode: %v", err)
	}
	if newCode == oldCode {
		t.Fatal("regenerated code equals old code")
	}

	// Old code is gone, new code resolves the same organization.
	if _, err := svc.RedeemJoinCode(ctx, oldCode); !errors.Is(err, ErrOrgNotFound) {
		t.Errorf("old code after regenerate: got %v, want ErrOrgNotFound", err)
	}
	summary, err := svc.RedeemJoinCode(ctx, newCode)
	if err != nil {
		t.Fatalf("new code: %v", err)
	}
	if summary.ID != res.OrgID {
		t.Errorf("new code resolves org %s, want %s", summary.ID.Hex(), res.OrgID.Hex())
	}

	// The organization document carries the new code.
	org, err := svc.OrganizationByID(ctx, res.OrgID)
	if err != nil {
		t.Fatalf("OrganizationByID: %v", err)
	}
	if org.JoinCode != newCode {
		t.Errorf("organization join code %q, want %q", org.JoinCode, newCode)
	}
}

func TestRegenerateJoinCodeValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewService(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := svc.RegenerateJoinCode(ctx, primitive.NilObjectID, "uid-1"); !errors.Is(err, ErrOrgIDRequired) {
		t.Errorf("zero org id: got %v, want ErrOrgIDRequired", err)
	}
	if _, err := svc.RegenerateJoinCode(ctx, primitive.NewObjectID(), ""); !errors.Is(err, ErrCreatedByRequired) {
		t.Errorf("missing actor: got %v, want ErrCreatedByRequired", err)
	}
	if _, err := svc.RegenerateJoinCode(ctx, primitive.NewObjectID(), "uid-1"); !errors.Is(err, ErrOrgNotFound) {
		t.Errorf("unknown org: got %v, want ErrOrgNotFound", err)
	}
}
