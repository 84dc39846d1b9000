// internal/app/membership/service.go
//
// Package membership owns the organization join-code protocol: atomic
// organization creation with an attached code, code regeneration, and code
// redemption during onboarding. Redemption resolves a code to the
// OrganizationSummary projection; it never grants membership itself — the
// caller writes the summary onto the joining user's profile.
package membership

import (
	"context"
	"errors"
	"strings"
	"time"

	joincodestore "github.com/dalemusser/cyberhub/internal/app/store/joincodes"
	organizationstore "github.com/dalemusser/cyberhub/internal/app/store/organizations"
	"github.com/dalemusser/cyberhub/internal/app/system/normalize"
	"github.com/dalemusser/cyberhub/internal/app/system/txn"
	"github.com/dalemusser/cyberhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Service struct {
	client *mongo.Client
	orgs   *organizationstore.Store
	codes  *joincodestore.Store
	log    *zap.Logger
}

func NewService(db *mongo.Database, logger *zap.Logger) *Service {
	return &Service{
		client: db.Client(),
		orgs:   organizationstore.New(db),
		codes:  joincodestore.New(db),
		log:    logger,
	}
}

// CreateOrganizationInput carries the coordinator's onboarding form fields.
type CreateOrganizationInput struct {
	Name          string
	Type          string
	EmployeeRange string
	CreatedBy     string // identity-provider uid
}

// CreateOrganizationResult returns the new organization's id, its issued
// join code, and the summary projection for profile denormalization.
type CreateOrganizationResult struct {
	OrgID    primitive.ObjectID
	JoinCode string
	Summary  models.OrganizationSummary
}

// CreateOrganization allocates an organization with a fresh unique join
// code. The organization document and the join-code document are written in
// one transaction: no reader ever observes an organization without a valid
// current code, or a code pointing at a missing organization. On any
// failure nothing is persisted.
func (s *Service) CreateOrganization(ctx context.Context, in CreateOrganizationInput) (CreateOrganizationResult, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return CreateOrganizationResult{}, ErrOrgNameRequired
	}
	if !models.ValidOrgType(in.Type) {
		return CreateOrganizationResult{}, ErrOrgTypeRequired
	}
	if in.CreatedBy == "" {
		return CreateOrganizationResult{}, ErrCreatedByRequired
	}

	code, err := uniqueCode(ctx, s.codes.Exists)
	if err != nil {
		return CreateOrganizationResult{}, err
	}

	org := organizationstore.Prepare(models.Organization{
		Name:              name,
		Type:              in.Type,
		EmployeeRange:     in.EmployeeRange,
		CreatedBy:         in.CreatedBy,
		JoinCode:          code,
		JoinCodeUpdatedAt: time.Now().UTC(),
	})

	err = txn.WithTxn(ctx, s.client, s.log, func(ctx context.Context) error {
		if err := s.orgs.Insert(ctx, org); err != nil {
			return err
		}
		return s.codes.Insert(ctx, code, org.ID, in.CreatedBy)
	})
	if err != nil {
		if errors.Is(err, joincodestore.ErrDuplicateCode) {
			// Lost the check-then-act race: another caller claimed this
			// code between our uniqueness check and the insert. The
			// transaction rolled back, so nothing is persisted.
			s.log.Warn("join code collided at insert", zap.String("org_name", name))
			return CreateOrganizationResult{}, ErrGenerationExhausted
		}
		return CreateOrganizationResult{}, wrap("create organization", err)
	}

	s.log.Info("organization created",
		zap.String("org_id", org.ID.Hex()),
		zap.String("org_type", org.Type))

	return CreateOrganizationResult{
		OrgID:    org.ID,
		JoinCode: code,
		Summary:  org.Summary(),
	}, nil
}

// RegenerateJoinCode issues a new code for an existing organization,
// atomically inserting the new join-code document, repointing the
// organization, and deleting the superseded document. The old code becomes
// invalid for redemption the moment the call returns.
//
// Authorization is the caller's concern: the HTTP layer only routes
// coordinators of the organization here.
func (s *Service) RegenerateJoinCode(ctx context.Context, orgID primitive.ObjectID, actorUID string) (string, error) {
	if orgID.IsZero() {
		return "", ErrOrgIDRequired
	}
	if actorUID == "" {
		return "", ErrCreatedByRequired
	}

	org, err := s.orgs.GetByID(ctx, orgID)
	if err == mongo.ErrNoDocuments {
		return "", ErrOrgNotFound
	}
	if err != nil {
		return "", wrap("load organization", err)
	}
	oldCode := org.JoinCode

	newCode, err := uniqueCode(ctx, s.codes.Exists)
	if err != nil {
		return "", err
	}

	err = txn.WithTxn(ctx, s.client, s.log, func(ctx context.Context) error {
		if err := s.codes.Insert(ctx, newCode, orgID, actorUID); err != nil {
			return err
		}
		if err := s.orgs.SetJoinCode(ctx, orgID, newCode); err != nil {
			return err
		}
		if oldCode != "" {
			return s.codes.Delete(ctx, oldCode)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, joincodestore.ErrDuplicateCode) {
			s.log.Warn("join code collided at insert", zap.String("org_id", orgID.Hex()))
			return "", ErrGenerationExhausted
		}
		return "", wrap("regenerate join code", err)
	}

	s.log.Info("join code regenerated", zap.String("org_id", orgID.Hex()))
	return newCode, nil
}

// RedeemJoinCode resolves a user-entered code to the organization it is
// bound to. Input is trimmed and uppercased, so " ab12cd " and "AB12CD"
// resolve identically. An unknown code and an inactive code fail with
// distinct errors.
//
// The organization read that enriches the result is part of the contract:
// a code whose organization document is missing reports the same lookup
// failure as an unknown code, never a different error.
func (s *Service) RedeemJoinCode(ctx context.Context, rawCode string) (models.OrganizationSummary, error) {
	code := normalize.JoinCode(rawCode)
	if code == "" {
		return models.OrganizationSummary{}, ErrInviteCodeRequired
	}

	jc, err := s.codes.Get(ctx, code)
	if errors.Is(err, joincodestore.ErrNotFound) {
		return models.OrganizationSummary{}, ErrOrgNotFound
	}
	if err != nil {
		return models.OrganizationSummary{}, wrap("look up join code", err)
	}
	if !jc.Active {
		return models.OrganizationSummary{}, ErrInviteInactive
	}

	org, err := s.orgs.GetByID(ctx, jc.OrgID)
	if err == mongo.ErrNoDocuments {
		return models.OrganizationSummary{}, ErrOrgNotFound
	}
	if err != nil {
		return models.OrganizationSummary{}, wrap("load organization", err)
	}

	summary := org.Summary()
	if summary.JoinCode == "" {
		summary.JoinCode = code
	}
	return summary, nil
}

// OrganizationByID returns the summary projection for an organization the
// caller already belongs to (account page, organization view).
func (s *Service) OrganizationByID(ctx context.Context, orgID primitive.ObjectID) (models.Organization, error) {
	org, err := s.orgs.GetByID(ctx, orgID)
	if err == mongo.ErrNoDocuments {
		return models.Organization{}, ErrOrgNotFound
	}
	if err != nil {
		return models.Organization{}, wrap("load organization", err)
	}
	return org, nil
}
