// internal/domain/models/organization.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Organization types, matching the onboarding form choices.
const (
	OrgTypeSmallBusiness = "small_business"
	OrgTypeLocalGov      = "local_gov"
	OrgTypeEducation     = "education"
)

// ValidOrgType reports whether t is one of the enumerated organization types.
func ValidOrgType(t string) bool {
	switch t {
	case OrgTypeSmallBusiness, OrgTypeLocalGov, OrgTypeEducation:
		return true
	}
	return false
}

// EmployeeRanges are the selectable organization size buckets.
var EmployeeRanges = []string{"1-10", "11-50", "51-200", "201-1000", "1000+"}

// Organization is created once by a coordinator during onboarding.
// JoinCode always names the current active join-code document; it is
// rewritten (together with a new join_codes document, in one transaction)
// whenever the code is regenerated.
type Organization struct {
	ID            primitive.ObjectID `bson:"_id"`
	Name          string             `bson:"name"`
	NameCI        string             `bson:"name_ci"` // lowercase, diacritics-stripped
	Type          string             `bson:"type"`
	EmployeeRange string             `bson:"employee_range,omitempty"`
	CreatedBy     string             `bson:"created_by"` // identity-provider uid

	JoinCode          string    `bson:"join_code"`
	JoinCodeUpdatedAt time.Time `bson:"join_code_updated_at"`

	// Coordinator-editable status banner shown to all members.
	BannerMessage   string     `bson:"banner_message,omitempty"`
	BannerUpdatedAt *time.Time `bson:"banner_updated_at,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// OrganizationSummary is the one projection of organization display fields
// handed to callers that denormalize them (user profiles, account page).
// Every consumer uses this shape verbatim rather than assembling its own.
type OrganizationSummary struct {
	ID            primitive.ObjectID `bson:"organization_id" json:"organization_id"`
	Name          string             `bson:"organization_name" json:"organization_name"`
	Type          string             `bson:"organization_type" json:"organization_type"`
	EmployeeRange string             `bson:"employee_range,omitempty" json:"employee_range,omitempty"`
	JoinCode      string             `bson:"join_code,omitempty" json:"join_code,omitempty"`
}

// Summary returns the projection for this organization.
func (o Organization) Summary() OrganizationSummary {
	return OrganizationSummary{
		ID:            o.ID,
		Name:          o.Name,
		Type:          o.Type,
		EmployeeRange: o.EmployeeRange,
		JoinCode:      o.JoinCode,
	}
}
