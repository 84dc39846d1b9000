// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. The role is chosen once at onboarding and is not
// self-serviceably changeable afterward.
const (
	RoleCoordinator = "coordinator"
	RoleParticipant = "participant"
)

// OnboardingVersion is the current onboarding schema version stamped onto
// profiles when onboarding completes.
const OnboardingVersion = 2

// User represents coordinators and participants.
//
// UID is the stable id from the external identity provider; there is a unique
// index on it. Organization display fields are a denormalized copy of
// OrganizationSummary written at onboarding time.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UID          string             `bson:"uid" json:"uid"`
	Email        string             `bson:"email" json:"email"`
	EmailCI      string             `bson:"email_ci" json:"-"` // lowercase, diacritics-stripped
	DisplayName  string             `bson:"display_name" json:"display_name"`
	Role         string             `bson:"role,omitempty" json:"role,omitempty"` // coordinator | participant
	AuthMethod   string             `bson:"auth_method,omitempty" json:"auth_method,omitempty"`
	PasswordHash []byte             `bson:"password_hash,omitempty" json:"-"`

	OrganizationID   *primitive.ObjectID `bson:"organization_id,omitempty" json:"organization_id,omitempty"`
	OrganizationName string              `bson:"organization_name,omitempty" json:"organization_name,omitempty"`
	OrganizationType string              `bson:"organization_type,omitempty" json:"organization_type,omitempty"`
	EmployeeRange    string              `bson:"employee_range,omitempty" json:"employee_range,omitempty"`
	JoinCode         string              `bson:"join_code,omitempty" json:"join_code,omitempty"`
	Department       string              `bson:"department,omitempty" json:"department,omitempty"`

	OnboardingComplete bool `bson:"onboarding_complete" json:"onboarding_complete"`
	OnboardingVersion  int  `bson:"onboarding_version,omitempty" json:"onboarding_version,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// OrgSummary returns the denormalized organization projection stored on the
// profile, or a zero summary if the user has none.
func (u User) OrgSummary() OrganizationSummary {
	if u.OrganizationID == nil {
		return OrganizationSummary{}
	}
	return OrganizationSummary{
		ID:            *u.OrganizationID,
		Name:          u.OrganizationName,
		Type:          u.OrganizationType,
		EmployeeRange: u.EmployeeRange,
		JoinCode:      u.JoinCode,
	}
}
