// internal/app/membership/errors.go
package membership

import (
	"errors"
	"fmt"
)

// Code is a closed enumeration of membership failure conditions. Handlers
// switch over the code to choose user-facing copy; validation codes report
// missing input, CodeOrgNotFound and CodeInviteInactive are the two
// user-distinguishable redemption failures, and CodeGenerationExhausted is a
// terminal resource-exhaustion failure of a single call.
type Code string

const (
	CodeOrgNameRequired     Code = "ORG_NAME_REQUIRED"
	CodeOrgTypeRequired     Code = "ORG_TYPE_REQUIRED"
	CodeCreatedByRequired   Code = "CREATED_BY_REQUIRED"
	CodeOrgIDRequired       Code = "ORG_ID_REQUIRED"
	CodeInviteCodeRequired  Code = "INVITE_CODE_REQUIRED"
	CodeOrgNotFound         Code = "ORG_NOT_FOUND"
	CodeInviteInactive      Code = "INVITE_CODE_INACTIVE"
	CodeGenerationExhausted Code = "CODE_GENERATION_EXHAUSTED"
)

// Error carries a membership failure code. All errors the service returns
// for conditions a caller is expected to handle are of this type; anything
// else is an infrastructure error to be logged and rendered generically.
type Error struct {
	Code Code
}

func (e *Error) Error() string {
	return string(e.Code)
}

// Is makes errors.Is match on the code, so sentinel comparison works across
// wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// Sentinel instances for errors.Is comparisons.
var (
	ErrOrgNameRequired     = &Error{Code: CodeOrgNameRequired}
	ErrOrgTypeRequired     = &Error{Code: CodeOrgTypeRequired}
	ErrCreatedByRequired   = &Error{Code: CodeCreatedByRequired}
	ErrOrgIDRequired       = &Error{Code: CodeOrgIDRequired}
	ErrInviteCodeRequired  = &Error{Code: CodeInviteCodeRequired}
	ErrOrgNotFound         = &Error{Code: CodeOrgNotFound}
	ErrInviteInactive      = &Error{Code: CodeInviteInactive}
	ErrGenerationExhausted = &Error{Code: CodeGenerationExhausted}
)

// CodeOf extracts the membership code from err, or "" when err is not a
// membership error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// wrap annotates an infrastructure error with the failing operation.
func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
