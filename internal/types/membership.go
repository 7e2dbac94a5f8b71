package types

import (
	ierr "github.com/fakturo/fakturo/internal/errors"
	"github.com/samber/lo"
)

// MembershipRole is the role a principal holds within a tenant.
type MembershipRole string

const (
	MembershipRoleAdmin  MembershipRole = "admin"
	MembershipRoleMember MembershipRole = "member"
)

func (r MembershipRole) String() string {
	return string(r)
}

func (r MembershipRole) Validate() error {
	allowed := []MembershipRole{
		MembershipRoleAdmin,
		MembershipRoleMember,
	}
	if !lo.Contains(allowed, r) {
		return ierr.NewError("invalid membership role").
			WithHint("Please provide a valid membership role").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
