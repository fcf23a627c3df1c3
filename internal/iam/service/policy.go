package service

import (
	"errors"

	"github.com/cobaltgate/iam/internal/iam/domain"
)

// ErrUnauthorized means the caller's role or company scope does not permit
// the attempted operation.
var ErrUnauthorized = errors.New("unauthorized")

// The role hierarchy is enforced here, in one place, so handlers and the
// user service stay mechanical. All checks assume the actor identity was
// re-resolved from storage by token verification.

// canCreate authorizes actor to create a user with the requested role, and
// returns the company scope the new user must be created under. Admins are
// pinned to their own company regardless of what the request asked for.
func canCreate(actor domain.Identity, targetRole domain.Role) error {
	switch actor.Role {
	case domain.RoleSuperadmin:
		return nil
	case domain.RoleAdmin:
		if targetRole == domain.RoleAdmin || targetRole == domain.RoleSuperadmin {
			return ErrUnauthorized
		}
		return nil
	default:
		return ErrUnauthorized
	}
}

// canRead authorizes actor to look at target. Admins only see active users
// of their own company, and never superadmins.
func canRead(actor domain.Identity, target domain.User) error {
	switch actor.Role {
	case domain.RoleSuperadmin:
		return nil
	case domain.RoleAdmin:
		if target.Role == domain.RoleSuperadmin {
			return ErrUnauthorized
		}
		if target.CompanyID != actor.CompanyID {
			return ErrUnauthorized
		}
		return nil
	default:
		return ErrUnauthorized
	}
}

// canWrite authorizes actor to update or delete target. Same visibility as
// canRead; the field-level update restrictions live in canSetFields.
func canWrite(actor domain.Identity, target domain.User) error {
	return canRead(actor, target)
}

// canSetFields authorizes the field changes of an update: admins can
// neither promote anyone to superadmin nor move users between companies.
func canSetFields(actor domain.Identity, target domain.User, newRole domain.Role, newCompanyID string) error {
	if actor.Role == domain.RoleSuperadmin {
		return nil
	}
	if newRole == domain.RoleSuperadmin {
		return ErrUnauthorized
	}
	if newCompanyID != "" && newCompanyID != target.CompanyID {
		return ErrUnauthorized
	}
	return nil
}

// listScope narrows a listing to what the actor may see. Superadmins see
// the whole app; admins see their own company minus superadmins; everyone
// else sees nothing.
func listScope(actor domain.Identity, q domain.ListQuery) (domain.ListQuery, error) {
	q.AppID = actor.AppID
	switch actor.Role {
	case domain.RoleSuperadmin:
		q.CompanyID = ""
		q.ExcludeSuperadmins = false
		return q, nil
	case domain.RoleAdmin:
		q.CompanyID = actor.CompanyID
		q.ExcludeSuperadmins = true
		return q, nil
	default:
		return domain.ListQuery{}, ErrUnauthorized
	}
}
