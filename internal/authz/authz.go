// Package authz holds the authorization predicates for content and admin
// management. Content rights follow a single rule evaluated against the
// owning page; admin management layers explicit policy checks on top.
package authz

import "github.com/amohooo/cv-app/internal/model"

// CanMutate reports whether caller may create, update or delete content
// owned by ownerID. Masters may mutate anything; everyone else only their
// own pages and, transitively, the sections and cards under them. The
// caller's active flag is enforced at authentication, never here.
func CanMutate(caller *model.Admin, ownerID uint) bool {
	if caller == nil {
		return false
	}
	return caller.IsMaster() || caller.ID == ownerID
}

// CanManageAdmin reports whether caller may update the target account.
// Masters manage anyone, regular admins only themselves.
func CanManageAdmin(caller, target *model.Admin) bool {
	if caller == nil || target == nil {
		return false
	}
	return caller.IsMaster() || caller.ID == target.ID
}

// CanListAdmins reports whether caller may enumerate all accounts.
func CanListAdmins(caller *model.Admin) bool {
	return caller != nil && caller.IsMaster()
}

// CanRegisterAdmins reports whether caller may create accounts for others.
func CanRegisterAdmins(caller *model.Admin) bool {
	return caller != nil && caller.IsMaster()
}

// DeleteDecision is the outcome of the admin deletion policy. Only masters
// delete accounts, a master never deletes itself, and master accounts cannot
// be deleted at all.
type DeleteDecision int

// Delete policy outcomes.
const (
	DeleteAllowed DeleteDecision = iota
	DeleteDeniedNotMaster
	DeleteDeniedSelf
	DeleteDeniedMasterTarget
)

// CanDeleteAdmin evaluates the admin deletion policy.
func CanDeleteAdmin(caller, target *model.Admin) DeleteDecision {
	if caller == nil || !caller.IsMaster() {
		return DeleteDeniedNotMaster
	}
	if target.ID == caller.ID {
		return DeleteDeniedSelf
	}
	if target.IsMaster() {
		return DeleteDeniedMasterTarget
	}
	return DeleteAllowed
}

// SanitizeRole forces every externally supplied role to a storable value
// and blocks escalation to master through any public path.
func SanitizeRole(requested string) string {
	if requested == model.RoleMaster {
		return model.RoleAdmin
	}
	if requested == "" {
		return model.RoleAdmin
	}
	return requested
}
