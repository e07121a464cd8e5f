package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amohooo/cv-app/internal/model"
)

func TestCanMutate(t *testing.T) {
	master := &model.Admin{ID: 1, Role: model.RoleMaster}
	owner := &model.Admin{ID: 2, Role: model.RoleAdmin}

	tests := []struct {
		name     string
		caller   *model.Admin
		ownerID  uint
		expected bool
	}{
		{"master mutates anyone's content", master, 2, true},
		{"master mutates their own content", master, 1, true},
		{"owner mutates their own content", owner, 2, true},
		{"admin may not mutate someone else's content", owner, 3, false},
		{"nil caller is denied", nil, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanMutate(tt.caller, tt.ownerID))
		})
	}
}

func TestCanMutate_InactiveOwnerStillOwns(t *testing.T) {
	// The active flag gates authentication, not ownership. A deactivated
	// admin that somehow reaches this check still owns its pages.
	inactive := &model.Admin{ID: 2, Role: model.RoleAdmin, IsActive: false}
	assert.True(t, CanMutate(inactive, 2))
}

func TestCanManageAdmin(t *testing.T) {
	master := &model.Admin{ID: 1, Role: model.RoleMaster}
	regular := &model.Admin{ID: 2, Role: model.RoleAdmin}
	other := &model.Admin{ID: 3, Role: model.RoleAdmin}

	tests := []struct {
		name     string
		caller   *model.Admin
		target   *model.Admin
		expected bool
	}{
		{"master manages anyone", master, other, true},
		{"admin manages itself", regular, regular, true},
		{"admin may not manage others", regular, other, false},
		{"nil caller is denied", nil, other, false},
		{"nil target is denied", master, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanManageAdmin(tt.caller, tt.target))
		})
	}
}

func TestCanDeleteAdmin(t *testing.T) {
	master := &model.Admin{ID: 1, Role: model.RoleMaster}
	secondMaster := &model.Admin{ID: 4, Role: model.RoleMaster}
	regular := &model.Admin{ID: 2, Role: model.RoleAdmin}
	other := &model.Admin{ID: 3, Role: model.RoleAdmin}

	tests := []struct {
		name     string
		caller   *model.Admin
		target   *model.Admin
		expected DeleteDecision
	}{
		{"master deletes a regular admin", master, other, DeleteAllowed},
		{"regular admin may not delete", regular, other, DeleteDeniedNotMaster},
		{"regular admin may not even delete itself", regular, regular, DeleteDeniedNotMaster},
		{"master may not delete itself", master, master, DeleteDeniedSelf},
		{"master accounts are undeletable", master, secondMaster, DeleteDeniedMasterTarget},
		{"nil caller is denied", nil, other, DeleteDeniedNotMaster},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanDeleteAdmin(tt.caller, tt.target))
		})
	}
}

func TestCanListAdmins(t *testing.T) {
	assert.True(t, CanListAdmins(&model.Admin{ID: 1, Role: model.RoleMaster}))
	assert.False(t, CanListAdmins(&model.Admin{ID: 2, Role: model.RoleAdmin}))
	assert.False(t, CanListAdmins(nil))
}

func TestSanitizeRole(t *testing.T) {
	tests := []struct {
		name      string
		requested string
		expected  string
	}{
		{"master is demoted", model.RoleMaster, model.RoleAdmin},
		{"empty defaults to admin", "", model.RoleAdmin},
		{"admin passes through", model.RoleAdmin, model.RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeRole(tt.requested))
		})
	}
}
