package service

import (
	"context"
	goerrors "errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/amohooo/cv-app/internal/auth"
	"github.com/amohooo/cv-app/internal/authz"
	"github.com/amohooo/cv-app/internal/errors"
	"github.com/amohooo/cv-app/internal/model"
	"github.com/amohooo/cv-app/internal/repository"
)

const bcryptCost = 10

var (
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = goerrors.New("invalid credentials")
	// ErrAccountDeactivated is returned when a deactivated admin tries to log in.
	ErrAccountDeactivated = goerrors.New("account is deactivated")
	// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
	ErrInvalidRefreshToken = goerrors.New("invalid or expired refresh token")
	// ErrWrongPassword is returned when the current password check fails.
	ErrWrongPassword = goerrors.New("current password is incorrect")
)

// RegisterInput carries the fields for a new admin account.
type RegisterInput struct {
	Username string
	Password string
	Email    *string
	Role     string
}

// UpdateAdminInput carries a partial admin update. Role is deliberately
// absent; it cannot be changed through the public update path.
type UpdateAdminInput struct {
	Username *string
	Email    *string
	IsActive *bool
}

// AuthService handles authentication and admin account management.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*model.Admin, error)
	RegisterAdmin(ctx context.Context, caller *model.Admin, input RegisterInput) (*model.Admin, error)
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, admin *model.Admin, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
	ChangePassword(ctx context.Context, caller *model.Admin, currentPassword, newPassword string) error
	ListAdmins(ctx context.Context, caller *model.Admin) ([]model.Admin, error)
	UpdateAdmin(ctx context.Context, caller *model.Admin, id uint, input UpdateAdminInput) (*model.Admin, error)
	DeleteAdmin(ctx context.Context, caller *model.Admin, id uint) error
}

type authService struct {
	admins     repository.AdminRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(admins repository.AdminRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		admins:     admins,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Register creates a new account through the public path. The role is
// always a regular admin, whatever the request asked for.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.Admin, error) {
	input.Role = model.RoleAdmin
	return s.createAdmin(ctx, input)
}

// RegisterAdmin creates an account on behalf of a master admin. A request
// for the master role is demoted to a regular admin.
func (s *authService) RegisterAdmin(ctx context.Context, caller *model.Admin, input RegisterInput) (*model.Admin, error) {
	if !authz.CanRegisterAdmins(caller) {
		return nil, errors.ErrForbidden
	}
	input.Role = authz.SanitizeRole(input.Role)
	return s.createAdmin(ctx, input)
}

func (s *authService) createAdmin(ctx context.Context, input RegisterInput) (*model.Admin, error) {
	if err := s.ensureUsernameFree(ctx, input.Username); err != nil {
		return nil, err
	}
	if input.Email != nil {
		if err := s.ensureEmailFree(ctx, *input.Email); err != nil {
			return nil, err
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := &model.Admin{
		Username:     input.Username,
		PasswordHash: string(hashedPassword),
		Role:         input.Role,
		Email:        input.Email,
		IsActive:     true,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return admin, nil
}

// Login authenticates an admin and returns access and refresh tokens.
// Deactivated accounts are rejected here, not in the authorization rules.
func (s *authService) Login(ctx context.Context, username, password string) (accessToken, refreshToken string, admin *model.Admin, err error) {
	admin, err = s.admins.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", "", nil, ErrInvalidCredentials
		}
		return "", "", nil, fmt.Errorf("find admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	if !admin.IsActive {
		return "", "", nil, ErrAccountDeactivated
	}

	accessToken, err = s.jwtService.GenerateAccessToken(admin.ID, admin.Username, admin.Role)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(admin.ID, admin.Username)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, admin.ID, admin.Username, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, admin, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	storedAdminID, storedUsername, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}
	if storedAdminID != claims.AdminID || storedUsername != claims.Username {
		return "", ErrInvalidRefreshToken
	}

	// Re-read the account so a demotion or deactivation invalidates the
	// session on refresh.
	admin, err := s.admins.FindByID(ctx, claims.AdminID)
	if err != nil || !admin.IsActive {
		return "", ErrInvalidRefreshToken
	}

	accessToken, err = s.jwtService.GenerateAccessToken(admin.ID, admin.Username, admin.Role)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout invalidates a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}

// ChangePassword rehashes and stores a new password after verifying the
// current one.
func (s *authService) ChangePassword(ctx context.Context, caller *model.Admin, currentPassword, newPassword string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(caller.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.admins.Update(ctx, caller.ID, map[string]interface{}{
		"password_hash": string(hashedPassword),
	})
}

// ListAdmins returns every account. Master only.
func (s *authService) ListAdmins(ctx context.Context, caller *model.Admin) ([]model.Admin, error) {
	if !authz.CanListAdmins(caller) {
		return nil, errors.ErrForbidden
	}
	return s.admins.List(ctx)
}

// UpdateAdmin updates an account. Masters update anyone, regular admins
// only themselves, and only masters may toggle the active flag. Role is
// never written regardless of caller.
func (s *authService) UpdateAdmin(ctx context.Context, caller *model.Admin, id uint, input UpdateAdminInput) (*model.Admin, error) {
	target, err := s.findAdmin(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageAdmin(caller, target) {
		return nil, errors.ErrForbidden
	}

	fields := map[string]interface{}{}
	if input.Username != nil && *input.Username != target.Username {
		if err := s.ensureUsernameFree(ctx, *input.Username); err != nil {
			return nil, err
		}
		fields["username"] = *input.Username
	}
	if input.Email != nil && (target.Email == nil || *input.Email != *target.Email) {
		if err := s.ensureEmailFree(ctx, *input.Email); err != nil {
			return nil, err
		}
		fields["email"] = *input.Email
	}
	if input.IsActive != nil && caller.IsMaster() {
		fields["is_active"] = *input.IsActive
	}

	if len(fields) > 0 {
		if err := s.admins.Update(ctx, target.ID, fields); err != nil {
			return nil, fmt.Errorf("update admin: %w", err)
		}
	}
	return s.findAdmin(ctx, id)
}

// DeleteAdmin removes an account under the master-only deletion policy.
func (s *authService) DeleteAdmin(ctx context.Context, caller *model.Admin, id uint) error {
	target, err := s.findAdmin(ctx, id)
	if err != nil {
		return err
	}

	switch authz.CanDeleteAdmin(caller, target) {
	case authz.DeleteDeniedNotMaster:
		return errors.ErrForbidden
	case authz.DeleteDeniedSelf:
		return errors.ErrCannotDeleteSelf
	case authz.DeleteDeniedMasterTarget:
		return errors.ErrCannotDeleteMaster
	}

	return s.admins.Delete(ctx, target.ID)
}

func (s *authService) findAdmin(ctx context.Context, id uint) (*model.Admin, error) {
	admin, err := s.admins.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAdminNotFound
		}
		return nil, err
	}
	return admin, nil
}

func (s *authService) ensureUsernameFree(ctx context.Context, username string) error {
	existing, err := s.admins.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return errors.ErrUsernameTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check username: %w", err)
	}
	return nil
}

func (s *authService) ensureEmailFree(ctx context.Context, email string) error {
	existing, err := s.admins.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return errors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return fmt.Errorf("check email: %w", err)
	}
	return nil
}
