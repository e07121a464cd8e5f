package service

import (
	"context"
	goerrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/amohooo/cv-app/internal/auth"
	"github.com/amohooo/cv-app/internal/errors"
	"github.com/amohooo/cv-app/internal/model"
)

func TestAuthService_Register(t *testing.T) {
	email := "test@example.com"

	tests := []struct {
		name          string
		input         RegisterInput
		setupMock     func(*MockAdminRepository)
		expectedError error
	}{
		{
			name:  "successful registration",
			input: RegisterInput{Username: "newadmin", Password: "password123", Email: &email},
			setupMock: func(m *MockAdminRepository) {
				m.On("FindByUsername", mock.Anything, "newadmin").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", mock.Anything, email).Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Admin")).Return(nil)
			},
		},
		{
			name:  "username already taken",
			input: RegisterInput{Username: "existing", Password: "password123"},
			setupMock: func(m *MockAdminRepository) {
				m.On("FindByUsername", mock.Anything, "existing").Return(&model.Admin{Username: "existing"}, nil)
			},
			expectedError: errors.ErrUsernameTaken,
		},
		{
			name:  "email already taken",
			input: RegisterInput{Username: "newadmin", Password: "password123", Email: &email},
			setupMock: func(m *MockAdminRepository) {
				m.On("FindByUsername", mock.Anything, "newadmin").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", mock.Anything, email).Return(&model.Admin{Email: &email}, nil)
			},
			expectedError: errors.ErrEmailTaken,
		},
		{
			name:  "requested master role is ignored",
			input: RegisterInput{Username: "sneaky", Password: "password123", Role: model.RoleMaster},
			setupMock: func(m *MockAdminRepository) {
				m.On("FindByUsername", mock.Anything, "sneaky").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Admin")).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAdminRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, new(MockTokenStore))

			admin, err := service.Register(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, admin)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, admin)
				assert.Equal(t, tt.input.Username, admin.Username)
				assert.Equal(t, model.RoleAdmin, admin.Role)
				assert.True(t, admin.IsActive)
				assert.NotEmpty(t, admin.PasswordHash)
				assert.NotEqual(t, tt.input.Password, admin.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_RegisterAdmin(t *testing.T) {
	master := &model.Admin{ID: 1, Username: "master", Role: model.RoleMaster}
	regular := &model.Admin{ID: 2, Username: "regular", Role: model.RoleAdmin}

	tests := []struct {
		name          string
		caller        *model.Admin
		input         RegisterInput
		setupMock     func(*MockAdminRepository)
		expectedError error
		expectedRole  string
	}{
		{
			name:   "master creates a regular admin",
			caller: master,
			input:  RegisterInput{Username: "newadmin", Password: "password123"},
			setupMock: func(m *MockAdminRepository) {
				m.On("FindByUsername", mock.Anything, "newadmin").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Admin")).Return(nil)
			},
			expectedRole: model.RoleAdmin,
		},
		{
			name:   "master role request is demoted",
			caller: master,
			input:  RegisterInput{Username: "wannabe", Password: "password123", Role: model.RoleMaster},
			setupMock: func(m *MockAdminRepository) {
				m.On("FindByUsername", mock.Anything, "wannabe").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Admin")).Return(nil)
			},
			expectedRole: model.RoleAdmin,
		},
		{
			name:          "regular admin may not create accounts",
			caller:        regular,
			input:         RegisterInput{Username: "newadmin", Password: "password123"},
			setupMock:     func(m *MockAdminRepository) {},
			expectedError: errors.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAdminRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, new(MockTokenStore))

			admin, err := service.RegisterAdmin(context.Background(), tt.caller, tt.input)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, admin)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, admin)
				assert.Equal(t, tt.expectedRole, admin.Role)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockAdminRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "admin",
			password: "password123",
			setupMock: func(mRepo *MockAdminRepository, mToken *MockTokenStore) {
				mRepo.On("FindByUsername", mock.Anything, "admin").Return(&model.Admin{
					ID:           1,
					Username:     "admin",
					PasswordHash: string(hashedPassword),
					Role:         model.RoleAdmin,
					IsActive:     true,
				}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(1), "admin", mock.Anything).Return(nil)
			},
		},
		{
			name:     "unknown username",
			username: "nobody",
			password: "password123",
			setupMock: func(mRepo *MockAdminRepository, mToken *MockTokenStore) {
				mRepo.On("FindByUsername", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "admin",
			password: "wrong-password",
			setupMock: func(mRepo *MockAdminRepository, mToken *MockTokenStore) {
				mRepo.On("FindByUsername", mock.Anything, "admin").Return(&model.Admin{
					ID:           1,
					Username:     "admin",
					PasswordHash: string(hashedPassword),
					IsActive:     true,
				}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "deactivated account",
			username: "parked",
			password: "password123",
			setupMock: func(mRepo *MockAdminRepository, mToken *MockTokenStore) {
				mRepo.On("FindByUsername", mock.Anything, "parked").Return(&model.Admin{
					ID:           3,
					Username:     "parked",
					PasswordHash: string(hashedPassword),
					IsActive:     false,
				}, nil)
			},
			expectedError: ErrAccountDeactivated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAdminRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockTokenStore)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, mockTokenStore)

			accessToken, refreshToken, admin, err := service.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, admin)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.NotNil(t, admin)
				assert.Equal(t, tt.username, admin.Username)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_DatabaseFailureIsNotCredentials(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	mockRepo.On("FindByUsername", mock.Anything, "admin").Return(nil, goerrors.New("dial tcp: connection refused"))

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))
	accessToken, refreshToken, admin, err := service.Login(context.Background(), "admin", "password123")

	// A lookup failure must surface as an internal error, never as a 401.
	assert.Error(t, err)
	assert.NotEqual(t, ErrInvalidCredentials, err)
	assert.Empty(t, accessToken)
	assert.Empty(t, refreshToken)
	assert.Nil(t, admin)
}

func TestAuthService_RefreshToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(1, "admin")
	assert.NoError(t, err)

	t.Run("active account gets a new access token", func(t *testing.T) {
		mockRepo := new(MockAdminRepository)
		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(1), "admin", nil)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Admin{
			ID: 1, Username: "admin", Role: model.RoleAdmin, IsActive: true,
		}, nil)

		service := NewAuthService(mockRepo, jwtService, mockTokenStore)
		accessToken, err := service.RefreshToken(context.Background(), refreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		mockRepo.AssertExpectations(t)
		mockTokenStore.AssertExpectations(t)
	})

	t.Run("deactivation invalidates the session", func(t *testing.T) {
		mockRepo := new(MockAdminRepository)
		mockTokenStore := new(MockTokenStore)
		mockTokenStore.On("GetRefreshToken", mock.Anything, tokenID).Return(uint(1), "admin", nil)
		mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Admin{
			ID: 1, Username: "admin", IsActive: false,
		}, nil)

		service := NewAuthService(mockRepo, jwtService, mockTokenStore)
		accessToken, err := service.RefreshToken(context.Background(), refreshToken)

		assert.Equal(t, ErrInvalidRefreshToken, err)
		assert.Empty(t, accessToken)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		service := NewAuthService(new(MockAdminRepository), jwtService, new(MockTokenStore))
		accessToken, err := service.RefreshToken(context.Background(), "not-a-token")

		assert.Equal(t, ErrInvalidRefreshToken, err)
		assert.Empty(t, accessToken)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("old-password"), 10)
	caller := &model.Admin{ID: 1, Username: "admin", PasswordHash: string(hashedPassword)}

	t.Run("stores a new hash after verifying the current password", func(t *testing.T) {
		mockRepo := new(MockAdminRepository)
		mockRepo.On("Update", mock.Anything, uint(1), mock.MatchedBy(func(fields map[string]interface{}) bool {
			hash, ok := fields["password_hash"].(string)
			return ok && bcrypt.CompareHashAndPassword([]byte(hash), []byte("new-password")) == nil
		})).Return(nil)

		service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))
		err := service.ChangePassword(context.Background(), caller, "old-password", "new-password")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects a wrong current password", func(t *testing.T) {
		mockRepo := new(MockAdminRepository)

		service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))
		err := service.ChangePassword(context.Background(), caller, "not-the-password", "new-password")

		assert.Equal(t, ErrWrongPassword, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestAuthService_UpdateAdmin(t *testing.T) {
	master := &model.Admin{ID: 1, Username: "master", Role: model.RoleMaster}
	regular := &model.Admin{ID: 2, Username: "regular", Role: model.RoleAdmin}
	other := &model.Admin{ID: 3, Username: "other", Role: model.RoleAdmin, IsActive: true}

	active := false

	t.Run("regular admin may not touch other accounts", func(t *testing.T) {
		mockRepo := new(MockAdminRepository)
		mockRepo.On("FindByID", mock.Anything, uint(3)).Return(other, nil)

		service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))
		updated, err := service.UpdateAdmin(context.Background(), regular, 3, UpdateAdminInput{IsActive: &active})

		assert.Equal(t, errors.ErrForbidden, err)
		assert.Nil(t, updated)
		mockRepo.AssertExpectations(t)
	})

	t.Run("only masters toggle the active flag", func(t *testing.T) {
		mockRepo := new(MockAdminRepository)
		mockRepo.On("FindByID", mock.Anything, uint(2)).Return(regular, nil)

		service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))
		updated, err := service.UpdateAdmin(context.Background(), regular, 2, UpdateAdminInput{IsActive: &active})

		// The self-update is allowed but the flag is silently dropped, so no
		// repository write happens.
		assert.NoError(t, err)
		assert.NotNil(t, updated)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("master deactivates another admin", func(t *testing.T) {
		mockRepo := new(MockAdminRepository)
		mockRepo.On("FindByID", mock.Anything, uint(3)).Return(other, nil)
		mockRepo.On("Update", mock.Anything, uint(3), map[string]interface{}{"is_active": false}).Return(nil)

		service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))
		updated, err := service.UpdateAdmin(context.Background(), master, 3, UpdateAdminInput{IsActive: &active})

		assert.NoError(t, err)
		assert.NotNil(t, updated)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing account reads as not found", func(t *testing.T) {
		mockRepo := new(MockAdminRepository)
		mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))
		updated, err := service.UpdateAdmin(context.Background(), master, 99, UpdateAdminInput{})

		assert.Equal(t, errors.ErrAdminNotFound, err)
		assert.Nil(t, updated)
	})
}

func TestAuthService_DeleteAdmin(t *testing.T) {
	master := &model.Admin{ID: 1, Username: "master", Role: model.RoleMaster}
	secondMaster := &model.Admin{ID: 4, Username: "master2", Role: model.RoleMaster}
	regular := &model.Admin{ID: 2, Username: "regular", Role: model.RoleAdmin}
	victim := &model.Admin{ID: 3, Username: "victim", Role: model.RoleAdmin}

	tests := []struct {
		name          string
		caller        *model.Admin
		targetID      uint
		setupMock     func(*MockAdminRepository)
		expectedError error
	}{
		{
			name:     "master deletes a regular admin",
			caller:   master,
			targetID: 3,
			setupMock: func(m *MockAdminRepository) {
				m.On("FindByID", mock.Anything, uint(3)).Return(victim, nil)
				m.On("Delete", mock.Anything, uint(3)).Return(nil)
			},
		},
		{
			name:     "regular admin may not delete",
			caller:   regular,
			targetID: 3,
			setupMock: func(m *MockAdminRepository) {
				m.On("FindByID", mock.Anything, uint(3)).Return(victim, nil)
			},
			expectedError: errors.ErrForbidden,
		},
		{
			name:     "master may not delete itself",
			caller:   master,
			targetID: 1,
			setupMock: func(m *MockAdminRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(master, nil)
			},
			expectedError: errors.ErrCannotDeleteSelf,
		},
		{
			name:     "master accounts cannot be deleted",
			caller:   master,
			targetID: 4,
			setupMock: func(m *MockAdminRepository) {
				m.On("FindByID", mock.Anything, uint(4)).Return(secondMaster, nil)
			},
			expectedError: errors.ErrCannotDeleteMaster,
		},
		{
			name:     "missing target reads as not found",
			caller:   master,
			targetID: 99,
			setupMock: func(m *MockAdminRepository) {
				m.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrAdminNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAdminRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore))
			err := service.DeleteAdmin(context.Background(), tt.caller, tt.targetID)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
