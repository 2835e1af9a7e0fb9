package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"healthmon/internal/auth"
	apperrors "healthmon/internal/errors"
	"healthmon/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) BlacklistToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func newTestAuthService(repo *MockUserRepository, store *MockTokenStore) AuthService {
	jwtService := auth.NewJWTService("test-secret", 30*time.Minute)
	return NewAuthService(repo, jwtService, store, nil)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			username: "alice",
			password: "pw123456",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "username already taken",
			username: "bob",
			password: "pw123456",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "bob").Return(&model.User{Username: "bob"}, nil)
			},
			expectedError: apperrors.ErrUsernameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := newTestAuthService(mockRepo, new(MockTokenStore))
			user, err := service.Register(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	mockRepo := new(MockUserRepository)
	var created *model.User

	mockRepo.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound).Once()
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*model.User)
			created.ID = 1
		}).Return(nil)

	service := newTestAuthService(mockRepo, new(MockTokenStore))

	_, err := service.Register(context.Background(), "alice", "pw1pw1")
	require.NoError(t, err)
	require.NotNil(t, created)

	mockRepo.On("FindByUsername", mock.Anything, "alice").Return(created, nil)

	token, user, err := service.Login(context.Background(), "alice", "pw1pw1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice", user.Username)
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	existing := &model.User{ID: 7, Username: "alice", PasswordHash: string(hashed)}

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "alice",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(existing, nil)
			},
			expectedError: nil,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "wrong",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(existing, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			username: "nobody",
			password: "password123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := newTestAuthService(mockRepo, new(MockTokenStore))
			token, user, err := service.Login(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				require.NotNil(t, user)
				assert.Equal(t, tt.username, user.Username)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_ResolveUser(t *testing.T) {
	claimsFor := func(username, jti string) *auth.Claims {
		return &auth.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   username,
				ID:        jti,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
	}

	t.Run("valid token resolves to user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockStore := new(MockTokenStore)
		mockStore.On("IsTokenBlacklisted", mock.Anything, "jti-1").Return(false, nil)
		mockRepo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{ID: 1, Username: "alice"}, nil)

		service := newTestAuthService(mockRepo, mockStore)
		user, err := service.ResolveUser(context.Background(), claimsFor("alice", "jti-1"))

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		mockRepo.AssertExpectations(t)
		mockStore.AssertExpectations(t)
	})

	t.Run("blacklisted token rejected", func(t *testing.T) {
		mockStore := new(MockTokenStore)
		mockStore.On("IsTokenBlacklisted", mock.Anything, "jti-2").Return(true, nil)

		service := newTestAuthService(new(MockUserRepository), mockStore)
		user, err := service.ResolveUser(context.Background(), claimsFor("alice", "jti-2"))

		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
		assert.Nil(t, user)
	})

	t.Run("unknown subject rejected", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockStore := new(MockTokenStore)
		mockStore.On("IsTokenBlacklisted", mock.Anything, "jti-3").Return(false, nil)
		mockRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

		service := newTestAuthService(mockRepo, mockStore)
		user, err := service.ResolveUser(context.Background(), claimsFor("ghost", "jti-3"))

		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
		assert.Nil(t, user)
	})

	t.Run("empty subject rejected", func(t *testing.T) {
		mockStore := new(MockTokenStore)
		mockStore.On("IsTokenBlacklisted", mock.Anything, "jti-4").Return(false, nil)

		service := newTestAuthService(new(MockUserRepository), mockStore)
		user, err := service.ResolveUser(context.Background(), claimsFor("", "jti-4"))

		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
		assert.Nil(t, user)
	})
}

func TestAuthService_Logout(t *testing.T) {
	mockStore := new(MockTokenStore)
	mockStore.On("BlacklistToken", mock.Anything, "jti-9", mock.AnythingOfType("time.Duration")).Return(nil)

	service := newTestAuthService(new(MockUserRepository), mockStore)
	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ID:        "jti-9",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
		},
	}

	err := service.Logout(context.Background(), claims)
	require.NoError(t, err)
	mockStore.AssertExpectations(t)

	ttl := mockStore.Calls[0].Arguments.Get(2).(time.Duration)
	assert.Greater(t, ttl, 14*time.Minute)
}
