package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"healthmon/internal/auth"
	apperrors "healthmon/internal/errors"
	"healthmon/internal/handler"
	"healthmon/internal/model"
	"healthmon/internal/service"
)

type stubAuthService struct {
	user *model.User
}

func (s *stubAuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	return s.user, nil
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	return "", s.user, nil
}

func (s *stubAuthService) ResolveUser(ctx context.Context, claims *auth.Claims) (*model.User, error) {
	if claims.Username() == s.user.Username {
		return s.user, nil
	}
	return nil, apperrors.ErrInvalidToken
}

func (s *stubAuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	return nil
}

type stubMetricService struct{}

func (s *stubMetricService) CreateMetric(ctx context.Context, userID uint, date time.Time, steps int, calories float64, heartRate int) (*model.HealthMetric, error) {
	return &model.HealthMetric{UserID: userID}, nil
}

func (s *stubMetricService) ListMetrics(ctx context.Context, userID uint, skip, limit int) ([]model.HealthMetric, error) {
	return []model.HealthMetric{}, nil
}

func (s *stubMetricService) DeleteMetric(ctx context.Context, userID, metricID uint) error {
	return nil
}

type stubGoalService struct{}

func (s *stubGoalService) UpsertGoal(ctx context.Context, userID uint, metricType string, targetValue int) (*model.Goal, error) {
	return &model.Goal{UserID: userID, MetricType: metricType, TargetValue: targetValue}, nil
}

func (s *stubGoalService) Progress(ctx context.Context, userID uint, now time.Time) ([]service.GoalProgress, error) {
	return []service.GoalProgress{}, nil
}

func newTestServer(jwtService *auth.JWTService) *echo.Echo {
	authSvc := &stubAuthService{user: &model.User{ID: 1, Username: "alice"}}
	e := echo.New()
	Register(
		e,
		jwtService,
		authSvc,
		handler.NewAuthHandler(authSvc),
		handler.NewMetricHandler(&stubMetricService{}),
		handler.NewGoalHandler(&stubGoalService{}),
	)
	return e
}

func TestSecuredRoutes_TokenValidation(t *testing.T) {
	jwtService := auth.NewJWTService("router-test-secret", time.Minute)
	e := newTestServer(jwtService)

	t.Run("valid token reaches handler", func(t *testing.T) {
		token, err := jwtService.GenerateToken("alice")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "alice")
	})

	t.Run("tampered token is rejected", func(t *testing.T) {
		token, err := jwtService.GenerateToken("alice")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token+"x")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with wrong secret is rejected", func(t *testing.T) {
		other := auth.NewJWTService("other-secret", time.Minute)
		token, err := other.GenerateToken("alice")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		short := auth.NewJWTService("router-test-secret", time.Millisecond)
		token, err := short.GenerateToken("alice")
		assert.NoError(t, err)

		time.Sleep(5 * time.Millisecond)

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown subject is rejected", func(t *testing.T) {
		token, err := jwtService.GenerateToken("mallory")
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("public routes skip authentication", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
