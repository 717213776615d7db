package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvind/placementdesk/internal/app/models"
	"github.com/arvind/placementdesk/internal/app/models/dto"
	"github.com/arvind/placementdesk/internal/pkg/apperrors"
	"github.com/arvind/placementdesk/internal/pkg/auth"
)

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "placementdesk.test",
	})
}

func newAuthService(users *fakeUserStore) *AuthService {
	return NewAuthService(users, testJWTService(), "college.edu", zerolog.Nop())
}

func validRegisterRequest() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:       "Asha Menon",
		Email:      "asha@college.edu",
		Password:   "secret123",
		RollNumber: "21CS042",
		Department: "CSE",
		Semester:   "6",
	}
}

func TestRegisterCreatesStudent(t *testing.T) {
	users := newFakeUserStore()
	svc := newAuthService(users)

	user, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	assert.Equal(t, models.RoleStudent, user.Role)
	assert.Equal(t, "CSE", user.DepartmentOrEmpty())
	assert.NotEqual(t, "secret123", user.Password, "password must be stored hashed")
	assert.True(t, auth.CheckPassword(user.Password, "secret123"))
}

func TestRegisterRejectsForeignEmailDomain(t *testing.T) {
	svc := newAuthService(newFakeUserStore())

	req := validRegisterRequest()
	req.Email = "asha@gmail.com"

	_, err := svc.Register(context.Background(), req)
	verr, ok := apperrors.AsValidationError(err)
	require.True(t, ok)
	require.Len(t, verr.Violations, 1)
	assert.Equal(t, "email", verr.Violations[0].Field)
}

func TestRegisterReportsAllViolationsAtOnce(t *testing.T) {
	svc := newAuthService(newFakeUserStore())

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "bad-email",
		Password: "short",
	})

	verr, ok := apperrors.AsValidationError(err)
	require.True(t, ok)

	fields := make(map[string]bool)
	for _, v := range verr.Violations {
		fields[v.Field] = true
	}
	for _, field := range []string{"name", "email", "password", "rollNumber", "department", "semester"} {
		assert.True(t, fields[field], "expected violation for %s", field)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	users := newFakeUserStore()
	svc := newAuthService(users)

	_, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegisterRequest())
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestLoginSucceedsWithValidCredentials(t *testing.T) {
	users := newFakeUserStore()
	svc := newAuthService(users)

	_, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	user, token, expiresIn, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "asha@college.edu",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, int64(3600), expiresIn)
	assert.Equal(t, "asha@college.edu", user.Email)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	users := newFakeUserStore()
	svc := newAuthService(users)

	_, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	_, _, _, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "asha@college.edu",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginRejectsUnknownEmailWithSameError(t *testing.T) {
	svc := newAuthService(newFakeUserStore())

	_, _, _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@college.edu",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginRejectsDisabledCoordinator(t *testing.T) {
	users := newFakeUserStore()
	svc := newAuthService(users)

	hashed, err := auth.HashPassword("coordpass")
	require.NoError(t, err)
	dept := "ECE"
	coordinator := &models.User{
		Name:       "Ravi Kumar",
		Email:      "ravi@college.edu",
		Password:   hashed,
		Role:       models.RoleCoordinator,
		Department: &dept,
		IsEnabled:  false,
	}
	require.NoError(t, users.Create(context.Background(), coordinator))

	_, _, _, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ravi@college.edu",
		Password: "coordpass",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestMeReturnsFreshRecord(t *testing.T) {
	users := newFakeUserStore()
	svc := newAuthService(users)

	registered, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	user, err := svc.Me(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, registered.Email, user.Email)

	_, err = svc.Me(context.Background(), 9999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
