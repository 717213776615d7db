package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arvind/placementdesk/internal/app/models"
	"github.com/arvind/placementdesk/internal/app/models/dto"
	"github.com/arvind/placementdesk/internal/pkg/apperrors"
	"github.com/arvind/placementdesk/internal/pkg/auth"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// AuthService handles registration and authentication
type AuthService struct {
	userRepo    UserStore
	jwtService  *auth.JWTService
	emailDomain string // when set, student registration is restricted to this domain
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo UserStore, jwtService *auth.JWTService, emailDomain string, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		jwtService:  jwtService,
		emailDomain: emailDomain,
		logger:      logger,
	}
}

// validateRegister collects every violated field of a registration payload.
func (s *AuthService) validateRegister(req *dto.RegisterRequest) error {
	verr := apperrors.NewValidationError()

	if strings.TrimSpace(req.Name) == "" {
		verr.Add("name", "name is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		verr.Add("email", "email is required")
	} else if !emailRegex.MatchString(req.Email) {
		verr.Add("email", "email must be a valid email address")
	} else if s.emailDomain != "" && !strings.HasSuffix(req.Email, "@"+s.emailDomain) {
		verr.Add("email", "must use a college email (@"+s.emailDomain+")")
	}
	if len(req.Password) < 6 {
		verr.Add("password", "password must be at least 6 characters")
	}
	if strings.TrimSpace(req.RollNumber) == "" {
		verr.Add("rollNumber", "roll number is required")
	}
	if strings.TrimSpace(req.Department) == "" {
		verr.Add("department", "department is required")
	}
	if strings.TrimSpace(req.Semester) == "" {
		verr.Add("semester", "semester is required")
	}

	if verr.HasViolations() {
		return verr
	}
	return nil
}

// Register creates a student account. The role is always STUDENT; coordinators
// are created by admins and the admin account is seeded.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	if err := s.validateRegister(req); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:       req.Name,
		Email:      req.Email,
		Password:   hashed,
		Role:       models.RoleStudent,
		Department: &req.Department,
		RollNumber: &req.RollNumber,
		Semester:   &req.Semester,
		IsEnabled:  true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("department", req.Department).Msg("Student registered")
	return user, nil
}

// Login verifies credentials and issues a bearer token. A disabled coordinator
// is rejected here, at authentication time, even with a correct password.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, int64, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Do not reveal whether the account exists.
		return nil, "", 0, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, "", 0, apperrors.ErrInvalidCredentials
	}

	if user.Role == models.RoleCoordinator && !user.IsEnabled {
		return nil, "", 0, apperrors.ErrAccountDisabled
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, "", 0, fmt.Errorf("error generating token: %w", err)
	}

	return user, token, expiresIn, nil
}

// Me returns the fresh user record for the caller. Reading from the store
// instead of echoing token claims keeps the response correct after profile
// changes within the token's lifetime.
func (s *AuthService) Me(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
