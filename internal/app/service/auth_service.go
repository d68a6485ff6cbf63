package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"skillpath/internal/common"
	"skillpath/internal/common/security"
	"skillpath/internal/domain/model"
	"skillpath/internal/domain/repository"
)

type AuthService struct {
	userRepo    repository.UserRepository
	tokens      *security.JWTManager
	revocations repository.RevocationRepository
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokens *security.JWTManager,
	revocations repository.RevocationRepository,
) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens, revocations: revocations}
}

type RegisterRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	VerifyPassword string `json:"verifyPassword"`
}

func (r RegisterRequest) validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", r.Name},
		{"email", r.Email},
		{"password", r.Password},
		{"verifyPassword", r.VerifyPassword},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("field %q is required: %w", f.name, common.ErrValidation)
		}
	}
	if r.Password != r.VerifyPassword {
		return fmt.Errorf("passwords do not match: %w", common.ErrValidation)
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisteredUser struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

type RegisterResponse struct {
	User  RegisteredUser `json:"user"`
	Token string         `json:"token"`
}

// LoggedInUser carries providerId so provider accounts can be routed
// to their dashboard; it is null for regular users.
type LoggedInUser struct {
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	ProviderID     *string `json:"providerId"`
	ProfilePicture string  `json:"profilePicture,omitempty"`
}

type LoginResponse struct {
	User  LoggedInUser `json:"user"`
	Token string       `json:"token"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	// The unique index on email is the real guard against concurrent
	// registrations; this check just gives a friendlier failure.
	_, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, fmt.Errorf("email is already in use: %w", common.ErrConflict)
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		Role:           model.RoleUser, // Registration never grants provider
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Name, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &RegisterResponse{
		User: RegisteredUser{
			Name:           user.Name,
			Email:          user.Email,
			Role:           user.Role,
			ProfilePicture: user.ProfilePicture,
		},
		Token: token,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("please provide an email and password: %w", common.ErrValidation)
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Name, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	var providerID *string
	if user.Role == model.RoleProvider {
		providerID = &user.ID
	}

	return &LoginResponse{
		User: LoggedInUser{
			Email:          user.Email,
			Role:           user.Role,
			ProviderID:     providerID,
			ProfilePicture: user.ProfilePicture,
		},
		Token: token,
	}, nil
}

// Logout denylists the presenting token's jti for its remaining
// lifetime. Other tokens held by the same user stay valid.
func (s *AuthService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if err := s.revocations.Revoke(ctx, jti, time.Until(expiresAt)); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
