package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/mentorhub/internal/app/models"
	"github.com/yigit/mentorhub/internal/app/repositories"
	"github.com/yigit/mentorhub/internal/pkg/apperrors"
	"github.com/yigit/mentorhub/internal/pkg/auth"
)

// TokenIssuer signs access tokens for authenticated users
type TokenIssuer interface {
	GenerateAccessToken(user *models.User) (*auth.AccessToken, error)
}

// TokenRevoker remembers revoked token IDs until they expire
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

// LoginResult is a successful login
type LoginResult struct {
	User  *models.User
	Token *auth.AccessToken
}

// AuthService handles authentication operations
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	Me(ctx context.Context, userID int64) (*models.User, error)
}

type authServiceImpl struct {
	userRepo repositories.IUserRepository
	tokens   TokenIssuer
	revoker  TokenRevoker
	now      clock
	logger   zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	tokens TokenIssuer,
	revoker TokenRevoker,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		tokens:   tokens,
		revoker:  revoker,
		now:      time.Now,
		logger:   logger,
	}
}

// Login verifies the credentials and issues an access token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Debug().Str("email", email).Msg("Login attempt for unknown email")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		s.logger.Debug().Int64("userID", user.ID).Msg("Login attempt with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Status != models.UserStatusActive {
		return nil, apperrors.ErrAccountDisabled
	}

	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	if err := s.userRepo.TouchLastActive(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Could not update last_active_at")
	} else {
		now := s.now().UTC()
		user.LastActiveAt = &now
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User logged in")
	return &LoginResult{User: user, Token: token}, nil
}

// Logout revokes the token until it would have expired anyway
func (s *authServiceImpl) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return apperrors.ErrTokenInvalid
	}
	ttl := expiresAt.Sub(s.now())
	if err := s.revoker.Revoke(ctx, jti, ttl); err != nil {
		return fmt.Errorf("error revoking token: %w", err)
	}
	s.logger.Info().Str("jti", jti).Dur("ttl", ttl).Msg("Token revoked")
	return nil
}

// Me returns the user behind the current token
func (s *authServiceImpl) Me(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
