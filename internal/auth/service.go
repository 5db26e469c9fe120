package auth

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/adrianhartanto/timebill/internal"
)

// Service is the main auth service with dependencies.
type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	logger         *slog.Logger
}

func NewService(userRepo UserRepository, tokenGen TokenGenerator, logger *slog.Logger) *Service {
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		logger:         logger,
	}
}

// Authenticate validates credentials and returns a token pair.
func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	account, err := s.userRepo.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Warn("login for unknown email", "email", dto.Email)
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(dto.Password)); err != nil {
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	if !account.IsActive {
		return AuthTokens{}, internal.ErrUserInactive
	}

	return s.issueTokens(account.ID)
}

// RefreshTokens validates a refresh token and returns a fresh pair.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateRefreshToken(refreshToken)
	if err != nil || claims == nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}

	account, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}
	if !account.IsActive {
		return AuthTokens{}, internal.ErrUserInactive
	}

	return s.issueTokens(account.ID)
}

// ResolveUser validates an access token and loads the acting user.
func (s *Service) ResolveUser(accessToken string) (*User, error) {
	claims, err := s.tokenGenerator.ValidateAccessToken(accessToken)
	if err != nil || claims == nil {
		return nil, internal.ErrInvalidToken
	}

	account, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, internal.ErrInvalidToken
	}
	if !account.IsActive {
		return nil, internal.ErrUserInactive
	}

	return &User{
		ID:       account.ID,
		Email:    account.Email,
		Name:     account.Name,
		IsActive: account.IsActive,
	}, nil
}

func (s *Service) issueTokens(userID int64) (AuthTokens, error) {
	accessToken, err := s.tokenGenerator.GenerateAccessToken(userID)
	if err != nil {
		s.logger.Error("failed to generate access token", "error", err, "user_id", userID)
		return AuthTokens{}, err
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(userID)
	if err != nil {
		s.logger.Error("failed to generate refresh token", "error", err, "user_id", userID)
		return AuthTokens{}, err
	}

	return AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
