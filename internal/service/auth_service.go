package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/mindbuilders/dtmms/internal/models"
	appErrors "github.com/mindbuilders/dtmms/pkg/errors"
)

type authUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// sessionSlot holds the single signed-in user.
type sessionSlot interface {
	CurrentUser(ctx context.Context) (*models.User, error)
	SetCurrentUser(ctx context.Context, user *models.User) error
}

type passwordMatcher interface {
	Matches(hash, plain string) bool
}

// AuthConfig defines configuration for access tokens.
type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	Issuer            string
}

// AuthService provides authentication use cases.
type AuthService struct {
	repo      authUserRepository
	session   sessionSlot
	passwords passwordMatcher
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authUserRepository, session sessionSlot, passwords passwordMatcher, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{
		repo:      repo,
		session:   session,
		passwords: passwords,
		validator: validate,
		logger:    logger,
		config:    config,
		now:       time.Now,
	}
}

// Login checks the credentials and, on success, makes the user the current
// session user. Unknown email, wrong password and inactive account all fail
// the same way and leave the session untouched.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid login payload")
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, storageError(err, "failed to fetch user")
	}
	if user == nil || !user.IsActive || !s.passwords.Matches(user.PasswordHash, req.Password) {
		s.logger.Info("login rejected", zap.String("email", req.Email))
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
	}

	token, expiresAt, err := s.generateAccessToken(user)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	if err := s.session.SetCurrentUser(ctx, user); err != nil {
		return nil, storageError(err, "failed to store session")
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return &models.LoginResult{User: *user, AccessToken: token, ExpiresAt: expiresAt}, nil
}

// Logout clears the session pointer whether or not anyone is signed in.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.session.SetCurrentUser(ctx, nil); err != nil {
		return storageError(err, "failed to clear session")
	}
	return nil
}

// CurrentUser returns the session user or nil.
func (s *AuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	user, err := s.session.CurrentUser(ctx)
	if err != nil {
		return nil, storageError(err, "failed to read session")
	}
	return user, nil
}

// SetCurrentUser replaces the session user; nil signs out.
func (s *AuthService) SetCurrentUser(ctx context.Context, user *models.User) error {
	if err := s.session.SetCurrentUser(ctx, user); err != nil {
		return storageError(err, "failed to store session")
	}
	return nil
}

// Me resolves the token subject to the stored user, so role or activity
// changes made after the token was issued are seen.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, storageError(err, "failed to load user")
	}
	if user == nil || !user.IsActive {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "user no longer has access")
	}
	return user, nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || !claims.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, time.Time, error) {
	now := s.now().UTC()
	expiresAt := now.Add(s.config.AccessTokenExpiry)
	claims := models.JWTClaims{
		UserID:   user.ID,
		Role:     user.Role,
		Email:    user.Email,
		FullName: user.FullName(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    s.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.AccessTokenSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
