package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mindbuilders/dtmms/internal/models"
	appErrors "github.com/mindbuilders/dtmms/pkg/errors"
)

type userRepository interface {
	List(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, in models.NewUser) (*models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type passwordHasher interface {
	Hash(plain string) (string, error)
}

// UserFilter narrows user listings. Search matches first name, last name or
// email, case-insensitively.
type UserFilter struct {
	Role   models.Role
	Search string
}

// CreateUserRequest represents payload for creating users.
type CreateUserRequest struct {
	Email     string      `json:"email" validate:"required,email"`
	Password  string      `json:"password" validate:"required,min=6"`
	Role      models.Role `json:"role" validate:"required,oneof=admin trainer mentor trainee"`
	FirstName string      `json:"firstName" validate:"required"`
	LastName  string      `json:"lastName" validate:"required"`
	Phone     string      `json:"phone"`
	Avatar    string      `json:"avatar"`
	IsActive  *bool       `json:"isActive"`
}

// UpdateUserRequest carries only the fields to change.
type UpdateUserRequest struct {
	Email     *string      `json:"email" validate:"omitempty,email"`
	Password  *string      `json:"password" validate:"omitempty,min=6"`
	Role      *models.Role `json:"role" validate:"omitempty,oneof=admin trainer mentor trainee"`
	FirstName *string      `json:"firstName" validate:"omitempty,min=1"`
	LastName  *string      `json:"lastName" validate:"omitempty,min=1"`
	Phone     *string      `json:"phone"`
	Avatar    *string      `json:"avatar"`
	IsActive  *bool        `json:"isActive"`
}

// UserService handles user management workflows. Email uniqueness lives
// here; the repository accepts duplicates.
type UserService struct {
	repo      userRepository
	hasher    passwordHasher
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService creates an instance of UserService.
func NewUserService(repo userRepository, hasher passwordHasher, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{repo: repo, hasher: hasher, validator: validate, logger: logger}
}

// List returns users matching the filter in stored order.
func (s *UserService) List(ctx context.Context, filter UserFilter) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, storageError(err, "failed to list users")
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	result := make([]models.User, 0, len(users))
	for _, u := range users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(u.FirstName), search) &&
			!strings.Contains(strings.ToLower(u.LastName), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}
		result = append(result, u)
	}
	return result, nil
}

// Get returns a single user by id.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "failed to load user")
	}
	if user == nil {
		return nil, notFound("user not found")
	}
	return user, nil
}

// Create validates the payload, rejects a taken email and stores the user
// with a hashed password. New users are active unless stated otherwise.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid user payload")
	}

	email := strings.TrimSpace(req.Email)
	if err := s.ensureEmailAvailable(ctx, email, ""); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	user, err := s.repo.Create(ctx, models.NewUser{
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        req.Phone,
		Avatar:       req.Avatar,
		IsActive:     active,
	})
	if err != nil {
		return nil, storageError(err, "failed to create user")
	}

	s.logger.Info("user created", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// Update applies the provided fields. Changing the email re-checks
// uniqueness; a new password is re-hashed.
func (s *UserService) Update(ctx context.Context, id string, req UpdateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid user payload")
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := models.UserPatch{
		Role:      req.Role,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Avatar:    req.Avatar,
		IsActive:  req.IsActive,
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if !strings.EqualFold(email, existing.Email) {
			if err := s.ensureEmailAvailable(ctx, email, id); err != nil {
				return nil, err
			}
		}
		patch.Email = &email
	}

	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
		}
		patch.PasswordHash = &hash
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, storageError(err, "failed to update user")
	}
	if updated == nil {
		return nil, notFound("user not found")
	}
	return updated, nil
}

// Delete removes the user. Records referring to it are kept.
func (s *UserService) Delete(ctx context.Context, id string) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return storageError(err, "failed to delete user")
	}
	if !removed {
		return notFound("user not found")
	}
	s.logger.Info("user deleted", zap.String("user_id", id))
	return nil
}

func (s *UserService) ensureEmailAvailable(ctx context.Context, email, selfID string) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return storageError(err, "failed to check email")
	}
	if existing != nil && existing.ID != selfID {
		return appErrors.Clone(appErrors.ErrConflict, "email already registered")
	}
	return nil
}
