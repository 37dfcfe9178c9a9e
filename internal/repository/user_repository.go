package repository

import (
	"context"
	"strings"

	"github.com/mindbuilders/dtmms/internal/models"
	"github.com/mindbuilders/dtmms/internal/store"
)

// UserRepository stores accounts of every role. It does not enforce email
// uniqueness.
type UserRepository struct {
	users collection[models.User]
	store *store.Store
}

// NewUserRepository constructs the repository.
func NewUserRepository(st *store.Store) *UserRepository {
	return &UserRepository{users: newCollection[models.User](st, store.KeyUsers), store: st}
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	return r.users.all(ctx)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.users.find(ctx, id)
}

// FindByEmail matches case-insensitively and returns the first match in
// stored order.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	matches, err := r.users.filter(ctx, func(u models.User) bool {
		return strings.EqualFold(u.Email, email)
	})
	if err != nil || len(matches) == 0 {
		return nil, err
	}
	return &matches[0], nil
}

func (r *UserRepository) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	return r.users.filter(ctx, func(u models.User) bool { return u.Role == role })
}

// Create assigns an id prefixed with the user's role and the creation time.
func (r *UserRepository) Create(ctx context.Context, in models.NewUser) (*models.User, error) {
	return r.users.insert(ctx, models.User{
		ID:           newID(in.Role.IDPrefix()),
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		Role:         in.Role,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Avatar:       in.Avatar,
		CreatedAt:    r.store.Now(),
		IsActive:     in.IsActive,
	})
}

func (r *UserRepository) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	return r.users.modify(ctx, id, patch.Apply)
}

// Delete removes the user only. References from other collections are left
// dangling.
func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.users.remove(ctx, id)
}
