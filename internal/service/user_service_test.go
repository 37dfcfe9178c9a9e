package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindbuilders/dtmms/internal/models"
	appErrors "github.com/mindbuilders/dtmms/pkg/errors"
)

func TestUserServiceCreate(t *testing.T) {
	f := newFixture(t)
	svc := f.users()

	user, err := svc.Create(context.Background(), CreateUserRequest{
		Email:     "ngozi@mindbuilders.org",
		Password:  "secret1",
		Role:      models.RoleTrainee,
		FirstName: " Ngozi ",
		LastName:  "Eze",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(user.ID, "trainee-"))
	assert.True(t, user.IsActive)
	assert.Equal(t, "Ngozi", user.FirstName)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.True(t, f.passwords.Matches(user.PasswordHash, "secret1"))

	inactive, err := svc.Create(context.Background(), CreateUserRequest{
		Email: "paused@mindbuilders.org", Password: "secret1", Role: models.RoleMentor,
		FirstName: "Paused", LastName: "Mentor", IsActive: ptr(false),
	})
	require.NoError(t, err)
	assert.False(t, inactive.IsActive)
}

func TestUserServiceCreateRejectsDuplicateEmail(t *testing.T) {
	svc := newFixture(t).users()

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Email: "ADMIN@mindbuilders.org", Password: "secret1", Role: models.RoleAdmin,
		FirstName: "Second", LastName: "Admin",
	})
	assertErrorCode(t, err, appErrors.ErrConflict)
}

func TestUserServiceCreateValidation(t *testing.T) {
	svc := newFixture(t).users()

	cases := map[string]CreateUserRequest{
		"unknown role":   {Email: "a@b.org", Password: "secret1", Role: "owner", FirstName: "A", LastName: "B"},
		"short password": {Email: "a@b.org", Password: "123", Role: models.RoleTrainee, FirstName: "A", LastName: "B"},
		"bad email":      {Email: "nope", Password: "secret1", Role: models.RoleTrainee, FirstName: "A", LastName: "B"},
		"missing name":   {Email: "a@b.org", Password: "secret1", Role: models.RoleTrainee},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), req)
			assertErrorCode(t, err, appErrors.ErrValidation)
		})
	}
}

func TestUserServiceList(t *testing.T) {
	svc := newFixture(t).users()
	ctx := context.Background()

	all, err := svc.List(ctx, UserFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 10)

	trainees, err := svc.List(ctx, UserFilter{Role: models.RoleTrainee})
	require.NoError(t, err)
	assert.Len(t, trainees, 5)

	found, err := svc.List(ctx, UserFilter{Search: "MENSAH"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "trainee-3", found[0].ID)

	byEmail, err := svc.List(ctx, UserFilter{Search: "grace@"})
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "mentor-2", byEmail[0].ID)
}

func TestUserServiceUpdate(t *testing.T) {
	f := newFixture(t)
	svc := f.users()
	ctx := context.Background()

	_, err := svc.Update(ctx, "trainee-1", UpdateUserRequest{Email: ptr("zainab@mindbuilders.org")})
	assertErrorCode(t, err, appErrors.ErrConflict)

	updated, err := svc.Update(ctx, "trainee-1", UpdateUserRequest{
		Email:    ptr("Trainee@MindBuilders.org"),
		Phone:    ptr("+234 800 000 0000"),
		Password: ptr("newpass1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Trainee@MindBuilders.org", updated.Email)
	assert.Equal(t, "+234 800 000 0000", updated.Phone)
	assert.Equal(t, "Oluwaseun", updated.FirstName)
	assert.True(t, f.passwords.Matches(updated.PasswordHash, "newpass1"))

	_, err = svc.Update(ctx, "trainee-404", UpdateUserRequest{FirstName: ptr("x")})
	assertErrorCode(t, err, appErrors.ErrNotFound)

	_, err = svc.Update(ctx, "trainee-1", UpdateUserRequest{Role: ptr(models.Role("owner"))})
	assertErrorCode(t, err, appErrors.ErrValidation)
}

func TestUserServiceDelete(t *testing.T) {
	svc := newFixture(t).users()
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "trainee-5"))

	_, err := svc.Get(ctx, "trainee-5")
	assertErrorCode(t, err, appErrors.ErrNotFound)

	err = svc.Delete(ctx, "trainee-5")
	assertErrorCode(t, err, appErrors.ErrNotFound)
}

func TestUserServiceSurfacesCorruptData(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.medium.Set(context.Background(), "dtmms_users", []byte("{")))

	_, err := f.users().List(context.Background(), UserFilter{})
	assertErrorCode(t, err, appErrors.ErrCorruptData)
}
