package database

import (
	"context"
	"testing"

	"motorent/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db)
	assert.NotZero(t, user.ID)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.Equal(t, models.UserStatusActive, user.Status)

	got, err := db.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	byEmail, err := db.GetUserByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	got.Name = "Renamed"
	got.Phone = "+222"
	require.NoError(t, db.UpdateUser(ctx, got))

	got, err = db.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, "+222", got.Phone)

	require.NoError(t, db.UpdateUserRole(ctx, user.ID, models.RoleAdmin))
	require.NoError(t, db.UpdateUserStatus(ctx, user.ID, models.UserStatusInactive))

	got, err = db.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, got.Role)
	assert.Equal(t, models.UserStatusInactive, got.Status)
}

func TestDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db)

	dup := &models.User{Name: "Other", Email: user.Email, PasswordHash: "hash"}
	err := db.CreateUser(ctx, dup)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestGetUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.GetUser(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = db.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListUsers(t *testing.T) {
	db := setupTestDB(t)

	seedUser(t, db)
	seedUser(t, db)

	users, err := db.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
