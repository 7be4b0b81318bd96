package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/glamconnect/internal/domain/account"
	"github.com/BruksfildServices01/glamconnect/internal/httperr"
	"github.com/BruksfildServices01/glamconnect/internal/models"
)

func TestUserGorm_VerifyTokenIsSingleUse(t *testing.T) {
	db := requireDB(t)
	repo := NewUserGormRepository(db)
	ctx := context.Background()

	token := "0123456789abcdef0123456789abcdef"
	expires := time.Date(2025, 11, 21, 9, 0, 0, 0, time.UTC)
	u := &models.User{
		Name: "Alice", Email: "a@x.com", Contact: "+15551234567", PasswordHash: "x",
		Role: models.RoleCustomer, VerifyToken: &token, VerifyExpires: &expires,
	}
	require.NoError(t, repo.Create(ctx, u))

	found, err := repo.FindByVerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	require.NoError(t, repo.MarkVerified(ctx, u.ID, token))
	assert.ErrorIs(t, repo.MarkVerified(ctx, u.ID, token), domain.ErrNotFound)

	_, err = repo.FindByVerifyToken(ctx, token)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	after, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, after.IsVerified)
	assert.Nil(t, after.VerifyToken)
	assert.Nil(t, after.VerifyExpires)
}

func TestUserGorm_ResetTokenIsSingleUse(t *testing.T) {
	db := requireDB(t)
	repo := NewUserGormRepository(db)
	ctx := context.Background()

	u := seedUser(t, db, "Alice", "a@x.com")
	token := "fedcba9876543210fedcba9876543210"
	require.NoError(t, repo.SetResetToken(ctx, u.ID, token, time.Now().Add(time.Hour)))

	assert.ErrorIs(t, repo.ResetPassword(ctx, u.ID, "wrong-token", "hash-1"), domain.ErrNotFound)
	require.NoError(t, repo.ResetPassword(ctx, u.ID, token, "hash-2"))
	assert.ErrorIs(t, repo.ResetPassword(ctx, u.ID, token, "hash-3"), domain.ErrNotFound)

	_, err := repo.FindByResetToken(ctx, token)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	after, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash-2", after.PasswordHash)
	assert.Nil(t, after.ResetExpires)
}

func TestUserGorm_DuplicateEmailIsUniqueViolation(t *testing.T) {
	db := requireDB(t)
	repo := NewUserGormRepository(db)

	seedUser(t, db, "Alice", "a@x.com")
	err := repo.Create(context.Background(), &models.User{
		Name: "Mallory", Email: "a@x.com", Contact: "1", PasswordHash: "x", Role: models.RoleCustomer,
	})

	require.Error(t, err)
	assert.True(t, httperr.IsUniqueViolation(err))
}

func TestUserGorm_MarkVerifiedByEmailAndAdminLookup(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	users := NewUserGormRepository(db)

	u := seedUser(t, db, "Alice", "a@x.com")
	require.NoError(t, db.Model(u).Update("is_verified", false).Error)
	require.NoError(t, users.MarkVerifiedByEmail(ctx, "A@X.com"))

	after, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, after.IsVerified)

	require.NoError(t, db.Create(&models.AdminUser{
		Username: "admin", Email: "admin@glam.test", PasswordHash: "x",
		Role: models.AdminRoleAdmin, IsActive: true,
	}).Error)

	admins := NewAdminGormRepository(db)
	a, err := admins.FindByEmail(ctx, "admin@glam.test")
	require.NoError(t, err)
	assert.Equal(t, "admin", a.Username)

	_, err = admins.FindByEmail(ctx, "nobody@glam.test")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
