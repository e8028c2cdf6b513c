package user

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"termbase/internal/database"
	"termbase/pkg/utils"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&database.User{}, &database.PasswordResetToken{}))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, password, role string) *database.User {
	t.Helper()

	user := database.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: utils.HashPassword(password),
		Role:         role,
	}
	require.NoError(t, db.Create(&user).Error)

	return &user
}

func TestResetPasswordForcesChange(t *testing.T) {
	db := testDB(t)
	service := NewService(db)
	target := seedUser(t, db, "bob", "old-password", database.RoleUser)

	require.NoError(t, service.ResetPassword(context.Background(), target, "issued-by-admin"))

	reloaded, err := service.GetByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.ForcePasswordChange)
	assert.True(t, service.Verify(reloaded, "issued-by-admin"))
	assert.False(t, service.Verify(reloaded, "old-password"))
}

func TestResetPasswordAdminTargetExempt(t *testing.T) {
	db := testDB(t)
	service := NewService(db)
	target := seedUser(t, db, "root", "old-password", database.RoleAdmin)

	require.NoError(t, service.ResetPassword(context.Background(), target, "issued-by-admin"))

	reloaded, err := service.GetByID(context.Background(), target.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.ForcePasswordChange)
	assert.True(t, service.Verify(reloaded, "issued-by-admin"))
}

func TestResetPasswordRevokesTokens(t *testing.T) {
	db := testDB(t)
	service := NewService(db)
	target := seedUser(t, db, "bob", "old-password", database.RoleUser)

	token, err := service.CreateResetToken(context.Background(), target)
	require.NoError(t, err)

	require.NoError(t, service.ResetPassword(context.Background(), target, "issued-by-admin"))

	_, err = service.ConsumeResetToken(context.Background(), token.Token, "chosen-by-user")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestConsumeResetTokenOnce(t *testing.T) {
	db := testDB(t)
	service := NewService(db)
	target := seedUser(t, db, "bob", "old-password", database.RoleUser)

	token, err := service.CreateResetToken(context.Background(), target)
	require.NoError(t, err)

	reloaded, err := service.ConsumeResetToken(context.Background(), token.Token, "chosen-by-user")
	require.NoError(t, err)
	assert.True(t, service.Verify(reloaded, "chosen-by-user"))
	assert.False(t, reloaded.ForcePasswordChange)

	_, err = service.ConsumeResetToken(context.Background(), token.Token, "again")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}
