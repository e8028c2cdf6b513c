package user

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"termbase/internal/config"
	"termbase/internal/database"
	"termbase/pkg/utils"
)

var ErrUserNotFound = errors.New("user not found")
var ErrResetTokenInvalid = errors.New("invalid reset token")

type UserService struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetByIdentifier looks a user up by username or email.
func (s *UserService) GetByIdentifier(ctx context.Context, identifier string) (*database.User, error) {
	var user database.User
	result := s.db.WithContext(ctx).
		First(&user, "username = ? OR email = ?", identifier, strings.ToLower(identifier))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

func (s *UserService) GetByID(ctx context.Context, userID uint) (*database.User, error) {
	var user database.User
	result := s.db.WithContext(ctx).First(&user, "id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

type CreateInput struct {
	Username string `validate:"required,min=3,max=64"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Role     string `validate:"omitempty,oneof=admin user"`
}

func (s *UserService) Create(ctx context.Context, input CreateInput) (*database.User, error) {
	if err := config.Validate.Struct(input); err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = database.RoleUser
	}

	user := database.User{
		Username:     input.Username,
		Email:        strings.ToLower(input.Email),
		PasswordHash: utils.HashPassword(input.Password),
		Role:         role,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Verify checks a supplied password against the stored hash. All accounts
// verify against an irreversible argon2id hash regardless of role.
func (s *UserService) Verify(user *database.User, password string) bool {
	return utils.VerifyPassword(password, user.PasswordHash)
}

// ResetPassword rehashes the target's credential. Non-admin targets are
// forced to pick a new password on their next login; outstanding reset
// tokens are revoked.
func (s *UserService) ResetPassword(ctx context.Context, target *database.User, newPassword string) error {
	hash := utils.HashPassword(newPassword)
	forceChange := !target.IsAdmin()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Exec("UPDATE users SET password_hash = ?, force_password_change = ? WHERE id = ?",
			hash, forceChange, target.ID)
		if result.Error != nil {
			return result.Error
		}
		return tx.Delete(&database.PasswordResetToken{}, "user_id = ?", target.ID).Error
	})
}

// ChangePassword sets a new credential chosen by the account owner and
// clears the force-password-change flag.
func (s *UserService) ChangePassword(ctx context.Context, user *database.User, newPassword string) error {
	hash := utils.HashPassword(newPassword)

	return s.db.WithContext(ctx).
		Exec("UPDATE users SET password_hash = ?, force_password_change = false WHERE id = ?", hash, user.ID).
		Error
}

// CreateResetToken issues a one-time token allowing the target to set a new
// password without an administrator ever seeing a credential.
func (s *UserService) CreateResetToken(ctx context.Context, target *database.User) (*database.PasswordResetToken, error) {
	token := database.PasswordResetToken{
		Token:  uuid.New(),
		UserID: target.ID,
	}
	if err := s.db.WithContext(ctx).Create(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// ConsumeResetToken validates a one-time token, sets the new credential and
// revokes the token.
func (s *UserService) ConsumeResetToken(ctx context.Context, token uuid.UUID, newPassword string) (*database.User, error) {
	var resetToken database.PasswordResetToken
	result := s.db.WithContext(ctx).First(&resetToken, "token = ?", token)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrResetTokenInvalid
		}
		return nil, result.Error
	}

	user, err := s.GetByID(ctx, resetToken.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.ChangePassword(ctx, user, newPassword); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(&database.PasswordResetToken{}, "user_id = ?", user.ID).Error; err != nil {
		return nil, err
	}

	// Re-read so the caller sees the rotated hash and cleared flag.
	return s.GetByID(ctx, user.ID)
}

// RecordLoginSuccess updates the login telemetry in a single atomic write.
// The increment happens at the storage layer to avoid lost updates under
// concurrent logins by the same user.
func (s *UserService) RecordLoginSuccess(ctx context.Context, userID uint, ip, location string) error {
	return s.db.WithContext(ctx).
		Exec(`UPDATE users
			SET login_count = login_count + 1,
			    last_login = CURRENT_TIMESTAMP,
			    last_login_ip = ?,
			    last_login_location = ?,
			    is_online = true
			WHERE id = ?`, ip, location, userID).
		Error
}

func (s *UserService) SetOffline(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).
		Exec("UPDATE users SET is_online = false WHERE id = ?", userID).
		Error
}

func (s *UserService) List(ctx context.Context) ([]database.User, error) {
	var users []database.User
	result := s.db.WithContext(ctx).Order("id").Find(&users)
	return users, result.Error
}
