package database

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Login log results. The distinction between user_not_found and
// password_mismatch lives only in the audit trail; callers see a uniform
// invalid-credentials failure.
const (
	LoginResultSuccess          = "success"
	LoginResultUserNotFound     = "user_not_found"
	LoginResultPasswordMismatch = "password_mismatch"
	LoginResultSystemError      = "system_error"
)

type User struct {
	ID                  uint       `json:"id" gorm:"primaryKey"`
	Username            string     `json:"username" gorm:"uniqueIndex;not null"`
	Email               string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash        string     `json:"-" gorm:"not null"`
	Role                string     `json:"role" gorm:"default:'user'"`
	CreatedAt           time.Time  `json:"created_at"`
	LastLogin           *time.Time `json:"last_login"`
	LastLoginIP         string     `json:"-"`
	LastLoginLocation   string     `json:"-"`
	LoginCount          int        `json:"login_count" gorm:"default:0"`
	IsOnline            bool       `json:"is_online" gorm:"default:false"`
	ForcePasswordChange bool       `json:"force_password_change" gorm:"default:false"`
}

func (u *User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PasswordResetToken is a one-time credential reset handle issued by an
// administrator. It replaces any notion of recoverable stored passwords.
type PasswordResetToken struct {
	Token     uuid.UUID `json:"token" gorm:"type:uuid;primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c *Category) TableName() string {
	return "categories"
}

type Term struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Term       string    `json:"term" gorm:"index;not null"`
	Definition string    `json:"definition" gorm:"not null"`
	Category   string    `json:"category" gorm:"index"`
	Language   string    `json:"language" gorm:"default:'zh'"`
	Source     string    `json:"source"`
	Notes      string    `json:"notes"`
	CreatedBy  uint      `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (t *Term) TableName() string {
	return "terms"
}

// LoginLog is an append-only record of a single login attempt. UserID is
// nil for attempts against unknown accounts; Username is kept as submitted.
type LoginLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    *uint     `json:"user_id" gorm:"index"`
	Username  string    `json:"username"`
	IPAddress string    `json:"ip_address"`
	Location  string    `json:"location"`
	UserAgent string    `json:"user_agent"`
	Result    string    `json:"result" gorm:"index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (l *LoginLog) TableName() string {
	return "login_logs"
}

// ActivityLog is an append-only record of a user action (login, logout,
// create_term, reset_password, ...).
type ActivityLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Username  string    `json:"username"`
	Action    string    `json:"action" gorm:"index;not null"`
	Details   string    `json:"details"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (l *ActivityLog) TableName() string {
	return "activity_logs"
}

// Session is server-side proof of authentication, keyed by an opaque
// identifier handed to the client. Destroyed on logout or expiry.
type Session struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
	ExpiredAt time.Time `json:"expired_at"`
}

func (s *Session) TableName() string {
	return "sessions"
}

func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiredAt)
}
