package session

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"termbase/internal/database"
	"termbase/pkg/utils"
)

var ErrSessionNotFound = errors.New("session not found")
var ErrSessionExpired = errors.New("session expired")

const DefaultTTL = 24 * time.Hour

// SessionService issues and destroys server-side sessions keyed by an
// opaque identifier. Expiry is a fixed TTL from issuance; there is no
// sliding refresh.
type SessionService struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewService(db *gorm.DB, ttl time.Duration) *SessionService {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SessionService{db: db, ttl: ttl}
}

func (s *SessionService) Create(ctx context.Context, user *database.User, ip string) (*database.Session, error) {
	sess := database.Session{
		ID:        "tbss" + utils.GenerateRandomString(40),
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		IPAddress: ip,
		ExpiredAt: time.Now().Add(s.ttl),
	}
	if err := s.db.WithContext(ctx).Create(&sess).Error; err != nil {
		return nil, err
	}
	return &sess, nil
}

// Get returns the session for the given id. Expired sessions are removed on
// read and reported as expired.
func (s *SessionService) Get(ctx context.Context, id string) (*database.Session, error) {
	var sess database.Session
	result := s.db.WithContext(ctx).First(&sess, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, result.Error
	}

	if sess.Expired() {
		s.db.WithContext(ctx).Delete(&database.Session{}, "id = ?", id)
		return nil, ErrSessionExpired
	}

	return &sess, nil
}

// Destroy removes a session. Destroying a session that no longer exists is
// a no-op.
func (s *SessionService) Destroy(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&database.Session{}, "id = ?", id).Error
}
