// Package auth orchestrates the login flow: credential lookup and
// verification, geolocation, abnormal-login detection, alerting, session
// issuance and audit logging.
package auth

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"termbase/internal/database"
	"termbase/internal/logging"
	"termbase/internal/platform/anomaly"
	"termbase/internal/platform/session"
	"termbase/internal/platform/user"
	"termbase/pkg/utils"
)

type UserStore interface {
	GetByIdentifier(ctx context.Context, identifier string) (*database.User, error)
	Verify(user *database.User, password string) bool
	RecordLoginSuccess(ctx context.Context, userID uint, ip, location string) error
	SetOffline(ctx context.Context, userID uint) error
}

type SessionStore interface {
	Create(ctx context.Context, user *database.User, ip string) (*database.Session, error)
	Get(ctx context.Context, id string) (*database.Session, error)
	Destroy(ctx context.Context, id string) error
}

type AuditStore interface {
	RecordLogin(ctx context.Context, entry *database.LoginLog) error
	RecordActivity(ctx context.Context, entry *database.ActivityLog) error
}

type Resolver interface {
	Resolve(ctx context.Context, ip string) string
}

type Notifier interface {
	NotifyAbnormalLogin(username, ip, location, reason string)
}

type Service struct {
	users    UserStore
	sessions SessionStore
	audit    AuditStore
	resolver Resolver
	notifier Notifier
	log      zerolog.Logger
}

func NewService(users UserStore, sessions SessionStore, audit AuditStore, resolver Resolver, notifier Notifier) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		audit:    audit,
		resolver: resolver,
		notifier: notifier,
		log:      logging.NewLogger("auth"),
	}
}

type LoginResult struct {
	Session             *database.Session
	User                *database.User
	ForcePasswordChange bool
}

// dummyHash is compared against when the account does not exist, so the
// unknown-user and wrong-password paths cost the same.
var dummyHash = utils.HashPassword(utils.GenerateRandomString(24))

// Login authenticates a user. Exactly one login log entry is written per
// attempt; a session is issued only on success. Abnormal logins alert the
// operator but never block authentication.
func (s *Service) Login(ctx context.Context, identifier, password, ip, userAgent string) (*LoginResult, error) {
	account, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			utils.VerifyPassword(password, dummyHash)
			if logErr := s.recordAttempt(ctx, nil, identifier, ip, "", userAgent, database.LoginResultUserNotFound); logErr != nil {
				return nil, ErrStorage
			}
			return nil, ErrInvalidCredentials
		}

		s.log.Error().Err(err).Msg("user lookup failed")
		s.recordAttempt(ctx, nil, identifier, ip, "", userAgent, database.LoginResultSystemError)
		return nil, ErrStorage
	}

	if !s.users.Verify(account, password) {
		if logErr := s.recordAttempt(ctx, &account.ID, identifier, ip, "", userAgent, database.LoginResultPasswordMismatch); logErr != nil {
			return nil, ErrStorage
		}
		return nil, ErrInvalidCredentials
	}

	location := s.resolver.Resolve(ctx, ip)

	assessment := anomaly.Classify(account.LastLoginIP, account.LastLoginLocation, ip, location)
	if assessment.Abnormal {
		s.log.Warn().
			Str("username", account.Username).
			Str("ip", ip).
			Str("location", location).
			Str("reason", assessment.Reason).
			Msg("abnormal login detected")

		if !account.IsAdmin() {
			s.notifier.NotifyAbnormalLogin(account.Username, ip, location, assessment.Reason)
		}
	}

	if err := s.users.RecordLoginSuccess(ctx, account.ID, ip, location); err != nil {
		s.log.Error().Err(err).Msg("failed to record login telemetry")
		s.recordAttempt(ctx, &account.ID, identifier, ip, location, userAgent, database.LoginResultSystemError)
		return nil, ErrStorage
	}

	sess, err := s.sessions.Create(ctx, account, ip)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create session")
		s.recordAttempt(ctx, &account.ID, identifier, ip, location, userAgent, database.LoginResultSystemError)
		return nil, ErrStorage
	}

	if err := s.recordAttempt(ctx, &account.ID, identifier, ip, location, userAgent, database.LoginResultSuccess); err != nil {
		s.sessions.Destroy(ctx, sess.ID)
		return nil, ErrStorage
	}

	s.recordActivity(ctx, &database.ActivityLog{
		UserID:    account.ID,
		Username:  account.Username,
		Action:    "login",
		IPAddress: ip,
	})

	return &LoginResult{
		Session:             sess,
		User:                account,
		ForcePasswordChange: account.ForcePasswordChange,
	}, nil
}

// Logout destroys the session and records a logout activity. Logging out an
// already destroyed or expired session is a no-op.
func (s *Service) Logout(ctx context.Context, sessionID, ip string) error {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) || errors.Is(err, session.ErrSessionExpired) {
			return nil
		}
		return err
	}

	if err := s.sessions.Destroy(ctx, sessionID); err != nil {
		return err
	}
	if err := s.users.SetOffline(ctx, sess.UserID); err != nil {
		s.log.Error().Err(err).Uint("user_id", sess.UserID).Msg("failed to mark user offline")
	}

	s.recordActivity(ctx, &database.ActivityLog{
		UserID:    sess.UserID,
		Username:  sess.Username,
		Action:    "logout",
		IPAddress: ip,
	})

	return nil
}

// recordActivity writes an activity entry. Activity is advisory next to the
// login log, so a failed write is logged rather than escalated.
func (s *Service) recordActivity(ctx context.Context, entry *database.ActivityLog) {
	if err := s.audit.RecordActivity(ctx, entry); err != nil {
		s.log.Error().Err(err).Str("action", entry.Action).Msg("failed to write activity log")
	}
}

func (s *Service) recordAttempt(ctx context.Context, userID *uint, username, ip, location, userAgent, result string) error {
	err := s.audit.RecordLogin(ctx, &database.LoginLog{
		UserID:    userID,
		Username:  username,
		IPAddress: ip,
		Location:  location,
		UserAgent: userAgent,
		Result:    result,
	})
	if err != nil {
		s.log.Error().Err(err).Str("result", result).Msg("failed to write login log")
	}
	return err
}
