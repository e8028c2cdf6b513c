// Package mock provides function-stub implementations of the auth package's
// store interfaces for tests.
package mock

import (
	"context"

	"termbase/internal/database"
)

type UserStore struct {
	GetByIdentifierFunc    func(ctx context.Context, identifier string) (*database.User, error)
	VerifyFunc             func(user *database.User, password string) bool
	RecordLoginSuccessFunc func(ctx context.Context, userID uint, ip, location string) error
	SetOfflineFunc         func(ctx context.Context, userID uint) error

	Calls map[string]int
}

func NewUserStore() *UserStore {
	return &UserStore{Calls: make(map[string]int)}
}

func (m *UserStore) GetByIdentifier(ctx context.Context, identifier string) (*database.User, error) {
	m.Calls["GetByIdentifier"]++
	if m.GetByIdentifierFunc != nil {
		return m.GetByIdentifierFunc(ctx, identifier)
	}
	return nil, nil
}

func (m *UserStore) Verify(user *database.User, password string) bool {
	m.Calls["Verify"]++
	if m.VerifyFunc != nil {
		return m.VerifyFunc(user, password)
	}
	return false
}

func (m *UserStore) RecordLoginSuccess(ctx context.Context, userID uint, ip, location string) error {
	m.Calls["RecordLoginSuccess"]++
	if m.RecordLoginSuccessFunc != nil {
		return m.RecordLoginSuccessFunc(ctx, userID, ip, location)
	}
	return nil
}

func (m *UserStore) SetOffline(ctx context.Context, userID uint) error {
	m.Calls["SetOffline"]++
	if m.SetOfflineFunc != nil {
		return m.SetOfflineFunc(ctx, userID)
	}
	return nil
}

type SessionStore struct {
	CreateFunc  func(ctx context.Context, user *database.User, ip string) (*database.Session, error)
	GetFunc     func(ctx context.Context, id string) (*database.Session, error)
	DestroyFunc func(ctx context.Context, id string) error

	Calls map[string]int
}

func NewSessionStore() *SessionStore {
	return &SessionStore{Calls: make(map[string]int)}
}

func (m *SessionStore) Create(ctx context.Context, user *database.User, ip string) (*database.Session, error) {
	m.Calls["Create"]++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user, ip)
	}
	return &database.Session{ID: "tbss-test", UserID: user.ID, Username: user.Username, Role: user.Role}, nil
}

func (m *SessionStore) Get(ctx context.Context, id string) (*database.Session, error) {
	m.Calls["Get"]++
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, nil
}

func (m *SessionStore) Destroy(ctx context.Context, id string) error {
	m.Calls["Destroy"]++
	if m.DestroyFunc != nil {
		return m.DestroyFunc(ctx, id)
	}
	return nil
}

type AuditStore struct {
	RecordLoginFunc    func(ctx context.Context, entry *database.LoginLog) error
	RecordActivityFunc func(ctx context.Context, entry *database.ActivityLog) error

	LoginEntries    []database.LoginLog
	ActivityEntries []database.ActivityLog
}

func NewAuditStore() *AuditStore {
	return &AuditStore{}
}

func (m *AuditStore) RecordLogin(ctx context.Context, entry *database.LoginLog) error {
	if m.RecordLoginFunc != nil {
		if err := m.RecordLoginFunc(ctx, entry); err != nil {
			return err
		}
	}
	m.LoginEntries = append(m.LoginEntries, *entry)
	return nil
}

func (m *AuditStore) RecordActivity(ctx context.Context, entry *database.ActivityLog) error {
	if m.RecordActivityFunc != nil {
		if err := m.RecordActivityFunc(ctx, entry); err != nil {
			return err
		}
	}
	m.ActivityEntries = append(m.ActivityEntries, *entry)
	return nil
}

type Resolver struct {
	ResolveFunc func(ctx context.Context, ip string) string
}

func (m *Resolver) Resolve(ctx context.Context, ip string) string {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, ip)
	}
	return "unresolved"
}

type Notifier struct {
	Notifications []string
}

func (m *Notifier) NotifyAbnormalLogin(username, ip, location, reason string) {
	m.Notifications = append(m.Notifications, reason)
}
