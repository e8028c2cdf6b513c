// Package audit owns the append-only login and activity logs. No update or
// delete operations exist; log integrity depends on that.
package audit

import (
	"context"

	"gorm.io/gorm"

	"termbase/internal/database"
)

const DefaultPageSize = 50

type AuditService struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

func (s *AuditService) RecordLogin(ctx context.Context, entry *database.LoginLog) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *AuditService) RecordActivity(ctx context.Context, entry *database.ActivityLog) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *AuditService) ListLogins(ctx context.Context, page, pageSize int) ([]database.LoginLog, error) {
	limit, offset := pageWindow(page, pageSize)

	var entries []database.LoginLog
	result := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries)
	return entries, result.Error
}

func (s *AuditService) ListActivities(ctx context.Context, page, pageSize int) ([]database.ActivityLog, error) {
	limit, offset := pageWindow(page, pageSize)

	var entries []database.ActivityLog
	result := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries)
	return entries, result.Error
}

// pageWindow normalizes 1-based page numbers into a limit/offset pair.
// Pages beyond the data yield an empty result, not an error.
func pageWindow(page, pageSize int) (limit, offset int) {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	return pageSize, (page - 1) * pageSize
}
