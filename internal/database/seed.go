package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"termbase/pkg/utils"
)

var defaultCategories = []Category{
	{Name: "Technology", Description: "Technical and engineering terminology"},
	{Name: "Business", Description: "Business and management terminology"},
	{Name: "Medicine", Description: "Medical and health terminology"},
	{Name: "Law", Description: "Legal and regulatory terminology"},
	{Name: "Education", Description: "Educational and academic terminology"},
	{Name: "Other", Description: "Uncategorized terminology"},
}

var sampleTerms = []Term{
	{
		Term:       "API",
		Definition: "Application Programming Interface: a set of definitions and protocols for building and integrating application software.",
		Category:   "Technology",
		Language:   "en",
		Source:     "Computer science",
	},
	{
		Term:       "Database",
		Definition: "A system for storing and managing data, allowing users to store, retrieve and manage information.",
		Category:   "Technology",
		Language:   "en",
		Source:     "Database theory",
	},
	{
		Term:       "ROI",
		Definition: "Return on Investment: a measure of the efficiency of an investment.",
		Category:   "Business",
		Language:   "en",
		Source:     "Financial management",
	},
}

// Seed inserts the default categories and sample terms, skipping rows that
// already exist. createdBy attributes the sample terms to the bootstrap admin.
func Seed(db *gorm.DB, createdBy uint) error {
	for _, category := range defaultCategories {
		result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&category)
		if result.Error != nil {
			return fmt.Errorf("failed to seed category %q: %w", category.Name, result.Error)
		}
	}

	for _, term := range sampleTerms {
		term.CreatedBy = createdBy

		var existing Term
		err := db.First(&existing, "term = ?", term.Term).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to seed term %q: %w", term.Term, err)
		}
		if err := db.Create(&term).Error; err != nil {
			return fmt.Errorf("failed to seed term %q: %w", term.Term, err)
		}
	}

	return nil
}

// EnsureAdmin returns the existing admin account, or creates one with the
// supplied credentials when no admin exists yet.
func EnsureAdmin(db *gorm.DB, username, email, password string) (*User, bool, error) {
	var admin User
	err := db.First(&admin, "role = ?", RoleAdmin).Error
	if err == nil {
		return &admin, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	admin = User{
		Username:     username,
		Email:        email,
		PasswordHash: utils.HashPassword(password),
		Role:         RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return nil, false, err
	}

	return &admin, true, nil
}
