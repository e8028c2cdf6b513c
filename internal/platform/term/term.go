package term

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"termbase/internal/config"
	"termbase/internal/database"
)

var ErrTermNotFound = errors.New("term not found")

const searchLimit = 50

type TermService struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *TermService {
	return &TermService{db: db}
}

type SearchInput struct {
	Query    string
	Category string
	Language string
}

// Search returns terms matching the query in term, definition or notes,
// optionally narrowed by category and language, most recent first.
func (s *TermService) Search(ctx context.Context, input SearchInput) ([]database.Term, error) {
	query := s.db.WithContext(ctx).Model(&database.Term{})

	if input.Query != "" {
		pattern := "%" + input.Query + "%"
		query = query.Where("term LIKE ? OR definition LIKE ? OR notes LIKE ?", pattern, pattern, pattern)
	}
	if input.Category != "" {
		query = query.Where("category = ?", input.Category)
	}
	if input.Language != "" {
		query = query.Where("language = ?", input.Language)
	}

	var terms []database.Term
	result := query.Order("created_at DESC").Limit(searchLimit).Find(&terms)
	return terms, result.Error
}

func (s *TermService) GetByID(ctx context.Context, id uint) (*database.Term, error) {
	var entry database.Term
	result := s.db.WithContext(ctx).First(&entry, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTermNotFound
		}
		return nil, result.Error
	}
	return &entry, nil
}

type CreateInput struct {
	Term       string `json:"term" validate:"required"`
	Definition string `json:"definition" validate:"required"`
	Category   string `json:"category"`
	Language   string `json:"language"`
	Source     string `json:"source"`
	Notes      string `json:"notes"`
}

func (s *TermService) Create(ctx context.Context, input CreateInput, createdBy uint) (*database.Term, error) {
	if err := config.Validate.Struct(input); err != nil {
		return nil, err
	}

	language := input.Language
	if language == "" {
		language = "zh"
	}

	entry := database.Term{
		Term:       input.Term,
		Definition: input.Definition,
		Category:   input.Category,
		Language:   language,
		Source:     input.Source,
		Notes:      input.Notes,
		CreatedBy:  createdBy,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// CountByCreator reports how many terms a user has contributed, for the
// dashboard stats payload.
func (s *TermService) CountByCreator(ctx context.Context, userID uint) (int64, error) {
	var count int64
	result := s.db.WithContext(ctx).
		Model(&database.Term{}).
		Where("created_by = ?", userID).
		Count(&count)
	return count, result.Error
}

func (s *TermService) ListCategories(ctx context.Context) ([]database.Category, error) {
	var categories []database.Category
	result := s.db.WithContext(ctx).Order("name").Find(&categories)
	return categories, result.Error
}

func (s *TermService) CreateCategory(ctx context.Context, name, description string) (*database.Category, error) {
	category := database.Category{Name: name, Description: description}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}
