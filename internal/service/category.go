package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/WPrzybyszewski/10-X-Cards/internal/model"
	"github.com/WPrzybyszewski/10-X-Cards/internal/repo"
)

// CategoryService инкапсулирует бизнес-логику категорий.
type CategoryService struct {
	repo repo.CategoryRepository
}

func NewCategoryService(r repo.CategoryRepository) *CategoryService {
	return &CategoryService{repo: r}
}

// Create создаёт категорию. Имя уникально в рамках пользователя без учёта
// регистра: коллизия даёт ErrCategoryExists.
func (s *CategoryService) Create(ctx context.Context, userID int64, name string) (*model.Category, error) {
	existing, err := s.repo.GetByNameFold(ctx, userID, name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("checking category uniqueness: %w", err)
	}
	if existing != nil {
		return nil, ErrCategoryExists
	}

	c, err := s.repo.Create(ctx, &model.Category{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   name,
	})
	if err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}
	return c, nil
}

// List возвращает категории пользователя, отсортированные по имени.
func (s *CategoryService) List(ctx context.Context, userID int64) ([]model.Category, error) {
	list, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return list, nil
}
