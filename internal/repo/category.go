package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/WPrzybyszewski/10-X-Cards/internal/model"
)

// CategoryRepository определяет контракт доступа к Category.
type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) (*model.Category, error)

	// GetByID возвращает категорию пользователя или gorm.ErrRecordNotFound.
	// Чужие категории неотличимы от несуществующих.
	GetByID(ctx context.Context, userID int64, id string) (*model.Category, error)

	// GetByNameFold ищет категорию пользователя по имени без учёта регистра.
	GetByNameFold(ctx context.Context, userID int64, name string) (*model.Category, error)

	// List возвращает все категории пользователя, отсортированные по имени.
	List(ctx context.Context, userID int64) ([]model.Category, error)
}

type categoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepository создаёт реализацию репозитория для Category.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, c *model.Category) (*model.Category, error) {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (r *categoryRepo) GetByID(ctx context.Context, userID int64, id string) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) GetByNameFold(ctx context.Context, userID int64, name string) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) List(ctx context.Context, userID int64) ([]model.Category, error) {
	var list []model.Category
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
