package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/WPrzybyszewski/10-X-Cards/internal/model"
)

// FlashcardRepository определяет контракт доступа к Flashcard.
type FlashcardRepository interface {
	Create(ctx context.Context, f *model.Flashcard) (*model.Flashcard, error)

	// GetByID возвращает фишку пользователя или gorm.ErrRecordNotFound.
	// Чужие фишки неотличимы от несуществующих.
	GetByID(ctx context.Context, userID int64, id string) (*model.Flashcard, error)

	// Update применяет частичное обновление полей. Возвращает число затронутых строк:
	// 0 — фишки нет или она принадлежит другому пользователю.
	Update(ctx context.Context, userID int64, id string, updates map[string]any) (int64, error)

	// List возвращает страницу фишек пользователя (новые сначала) и общее число.
	List(ctx context.Context, userID int64, offset, limit int) ([]model.Flashcard, int64, error)
}

type flashcardRepo struct {
	db *gorm.DB
}

// NewFlashcardRepository создаёт реализацию репозитория для Flashcard.
func NewFlashcardRepository(db *gorm.DB) FlashcardRepository {
	return &flashcardRepo{db: db}
}

func (r *flashcardRepo) Create(ctx context.Context, f *model.Flashcard) (*model.Flashcard, error) {
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

func (r *flashcardRepo) GetByID(ctx context.Context, userID int64, id string) (*model.Flashcard, error) {
	var f model.Flashcard
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *flashcardRepo) Update(ctx context.Context, userID int64, id string, updates map[string]any) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&model.Flashcard{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (r *flashcardRepo) List(ctx context.Context, userID int64, offset, limit int) ([]model.Flashcard, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Flashcard{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var list []model.Flashcard
	err = r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
