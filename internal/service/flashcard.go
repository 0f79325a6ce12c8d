package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/WPrzybyszewski/10-X-Cards/internal/model"
	"github.com/WPrzybyszewski/10-X-Cards/internal/repo"
	"github.com/WPrzybyszewski/10-X-Cards/internal/validate"
)

// FlashcardService инкапсулирует бизнес-логику фишек: проверку владения
// категорией и частичные обновления.
type FlashcardService struct {
	cards      repo.FlashcardRepository
	categories repo.CategoryRepository
}

func NewFlashcardService(cards repo.FlashcardRepository, categories repo.CategoryRepository) *FlashcardService {
	return &FlashcardService{cards: cards, categories: categories}
}

// checkCategory убеждается, что категория существует и принадлежит пользователю.
func (s *FlashcardService) checkCategory(ctx context.Context, userID int64, categoryID string) error {
	_, err := s.categories.GetByID(ctx, userID, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("checking category: %w", err)
	}
	return nil
}

// Create создаёт ручную фишку. Указанная категория должна принадлежать
// пользователю, иначе ErrCategoryNotFound.
func (s *FlashcardService) Create(ctx context.Context, userID int64, cmd validate.CreateFlashcardCommand) (*model.Flashcard, error) {
	if cmd.CategoryID != nil {
		if err := s.checkCategory(ctx, userID, *cmd.CategoryID); err != nil {
			return nil, err
		}
	}

	f, err := s.cards.Create(ctx, &model.Flashcard{
		ID:         uuid.NewString(),
		UserID:     userID,
		Question:   cmd.Question,
		Answer:     cmd.Answer,
		CategoryID: cmd.CategoryID,
		Source:     model.SourceManual,
	})
	if err != nil {
		return nil, fmt.Errorf("creating flashcard: %w", err)
	}
	return f, nil
}

// Update применяет частичное обновление. Несуществующая и чужая фишка
// дают одинаковый ErrFlashcardNotFound.
func (s *FlashcardService) Update(ctx context.Context, userID int64, id string, cmd validate.UpdateFlashcardCommand) (*model.Flashcard, error) {
	if _, err := s.cards.GetByID(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFlashcardNotFound
		}
		return nil, fmt.Errorf("fetching flashcard: %w", err)
	}

	if cmd.CategoryID != nil {
		if err := s.checkCategory(ctx, userID, *cmd.CategoryID); err != nil {
			return nil, err
		}
	}

	updates := map[string]any{}
	if cmd.Question != nil {
		updates["question"] = *cmd.Question
	}
	if cmd.Answer != nil {
		updates["answer"] = *cmd.Answer
	}
	if cmd.CategoryID != nil {
		updates["category_id"] = *cmd.CategoryID
	}

	n, err := s.cards.Update(ctx, userID, id, updates)
	if err != nil {
		return nil, fmt.Errorf("updating flashcard: %w", err)
	}
	if n == 0 {
		return nil, ErrFlashcardNotFound
	}

	updated, err := s.cards.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("fetching updated flashcard: %w", err)
	}
	return updated, nil
}

// List возвращает страницу фишек пользователя (новые сначала) и общее число.
func (s *FlashcardService) List(ctx context.Context, userID int64, p validate.Pagination) ([]model.Flashcard, int64, error) {
	list, total, err := s.cards.List(ctx, userID, p.Offset(), p.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("listing flashcards: %w", err)
	}
	return list, total, nil
}
