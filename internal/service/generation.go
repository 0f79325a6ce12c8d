package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/WPrzybyszewski/10-X-Cards/internal/model"
	"github.com/WPrzybyszewski/10-X-Cards/internal/repo"
	"github.com/WPrzybyszewski/10-X-Cards/internal/validate"
)

// GenerationQueue — контракт постановки задачи в движок генерации.
// Fire-and-forget: true означает только «задача принята в очередь»,
// политика ретраев — забота самого движка.
type GenerationQueue interface {
	Enqueue(id string) bool
}

// GenerationService инкапсулирует жизненный цикл задач генерации:
// submit → enqueue → наблюдение → accept/cancel.
type GenerationService struct {
	gens       repo.GenerationRepository
	categories repo.CategoryRepository
	queue      GenerationQueue
	model      string // модель по умолчанию
	logger     *zap.SugaredLogger
}

func NewGenerationService(
	gens repo.GenerationRepository,
	categories repo.CategoryRepository,
	queue GenerationQueue,
	defaultModel string,
	logger *zap.SugaredLogger,
) *GenerationService {
	return &GenerationService{
		gens:       gens,
		categories: categories,
		queue:      queue,
		model:      defaultModel,
		logger:     logger,
	}
}

// Submit создаёт задачу генерации и отдаёт её движку. Если очередь движка
// заполнена, задача остаётся в pending и будет жить до ручной отмены.
func (s *GenerationService) Submit(ctx context.Context, userID int64, cmd validate.SubmitGenerationCommand) (*model.Generation, error) {
	if cmd.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, userID, *cmd.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, fmt.Errorf("checking category: %w", err)
		}
	}

	modelUsed := s.model
	if cmd.Model != nil {
		modelUsed = *cmd.Model
	}

	g, err := s.gens.Create(ctx, &model.Generation{
		ID:         uuid.NewString(),
		UserID:     userID,
		Status:     model.StatusProcessing,
		SourceText: cmd.SourceText,
		ModelUsed:  modelUsed,
		CategoryID: cmd.CategoryID,
	})
	if err != nil {
		return nil, fmt.Errorf("creating generation: %w", err)
	}

	if !s.queue.Enqueue(g.ID) {
		// очередь заполнена — оставляем задачу ждать в pending
		if _, derr := s.gens.TransitionIf(ctx, g.ID,
			[]string{model.StatusProcessing}, model.StatusPending, 0); derr != nil {
			s.logger.Errorw("failed to park generation as pending", "generation_id", g.ID, "error", derr)
		}
		g.Status = model.StatusPending
		s.logger.Warnw("generation queue full, task parked", "generation_id", g.ID)
	}

	return g, nil
}

// List возвращает страницу задач пользователя (новые сначала) и общее число.
func (s *GenerationService) List(ctx context.Context, userID int64, p validate.Pagination) ([]model.Generation, int64, error) {
	list, total, err := s.gens.List(ctx, userID, p.Offset(), p.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("listing generations: %w", err)
	}
	return list, total, nil
}

// Get возвращает задачу пользователя. Чужая и несуществующая задача
// неразличимы: обе дают ErrGenerationNotFound.
func (s *GenerationService) Get(ctx context.Context, userID int64, id string) (*model.Generation, error) {
	g, err := s.gens.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGenerationNotFound
		}
		return nil, fmt.Errorf("fetching generation: %w", err)
	}
	return g, nil
}

// Accept превращает выбранные предложения задачи в фишки.
// Всё или ничего: фишки создаются и задача становится completed в одной
// транзакции; проигравший гонку акцепт получает ErrAlreadyProcessed.
func (s *GenerationService) Accept(ctx context.Context, userID int64, id string, cmd *validate.AcceptGeneratedCardsCommand) ([]model.Flashcard, error) {
	g, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !g.Acceptable() {
		return nil, ErrAlreadyProcessed
	}

	// выбранное подмножество, иначе всё предложенное движком
	set := g.Suggestions
	if cmd != nil && cmd.Flashcards != nil {
		set = make([]model.Suggestion, 0, len(*cmd.Flashcards))
		for _, p := range *cmd.Flashcards {
			set = append(set, model.Suggestion{Question: p.Question, Answer: p.Answer})
		}
	}
	if len(set) == 0 {
		return nil, ErrNoSuggestions
	}

	genID := g.ID
	cards := make([]model.Flashcard, 0, len(set))
	for _, sg := range set {
		cards = append(cards, model.Flashcard{
			ID:           uuid.NewString(),
			UserID:       userID,
			Question:     sg.Question,
			Answer:       sg.Answer,
			CategoryID:   g.CategoryID,
			GenerationID: &genID,
			Source:       model.SourceAI,
		})
	}

	applied, err := s.gens.AcceptTx(ctx, userID, id, cards)
	if err != nil {
		return nil, fmt.Errorf("accepting generation: %w", err)
	}
	if !applied {
		return nil, ErrAlreadyProcessed
	}

	s.logger.Infow("generation accepted",
		"generation_id", id, "user_id", userID, "cards", len(cards))
	return cards, nil
}

// Cancel переводит задачу в cancelled, пока она не терминальна.
func (s *GenerationService) Cancel(ctx context.Context, userID int64, id string) (*model.Generation, error) {
	g, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	applied, err := s.gens.TransitionIf(ctx, id,
		[]string{model.StatusPending, model.StatusProcessing}, model.StatusCancelled, g.Progress)
	if err != nil {
		return nil, fmt.Errorf("cancelling generation: %w", err)
	}
	if !applied {
		return nil, ErrAlreadyProcessed
	}

	g.Status = model.StatusCancelled
	return g, nil
}
