package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/WPrzybyszewski/10-X-Cards/internal/model"
	"github.com/WPrzybyszewski/10-X-Cards/internal/validate"
)

func newGenService(gens *mockGenerationRepo, cats *mockCategoryRepo, q GenerationQueue) *GenerationService {
	return NewGenerationService(gens, cats, q, "default-model", zap.NewNop().Sugar())
}

func TestGenerationService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("enqueues with default model", func(t *testing.T) {
		gens := new(mockGenerationRepo)
		cats := new(mockCategoryRepo)
		queue := &mockQueue{}
		svc := newGenService(gens, cats, queue)

		gens.On("Create", mock.Anything, mock.MatchedBy(func(g *model.Generation) bool {
			return g.UserID == 7 && g.Status == model.StatusProcessing && g.ModelUsed == "default-model" && g.ID != ""
		})).Return(&model.Generation{ID: "g-1", UserID: 7, Status: model.StatusProcessing, ModelUsed: "default-model"}, nil).Once()

		g, err := svc.Submit(ctx, 7, validate.SubmitGenerationCommand{SourceText: "text"})
		assert.NoError(t, err)
		assert.Equal(t, model.StatusProcessing, g.Status)
		assert.Equal(t, []string{"g-1"}, queue.ids)
		gens.AssertExpectations(t)
	})

	t.Run("queue full parks task as pending", func(t *testing.T) {
		gens := new(mockGenerationRepo)
		cats := new(mockCategoryRepo)
		svc := newGenService(gens, cats, &mockQueue{full: true})

		gens.On("Create", mock.Anything, mock.Anything).
			Return(&model.Generation{ID: "g-2", Status: model.StatusProcessing}, nil).Once()
		gens.On("TransitionIf", mock.Anything, "g-2",
			[]string{model.StatusProcessing}, model.StatusPending, 0).Return(true, nil).Once()

		g, err := svc.Submit(ctx, 7, validate.SubmitGenerationCommand{SourceText: "text"})
		assert.NoError(t, err)
		assert.Equal(t, model.StatusPending, g.Status)
		gens.AssertExpectations(t)
	})

	t.Run("foreign category rejected before insert", func(t *testing.T) {
		gens := new(mockGenerationRepo)
		cats := new(mockCategoryRepo)
		svc := newGenService(gens, cats, &mockQueue{})

		id := "11111111-1111-1111-1111-111111111111"
		cats.On("GetByID", mock.Anything, int64(7), id).Return((*model.Category)(nil), gorm.ErrRecordNotFound).Once()

		g, err := svc.Submit(ctx, 7, validate.SubmitGenerationCommand{SourceText: "text", CategoryID: &id})
		assert.Nil(t, g)
		assert.ErrorIs(t, err, ErrCategoryNotFound)
		gens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestGenerationService_Accept(t *testing.T) {
	ctx := context.Background()

	suggestions := []model.Suggestion{
		{Question: "Q1", Answer: "A1"},
		{Question: "Q2", Answer: "A2"},
	}

	t.Run("accept all suggestions", func(t *testing.T) {
		gens := new(mockGenerationRepo)
		svc := newGenService(gens, new(mockCategoryRepo), &mockQueue{})

		catID := "22222222-2222-2222-2222-222222222222"
		task := &model.Generation{ID: "g-1", UserID: 7, Status: model.StatusProcessing, CategoryID: &catID, Suggestions: suggestions}
		gens.On("GetByID", mock.Anything, int64(7), "g-1").Return(task, nil).Once()
		gens.On("AcceptTx", mock.Anything, int64(7), "g-1", mock.MatchedBy(func(cards []model.Flashcard) bool {
			if len(cards) != 2 {
				return false
			}
			for _, c := range cards {
				if c.Source != model.SourceAI || c.GenerationID == nil || *c.GenerationID != "g-1" {
					return false
				}
				if c.CategoryID == nil || *c.CategoryID != catID {
					return false
				}
			}
			return true
		})).Return(true, nil).Once()

		cards, err := svc.Accept(ctx, 7, "g-1", nil)
		assert.NoError(t, err)
		assert.Len(t, cards, 2)
		gens.AssertExpectations(t)
	})

	t.Run("explicit subset overrides stored suggestions", func(t *testing.T) {
		gens := new(mockGenerationRepo)
		svc := newGenService(gens, new(mockCategoryRepo), &mockQueue{})

		task := &model.Generation{ID: "g-1", UserID: 7, Status: model.StatusProcessing, Suggestions: suggestions}
		gens.On("GetByID", mock.Anything, int64(7), "g-1").Return(task, nil).Once()
		gens.On("AcceptTx", mock.Anything, int64(7), "g-1", mock.MatchedBy(func(cards []model.Flashcard) bool {
			return len(cards) == 1 && cards[0].Question == "Q2"
		})).Return(true, nil).Once()

		sel := []validate.SuggestionPayload{{Question: "Q2", Answer: "A2"}}
		cards, err := svc.Accept(ctx, 7, "g-1", &validate.AcceptGeneratedCardsCommand{Flashcards: &sel})
		assert.NoError(t, err)
		assert.Len(t, cards, 1)
		gens.AssertExpectations(t)
	})

	t.Run("terminal task conflicts", func(t *testing.T) {
		gens := new(mockGenerationRepo)
		svc := newGenService(gens, new(mockCategoryRepo), &mockQueue{})

		task := &model.Generation{ID: "g-1", UserID: 7, Status: model.StatusCompleted, Suggestions: suggestions}
		gens.On("GetByID", mock.Anything, int64(7), "g-1").Return(task, nil).Once()

		cards, err := svc.Accept(ctx, 7, "g-1", nil)
		assert.Nil(t, cards)
		assert.ErrorIs(t, err, ErrAlreadyProcessed)
		gens.AssertNotCalled(t, "AcceptTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lost CAS race reports conflict", func(t *testing.T) {
		gens := new(mockGenerationRepo)
		svc := newGenService(gens, new(mockCategoryRepo), &mockQueue{})

		task := &model.Generation{ID: "g-1", UserID: 7, Status: model.StatusProcessing, Suggestions: suggestions}
		gens.On("GetByID", mock.Anything, int64(7), "g-1").Return(task, nil).Once()
		gens.On("AcceptTx", mock.Anything, int64(7), "g-1", mock.Anything).Return(false, nil).Once()

		cards, err := svc.Accept(ctx, 7, "g-1", nil)
		assert.Nil(t, cards)
		assert.ErrorIs(t, err, ErrAlreadyProcessed)
	})

	t.Run("empty selection rejected", func(t *testing.T) {
		gens := new(mockGenerationRepo)
		svc := newGenService(gens, new(mockCategoryRepo), &mockQueue{})

		task := &model.Generation{ID: "g-1", UserID: 7, Status: model.StatusProcessing, Suggestions: suggestions}
		gens.On("GetByID", mock.Anything, int64(7), "g-1").Return(task, nil).Once()

		sel := []validate.SuggestionPayload{}
		cards, err := svc.Accept(ctx, 7, "g-1", &validate.AcceptGeneratedCardsCommand{Flashcards: &sel})
		assert.Nil(t, cards)
		assert.ErrorIs(t, err, ErrNoSuggestions)
		gens.AssertNotCalled(t, "AcceptTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no suggestions at all rejected", func(t *testing.T) {
		gens := new(mockGenerationRepo)
		svc := newGenService(gens, new(mockCategoryRepo), &mockQueue{})

		task := &model.Generation{ID: "g-1", UserID: 7, Status: model.StatusProcessing}
		gens.On("GetByID", mock.Anything, int64(7), "g-1").Return(task, nil).Once()

		cards, err := svc.Accept(ctx, 7, "g-1", nil)
		assert.Nil(t, cards)
		assert.ErrorIs(t, err, ErrNoSuggestions)
	})

	t.Run("missing and foreign report identically", func(t *testing.T) {
		gens := new(mockGenerationRepo)
		svc := newGenService(gens, new(mockCategoryRepo), &mockQueue{})

		gens.On("GetByID", mock.Anything, int64(7), "ghost").Return((*model.Generation)(nil), gorm.ErrRecordNotFound).Once()

		cards, err := svc.Accept(ctx, 7, "ghost", nil)
		assert.Nil(t, cards)
		assert.ErrorIs(t, err, ErrGenerationNotFound)
	})
}

func TestGenerationService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels active task", func(t *testing.T) {
		gens := new(mockGenerationRepo)
		svc := newGenService(gens, new(mockCategoryRepo), &mockQueue{})

		task := &model.Generation{ID: "g-1", UserID: 7, Status: model.StatusProcessing, Progress: 40}
		gens.On("GetByID", mock.Anything, int64(7), "g-1").Return(task, nil).Once()
		gens.On("TransitionIf", mock.Anything, "g-1",
			[]string{model.StatusPending, model.StatusProcessing}, model.StatusCancelled, 40).Return(true, nil).Once()

		g, err := svc.Cancel(ctx, 7, "g-1")
		assert.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, g.Status)
	})

	t.Run("terminal task conflicts", func(t *testing.T) {
		gens := new(mockGenerationRepo)
		svc := newGenService(gens, new(mockCategoryRepo), &mockQueue{})

		task := &model.Generation{ID: "g-1", UserID: 7, Status: model.StatusFailed}
		gens.On("GetByID", mock.Anything, int64(7), "g-1").Return(task, nil).Once()
		gens.On("TransitionIf", mock.Anything, "g-1", mock.Anything, model.StatusCancelled, 0).Return(false, nil).Once()

		g, err := svc.Cancel(ctx, 7, "g-1")
		assert.Nil(t, g)
		assert.ErrorIs(t, err, ErrAlreadyProcessed)
	})
}
