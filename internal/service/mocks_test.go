package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/WPrzybyszewski/10-X-Cards/internal/model"
	"github.com/WPrzybyszewski/10-X-Cards/internal/repo"
)

// моки репозиториев для тестов сервисов

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

type mockCategoryRepo struct{ mock.Mock }

func (m *mockCategoryRepo) Create(ctx context.Context, c *model.Category) (*model.Category, error) {
	args := m.Called(ctx, c)
	if v, ok := args.Get(0).(*model.Category); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, userID int64, id string) (*model.Category, error) {
	args := m.Called(ctx, userID, id)
	if v, ok := args.Get(0).(*model.Category); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) GetByNameFold(ctx context.Context, userID int64, name string) (*model.Category, error) {
	args := m.Called(ctx, userID, name)
	if v, ok := args.Get(0).(*model.Category); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepo) List(ctx context.Context, userID int64) ([]model.Category, error) {
	args := m.Called(ctx, userID)
	if v, ok := args.Get(0).([]model.Category); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.CategoryRepository = (*mockCategoryRepo)(nil)

type mockFlashcardRepo struct{ mock.Mock }

func (m *mockFlashcardRepo) Create(ctx context.Context, f *model.Flashcard) (*model.Flashcard, error) {
	args := m.Called(ctx, f)
	if v, ok := args.Get(0).(*model.Flashcard); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFlashcardRepo) GetByID(ctx context.Context, userID int64, id string) (*model.Flashcard, error) {
	args := m.Called(ctx, userID, id)
	if v, ok := args.Get(0).(*model.Flashcard); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFlashcardRepo) Update(ctx context.Context, userID int64, id string, updates map[string]any) (int64, error) {
	args := m.Called(ctx, userID, id, updates)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockFlashcardRepo) List(ctx context.Context, userID int64, offset, limit int) ([]model.Flashcard, int64, error) {
	args := m.Called(ctx, userID, offset, limit)
	if v, ok := args.Get(0).([]model.Flashcard); ok {
		return v, args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

var _ repo.FlashcardRepository = (*mockFlashcardRepo)(nil)

type mockGenerationRepo struct{ mock.Mock }

func (m *mockGenerationRepo) Create(ctx context.Context, g *model.Generation) (*model.Generation, error) {
	args := m.Called(ctx, g)
	if v, ok := args.Get(0).(*model.Generation); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGenerationRepo) GetByID(ctx context.Context, userID int64, id string) (*model.Generation, error) {
	args := m.Called(ctx, userID, id)
	if v, ok := args.Get(0).(*model.Generation); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGenerationRepo) GetAny(ctx context.Context, id string) (*model.Generation, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Generation); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGenerationRepo) List(ctx context.Context, userID int64, offset, limit int) ([]model.Generation, int64, error) {
	args := m.Called(ctx, userID, offset, limit)
	if v, ok := args.Get(0).([]model.Generation); ok {
		return v, args.Get(1).(int64), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *mockGenerationRepo) TransitionIf(ctx context.Context, id string, from []string, to string, progress int) (bool, error) {
	args := m.Called(ctx, id, from, to, progress)
	return args.Bool(0), args.Error(1)
}

func (m *mockGenerationRepo) SetProgressIf(ctx context.Context, id string, from string, progress int) (bool, error) {
	args := m.Called(ctx, id, from, progress)
	return args.Bool(0), args.Error(1)
}

func (m *mockGenerationRepo) StoreSuggestions(ctx context.Context, id string, suggestions []model.Suggestion) (bool, error) {
	args := m.Called(ctx, id, suggestions)
	return args.Bool(0), args.Error(1)
}

func (m *mockGenerationRepo) Fail(ctx context.Context, id string, message string) (bool, error) {
	args := m.Called(ctx, id, message)
	return args.Bool(0), args.Error(1)
}

func (m *mockGenerationRepo) AcceptTx(ctx context.Context, userID int64, id string, cards []model.Flashcard) (bool, error) {
	args := m.Called(ctx, userID, id, cards)
	return args.Bool(0), args.Error(1)
}

var _ repo.GenerationRepository = (*mockGenerationRepo)(nil)

// mockQueue — очередь движка с настраиваемым ответом Enqueue.
type mockQueue struct {
	full bool
	ids  []string
}

func (q *mockQueue) Enqueue(id string) bool {
	if q.full {
		return false
	}
	q.ids = append(q.ids, id)
	return true
}

var _ GenerationQueue = (*mockQueue)(nil)
