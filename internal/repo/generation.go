package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/WPrzybyszewski/10-X-Cards/internal/model"
)

// GenerationRepository определяет контракт доступа к Generation.
type GenerationRepository interface {
	Create(ctx context.Context, g *model.Generation) (*model.Generation, error)

	// GetByID возвращает задачу пользователя или gorm.ErrRecordNotFound.
	// Чужие задачи неотличимы от несуществующих.
	GetByID(ctx context.Context, userID int64, id string) (*model.Generation, error)

	// GetAny возвращает задачу без проверки владельца. Используется движком.
	GetAny(ctx context.Context, id string) (*model.Generation, error)

	// List возвращает страницу задач пользователя (новые сначала) и общее число.
	List(ctx context.Context, userID int64, offset, limit int) ([]model.Generation, int64, error)

	// TransitionIf атомарно переводит задачу из одного из статусов from в to
	// и выставляет прогресс. Возвращает applied=false, если задача уже ушла
	// из ожидаемого статуса (CAS проигран).
	TransitionIf(ctx context.Context, id string, from []string, to string, progress int) (applied bool, err error)

	// SetProgressIf обновляет прогресс, пока задача остаётся в статусе from.
	SetProgressIf(ctx context.Context, id string, from string, progress int) (applied bool, err error)

	// StoreSuggestions записывает результат движка и прогресс 100,
	// если задача всё ещё в processing.
	StoreSuggestions(ctx context.Context, id string, suggestions []model.Suggestion) (applied bool, err error)

	// Fail переводит задачу в failed с текстом ошибки, если она не терминальна.
	Fail(ctx context.Context, id string, message string) (applied bool, err error)

	// AcceptTx в одной транзакции переводит задачу в completed (CAS из
	// pending/processing) и создаёт фишки. Либо применяется всё, либо ничего:
	// applied=false означает, что задача уже была терминальной и фишки не созданы.
	AcceptTx(ctx context.Context, userID int64, id string, cards []model.Flashcard) (applied bool, err error)
}

type generationRepo struct {
	db *gorm.DB
}

// NewGenerationRepository создаёт реализацию репозитория для Generation.
func NewGenerationRepository(db *gorm.DB) GenerationRepository {
	return &generationRepo{db: db}
}

func (r *generationRepo) Create(ctx context.Context, g *model.Generation) (*model.Generation, error) {
	if err := r.db.WithContext(ctx).Create(g).Error; err != nil {
		return nil, err
	}
	return g, nil
}

func (r *generationRepo) GetByID(ctx context.Context, userID int64, id string) (*model.Generation, error) {
	var g model.Generation
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&g).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *generationRepo) GetAny(ctx context.Context, id string) (*model.Generation, error) {
	var g model.Generation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *generationRepo) List(ctx context.Context, userID int64, offset, limit int) ([]model.Generation, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&model.Generation{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var list []model.Generation
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

func (r *generationRepo) TransitionIf(ctx context.Context, id string, from []string, to string, progress int) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&model.Generation{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(map[string]any{"status": to, "progress": progress})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *generationRepo) SetProgressIf(ctx context.Context, id string, from string, progress int) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&model.Generation{}).
		Where("id = ? AND status = ?", id, from).
		Update("progress", progress)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *generationRepo) StoreSuggestions(ctx context.Context, id string, suggestions []model.Suggestion) (bool, error) {
	// обновление структурой, а не map: значения проходят через json-сериализатор
	tx := r.db.WithContext(ctx).
		Model(&model.Generation{}).
		Where("id = ? AND status = ?", id, model.StatusProcessing).
		Updates(model.Generation{Suggestions: suggestions, Progress: 100})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *generationRepo) Fail(ctx context.Context, id string, message string) (bool, error) {
	nonTerminal := []string{model.StatusPending, model.StatusProcessing}
	tx := r.db.WithContext(ctx).
		Model(&model.Generation{}).
		Where("id = ? AND status IN ?", id, nonTerminal).
		Updates(map[string]any{"status": model.StatusFailed, "error_message": message})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *generationRepo) AcceptTx(ctx context.Context, userID int64, id string, cards []model.Flashcard) (bool, error) {
	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Generation{}).
			Where("id = ? AND user_id = ? AND status IN ?",
				id, userID, []string{model.StatusPending, model.StatusProcessing}).
			Updates(map[string]any{"status": model.StatusCompleted, "progress": 100})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// задача уже терминальна — откатываемся, ничего не создавая
			return nil
		}
		if err := tx.Create(&cards).Error; err != nil {
			return err
		}
		applied = true
		return nil
	})
	return applied, err
}
