package engine

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/WPrzybyszewski/10-X-Cards/internal/model"
	"github.com/WPrzybyszewski/10-X-Cards/internal/repo"
)

// Generator — граница перед LLM: превращает исходный текст в пары вопрос/ответ.
type Generator interface {
	Generate(ctx context.Context, sourceText, llmModel string) ([]model.Suggestion, error)
}

// Пределы длины карточки; то, что вернула модель сверх лимита, обрезается.
const (
	maxQuestionLen = 200
	maxAnswerLen   = 500
)

// Вехи прогресса задачи.
const (
	progressPicked    = 10
	progressPrompted  = 25
	progressGenerated = 90
)

// Engine — асинхронный движок генерации: буферизованная очередь и пул
// воркеров. Статусы задач двигаются только через CAS, поэтому движок
// не затирает ни отмену, ни акцепт, случившиеся параллельно.
type Engine struct {
	queue   chan string
	gens    repo.GenerationRepository
	gen     Generator
	workers int
	logger  *zap.SugaredLogger
}

// New создаёт движок с заданным числом воркеров и ёмкостью очереди.
func New(gens repo.GenerationRepository, gen Generator, workers, queueSize int, logger *zap.SugaredLogger) *Engine {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &Engine{
		queue:   make(chan string, queueSize),
		gens:    gens,
		gen:     gen,
		workers: workers,
		logger:  logger,
	}
}

// Enqueue ставит задачу в очередь. Fire-and-forget: false означает
// «очередь заполнена», задача остаётся ждать в pending.
func (e *Engine) Enqueue(id string) bool {
	select {
	case e.queue <- id:
		return true
	default:
		return false
	}
}

// Run запускает воркеров и блокируется до отмены контекста.
func (e *Engine) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < e.workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case id := <-e.queue:
					e.process(ctx, id)
				}
			}
		})
	}
	return g.Wait()
}

// process обрабатывает одну задачу от постановки до результата.
func (e *Engine) process(ctx context.Context, id string) {
	// CAS: задача могла быть отменена или акцептована, пока ждала в очереди
	applied, err := e.gens.TransitionIf(ctx, id,
		[]string{model.StatusPending, model.StatusProcessing}, model.StatusProcessing, progressPicked)
	if err != nil {
		e.logger.Errorw("engine: failed to pick up task", "generation_id", id, "error", err)
		return
	}
	if !applied {
		e.logger.Infow("engine: task no longer runnable, skipping", "generation_id", id)
		return
	}

	task, err := e.gens.GetAny(ctx, id)
	if err != nil {
		e.logger.Errorw("engine: failed to load task", "generation_id", id, "error", err)
		return
	}

	if _, err := e.gens.SetProgressIf(ctx, id, model.StatusProcessing, progressPrompted); err != nil {
		e.logger.Warnw("engine: progress update failed", "generation_id", id, "error", err)
	}

	suggestions, err := e.gen.Generate(ctx, task.SourceText, task.ModelUsed)
	if err != nil {
		e.fail(ctx, id, err.Error())
		return
	}

	suggestions = clampSuggestions(suggestions)
	if len(suggestions) == 0 {
		e.fail(ctx, id, "model returned no usable flashcards")
		return
	}

	if _, err := e.gens.SetProgressIf(ctx, id, model.StatusProcessing, progressGenerated); err != nil {
		e.logger.Warnw("engine: progress update failed", "generation_id", id, "error", err)
	}

	applied, err = e.gens.StoreSuggestions(ctx, id, suggestions)
	if err != nil {
		e.logger.Errorw("engine: failed to store suggestions", "generation_id", id, "error", err)
		return
	}
	if !applied {
		// задачу успели отменить — результат отбрасывается
		e.logger.Infow("engine: task left processing, result dropped", "generation_id", id)
		return
	}

	e.logger.Infow("engine: task ready for review",
		"generation_id", id, "suggestions", len(suggestions))
}

func (e *Engine) fail(ctx context.Context, id, message string) {
	applied, err := e.gens.Fail(ctx, id, message)
	if err != nil {
		e.logger.Errorw("engine: failed to mark task failed", "generation_id", id, "error", err)
		return
	}
	if applied {
		e.logger.Warnw("engine: task failed", "generation_id", id, "reason", message)
	}
}

// clampSuggestions выбрасывает пустые пары и обрезает поля до лимитов карточки.
func clampSuggestions(in []model.Suggestion) []model.Suggestion {
	out := make([]model.Suggestion, 0, len(in))
	for _, s := range in {
		if s.Question == "" || s.Answer == "" {
			continue
		}
		if r := []rune(s.Question); len(r) > maxQuestionLen {
			s.Question = string(r[:maxQuestionLen])
		}
		if r := []rune(s.Answer); len(r) > maxAnswerLen {
			s.Answer = string(r[:maxAnswerLen])
		}
		out = append(out, s)
	}
	return out
}
