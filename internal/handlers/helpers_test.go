package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"github.com/WPrzybyszewski/10-X-Cards/internal/config"
	"github.com/WPrzybyszewski/10-X-Cards/internal/handlers"
	"github.com/WPrzybyszewski/10-X-Cards/internal/model"
	"github.com/WPrzybyszewski/10-X-Cards/internal/repo"
	"github.com/WPrzybyszewski/10-X-Cards/internal/service"
)

// stubQueue записывает поставленные задачи вместо запуска движка.
// Тесты имитируют работу движка напрямую через репозиторий.
type stubQueue struct {
	full bool
	ids  []string
}

func (q *stubQueue) Enqueue(id string) bool {
	if q.full {
		return false
	}
	q.ids = append(q.ids, id)
	return true
}

// testEnv — роутер поверх реальных сервисов и in-memory SQLite.
type testEnv struct {
	router http.Handler
	gens   repo.GenerationRepository
	queue  *stubQueue
	cfg    *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dial := gormsqlite.Dialector{
		DriverName: "sqlite",
		DSN:        fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite (modernc): %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Category{}, &model.Generation{}, &model.Flashcard{}); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}

	cfg := &config.Config{AuthSecret: "test-secret", GenerationModel: "test-model"}
	logger := zap.NewNop().Sugar()

	users := repo.NewUserRepository(db)
	categories := repo.NewCategoryRepository(db)
	cards := repo.NewFlashcardRepository(db)
	gens := repo.NewGenerationRepository(db)

	queue := &stubQueue{}
	userSvc := service.NewUserService(users)
	categorySvc := service.NewCategoryService(categories)
	flashcardSvc := service.NewFlashcardService(cards, categories)
	generationSvc := service.NewGenerationService(gens, categories, queue, cfg.GenerationModel, logger)

	h := handlers.NewHandler(userSvc, categorySvc, flashcardSvc, generationSvc, logger, cfg)
	return &testEnv{router: h.Router, gens: gens, queue: queue, cfg: cfg}
}

// newRequest собирает запрос с JSON-телом и куками.
func (e *testEnv) newRequest(t *testing.T, method, path string, body any, cookies []*http.Cookie) *http.Request {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func (e *testEnv) serve(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// do выполняет запрос через роутер и возвращает рекордер ответа.
func (e *testEnv) do(t *testing.T, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	return e.serve(e.newRequest(t, method, path, body, cookies))
}

// signup регистрирует пользователя и возвращает auth-куки.
func (e *testEnv) signup(t *testing.T, email string) []*http.Cookie {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/api/v1/auth/signup",
		map[string]string{"email": email, "password": "secret123"}, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("signup failed: %d %s", rr.Code, rr.Body.String())
	}
	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("signup set no cookies")
	}
	return cookies
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rr.Body.String(), err)
	}
	return v
}

// errCode достаёт код ошибки из конверта ответа.
func errCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Error handlers.ErrorBody `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an error envelope %q: %v", rr.Body.String(), err)
	}
	return env.Error.Code
}

// finishGeneration имитирует завершение движка: кладёт предложения и прогресс 100.
func (e *testEnv) finishGeneration(t *testing.T, id string, suggestions []model.Suggestion) {
	t.Helper()
	applied, err := e.gens.StoreSuggestions(context.Background(), id, suggestions)
	assert.NoError(t, err)
	assert.True(t, applied, "task must still be processing")
}

// sourceText возвращает валидный исходный текст нужной длины.
func sourceText(n int) string {
	base := "Flashcards aid retention through active recall and spaced repetition. "
	var b strings.Builder
	for b.Len() < n {
		b.WriteString(base)
	}
	return b.String()[:n]
}
