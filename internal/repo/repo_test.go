package repo

import (
	"context"
	"fmt"
	"strings"
	"testing"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"github.com/WPrzybyszewski/10-X-Cards/internal/model"
)

// newTestDB инициализирует in-memory SQLite (modernc.org/sqlite) для тестов репозитория.
// Имя базы уникально на тест, чтобы тесты не делили строки между собой.
func newTestDB(t *testing.T) *gorm.DB {
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
	// Миграции для всех моделей, используемых в репозиториях
	if err := db.AutoMigrate(&model.User{}, &model.Category{}, &model.Generation{}, &model.Flashcard{}); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}

// newTestUser создаёт пользователя-владельца для тестовых строк.
func newTestUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	u, err := NewUserRepository(db).CreateUser(context.Background(), &model.User{Email: email, Password: "hash"})
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return u
}
