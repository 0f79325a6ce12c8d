package repo

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"github.com/WPrzybyszewski/10-X-Cards/internal/model"
)

// InitDB открывает соединение с БД и накатывает миграции моделей.
// postgres:// и postgresql:// DSN идут в Postgres, всё остальное — путь к файлу SQLite
// (пустой DSN — локальный файл cards.db).
func InitDB(dsn string) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		dial = postgres.Open(dsn)
	case dsn == "":
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: "cards.db"}
	default:
		dial = gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Generation{},
		&model.Flashcard{},
	); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}
