package model

import "time"

// Category — пользовательская категория фишек.
// Имя уникально в рамках пользователя (без учёта регистра), проверяется в сервисе.
type Category struct {
	ID     string `gorm:"primaryKey;type:uuid"`
	UserID int64  `gorm:"not null;index"` // ссылка на users.id

	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Name string `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
