package model

import "time"

// User — учётная запись пользователя. Все сущности приложения принадлежат пользователю.
type User struct {
	ID       int64  `gorm:"primaryKey"`
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null"` // bcrypt-хеш

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
