package model

import "time"

// Источник появления фишки.
const (
	SourceManual = "manual"
	SourceAI     = "ai"
)

// Flashcard — серверная модель фишки (вопрос/ответ).
type Flashcard struct {
	ID     string `gorm:"primaryKey;type:uuid"`
	UserID int64  `gorm:"not null;index"` // ссылка на users.id

	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Question string `gorm:"not null"`
	Answer   string `gorm:"not null"`

	CategoryID *string   `gorm:"type:uuid;index"` // опциональная ссылка на categories.id
	Category   *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`

	// GenerationID заполнен только для фишек с Source == SourceAI.
	GenerationID *string     `gorm:"type:uuid;index"`
	Generation   *Generation `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`

	Source string `gorm:"not null;default:manual"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
