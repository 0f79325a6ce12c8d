package model

import "time"

// Статусы задачи генерации.
// completed выставляется ТОЛЬКО при акцепте предложенных фишек,
// движок генерации никогда не пишет этот статус сам.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusCancelled  = "cancelled"
)

// Suggestion — предложенная движком пара вопрос/ответ.
// Живёт внутри задачи генерации до акцепта, отдельно не хранится.
type Suggestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Generation — задача генерации фишек из исходного текста.
type Generation struct {
	ID     string `gorm:"primaryKey;type:uuid"`
	UserID int64  `gorm:"not null;index"` // ссылка на users.id

	User *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	Status     string `gorm:"not null;default:pending;index"`
	SourceText string `gorm:"not null;type:text"`
	ModelUsed  string `gorm:"not null"`

	CategoryID *string   `gorm:"type:uuid"` // категория, наследуемая создаваемыми фишками
	Category   *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`

	Progress     int          `gorm:"not null;default:0"` // 0..100
	ErrorMessage string       // текст ошибки движка при Status == failed
	Suggestions  []Suggestion `gorm:"serializer:json"`

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Terminal сообщает, финальный ли статус у задачи.
func (g *Generation) Terminal() bool {
	return g.Status == StatusCompleted || g.Status == StatusFailed || g.Status == StatusCancelled
}

// Acceptable сообщает, можно ли акцептовать задачу из её текущего статуса.
func (g *Generation) Acceptable() bool {
	return g.Status == StatusPending || g.Status == StatusProcessing
}
