package validate

// Команды HTTP-запросов. Поля с тегами validate проверяются через Struct.

// SignupCommand — тело POST /api/v1/auth/signup.
type SignupCommand struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginCommand — тело POST /api/v1/auth/login.
type LoginCommand struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

// CreateCategoryCommand — тело POST /api/v1/categories.
// Имя обрезается по краям до валидации.
type CreateCategoryCommand struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// CreateFlashcardCommand — тело POST /api/v1/flashcards.
type CreateFlashcardCommand struct {
	Question   string  `json:"question" validate:"required,min=1,max=200"`
	Answer     string  `json:"answer" validate:"required,min=1,max=500"`
	CategoryID *string `json:"categoryId" validate:"omitempty,uuid"`
}

// UpdateFlashcardCommand — тело PATCH /api/v1/flashcards/{id}.
// Все поля опциональны, но хотя бы одно должно быть задано (см. Empty).
type UpdateFlashcardCommand struct {
	Question   *string `json:"question" validate:"omitempty,min=1,max=200"`
	Answer     *string `json:"answer" validate:"omitempty,min=1,max=500"`
	CategoryID *string `json:"categoryId" validate:"omitempty,uuid"`
}

// Empty — true, если не задано ни одного поля для обновления.
func (c UpdateFlashcardCommand) Empty() bool {
	return c.Question == nil && c.Answer == nil && c.CategoryID == nil
}

// SubmitGenerationCommand — тело POST /api/v1/generations.
type SubmitGenerationCommand struct {
	SourceText string  `json:"sourceText" validate:"required,min=1000,max=10000"`
	Model      *string `json:"model" validate:"omitempty,min=1,max=100"`
	CategoryID *string `json:"categoryId" validate:"omitempty,uuid"`
}

// SuggestionPayload — элемент выборки для акцепта.
type SuggestionPayload struct {
	Question string `json:"question" validate:"required,min=1,max=200"`
	Answer   string `json:"answer" validate:"required,min=1,max=500"`
}

// AcceptGeneratedCardsCommand — тело POST /api/v1/generations/{id}/accept.
// Flashcards == nil означает «принять всё»; пустой список — ошибка валидации
// на уровне сервиса (нечего принимать).
type AcceptGeneratedCardsCommand struct {
	Flashcards *[]SuggestionPayload `json:"flashcards" validate:"omitempty,dive"`
}
