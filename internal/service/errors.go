package service

import "errors"

// Сентинельные ошибки доменных сервисов. Хендлеры матчат их через errors.Is
// и превращают в HTTP-статусы; всё остальное схлопывается в 500.
var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrCategoryExists   = errors.New("category with this name already exists")
	ErrCategoryNotFound = errors.New("category not found")

	// ErrFlashcardNotFound возвращается и для чужих фишек:
	// владельцу чужой записи нельзя дать понять, что она существует.
	ErrFlashcardNotFound = errors.New("flashcard not found")

	ErrGenerationNotFound = errors.New("generation not found")
	ErrAlreadyProcessed   = errors.New("generation already processed")
	ErrNoSuggestions      = errors.New("no flashcards to accept")
)
