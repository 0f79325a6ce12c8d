package validate

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// общий инстанс валидатора; потокобезопасен и кэширует метаданные структур
var v = validator.New(validator.WithRequiredStructEnabled())

// Struct проверяет команду по её validate-тегам.
func Struct(cmd any) error {
	return v.Struct(cmd)
}

// Details разворачивает ошибку валидатора в map поле→описание для тела ответа.
// Для прочих ошибок возвращает nil.
func Details(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = "is required"
		case "min":
			out[fe.Field()] = fmt.Sprintf("must be at least %s characters", fe.Param())
		case "max":
			out[fe.Field()] = fmt.Sprintf("must be at most %s characters", fe.Param())
		case "uuid":
			out[fe.Field()] = "must be a valid UUID"
		case "email":
			out[fe.Field()] = "must be a valid email address"
		default:
			out[fe.Field()] = "is invalid"
		}
	}
	return out
}

// Pagination — разобранные параметры постраничного вывода.
type Pagination struct {
	Page  int
	Limit int
}

// Offset возвращает смещение первой строки страницы.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// ParsePagination разбирает query-параметры page и limit.
// page — положительное целое (по умолчанию 1), limit — 1..100 (по умолчанию 20).
func ParsePagination(q url.Values) (Pagination, error) {
	p := Pagination{Page: defaultPage, Limit: defaultLimit}

	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return Pagination{}, fmt.Errorf("page must be a positive integer, got %q", raw)
		}
		p.Page = n
	}

	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLimit {
			return Pagination{}, fmt.Errorf("limit must be between 1 and %d, got %q", maxLimit, raw)
		}
		p.Limit = n
	}

	return p, nil
}

// TotalPages считает число страниц: ceil(totalItems/limit).
func TotalPages(totalItems int64, limit int) int {
	if totalItems == 0 {
		return 0
	}
	return int((totalItems + int64(limit) - 1) / int64(limit))
}
