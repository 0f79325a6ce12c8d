package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// имя cookie с JWT
const authCookieName = "auth_token"

// TokenTTL — время жизни auth-токена.
const TokenTTL = 24 * time.Hour

type contextKey string

const userIDKey contextKey = "user_id"

// claims JWT с идентификатором пользователя.
type authClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// BuildJWT создаёт подписанный токен для пользователя.
func BuildJWT(userID int64, secret string) (string, error) {
	claims := authClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// SetLoginCookie выписывает JWT и ставит auth cookie в ответ.
func SetLoginCookie(w http.ResponseWriter, userID int64, secret string) error {
	signed, err := BuildJWT(userID, secret)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(TokenTTL),
	})
	return nil
}

// WithAuth разбирает auth cookie и кладёт user_id в контекст запроса.
// Запросы без валидного токена пропускаются дальше анонимно:
// обязательность авторизации решают сами хендлеры.
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(authCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims := &authClaims{}
			token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid || claims.UserID == 0 {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext достаёт user_id, положенный WithAuth.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
