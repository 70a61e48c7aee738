package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/DS-SchedulingService/internal/api/handlers"
)

// UserIDHeader заголовок с ID пользователя, выставляется шлюзом
const UserIDHeader = "X-User-ID"

const msgInvalidUserID = "некорректный заголовок X-User-ID"

type userIDKey struct{}

// UserID кладёт ID пользователя из заголовка X-User-ID в контекст.
// Заголовок необязателен, некорректное значение отклоняется
func UserID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(UserIDHeader)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondBadRequest(w, msgInvalidUserID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// WithUserID возвращает контекст с ID пользователя
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// GetUserID достаёт ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey{}).(int64)
	return userID, ok
}
