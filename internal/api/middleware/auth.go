package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
)

type contextKey string

// UserIDKey ключ контекста с ID сотрудника из заголовка X-User-ID
const UserIDKey contextKey = "userID"

const msgMissingUserID = "требуется заголовок X-User-ID"

// Auth проверяет наличие заголовка X-User-ID и кладёт его в контекст
// Служебные операции доступны только персоналу салона; сам заголовок
// проставляет API-gateway после аутентификации
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			handlers.RespondForbidden(w, msgMissingUserID)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext достаёт ID сотрудника из контекста
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}
