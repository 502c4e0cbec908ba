package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
)

// headerStaffID заголовок, идентифицирующий сотрудника клиники.
// Аутентификация выполняется внешним шлюзом; здесь только проверка
// наличия заголовка для staff-маршрутов.
const headerStaffID = "X-Staff-ID"

type contextKey string

const staffIDKey contextKey = "staffID"

// Auth middleware для staff-маршрутов: требует корректный X-Staff-ID
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		staffIDStr := r.Header.Get(headerStaffID)
		if staffIDStr == "" {
			respondUnauthorized(w, "отсутствует заголовок X-Staff-ID")
			return
		}

		staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil || staffID <= 0 {
			respondUnauthorized(w, "некорректный X-Staff-ID")
			return
		}

		ctx := context.WithValue(r.Context(), staffIDKey, staffID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetStaffID извлекает ID сотрудника из контекста запроса
func GetStaffID(ctx context.Context) (int64, bool) {
	staffID, ok := ctx.Value(staffIDKey).(int64)
	return staffID, ok
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
