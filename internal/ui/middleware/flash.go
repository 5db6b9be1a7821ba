// Пакет middleware — HTTP middleware серверного UI.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/bigkaa/componentor/internal/ui/flash"
)

// Flash извлекает flash-сообщение из cookie и помещает его в контекст запроса.
// Повреждённый или чужой cookie удаляется, запрос продолжается без сообщения.
func Flash(manager *flash.Manager, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With(slog.String("component", "ui.flash"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Только страницы, открываемые после redirect, показывают сообщения.
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			msg, err := manager.Pop(w, r)
			if err != nil {
				logger.Debug("Некорректный flash cookie", slog.String("error", err.Error()))
			}
			if msg != nil {
				r = r.WithContext(flash.WithMessage(r.Context(), msg))
			}
			next.ServeHTTP(w, r)
		})
	}
}
