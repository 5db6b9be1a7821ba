// Пакет errors — конструкторы стандартных ошибок JSON API каталога.
// Единый формат generated.Error: {"error": {"code": "...", "message": "...", "details": [...]}}.
// Все HTTP-ответы с ошибками должны использовать WriteError.
package errors

import (
	"encoding/json"
	"net/http"

	"github.com/bigkaa/componentor/internal/api/generated"
)

// WriteError записывает ответ ошибки в стандартном формате.
// statusCode — HTTP статус-код, code — машиночитаемый код, message — описание.
func WriteError(w http.ResponseWriter, statusCode int, code generated.ErrorDetailCode, message string, details ...generated.FieldError) {
	body := generated.Error{
		Error: generated.ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
	if len(details) > 0 {
		body.Error.Details = &details
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// --- Конструкторы для типичных ошибок ---

// ValidationError — 400 некорректные входные данные.
func ValidationError(w http.ResponseWriter, message string, details ...generated.FieldError) {
	WriteError(w, http.StatusBadRequest, generated.ErrorDetailCodeVALIDATIONERROR, message, details...)
}

// NotFound — 404 ресурс не найден.
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, generated.ErrorDetailCodeNOTFOUND, message)
}

// InUse — 409 удаление отклонено: на запись ссылаются другие записи.
func InUse(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, generated.ErrorDetailCodeINUSE, message)
}

// InternalError — 500 внутренняя ошибка.
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, generated.ErrorDetailCodeINTERNALERROR, message)
}
