// errors.go — ошибки бизнес-логики сервисного слоя.
package service

import (
	"errors"

	"github.com/bigkaa/componentor/internal/domain/validation"
)

var (
	// ErrNotFound — ресурс не найден.
	ErrNotFound = errors.New("ресурс не найден")
	// ErrValidation — ошибка валидации входных данных.
	// Конкретные поля — в validation.Errors, который удовлетворяет errors.Is(err, ErrValidation).
	ErrValidation = validation.ErrInvalid
)

// ValidationErrors — список отклонённых полей операции.
type ValidationErrors = validation.Errors

// ValidationError — отклонённое поле и причина.
type ValidationError = validation.FieldError
