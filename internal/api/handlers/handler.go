// handler.go — основной обработчик JSON API каталога.
// Объединяет доменные обработчики и делегирует запросы в сервисный слой.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apierrors "github.com/bigkaa/componentor/internal/api/errors"
	"github.com/bigkaa/componentor/internal/api/generated"
	"github.com/bigkaa/componentor/internal/domain/model"
	"github.com/bigkaa/componentor/internal/service"
)

// MaterialCatalog — операции над материалами (service.MaterialService).
type MaterialCatalog interface {
	Create(ctx context.Context, in model.MaterialInput) (*model.Material, error)
	Update(ctx context.Context, id string, in model.MaterialInput) (*model.Material, error)
	Get(ctx context.Context, id string) (*model.Material, error)
	List(ctx context.Context, query string) ([]*model.Material, error)
	Parts(ctx context.Context, id string) ([]*model.Part, error)
	Delete(ctx context.Context, id string) (model.DeletionOutcome, error)
}

// PartCatalog — операции над деталями (service.PartService).
type PartCatalog interface {
	Create(ctx context.Context, in model.PartInput) (*model.Part, error)
	Update(ctx context.Context, id string, in model.PartInput) (*model.Part, error)
	Get(ctx context.Context, id string) (*model.Part, error)
	List(ctx context.Context, query string) ([]*model.Part, error)
	Assemblies(ctx context.Context, id string) ([]*model.AssemblyLine, error)
	Delete(ctx context.Context, id string) (model.DeletionOutcome, error)
}

// AssemblyCatalog — операции над сборками (service.AssemblyService).
type AssemblyCatalog interface {
	Save(ctx context.Context, id *string, in model.AssemblyInput, lines []model.LineDirective) (*model.Assembly, error)
	Get(ctx context.Context, id string) (*model.Assembly, error)
	List(ctx context.Context, query string) ([]*model.Assembly, error)
	Lines(ctx context.Context, assemblyID, materialQuery string) ([]*model.AssemblyLine, error)
	Delete(ctx context.Context, id string) error
}

// APIHandler — обработчик /api/v1, реализует generated.ServerInterface.
type APIHandler struct {
	materials  MaterialCatalog
	parts      PartCatalog
	assemblies AssemblyCatalog
	logger     *slog.Logger
}

var _ generated.ServerInterface = (*APIHandler)(nil)

// NewAPIHandler создаёт основной обработчик API.
func NewAPIHandler(
	materials MaterialCatalog,
	parts PartCatalog,
	assemblies AssemblyCatalog,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		materials:  materials,
		parts:      parts,
		assemblies: assemblies,
		logger:     logger.With(slog.String("component", "api_handler")),
	}
}

// ParamError — ErrorHandlerFunc сгенерированного роутера.
// id, не являющийся UUID, не может принадлежать записи: ответ 404, остальные параметры — 400.
func (h *APIHandler) ParamError(w http.ResponseWriter, _ *http.Request, err error) {
	var formatErr *generated.InvalidParamFormatError
	if errors.As(err, &formatErr) && formatErr.ParamName == "id" {
		apierrors.NotFound(w, "Запись не найдена")
		return
	}
	apierrors.ValidationError(w, "Некорректный параметр запроса: "+err.Error())
}

// --- Вспомогательные функции ---

// writeJSON записывает JSON-ответ с указанным статусом.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// decodeJSON разбирает тело запроса; при ошибке пишет 400 и возвращает false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return false
	}
	return true
}

// writeServiceError переводит ошибку сервисного слоя в ответ API.
// notFound — сообщение для ErrNotFound, action — описание операции для лога и 500.
func (h *APIHandler) writeServiceError(w http.ResponseWriter, err error, notFound, action string) {
	var verrs service.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		apierrors.ValidationError(w, "Некорректные входные данные", fieldDetails(verrs)...)
	case errors.Is(err, service.ErrNotFound):
		apierrors.NotFound(w, notFound)
	default:
		h.logger.Error("Ошибка: "+action, slog.String("error", err.Error()))
		apierrors.InternalError(w, "Ошибка: "+action)
	}
}

// fieldDetails переводит ValidationErrors в детали ответа.
func fieldDetails(verrs service.ValidationErrors) []generated.FieldError {
	details := make([]generated.FieldError, len(verrs))
	for i, fe := range verrs {
		details[i] = generated.FieldError{Field: fe.Field, Reason: generated.FieldErrorReason(fe.Reason)}
	}
	return details
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
