// catalog.go — общие части сервисов каталога: транзакции, метрики, нормализация ввода.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/componentor/internal/domain/model"
	"github.com/bigkaa/componentor/internal/domain/validation"
	"github.com/bigkaa/componentor/internal/repository"
)

// Transactor выполняет fn с набором репозиториев внутри одной транзакции.
// Реализуется repository.TxRunner.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(stores *repository.Stores) error) error
}

// Сущности каталога (лейбл entity в метриках).
const (
	entityMaterial = "material"
	entityPart     = "part"
	entityAssembly = "assembly"
)

// Prometheus-метрики операций каталога.
var catalogOperations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cm_catalog_operations_total",
	Help: "Количество операций каталога по сущности, операции и исходу.",
}, []string{"entity", "operation", "outcome"})

// observe учитывает операцию в метриках.
func observe(entity, operation string, err error) {
	catalogOperations.WithLabelValues(entity, operation, outcomeOf(err)).Inc()
}

// observeDeletion учитывает защищённое удаление с исходом deleted/blocked.
func observeDeletion(entity string, outcome model.DeletionOutcome, err error) {
	label := outcomeOf(err)
	if err == nil {
		label = outcome.String()
	}
	catalogOperations.WithLabelValues(entity, "delete", label).Inc()
}

// outcomeOf классифицирует результат операции для метрик.
func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidation):
		return "invalid"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

// newID генерирует идентификатор новой записи.
func newID() string {
	return uuid.New().String()
}

// checkID возвращает ErrNotFound для строки, не являющейся идентификатором записи.
func checkID(id string) error {
	if !validation.IsID(id) {
		return ErrNotFound
	}
	return nil
}

// mapNotFound переводит repository.ErrNotFound в ErrNotFound сервисного слоя.
func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func normalizeMaterial(in model.MaterialInput) model.MaterialInput {
	in.Name = strings.TrimSpace(in.Name)
	return in
}

func normalizePart(in model.PartInput) model.PartInput {
	in.Designation = strings.TrimSpace(in.Designation)
	in.Name = strings.TrimSpace(in.Name)
	in.MaterialID = strings.TrimSpace(in.MaterialID)
	return in
}

func normalizeAssembly(in model.AssemblyInput) model.AssemblyInput {
	in.Designation = strings.TrimSpace(in.Designation)
	in.Name = strings.TrimSpace(in.Name)
	return in
}
