// materials.go — сервис материалов: CRUD, поиск по имени, защищённое удаление.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bigkaa/componentor/internal/domain/model"
	"github.com/bigkaa/componentor/internal/domain/validation"
	"github.com/bigkaa/componentor/internal/repository"
)

// MaterialService — сервис материалов.
type MaterialService struct {
	stores    *repository.Stores
	tx        Transactor
	validator *validation.Validator
	logger    *slog.Logger
}

// NewMaterialService создаёт сервис материалов.
// stores используется для чтения вне транзакций, tx — для защищённого удаления.
func NewMaterialService(
	stores *repository.Stores,
	tx Transactor,
	validator *validation.Validator,
	logger *slog.Logger,
) *MaterialService {
	return &MaterialService{
		stores:    stores,
		tx:        tx,
		validator: validator,
		logger:    logger.With(slog.String("component", "material_service")),
	}
}

// Create проверяет поля и создаёт материал.
func (s *MaterialService) Create(ctx context.Context, in model.MaterialInput) (m *model.Material, err error) {
	defer func() { observe(entityMaterial, "create", err) }()

	in = normalizeMaterial(in)
	if errs := s.validator.Material(in); len(errs) > 0 {
		return nil, errs
	}

	m = &model.Material{ID: newID(), Name: in.Name, Density: in.Density}
	if err := s.stores.Materials.Create(ctx, m); err != nil {
		s.logger.Error("Ошибка создания материала", slog.String("error", err.Error()))
		return nil, fmt.Errorf("создание материала: %w", err)
	}

	s.logger.Info("Материал создан", slog.String("id", m.ID), slog.String("name", m.Name))
	return m, nil
}

// Update проверяет поля и обновляет имя и плотность материала.
func (s *MaterialService) Update(ctx context.Context, id string, in model.MaterialInput) (m *model.Material, err error) {
	defer func() { observe(entityMaterial, "update", err) }()

	if err := checkID(id); err != nil {
		return nil, err
	}
	in = normalizeMaterial(in)
	if errs := s.validator.Material(in); len(errs) > 0 {
		return nil, errs
	}

	m = &model.Material{ID: id, Name: in.Name, Density: in.Density}
	if err := s.stores.Materials.Update(ctx, m); err != nil {
		if err = mapNotFound(err); err == ErrNotFound {
			return nil, err
		}
		s.logger.Error("Ошибка обновления материала", slog.String("id", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("обновление материала: %w", err)
	}

	s.logger.Info("Материал обновлён", slog.String("id", m.ID))
	return m, nil
}

// Get возвращает материал по идентификатору.
func (s *MaterialService) Get(ctx context.Context, id string) (*model.Material, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	m, err := s.stores.Materials.GetByID(ctx, id)
	if err != nil {
		if err = mapNotFound(err); err == ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("получение материала: %w", err)
	}
	return m, nil
}

// List возвращает материалы в порядке создания.
// query — подстрока имени без учёта регистра, пустая строка — все материалы.
func (s *MaterialService) List(ctx context.Context, query string) ([]*model.Material, error) {
	items, err := s.stores.Materials.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("список материалов: %w", err)
	}
	return items, nil
}

// Parts возвращает детали, изготовленные из материала.
func (s *MaterialService) Parts(ctx context.Context, id string) ([]*model.Part, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	parts, err := s.stores.Parts.ListByMaterial(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("детали материала: %w", err)
	}
	return parts, nil
}

// Delete удаляет материал, если на него не ссылается ни одна деталь.
// Используемый материал не удаляется: возвращается model.Blocked без ошибки.
func (s *MaterialService) Delete(ctx context.Context, id string) (outcome model.DeletionOutcome, err error) {
	defer func() { observeDeletion(entityMaterial, outcome, err) }()

	if err := checkID(id); err != nil {
		return 0, err
	}

	outcome, err = guardedDelete(ctx, s.tx, guardTarget{
		lock: func(ctx context.Context, st *repository.Stores) error {
			return st.Materials.LockByID(ctx, id)
		},
		dependents: func(ctx context.Context, st *repository.Stores) (int, error) {
			return st.Parts.CountByMaterial(ctx, id)
		},
		remove: func(ctx context.Context, st *repository.Stores) error {
			return st.Materials.Delete(ctx, id)
		},
	})
	if err != nil {
		if err != ErrNotFound {
			s.logger.Error("Ошибка удаления материала", slog.String("id", id), slog.String("error", err.Error()))
		}
		return 0, err
	}

	s.logger.Info("Удаление материала", slog.String("id", id), slog.String("outcome", outcome.String()))
	return outcome, nil
}
