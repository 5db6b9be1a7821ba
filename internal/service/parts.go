// parts.go — сервис деталей: CRUD, поиск по обозначению и имени, защищённое удаление.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bigkaa/componentor/internal/domain/model"
	"github.com/bigkaa/componentor/internal/domain/validation"
	"github.com/bigkaa/componentor/internal/repository"
)

// PartService — сервис деталей.
type PartService struct {
	stores    *repository.Stores
	tx        Transactor
	validator *validation.Validator
	logger    *slog.Logger
}

// NewPartService создаёт сервис деталей.
func NewPartService(
	stores *repository.Stores,
	tx Transactor,
	validator *validation.Validator,
	logger *slog.Logger,
) *PartService {
	return &PartService{
		stores:    stores,
		tx:        tx,
		validator: validator,
		logger:    logger.With(slog.String("component", "part_service")),
	}
}

// validate проверяет поля детали и существование материала.
func (s *PartService) validate(ctx context.Context, in model.PartInput) error {
	errs := s.validator.Part(in)
	if errs.Has("material_id") {
		return errs
	}

	if _, err := s.stores.Materials.GetByID(ctx, in.MaterialID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("проверка материала: %w", err)
		}
		errs.Add("material_id", validation.ReasonNotFound)
	}
	return errs.Err()
}

// materialMissing переводит нарушение внешнего ключа при записи в ошибку поля material_id.
func materialMissing(err error) error {
	if errors.Is(err, repository.ErrReferenced) {
		return ValidationErrors{{Field: "material_id", Reason: validation.ReasonNotFound}}
	}
	return err
}

// Create проверяет поля и создаёт деталь.
func (s *PartService) Create(ctx context.Context, in model.PartInput) (p *model.Part, err error) {
	defer func() { observe(entityPart, "create", err) }()

	in = normalizePart(in)
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	p = &model.Part{ID: newID(), Designation: in.Designation, Name: in.Name, MaterialID: in.MaterialID}
	if err := s.stores.Parts.Create(ctx, p); err != nil {
		if err = materialMissing(err); errors.Is(err, ErrValidation) {
			return nil, err
		}
		s.logger.Error("Ошибка создания детали", slog.String("error", err.Error()))
		return nil, fmt.Errorf("создание детали: %w", err)
	}

	s.logger.Info("Деталь создана",
		slog.String("id", p.ID),
		slog.String("designation", p.Designation),
		slog.String("material_id", p.MaterialID),
	)
	return s.Get(ctx, p.ID)
}

// Update проверяет поля и обновляет деталь.
func (s *PartService) Update(ctx context.Context, id string, in model.PartInput) (p *model.Part, err error) {
	defer func() { observe(entityPart, "update", err) }()

	if err := checkID(id); err != nil {
		return nil, err
	}
	in = normalizePart(in)
	if err := s.validate(ctx, in); err != nil {
		return nil, err
	}

	p = &model.Part{ID: id, Designation: in.Designation, Name: in.Name, MaterialID: in.MaterialID}
	if err := s.stores.Parts.Update(ctx, p); err != nil {
		if err = mapNotFound(materialMissing(err)); err == ErrNotFound || errors.Is(err, ErrValidation) {
			return nil, err
		}
		s.logger.Error("Ошибка обновления детали", slog.String("id", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("обновление детали: %w", err)
	}

	s.logger.Info("Деталь обновлена", slog.String("id", id))
	return s.Get(ctx, id)
}

// Get возвращает деталь вместе с названием материала.
func (s *PartService) Get(ctx context.Context, id string) (*model.Part, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	p, err := s.stores.Parts.GetByID(ctx, id)
	if err != nil {
		if err = mapNotFound(err); err == ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("получение детали: %w", err)
	}
	return p, nil
}

// List возвращает детали в порядке создания.
// query — подстрока обозначения или имени без учёта регистра.
func (s *PartService) List(ctx context.Context, query string) ([]*model.Part, error) {
	items, err := s.stores.Parts.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("список деталей: %w", err)
	}
	return items, nil
}

// Assemblies возвращает строки сборок, в которые входит деталь.
func (s *PartService) Assemblies(ctx context.Context, id string) ([]*model.AssemblyLine, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	lines, err := s.stores.AssemblyParts.ListByPart(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("сборки детали: %w", err)
	}
	return lines, nil
}

// Delete удаляет деталь, если она не входит ни в одну сборку.
// Используемая деталь не удаляется: возвращается model.Blocked без ошибки.
func (s *PartService) Delete(ctx context.Context, id string) (outcome model.DeletionOutcome, err error) {
	defer func() { observeDeletion(entityPart, outcome, err) }()

	if err := checkID(id); err != nil {
		return 0, err
	}

	outcome, err = guardedDelete(ctx, s.tx, guardTarget{
		lock: func(ctx context.Context, st *repository.Stores) error {
			return st.Parts.LockByID(ctx, id)
		},
		dependents: func(ctx context.Context, st *repository.Stores) (int, error) {
			return st.AssemblyParts.CountByPart(ctx, id)
		},
		remove: func(ctx context.Context, st *repository.Stores) error {
			return st.Parts.Delete(ctx, id)
		},
	})
	if err != nil {
		if err != ErrNotFound {
			s.logger.Error("Ошибка удаления детали", slog.String("id", id), slog.String("error", err.Error()))
		}
		return 0, err
	}

	s.logger.Info("Удаление детали", slog.String("id", id), slog.String("outcome", outcome.String()))
	return outcome, nil
}
