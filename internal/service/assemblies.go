// assemblies.go — сервис сборок: сохранение сборки вместе с составом
// одной транзакцией, поиск, фильтр состава по материалу, удаление.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bigkaa/componentor/internal/domain/model"
	"github.com/bigkaa/componentor/internal/domain/search"
	"github.com/bigkaa/componentor/internal/domain/validation"
	"github.com/bigkaa/componentor/internal/repository"
)

// AssemblyService — сервис сборок.
type AssemblyService struct {
	stores    *repository.Stores
	tx        Transactor
	validator *validation.Validator
	logger    *slog.Logger
}

// NewAssemblyService создаёт сервис сборок.
func NewAssemblyService(
	stores *repository.Stores,
	tx Transactor,
	validator *validation.Validator,
	logger *slog.Logger,
) *AssemblyService {
	return &AssemblyService{
		stores:    stores,
		tx:        tx,
		validator: validator,
		logger:    logger.With(slog.String("component", "assembly_service")),
	}
}

// Save создаёт (id == nil) или обновляет сборку и применяет директивы состава.
//
// Все проверки выполняются до записи: поля сборки, форма каждой директивы,
// существование деталей, принадлежность строк сборке, отсутствие повторов
// идентификатора строки. При любой ошибке проверки ничего не записывается
// и возвращаются ValidationErrors по всем полям сразу.
//
// Запись сборки и директивы (в заданном порядке) выполняются в одной транзакции.
func (s *AssemblyService) Save(
	ctx context.Context,
	id *string,
	in model.AssemblyInput,
	lines []model.LineDirective,
) (a *model.Assembly, err error) {
	operation := "create"
	if id != nil {
		operation = "update"
	}
	defer func() { observe(entityAssembly, operation, err) }()

	if err := s.Check(ctx, id, in, lines); err != nil {
		return nil, err
	}
	in = normalizeAssembly(in)

	a = &model.Assembly{Designation: in.Designation, Name: in.Name}
	if id != nil {
		a.ID = *id
	} else {
		a.ID = newID()
	}

	err = s.tx.WithinTx(ctx, func(st *repository.Stores) error {
		if id == nil {
			if err := st.Assemblies.Create(ctx, a); err != nil {
				return err
			}
		} else if err := st.Assemblies.Update(ctx, a); err != nil {
			return err
		}
		return applyLines(ctx, st, a.ID, lines)
	})
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return nil, err
		}
		if err = mapNotFound(err); err == ErrNotFound {
			return nil, err
		}
		s.logger.Error("Ошибка сохранения сборки", slog.String("id", a.ID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("сохранение сборки: %w", err)
	}

	s.logger.Info("Сборка сохранена",
		slog.String("id", a.ID),
		slog.String("operation", operation),
		slog.Int("directives", len(lines)),
	)
	return a, nil
}

// Check выполняет все проверки Save, ничего не записывая.
// Форма сборки вызывает его, когда часть строк не удалось разобрать,
// чтобы показать остальные ошибки вместе с ошибками разбора.
func (s *AssemblyService) Check(
	ctx context.Context,
	id *string,
	in model.AssemblyInput,
	lines []model.LineDirective,
) error {
	if id != nil {
		if _, err := s.Get(ctx, *id); err != nil {
			return err
		}
	}
	return s.validate(ctx, id, normalizeAssembly(in), lines)
}

// validate проверяет поля сборки и все директивы состава.
func (s *AssemblyService) validate(
	ctx context.Context,
	id *string,
	in model.AssemblyInput,
	lines []model.LineDirective,
) error {
	errs := s.validator.Assembly(in)

	seen := make(map[string]int, len(lines))
	for i, d := range lines {
		lineErrs := s.validator.Line(i, d)
		errs = append(errs, lineErrs...)

		partField := fmt.Sprintf("lines[%d].part_id", i)
		lineField := fmt.Sprintf("lines[%d].line_id", i)

		if d.Op == model.LineUpsert && !lineErrs.Has(partField) {
			if _, err := s.stores.Parts.GetByID(ctx, d.PartID); err != nil {
				if !errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("проверка детали: %w", err)
				}
				errs.Add(partField, validation.ReasonNotFound)
			}
		}

		if d.LineID == nil || lineErrs.Has(lineField) {
			continue
		}
		if _, dup := seen[*d.LineID]; dup {
			errs.Add(lineField, validation.ReasonDuplicate)
			continue
		}
		seen[*d.LineID] = i

		// Строка должна существовать и принадлежать этой сборке.
		if id == nil {
			errs.Add(lineField, validation.ReasonNotFound)
			continue
		}
		line, err := s.stores.AssemblyParts.GetByID(ctx, *d.LineID)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("проверка строки состава: %w", err)
			}
			errs.Add(lineField, validation.ReasonNotFound)
			continue
		}
		if line.AssemblyID != *id {
			errs.Add(lineField, validation.ReasonNotFound)
		}
	}

	return errs.Err()
}

// applyLines применяет директивы состава внутри транзакции.
// Строки, исчезнувшие или переставшие ссылаться на существующую деталь
// после проверки, дают ValidationErrors и откат транзакции.
func applyLines(ctx context.Context, st *repository.Stores, assemblyID string, lines []model.LineDirective) error {
	for i, d := range lines {
		switch d.Op {
		case model.LineDelete:
			if err := st.AssemblyParts.Delete(ctx, *d.LineID); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return ValidationErrors{{Field: fmt.Sprintf("lines[%d].line_id", i), Reason: validation.ReasonNotFound}}
				}
				return err
			}

		case model.LineUpsert:
			ap := &model.AssemblyPart{AssemblyID: assemblyID, PartID: d.PartID, PartCount: *d.Quantity}
			var err error
			if d.LineID != nil {
				ap.ID = *d.LineID
				err = st.AssemblyParts.Update(ctx, ap)
			} else {
				ap.ID = newID()
				err = st.AssemblyParts.Create(ctx, ap)
			}
			switch {
			case err == nil:
			case errors.Is(err, repository.ErrReferenced):
				return ValidationErrors{{Field: fmt.Sprintf("lines[%d].part_id", i), Reason: validation.ReasonNotFound}}
			case errors.Is(err, repository.ErrNotFound):
				return ValidationErrors{{Field: fmt.Sprintf("lines[%d].line_id", i), Reason: validation.ReasonNotFound}}
			default:
				return err
			}
		}
	}
	return nil
}

// Get возвращает сборку по идентификатору.
func (s *AssemblyService) Get(ctx context.Context, id string) (*model.Assembly, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	a, err := s.stores.Assemblies.GetByID(ctx, id)
	if err != nil {
		if err = mapNotFound(err); err == ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("получение сборки: %w", err)
	}
	return a, nil
}

// List возвращает сборки в порядке создания.
// query — подстрока обозначения или имени без учёта регистра.
func (s *AssemblyService) List(ctx context.Context, query string) ([]*model.Assembly, error) {
	items, err := s.stores.Assemblies.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("список сборок: %w", err)
	}
	return items, nil
}

// Lines возвращает строки состава сборки.
// materialQuery — подстрока названия материала детали, пустая строка — все строки.
func (s *AssemblyService) Lines(ctx context.Context, assemblyID, materialQuery string) ([]*model.AssemblyLine, error) {
	if _, err := s.Get(ctx, assemblyID); err != nil {
		return nil, err
	}
	lines, err := s.stores.AssemblyParts.ListByAssembly(ctx, assemblyID)
	if err != nil {
		return nil, fmt.Errorf("состав сборки: %w", err)
	}
	return search.Filter(lines, materialQuery, func(l *model.AssemblyLine) []string {
		return []string{l.MaterialName}
	}), nil
}

// Delete удаляет сборку без проверки ссылок; строки состава удаляются каскадно.
func (s *AssemblyService) Delete(ctx context.Context, id string) (err error) {
	defer func() { observe(entityAssembly, "delete", err) }()

	if err := checkID(id); err != nil {
		return err
	}
	if err := s.stores.Assemblies.Delete(ctx, id); err != nil {
		if err = mapNotFound(err); err == ErrNotFound {
			return err
		}
		s.logger.Error("Ошибка удаления сборки", slog.String("id", id), slog.String("error", err.Error()))
		return fmt.Errorf("удаление сборки: %w", err)
	}

	s.logger.Info("Сборка удалена", slog.String("id", id))
	return nil
}
