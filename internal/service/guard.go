// guard.go — защищённое удаление: запись не удаляется, пока на неё ссылаются.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bigkaa/componentor/internal/domain/model"
	"github.com/bigkaa/componentor/internal/repository"
)

// errBlocked откатывает транзакцию удаления, отклонённого внешним ключом.
var errBlocked = errors.New("удаление отклонено: запись используется")

// guardTarget описывает удаляемую запись и её зависимые записи.
type guardTarget struct {
	// lock блокирует строку до конца транзакции
	lock func(ctx context.Context, st *repository.Stores) error
	// dependents считает ссылающиеся записи
	dependents func(ctx context.Context, st *repository.Stores) (int, error)
	// remove удаляет строку
	remove func(ctx context.Context, st *repository.Stores) error
}

// guardedDelete удаляет запись в одной транзакции: блокировка строки,
// подсчёт зависимых, удаление. При наличии зависимых возвращает Blocked
// и оставляет запись без изменений. Нарушение внешнего ключа при самом
// удалении также даёт Blocked. Прочие ошибки хранилища возвращаются как есть.
func guardedDelete(ctx context.Context, tx Transactor, target guardTarget) (model.DeletionOutcome, error) {
	var outcome model.DeletionOutcome

	err := tx.WithinTx(ctx, func(st *repository.Stores) error {
		if err := target.lock(ctx, st); err != nil {
			return err
		}

		n, err := target.dependents(ctx, st)
		if err != nil {
			return err
		}
		if n > 0 {
			outcome = model.Blocked
			return nil
		}

		if err := target.remove(ctx, st); err != nil {
			if errors.Is(err, repository.ErrReferenced) {
				return errBlocked
			}
			return err
		}
		outcome = model.Deleted
		return nil
	})

	switch {
	case err == nil:
		return outcome, nil
	case errors.Is(err, errBlocked):
		return model.Blocked, nil
	case errors.Is(err, repository.ErrNotFound):
		return 0, ErrNotFound
	default:
		return 0, fmt.Errorf("защищённое удаление: %w", err)
	}
}
