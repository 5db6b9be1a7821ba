// Пакет repository — слой доступа к данным PostgreSQL.
// Все запросы — чистый SQL через pgx, без ORM.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bigkaa/componentor/internal/domain/search"
)

// Ошибки слоя репозиториев.
var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("запись не найдена")
	// ErrConflict — конфликт уникальности (дублирующийся ресурс).
	ErrConflict = errors.New("конфликт — запись уже существует")
	// ErrReferenced — нарушение внешнего ключа: на запись ссылаются
	// (при удалении) или ссылка указывает на отсутствующую запись (при записи).
	ErrReferenced = errors.New("нарушение ссылочной целостности")
)

// DBTX — интерфейс для выполнения SQL-запросов.
// Реализуется как *pgxpool.Pool, так и pgx.Tx, что позволяет
// использовать репозитории как внутри, так и вне транзакций.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Stores — набор репозиториев каталога поверх одного DBTX.
// Внутри транзакции все репозитории работают в ней.
type Stores struct {
	Materials     MaterialRepository
	Parts         PartRepository
	Assemblies    AssemblyRepository
	AssemblyParts AssemblyPartRepository
}

// NewStores создаёт набор репозиториев поверх пула или транзакции.
func NewStores(db DBTX) *Stores {
	return &Stores{
		Materials:     NewMaterialRepository(db),
		Parts:         NewPartRepository(db),
		Assemblies:    NewAssemblyRepository(db),
		AssemblyParts: NewAssemblyPartRepository(db),
	}
}

// TxRunner позволяет выполнять операции в транзакции.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner создаёт TxRunner для управления транзакциями.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunInTx выполняет fn внутри транзакции.
// При ошибке fn — транзакция откатывается.
// При успехе — коммитится.
func (r *TxRunner) RunInTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // откат после коммита — no-op

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}
	return nil
}

// WithinTx выполняет fn с набором репозиториев, привязанных к одной транзакции.
func (r *TxRunner) WithinTx(ctx context.Context, fn func(stores *Stores) error) error {
	return r.RunInTx(ctx, func(tx pgx.Tx) error {
		return fn(NewStores(tx))
	})
}

// isUniqueViolation проверяет, является ли ошибка нарушением уникальности PostgreSQL.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// isForeignKeyViolation проверяет, является ли ошибка нарушением внешнего ключа PostgreSQL.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" // foreign_key_violation
	}
	return false
}

// buildSearchWhere строит условие поиска подстроки без учёта регистра
// по любому из столбцов (ИЛИ). Пустой query — пустое условие.
// startArg — номер $-параметра шаблона.
func buildSearchWhere(query string, columns []string, startArg int) (clause string, args []any) {
	if query == "" || len(columns) == 0 {
		return "", nil
	}

	conditions := make([]string, 0, len(columns))
	for _, col := range columns {
		conditions = append(conditions, fmt.Sprintf("%s ILIKE $%d", col, startArg))
	}
	return "(" + strings.Join(conditions, " OR ") + ")", []any{search.LikePattern(query)}
}
