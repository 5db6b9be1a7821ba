package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/componentor/internal/domain/model"
)

// AssemblyRepository — интерфейс CRUD для таблицы assemblies.
type AssemblyRepository interface {
	// Create создаёт сборку без состава.
	Create(ctx context.Context, a *model.Assembly) error
	// GetByID возвращает сборку по UUID.
	GetByID(ctx context.Context, id string) (*model.Assembly, error)
	// List возвращает сборки в порядке создания; query — подстрока обозначения или имени.
	List(ctx context.Context, query string) ([]*model.Assembly, error)
	// Update обновляет обозначение и имя.
	Update(ctx context.Context, a *model.Assembly) error
	// Delete удаляет сборку вместе со строками состава (ON DELETE CASCADE).
	Delete(ctx context.Context, id string) error
}

// assemblyRepo — реализация AssemblyRepository.
type assemblyRepo struct {
	db DBTX
}

// NewAssemblyRepository создаёт репозиторий сборок.
func NewAssemblyRepository(db DBTX) AssemblyRepository {
	return &assemblyRepo{db: db}
}

func (r *assemblyRepo) Create(ctx context.Context, a *model.Assembly) error {
	query := `
		INSERT INTO assemblies (id, designation, name)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query, a.ID, a.Designation, a.Name).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: сборка %s уже существует", ErrConflict, a.ID)
		}
		return fmt.Errorf("ошибка создания сборки: %w", err)
	}
	return nil
}

func (r *assemblyRepo) GetByID(ctx context.Context, id string) (*model.Assembly, error) {
	query := `
		SELECT id, designation, name, created_at, updated_at
		FROM assemblies
		WHERE id = $1`

	a := &model.Assembly{}
	err := r.db.QueryRow(ctx, query, id).Scan(&a.ID, &a.Designation, &a.Name, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения сборки: %w", err)
	}
	return a, nil
}

func (r *assemblyRepo) List(ctx context.Context, query string) ([]*model.Assembly, error) {
	where, args := buildSearchWhere(query, []string{"designation", "name"}, 1)
	if where != "" {
		where = "WHERE " + where
	}

	sql := fmt.Sprintf(`
		SELECT id, designation, name, created_at, updated_at
		FROM assemblies
		%s
		ORDER BY created_at, id`, where)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка сборок: %w", err)
	}
	defer rows.Close()

	result := make([]*model.Assembly, 0)
	for rows.Next() {
		a := &model.Assembly{}
		if err := rows.Scan(&a.ID, &a.Designation, &a.Name, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования сборки: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func (r *assemblyRepo) Update(ctx context.Context, a *model.Assembly) error {
	query := `
		UPDATE assemblies
		SET designation = $2, name = $3, updated_at = clock_timestamp()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query, a.ID, a.Designation, a.Name).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("ошибка обновления сборки: %w", err)
	}
	return nil
}

func (r *assemblyRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM assemblies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления сборки: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
