package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/componentor/internal/domain/model"
)

// PartRepository — интерфейс CRUD для таблицы parts.
type PartRepository interface {
	// Create создаёт деталь. Отсутствующий материал — ErrReferenced.
	Create(ctx context.Context, p *model.Part) error
	// GetByID возвращает деталь с названием материала.
	GetByID(ctx context.Context, id string) (*model.Part, error)
	// LockByID блокирует строку детали до конца транзакции.
	LockByID(ctx context.Context, id string) error
	// List возвращает детали в порядке создания; query — подстрока обозначения или имени.
	List(ctx context.Context, query string) ([]*model.Part, error)
	// ListByMaterial возвращает детали, изготовленные из материала.
	ListByMaterial(ctx context.Context, materialID string) ([]*model.Part, error)
	// CountByMaterial возвращает количество деталей, ссылающихся на материал.
	CountByMaterial(ctx context.Context, materialID string) (int, error)
	// Update обновляет обозначение, имя и материал.
	Update(ctx context.Context, p *model.Part) error
	// Delete удаляет деталь.
	Delete(ctx context.Context, id string) error
}

// partRepo — реализация PartRepository.
type partRepo struct {
	db DBTX
}

// NewPartRepository создаёт репозиторий деталей.
func NewPartRepository(db DBTX) PartRepository {
	return &partRepo{db: db}
}

// partColumns — столбцы выборки детали вместе с названием материала.
const partColumns = `
	p.id, p.designation, p.name, p.material_id, m.name, p.created_at, p.updated_at`

func scanPart(row pgx.Row) (*model.Part, error) {
	p := &model.Part{}
	err := row.Scan(&p.ID, &p.Designation, &p.Name, &p.MaterialID, &p.MaterialName,
		&p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *partRepo) Create(ctx context.Context, p *model.Part) error {
	query := `
		INSERT INTO parts (id, designation, name, material_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query, p.ID, p.Designation, p.Name, p.MaterialID).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: материал %s не существует", ErrReferenced, p.MaterialID)
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: деталь %s уже существует", ErrConflict, p.ID)
		}
		return fmt.Errorf("ошибка создания детали: %w", err)
	}
	return nil
}

func (r *partRepo) GetByID(ctx context.Context, id string) (*model.Part, error) {
	query := `SELECT` + partColumns + `
		FROM parts p
		JOIN materials m ON m.id = p.material_id
		WHERE p.id = $1`

	p, err := scanPart(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения детали: %w", err)
	}
	return p, nil
}

func (r *partRepo) LockByID(ctx context.Context, id string) error {
	var locked string
	err := r.db.QueryRow(ctx, `SELECT id FROM parts WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("ошибка блокировки детали: %w", err)
	}
	return nil
}

func (r *partRepo) List(ctx context.Context, query string) ([]*model.Part, error) {
	where, args := buildSearchWhere(query, []string{"p.designation", "p.name"}, 1)
	if where != "" {
		where = "WHERE " + where
	}

	sql := `SELECT` + partColumns + `
		FROM parts p
		JOIN materials m ON m.id = p.material_id
		` + where + `
		ORDER BY p.created_at, p.id`

	return r.queryParts(ctx, sql, args...)
}

func (r *partRepo) ListByMaterial(ctx context.Context, materialID string) ([]*model.Part, error) {
	sql := `SELECT` + partColumns + `
		FROM parts p
		JOIN materials m ON m.id = p.material_id
		WHERE p.material_id = $1
		ORDER BY p.created_at, p.id`

	return r.queryParts(ctx, sql, materialID)
}

func (r *partRepo) queryParts(ctx context.Context, sql string, args ...any) ([]*model.Part, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка деталей: %w", err)
	}
	defer rows.Close()

	result := make([]*model.Part, 0)
	for rows.Next() {
		p, err := scanPart(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования детали: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *partRepo) CountByMaterial(ctx context.Context, materialID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM parts WHERE material_id = $1`, materialID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта деталей материала: %w", err)
	}
	return count, nil
}

func (r *partRepo) Update(ctx context.Context, p *model.Part) error {
	query := `
		UPDATE parts
		SET designation = $2, name = $3, material_id = $4, updated_at = clock_timestamp()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query, p.ID, p.Designation, p.Name, p.MaterialID).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: материал %s не существует", ErrReferenced, p.MaterialID)
		}
		return fmt.Errorf("ошибка обновления детали: %w", err)
	}
	return nil
}

func (r *partRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM parts WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: деталь входит в сборки", ErrReferenced)
		}
		return fmt.Errorf("ошибка удаления детали: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
