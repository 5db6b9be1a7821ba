package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/componentor/internal/domain/model"
)

// MaterialRepository — интерфейс CRUD для таблицы materials.
type MaterialRepository interface {
	// Create создаёт материал. ID задаёт вызывающий, временные метки — БД.
	Create(ctx context.Context, m *model.Material) error
	// GetByID возвращает материал по UUID.
	GetByID(ctx context.Context, id string) (*model.Material, error)
	// LockByID блокирует строку материала до конца транзакции (SELECT ... FOR UPDATE).
	LockByID(ctx context.Context, id string) error
	// List возвращает материалы в порядке создания; query — подстрока имени.
	List(ctx context.Context, query string) ([]*model.Material, error)
	// Update обновляет имя и плотность.
	Update(ctx context.Context, m *model.Material) error
	// Delete удаляет материал.
	Delete(ctx context.Context, id string) error
}

// materialRepo — реализация MaterialRepository.
type materialRepo struct {
	db DBTX
}

// NewMaterialRepository создаёт репозиторий материалов.
func NewMaterialRepository(db DBTX) MaterialRepository {
	return &materialRepo{db: db}
}

func (r *materialRepo) Create(ctx context.Context, m *model.Material) error {
	query := `
		INSERT INTO materials (id, name, density)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query, m.ID, m.Name, m.Density).Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: материал %s уже существует", ErrConflict, m.ID)
		}
		return fmt.Errorf("ошибка создания материала: %w", err)
	}
	return nil
}

func (r *materialRepo) GetByID(ctx context.Context, id string) (*model.Material, error) {
	query := `
		SELECT id, name, density, created_at, updated_at
		FROM materials
		WHERE id = $1`

	m := &model.Material{}
	err := r.db.QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &m.Density, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения материала: %w", err)
	}
	return m, nil
}

func (r *materialRepo) LockByID(ctx context.Context, id string) error {
	var locked string
	err := r.db.QueryRow(ctx, `SELECT id FROM materials WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("ошибка блокировки материала: %w", err)
	}
	return nil
}

func (r *materialRepo) List(ctx context.Context, query string) ([]*model.Material, error) {
	where, args := buildSearchWhere(query, []string{"name"}, 1)
	if where != "" {
		where = "WHERE " + where
	}

	sql := fmt.Sprintf(`
		SELECT id, name, density, created_at, updated_at
		FROM materials
		%s
		ORDER BY created_at, id`, where)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка материалов: %w", err)
	}
	defer rows.Close()

	result := make([]*model.Material, 0)
	for rows.Next() {
		m := &model.Material{}
		if err := rows.Scan(&m.ID, &m.Name, &m.Density, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования материала: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (r *materialRepo) Update(ctx context.Context, m *model.Material) error {
	query := `
		UPDATE materials
		SET name = $2, density = $3, updated_at = clock_timestamp()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query, m.ID, m.Name, m.Density).Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("ошибка обновления материала: %w", err)
	}
	return nil
}

func (r *materialRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: материал используется деталями", ErrReferenced)
		}
		return fmt.Errorf("ошибка удаления материала: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
