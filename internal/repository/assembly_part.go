package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/componentor/internal/domain/model"
)

// AssemblyPartRepository — интерфейс для таблицы assembly_parts (состав сборок).
type AssemblyPartRepository interface {
	// Create добавляет строку состава. Отсутствующая сборка или деталь — ErrReferenced.
	Create(ctx context.Context, ap *model.AssemblyPart) error
	// GetByID возвращает строку состава по UUID.
	GetByID(ctx context.Context, id string) (*model.AssemblyPart, error)
	// Update меняет деталь и количество строки.
	Update(ctx context.Context, ap *model.AssemblyPart) error
	// Delete удаляет строку состава.
	Delete(ctx context.Context, id string) error
	// ListByAssembly возвращает строки сборки с данными деталей и материалов.
	ListByAssembly(ctx context.Context, assemblyID string) ([]*model.AssemblyLine, error)
	// ListByPart возвращает строки всех сборок, в которые входит деталь.
	ListByPart(ctx context.Context, partID string) ([]*model.AssemblyLine, error)
	// CountByPart возвращает количество строк состава, ссылающихся на деталь.
	CountByPart(ctx context.Context, partID string) (int, error)
}

// assemblyPartRepo — реализация AssemblyPartRepository.
type assemblyPartRepo struct {
	db DBTX
}

// NewAssemblyPartRepository создаёт репозиторий состава сборок.
func NewAssemblyPartRepository(db DBTX) AssemblyPartRepository {
	return &assemblyPartRepo{db: db}
}

// assemblyLineSelect — выборка строки состава с деталью, материалом и сборкой.
const assemblyLineSelect = `
	SELECT ap.id, ap.assembly_id, ap.part_id, ap.part_count, ap.created_at, ap.updated_at,
		p.designation, p.name, m.id, m.name, a.designation, a.name
	FROM assembly_parts ap
	JOIN parts p ON p.id = ap.part_id
	JOIN materials m ON m.id = p.material_id
	JOIN assemblies a ON a.id = ap.assembly_id`

func (r *assemblyPartRepo) Create(ctx context.Context, ap *model.AssemblyPart) error {
	query := `
		INSERT INTO assembly_parts (id, assembly_id, part_id, part_count)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query, ap.ID, ap.AssemblyID, ap.PartID, ap.PartCount).
		Scan(&ap.CreatedAt, &ap.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: сборка %s или деталь %s не существует", ErrReferenced, ap.AssemblyID, ap.PartID)
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: строка состава %s уже существует", ErrConflict, ap.ID)
		}
		return fmt.Errorf("ошибка создания строки состава: %w", err)
	}
	return nil
}

func (r *assemblyPartRepo) GetByID(ctx context.Context, id string) (*model.AssemblyPart, error) {
	query := `
		SELECT id, assembly_id, part_id, part_count, created_at, updated_at
		FROM assembly_parts
		WHERE id = $1`

	ap := &model.AssemblyPart{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&ap.ID, &ap.AssemblyID, &ap.PartID, &ap.PartCount, &ap.CreatedAt, &ap.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения строки состава: %w", err)
	}
	return ap, nil
}

func (r *assemblyPartRepo) Update(ctx context.Context, ap *model.AssemblyPart) error {
	query := `
		UPDATE assembly_parts
		SET part_id = $2, part_count = $3, updated_at = clock_timestamp()
		WHERE id = $1
		RETURNING assembly_id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, ap.ID, ap.PartID, ap.PartCount).
		Scan(&ap.AssemblyID, &ap.CreatedAt, &ap.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: деталь %s не существует", ErrReferenced, ap.PartID)
		}
		return fmt.Errorf("ошибка обновления строки состава: %w", err)
	}
	return nil
}

func (r *assemblyPartRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM assembly_parts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления строки состава: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *assemblyPartRepo) ListByAssembly(ctx context.Context, assemblyID string) ([]*model.AssemblyLine, error) {
	return r.queryLines(ctx,
		assemblyLineSelect+"\n\tWHERE ap.assembly_id = $1\n\tORDER BY ap.created_at, ap.id",
		assemblyID)
}

func (r *assemblyPartRepo) ListByPart(ctx context.Context, partID string) ([]*model.AssemblyLine, error) {
	return r.queryLines(ctx,
		assemblyLineSelect+"\n\tWHERE ap.part_id = $1\n\tORDER BY a.created_at, a.id, ap.created_at, ap.id",
		partID)
}

func (r *assemblyPartRepo) queryLines(ctx context.Context, sql string, args ...any) ([]*model.AssemblyLine, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения строк состава: %w", err)
	}
	defer rows.Close()

	result := make([]*model.AssemblyLine, 0)
	for rows.Next() {
		l := &model.AssemblyLine{}
		if err := rows.Scan(
			&l.ID, &l.AssemblyID, &l.PartID, &l.PartCount, &l.CreatedAt, &l.UpdatedAt,
			&l.PartDesignation, &l.PartName, &l.MaterialID, &l.MaterialName,
			&l.AssemblyDesignation, &l.AssemblyName,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки состава: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}

func (r *assemblyPartRepo) CountByPart(ctx context.Context, partID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM assembly_parts WHERE part_id = $1`, partID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта строк состава детали: %w", err)
	}
	return count, nil
}
