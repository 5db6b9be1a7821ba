package repository

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/bigkaa/componentor/internal/config"
	"github.com/bigkaa/componentor/internal/database"
	"github.com/bigkaa/componentor/internal/domain/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// setupTestDB запускает PostgreSQL контейнер, применяет миграции.
// Возвращает pgxpool.Pool, закрываемый в t.Cleanup.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("Пропуск интеграционного теста: TEST_INTEGRATION не установлена")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		postgres.WithDatabase("componentor_test"),
		postgres.WithUsername("componentor"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Не удалось запустить PostgreSQL контейнер: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Ошибка остановки контейнера: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Не удалось получить host контейнера: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Не удалось получить port контейнера: %v", err)
	}

	// Настраиваем env для config.Load()
	t.Setenv("CM_DB_HOST", host)
	t.Setenv("CM_DB_PORT", port.Port())
	t.Setenv("CM_DB_NAME", "componentor_test")
	t.Setenv("CM_DB_USER", "componentor")
	t.Setenv("CM_DB_PASSWORD", "test-password")
	t.Setenv("CM_DB_SSL_MODE", "disable")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// Применяем миграции
	if err := database.Migrate(cfg, logger); err != nil {
		t.Fatalf("Ошибка миграций: %v", err)
	}

	// Подключаемся
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		t.Fatalf("Ошибка подключения: %v", err)
	}
	t.Cleanup(func() { pool.Close() })

	return pool
}

func floatPtr(v float64) *float64 { return &v }

// createMaterial создаёт материал для теста.
func createMaterial(t *testing.T, stores *Stores, name string) *model.Material {
	t.Helper()
	m := &model.Material{ID: uuid.New().String(), Name: name}
	if err := stores.Materials.Create(context.Background(), m); err != nil {
		t.Fatalf("Create(material %q) ошибка: %v", name, err)
	}
	return m
}

// createPart создаёт деталь для теста.
func createPart(t *testing.T, stores *Stores, designation, name, materialID string) *model.Part {
	t.Helper()
	p := &model.Part{ID: uuid.New().String(), Designation: designation, Name: name, MaterialID: materialID}
	if err := stores.Parts.Create(context.Background(), p); err != nil {
		t.Fatalf("Create(part %q) ошибка: %v", designation, err)
	}
	return p
}

// --- Тесты buildSearchWhere ---

func TestBuildSearchWhere_Empty(t *testing.T) {
	where, args := buildSearchWhere("", []string{"name"}, 1)
	if where != "" {
		t.Errorf("where = %q, ожидалась пустая строка", where)
	}
	if len(args) != 0 {
		t.Errorf("args count = %d, ожидался 0", len(args))
	}
}

func TestBuildSearchWhere_OrAcrossColumns(t *testing.T) {
	where, args := buildSearchWhere("bly_2", []string{"designation", "name"}, 3)

	expected := "(designation ILIKE $3 OR name ILIKE $3)"
	if where != expected {
		t.Errorf("where = %q, ожидался %q", where, expected)
	}
	if len(args) != 1 {
		t.Fatalf("args count = %d, ожидался 1", len(args))
	}
	if args[0] != `%bly\_2%` {
		t.Errorf("args[0] = %v, ожидался экранированный шаблон", args[0])
	}
}

// --- Тесты MaterialRepository ---

func TestMaterialCRUD(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	repo := NewMaterialRepository(pool)

	m := &model.Material{ID: uuid.New().String(), Name: "Steel 45", Density: floatPtr(7.85)}

	// Create
	if err := repo.Create(ctx, m); err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}
	if m.CreatedAt.IsZero() || m.UpdatedAt.IsZero() {
		t.Error("временные метки не установлены")
	}

	// GetByID
	got, err := repo.GetByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetByID() ошибка: %v", err)
	}
	if got.Name != "Steel 45" || got.Density == nil || *got.Density != 7.85 {
		t.Errorf("GetByID() = %+v, ожидали Steel 45 / 7.85", got)
	}

	// Плотность не задана — NULL, а не 0
	air := &model.Material{ID: uuid.New().String(), Name: "Unknown"}
	if err := repo.Create(ctx, air); err != nil {
		t.Fatalf("Create() ошибка: %v", err)
	}
	gotAir, _ := repo.GetByID(ctx, air.ID)
	if gotAir.Density != nil {
		t.Errorf("Density = %v, ожидали nil", *gotAir.Density)
	}

	// Update
	createdAt := m.CreatedAt
	updatedAt := m.UpdatedAt
	m.Name = "Steel 40"
	m.Density = nil
	if err := repo.Update(ctx, m); err != nil {
		t.Fatalf("Update() ошибка: %v", err)
	}
	if !m.CreatedAt.Equal(createdAt) {
		t.Errorf("CreatedAt изменился: %v -> %v", createdAt, m.CreatedAt)
	}
	if !m.UpdatedAt.After(updatedAt) {
		t.Errorf("UpdatedAt не увеличился: %v -> %v", updatedAt, m.UpdatedAt)
	}

	// List с поиском без учёта регистра
	list, err := repo.List(ctx, "STEEL")
	if err != nil {
		t.Fatalf("List() ошибка: %v", err)
	}
	if len(list) != 1 || list[0].ID != m.ID {
		t.Errorf("List(STEEL) вернул %d записей, ожидали только %s", len(list), m.ID)
	}

	all, _ := repo.List(ctx, "")
	if len(all) != 2 || all[0].ID != m.ID || all[1].ID != air.ID {
		t.Errorf("List() нарушен порядок создания: %v", all)
	}

	// Delete
	if err := repo.Delete(ctx, m.ID); err != nil {
		t.Fatalf("Delete() ошибка: %v", err)
	}
	if _, err := repo.GetByID(ctx, m.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("После Delete ожидали ErrNotFound, получили: %v", err)
	}
	if err := repo.Delete(ctx, m.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Повторный Delete: ожидали ErrNotFound, получили: %v", err)
	}
}

func TestMaterialDelete_Referenced(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	stores := NewStores(pool)

	m := createMaterial(t, stores, "Copper")
	createPart(t, stores, "10.01", "Wire", m.ID)

	err := stores.Materials.Delete(ctx, m.ID)
	if !errors.Is(err, ErrReferenced) {
		t.Fatalf("Delete() используемого материала: ожидали ErrReferenced, получили %v", err)
	}

	count, err := stores.Parts.CountByMaterial(ctx, m.ID)
	if err != nil {
		t.Fatalf("CountByMaterial() ошибка: %v", err)
	}
	if count != 1 {
		t.Errorf("CountByMaterial() = %d, ожидали 1", count)
	}
}

// --- Тесты PartRepository ---

func TestPartCRUD(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	stores := NewStores(pool)

	steel := createMaterial(t, stores, "Steel")
	brass := createMaterial(t, stores, "Brass")

	p := createPart(t, stores, "20.15-1", "Bracket", steel.ID)
	createPart(t, stores, "30.01", "Plate 20", brass.ID)

	got, err := stores.Parts.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID() ошибка: %v", err)
	}
	if got.MaterialName != "Steel" {
		t.Errorf("MaterialName = %q, ожидали Steel", got.MaterialName)
	}

	// Поиск: ИЛИ по обозначению и имени
	list, err := stores.Parts.List(ctx, "20")
	if err != nil {
		t.Fatalf("List() ошибка: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("List(20) вернул %d записей, ожидали 2", len(list))
	}

	byMaterial, err := stores.Parts.ListByMaterial(ctx, brass.ID)
	if err != nil {
		t.Fatalf("ListByMaterial() ошибка: %v", err)
	}
	if len(byMaterial) != 1 || byMaterial[0].Name != "Plate 20" {
		t.Errorf("ListByMaterial() = %v, ожидали Plate 20", byMaterial)
	}

	// Смена материала
	p.MaterialID = brass.ID
	if err := stores.Parts.Update(ctx, p); err != nil {
		t.Fatalf("Update() ошибка: %v", err)
	}
	got, _ = stores.Parts.GetByID(ctx, p.ID)
	if got.MaterialName != "Brass" {
		t.Errorf("после Update MaterialName = %q, ожидали Brass", got.MaterialName)
	}

	// Несуществующий материал
	p.MaterialID = uuid.New().String()
	if err := stores.Parts.Update(ctx, p); !errors.Is(err, ErrReferenced) {
		t.Errorf("Update() с отсутствующим материалом: ожидали ErrReferenced, получили %v", err)
	}
}

// --- Тесты AssemblyRepository и AssemblyPartRepository ---

func TestAssemblyComposition(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	stores := NewStores(pool)

	steel := createMaterial(t, stores, "Stainless Steel")
	copper := createMaterial(t, stores, "Copper")
	bolt := createPart(t, stores, "10.01", "Bolt", steel.ID)
	wire := createPart(t, stores, "10.02", "Wire", copper.ID)

	a := &model.Assembly{ID: uuid.New().String(), Designation: "10.00", Name: "assembly 1"}
	if err := stores.Assemblies.Create(ctx, a); err != nil {
		t.Fatalf("Create(assembly) ошибка: %v", err)
	}

	lineBolt := &model.AssemblyPart{ID: uuid.New().String(), AssemblyID: a.ID, PartID: bolt.ID, PartCount: 4}
	lineWire := &model.AssemblyPart{ID: uuid.New().String(), AssemblyID: a.ID, PartID: wire.ID, PartCount: 1}
	for _, l := range []*model.AssemblyPart{lineBolt, lineWire} {
		if err := stores.AssemblyParts.Create(ctx, l); err != nil {
			t.Fatalf("Create(line) ошибка: %v", err)
		}
	}

	lines, err := stores.AssemblyParts.ListByAssembly(ctx, a.ID)
	if err != nil {
		t.Fatalf("ListByAssembly() ошибка: %v", err)
	}
	if len(lines) != 2 || lines[0].ID != lineBolt.ID || lines[1].ID != lineWire.ID {
		t.Fatalf("ListByAssembly() = %v, ожидали болт и провод в порядке добавления", lines)
	}
	if lines[0].MaterialName != "Stainless Steel" || lines[0].PartDesignation != "10.01" {
		t.Errorf("строка без данных детали/материала: %+v", lines[0])
	}

	byPart, err := stores.AssemblyParts.ListByPart(ctx, wire.ID)
	if err != nil {
		t.Fatalf("ListByPart() ошибка: %v", err)
	}
	if len(byPart) != 1 || byPart[0].AssemblyName != "assembly 1" {
		t.Errorf("ListByPart() = %v, ожидали строку assembly 1", byPart)
	}

	// Деталь, входящая в сборку, не удаляется
	if err := stores.Parts.Delete(ctx, bolt.ID); !errors.Is(err, ErrReferenced) {
		t.Errorf("Delete() используемой детали: ожидали ErrReferenced, получили %v", err)
	}

	// Update строки
	lineBolt.PartCount = 5
	if err := stores.AssemblyParts.Update(ctx, lineBolt); err != nil {
		t.Fatalf("Update(line) ошибка: %v", err)
	}
	gotLine, _ := stores.AssemblyParts.GetByID(ctx, lineBolt.ID)
	if gotLine.PartCount != 5 {
		t.Errorf("PartCount = %d, ожидали 5", gotLine.PartCount)
	}

	// Удаление сборки каскадно удаляет строки
	if err := stores.Assemblies.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete(assembly) ошибка: %v", err)
	}
	if _, err := stores.AssemblyParts.GetByID(ctx, lineWire.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("строка состава осталась после удаления сборки: %v", err)
	}
	count, _ := stores.AssemblyParts.CountByPart(ctx, bolt.ID)
	if count != 0 {
		t.Errorf("CountByPart() = %d, ожидали 0", count)
	}
}

// --- Тесты TxRunner ---

func TestWithinTx_RollbackOnError(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	runner := NewTxRunner(pool)

	id := uuid.New().String()
	errAbort := errors.New("прерывание")
	err := runner.WithinTx(ctx, func(stores *Stores) error {
		if err := stores.Materials.Create(ctx, &model.Material{ID: id, Name: "Temp"}); err != nil {
			return err
		}
		return errAbort
	})
	if !errors.Is(err, errAbort) {
		t.Fatalf("WithinTx() вернул %v, ожидали исходную ошибку", err)
	}

	if _, err := NewMaterialRepository(pool).GetByID(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("материал сохранился после отката: %v", err)
	}
}

func TestLockByID_NotFound(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	runner := NewTxRunner(pool)

	err := runner.WithinTx(ctx, func(stores *Stores) error {
		return stores.Materials.LockByID(ctx, uuid.New().String())
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("LockByID() отсутствующей записи: ожидали ErrNotFound, получили %v", err)
	}

	err = runner.WithinTx(ctx, func(stores *Stores) error {
		return stores.Parts.LockByID(ctx, uuid.New().String())
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("LockByID() отсутствующей детали: ожидали ErrNotFound, получили %v", err)
	}
}
