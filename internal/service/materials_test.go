package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/bigkaa/componentor/internal/domain/model"
	"github.com/bigkaa/componentor/internal/domain/validation"
)

func floatPtr(v float64) *float64 { return &v }

// mustMaterial создаёт материал или завершает тест.
func mustMaterial(t *testing.T, c *testCatalog, name string) *model.Material {
	t.Helper()
	m, err := c.materials.Create(context.Background(), model.MaterialInput{Name: name})
	if err != nil {
		t.Fatalf("Create(material %q) вернул ошибку: %v", name, err)
	}
	return m
}

func TestMaterialCreate_RoundTrip(t *testing.T) {
	c := newTestCatalog()
	ctx := context.Background()

	created, err := c.materials.Create(ctx, model.MaterialInput{Name: "Steel 45", Density: floatPtr(7.85)})
	if err != nil {
		t.Fatalf("Create() вернул ошибку: %v", err)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("временные метки не установлены")
	}

	got, err := c.materials.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() вернул ошибку: %v", err)
	}
	if got.Name != created.Name || got.Density == nil || *got.Density != 7.85 {
		t.Errorf("Get() = %+v, ожидали %+v", got, created)
	}

	updated, err := c.materials.Update(ctx, created.ID, model.MaterialInput{Name: "Steel 40"})
	if err != nil {
		t.Fatalf("Update() вернул ошибку: %v", err)
	}
	if updated.Density != nil {
		t.Errorf("Density = %v, ожидали nil (не указана)", *updated.Density)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt изменился при обновлении")
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Errorf("UpdatedAt уменьшился: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}
}

func TestMaterialCreate_InvalidName(t *testing.T) {
	names := []string{"", "   ", "steel_1", "Сталь", "st-3", "a/b"}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			c := newTestCatalog()
			_, err := c.materials.Create(context.Background(), model.MaterialInput{Name: name})
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("Create(%q): ожидали ErrValidation, получили %v", name, err)
			}
			if len(c.db.state.materials) != 0 {
				t.Errorf("после отклонённого Create в хранилище %d материалов", len(c.db.state.materials))
			}
		})
	}
}

func TestMaterialUpdate_InvalidLeavesStoreUnchanged(t *testing.T) {
	c := newTestCatalog()
	ctx := context.Background()
	m := mustMaterial(t, c, "Copper")

	_, err := c.materials.Update(ctx, m.ID, model.MaterialInput{Name: "copper#2"})
	var verrs ValidationErrors
	if !errors.As(err, &verrs) || verrs.Reason("name") != validation.ReasonCharset {
		t.Fatalf("Update(): ожидали ошибку charset по name, получили %v", err)
	}

	got, _ := c.materials.Get(ctx, m.ID)
	if got.Name != "Copper" {
		t.Errorf("Name = %q после отклонённого Update, ожидали Copper", got.Name)
	}
}

func TestMaterialGet_NotFound(t *testing.T) {
	c := newTestCatalog()
	ctx := context.Background()

	for _, id := range []string{uuid.New().String(), "42", ""} {
		if _, err := c.materials.Get(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%q): ожидали ErrNotFound, получили %v", id, err)
		}
	}
	if _, err := c.materials.Update(ctx, uuid.New().String(), model.MaterialInput{Name: "Steel"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() отсутствующего: ожидали ErrNotFound, получили %v", err)
	}
}

func TestMaterialList_SearchByName(t *testing.T) {
	c := newTestCatalog()
	ctx := context.Background()
	mustMaterial(t, c, "Stainless Steel")
	mustMaterial(t, c, "Copper")
	mustMaterial(t, c, "Steel 45")

	list, err := c.materials.List(ctx, "steel")
	if err != nil {
		t.Fatalf("List() вернул ошибку: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Stainless Steel" || list[1].Name != "Steel 45" {
		t.Errorf("List(steel) = %v, ожидали два стальных материала в порядке создания", list)
	}

	all, _ := c.materials.List(ctx, "")
	if len(all) != 3 {
		t.Errorf("List() без запроса вернул %d, ожидали 3", len(all))
	}
}

func TestMaterialDelete_Guarded(t *testing.T) {
	c := newTestCatalog()
	ctx := context.Background()
	used := mustMaterial(t, c, "Steel")
	free := mustMaterial(t, c, "Copper")
	mustPart(t, c, "10.01", "Bolt", used.ID)

	outcome, err := c.materials.Delete(ctx, used.ID)
	if err != nil {
		t.Fatalf("Delete() используемого материала вернул ошибку: %v", err)
	}
	if outcome != model.Blocked {
		t.Errorf("outcome = %v, ожидали blocked", outcome)
	}
	if _, err := c.materials.Get(ctx, used.ID); err != nil {
		t.Errorf("используемый материал удалён: %v", err)
	}

	outcome, err = c.materials.Delete(ctx, free.ID)
	if err != nil {
		t.Fatalf("Delete() свободного материала вернул ошибку: %v", err)
	}
	if outcome != model.Deleted {
		t.Errorf("outcome = %v, ожидали deleted", outcome)
	}
	if _, err := c.materials.Get(ctx, free.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("материал существует после удаления: %v", err)
	}

	if _, err := c.materials.Delete(ctx, free.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("повторный Delete(): ожидали ErrNotFound, получили %v", err)
	}
}

func TestMaterialDelete_ForeignKeyViolationIsBlocked(t *testing.T) {
	c := newTestCatalog()
	ctx := context.Background()
	m := mustMaterial(t, c, "Steel")
	mustPart(t, c, "10.01", "Bolt", m.ID)

	// Подсчёт не видит зависимых, отказ приходит от внешнего ключа при удалении.
	c.db.hideDependents = true

	outcome, err := c.materials.Delete(ctx, m.ID)
	if err != nil {
		t.Fatalf("Delete() вернул ошибку: %v", err)
	}
	if outcome != model.Blocked {
		t.Errorf("outcome = %v, ожидали blocked", outcome)
	}
	if len(c.db.state.materials) != 1 {
		t.Errorf("материал удалён несмотря на ссылку")
	}
}

func TestMaterialDelete_StorageFaultPropagates(t *testing.T) {
	c := newTestCatalog()
	ctx := context.Background()
	m := mustMaterial(t, c, "Steel")
	c.db.fail["materials.delete"] = true

	outcome, err := c.materials.Delete(ctx, m.ID)
	if !errors.Is(err, errStorage) {
		t.Fatalf("Delete(): ожидали сбой хранилища, получили outcome=%v err=%v", outcome, err)
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) {
		t.Errorf("сбой хранилища классифицирован как ожидаемая ошибка: %v", err)
	}
}

func TestMaterialParts_WhereUsed(t *testing.T) {
	c := newTestCatalog()
	ctx := context.Background()
	steel := mustMaterial(t, c, "Steel")
	copper := mustMaterial(t, c, "Copper")
	mustPart(t, c, "10.01", "Bolt", steel.ID)
	mustPart(t, c, "10.02", "Wire", copper.ID)
	mustPart(t, c, "10.03", "Nut", steel.ID)

	parts, err := c.materials.Parts(ctx, steel.ID)
	if err != nil {
		t.Fatalf("Parts() вернул ошибку: %v", err)
	}
	if len(parts) != 2 || parts[0].Name != "Bolt" || parts[1].Name != "Nut" {
		t.Errorf("Parts() = %v, ожидали Bolt и Nut", parts)
	}

	if _, err := c.materials.Parts(ctx, uuid.New().String()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Parts() отсутствующего материала: ожидали ErrNotFound, получили %v", err)
	}
}
