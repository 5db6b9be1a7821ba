package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/bigkaa/componentor/internal/domain/model"
	"github.com/bigkaa/componentor/internal/domain/validation"
)

// mustPart создаёт деталь или завершает тест.
func mustPart(t *testing.T, c *testCatalog, designation, name, materialID string) *model.Part {
	t.Helper()
	p, err := c.parts.Create(context.Background(), model.PartInput{
		Designation: designation,
		Name:        name,
		MaterialID:  materialID,
	})
	if err != nil {
		t.Fatalf("Create(part %q) вернул ошибку: %v", designation, err)
	}
	return p
}

func TestPartCreate_RoundTrip(t *testing.T) {
	c := newTestCatalog()
	ctx := context.Background()
	m := mustMaterial(t, c, "Brass")

	created := mustPart(t, c, " 20.15-1 ", "Bracket", m.ID)
	if created.Designation != "20.15-1" {
		t.Errorf("Designation = %q, ожидали обрезку пробелов", created.Designation)
	}
	if created.MaterialName != "Brass" {
		t.Errorf("MaterialName = %q, ожидали Brass", created.MaterialName)
	}

	got, err := c.parts.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() вернул ошибку: %v", err)
	}
	if got.Designation != created.Designation || got.Name != created.Name || got.MaterialID != m.ID {
		t.Errorf("Get() = %+v, ожидали %+v", got, created)
	}
}

func TestPartCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		in     func(materialID string) model.PartInput
		field  string
		reason string
	}{
		{
			name: "буквы в обозначении",
			in: func(id string) model.PartInput {
				return model.PartInput{Designation: "A-1", Name: "Bolt", MaterialID: id}
			},
			field:  "designation",
			reason: validation.ReasonCharset,
		},
		{
			name: "подчёркивание в имени",
			in: func(id string) model.PartInput {
				return model.PartInput{Designation: "10.01", Name: "bolt_1", MaterialID: id}
			},
			field:  "name",
			reason: validation.ReasonCharset,
		},
		{
			name:   "без материала",
			in:     func(string) model.PartInput { return model.PartInput{Designation: "10.01", Name: "Bolt"} },
			field:  "material_id",
			reason: validation.ReasonRequired,
		},
		{
			name: "несуществующий материал",
			in: func(string) model.PartInput {
				return model.PartInput{Designation: "10.01", Name: "Bolt", MaterialID: uuid.New().String()}
			},
			field:  "material_id",
			reason: validation.ReasonNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCatalog()
			m := mustMaterial(t, c, "Steel")

			_, err := c.parts.Create(context.Background(), tt.in(m.ID))
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("ожидали ValidationErrors, получили %v", err)
			}
			if got := verrs.Reason(tt.field); got != tt.reason {
				t.Errorf("Reason(%q) = %q, ожидали %q", tt.field, got, tt.reason)
			}
			if len(c.db.state.parts) != 0 {
				t.Errorf("после отклонённого Create в хранилище %d деталей", len(c.db.state.parts))
			}
		})
	}
}

func TestPartUpdate(t *testing.T) {
	c := newTestCatalog()
	ctx := context.Background()
	steel := mustMaterial(t, c, "Steel")
	brass := mustMaterial(t, c, "Brass")
	p := mustPart(t, c, "10.01", "Bolt", steel.ID)

	updated, err := c.parts.Update(ctx, p.ID, model.PartInput{Designation: "10.01-1", Name: "Bolt M8", MaterialID: brass.ID})
	if err != nil {
		t.Fatalf("Update() вернул ошибку: %v", err)
	}
	if updated.MaterialName != "Brass" || updated.Designation != "10.01-1" {
		t.Errorf("Update() = %+v", updated)
	}
	if updated.UpdatedAt.Before(p.UpdatedAt) {
		t.Errorf("UpdatedAt уменьшился")
	}

	_, err = c.parts.Update(ctx, p.ID, model.PartInput{Designation: "10,01", Name: "Bolt", MaterialID: steel.ID})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Update() с запятой в обозначении: ожидали ErrValidation, получили %v", err)
	}
	got, _ := c.parts.Get(ctx, p.ID)
	if got.Designation != "10.01-1" {
		t.Errorf("Designation = %q после отклонённого Update", got.Designation)
	}

	_, err = c.parts.Update(ctx, uuid.New().String(), model.PartInput{Designation: "1", Name: "X", MaterialID: steel.ID})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() отсутствующей детали: ожидали ErrNotFound, получили %v", err)
	}
}

func TestPartList_SearchDesignationOrName(t *testing.T) {
	c := newTestCatalog()
	ctx := context.Background()
	m := mustMaterial(t, c, "Steel")
	mustPart(t, c, "20.15", "Bracket", m.ID)
	mustPart(t, c, "30.01", "Plate 20", m.ID)
	mustPart(t, c, "40.00", "Cover", m.ID)

	list, err := c.parts.List(ctx, "20")
	if err != nil {
		t.Fatalf("List() вернул ошибку: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("List(20) вернул %d деталей, ожидали 2", len(list))
	}

	list, _ = c.parts.List(ctx, "COVER")
	if len(list) != 1 || list[0].Name != "Cover" {
		t.Errorf("List(COVER) = %v, ожидали Cover", list)
	}
}

func TestPartDelete_Guarded(t *testing.T) {
	c := newTestCatalog()
	ctx := context.Background()
	m := mustMaterial(t, c, "Steel")
	used := mustPart(t, c, "10.01", "Bolt", m.ID)
	free := mustPart(t, c, "10.02", "Nut", m.ID)

	qty := 2
	if _, err := c.assemblies.Save(ctx, nil,
		model.AssemblyInput{Designation: "1.00", Name: "Frame"},
		[]model.LineDirective{{Op: model.LineUpsert, PartID: used.ID, Quantity: &qty}},
	); err != nil {
		t.Fatalf("Save() вернул ошибку: %v", err)
	}

	outcome, err := c.parts.Delete(ctx, used.ID)
	if err != nil || outcome != model.Blocked {
		t.Fatalf("Delete() детали в сборке = (%v, %v), ожидали blocked", outcome, err)
	}
	if _, err := c.parts.Get(ctx, used.ID); err != nil {
		t.Errorf("используемая деталь удалена: %v", err)
	}

	outcome, err = c.parts.Delete(ctx, free.ID)
	if err != nil || outcome != model.Deleted {
		t.Fatalf("Delete() свободной детали = (%v, %v), ожидали deleted", outcome, err)
	}
	if _, err := c.parts.Get(ctx, free.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("деталь существует после удаления: %v", err)
	}
}

func TestPartDelete_ForeignKeyViolationIsBlocked(t *testing.T) {
	c := newTestCatalog()
	ctx := context.Background()
	m := mustMaterial(t, c, "Steel")
	p := mustPart(t, c, "10.01", "Bolt", m.ID)

	qty := 1
	if _, err := c.assemblies.Save(ctx, nil,
		model.AssemblyInput{Designation: "1.00", Name: "Frame"},
		[]model.LineDirective{{Op: model.LineUpsert, PartID: p.ID, Quantity: &qty}},
	); err != nil {
		t.Fatalf("Save() вернул ошибку: %v", err)
	}
	c.db.hideDependents = true

	outcome, err := c.parts.Delete(ctx, p.ID)
	if err != nil || outcome != model.Blocked {
		t.Errorf("Delete() = (%v, %v), ожидали blocked", outcome, err)
	}
}

func TestPartAssemblies_WhereUsed(t *testing.T) {
	c := newTestCatalog()
	ctx := context.Background()
	m := mustMaterial(t, c, "Steel")
	p := mustPart(t, c, "10.01", "Bolt", m.ID)

	qty := 4
	for _, name := range []string{"Frame", "Door"} {
		if _, err := c.assemblies.Save(ctx, nil,
			model.AssemblyInput{Designation: "1.00", Name: name},
			[]model.LineDirective{{Op: model.LineUpsert, PartID: p.ID, Quantity: &qty}},
		); err != nil {
			t.Fatalf("Save(%s) вернул ошибку: %v", name, err)
		}
	}

	lines, err := c.parts.Assemblies(ctx, p.ID)
	if err != nil {
		t.Fatalf("Assemblies() вернул ошибку: %v", err)
	}
	if len(lines) != 2 || lines[0].AssemblyName != "Frame" || lines[1].AssemblyName != "Door" {
		t.Errorf("Assemblies() = %v, ожидали Frame и Door", lines)
	}
}
