package validation

import (
	"errors"
	"math"
	"testing"

	"github.com/bigkaa/componentor/internal/domain/model"
)

const testID = "7f1c3f56-2d7c-4c2e-9a61-0d7f2c3b9a10"

func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestMaterial(t *testing.T) {
	val := New()

	tests := []struct {
		name   string
		in     model.MaterialInput
		field  string
		reason string
	}{
		{"корректное имя", model.MaterialInput{Name: "Steel 45"}, "", ""},
		{"имя с плотностью", model.MaterialInput{Name: "Copper", Density: floatPtr(8.96)}, "", ""},
		{"нулевая плотность", model.MaterialInput{Name: "Air", Density: floatPtr(0)}, "", ""},
		{"пустое имя", model.MaterialInput{Name: ""}, "name", ReasonRequired},
		{"подчёркивание", model.MaterialInput{Name: "steel_1"}, "name", ReasonCharset},
		{"кириллица", model.MaterialInput{Name: "Сталь"}, "name", ReasonCharset},
		{"дефис", model.MaterialInput{Name: "st-3"}, "name", ReasonCharset},
		{"отрицательная плотность", model.MaterialInput{Name: "Steel", Density: floatPtr(-1)}, "density", ReasonMin},
		{"NaN", model.MaterialInput{Name: "Steel", Density: floatPtr(math.NaN())}, "density", ReasonNumber},
		{"бесконечность", model.MaterialInput{Name: "Steel", Density: floatPtr(math.Inf(1))}, "density", ReasonNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := val.Material(tt.in)
			if tt.field == "" {
				if len(errs) != 0 {
					t.Fatalf("ожидали отсутствие ошибок, получили %v", errs)
				}
				return
			}
			if got := errs.Reason(tt.field); got != tt.reason {
				t.Errorf("Reason(%q) = %q, ожидали %q (ошибки: %v)", tt.field, got, tt.reason, errs)
			}
		})
	}
}

func TestPart(t *testing.T) {
	val := New()

	tests := []struct {
		name   string
		in     model.PartInput
		field  string
		reason string
	}{
		{"корректная деталь", model.PartInput{Designation: "10.01-2", Name: "Bolt M8", MaterialID: testID}, "", ""},
		{"буквы в обозначении", model.PartInput{Designation: "AB.01", Name: "Bolt", MaterialID: testID}, "designation", ReasonCharset},
		{"пробел в обозначении", model.PartInput{Designation: "10 01", Name: "Bolt", MaterialID: testID}, "designation", ReasonCharset},
		{"пустое обозначение", model.PartInput{Designation: "", Name: "Bolt", MaterialID: testID}, "designation", ReasonRequired},
		{"символы в имени", model.PartInput{Designation: "10.01", Name: "Bolt#1", MaterialID: testID}, "name", ReasonCharset},
		{"без материала", model.PartInput{Designation: "10.01", Name: "Bolt"}, "material_id", ReasonRequired},
		{"материал не UUID", model.PartInput{Designation: "10.01", Name: "Bolt", MaterialID: "42"}, "material_id", ReasonNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := val.Part(tt.in)
			if tt.field == "" {
				if len(errs) != 0 {
					t.Fatalf("ожидали отсутствие ошибок, получили %v", errs)
				}
				return
			}
			if got := errs.Reason(tt.field); got != tt.reason {
				t.Errorf("Reason(%q) = %q, ожидали %q (ошибки: %v)", tt.field, got, tt.reason, errs)
			}
		})
	}
}

func TestAssembly_ReportsEveryField(t *testing.T) {
	val := New()

	errs := val.Assembly(model.AssemblyInput{Designation: "x", Name: "assembly_1"})
	if len(errs) != 2 {
		t.Fatalf("ожидали 2 ошибки, получили %d: %v", len(errs), errs)
	}
	if !errs.Has("designation") || !errs.Has("name") {
		t.Errorf("ожидали ошибки designation и name, получили %v", errs)
	}

	if errs := val.Assembly(model.AssemblyInput{Designation: "10.00", Name: "assembly 1"}); len(errs) != 0 {
		t.Errorf("корректная сборка отклонена: %v", errs)
	}
}

func TestLine(t *testing.T) {
	val := New()

	tests := []struct {
		name   string
		d      model.LineDirective
		field  string
		reason string
	}{
		{"новая строка", model.LineDirective{Op: model.LineUpsert, PartID: testID, Quantity: intPtr(3)}, "", ""},
		{"нулевое количество", model.LineDirective{Op: model.LineUpsert, PartID: testID, Quantity: intPtr(0)}, "", ""},
		{"изменение строки", model.LineDirective{Op: model.LineUpsert, PartID: testID, Quantity: intPtr(5), LineID: strPtr(testID)}, "", ""},
		{"удаление строки", model.LineDirective{Op: model.LineDelete, LineID: strPtr(testID)}, "", ""},
		{"без детали", model.LineDirective{Op: model.LineUpsert, Quantity: intPtr(1)}, "lines[0].part_id", ReasonRequired},
		{"деталь не UUID", model.LineDirective{Op: model.LineUpsert, PartID: "abc", Quantity: intPtr(1)}, "lines[0].part_id", ReasonNotFound},
		{"без количества", model.LineDirective{Op: model.LineUpsert, PartID: testID}, "lines[0].quantity", ReasonRequired},
		{"отрицательное количество", model.LineDirective{Op: model.LineUpsert, PartID: testID, Quantity: intPtr(-2)}, "lines[0].quantity", ReasonMin},
		{"наибольшее количество", model.LineDirective{Op: model.LineUpsert, PartID: testID, Quantity: intPtr(math.MaxInt32)}, "", ""},
		{"количество больше int4", model.LineDirective{Op: model.LineUpsert, PartID: testID, Quantity: intPtr(math.MaxInt32 + 1)}, "lines[0].quantity", ReasonMax},
		{"строка не UUID", model.LineDirective{Op: model.LineUpsert, PartID: testID, Quantity: intPtr(1), LineID: strPtr("7")}, "lines[0].line_id", ReasonNotFound},
		{"удаление без строки", model.LineDirective{Op: model.LineDelete}, "lines[0].line_id", ReasonRequired},
		{"неизвестная операция", model.LineDirective{Op: "replace"}, "lines[0].op", ReasonInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := val.Line(0, tt.d)
			if tt.field == "" {
				if len(errs) != 0 {
					t.Fatalf("ожидали отсутствие ошибок, получили %v", errs)
				}
				return
			}
			if got := errs.Reason(tt.field); got != tt.reason {
				t.Errorf("Reason(%q) = %q, ожидали %q (ошибки: %v)", tt.field, got, tt.reason, errs)
			}
		})
	}
}

func TestErrors_Is(t *testing.T) {
	var errs Errors
	if errs.Err() != nil {
		t.Fatal("Err() пустого набора должен быть nil")
	}

	errs.Add("name", ReasonCharset)
	err := errs.Err()
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("errors.Is(%v, ErrInvalid) = false", err)
	}

	var target Errors
	if !errors.As(err, &target) || target.Reason("name") != ReasonCharset {
		t.Errorf("errors.As не вернул исходный набор: %v", target)
	}
}
