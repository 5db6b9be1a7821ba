package pages

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/bigkaa/componentor/internal/domain/model"
	"github.com/bigkaa/componentor/internal/ui/flash"
	"github.com/bigkaa/componentor/internal/ui/i18n"
)

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var sb strings.Builder
	if err := c.Render(ctx, &sb); err != nil {
		t.Fatalf("Render() вернул ошибку: %v", err)
	}
	return sb.String()
}

func TestMaterialForm_EscapesInput(t *testing.T) {
	body := render(t, context.Background(), MaterialForm(MaterialFormData{
		Name:   `<script>alert(1)</script>`,
		Errors: FieldErrors{"name": "charset"},
	}))

	if strings.Contains(body, "<script>") {
		t.Error("введённое значение не экранировано")
	}
	if !strings.Contains(body, `class="field-error"`) {
		t.Error("нет ошибки поля")
	}
	if !strings.Contains(body, `action="/materials/create"`) {
		t.Error("форма создания должна отправляться на /materials/create")
	}
}

func TestLayout_Flash(t *testing.T) {
	ctx := flash.WithMessage(context.Background(), &flash.Message{Kind: flash.Error, Key: "flash.part.in_use"})
	body := render(t, ctx, Home())

	if !strings.Contains(body, `<div class="alert alert-error">flash.part.in_use</div>`) {
		t.Errorf("flash-сообщение не выведено: %s", body)
	}
}

func TestLayout_LanguageSwitch(t *testing.T) {
	body := render(t, i18n.WithLang(context.Background(), "ru"), NotFound())

	for _, want := range []string{
		`<html lang="ru">`,
		`<button type="submit" name="lang" value="en">lang.en</button>`,
		`<button type="submit" name="lang" value="ru" class="active">lang.ru</button>`,
		`<h1>error.not_found.title</h1>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("страница не содержит %s", want)
		}
	}
}

func TestDeleteConfirm(t *testing.T) {
	body := render(t, context.Background(), DeleteConfirm(DeleteData{
		TitleKey:    "part.delete.title",
		QuestionKey: "delete %s?",
		Name:        `bolt "M6"`,
		Action:      "/parts/p1/delete",
		Cancel:      "/parts/p1",
	}))

	for _, want := range []string{
		`<form method="post" action="/parts/p1/delete">`,
		`href="/parts/p1"`,
		`delete bolt &#34;M6&#34;?`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("страница не содержит %s", want)
		}
	}
}

func TestAssemblyForm_Rows(t *testing.T) {
	body := render(t, context.Background(), AssemblyForm(AssemblyFormData{
		ID:   "a1",
		Rows: []LineRow{{LineID: "l1", PartID: "p1", Quantity: "2", Delete: true}, {}},
		Parts: []*model.Part{
			{ID: "p1", Designation: "1.01", Name: "bolt"},
		},
		Errors: FieldErrors{"lines-1-part_id": "required"},
	}))

	for _, want := range []string{
		`action="/assemblies/a1/update"`,
		`name="lines-total" value="2"`,
		`name="lines-0-line_id" value="l1"`,
		`<option value="p1" selected>`,
		`name="lines-0-delete" value="on" checked`,
		`validation.required`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("форма не содержит %s", want)
		}
	}
	if strings.Contains(body, `name="lines-1-delete"`) {
		t.Error("у новой строки не должно быть флажка удаления")
	}
}

func TestFormatDensity(t *testing.T) {
	d := 7.85
	if got := FormatDensity(&d); got != "7.85" {
		t.Errorf("FormatDensity = %q", got)
	}
	if got := FormatDensity(nil); got != "" {
		t.Errorf("FormatDensity(nil) = %q", got)
	}
}
