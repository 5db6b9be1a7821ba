// assemblies.go — страницы сборок: форма сборки редактирует и состав.
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/componentor/internal/domain/model"
	"github.com/bigkaa/componentor/internal/domain/validation"
	"github.com/bigkaa/componentor/internal/ui/flash"
	"github.com/bigkaa/componentor/internal/ui/pages"
)

const (
	// extraLineRows — число пустых строк для новых деталей в форме сборки.
	extraLineRows = 5
	// maxLineRows — верхняя граница lines-total, принимаемая из формы.
	maxLineRows = 1000
)

// HandleAssemblyList обрабатывает GET /assemblies/ — список с поиском.
func (h *UIHandler) HandleAssemblyList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	items, err := h.assemblies.List(r.Context(), query)
	if err != nil {
		h.fail(w, r, err, "получения списка сборок")
		return
	}
	h.render(w, r, http.StatusOK, pages.AssemblyList(pages.AssemblyListData{Query: query, Items: items}))
}

// HandleAssemblyDetail обрабатывает GET /assemblies/{id}?material= — состав
// сборки с фильтром по названию материала.
func (h *UIHandler) HandleAssemblyDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, err := h.assemblies.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "получения сборки")
		return
	}
	material := r.URL.Query().Get("material")
	lines, err := h.assemblies.Lines(r.Context(), id, material)
	if err != nil {
		h.fail(w, r, err, "получения состава сборки")
		return
	}
	h.render(w, r, http.StatusOK, pages.AssemblyDetail(pages.AssemblyDetailData{
		Assembly: a,
		Material: material,
		Lines:    lines,
	}))
}

// HandleAssemblyCreateForm обрабатывает GET /assemblies/create.
func (h *UIHandler) HandleAssemblyCreateForm(w http.ResponseWriter, r *http.Request) {
	h.renderAssemblyForm(w, r, pages.AssemblyFormData{Rows: withBlankRows(nil)})
}

// HandleAssemblyCreate обрабатывает POST /assemblies/create.
func (h *UIHandler) HandleAssemblyCreate(w http.ResponseWriter, r *http.Request) {
	h.saveAssembly(w, r, nil, nil)
}

// HandleAssemblyUpdateForm обрабатывает GET /assemblies/{id}/update.
func (h *UIHandler) HandleAssemblyUpdateForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, err := h.assemblies.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "получения сборки")
		return
	}
	lines, err := h.assemblies.Lines(r.Context(), id, "")
	if err != nil {
		h.fail(w, r, err, "получения состава сборки")
		return
	}

	rows := make([]pages.LineRow, 0, len(lines)+extraLineRows)
	for _, l := range lines {
		rows = append(rows, pages.LineRow{
			LineID:   l.ID,
			PartID:   l.PartID,
			Quantity: strconv.Itoa(l.PartCount),
		})
	}
	h.renderAssemblyForm(w, r, pages.AssemblyFormData{
		ID:          a.ID,
		Designation: a.Designation,
		Name:        a.Name,
		Rows:        withBlankRows(rows),
	})
}

// HandleAssemblyUpdate обрабатывает POST /assemblies/{id}/update.
func (h *UIHandler) HandleAssemblyUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	lines, err := h.assemblies.Lines(r.Context(), id, "")
	if err != nil {
		h.fail(w, r, err, "получения состава сборки")
		return
	}
	h.saveAssembly(w, r, &id, lines)
}

// saveAssembly разбирает форму сборки, сохраняет сборку с составом одной
// операцией и при ошибках проверки отдаёт форму повторно.
// current — текущий состав; неизменённые строки не передаются в сервис.
func (h *UIHandler) saveAssembly(w http.ResponseWriter, r *http.Request, id *string, current []*model.AssemblyLine) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Ошибка разбора формы", http.StatusBadRequest)
		return
	}

	form := parseAssemblyForm(r, current)
	if id != nil {
		form.data.ID = *id
	}

	var err error
	if len(form.data.Errors) == 0 {
		if _, err = h.assemblies.Save(r.Context(), id, form.input, form.directives); err == nil {
			key := "flash.assembly.created"
			if id != nil {
				key = "flash.assembly.updated"
			}
			h.redirect(w, r, "/assemblies/", flash.Success, key)
			return
		}
	} else {
		// Строки с неразобранным количеством в директивы не попали;
		// остальные поля проверяются сервисом без записи.
		err = h.assemblies.Check(r.Context(), id, form.input, form.directives)
	}

	if err != nil {
		errs, ok := fieldErrors(err, form.rowField)
		if !ok {
			h.fail(w, r, err, "сохранения сборки")
			return
		}
		form.data.Errors = mergeFieldErrors(form.data.Errors, errs)
	}
	h.renderAssemblyForm(w, r, form.data)
}

// mergeFieldErrors дополняет ошибки разбора формы ошибками сервиса.
// Для поля, уже отклонённого при разборе, остаётся причина разбора.
func mergeFieldErrors(parsed, checked pages.FieldErrors) pages.FieldErrors {
	if parsed == nil {
		return checked
	}
	for field, reason := range checked {
		if _, ok := parsed[field]; !ok {
			parsed[field] = reason
		}
	}
	return parsed
}

// HandleAssemblyDeleteConfirm обрабатывает GET /assemblies/{id}/delete.
func (h *UIHandler) HandleAssemblyDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	a, err := h.assemblies.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, "получения сборки")
		return
	}
	h.render(w, r, http.StatusOK, pages.DeleteConfirm(pages.DeleteData{
		TitleKey:    "assembly.delete.title",
		QuestionKey: "assembly.delete.confirm",
		Name:        a.Designation + " " + a.Name,
		Action:      "/assemblies/" + a.ID + "/delete",
		Cancel:      "/assemblies/" + a.ID,
	}))
}

// HandleAssemblyDelete обрабатывает POST /assemblies/{id}/delete.
// Сборка удаляется вместе со строками состава.
func (h *UIHandler) HandleAssemblyDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.assemblies.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err, "удаления сборки")
		return
	}
	h.redirect(w, r, "/assemblies/", flash.Success, "flash.assembly.deleted")
}

// renderAssemblyForm отдаёт форму сборки со списком деталей для выбора.
func (h *UIHandler) renderAssemblyForm(w http.ResponseWriter, r *http.Request, data pages.AssemblyFormData) {
	parts, err := h.parts.List(r.Context(), "")
	if err != nil {
		h.fail(w, r, err, "получения списка деталей")
		return
	}
	data.Parts = parts
	h.render(w, r, http.StatusOK, pages.AssemblyForm(data))
}

func withBlankRows(rows []pages.LineRow) []pages.LineRow {
	return append(rows, make([]pages.LineRow, extraLineRows)...)
}

// assemblyForm — разобранная форма сборки.
type assemblyForm struct {
	data       pages.AssemblyFormData
	input      model.AssemblyInput
	directives []model.LineDirective
	// rows[i] — номер строки формы, из которой получена директива i
	rows []int
}

// parseAssemblyForm переводит строки формы в директивы состава:
// отмеченная существующая строка — delete, изменённая или новая заполненная — upsert.
// Пустые новые строки и неизменённые существующие пропускаются.
func parseAssemblyForm(r *http.Request, current []*model.AssemblyLine) *assemblyForm {
	f := &assemblyForm{}
	f.data.Designation = formValue(r, "designation")
	f.data.Name = formValue(r, "name")
	f.input = model.AssemblyInput{Designation: f.data.Designation, Name: f.data.Name}

	existing := make(map[string]*model.AssemblyLine, len(current))
	for _, l := range current {
		existing[l.ID] = l
	}

	total, _ := strconv.Atoi(r.PostFormValue("lines-total"))
	total = min(max(total, 0), maxLineRows)

	for i := range total {
		row := pages.LineRow{
			LineID:   formValue(r, pages.LineFieldName(i, "line_id")),
			PartID:   formValue(r, pages.LineFieldName(i, "part_id")),
			Quantity: formValue(r, pages.LineFieldName(i, "quantity")),
			Delete:   r.PostFormValue(pages.LineFieldName(i, "delete")) != "",
		}
		f.data.Rows = append(f.data.Rows, row)

		if row.LineID == "" && (row.Delete || (row.PartID == "" && row.Quantity == "")) {
			continue
		}
		if row.LineID != "" && row.Delete {
			lineID := row.LineID
			f.add(i, model.LineDirective{Op: model.LineDelete, LineID: &lineID})
			continue
		}
		if l, ok := existing[row.LineID]; ok && l.PartID == row.PartID && strconv.Itoa(l.PartCount) == row.Quantity {
			continue
		}

		d := model.LineDirective{Op: model.LineUpsert, PartID: row.PartID}
		if row.LineID != "" {
			lineID := row.LineID
			d.LineID = &lineID
		}
		if row.Quantity != "" {
			q, err := strconv.Atoi(row.Quantity)
			if err != nil {
				if f.data.Errors == nil {
					f.data.Errors = pages.FieldErrors{}
				}
				f.data.Errors[pages.LineFieldName(i, "quantity")] = validation.ReasonNumber
				continue
			}
			d.Quantity = &q
		}
		f.add(i, d)
	}
	return f
}

func (f *assemblyForm) add(row int, d model.LineDirective) {
	f.directives = append(f.directives, d)
	f.rows = append(f.rows, row)
}

// rowField переводит имя поля сервиса lines[i].x в имя поля формы lines-<row>-x.
func (f *assemblyForm) rowField(field string) string {
	rest, ok := strings.CutPrefix(field, "lines[")
	if !ok {
		return field
	}
	idx, name, ok := strings.Cut(rest, "].")
	if !ok {
		return field
	}
	i, err := strconv.Atoi(idx)
	if err != nil || i < 0 || i >= len(f.rows) {
		return field
	}
	return pages.LineFieldName(f.rows[i], name)
}
