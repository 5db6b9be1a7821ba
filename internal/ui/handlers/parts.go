// parts.go — страницы деталей.
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/componentor/internal/domain/model"
	"github.com/bigkaa/componentor/internal/ui/flash"
	"github.com/bigkaa/componentor/internal/ui/pages"
)

// HandlePartList обрабатывает GET /parts/ — список с поиском по обозначению или имени.
func (h *UIHandler) HandlePartList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	items, err := h.parts.List(r.Context(), query)
	if err != nil {
		h.fail(w, r, err, "получения списка деталей")
		return
	}
	h.render(w, r, http.StatusOK, pages.PartList(pages.PartListData{Query: query, Items: items}))
}

// HandlePartDetail обрабатывает GET /parts/{id}.
func (h *UIHandler) HandlePartDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	part, err := h.parts.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "получения детали")
		return
	}
	lines, err := h.parts.Assemblies(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "получения сборок детали")
		return
	}
	h.render(w, r, http.StatusOK, pages.PartDetail(pages.PartDetailData{Part: part, Lines: lines}))
}

// HandlePartCreateForm обрабатывает GET /parts/create.
func (h *UIHandler) HandlePartCreateForm(w http.ResponseWriter, r *http.Request) {
	h.renderPartForm(w, r, pages.PartFormData{})
}

// HandlePartCreate обрабатывает POST /parts/create.
func (h *UIHandler) HandlePartCreate(w http.ResponseWriter, r *http.Request) {
	data, in := partForm(r)
	_, err := h.parts.Create(r.Context(), in)
	if err == nil {
		h.redirect(w, r, "/parts/", flash.Success, "flash.part.created")
		return
	}
	var ok bool
	if data.Errors, ok = fieldErrors(err, nil); !ok {
		h.fail(w, r, err, "создания детали")
		return
	}
	h.renderPartForm(w, r, data)
}

// HandlePartUpdateForm обрабатывает GET /parts/{id}/update.
func (h *UIHandler) HandlePartUpdateForm(w http.ResponseWriter, r *http.Request) {
	part, err := h.parts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, "получения детали")
		return
	}
	h.renderPartForm(w, r, pages.PartFormData{
		ID:          part.ID,
		Designation: part.Designation,
		Name:        part.Name,
		MaterialID:  part.MaterialID,
	})
}

// HandlePartUpdate обрабатывает POST /parts/{id}/update.
// Успех — redirect на карточку детали.
func (h *UIHandler) HandlePartUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	data, in := partForm(r)
	data.ID = id
	_, err := h.parts.Update(r.Context(), id, in)
	if err == nil {
		h.redirect(w, r, "/parts/"+id, flash.Success, "flash.part.updated")
		return
	}
	var ok bool
	if data.Errors, ok = fieldErrors(err, nil); !ok {
		h.fail(w, r, err, "изменения детали")
		return
	}
	h.renderPartForm(w, r, data)
}

// HandlePartDeleteConfirm обрабатывает GET /parts/{id}/delete.
func (h *UIHandler) HandlePartDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	part, err := h.parts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, "получения детали")
		return
	}
	h.render(w, r, http.StatusOK, pages.DeleteConfirm(pages.DeleteData{
		TitleKey:    "part.delete.title",
		QuestionKey: "part.delete.confirm",
		Name:        part.Designation + " " + part.Name,
		Action:      "/parts/" + part.ID + "/delete",
		Cancel:      "/parts/" + part.ID,
	}))
}

// HandlePartDelete обрабатывает POST /parts/{id}/delete.
// Деталь, входящая в сборки, не удаляется.
func (h *UIHandler) HandlePartDelete(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.parts.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, "удаления детали")
		return
	}
	if outcome == model.Blocked {
		h.redirect(w, r, "/parts/", flash.Error, "flash.part.in_use")
		return
	}
	h.redirect(w, r, "/parts/", flash.Success, "flash.part.deleted")
}

// renderPartForm отдаёт форму детали со списком материалов для выбора.
func (h *UIHandler) renderPartForm(w http.ResponseWriter, r *http.Request, data pages.PartFormData) {
	materials, err := h.materials.List(r.Context(), "")
	if err != nil {
		h.fail(w, r, err, "получения списка материалов")
		return
	}
	data.Materials = materials
	h.render(w, r, http.StatusOK, pages.PartForm(data))
}

func partForm(r *http.Request) (pages.PartFormData, model.PartInput) {
	data := pages.PartFormData{
		Designation: formValue(r, "designation"),
		Name:        formValue(r, "name"),
		MaterialID:  formValue(r, "material_id"),
	}
	return data, model.PartInput{
		Designation: data.Designation,
		Name:        data.Name,
		MaterialID:  data.MaterialID,
	}
}
