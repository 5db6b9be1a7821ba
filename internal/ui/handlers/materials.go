// materials.go — страницы материалов.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/componentor/internal/domain/model"
	"github.com/bigkaa/componentor/internal/domain/validation"
	"github.com/bigkaa/componentor/internal/ui/flash"
	"github.com/bigkaa/componentor/internal/ui/pages"
)

// HandleMaterialList обрабатывает GET /materials/ — список с поиском по имени.
func (h *UIHandler) HandleMaterialList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	items, err := h.materials.List(r.Context(), query)
	if err != nil {
		h.fail(w, r, err, "получения списка материалов")
		return
	}
	h.render(w, r, http.StatusOK, pages.MaterialList(pages.MaterialListData{Query: query, Items: items}))
}

// HandleMaterialDetail обрабатывает GET /materials/{id}.
func (h *UIHandler) HandleMaterialDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	m, err := h.materials.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "получения материала")
		return
	}
	parts, err := h.materials.Parts(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "получения деталей материала")
		return
	}
	h.render(w, r, http.StatusOK, pages.MaterialDetail(pages.MaterialDetailData{Material: m, Parts: parts}))
}

// HandleMaterialCreateForm обрабатывает GET /materials/create.
func (h *UIHandler) HandleMaterialCreateForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pages.MaterialForm(pages.MaterialFormData{}))
}

// HandleMaterialCreate обрабатывает POST /materials/create.
// Успех — redirect на список с flash-сообщением.
func (h *UIHandler) HandleMaterialCreate(w http.ResponseWriter, r *http.Request) {
	data, in, ok := materialForm(r)
	if ok {
		_, err := h.materials.Create(r.Context(), in)
		if err == nil {
			h.redirect(w, r, "/materials/", flash.Success, "flash.material.created")
			return
		}
		if data.Errors, ok = fieldErrors(err, nil); !ok {
			h.fail(w, r, err, "создания материала")
			return
		}
	}
	h.render(w, r, http.StatusOK, pages.MaterialForm(data))
}

// HandleMaterialUpdateForm обрабатывает GET /materials/{id}/update.
func (h *UIHandler) HandleMaterialUpdateForm(w http.ResponseWriter, r *http.Request) {
	m, err := h.materials.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, "получения материала")
		return
	}
	h.render(w, r, http.StatusOK, pages.MaterialForm(pages.MaterialFormData{
		ID:      m.ID,
		Name:    m.Name,
		Density: pages.FormatDensity(m.Density),
	}))
}

// HandleMaterialUpdate обрабатывает POST /materials/{id}/update.
// Успех — redirect на карточку материала.
func (h *UIHandler) HandleMaterialUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	data, in, ok := materialForm(r)
	data.ID = id
	if ok {
		_, err := h.materials.Update(r.Context(), id, in)
		if err == nil {
			h.redirect(w, r, "/materials/"+id, flash.Success, "flash.material.updated")
			return
		}
		if data.Errors, ok = fieldErrors(err, nil); !ok {
			h.fail(w, r, err, "изменения материала")
			return
		}
	}
	h.render(w, r, http.StatusOK, pages.MaterialForm(data))
}

// HandleMaterialDeleteConfirm обрабатывает GET /materials/{id}/delete.
func (h *UIHandler) HandleMaterialDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	m, err := h.materials.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, "получения материала")
		return
	}
	h.render(w, r, http.StatusOK, pages.DeleteConfirm(pages.DeleteData{
		TitleKey:    "material.delete.title",
		QuestionKey: "material.delete.confirm",
		Name:        m.Name,
		Action:      "/materials/" + m.ID + "/delete",
		Cancel:      "/materials/" + m.ID,
	}))
}

// HandleMaterialDelete обрабатывает POST /materials/{id}/delete.
// В обоих исходах redirect на список; используемый материал не удаляется.
func (h *UIHandler) HandleMaterialDelete(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.materials.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, "удаления материала")
		return
	}
	if outcome == model.Blocked {
		h.redirect(w, r, "/materials/", flash.Error, "flash.material.in_use")
		return
	}
	h.redirect(w, r, "/materials/", flash.Success, "flash.material.deleted")
}

// materialForm разбирает форму материала. ok == false, если плотность не число.
func materialForm(r *http.Request) (pages.MaterialFormData, model.MaterialInput, bool) {
	data := pages.MaterialFormData{
		Name:    formValue(r, "name"),
		Density: formValue(r, "density"),
	}
	in := model.MaterialInput{Name: data.Name}
	if data.Density == "" {
		return data, in, true
	}
	d, err := strconv.ParseFloat(data.Density, 64)
	if err != nil {
		data.Errors = pages.FieldErrors{"density": validation.ReasonNumber}
		return data, in, false
	}
	in.Density = &d
	return data, in, true
}
