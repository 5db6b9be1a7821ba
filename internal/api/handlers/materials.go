// materials.go — обработчики /api/v1/materials endpoints.
package handlers

import (
	"net/http"

	apierrors "github.com/bigkaa/componentor/internal/api/errors"
	"github.com/bigkaa/componentor/internal/api/generated"
	"github.com/bigkaa/componentor/internal/domain/model"
)

func mapMaterial(m *model.Material) generated.Material {
	return generated.Material{
		Id:        m.ID,
		Name:      m.Name,
		Density:   m.Density,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func materialInput(in generated.MaterialInput) model.MaterialInput {
	return model.MaterialInput{Name: value(in.Name), Density: in.Density}
}

// ListMaterials — GET /api/v1/materials?q=.
func (h *APIHandler) ListMaterials(w http.ResponseWriter, r *http.Request, params generated.ListMaterialsParams) {
	items, err := h.materials.List(r.Context(), value(params.Q))
	if err != nil {
		h.writeServiceError(w, err, "", "получение списка материалов")
		return
	}

	resp := make([]generated.Material, len(items))
	for i, m := range items {
		resp[i] = mapMaterial(m)
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateMaterial — POST /api/v1/materials.
func (h *APIHandler) CreateMaterial(w http.ResponseWriter, r *http.Request) {
	var req generated.CreateMaterialJSONRequestBody
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := h.materials.Create(r.Context(), materialInput(req))
	if err != nil {
		h.writeServiceError(w, err, "", "создание материала")
		return
	}
	writeJSON(w, http.StatusCreated, mapMaterial(m))
}

// GetMaterial — GET /api/v1/materials/{id}.
// Возвращает материал и детали, изготовленные из него.
func (h *APIHandler) GetMaterial(w http.ResponseWriter, r *http.Request, id generated.ID) {
	m, err := h.materials.Get(r.Context(), id.String())
	if err != nil {
		h.writeServiceError(w, err, "Материал не найден", "получение материала")
		return
	}
	parts, err := h.materials.Parts(r.Context(), id.String())
	if err != nil {
		h.writeServiceError(w, err, "Материал не найден", "получение деталей материала")
		return
	}

	resp := generated.MaterialDetail{
		Id:        m.ID,
		Name:      m.Name,
		Density:   m.Density,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Parts:     make([]generated.Part, len(parts)),
	}
	for i, p := range parts {
		resp.Parts[i] = mapPart(p)
	}
	writeJSON(w, http.StatusOK, resp)
}

// UpdateMaterial — PUT /api/v1/materials/{id}.
func (h *APIHandler) UpdateMaterial(w http.ResponseWriter, r *http.Request, id generated.ID) {
	var req generated.UpdateMaterialJSONRequestBody
	if !decodeJSON(w, r, &req) {
		return
	}

	m, err := h.materials.Update(r.Context(), id.String(), materialInput(req))
	if err != nil {
		h.writeServiceError(w, err, "Материал не найден", "обновление материала")
		return
	}
	writeJSON(w, http.StatusOK, mapMaterial(m))
}

// DeleteMaterial — DELETE /api/v1/materials/{id}.
// 409 IN_USE, если из материала изготовлена хотя бы одна деталь.
func (h *APIHandler) DeleteMaterial(w http.ResponseWriter, r *http.Request, id generated.ID) {
	outcome, err := h.materials.Delete(r.Context(), id.String())
	if err != nil {
		h.writeServiceError(w, err, "Материал не найден", "удаление материала")
		return
	}
	if outcome == model.Blocked {
		apierrors.InUse(w, "Материал используется в деталях")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
