// parts.go — обработчики /api/v1/parts endpoints.
package handlers

import (
	"net/http"

	apierrors "github.com/bigkaa/componentor/internal/api/errors"
	"github.com/bigkaa/componentor/internal/api/generated"
	"github.com/bigkaa/componentor/internal/domain/model"
)

func mapPart(p *model.Part) generated.Part {
	return generated.Part{
		Id:           p.ID,
		Designation:  p.Designation,
		Name:         p.Name,
		MaterialId:   p.MaterialID,
		MaterialName: p.MaterialName,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func partInput(in generated.PartInput) model.PartInput {
	return model.PartInput{
		Designation: value(in.Designation),
		Name:        value(in.Name),
		MaterialID:  value(in.MaterialId),
	}
}

// ListParts — GET /api/v1/parts?q=.
// q ищется в обозначении и имени.
func (h *APIHandler) ListParts(w http.ResponseWriter, r *http.Request, params generated.ListPartsParams) {
	items, err := h.parts.List(r.Context(), value(params.Q))
	if err != nil {
		h.writeServiceError(w, err, "", "получение списка деталей")
		return
	}

	resp := make([]generated.Part, len(items))
	for i, p := range items {
		resp[i] = mapPart(p)
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreatePart — POST /api/v1/parts.
func (h *APIHandler) CreatePart(w http.ResponseWriter, r *http.Request) {
	var req generated.CreatePartJSONRequestBody
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.parts.Create(r.Context(), partInput(req))
	if err != nil {
		h.writeServiceError(w, err, "", "создание детали")
		return
	}
	writeJSON(w, http.StatusCreated, mapPart(p))
}

// GetPart — GET /api/v1/parts/{id}.
func (h *APIHandler) GetPart(w http.ResponseWriter, r *http.Request, id generated.ID) {
	p, err := h.parts.Get(r.Context(), id.String())
	if err != nil {
		h.writeServiceError(w, err, "Деталь не найдена", "получение детали")
		return
	}
	lines, err := h.parts.Assemblies(r.Context(), id.String())
	if err != nil {
		h.writeServiceError(w, err, "Деталь не найдена", "получение сборок детали")
		return
	}

	writeJSON(w, http.StatusOK, generated.PartDetail{
		Id:           p.ID,
		Designation:  p.Designation,
		Name:         p.Name,
		MaterialId:   p.MaterialID,
		MaterialName: p.MaterialName,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		Assemblies:   mapLines(lines),
	})
}

// UpdatePart — PUT /api/v1/parts/{id}.
func (h *APIHandler) UpdatePart(w http.ResponseWriter, r *http.Request, id generated.ID) {
	var req generated.UpdatePartJSONRequestBody
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.parts.Update(r.Context(), id.String(), partInput(req))
	if err != nil {
		h.writeServiceError(w, err, "Деталь не найдена", "обновление детали")
		return
	}
	writeJSON(w, http.StatusOK, mapPart(p))
}

// DeletePart — DELETE /api/v1/parts/{id}.
// 409 IN_USE, если деталь входит хотя бы в одну сборку.
func (h *APIHandler) DeletePart(w http.ResponseWriter, r *http.Request, id generated.ID) {
	outcome, err := h.parts.Delete(r.Context(), id.String())
	if err != nil {
		h.writeServiceError(w, err, "Деталь не найдена", "удаление детали")
		return
	}
	if outcome == model.Blocked {
		apierrors.InUse(w, "Деталь входит в сборки")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
