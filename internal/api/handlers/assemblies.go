// assemblies.go — обработчики /api/v1/assemblies endpoints.
// Сборка создаётся и изменяется вместе с составом одним запросом.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	apierrors "github.com/bigkaa/componentor/internal/api/errors"
	"github.com/bigkaa/componentor/internal/api/generated"
	"github.com/bigkaa/componentor/internal/domain/model"
	"github.com/bigkaa/componentor/internal/domain/validation"
)

func mapAssembly(a *model.Assembly) generated.Assembly {
	return generated.Assembly{
		Id:          a.ID,
		Designation: a.Designation,
		Name:        a.Name,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func mapAssemblyDetail(a *model.Assembly, lines []*model.AssemblyLine) generated.AssemblyDetail {
	return generated.AssemblyDetail{
		Id:          a.ID,
		Designation: a.Designation,
		Name:        a.Name,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
		Lines:       mapLines(lines),
	}
}

func mapLines(lines []*model.AssemblyLine) []generated.AssemblyLine {
	resp := make([]generated.AssemblyLine, len(lines))
	for i, l := range lines {
		resp[i] = generated.AssemblyLine{
			Id:              l.ID,
			AssemblyId:      l.AssemblyID,
			PartId:          l.PartID,
			PartDesignation: l.PartDesignation,
			PartName:        l.PartName,
			MaterialId:      l.MaterialID,
			MaterialName:    l.MaterialName,
			Quantity:        l.PartCount,
		}
		if l.AssemblyDesignation != "" {
			resp[i].AssemblyDesignation = &l.AssemblyDesignation
		}
		if l.AssemblyName != "" {
			resp[i].AssemblyName = &l.AssemblyName
		}
	}
	return resp
}

// directives переводит строки запроса в директивы состава.
// Нечисловое или дробное количество даёт ошибку lines[i].quantity: number.
func directives(req generated.AssemblyInput) ([]model.LineDirective, validation.Errors) {
	if req.Lines == nil {
		return nil, nil
	}

	var errs validation.Errors
	out := make([]model.LineDirective, len(*req.Lines))
	for i, l := range *req.Lines {
		out[i] = model.LineDirective{Op: model.LineOp(l.Op), PartID: value(l.PartId), LineID: l.LineId}
		if len(l.Quantity) == 0 || string(l.Quantity) == "null" {
			continue
		}
		var q int
		if err := json.Unmarshal(l.Quantity, &q); err != nil {
			errs.Add(fmt.Sprintf("lines[%d].quantity", i), validation.ReasonNumber)
			continue
		}
		out[i].Quantity = &q
	}
	return out, errs
}

// ListAssemblies — GET /api/v1/assemblies?q=.
func (h *APIHandler) ListAssemblies(w http.ResponseWriter, r *http.Request, params generated.ListAssembliesParams) {
	items, err := h.assemblies.List(r.Context(), value(params.Q))
	if err != nil {
		h.writeServiceError(w, err, "", "получение списка сборок")
		return
	}

	resp := make([]generated.Assembly, len(items))
	for i, a := range items {
		resp[i] = mapAssembly(a)
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateAssembly — POST /api/v1/assemblies.
func (h *APIHandler) CreateAssembly(w http.ResponseWriter, r *http.Request) {
	h.saveAssembly(w, r, nil, http.StatusCreated)
}

// UpdateAssembly — PUT /api/v1/assemblies/{id}.
func (h *APIHandler) UpdateAssembly(w http.ResponseWriter, r *http.Request, id generated.ID) {
	key := id.String()
	h.saveAssembly(w, r, &key, http.StatusOK)
}

// saveAssembly разбирает запрос, сохраняет сборку с составом и отвечает её текущим состоянием.
func (h *APIHandler) saveAssembly(w http.ResponseWriter, r *http.Request, id *string, status int) {
	var req generated.CreateAssemblyJSONRequestBody
	if !decodeJSON(w, r, &req) {
		return
	}
	lines, errs := directives(req)
	if len(errs) > 0 {
		apierrors.ValidationError(w, "Некорректные входные данные", fieldDetails(errs)...)
		return
	}

	in := model.AssemblyInput{Designation: value(req.Designation), Name: value(req.Name)}
	a, err := h.assemblies.Save(r.Context(), id, in, lines)
	if err != nil {
		h.writeServiceError(w, err, "Сборка не найдена", "сохранение сборки")
		return
	}

	current, err := h.assemblies.Lines(r.Context(), a.ID, "")
	if err != nil {
		h.writeServiceError(w, err, "Сборка не найдена", "получение состава сборки")
		return
	}
	writeJSON(w, status, mapAssemblyDetail(a, current))
}

// GetAssembly — GET /api/v1/assemblies/{id}.
func (h *APIHandler) GetAssembly(w http.ResponseWriter, r *http.Request, id generated.ID) {
	a, err := h.assemblies.Get(r.Context(), id.String())
	if err != nil {
		h.writeServiceError(w, err, "Сборка не найдена", "получение сборки")
		return
	}
	lines, err := h.assemblies.Lines(r.Context(), id.String(), "")
	if err != nil {
		h.writeServiceError(w, err, "Сборка не найдена", "получение состава сборки")
		return
	}
	writeJSON(w, http.StatusOK, mapAssemblyDetail(a, lines))
}

// ListAssemblyLines — GET /api/v1/assemblies/{id}/lines?material=.
// material — подстрока названия материала детали.
func (h *APIHandler) ListAssemblyLines(w http.ResponseWriter, r *http.Request, id generated.ID, params generated.ListAssemblyLinesParams) {
	lines, err := h.assemblies.Lines(r.Context(), id.String(), value(params.Material))
	if err != nil {
		h.writeServiceError(w, err, "Сборка не найдена", "получение состава сборки")
		return
	}
	writeJSON(w, http.StatusOK, mapLines(lines))
}

// DeleteAssembly — DELETE /api/v1/assemblies/{id}.
// Строки состава удаляются вместе со сборкой.
func (h *APIHandler) DeleteAssembly(w http.ResponseWriter, r *http.Request, id generated.ID) {
	if err := h.assemblies.Delete(r.Context(), id.String()); err != nil {
		h.writeServiceError(w, err, "Сборка не найдена", "удаление сборки")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
