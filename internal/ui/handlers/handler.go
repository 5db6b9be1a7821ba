// Пакет handlers — HTTP-обработчики серверного UI каталога.
// Страницы списков, карточек, форм создания/изменения и подтверждения удаления
// для материалов, деталей и сборок.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/componentor/internal/domain/model"
	"github.com/bigkaa/componentor/internal/service"
	"github.com/bigkaa/componentor/internal/ui/flash"
	"github.com/bigkaa/componentor/internal/ui/pages"
)

// MaterialCatalog — операции над материалами, нужные страницам UI.
type MaterialCatalog interface {
	Create(ctx context.Context, in model.MaterialInput) (*model.Material, error)
	Update(ctx context.Context, id string, in model.MaterialInput) (*model.Material, error)
	Get(ctx context.Context, id string) (*model.Material, error)
	List(ctx context.Context, query string) ([]*model.Material, error)
	Parts(ctx context.Context, id string) ([]*model.Part, error)
	Delete(ctx context.Context, id string) (model.DeletionOutcome, error)
}

// PartCatalog — операции над деталями, нужные страницам UI.
type PartCatalog interface {
	Create(ctx context.Context, in model.PartInput) (*model.Part, error)
	Update(ctx context.Context, id string, in model.PartInput) (*model.Part, error)
	Get(ctx context.Context, id string) (*model.Part, error)
	List(ctx context.Context, query string) ([]*model.Part, error)
	Assemblies(ctx context.Context, id string) ([]*model.AssemblyLine, error)
	Delete(ctx context.Context, id string) (model.DeletionOutcome, error)
}

// AssemblyCatalog — операции над сборками, нужные страницам UI.
type AssemblyCatalog interface {
	Save(ctx context.Context, id *string, in model.AssemblyInput, lines []model.LineDirective) (*model.Assembly, error)
	Check(ctx context.Context, id *string, in model.AssemblyInput, lines []model.LineDirective) error
	Get(ctx context.Context, id string) (*model.Assembly, error)
	List(ctx context.Context, query string) ([]*model.Assembly, error)
	Lines(ctx context.Context, assemblyID, materialQuery string) ([]*model.AssemblyLine, error)
	Delete(ctx context.Context, id string) error
}

// UIHandler — обработчик страниц UI.
type UIHandler struct {
	materials  MaterialCatalog
	parts      PartCatalog
	assemblies AssemblyCatalog
	flash      *flash.Manager
	logger     *slog.Logger
}

// NewUIHandler создаёт обработчик страниц UI.
func NewUIHandler(
	materials MaterialCatalog,
	parts PartCatalog,
	assemblies AssemblyCatalog,
	flashManager *flash.Manager,
	logger *slog.Logger,
) *UIHandler {
	return &UIHandler{
		materials:  materials,
		parts:      parts,
		assemblies: assemblies,
		flash:      flashManager,
		logger:     logger.With(slog.String("component", "ui")),
	}
}

// RegisterRoutes регистрирует страницы UI. Пути повторяют адреса исходного приложения.
func (h *UIHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleHome)
	r.Post("/set-language", HandleSetLanguage)

	r.Route("/materials", func(r chi.Router) {
		r.Get("/", h.HandleMaterialList)
		r.Get("/create", h.HandleMaterialCreateForm)
		r.Post("/create", h.HandleMaterialCreate)
		r.Get("/{id}", h.HandleMaterialDetail)
		r.Get("/{id}/update", h.HandleMaterialUpdateForm)
		r.Post("/{id}/update", h.HandleMaterialUpdate)
		r.Get("/{id}/delete", h.HandleMaterialDeleteConfirm)
		r.Post("/{id}/delete", h.HandleMaterialDelete)
	})
	r.Route("/parts", func(r chi.Router) {
		r.Get("/", h.HandlePartList)
		r.Get("/create", h.HandlePartCreateForm)
		r.Post("/create", h.HandlePartCreate)
		r.Get("/{id}", h.HandlePartDetail)
		r.Get("/{id}/update", h.HandlePartUpdateForm)
		r.Post("/{id}/update", h.HandlePartUpdate)
		r.Get("/{id}/delete", h.HandlePartDeleteConfirm)
		r.Post("/{id}/delete", h.HandlePartDelete)
	})
	r.Route("/assemblies", func(r chi.Router) {
		r.Get("/", h.HandleAssemblyList)
		r.Get("/create", h.HandleAssemblyCreateForm)
		r.Post("/create", h.HandleAssemblyCreate)
		r.Get("/{id}", h.HandleAssemblyDetail)
		r.Get("/{id}/update", h.HandleAssemblyUpdateForm)
		r.Post("/{id}/update", h.HandleAssemblyUpdate)
		r.Get("/{id}/delete", h.HandleAssemblyDeleteConfirm)
		r.Post("/{id}/delete", h.HandleAssemblyDelete)
	})
}

// HandleHome обрабатывает GET / — главная страница.
func (h *UIHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pages.Home())
}

// HandleNotFound — страница 404 для неизвестных адресов UI.
func (h *UIHandler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, pages.NotFound())
}

// render отдаёт страницу с указанным статусом.
func (h *UIHandler) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		h.logger.Error("Ошибка рендеринга страницы",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
}

// fail отдаёт страницу 404 для ErrNotFound, иначе логирует ошибку и отдаёт 500.
func (h *UIHandler) fail(w http.ResponseWriter, r *http.Request, err error, action string) {
	if errors.Is(err, service.ErrNotFound) {
		h.render(w, r, http.StatusNotFound, pages.NotFound())
		return
	}
	h.logger.Error("Ошибка "+action,
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	h.render(w, r, http.StatusInternalServerError, pages.ServerError())
}

// redirect устанавливает flash-сообщение и перенаправляет (POST → redirect → GET).
func (h *UIHandler) redirect(w http.ResponseWriter, r *http.Request, to string, kind flash.Kind, key string) {
	if err := h.flash.Set(w, kind, key); err != nil {
		h.logger.Warn("Ошибка установки flash-сообщения",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// fieldErrors извлекает ошибки полей из ошибки сервиса.
// rename переводит имя поля сервиса в имя поля формы (nil — без изменений).
func fieldErrors(err error, rename func(string) string) (pages.FieldErrors, bool) {
	var verrs service.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}
	out := make(pages.FieldErrors, len(verrs))
	for _, fe := range verrs {
		field := fe.Field
		if rename != nil {
			field = rename(field)
		}
		if _, ok := out[field]; !ok {
			out[field] = fe.Reason
		}
	}
	return out, true
}

// formValue возвращает значение поля формы без окружающих пробелов.
func formValue(r *http.Request, name string) string {
	return strings.TrimSpace(r.PostFormValue(name))
}
