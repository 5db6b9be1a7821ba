// openapi.go — проверка запросов JSON API по встроенному OpenAPI-документу.
// Пути документа указаны без префикса /api/v1, префикс снимается перед поиском маршрута.
package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"

	apierrors "github.com/bigkaa/componentor/internal/api/errors"
)

// OpenAPIValidator возвращает middleware, отклоняющий запросы, не соответствующие документу.
// Запросы к путям, которых нет в документе, пропускаются без проверки.
func OpenAPIValidator(doc *openapi3.T, basePath string, logger *slog.Logger) (func(http.Handler) http.Handler, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("создание маршрутизатора OpenAPI: %w", err)
	}
	basePath = "/" + strings.Trim(basePath, "/")
	logger = logger.With(slog.String("component", "openapi_validator"))

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Неизвестный путь или метод: ответ 404/405 формирует маршрутизатор chi.
			route, pathParams, err := findRoute(router, r, basePath)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				logger.Debug("Запрос не соответствует OpenAPI-документу",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("error", err.Error()),
				)
				if isPathParamError(err) {
					apierrors.NotFound(w, "Запись не найдена")
					return
				}
				apierrors.ValidationError(w, requestErrorMessage(err))
				return
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}

// findRoute ищет маршрут документа для запроса без префикса basePath.
// Путь запроса восстанавливается перед возвратом.
func findRoute(router routers.Router, r *http.Request, basePath string) (*routers.Route, map[string]string, error) {
	path := r.URL.Path
	if path != basePath && !strings.HasPrefix(path, basePath+"/") {
		return nil, nil, routers.ErrPathNotFound
	}

	origPath, origRawPath := r.URL.Path, r.URL.RawPath
	defer func() {
		r.URL.Path, r.URL.RawPath = origPath, origRawPath
	}()

	r.URL.Path = strings.TrimPrefix(path, basePath)
	if r.URL.Path == "" {
		r.URL.Path = "/"
	}
	if origRawPath != "" {
		r.URL.RawPath = strings.TrimPrefix(origRawPath, basePath)
	}
	return router.FindRoute(r)
}

// isPathParamError сообщает, отклонён ли запрос из-за параметра пути:
// такой адрес не указывает ни на одну запись.
func isPathParamError(err error) bool {
	var reqErr *openapi3filter.RequestError
	return errors.As(err, &reqErr) && reqErr.Parameter != nil && reqErr.Parameter.In == openapi3.ParameterInPath
}

// requestErrorMessage сокращает ошибку openapi3filter до первой строки.
func requestErrorMessage(err error) string {
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i > 0 {
		msg = msg[:i]
	}
	return "запрос не соответствует контракту API: " + msg
}
