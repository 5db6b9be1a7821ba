package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"

	"github.com/bigkaa/componentor/internal/api/openapi"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/health/live", "/health/live"},
		{"/api/v1/materials", "/api/v1/materials"},
		{"/api/v1/materials/5f1c2b9e-3a47-4c1d-9a0e-2b6f8d4e7c11", "/api/v1/materials/{id}"},
		{"/api/v1/assemblies/5f1c2b9e-3a47-4c1d-9a0e-2b6f8d4e7c11/lines", "/api/v1/assemblies/{id}/lines"},
		{"/parts/5f1c2b9e-3a47-4c1d-9a0e-2b6f8d4e7c11/delete", "/parts/{id}/delete"},
		{"/static/css/app.css", "/static/*"},
		// 36 символов, но не UUID
		{"/materials/xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx", "/materials/xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, ожидали %q", tt.path, got, tt.want)
		}
	}
}

func TestRequestLogger_LevelByStatus(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusNotFound, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tt.status)
			_, _ = w.Write([]byte("body"))
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/materials/", nil))

		var entry map[string]any
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("запись лога не JSON: %v (%s)", err, buf.String())
		}
		if entry["level"] != tt.level {
			t.Errorf("status %d: level = %v, ожидали %s", tt.status, entry["level"], tt.level)
		}
		if entry["bytes"] != float64(4) {
			t.Errorf("bytes = %v, ожидали 4", entry["bytes"])
		}
		if entry["component"] != "http" {
			t.Errorf("component = %v, ожидали http", entry["component"])
		}
	}
}

func TestMetricsMiddleware_PassesStatus(t *testing.T) {
	handler := MetricsMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, ожидали %d", rec.Code, http.StatusTeapot)
	}
}

// newValidatedHandler возвращает обработчик за OpenAPIValidator и флаг его вызова.
func newValidatedHandler(t *testing.T) (http.Handler, *bool) {
	t.Helper()
	doc, err := openapi.Load(context.Background())
	if err != nil {
		t.Fatalf("openapi.Load() вернул ошибку: %v", err)
	}
	mw, err := OpenAPIValidator(doc, "/api/v1", slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("OpenAPIValidator() вернул ошибку: %v", err)
	}

	called := new(bool)
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		// Тело должно остаться доступным после проверки.
		_, _ = io.Copy(w, r.Body)
	})), called
}

func TestOpenAPIValidator(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantCalled bool
	}{
		{"корректный материал", http.MethodPost, "/api/v1/materials", `{"name":"Steel","density":7.85}`, true},
		{"плотность строкой", http.MethodPost, "/api/v1/materials", `{"name":"Steel","density":"heavy"}`, false},
		{"лишнее поле", http.MethodPost, "/api/v1/materials", `{"name":"Steel","color":"grey"}`, false},
		{"неизвестная директива", http.MethodPost, "/api/v1/assemblies",
			`{"designation":"1","name":"A","lines":[{"op":"replace","line_id":"x"}]}`, false},
		{"корректная сборка", http.MethodPut, "/api/v1/assemblies/5f1c2b9e-3a47-4c1d-9a0e-2b6f8d4e7c11",
			`{"designation":"1","name":"A","lines":[{"op":"upsert","part_id":"p","quantity":2}]}`, true},
		{"количество больше int4", http.MethodPost, "/api/v1/assemblies",
			`{"designation":"1","name":"A","lines":[{"op":"upsert","part_id":"p","quantity":2147483648}]}`, false},
		{"путь вне документа", http.MethodGet, "/materials/", "", true},
		{"чтение списка", http.MethodGet, "/api/v1/parts?q=bolt", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, called := newValidatedHandler(t)

			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.path, body)
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if *called != tt.wantCalled {
				t.Fatalf("обработчик вызван = %v, ожидали %v (ответ %d: %s)", *called, tt.wantCalled, rec.Code, rec.Body.String())
			}
			if !tt.wantCalled {
				if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "VALIDATION_ERROR") {
					t.Errorf("ответ = %d %s, ожидали 400 VALIDATION_ERROR", rec.Code, rec.Body.String())
				}
				return
			}
			if rec.Body.String() != tt.body {
				t.Errorf("тело запроса после проверки = %q, ожидали %q", rec.Body.String(), tt.body)
			}
		})
	}
}

func TestIsPathParamError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"параметр пути", &openapi3filter.RequestError{
			Parameter: &openapi3.Parameter{In: openapi3.ParameterInPath, Name: "id"},
			Err:       errors.New("string doesn't match the format \"uuid\""),
		}, true},
		{"обёрнутая ошибка пути", fmt.Errorf("проверка: %w", &openapi3filter.RequestError{
			Parameter: &openapi3.Parameter{In: openapi3.ParameterInPath, Name: "id"},
		}), true},
		{"параметр запроса", &openapi3filter.RequestError{
			Parameter: &openapi3.Parameter{In: openapi3.ParameterInQuery, Name: "q"},
		}, false},
		{"тело запроса", &openapi3filter.RequestError{Err: errors.New("bad body")}, false},
		{"другая ошибка", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPathParamError(tt.err); got != tt.want {
				t.Errorf("isPathParamError = %v, ожидали %v", got, tt.want)
			}
		})
	}
}
