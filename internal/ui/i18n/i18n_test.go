package i18n

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLocales_SameKeys(t *testing.T) {
	catalogs := make(map[string]map[string]string)
	for _, lang := range Languages {
		data, err := locales.ReadFile("locales/" + lang + ".json")
		if err != nil {
			t.Fatalf("каталог %s не найден: %v", lang, err)
		}
		var messages map[string]string
		if err := json.Unmarshal(data, &messages); err != nil {
			t.Fatalf("каталог %s: %v", lang, err)
		}
		catalogs[lang] = messages
	}

	for _, lang := range Languages {
		if _, ok := catalogs[DefaultLanguage]["lang."+lang]; !ok {
			t.Errorf("нет подписи переключателя lang.%s", lang)
		}
		for key := range catalogs[DefaultLanguage] {
			if _, ok := catalogs[lang][key]; !ok {
				t.Errorf("ключ %s отсутствует в %s", key, lang)
			}
		}
		for key := range catalogs[lang] {
			if _, ok := catalogs[DefaultLanguage][key]; !ok {
				t.Errorf("лишний ключ %s в %s", key, lang)
			}
		}
	}
}

func TestCatalog_Format(t *testing.T) {
	c := NewCatalog()
	if n, err := c.Add("en", []byte(`{"a": "A", "confirm": "Delete %s?"}`)); err != nil || n != 2 {
		t.Fatalf("Add(en) = %d, %v", n, err)
	}
	if _, err := c.Add("ru", []byte(`{"a": "А"}`)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		lang, key string
		args      []any
		want      string
	}{
		{"ru", "a", nil, "А"},
		{"ru", "confirm", []any{"steel"}, "Delete steel?"},
		{"de", "a", nil, "A"},
		{"en", "missing", nil, "missing"},
	}
	for _, tt := range tests {
		if got := c.Format(tt.lang, tt.key, tt.args...); got != tt.want {
			t.Errorf("Format(%s, %s) = %q, ожидали %q", tt.lang, tt.key, got, tt.want)
		}
	}
	if _, ok := c.Message("en", "missing"); ok {
		t.Error("Message нашёл отсутствующий ключ")
	}
	if _, err := c.Add("en", []byte(`not json`)); err == nil {
		t.Error("ожидали ошибку разбора каталога")
	}
}

func TestLoad(t *testing.T) {
	t.Cleanup(func() { SetDefault(nil) })

	fsys := fstest.MapFS{
		"locales/en.json": {Data: []byte(`{"home.title": "Catalog", "part.confirm": "Delete %s?"}`)},
		"locales/ru.json": {Data: []byte(`{"home.title": "Каталог"}`)},
	}
	if _, err := load(fsys, discardLogger()); err != nil {
		t.Fatalf("load: %v", err)
	}

	ctx := WithLang(context.Background(), "ru")
	if got := T(ctx, "home.title"); got != "Каталог" {
		t.Errorf("T = %q", got)
	}
	if got := Tf(ctx, "part.confirm", "P-1"); got != "Delete P-1?" {
		t.Errorf("Tf = %q", got)
	}
	if got := Reason(ctx, "required"); got != "validation.required" {
		t.Errorf("Reason = %q", got)
	}

	delete(fsys, "locales/ru.json")
	if _, err := load(fsys, discardLogger()); err == nil {
		t.Error("ожидали ошибку при отсутствии каталога ru")
	}
}

func TestLoad_Embedded(t *testing.T) {
	t.Cleanup(func() { SetDefault(nil) })

	c, err := Load(discardLogger())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, lang := range Languages {
		if _, ok := c.Message(lang, "app.title"); !ok {
			t.Errorf("app.title не найден для %s", lang)
		}
	}
}

func TestMiddleware_DetectLanguage(t *testing.T) {
	tests := []struct {
		name        string
		defaultLang string
		cookie      string
		accept      string
		want        string
	}{
		{"cookie важнее заголовка", "en", "ru", "en-US", "ru"},
		{"Accept-Language", "en", "", "ru-RU,ru;q=0.9", "ru"},
		{"Accept-Language без совпадений", "ru", "", "de-DE", "en"},
		{"неизвестный язык в cookie", "ru", "de", "", "ru"},
		{"по умолчанию", "ru", "", "", "ru"},
		{"неподдерживаемый язык по умолчанию", "de", "", "", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			handler := Middleware(tt.defaultLang)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				got = LangFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Errorf("язык = %q, ожидали %q", got, tt.want)
			}
		})
	}
}

func TestT_WithoutCatalog(t *testing.T) {
	if active.Load() != nil {
		t.Skip("каталог по умолчанию уже загружен")
	}
	ctx := context.Background()
	if got := Reason(ctx, "required"); got != "validation.required" {
		t.Errorf("Reason = %q", got)
	}
	if got := Tf(ctx, "%s-%d", "a", 1); got != "a-1" {
		t.Errorf("Tf = %q", got)
	}
}
