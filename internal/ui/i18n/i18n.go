// Пакет i18n — переводы серверного UI каталога.
//
// Сообщения хранятся в плоских JSON-каталогах locales/<язык>.json, встроенных
// в бинарник. Load читает их при старте и делает каталогом по умолчанию;
// страницы берут строки через T и Tf, язык запроса кладёт в контекст Middleware.
// Отсутствующий перевод ищется в DefaultLanguage, затем выводится сам ключ.
package i18n

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"golang.org/x/text/language"
)

// DefaultLanguage — язык интерфейса и перевода по умолчанию.
const DefaultLanguage = "en"

// Languages — коды языков интерфейса в порядке показа в переключателе.
// Индексы совпадают с тегами matcher.
var Languages = []string{"en", "ru"}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Russian})

type langKey struct{}

// Catalog — сообщения всех языков: язык → ключ → шаблон.
type Catalog struct {
	mu       sync.RWMutex
	messages map[string]map[string]string
}

// NewCatalog создаёт пустой каталог.
func NewCatalog() *Catalog {
	return &Catalog{messages: make(map[string]map[string]string)}
}

// Add разбирает JSON вида {"ключ": "текст"} и заменяет им сообщения языка lang.
// Возвращает число загруженных ключей.
func (c *Catalog) Add(lang string, data []byte) (int, error) {
	var messages map[string]string
	if err := json.Unmarshal(data, &messages); err != nil {
		return 0, fmt.Errorf("i18n: каталог %s: %w", lang, err)
	}

	c.mu.Lock()
	c.messages[lang] = messages
	c.mu.Unlock()
	return len(messages), nil
}

// Message ищет шаблон сообщения в lang, затем в DefaultLanguage.
func (c *Catalog) Message(lang, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if msg, ok := c.messages[lang][key]; ok {
		return msg, true
	}
	msg, ok := c.messages[DefaultLanguage][key]
	return msg, ok
}

// Format возвращает сообщение с подставленными args.
// Неизвестный ключ выводится как есть, чтобы пропуск был виден на странице.
func (c *Catalog) Format(lang, key string, args ...any) string {
	msg, ok := c.Message(lang, key)
	if !ok {
		msg = key
	}
	if len(args) == 0 {
		return msg
	}
	return sprintf(msg, args...)
}

// sprintf вызывается через переменную: шаблоны приходят из JSON,
// и printf-анализатор go vet не может сверить их с аргументами.
//
//nolint:govet
var sprintf = fmt.Sprintf

var active atomic.Pointer[Catalog]

// SetDefault делает c каталогом, из которого читают T, Tf и Reason.
func SetDefault(c *Catalog) {
	active.Store(c)
}

// WithLang помещает язык в контекст.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langKey{}, lang)
}

// LangFromContext возвращает язык запроса или DefaultLanguage.
func LangFromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(langKey{}).(string); ok && lang != "" {
		return lang
	}
	return DefaultLanguage
}

// T переводит key на язык из контекста: { i18n.T(ctx, "material.list.title") }.
// Без загруженного каталога возвращает сам ключ.
func T(ctx context.Context, key string) string {
	return Tf(ctx, key)
}

// Tf — T с подстановкой аргументов в шаблон сообщения.
func Tf(ctx context.Context, key string, args ...any) string {
	c := active.Load()
	if c == nil {
		if len(args) == 0 {
			return key
		}
		return sprintf(key, args...)
	}
	return c.Format(LangFromContext(ctx), key, args...)
}

// Reason — текст причины отклонения поля формы (ключ validation.<reason>).
func Reason(ctx context.Context, reason string) string {
	return T(ctx, "validation."+reason)
}

// IsSupported сообщает, есть ли язык среди Languages.
func IsSupported(lang string) bool {
	return slices.Contains(Languages, lang)
}

// MatchLanguage выбирает язык интерфейса по заголовку Accept-Language.
// Без совпадений возвращается первый из Languages.
func MatchLanguage(acceptLanguage string) string {
	_, idx := language.MatchStrings(matcher, acceptLanguage)
	return Languages[idx]
}
