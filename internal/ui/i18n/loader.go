package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
)

//go:embed locales/*.json
var locales embed.FS

// Load читает встроенные каталоги всех Languages и делает результат
// каталогом по умолчанию. Отсутствие файла любого языка — ошибка старта.
func Load(logger *slog.Logger) (*Catalog, error) {
	return load(locales, logger)
}

func load(fsys fs.FS, logger *slog.Logger) (*Catalog, error) {
	c := NewCatalog()
	for _, lang := range Languages {
		name := path.Join("locales", lang+".json")
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("i18n: чтение %s: %w", name, err)
		}
		n, err := c.Add(lang, data)
		if err != nil {
			return nil, err
		}
		logger.Debug("i18n каталог загружен", slog.String("lang", lang), slog.Int("keys", n))
	}

	SetDefault(c)
	logger.Info("i18n каталоги загружены", slog.Any("languages", Languages))
	return c, nil
}
