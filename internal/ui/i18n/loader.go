package i18n

import (
	"embed"
	"fmt"
	"log/slog"
)

//go:embed locales/*.json
var LocaleFS embed.FS

// LoadFromEmbedFS читает locales/<код>.json для каждого поддерживаемого языка.
// Отсутствие любого каталога — ошибка запуска.
func LoadFromEmbedFS(bundle *Bundle, logger *slog.Logger) error {
	for _, lang := range supportedCodes {
		data, err := LocaleFS.ReadFile("locales/" + lang + ".json")
		if err != nil {
			return fmt.Errorf("i18n: каталог %s: %w", lang, err)
		}
		if err := bundle.LoadMessages(lang, data); err != nil {
			return err
		}
	}

	logger.Debug("Переводы готовы", slog.Any("languages", supportedCodes))
	return nil
}
