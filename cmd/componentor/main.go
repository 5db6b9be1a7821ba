// Точка входа Componentor — каталог материалов, деталей и сборок.
// Команды: serve (по умолчанию) — HTTP-сервер с JSON API и UI;
// migrate up|down|version — управление схемой БД.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bigkaa/componentor/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "componentor",
	Short: "Каталог материалов, деталей и сборок",
	Long: `componentor — сервис каталога: материалы, детали из них и сборки из деталей.

Примеры:

  componentor                  # запуск HTTP-сервера (serve)
  componentor migrate up       # применить миграции
  componentor migrate down -s 2
  componentor migrate version
`,
	Version:       config.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	// Без подкоманды — запуск сервера
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Локальный .env необязателен: переменные могут прийти из окружения
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, "✗", err)
		os.Exit(1)
	}
}

// loadConfig загружает конфигурацию из переменных окружения.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}
	return cfg, nil
}
