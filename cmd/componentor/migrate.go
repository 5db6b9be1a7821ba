package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bigkaa/componentor/internal/config"
	"github.com/bigkaa/componentor/internal/database"
)

var migrateSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Управление схемой БД",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Применить все новые миграции",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := database.Migrate(cfg, config.SetupLogger(cfg)); err != nil {
			return err
		}
		return printVersion(cfg, "Миграции применены")
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Откатить последние миграции",
	Long: `Откатывает последнюю миграцию или несколько миграций.

Примеры:
  componentor migrate down            # откатить последнюю миграцию
  componentor migrate down --steps=3  # откатить 3 миграции
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := database.Rollback(cfg, migrateSteps, config.SetupLogger(cfg)); err != nil {
			return err
		}
		return printVersion(cfg, fmt.Sprintf("Откачено миграций: %d", migrateSteps))
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Показать текущую версию схемы",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return printVersion(cfg, "Схема БД")
	},
}

func init() {
	migrateDownCmd.Flags().IntVarP(&migrateSteps, "steps", "s", 1, "Количество откатываемых миграций")

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateVersionCmd)
}

// printVersion выводит текущую версию схемы; dirty выделяется красным.
func printVersion(cfg *config.Config, title string) error {
	version, dirty, err := database.MigrationVersion(cfg)
	if err != nil {
		return err
	}

	if dirty {
		color.New(color.FgRed, color.Bold).Printf("✗ %s: версия %d (dirty)\n", title, version)
		return nil
	}
	color.New(color.FgGreen, color.Bold).Printf("✓ %s: версия %d\n", title, version)
	return nil
}
