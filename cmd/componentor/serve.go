package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/bigkaa/componentor/internal/api/handlers"
	"github.com/bigkaa/componentor/internal/api/middleware"
	"github.com/bigkaa/componentor/internal/api/openapi"
	"github.com/bigkaa/componentor/internal/config"
	"github.com/bigkaa/componentor/internal/database"
	"github.com/bigkaa/componentor/internal/domain/validation"
	"github.com/bigkaa/componentor/internal/repository"
	"github.com/bigkaa/componentor/internal/server"
	"github.com/bigkaa/componentor/internal/service"
	"github.com/bigkaa/componentor/internal/ui/flash"
	uihandlers "github.com/bigkaa/componentor/internal/ui/handlers"
	"github.com/bigkaa/componentor/internal/ui/i18n"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить HTTP-сервер (JSON API и UI)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// runServe загружает конфигурацию, применяет миграции, подключается к PostgreSQL,
// создаёт сервисный слой, API и UI, запускает topologymetrics и HTTP-сервер
// с graceful shutdown.
func runServe(ctx context.Context) error {
	// 1. Конфигурация и логирование
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := config.SetupLogger(cfg)
	logger.Info("Componentor запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	// 2. Миграции БД
	logger.Info("Применение миграций БД...")
	if err := database.Migrate(cfg, logger); err != nil {
		return fmt.Errorf("ошибка миграций БД: %w", err)
	}

	// 3. PostgreSQL (pgxpool)
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("ошибка подключения к PostgreSQL: %w", err)
	}
	defer pool.Close()

	// 4. Репозитории и сервисы
	stores := repository.NewStores(pool)
	txRunner := repository.NewTxRunner(pool)
	validator := validation.New()

	materialsSvc := service.NewMaterialService(stores, txRunner, validator, logger)
	partsSvc := service.NewPartService(stores, txRunner, validator, logger)
	assembliesSvc := service.NewAssemblyService(stores, txRunner, validator, logger)

	// 5. API handlers
	healthHandler := handlers.NewHealthHandler(database.NewReadinessChecker(pool))
	apiHandler := handlers.NewAPIHandler(materialsSvc, partsSvc, assembliesSvc, logger)

	var apiValidator func(http.Handler) http.Handler
	if cfg.APIValidate {
		doc, err := openapi.Load(ctx)
		if err != nil {
			return fmt.Errorf("ошибка загрузки OpenAPI-документа: %w", err)
		}
		apiValidator, err = middleware.OpenAPIValidator(doc, "/api/v1", logger)
		if err != nil {
			return fmt.Errorf("ошибка создания OpenAPI-валидатора: %w", err)
		}
		logger.Info("Проверка запросов по OpenAPI включена")
	}

	// 6. topologymetrics — мониторинг PostgreSQL через существующий пул
	var dephealthSvc *service.DephealthService
	if cfg.DephealthEnabled {
		pgDB := stdlib.OpenDBFromPool(pool)
		defer pgDB.Close()

		dephealthSvc, err = service.NewDephealthService(
			config.ServiceName,
			cfg.DephealthGroup,
			pgDB,
			cfg.DatabaseURL(),
			cfg.DephealthCheckInterval,
			logger,
		)
		if err != nil {
			logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
				slog.String("error", err.Error()),
			)
			dephealthSvc = nil
		} else if err := dephealthSvc.Start(ctx); err != nil {
			logger.Warn("Ошибка запуска topologymetrics", slog.String("error", err.Error()))
		} else {
			logger.Info("topologymetrics запущен",
				slog.String("group", cfg.DephealthGroup),
				slog.String("check_interval", cfg.DephealthCheckInterval.String()),
			)
		}
	}

	// 7. UI (опционально, CM_UI_ENABLED)
	var uiComponents *server.UIComponents
	if cfg.UIEnabled {
		if _, err := i18n.Load(logger); err != nil {
			return err
		}

		flashMgr, err := flash.NewManager(cfg.UIFlashSecret)
		if err != nil {
			return err
		}
		if cfg.UIFlashSecret == "" {
			logger.Warn("CM_UI_FLASH_SECRET не задан, flash-сообщения не переживают рестарт")
		}

		uiComponents = &server.UIComponents{
			Handler: uihandlers.NewUIHandler(materialsSvc, partsSvc, assembliesSvc, flashMgr, logger),
			Flash:   flashMgr,
		}
		logger.Info("UI инициализирован", slog.String("default_lang", cfg.UIDefaultLang))
	} else {
		logger.Info("UI отключён (CM_UI_ENABLED=false)")
	}

	// 8. HTTP-сервер
	srv := server.New(cfg, logger, healthHandler, apiHandler, apiValidator, uiComponents)
	runErr := srv.Run()

	if dephealthSvc != nil {
		dephealthSvc.Stop()
	}
	if runErr != nil {
		return runErr
	}

	logger.Info("Componentor остановлен")
	return nil
}
