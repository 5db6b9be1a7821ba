// Пакет server — HTTP-сервер Componentor с graceful shutdown.
// Без TLS — TLS termination на ingress.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/componentor/internal/api/errors"
	"github.com/bigkaa/componentor/internal/api/generated"
	"github.com/bigkaa/componentor/internal/api/handlers"
	"github.com/bigkaa/componentor/internal/api/middleware"
	"github.com/bigkaa/componentor/internal/config"
	"github.com/bigkaa/componentor/internal/ui/flash"
	uihandlers "github.com/bigkaa/componentor/internal/ui/handlers"
	"github.com/bigkaa/componentor/internal/ui/i18n"
	uimiddleware "github.com/bigkaa/componentor/internal/ui/middleware"
	"github.com/bigkaa/componentor/internal/ui/static"
)

// Server — HTTP-сервер Componentor.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// UIComponents — компоненты серверного UI. nil — UI отключён.
type UIComponents struct {
	Handler *uihandlers.UIHandler
	Flash   *flash.Manager
}

// New создаёт HTTP-сервер с настроенными routes и middleware.
// apiValidator — проверка запросов /api/v1 по OpenAPI (может быть nil).
func New(
	cfg *config.Config,
	logger *slog.Logger,
	health *handlers.HealthHandler,
	api *handlers.APIHandler,
	apiValidator func(http.Handler) http.Handler,
	ui *UIComponents,
) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      NewRouter(cfg, logger, health, api, apiValidator, ui),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		logger: logger,
		cfg:    cfg,
	}
}

// NewRouter собирает маршруты сервера: health, metrics, /api/v1 и страницы UI.
func NewRouter(
	cfg *config.Config,
	logger *slog.Logger,
	health *handlers.HealthHandler,
	api *handlers.APIHandler,
	apiValidator func(http.Handler) http.Handler,
	ui *UIComponents,
) chi.Router {
	router := chi.NewRouter()

	// Глобальные middleware (применяются ко ВСЕМ маршрутам)
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestLogger(logger))

	// Health и metrics проверяются Kubernetes напрямую
	router.Get("/health/live", health.HealthLive)
	router.Get("/health/ready", health.HealthReady)
	router.Get("/metrics", health.GetMetrics)

	router.Route("/api/v1", func(r chi.Router) {
		if apiValidator != nil {
			r.Use(apiValidator)
		}
		r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			apierrors.NotFound(w, "Маршрут не найден")
		})
		generated.HandlerWithOptions(api, generated.ChiServerOptions{
			BaseRouter:       r,
			ErrorHandlerFunc: api.ParamError,
		})
	})

	if ui != nil {
		router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(static.FileSystem())))

		router.Group(func(r chi.Router) {
			r.Use(i18n.Middleware(cfg.UIDefaultLang))
			r.Use(uimiddleware.Flash(ui.Flash, logger))
			ui.Handler.RegisterRoutes(r)
			r.NotFound(ui.Handler.HandleNotFound)
		})
	}

	return router
}

// Run запускает сервер и ожидает сигнала завершения (SIGINT, SIGTERM).
// При получении сигнала выполняется graceful shutdown.
func (s *Server) Run() error {
	// Канал для ошибок сервера
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
