package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lumiforge/tierhub-backend/internal/audit"
	"github.com/lumiforge/tierhub-backend/internal/auth"
	"github.com/lumiforge/tierhub-backend/internal/cache"
	"github.com/lumiforge/tierhub-backend/internal/config"
	"github.com/lumiforge/tierhub-backend/internal/content"
	"github.com/lumiforge/tierhub-backend/internal/document"
	"github.com/lumiforge/tierhub-backend/internal/email"
	app_errors "github.com/lumiforge/tierhub-backend/internal/errors"
	httpserver "github.com/lumiforge/tierhub-backend/internal/http"
	"github.com/lumiforge/tierhub-backend/internal/jwt"
	"github.com/lumiforge/tierhub-backend/internal/logger"
	"github.com/lumiforge/tierhub-backend/internal/plan"
	"github.com/lumiforge/tierhub-backend/internal/rbac"
	"github.com/lumiforge/tierhub-backend/internal/storage"
	"github.com/lumiforge/tierhub-backend/internal/subscription"
	"github.com/lumiforge/tierhub-backend/internal/telegram"
	"github.com/lumiforge/tierhub-backend/internal/ydb"
)

// App собранное приложение: роутер и ресурсы, которые нужно закрыть при остановке
type App struct {
	Handler http.Handler
	Config  *config.Config

	db    *ydb.YDBClient
	redis *cache.RedisClient
}

// Close освобождает соединения с YDB и Redis
func (a *App) Close() error {
	var firstErr error
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			firstErr = err
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Initialize настраивает все зависимости и возвращает готовое приложение
func Initialize(ctx context.Context) (*App, error) {
	// Загрузка конфигурации
	cfg := config.Load()

	// Инициализация Telegram клиента
	tgClient := telegram.NewClient(cfg)

	// Инициализация логгера
	log := logger.New(tgClient)
	slog.SetDefault(log)

	// Каталог контента читаем до подключения к базе: без него сервис бесполезен
	catalog, err := content.LoadCatalogFile(cfg.ContentCatalogPath)
	if err != nil {
		return nil, err
	}

	// Инициализация YDB
	db, err := ydb.NewYDBClient(ctx, cfg)
	if err != nil {
		slog.Error("YDB connection failed", "error", err)
		return nil, app_errors.ErrFailedToConnectYDB
	}

	// Redis необязателен: без него кэш планов и ограничение попыток входа отключены
	redisClient := cache.NewRedis(cfg)
	if redisClient != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := redisClient.Ping(pingCtx); err != nil {
			log.Warn("Redis unavailable, continuing without cache", "error", err)
		}
		cancel()
	}
	limiterWindow := time.Duration(cfg.LoginWindowSeconds) * time.Second
	loginLimiter := cache.NewRateLimiter(redisClient, "login:", cfg.LoginMaxAttempts, limiterWindow)
	verifyLimiter := cache.NewRateLimiter(redisClient, "verify:", cfg.LoginMaxAttempts, limiterWindow)

	// Инициализация JWT менеджера
	jwtManager := jwt.NewJWTManager(cfg)
	if jwtManager == nil {
		db.Close()
		return nil, app_errors.ErrJWTSecretKeyNotConfigured
	}

	// Инициализация RBAC
	rbacManager := rbac.NewRBAC()

	// Инициализация email клиента
	emailClient := email.NewClient(cfg)
	if !emailClient.IsConfigured() {
		log.Warn("Email delivery is not configured, messages will be skipped")
	}

	// Инициализация S3 клиента
	storageClient, err := storage.NewClient(ctx, cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", app_errors.ErrFailedToInitStorageClient, err)
	}

	// Инициализация сервисов
	auditService := audit.NewService(db, log)
	planService := plan.NewService(db, redisClient, log)
	subscriptionService := subscription.NewService(db, planService, emailClient, auditService, log)
	authService := auth.NewService(db, jwtManager, rbacManager, emailClient, subscriptionService, loginLimiter, verifyLimiter, auditService, cfg, log)
	contentService := content.NewService(catalog, subscriptionService)
	documentService := document.NewService(db, storageClient, auditService, cfg, log)

	// Инициализация HTTP сервера
	server := httpserver.NewServer(httpserver.Services{
		Auth:         authService,
		Plans:        planService,
		Subscription: subscriptionService,
		Content:      contentService,
		Documents:    documentService,
		Audit:        auditService,
		RBAC:         rbacManager,
	}, cfg)

	// Настройка роутера
	router := httpserver.SetupRouter(server, authService, rbacManager, cfg, log)

	log.Info("Application initialized successfully",
		"content_items", len(catalog.Items),
		"legal_pages", len(catalog.Legal),
		"redis", redisClient != nil,
	)
	return &App{Handler: router, Config: cfg, db: db, redis: redisClient}, nil
}
