package app

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/varoOP/shinkrobot/assets"
	"github.com/varoOP/shinkrobot/internal/catalog"
	"github.com/varoOP/shinkrobot/internal/command"
	"github.com/varoOP/shinkrobot/internal/config"
	"github.com/varoOP/shinkrobot/internal/database"
	"github.com/varoOP/shinkrobot/internal/domain"
	"github.com/varoOP/shinkrobot/internal/i18n"
	"github.com/varoOP/shinkrobot/internal/logger"
	"github.com/varoOP/shinkrobot/internal/notification"
	"github.com/varoOP/shinkrobot/pkg/anilist"
)

// App represents the main application with all dependencies initialized
type App struct {
	log     zerolog.Logger
	config  *domain.Config
	db      *database.DB
	catalog catalog.Service
	pool    *catalog.Pool
	i18n    *i18n.I18n
	handler *command.Handler
}

// NewApp creates a new application instance with all dependencies initialized
func NewApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	return New(logger.NewLoggerWithLevel(level), cfg)
}

// New wires the application from an already loaded config
func New(log zerolog.Logger, cfg *domain.Config) (*App, error) {
	db, err := database.NewDB(cfg.DatabaseDir, log)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize database")
	}

	translator := i18n.New(log, cfg.DefaultLocale)
	if cfg.LocalesDir != "" {
		err = translator.Load(cfg.LocalesDir)
	} else {
		err = translator.LoadFS(assets.Locales)
	}
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to load locales")
	}

	client := anilist.NewClient(
		anilist.WithEndpoint(cfg.AnilistURL),
		anilist.WithTimeout(cfg.AnilistTimeout),
		anilist.WithRateLimit(cfg.AnilistRateLimit),
		anilist.WithLogger(log),
	)

	chats := database.NewChatRepo(log, db)
	catalogService := catalog.NewService(log, client, cfg.CacheCapacity)
	pool := catalog.NewPool(log, client, chats, cfg.CacheCapacity)
	notificationService := notification.NewService(log, cfg.DiscordWebhookURL)

	return &App{
		log:     log,
		config:  cfg,
		db:      db,
		catalog: catalogService,
		pool:    pool,
		i18n:    translator,
		handler: command.NewHandler(log, catalogService, pool, chats, translator, notificationService),
	}, nil
}

func (a *App) Config() *domain.Config {
	return a.config
}

func (a *App) Catalog() catalog.Service {
	return a.catalog
}

func (a *App) I18n() *i18n.I18n {
	return a.i18n
}

// Handle passes one request to the command handler
func (a *App) Handle(ctx context.Context, req command.Request) (*command.Reply, error) {
	return a.handler.Handle(ctx, req)
}

// Ping checks the database is reachable
func (a *App) Ping(ctx context.Context) error {
	return a.db.Ping(ctx)
}

func (a *App) Close() error {
	a.log.Debug().Msg("closing application")
	return a.db.Close()
}
