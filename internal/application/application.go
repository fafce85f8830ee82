// Package application собирает приложение: конфигурация, база, бот,
// планировщик и HTTP-сервера под одним errgroup.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"deals_bot/internal/config"
	"deals_bot/internal/domain/service/deals"
	"deals_bot/internal/domain/service/delivery"
	"deals_bot/internal/domain/service/update"
	"deals_bot/internal/infrastructure/cheapshark"
	"deals_bot/internal/infrastructure/messenger"
	"deals_bot/internal/infrastructure/metrics"
	"deals_bot/internal/infrastructure/migrate"
	"deals_bot/internal/infrastructure/persistence"
	"deals_bot/internal/server"
	"deals_bot/internal/transport/bot"
	"deals_bot/internal/transport/bot/handler"
	"deals_bot/internal/worker"
	"deals_bot/pkg/application/connectors"
	"deals_bot/pkg/application/modules"
	"deals_bot/pkg/contextx"
	"deals_bot/pkg/logx"
	"deals_bot/pkg/middlewarex"
)

const (
	httpShutdownTimeout = 10 * time.Second
	logFieldMaxLen      = 4096
)

func Run(ctx context.Context, log *slog.Logger) error {
	ctx = contextx.WithLogger(ctx, log)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	// База и миграции.
	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}

	if err := migrate.Run(ctx, db, cfg.Deals.MigrationsPath); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	guildRepo := persistence.NewGuildRepository(db)
	channelRepo := persistence.NewChannelRepository(db)

	// Чат-платформа и доменные сервисы.
	chat, err := messenger.NewTelegram(cfg.Bot.Token)
	if err != nil {
		return fmt.Errorf("messenger: %w", err)
	}

	deliveryMetrics := metrics.NewDeliveryMetrics(prometheus.DefaultRegisterer)

	dealsService := deals.NewService(cheapshark.NewClient(cfg.Deals.APIBaseURL, nil))
	deliveryService := delivery.NewService(channelRepo, chat, delivery.NewTaskRegistry(), deliveryMetrics)
	updateService := update.NewService(dealsService, deliveryService, guildRepo)

	// Командный транспорт.
	commandHandler := handler.New(updateService, dealsService, guildRepo, channelRepo, chat, cfg.Deals)

	tgBot, err := bot.New(cfg.Bot.Token, commandHandler)
	if err != nil {
		return fmt.Errorf("bot: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return tgBot.Run(ctx)
	})

	// Плановая доставка стартует только после подъёма бота.
	scheduler := worker.NewScheduler(dealsService, deliveryService, guildRepo, deliveryMetrics).
		WithAmounts(cfg.Deals.SteamAmount, cfg.Deals.GogAmount).
		WithReadySignal(tgBot.Ready())

	g.Go(func() error {
		return scheduler.Run(ctx)
	})

	// Админский API и служебные сервера.
	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.RequestLogging(logx.NewSensitiveDataMasker(), logFieldMaxLen),
		middlewarex.ResponseLogging(logx.NewSensitiveDataMasker(), logFieldMaxLen),
		middlewarex.Recovery,
	)
	server.NewServer(guildRepo, updateService).RegisterRoutes(router)

	modules.HTTPServer{ShutdownTimeout: httpShutdownTimeout}.Run(ctx, g, &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: time.Minute,
	})
	modules.MetricServer{ListenAddress: cfg.Server.MetricListenAddr}.Run(ctx, g)
	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Server.ProbeListenAddr,
	}.Run(ctx, g)

	return g.Wait()
}
