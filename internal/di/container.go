package di

import (
	"context"
	"log/slog"

	channelDomain "github.com/reshetovitsme/offer-listener/internal/modules/channel/domain"
	channelService "github.com/reshetovitsme/offer-listener/internal/modules/channel/service"
	feedService "github.com/reshetovitsme/offer-listener/internal/modules/feed/service"
	ingestService "github.com/reshetovitsme/offer-listener/internal/modules/ingest/service"
	messageRepo "github.com/reshetovitsme/offer-listener/internal/modules/message/repository"
	offerRepo "github.com/reshetovitsme/offer-listener/internal/modules/offer/repository"
	offerService "github.com/reshetovitsme/offer-listener/internal/modules/offer/service"
	"github.com/reshetovitsme/offer-listener/internal/shared/config"
	httpServer "github.com/reshetovitsme/offer-listener/internal/transport/http"
	"github.com/reshetovitsme/offer-listener/internal/transport/sink"
	"github.com/reshetovitsme/offer-listener/internal/transport/telegram"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
)

// Setup initializes the dependency injection container. ctx bounds the
// startup channel resolution.
func Setup(ctx context.Context) (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register Seen Store (dedup cache)
	do.Provide(injector, func(i do.Injector) (messageRepo.SeenStore, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return messageRepo.NewMemoryStorage(cfg.DedupCapacity, cfg.DedupEvict), nil
	})

	// Register Offer Repository
	do.Provide(injector, func(i do.Injector) (offerRepo.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return offerRepo.NewMemoryStorage(cfg.RecentOffers), nil
	})

	// Register Telegram Source
	do.Provide(injector, func(i do.Injector) (*telegram.Source, error) {
		cfg := do.MustInvoke[*config.Config](i)
		preview := telegram.NewPreview(cfg.TelegramPreviewURL, cfg.PreviewRate, cfg.Timeout())
		source, err := telegram.New(cfg.TelegramSession, cfg.TelegramAPIURL, preview)
		if err != nil {
			return nil, oops.With("context", "failed to connect to telegram").Wrap(err)
		}
		return source, nil
	})

	// Register Ingest Sink
	do.Provide(injector, func(i do.Injector) (offerService.Sink, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.IngestURL == "" {
			slog.Warn("SUPABASE_INGEST_URL not set, offers will only be logged")
			return sink.LogSink{}, nil
		}
		return sink.New(cfg.IngestURL, cfg.IngestToken, cfg.Timeout()), nil
	})

	// Register Offer Pipeline
	do.Provide(injector, func(i do.Injector) (*offerService.Pipeline, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return offerService.NewPipeline(
			do.MustInvoke[messageRepo.SeenStore](i),
			do.MustInvoke[offerRepo.Repository](i),
			do.MustInvoke[*telegram.Source](i),
			do.MustInvoke[offerService.Sink](i),
			cfg.Timeout(),
		), nil
	})

	// Register Channel Resolver
	do.Provide(injector, func(i do.Injector) (*channelService.Resolver, error) {
		cfg := do.MustInvoke[*config.Config](i)
		source := do.MustInvoke[*telegram.Source](i)
		return channelService.New(source, cfg.Timeout()), nil
	})

	// Register Monitored Set, resolved once at startup
	do.Provide(injector, func(i do.Injector) (*channelDomain.MonitoredSet, error) {
		cfg := do.MustInvoke[*config.Config](i)
		resolver := do.MustInvoke[*channelService.Resolver](i)
		return resolver.Resolve(ctx, cfg.TargetChannels), nil
	})

	// Register Event Ingestor
	do.Provide(injector, func(i do.Injector) (*ingestService.EventIngestor, error) {
		return ingestService.NewEventIngestor(
			do.MustInvoke[*telegram.Source](i),
			do.MustInvoke[*channelDomain.MonitoredSet](i),
			do.MustInvoke[*offerService.Pipeline](i),
		), nil
	})

	// Register Poller
	do.Provide(injector, func(i do.Injector) (*ingestService.Poller, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return ingestService.NewPoller(
			do.MustInvoke[*telegram.Source](i),
			do.MustInvoke[*channelDomain.MonitoredSet](i),
			do.MustInvoke[*offerService.Pipeline](i),
			ingestService.PollerOptions{
				Interval:    cfg.PollEvery(),
				Limit:       cfg.PollLimit,
				Concurrency: cfg.PollConcurrency,
				Timeout:     cfg.Timeout(),
			},
		), nil
	})

	// Register Feed Service
	do.Provide(injector, func(i do.Injector) (*feedService.Service, error) {
		return feedService.New(do.MustInvoke[offerRepo.Repository](i)), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		feedService := do.MustInvoke[*feedService.Service](i)
		server := httpServer.New(cfg, feedService)
		server.SetLogger(slog.Default())
		return server, nil
	})

	return injector, nil
}

// Shutdown gracefully shuts down all services
func Shutdown(ctx context.Context, injector do.Injector) error {
	if server, err := do.Invoke[*httpServer.Server](injector); err == nil && server != nil {
		if err := server.Shutdown(ctx); err != nil {
			return oops.With("context", "failed to stop http server").Wrap(err)
		}
	}
	return nil
}
