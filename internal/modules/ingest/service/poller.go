package service

import (
	"context"
	"log/slog"
	"time"

	channelDomain "github.com/reshetovitsme/offer-listener/internal/modules/channel/domain"
	offerDomain "github.com/reshetovitsme/offer-listener/internal/modules/offer/domain"
	"github.com/reshetovitsme/offer-listener/internal/shared/logging"
	"github.com/robfig/cron/v3"
	"github.com/samber/oops"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPollInterval    = 30 * time.Second
	DefaultPollLimit       = 3
	DefaultPollConcurrency = 4
)

// PollerOptions tunes the polling backstop.
type PollerOptions struct {
	Interval    time.Duration
	Limit       int
	Concurrency int
	Timeout     time.Duration
}

// Poller periodically re-reads the latest messages of every monitored channel.
// It is a backstop for dropped push events; the pipeline's dedup check
// suppresses everything the push path already handled.
type Poller struct {
	source    Fetcher
	monitored *channelDomain.MonitoredSet
	pipeline  Processor
	opts      PollerOptions
}

// NewPoller creates a new poll ingestor
func NewPoller(source Fetcher, monitored *channelDomain.MonitoredSet, pipeline Processor, opts PollerOptions) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultPollInterval
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultPollLimit
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultPollConcurrency
	}
	return &Poller{
		source:    source,
		monitored: monitored,
		pipeline:  pipeline,
		opts:      opts,
	}
}

// Run polls once immediately and then on every interval until ctx is done.
// A tick still running when the next one is due is skipped.
func (p *Poller) Run(ctx context.Context) error {
	logger := logging.CronLogger(slog.Default())
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger)),
	)
	job := cron.NewChain(cron.SkipIfStillRunning(logger)).Then(cron.FuncJob(func() { p.Tick(ctx) }))
	c.Schedule(cron.Every(p.opts.Interval), job)

	slog.Info("Poll ingestor started", "interval", p.opts.Interval, "limit", p.opts.Limit, "channels", p.monitored.Len())

	// Initial check
	job.Run()

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()

	slog.Info("Poll ingestor stopped")
	return nil
}

// Tick fetches every channel once. Channels are fetched in parallel up to the
// concurrency limit; a failing channel is logged and skipped.
func (p *Poller) Tick(ctx context.Context) {
	var g errgroup.Group
	g.SetLimit(p.opts.Concurrency)

	for _, ch := range p.monitored.Channels() {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := p.pollChannel(ctx, ch); err != nil {
				slog.Error("Error fetching messages for channel", "channel", ch.Name, "channel_id", ch.ID, "error", err)
			}
			return nil
		})
	}

	_ = g.Wait()
}

func (p *Poller) pollChannel(ctx context.Context, ch channelDomain.Channel) error {
	fetchCtx := ctx
	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}

	messages, err := p.source.FetchRecent(fetchCtx, ch, p.opts.Limit)
	if err != nil {
		return oops.With("channel_id", ch.ID, "limit", p.opts.Limit).Wrap(err)
	}

	delivered := 0
	for _, msg := range messages {
		if msg == nil {
			continue
		}
		if p.pipeline.Process(ctx, msg) == offerDomain.OutcomeDelivered {
			delivered++
		}
	}

	slog.Debug("Channel polled", "channel_id", ch.ID, "fetched", len(messages), "delivered", delivered)
	return nil
}
