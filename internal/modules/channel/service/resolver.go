package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/reshetovitsme/offer-listener/internal/modules/channel/domain"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Source resolves a configured channel name to its chat identity.
type Source interface {
	ResolveChannel(ctx context.Context, name string) (domain.Channel, error)
}

// Resolver builds the monitored set at startup
type Resolver struct {
	source  Source
	timeout time.Duration
}

// New creates a new channel resolver
func New(source Source, timeout time.Duration) *Resolver {
	return &Resolver{
		source:  source,
		timeout: timeout,
	}
}

// Resolve resolves every name in order. A name that fails to resolve is logged
// and skipped; it never aborts the rest.
func (r *Resolver) Resolve(ctx context.Context, names []string) *domain.MonitoredSet {
	names = lo.Uniq(lo.FilterMap(names, func(name string, _ int) (string, bool) {
		name = strings.TrimSpace(name)
		return name, name != ""
	}))

	channels := make([]domain.Channel, 0, len(names))
	for _, name := range names {
		if ctx.Err() != nil {
			slog.Warn("Channel resolution interrupted", "resolved", len(channels), "configured", len(names))
			break
		}
		ch, err := r.resolveOne(ctx, name)
		if err != nil {
			slog.Error("Failed to resolve channel", "channel", name, "error", err)
			continue
		}
		slog.Info("Monitoring channel", "channel", name, "channel_id", ch.ID, "title", ch.Title)
		channels = append(channels, ch)
	}

	set := domain.NewMonitoredSet(channels)
	if set.Empty() {
		slog.Warn("No channels resolved, ingestion will not match any message", "configured", len(names))
	}
	return set
}

func (r *Resolver) resolveOne(ctx context.Context, name string) (domain.Channel, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	ch, err := r.source.ResolveChannel(ctx, name)
	if err != nil {
		return domain.Channel{}, oops.With("channel", name).Wrap(err)
	}
	if strings.TrimSpace(ch.ID) == "" {
		return domain.Channel{}, oops.With("channel", name).Errorf("resolved channel has no id")
	}
	if ch.Name == "" {
		ch.Name = name
	}
	return ch, nil
}
