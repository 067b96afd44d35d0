package service

import (
	"context"

	channelDomain "github.com/reshetovitsme/offer-listener/internal/modules/channel/domain"
	messageDomain "github.com/reshetovitsme/offer-listener/internal/modules/message/domain"
	offerDomain "github.com/reshetovitsme/offer-listener/internal/modules/offer/domain"
)

// Handler receives every message the push stream delivers.
type Handler func(ctx context.Context, msg *messageDomain.RawMessage)

// Subscriber delivers the real-time message stream. Subscribe blocks until ctx
// is cancelled (nil) or the connection is lost for good (error).
type Subscriber interface {
	Subscribe(ctx context.Context, handle Handler) error
}

// Fetcher returns the most recent messages of a channel.
type Fetcher interface {
	FetchRecent(ctx context.Context, channel channelDomain.Channel, limit int) ([]*messageDomain.RawMessage, error)
}

// Processor is the shared offer pipeline.
type Processor interface {
	Process(ctx context.Context, msg *messageDomain.RawMessage) offerDomain.Outcome
}
