package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	messageDomain "github.com/reshetovitsme/offer-listener/internal/modules/message/domain"
	messageRepo "github.com/reshetovitsme/offer-listener/internal/modules/message/repository"
	"github.com/reshetovitsme/offer-listener/internal/modules/offer/domain"
	offerRepo "github.com/reshetovitsme/offer-listener/internal/modules/offer/repository"
	"github.com/reshetovitsme/offer-listener/internal/shared/text"
)

const previewLength = 50

// Sink accepts one offer per call
type Sink interface {
	Submit(ctx context.Context, offer *domain.Offer) error
}

// TitleSource looks up a human-readable chat name
type TitleSource interface {
	ChatTitle(ctx context.Context, chatID string) (string, error)
}

// Pipeline is the single entry point shared by both ingestion paths and the
// only component allowed to call the sink.
type Pipeline struct {
	seen    messageRepo.SeenStore
	offers  offerRepo.Repository
	titles  TitleSource
	sink    Sink
	timeout time.Duration
}

// NewPipeline creates a new offer pipeline
func NewPipeline(seen messageRepo.SeenStore, offers offerRepo.Repository, titles TitleSource, sink Sink, timeout time.Duration) *Pipeline {
	return &Pipeline{
		seen:    seen,
		offers:  offers,
		titles:  titles,
		sink:    sink,
		timeout: timeout,
	}
}

// Process runs dedup, link extraction and submission for one message.
// It never returns an error: every failure is logged and reported through the outcome.
func (p *Pipeline) Process(ctx context.Context, msg *messageDomain.RawMessage) domain.Outcome {
	if !msg.Valid() {
		return domain.OutcomeInvalid
	}

	key := messageDomain.KeyOf(msg)
	if p.seen.Seen(key) {
		slog.Debug("Message already processed", "key", key.String())
		return domain.OutcomeDuplicate
	}

	body := msg.Body()
	link, ok := ExtractLink(body)
	if !ok {
		return domain.OutcomeNoLink
	}

	slog.Info("Offer detected", "chat_id", msg.ChatID, "message_id", msg.ID, "preview", text.Truncate(body, previewLength))

	offer := &domain.Offer{
		URL:           link.URL,
		RawText:       body,
		SourceChannel: p.sourceLabel(ctx, msg),
		Key:           key,
		ChatID:        msg.ChatID,
	}
	if link.IsImage {
		offer.ImageURL = link.URL
	}

	submitCtx, cancel := p.withTimeout(ctx)
	defer cancel()

	if err := p.sink.Submit(submitCtx, offer); err != nil {
		slog.Error("Failed to submit offer", "chat_id", msg.ChatID, "message_id", msg.ID, "url", offer.URL, "error", err)
		return domain.OutcomeFailed
	}

	offer.SubmittedAt = time.Now()
	if err := p.offers.SaveOffer(offer); err != nil {
		slog.Error("Failed to record delivered offer", "key", key.String(), "error", err)
	}

	slog.Info("Offer submitted", "chat_id", msg.ChatID, "message_id", msg.ID, "source", offer.SourceChannel, "url", offer.URL)
	return domain.OutcomeDelivered
}

func (p *Pipeline) sourceLabel(ctx context.Context, msg *messageDomain.RawMessage) string {
	if p.titles != nil {
		lookupCtx, cancel := p.withTimeout(ctx)
		title, err := p.titles.ChatTitle(lookupCtx, msg.ChatID)
		cancel()
		if err != nil {
			slog.Warn("Failed to fetch chat title, using fallback", "chat_id", msg.ChatID, "error", err)
		} else if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}

	if msg.SenderChatTitle != "" {
		return msg.SenderChatTitle
	}
	return msg.ChatID
}

func (p *Pipeline) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.timeout)
}
