package telegram

import (
	"context"
	stderrors "errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	channelDomain "github.com/reshetovitsme/offer-listener/internal/modules/channel/domain"
	ingestService "github.com/reshetovitsme/offer-listener/internal/modules/ingest/service"
	messageDomain "github.com/reshetovitsme/offer-listener/internal/modules/message/domain"
	"github.com/reshetovitsme/offer-listener/internal/shared/errors"
	"github.com/samber/oops"
)

// Source is the Telegram chat source. Resolution, titles and the push stream go
// through the Bot API; recent history comes from the public web preview.
type Source struct {
	bot     *bot.Bot
	preview *Preview

	mu     sync.RWMutex
	handle ingestService.Handler
	fatal  chan error
}

// New connects to the Bot API with the session token
func New(token, apiURL string, preview *Preview) (*Source, error) {
	s := &Source{
		preview: preview,
		fatal:   make(chan error, 1),
	}

	opts := []bot.Option{
		bot.WithDefaultHandler(s.HandleUpdate),
		bot.WithErrorsHandler(s.handleError),
		bot.WithAllowedUpdates(bot.AllowedUpdates{"message", "channel_post"}),
	}
	if apiURL != "" {
		opts = append(opts, bot.WithServerURL(apiURL))
	}

	b, err := bot.New(token, opts...)
	if err != nil {
		return nil, oops.With("context", "failed to create telegram bot").Wrap(err)
	}
	s.bot = b

	return s, nil
}

// ResolveChannel accepts @username, username, t.me links or a numeric chat id.
func (s *Source) ResolveChannel(ctx context.Context, name string) (channelDomain.Channel, error) {
	chat, err := s.bot.GetChat(ctx, &bot.GetChatParams{
		ChatID: chatRef(name),
	})
	if err != nil {
		return channelDomain.Channel{}, oops.With("channel", name).Wrap(err)
	}
	if chat == nil {
		return channelDomain.Channel{}, oops.With("channel", name).Wrap(errors.ErrChannelNotFound)
	}

	return channelDomain.Channel{
		Name:     name,
		ID:       strconv.FormatInt(chat.ID, 10),
		Username: chat.Username,
		Title:    chat.Title,
	}, nil
}

// ChatTitle returns the chat title, or @username when the chat has none.
func (s *Source) ChatTitle(ctx context.Context, chatID string) (string, error) {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return "", oops.With("chat_id", chatID).Wrap(err)
	}

	chat, err := s.bot.GetChat(ctx, &bot.GetChatParams{ChatID: id})
	if err != nil {
		return "", oops.With("chat_id", chatID).Wrap(err)
	}

	if chat.Title != "" {
		return chat.Title, nil
	}
	if chat.Username != "" {
		return "@" + chat.Username, nil
	}
	return "", nil
}

// Subscribe long-polls the Bot API and hands every channel post and message to
// handle. Filtering by chat is left to the caller.
func (s *Source) Subscribe(ctx context.Context, handle ingestService.Handler) error {
	s.mu.Lock()
	if s.handle != nil {
		s.mu.Unlock()
		return oops.Errorf("telegram source already subscribed")
	}
	s.handle = handle
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.handle = nil
		s.mu.Unlock()
	}()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.bot.Start(runCtx)
	}()

	select {
	case <-ctx.Done():
		<-done
		return nil
	case err := <-s.fatal:
		cancel()
		<-done
		return err
	case <-done:
		return errors.ErrSubscriptionClosed
	}
}

// FetchRecent reads the channel's public web preview. Channels without a
// public username cannot be polled.
func (s *Source) FetchRecent(ctx context.Context, channel channelDomain.Channel, limit int) ([]*messageDomain.RawMessage, error) {
	if channel.Username == "" {
		return nil, oops.With("channel_id", channel.ID).Wrap(errors.ErrNoPublicPreview)
	}

	posts, err := s.preview.Recent(ctx, channel.Username, limit)
	if err != nil {
		return nil, err
	}

	messages := make([]*messageDomain.RawMessage, 0, len(posts))
	for _, post := range posts {
		messages = append(messages, &messageDomain.RawMessage{
			ID:              post.ID,
			ChatID:          channel.ID,
			Text:            post.Text,
			SenderChatTitle: channel.Title,
			Date:            post.Date,
		})
	}
	return messages, nil
}

// HandleUpdate processes incoming updates
func (s *Source) HandleUpdate(ctx context.Context, _ *bot.Bot, update *models.Update) {
	var msg *models.Message
	switch {
	case update.ChannelPost != nil:
		msg = update.ChannelPost
	case update.Message != nil:
		msg = update.Message
	default:
		return
	}

	s.mu.RLock()
	handle := s.handle
	s.mu.RUnlock()
	if handle == nil {
		return
	}

	handle(ctx, toRawMessage(msg))
}

func (s *Source) handleError(err error) {
	if stderrors.Is(err, bot.ErrorUnauthorized) {
		select {
		case s.fatal <- oops.With("context", "get updates").Wrap(stderrors.Join(errors.ErrSourceUnauthorized, err)):
		default:
		}
		return
	}
	slog.Warn("Telegram polling error", "error", err)
}

func toRawMessage(msg *models.Message) *messageDomain.RawMessage {
	raw := &messageDomain.RawMessage{
		ID:      int64(msg.ID),
		ChatID:  strconv.FormatInt(msg.Chat.ID, 10),
		Text:    msg.Text,
		Caption: msg.Caption,
		Date:    time.Unix(int64(msg.Date), 0),
	}

	switch {
	case msg.SenderChat != nil && msg.SenderChat.Title != "":
		raw.SenderChatTitle = msg.SenderChat.Title
	case msg.Chat.Title != "":
		raw.SenderChatTitle = msg.Chat.Title
	}

	return raw
}

// chatRef converts a configured channel name into a getChat chat_id.
func chatRef(name string) any {
	name = strings.TrimSpace(name)
	for _, prefix := range []string{"https://", "http://"} {
		name = strings.TrimPrefix(name, prefix)
	}
	for _, host := range []string{"t.me/", "telegram.me/"} {
		if rest, ok := strings.CutPrefix(name, host); ok {
			name = strings.TrimPrefix(rest, "s/")
			break
		}
	}
	name = strings.TrimSuffix(name, "/")

	if id, err := strconv.ParseInt(name, 10, 64); err == nil {
		return id
	}
	return "@" + strings.TrimPrefix(name, "@")
}
