// Package telegram delivers Telegram updates to the conversation engine
// and renders its replies as Markdown messages with inline keyboards.
// Updates arrive by long polling, or by webhook when a public URL is
// configured.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/hammamikhairi/mealbot/internal/conversation"
	"github.com/hammamikhairi/mealbot/internal/engine"
	"github.com/hammamikhairi/mealbot/internal/logger"
)

// Handler answers one event.
type Handler interface {
	Handle(ctx context.Context, ev engine.Event) conversation.Reply
}

// sender is the part of the Bot API the bot writes through.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Option configures the bot.
type Option func(*Bot)

// WithWebhook switches from long polling to a webhook at url, served on
// addr.
func WithWebhook(url, addr string) Option {
	return func(b *Bot) {
		b.webhookURL = url
		b.addr = addr
	}
}

// WithPollTimeout sets the long-polling timeout in seconds.
func WithPollTimeout(sec int) Option {
	return func(b *Bot) {
		if sec > 0 {
			b.pollTimeout = sec
		}
	}
}

// Bot is the Telegram transport.
type Bot struct {
	api     *tgbotapi.BotAPI
	out     sender
	handler Handler
	log     *logger.Logger

	webhookURL  string
	addr        string
	pollTimeout int

	queues   userQueues
	inflight sync.WaitGroup
}

// New authorizes with the Bot API.
func New(token string, handler Handler, log *logger.Logger, opts ...Option) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: authorizing: %w", err)
	}
	log.Info("authorized as @%s", api.Self.UserName)

	b := newBot(api, handler, log, opts...)
	b.api = api
	return b, nil
}

func newBot(out sender, handler Handler, log *logger.Logger, opts ...Option) *Bot {
	b := &Bot{
		out:         out,
		handler:     handler,
		log:         log,
		pollTimeout: 60,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run receives updates until ctx is cancelled, then waits for in-flight
// updates to finish.
func (b *Bot) Run(ctx context.Context) error {
	defer b.inflight.Wait()
	if b.webhookURL != "" {
		return b.serveWebhook(ctx)
	}
	return b.poll(ctx)
}

// ── Polling ──────────────────────────────────────────────────────

func (b *Bot) poll(ctx context.Context) error {
	if _, err := b.api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		b.log.Warn("clearing webhook before polling: %v", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout
	updates := b.api.GetUpdatesChan(u)
	b.log.Info("polling for updates")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return errors.New("telegram: update channel closed")
			}
			b.dispatch(ctx, update)
		}
	}
}

// ── Webhook ──────────────────────────────────────────────────────

func (b *Bot) serveWebhook(ctx context.Context) error {
	hook, err := tgbotapi.NewWebhook(b.webhookURL + WebhookPath)
	if err != nil {
		return fmt.Errorf("telegram: webhook url: %w", err)
	}
	if _, err := b.api.Request(hook); err != nil {
		return fmt.Errorf("telegram: registering webhook: %w", err)
	}

	srv := &http.Server{
		Addr:              b.addr,
		Handler:           NewRouter(b.api.HandleUpdate, func(u tgbotapi.Update) { b.dispatch(ctx, u) }, b.log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		b.log.Info("webhook listening on %s", b.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("telegram: webhook server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			b.log.Warn("webhook shutdown: %v", err)
		}
		return nil
	}
}

// ── Updates ──────────────────────────────────────────────────────

// dispatch queues the update behind earlier ones from the same user.
// Each user with pending updates has one worker draining them in arrival
// order; different users proceed in parallel.
func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	b.inflight.Add(1)
	if b.queues.push(updateKey(update), update) {
		go b.drain(ctx, updateKey(update))
	}
}

func (b *Bot) drain(ctx context.Context, key string) {
	for {
		update, ok := b.queues.next(key)
		if !ok {
			return
		}
		b.handleSafely(ctx, update)
		b.inflight.Done()
	}
}

func (b *Bot) handleSafely(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("panic handling update %d: %v", update.UpdateID, r)
		}
	}()
	b.handleUpdate(ctx, update)
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.From != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	ev := engine.TextEvent(userKey(msg.From.ID), msg.Text)
	ev.Progress = b.progress(chatID)

	reply := b.handler.Handle(ctx, ev)
	b.send(chatID, reply)
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Clears the client's loading indicator.
	if _, err := b.out.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.log.Debug("answering callback %s: %v", cb.ID, err)
	}
	if cb.Message == nil {
		return
	}

	chatID := cb.Message.Chat.ID
	ev := engine.CallbackEvent(userKey(cb.From.ID), cb.Data)
	ev.Progress = b.progress(chatID)

	reply := b.handler.Handle(ctx, ev)
	if reply.Edit {
		b.edit(chatID, cb.Message.MessageID, reply)
		return
	}
	b.send(chatID, reply)
}

func (b *Bot) progress(chatID int64) func(string) {
	return func(text string) {
		if _, err := b.out.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
			b.log.Warn("progress message to %d: %v", chatID, err)
		}
	}
}

func userKey(id int64) string { return strconv.FormatInt(id, 10) }
