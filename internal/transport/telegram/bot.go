package telegram

import (
	"context"
	"fmt"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/Reon1917/AU-GURU/internal/config"
	"github.com/Reon1917/AU-GURU/internal/service/chat"
	"github.com/Reon1917/AU-GURU/pkg/log"
)

const baseContextKey = "base_context"

type Bot struct {
	bot     *tele.Bot
	cfg     *config.TelegramConfig
	service *chat.Service
	sender  *sender
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	service *chat.Service,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		cfg:     cfg,
		service: service,
		sender:  newSender(b),
	}

	// Carry the signal context with logger into handlers
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Handle("/start", bot.handleStart)
	b.Handle("/reset", bot.handleReset)
	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func sessionID(c tele.Context) string {
	return fmt.Sprintf("telegram-%d", c.Chat().ID)
}

func (b *Bot) handleStart(c tele.Context) error {
	return c.Send("Hi! I am AU GURU, the Assumption University assistant. " +
		"Ask me about programs, tuition, contacts or the university's history.")
}

func (b *Bot) handleReset(c tele.Context) error {
	if err := b.service.Reset(sessionID(c)); err != nil {
		return c.Send("Nothing to reset yet, just ask me a question.")
	}
	return c.Send("Conversation cleared.")
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)

	_ = c.Notify(tele.Typing)

	answer, err := b.service.Ask(ctx, sessionID(c), c.Text())
	if err != nil {
		logger.Error().Err(err).Msg("chat turn failed")
		return c.Send("Sorry, I could not reach the answering service. Please try again in a moment.")
	}

	return b.sender.sendMarkdown(ctx, c.Chat(), answer.Reply)
}
