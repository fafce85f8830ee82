// Package bot — командный транспорт поверх Telegram Bot API.
package bot

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"deals_bot/internal/transport/bot/handler"
	"deals_bot/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// updatesHandler — цикл обработки обновлений. Start блокируется до Stop.
type updatesHandler interface {
	Start() error
	Stop() error
}

type Bot struct {
	bot        *telego.Bot
	botHandler updatesHandler

	handler *handler.Handler
	ready   chan struct{}
}

func New(token string, commandHandler *handler.Handler) (*Bot, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	// Получаем обновления через long polling
	updates, err := bot.UpdatesViaLongPolling(context.Background(), &telego.GetUpdatesParams{
		Timeout:        60,
		AllowedUpdates: []string{"message", "callback_query", "my_chat_member"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get updates: %w", err)
	}

	botHandler, err := th.NewBotHandler(bot, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot handler: %w", err)
	}

	commandHandler.RegisterRoutes(botHandler)

	return &Bot{
		bot:        bot,
		botHandler: botHandler,
		handler:    commandHandler,
		ready:      make(chan struct{}),
	}, nil
}

// Ready закрывается, когда цикл обработки обновлений запущен. До этого
// момента зависимые модули не должны трогать чат.
func (b *Bot) Ready() <-chan struct{} {
	return b.ready
}

// Run запускает обработку обновлений и блокируется до отмены контекста.
func (b *Bot) Run(ctx context.Context) error {
	go func() {
		close(b.ready)

		if err := b.botHandler.Start(); err != nil {
			logger(ctx).Error("failed to start bot handler", "error", err)
		}
	}()

	logger(ctx).Info("bot started")

	<-ctx.Done()

	if err := b.botHandler.Stop(); err != nil {
		logger(ctx).Error("failed to stop bot handler", "error", err)
	}

	return ctx.Err()
}
