// Package messenger — операции чат-платформы поверх Telegram Bot API.
// Сервер — форум-супергруппа, канал доставки — топик форума.
package messenger

import (
	"context"
	"slices"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"deals_bot/internal/domain/entity"
)

// Bot API удаляет не больше ста сообщений за вызов.
const purgeChunkSize = 100

type Telegram struct {
	bot *telego.Bot
}

func NewTelegram(token string) (*Telegram, error) {
	bot, err := telego.NewBot(token)
	if err != nil {
		return nil, wrapAPIError("create bot", err)
	}

	return &Telegram{bot: bot}, nil
}

// SendText отправляет простое текстовое сообщение. channelID 0 означает
// общий чат, без топика.
func (t *Telegram) SendText(ctx context.Context, chatID, channelID int64, text string) (int, error) {
	msg := tu.Message(tu.ID(chatID), text)
	if channelID != 0 {
		msg = msg.WithMessageThreadID(int(channelID))
	}

	sent, err := t.bot.SendMessage(ctx, msg)
	if err != nil {
		return 0, wrapAPIError("send message", err)
	}

	return sent.MessageID, nil
}

// SendDealCard отправляет HTML-карточку сделки.
func (t *Telegram) SendDealCard(ctx context.Context, chatID, channelID int64, deal entity.Deal) (int, error) {
	msg := tu.Message(tu.ID(chatID), DealCard(deal)).WithParseMode(telego.ModeHTML)
	if channelID != 0 {
		msg = msg.WithMessageThreadID(int(channelID))
	}

	sent, err := t.bot.SendMessage(ctx, msg)
	if err != nil {
		return 0, wrapAPIError("send deal card", err)
	}

	return sent.MessageID, nil
}

// Purge удаляет сообщения прошлой доставки по точному списку
// идентификаторов. Удаление идёт по чату целиком, топик для него не нужен.
func (t *Telegram) Purge(ctx context.Context, chatID, _ int64, messageIDs []int) error {
	for chunk := range slices.Chunk(messageIDs, purgeChunkSize) {
		err := t.bot.DeleteMessages(ctx, &telego.DeleteMessagesParams{
			ChatID:     tu.ID(chatID),
			MessageIDs: chunk,
		})
		if err != nil {
			return wrapAPIError("delete messages", err)
		}
	}

	return nil
}

// CreateChannel создаёт топик форума и сразу закрывает его, чтобы писать
// туда могли только бот и администраторы.
func (t *Telegram) CreateChannel(ctx context.Context, chatID int64, name string) (int64, error) {
	topic, err := t.bot.CreateForumTopic(ctx, &telego.CreateForumTopicParams{
		ChatID: tu.ID(chatID),
		Name:   name,
	})
	if err != nil {
		return 0, wrapAPIError("create forum topic", err)
	}

	err = t.bot.CloseForumTopic(ctx, &telego.CloseForumTopicParams{
		ChatID:          tu.ID(chatID),
		MessageThreadID: topic.MessageThreadID,
	})
	if err != nil {
		logger(ctx).Warn("failed to close forum topic", "topic", name, "error", err)
	}

	return int64(topic.MessageThreadID), nil
}
