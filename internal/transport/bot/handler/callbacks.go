package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"
	"github.com/patrickmn/go-cache"
	"github.com/rs/xid"

	"deals_bot/internal/domain"
	"deals_bot/internal/domain/entity"
	"deals_bot/internal/domain/service/deals"
	"deals_bot/internal/infrastructure/messenger"
	"deals_bot/internal/transport/bot/view"
	"deals_bot/pkg/errcodes"
)

const flipBatchSize = 60

// flipSession — состояние одного флипбука. Листать его может только тот,
// кто его открыл.
type flipSession struct {
	OwnerID int64
	Deals   []entity.Deal
}

// OnFlip — флипбук по сделкам: /flip [min_price] [max_price].
func (h *Handler) OnFlip(ctx *th.Context, msg telego.Message) error {
	if msg.From == nil {
		return nil
	}

	minPrice, maxPrice, ok := parseFlipArgs(msg.Text)
	if !ok {
		return h.send(ctx, msg.Chat.ID, view.FlipUsage)
	}

	batch, err := h.deals.List(ctx, deals.Query{
		Store:          entity.StoreAll,
		Amount:         flipBatchSize,
		MinRetailPrice: minPrice,
		MaxRetailPrice: maxPrice,
	})
	if err != nil {
		if domain.HasCode(err, errcodes.NoDealsFound) {
			return h.send(ctx, msg.Chat.ID, view.NoDealsFound)
		}
		return fmt.Errorf("fetch flip deals: %w", err)
	}

	sid := xid.New().String()
	h.flipSessions.Set(sid, flipSession{OwnerID: msg.From.ID, Deals: batch}, cache.DefaultExpiration)

	_, err = ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:      telego.ChatID{ID: msg.Chat.ID},
		Text:        messenger.DealCard(batch[0]),
		ParseMode:   telego.ModeHTML,
		ReplyMarkup: flipKeyboard(sid, 1, len(batch)),
	})

	return err
}

func parseFlipArgs(text string) (minPrice, maxPrice int, ok bool) {
	args := strings.Fields(text)[1:]

	minPrice, maxPrice = 0, 60

	if len(args) > 2 {
		return 0, 0, false
	}

	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return 0, 0, false
		}
		minPrice = n

		if minPrice >= maxPrice {
			maxPrice = minPrice + 60
		}
	}

	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n <= minPrice {
			return 0, 0, false
		}
		maxPrice = n
	}

	return minPrice, maxPrice, true
}

// OnFlipCallback листает флипбук. Данные кнопки: "flip:<sid>:<page>".
func (h *Handler) OnFlipCallback(ctx *th.Context, query telego.CallbackQuery) error {
	parts := strings.Split(query.Data, ":")
	if len(parts) != 3 || query.Message == nil {
		return nil
	}

	sid := parts[1]

	page, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil
	}

	value, found := h.flipSessions.Get(sid)
	if !found {
		return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID).
			WithText(view.FlipExpired).WithShowAlert())
	}

	session := value.(flipSession)

	if query.From.ID != session.OwnerID {
		return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID).
			WithText(view.FlipNotYours).WithShowAlert())
	}

	// Листание закольцовано.
	total := len(session.Deals)
	if page < 1 {
		page = total
	}
	if page > total {
		page = 1
	}

	_, err = ctx.Bot().EditMessageText(ctx, &telego.EditMessageTextParams{
		ChatID:      tu.ID(query.Message.GetChat().ID),
		MessageID:   query.Message.GetMessageID(),
		Text:        messenger.DealCard(session.Deals[page-1]),
		ParseMode:   telego.ModeHTML,
		ReplyMarkup: flipKeyboard(sid, page, total),
	})
	if err != nil {
		logger(ctx).Warn("failed to flip page", "error", err)
	}

	return ctx.Bot().AnswerCallbackQuery(ctx, tu.CallbackQuery(query.ID))
}

func flipKeyboard(sid string, page, total int) *telego.InlineKeyboardMarkup {
	return tu.InlineKeyboard(
		tu.InlineKeyboardRow(
			tu.InlineKeyboardButton("⬅️").WithCallbackData(fmt.Sprintf("flip:%s:%d", sid, page-1)),
			tu.InlineKeyboardButton(fmt.Sprintf("%d / %d", page, total)).WithCallbackData("noop"),
			tu.InlineKeyboardButton("➡️").WithCallbackData(fmt.Sprintf("flip:%s:%d", sid, page+1)),
		),
	)
}
