package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"deals_bot/internal/domain"
	"deals_bot/internal/domain/entity"
	"deals_bot/internal/domain/service/deals"
	"deals_bot/internal/transport/bot/view"
	"deals_bot/pkg/errcodes"
)

const defaultUpdateAmount = 60

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, view.StartMessage)
}

// OnUpdate — ручное обновление выдачи: /update [store] [amount].
func (h *Handler) OnUpdate(ctx *th.Context, msg telego.Message) error {
	store, amount, ok := parseUpdateArgs(msg.Text)
	if !ok {
		return h.send(ctx, msg.Chat.ID, view.UpdateUsage)
	}

	if amount > deals.MaxAmount {
		return h.send(ctx, msg.Chat.ID, fmt.Sprintf(view.TooManyDeals, deals.MaxAmount))
	}

	if h.update.IsRunning(msg.Chat.ID) {
		return h.send(ctx, msg.Chat.ID, view.UpdateAlreadyRunning)
	}

	if err := h.send(ctx, msg.Chat.ID, view.UpdateStarted); err != nil {
		return err
	}

	count, err := h.update.Trigger(ctx, msg.Chat.ID, store, amount)
	if err != nil {
		switch {
		case domain.HasCode(err, errcodes.NoDealsFound):
			return h.send(ctx, msg.Chat.ID, view.NoDealsFound)
		case domain.HasCode(err, errcodes.AlreadyRunning):
			return h.send(ctx, msg.Chat.ID, view.UpdateAlreadyRunning)
		case domain.HasCode(err, errcodes.GuildNotFound):
			return h.send(ctx, msg.Chat.ID, view.GuildNotProvisioned)
		}
		return fmt.Errorf("trigger update: %w", err)
	}

	return h.send(ctx, msg.Chat.ID, fmt.Sprintf(view.UpdateFinished, count))
}

// parseUpdateArgs разбирает "/update", "/update 20", "/update gog",
// "/update gog 20". Без аргументов — все магазины, количество по умолчанию.
func parseUpdateArgs(text string) (entity.Store, int, bool) {
	args := strings.Fields(text)[1:]

	store := entity.StoreAll
	amount := defaultUpdateAmount

	switch len(args) {
	case 0:
	case 1:
		if n, err := strconv.Atoi(args[0]); err == nil {
			amount = n
		} else {
			store = entity.Store(args[0])
		}
	case 2:
		store = entity.Store(args[0])

		n, err := strconv.Atoi(args[1])
		if err != nil {
			return "", 0, false
		}
		amount = n
	default:
		return "", 0, false
	}

	if !store.Valid() || amount <= 0 {
		return "", 0, false
	}

	return store, amount, true
}

// OnRandom — одна случайная сделка: /random [min_price].
func (h *Handler) OnRandom(ctx *th.Context, msg telego.Message) error {
	args := strings.Fields(msg.Text)[1:]

	minPrice := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return h.send(ctx, msg.Chat.ID, view.RandomUsage)
		}
		minPrice = n
	}

	deal, err := h.deals.Random(ctx, minPrice)
	if err != nil {
		if domain.HasCode(err, errcodes.NoDealsFound) {
			return h.send(ctx, msg.Chat.ID, view.RandomNothing)
		}
		return fmt.Errorf("random deal: %w", err)
	}

	if _, err := h.chat.SendDealCard(ctx, msg.Chat.ID, 0, deal); err != nil {
		return fmt.Errorf("send random deal: %w", err)
	}

	return nil
}

// OnAuto — настройки автодоставки: /auto enable|disable, /auto time <hour>.
func (h *Handler) OnAuto(ctx *th.Context, msg telego.Message) error {
	args := strings.Fields(msg.Text)[1:]
	if len(args) == 0 {
		return h.send(ctx, msg.Chat.ID, view.AutoUsage)
	}

	var err error

	switch args[0] {
	case "enable":
		if err = h.guilds.SetAuto(ctx, msg.Chat.ID, true); err == nil {
			guild, gerr := h.guilds.GetByPlatformID(ctx, msg.Chat.ID)
			if gerr != nil {
				return fmt.Errorf("get guild: %w", gerr)
			}
			return h.send(ctx, msg.Chat.ID, fmt.Sprintf(view.AutoEnabled, guild.DeliveryHour))
		}
	case "disable":
		if err = h.guilds.SetAuto(ctx, msg.Chat.ID, false); err == nil {
			return h.send(ctx, msg.Chat.ID, view.AutoDisabled)
		}
	case "time":
		if len(args) < 2 {
			return h.send(ctx, msg.Chat.ID, view.AutoUsage)
		}

		hour, aerr := strconv.Atoi(args[1])
		if aerr != nil {
			return h.send(ctx, msg.Chat.ID, view.AutoUsage)
		}

		if err = h.guilds.SetDeliveryHour(ctx, msg.Chat.ID, hour); err == nil {
			return h.send(ctx, msg.Chat.ID, fmt.Sprintf(view.AutoTimeSet, hour))
		}
	default:
		return h.send(ctx, msg.Chat.ID, view.AutoUsage)
	}

	switch {
	case domain.HasCode(err, errcodes.InvalidHour):
		return h.send(ctx, msg.Chat.ID, view.InvalidHour)
	case domain.HasCode(err, errcodes.GuildNotFound):
		return h.send(ctx, msg.Chat.ID, view.GuildNotProvisioned)
	}

	return fmt.Errorf("update auto settings: %w", err)
}

// Вспомогательные методы

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: telego.ModeHTML,
	})
	return err
}

func (h *Handler) send(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID: telego.ChatID{ID: chatID},
		Text:   text,
	})
	return err
}
