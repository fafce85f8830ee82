package handler

import (
	"context"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"deals_bot/internal/transport/bot/middleware"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler) {
	// Команды, меняющие выдачу и настройки сервера, доступны только
	// администраторам чата.
	adminGroup := bh.Group(commandAny("update", "auto"))
	adminGroup.Use(middleware.ChatAdminOnly())

	adminGroup.HandleMessage(h.OnUpdate, th.CommandEqual("update"))
	adminGroup.HandleMessage(h.OnAuto, th.CommandEqual("auto"))

	bh.HandleMessage(h.OnStart, th.CommandEqual("start"))
	bh.HandleMessage(h.OnStart, th.CommandEqual("help"))
	bh.HandleMessage(h.OnRandom, th.CommandEqual("random"))
	bh.HandleMessage(h.OnFlip, th.CommandEqual("flip"))

	bh.HandleCallbackQuery(h.OnFlipCallback, th.CallbackDataPrefix("flip:"))

	bh.Handle(h.OnChatMemberUpdated, func(ctx context.Context, update telego.Update) bool {
		return update.MyChatMember != nil
	})
}

// commandAny матчит сообщение, начинающееся с одной из команд.
func commandAny(commands ...string) th.Predicate {
	return func(ctx context.Context, update telego.Update) bool {
		if update.Message == nil {
			return false
		}

		for _, command := range commands {
			if strings.HasPrefix(update.Message.Text, "/"+command) {
				return true
			}
		}

		return false
	}
}
