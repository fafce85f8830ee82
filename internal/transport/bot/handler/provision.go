package handler

import (
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"deals_bot/internal/domain"
	"deals_bot/internal/domain/entity"
	"deals_bot/internal/transport/bot/view"
	"deals_bot/pkg/errcodes"
)

// OnChatMemberUpdated реагирует на добавление бота в группу и удаление из
// неё: создаёт набор топиков со сделками и строку сервера, либо подчищает
// конфигурацию.
func (h *Handler) OnChatMemberUpdated(ctx *th.Context, update telego.Update) error {
	member := update.MyChatMember
	if member == nil {
		return nil
	}

	switch member.NewChatMember.MemberStatus() {
	case telego.MemberStatusMember, telego.MemberStatusAdministrator:
		// Повышение до администратора в уже настроенной группе — не повод
		// создавать топики заново.
		if member.OldChatMember.MemberStatus() == telego.MemberStatusMember {
			return nil
		}
		return h.provisionGuild(ctx, member.Chat)
	case telego.MemberStatusLeft, telego.MemberStatusBanned:
		if err := h.guilds.RemoveByPlatformID(ctx, member.Chat.ID); err != nil {
			return fmt.Errorf("remove guild %d: %w", member.Chat.ID, err)
		}

		logger(ctx).Info("guild removed", "chat_id", member.Chat.ID, "title", member.Chat.Title)
	}

	return nil
}

func (h *Handler) provisionGuild(ctx *th.Context, chat telego.Chat) error {
	if chat.Type != telego.ChatTypeSupergroup || !chat.IsForum {
		return h.send(ctx, chat.ID, view.ForumRequired)
	}

	if _, err := h.guilds.GetByPlatformID(ctx, chat.ID); err == nil {
		return h.send(ctx, chat.ID, view.WelcomeBack)
	} else if !domain.HasCode(err, errcodes.GuildNotFound) {
		return fmt.Errorf("get guild %d: %w", chat.ID, err)
	}

	guild := &entity.Guild{
		PlatformID:   chat.ID,
		Name:         chat.Title,
		Auto:         false,
		DeliveryHour: h.deliveryHour,
	}
	if err := h.guilds.Create(ctx, guild); err != nil {
		return fmt.Errorf("create guild %d: %w", chat.ID, err)
	}

	channels := make([]entity.Channel, 0, len(h.presets))

	for _, preset := range h.presets {
		topicID, err := h.chat.CreateChannel(ctx, chat.ID, preset.Name)
		if err != nil {
			// Без прав на управление топиками настроить группу нельзя.
			logger(ctx).Error("failed to create deal topic",
				"chat_id", chat.ID, "topic", preset.Name, "error", err)
			return nil
		}

		channels = append(channels, entity.Channel{
			PlatformID:      topicID,
			CategoryID:      chat.ID,
			GuildPlatformID: chat.ID,
			Name:            preset.Name,
			MinRetailPrice:  preset.MinRetailPrice,
			MaxRetailPrice:  preset.MaxRetailPrice,
			Store:           preset.Store,
		})
	}

	if err := h.channels.CreateBatch(ctx, channels); err != nil {
		return fmt.Errorf("persist channels for guild %d: %w", chat.ID, err)
	}

	logger(ctx).Info("guild provisioned", "chat_id", chat.ID, "title", chat.Title, "channels", len(channels))

	return h.send(ctx, chat.ID, view.Welcome)
}
