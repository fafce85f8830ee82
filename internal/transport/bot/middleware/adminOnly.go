package middleware

import (
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"
)

// ChatAdminOnly пропускает дальше только сообщения администраторов чата.
func ChatAdminOnly() th.Handler {
	return func(ctx *th.Context, update telego.Update) error {
		msg := update.Message
		if msg == nil || msg.From == nil {
			return nil
		}

		member, err := ctx.Bot().GetChatMember(ctx, &telego.GetChatMemberParams{
			ChatID: tu.ID(msg.Chat.ID),
			UserID: msg.From.ID,
		})
		if err != nil {
			return fmt.Errorf("get chat member: %w", err)
		}

		switch member.MemberStatus() {
		case telego.MemberStatusCreator, telego.MemberStatusAdministrator:
			return ctx.Next(update)
		}

		return nil
	}
}
