package messenger

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mymmrac/telego/telegoapi"

	"deals_bot/internal/domain"
	"deals_bot/pkg/errcodes"
)

// wrapAPIError переводит ошибки Bot API в доменные коды: 403 — бота
// выгнали или замьютили, "thread not found" — канал удалили руками.
func wrapAPIError(op string, err error) error {
	var apiErr *telegoapi.Error
	if errors.As(err, &apiErr) {
		description := strings.ToLower(apiErr.Description)

		switch {
		case apiErr.ErrorCode == http.StatusForbidden:
			return domain.WrapError(err, errcodes.Forbidden, op+": forbidden")
		case apiErr.ErrorCode == http.StatusBadRequest && strings.Contains(description, "thread not found"):
			return domain.WrapError(err, errcodes.ChannelNotFound, op+": message thread not found")
		case apiErr.ErrorCode == http.StatusBadRequest && strings.Contains(description, "chat not found"):
			return domain.WrapError(err, errcodes.NotFound, op+": chat not found")
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
