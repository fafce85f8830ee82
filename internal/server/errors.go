package server

import (
	"git.appkode.ru/pub/go/failure"

	"deals_bot/internal/domain"
	"deals_bot/pkg/errcodes"
)

// toFailure переводит доменные коды в failure-ошибки, по которым reply
// подбирает HTTP-статус.
func toFailure(err error) error {
	code, ok := domain.GetCode(err)
	if !ok {
		return err
	}

	switch code {
	case errcodes.GuildNotFound, errcodes.ChannelNotFound, errcodes.NotFound, errcodes.NoDealsFound:
		return failure.NewNotFoundError(err.Error(), failure.WithCode(code))
	case errcodes.AlreadyRunning:
		return failure.NewConflictError(err.Error(), failure.WithCode(code))
	case errcodes.ValidationError, errcodes.InvalidStore, errcodes.InvalidHour, errcodes.TooManyRequested:
		return failure.NewInvalidArgumentError(err.Error(), failure.WithCode(code))
	}

	return err
}
