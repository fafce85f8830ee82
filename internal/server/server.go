// Package server — админский HTTP API поверх chi.
package server

import (
	"context"

	"deals_bot/internal/domain/entity"
)

type GuildRepository interface {
	List(ctx context.Context) ([]entity.Guild, error)
}

type UpdateTrigger interface {
	Trigger(ctx context.Context, guildPlatformID int64, store entity.Store, amount int) (int, error)
}

type Server struct {
	guilds GuildRepository
	update UpdateTrigger
}

func NewServer(guilds GuildRepository, update UpdateTrigger) Server {
	return Server{
		guilds: guilds,
		update: update,
	}
}
