package server

import (
	"deals_bot/internal/domain/entity"
	"deals_bot/pkg/rest"
)

func newRESTGuild(guild entity.Guild) rest.Guild {
	return rest.Guild{
		ID:           guild.ID,
		PlatformID:   guild.PlatformID,
		Name:         guild.Name,
		Auto:         guild.Auto,
		DeliveryHour: guild.DeliveryHour,
	}
}
