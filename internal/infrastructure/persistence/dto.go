package persistence

import (
	"deals_bot/internal/domain/entity"
)

// guildSchema — представление таблицы guilds в БД.
type guildSchema struct {
	ID           int64  `db:"id"`
	PlatformID   int64  `db:"platform_id"`
	Name         string `db:"name"`
	Auto         bool   `db:"auto"`
	DeliveryHour int    `db:"delivery_hour"`
}

func (s *guildSchema) toDomain() *entity.Guild {
	return &entity.Guild{
		ID:           s.ID,
		PlatformID:   s.PlatformID,
		Name:         s.Name,
		Auto:         s.Auto,
		DeliveryHour: s.DeliveryHour,
	}
}

// channelSchema — представление таблицы channels в БД.
type channelSchema struct {
	ID              int64   `db:"id"`
	PlatformID      int64   `db:"platform_id"`
	CategoryID      int64   `db:"category_id"`
	GuildPlatformID int64   `db:"guild_platform_id"`
	Name            string  `db:"name"`
	MinRetailPrice  float64 `db:"min_retail_price"`
	MaxRetailPrice  float64 `db:"max_retail_price"`
	Store           string  `db:"store"`
}

func (s *channelSchema) toDomain() entity.Channel {
	return entity.Channel{
		ID:              s.ID,
		PlatformID:      s.PlatformID,
		CategoryID:      s.CategoryID,
		GuildPlatformID: s.GuildPlatformID,
		Name:            s.Name,
		MinRetailPrice:  s.MinRetailPrice,
		MaxRetailPrice:  s.MaxRetailPrice,
		Store:           entity.Store(s.Store),
	}
}

// channelMessageSchema — представление таблицы channel_messages в БД.
type channelMessageSchema struct {
	ChannelID int64 `db:"channel_id"`
	MessageID int   `db:"message_id"`
}
