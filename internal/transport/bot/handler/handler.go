package handler

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"deals_bot/internal/config"
	"deals_bot/internal/domain/entity"
	"deals_bot/internal/domain/service/deals"
	"deals_bot/internal/domain/service/delivery"
	"deals_bot/internal/domain/service/update"
)

// Сессия флипбука живёт недолго: выдача всё равно протухает.
const flipSessionTTL = 2 * time.Minute

type GuildRepository interface {
	Create(ctx context.Context, guild *entity.Guild) error
	GetByPlatformID(ctx context.Context, platformID int64) (*entity.Guild, error)
	SetAuto(ctx context.Context, platformID int64, auto bool) error
	SetDeliveryHour(ctx context.Context, platformID int64, hour int) error
	RemoveByPlatformID(ctx context.Context, platformID int64) error
}

type ChannelRepository interface {
	CreateBatch(ctx context.Context, channels []entity.Channel) error
}

type Handler struct {
	update   *update.Service
	deals    *deals.Service
	guilds   GuildRepository
	channels ChannelRepository
	chat     delivery.ChatClient

	presets      []config.ChannelPreset
	deliveryHour int

	flipSessions *cache.Cache
}

func New(
	updateService *update.Service,
	dealsService *deals.Service,
	guilds GuildRepository,
	channels ChannelRepository,
	chat delivery.ChatClient,
	dealsCfg config.Deals,
) *Handler {
	return &Handler{
		update:       updateService,
		deals:        dealsService,
		guilds:       guilds,
		channels:     channels,
		chat:         chat,
		presets:      dealsCfg.ChannelPresets(),
		deliveryHour: dealsCfg.DefaultDeliveryHour,
		flipSessions: cache.New(flipSessionTTL, time.Minute),
	}
}
