// Package update связывает выборку сделок с доставкой: один сценарий
// «обновить выдачу сервера» для бота, планировщика и REST API.
package update

import (
	"context"
	"fmt"

	"deals_bot/internal/domain/entity"
	"deals_bot/internal/domain/service/deals"
	"deals_bot/internal/domain/service/delivery"
)

type GuildRepository interface {
	GetByPlatformID(ctx context.Context, platformID int64) (*entity.Guild, error)
}

type Service struct {
	deals    *deals.Service
	delivery *delivery.Service
	guilds   GuildRepository
}

func NewService(dealsService *deals.Service, deliveryService *delivery.Service, guilds GuildRepository) *Service {
	return &Service{
		deals:    dealsService,
		delivery: deliveryService,
		guilds:   guilds,
	}
}

// IsRunning сообщает, идёт ли сейчас доставка для сервера.
func (s *Service) IsRunning(guildPlatformID int64) bool {
	return s.delivery.IsRunning(guildPlatformID)
}

// Trigger запускает разовое обновление выдачи сервера и возвращает
// количество доставленных сделок.
func (s *Service) Trigger(ctx context.Context, guildPlatformID int64, store entity.Store, amount int) (int, error) {
	guild, err := s.guilds.GetByPlatformID(ctx, guildPlatformID)
	if err != nil {
		return 0, fmt.Errorf("get guild: %w", err)
	}

	batch, err := s.deals.List(ctx, deals.Query{Store: store, Amount: amount})
	if err != nil {
		return 0, err
	}

	if err := s.delivery.DeliverToGuild(ctx, *guild, batch); err != nil {
		return 0, err
	}

	return len(batch), nil
}
