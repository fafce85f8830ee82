package delivery

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"deals_bot/internal/domain"
	"deals_bot/internal/domain/entity"
	"deals_bot/internal/infrastructure/metrics"
	"deals_bot/pkg/errcodes"
)

// Телеграму нужно время применить удаление пачки сообщений, иначе новая
// выдача может перемешаться с хвостом старой.
const purgeSettleDelay = time.Second

// ChatClient — операции чат-платформы, нужные доставке.
type ChatClient interface {
	SendText(ctx context.Context, chatID, channelID int64, text string) (int, error)
	SendDealCard(ctx context.Context, chatID, channelID int64, deal entity.Deal) (int, error)
	Purge(ctx context.Context, chatID, channelID int64, messageIDs []int) error
	CreateChannel(ctx context.Context, chatID int64, name string) (int64, error)
}

type ChannelRepository interface {
	ListByGuild(ctx context.Context, guildPlatformID int64) ([]entity.Channel, error)
	UpdatePlatformID(ctx context.Context, oldPlatformID, newPlatformID int64) error
	ReplaceMessageIDs(ctx context.Context, channelID int64, messageIDs []int) error
}

type Service struct {
	channels ChannelRepository
	chat     ChatClient
	registry *TaskRegistry
	metrics  *metrics.DeliveryMetrics

	settleDelay time.Duration
}

func NewService(
	channels ChannelRepository,
	chat ChatClient,
	registry *TaskRegistry,
	deliveryMetrics *metrics.DeliveryMetrics,
) *Service {
	return &Service{
		channels:    channels,
		chat:        chat,
		registry:    registry,
		metrics:     deliveryMetrics,
		settleDelay: purgeSettleDelay,
	}
}

func (s *Service) WithSettleDelay(d time.Duration) *Service {
	s.settleDelay = d
	return s
}

// IsRunning сообщает, идёт ли сейчас доставка для сервера.
func (s *Service) IsRunning(guildPlatformID int64) bool {
	return s.registry.IsRunning(guildPlatformID, TaskDeliver)
}

// DeliverToGuild раскладывает выдачу по каналам сервера и публикует её.
// На время работы сервер помечается в реестре задач; повторный вызов для
// того же сервера завершается AlreadyRunning.
func (s *Service) DeliverToGuild(ctx context.Context, guild entity.Guild, deals []entity.Deal) error {
	if !s.registry.Acquire(guild.PlatformID, TaskDeliver) {
		return domain.NewError(errcodes.AlreadyRunning, "delivery is already in progress for this guild")
	}
	defer s.registry.Release(guild.PlatformID, TaskDeliver)

	channels, err := s.channels.ListByGuild(ctx, guild.PlatformID)
	if err != nil {
		s.metrics.DeliveriesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("list channels: %w", err)
	}

	routed := Route(deals, channels)

	g, gctx := errgroup.WithContext(ctx)
	for _, ch := range channels {
		g.Go(func() error {
			return s.deliverChannel(gctx, ch, routed[ch.ID], false)
		})
	}

	if err := g.Wait(); err != nil {
		if domain.HasCode(err, errcodes.Forbidden) {
			logger(ctx).Error("insufficient permissions, delivery skipped",
				"guild", guild.Name, "guild_id", guild.PlatformID, "error", err)
			s.metrics.DeliveriesTotal.WithLabelValues("forbidden").Inc()
			return nil
		}

		s.metrics.DeliveriesTotal.WithLabelValues("error").Inc()

		return fmt.Errorf("deliver to guild %d: %w", guild.PlatformID, err)
	}

	s.metrics.DeliveriesTotal.WithLabelValues("ok").Inc()

	logger(ctx).Info("delivery finished", "guild", guild.Name, "guild_id", guild.PlatformID, "deals", len(deals))

	return nil
}

func (s *Service) deliverChannel(ctx context.Context, ch entity.Channel, deals []entity.Deal, retried bool) error {
	if len(deals) == 0 {
		return nil
	}

	err := s.postDeals(ctx, ch, deals)
	if err == nil {
		return nil
	}

	// Канал могли удалить руками: пересоздаём с тем же именем под той же
	// категорией, переписываем платформенный идентификатор у той же строки
	// и повторяем ровно один раз.
	if domain.HasCode(err, errcodes.ChannelNotFound) && !retried {
		logger(ctx).Warn("channel is gone, recreating", "channel", ch.Name, "channel_id", ch.PlatformID)

		newPlatformID, err := s.chat.CreateChannel(ctx, ch.CategoryID, ch.Name)
		if err != nil {
			return fmt.Errorf("recreate channel %q: %w", ch.Name, err)
		}

		if err := s.channels.UpdatePlatformID(ctx, ch.PlatformID, newPlatformID); err != nil {
			return fmt.Errorf("persist recreated channel %q: %w", ch.Name, err)
		}

		s.metrics.ChannelRecoveriesTotal.Inc()

		ch.PlatformID = newPlatformID
		ch.MessageIDs = nil

		return s.deliverChannel(ctx, ch, deals, true)
	}

	return err
}

func (s *Service) postDeals(ctx context.Context, ch entity.Channel, deals []entity.Deal) error {
	// Сначала убираем прошлую выдачу. Каналы доставляются параллельно и
	// делят нумерацию сообщений чата, поэтому удаляем ровно те сообщения,
	// которые этот канал отправил, и ничего вокруг них.
	if len(ch.MessageIDs) > 0 {
		if err := s.chat.Purge(ctx, ch.GuildPlatformID, ch.PlatformID, ch.MessageIDs); err != nil {
			return fmt.Errorf("purge channel %q: %w", ch.Name, err)
		}

		select {
		case <-time.After(s.settleDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	header := fmt.Sprintf("%s — %d deals", time.Now().UTC().Format("02-01-2006 15:04:05"), len(deals))

	posted := make([]int, 0, len(deals)+2)

	msgID, err := s.chat.SendText(ctx, ch.GuildPlatformID, ch.PlatformID, header)
	if err != nil {
		return fmt.Errorf("send header: %w", err)
	}
	posted = append(posted, msgID)

	for _, deal := range deals {
		msgID, err := s.chat.SendDealCard(ctx, ch.GuildPlatformID, ch.PlatformID, deal)
		if err != nil {
			return fmt.Errorf("send deal card %q: %w", deal.Title, err)
		}

		posted = append(posted, msgID)
		s.metrics.DealCardsTotal.Inc()
	}

	msgID, err = s.chat.SendText(ctx, ch.GuildPlatformID, ch.PlatformID, "That's it for today :(")
	if err != nil {
		return fmt.Errorf("send trailer: %w", err)
	}
	posted = append(posted, msgID)

	if err := s.channels.ReplaceMessageIDs(ctx, ch.ID, posted); err != nil {
		return fmt.Errorf("persist message ids: %w", err)
	}

	return nil
}
