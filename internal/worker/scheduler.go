// Package worker — плановая доставка сделок по расписанию серверов.
package worker

import (
	"context"
	"sync"
	"time"

	"deals_bot/internal/domain"
	"deals_bot/internal/domain/entity"
	"deals_bot/internal/domain/service/deals"
	"deals_bot/internal/domain/service/delivery"
	"deals_bot/internal/infrastructure/metrics"
	"deals_bot/pkg/errcodes"
)

type GuildRepository interface {
	ListDue(ctx context.Context, hour int) ([]entity.Guild, error)
}

// Scheduler раз в час собирает общую выборку сделок и раздаёт её серверам,
// у которых на этот час включена автодоставка.
type Scheduler struct {
	deals    *deals.Service
	delivery *delivery.Service
	guilds   GuildRepository
	metrics  *metrics.DeliveryMetrics

	steamAmount int
	gogAmount   int

	interval time.Duration
	ready    <-chan struct{}
	now      func() time.Time

	wg sync.WaitGroup
}

func NewScheduler(
	dealsService *deals.Service,
	deliveryService *delivery.Service,
	guilds GuildRepository,
	deliveryMetrics *metrics.DeliveryMetrics,
) *Scheduler {
	return &Scheduler{
		deals:       dealsService,
		delivery:    deliveryService,
		guilds:      guilds,
		metrics:     deliveryMetrics,
		steamAmount: deals.PageSize,
		gogAmount:   deals.PageSize,
		interval:    time.Hour,
		now:         time.Now,
	}
}

func (s *Scheduler) WithAmounts(steam, gog int) *Scheduler {
	s.steamAmount = steam
	s.gogAmount = gog
	return s
}

// WithReadySignal откладывает первый проход до закрытия канала: нет смысла
// доставлять, пока бот не поднялся.
func (s *Scheduler) WithReadySignal(ready <-chan struct{}) *Scheduler {
	s.ready = ready
	return s
}

func (s *Scheduler) WithInterval(interval time.Duration) *Scheduler {
	s.interval = interval
	return s
}

func (s *Scheduler) Run(ctx context.Context) error {
	if s.ready != nil {
		select {
		case <-s.ready:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	logger(ctx).Info("scheduler started", "interval", s.interval.String())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer s.wg.Wait()

	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

// runOnce — один проход: общая выборка на все сервера этого часа, доставка
// каждому в своей горутине. Ошибка выборки отменяет проход целиком.
func (s *Scheduler) runOnce(ctx context.Context) {
	hour := s.now().UTC().Hour()

	due, err := s.guilds.ListDue(ctx, hour)
	if err != nil {
		logger(ctx).Error("failed to list due guilds", "hour", hour, "error", err)
		return
	}

	if len(due) == 0 {
		return
	}

	batch, ok := s.fetchBatch(ctx)
	if !ok {
		return
	}

	logger(ctx).Info("scheduled delivery", "hour", hour, "guilds", len(due), "deals", len(batch))

	for _, guild := range due {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()

			if err := s.delivery.DeliverToGuild(ctx, guild, batch); err != nil {
				if domain.HasCode(err, errcodes.AlreadyRunning) {
					logger(ctx).Warn("delivery already running, skipped", "guild", guild.Name)
					return
				}
				logger(ctx).Error("scheduled delivery failed", "guild", guild.Name, "error", err)
			}
		}()
	}
}

func (s *Scheduler) fetchBatch(ctx context.Context) ([]entity.Deal, bool) {
	batch := make([]entity.Deal, 0, s.steamAmount+s.gogAmount)

	for _, part := range []struct {
		store  entity.Store
		amount int
	}{
		{entity.StoreSteam, s.steamAmount},
		{entity.StoreGOG, s.gogAmount},
	} {
		found, err := s.deals.List(ctx, deals.Query{Store: part.store, Amount: part.amount})
		if err != nil {
			// Пустая выдача по одному магазину не отменяет проход.
			if domain.HasCode(err, errcodes.NoDealsFound) {
				logger(ctx).Warn("no deals found", "store", part.store.String())
				continue
			}

			logger(ctx).Error("failed to fetch deals, tick skipped", "store", part.store.String(), "error", err)

			return nil, false
		}

		s.metrics.DealsFetchedTotal.WithLabelValues(part.store.String()).Add(float64(len(found)))
		batch = append(batch, found...)
	}

	return batch, true
}
