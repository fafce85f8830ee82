package deals

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/patrickmn/go-cache"

	"deals_bot/internal/domain"
	"deals_bot/internal/domain/entity"
	"deals_bot/pkg/errcodes"
)

const (
	// PageSize — размер страницы внешнего API.
	PageSize = 60
	// MaxAmount — верхняя граница запрашиваемого количества сделок.
	MaxAmount = 200

	defaultSortBy   = "Metacritic"
	defaultMaxPrice = 60

	maxRandomPage  = 1000
	randomAttempts = 5

	batchCacheTTL = 5 * time.Minute
)

// Client — постраничный доступ к внешнему API сделок.
type Client interface {
	Page(ctx context.Context, q Query, pageSize, pageNumber int) ([]entity.Deal, error)
}

// Query — параметры выборки сделок.
type Query struct {
	Store          entity.Store
	Amount         int
	SortBy         string
	MinRetailPrice int
	MaxRetailPrice int
	MinSteamRating int
	AAA            bool
}

func (q Query) normalized() Query {
	if q.SortBy == "" {
		q.SortBy = defaultSortBy
	}
	if q.MaxRetailPrice == 0 {
		q.MaxRetailPrice = defaultMaxPrice
	}
	return q
}

func (q Query) cacheKey() string {
	return fmt.Sprintf("%s|%d|%s|%d|%d|%d|%t",
		q.Store, q.Amount, q.SortBy, q.MinRetailPrice, q.MaxRetailPrice, q.MinSteamRating, q.AAA)
}

type Service struct {
	client Client

	// Короткоживущий кеш целых выборок: защищает внешний API от
	// всплесков одинаковых ручных обновлений.
	batchCache *cache.Cache

	randomPage func() int
}

func NewService(client Client) *Service {
	return &Service{
		client:     client,
		batchCache: cache.New(batchCacheTTL, 10*time.Minute),
		randomPage: func() int { return rand.IntN(maxRandomPage + 1) },
	}
}

// List возвращает до q.Amount сделок, запрашивая страницы последовательно.
// Пустая первая страница означает, что по фильтрам ничего нет; пустая или
// неполная последующая — что выдача кончилась раньше запрошенного.
func (s *Service) List(ctx context.Context, q Query) ([]entity.Deal, error) {
	if !q.Store.Valid() {
		return nil, domain.NewError(errcodes.InvalidStore, fmt.Sprintf("unknown store selector %q", q.Store))
	}
	if q.Amount > MaxAmount {
		return nil, domain.NewError(errcodes.TooManyRequested,
			fmt.Sprintf("requested %d deals, maximum is %d", q.Amount, MaxAmount))
	}
	if q.Amount <= 0 {
		return []entity.Deal{}, nil
	}

	q = q.normalized()

	if cached, ok := s.batchCache.Get(q.cacheKey()); ok {
		logger(ctx).Debug("deals batch served from cache", "store", q.Store.String(), "amount", q.Amount)
		return cached.([]entity.Deal), nil
	}

	pages := (q.Amount + PageSize - 1) / PageSize
	deals := make([]entity.Deal, 0, q.Amount)

	for page := 0; page < pages; page++ {
		batch, err := s.client.Page(ctx, q, PageSize, page)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", page, err)
		}

		if len(batch) == 0 {
			if page == 0 {
				return nil, domain.NewError(errcodes.NoDealsFound, "no deals found for the provided filters")
			}
			break
		}

		pageLen := len(batch)
		if remaining := q.Amount - len(deals); pageLen > remaining {
			batch = batch[:remaining]
		}
		deals = append(deals, batch...)

		if len(deals) == q.Amount || pageLen < PageSize {
			break
		}
	}

	s.batchCache.Set(q.cacheKey(), deals, cache.DefaultExpiration)

	logger(ctx).Info("deals fetched", "store", q.Store.String(), "count", len(deals))

	return deals, nil
}

// Random возвращает одну случайную сделку по объединённому каталогу
// магазинов. Случайная страница может оказаться за пределами выдачи,
// поэтому делается несколько попыток.
func (s *Service) Random(ctx context.Context, minRetailPrice int) (entity.Deal, error) {
	q := Query{
		Store:          entity.StoreAll,
		MinRetailPrice: minRetailPrice,
	}.normalized()

	for attempt := 0; attempt < randomAttempts; attempt++ {
		batch, err := s.client.Page(ctx, q, 1, s.randomPage())
		if err != nil {
			return entity.Deal{}, fmt.Errorf("fetch random page: %w", err)
		}

		if len(batch) > 0 {
			return batch[0], nil
		}
	}

	return entity.Deal{}, domain.NewError(errcodes.NoDealsFound, "no random deal found")
}
