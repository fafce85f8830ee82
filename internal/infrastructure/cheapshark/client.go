// Package cheapshark — клиент внешнего API скидок (CheapShark-совместимого).
package cheapshark

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"

	"deals_bot/internal/domain/entity"
	"deals_bot/internal/domain/service/deals"
	"deals_bot/pkg/httpx"
	"deals_bot/pkg/logx"
	"deals_bot/pkg/lox"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиента API. При nil httpClient используется клиент
// с логирующим транспортом и таймаутом по умолчанию.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: defaultTimeout,
			Transport: httpx.NewLoggingRoundTripper(
				http.DefaultTransport,
				httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
			),
		}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// Page запрашивает одну страницу выдачи. Пустая страница — валидный ответ.
func (c *Client) Page(ctx context.Context, q deals.Query, pageSize, pageNumber int) ([]entity.Deal, error) {
	query := url.Values{}
	query.Set("storeID", q.Store.APIID())
	query.Set("sortBy", q.SortBy)
	query.Set("onSale", "1")
	query.Set("upperPrice", strconv.Itoa(q.MaxRetailPrice))
	query.Set("pageSize", strconv.Itoa(pageSize))
	query.Set("pageNumber", strconv.Itoa(pageNumber))

	if q.MinRetailPrice > 0 {
		query.Set("lowerPrice", strconv.Itoa(q.MinRetailPrice))
	}
	if q.MinSteamRating > 0 {
		query.Set("steamRating", strconv.Itoa(q.MinSteamRating))
	}
	if q.AAA {
		query.Set("AAA", "1")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("deals api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("deals api responded %s", resp.Status)
	}

	var records []dealRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode deals page: %w", err)
	}

	return lox.Map(records, dealRecord.toDomain), nil
}
