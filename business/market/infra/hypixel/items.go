package hypixel

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"

	"github.com/fliplab/bzflip/business/market/domain"
	"github.com/fliplab/bzflip/business/market/infra/feedcache"
	"github.com/fliplab/bzflip/internal/apperror"
	"github.com/fliplab/bzflip/internal/circuitbreaker"
	"github.com/fliplab/bzflip/internal/httpclient"
	"github.com/fliplab/bzflip/internal/logger"
	"github.com/fliplab/bzflip/internal/ratelimit"
)

const itemsFeed = "item_data"

// ItemsClient fetches the item-catalog feed (NPC buy-back prices).
type ItemsClient struct {
	http    httpclient.Client
	limiter *ratelimit.Limiter
	breaker *circuitbreaker.CircuitBreaker[*itemsResponse]
	cache   *feedcache.Store
	url     string
	log     logger.LoggerInterface
}

// ItemsConfig holds the item-catalog client settings.
type ItemsConfig struct {
	URL               string
	RequestsPerMinute int
}

// NewItemsClient creates an item-catalog feed client.
func NewItemsClient(cfg ItemsConfig, http httpclient.Client, cache *feedcache.Store, log logger.LoggerInterface) *ItemsClient {
	cbCfg := circuitbreaker.DefaultConfig("hypixel-items")
	cbCfg.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warn(context.Background(), "circuit breaker state change",
			"breaker", name, "from", from.String(), "to", to.String())
	}

	return &ItemsClient{
		http:    http,
		limiter: ratelimit.New(cfg.RequestsPerMinute),
		breaker: circuitbreaker.New[*itemsResponse](cbCfg),
		cache:   cache,
		url:     cfg.URL,
		log:     log,
	}
}

// FetchItems returns catalog metadata keyed by item id.
func (c *ItemsClient) FetchItems(ctx context.Context) (map[string]domain.ItemInfo, error) {
	var resp itemsResponse

	hit, err := c.cache.Load(ctx, itemsFeed, &resp)
	if err != nil {
		return nil, err
	}

	if !hit {
		fetched, err := c.fetch(ctx)
		if err != nil {
			return nil, err
		}
		resp = *fetched

		if err := c.cache.Save(ctx, itemsFeed, &resp); err != nil {
			c.log.Warn(ctx, "failed to cache item catalog", "error", err)
		}
	}

	items := make(map[string]domain.ItemInfo, len(resp.Items))
	for _, entry := range resp.Items {
		info := domain.ItemInfo{
			ID:   entry.ID,
			Name: entry.Name,
		}
		if entry.NPCSellPrice != nil {
			info.NPCSellable = true
			info.NPCSellPrice = decimal.NewFromFloat(*entry.NPCSellPrice)
		}
		items[entry.ID] = info
	}
	return items, nil
}

func (c *ItemsClient) fetch(ctx context.Context) (*itemsResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperror.New(apperror.CodeRateLimitExceeded,
			apperror.WithContext(itemsFeed),
			apperror.WithCause(err),
		)
	}

	result, err := c.breaker.Execute(func() (*itemsResponse, error) {
		var result itemsResponse

		req := c.http.NewRequestWithOptions(
			httpclient.WithLabels(httpclient.NewLabel("feed", "items")),
		)
		resp, err := req.SetResult(&result).Get(ctx, c.url)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, apperror.Newf(apperror.CodeItemDataFetchFailed,
				"item catalog returned status %d", resp.StatusCode)
		}
		if !result.Success {
			return nil, apperror.New(apperror.CodeItemDataFetchFailed,
				apperror.WithContext("success=false"))
		}
		return &result, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, apperror.New(apperror.CodeCircuitOpen,
				apperror.WithContext(itemsFeed),
				apperror.WithCause(err),
			)
		}
		if apperror.IsAppError(err) {
			return nil, err
		}
		return nil, apperror.New(apperror.CodeItemDataFetchFailed, apperror.WithCause(err))
	}
	return result, nil
}
