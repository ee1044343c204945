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

const bazaarFeed = "bz"

// BazaarClient fetches the order-book feed, with rate limiting, a circuit
// breaker, and an optional disk cache in front of the network.
type BazaarClient struct {
	http    httpclient.Client
	limiter *ratelimit.Limiter
	breaker *circuitbreaker.CircuitBreaker[*bazaarResponse]
	cache   *feedcache.Store
	url     string
	depth   int
	log     logger.LoggerInterface
}

// BazaarConfig holds the bazaar client settings.
type BazaarConfig struct {
	URL               string
	BookDepth         int
	RequestsPerMinute int
}

// NewBazaarClient creates a bazaar feed client.
func NewBazaarClient(cfg BazaarConfig, http httpclient.Client, cache *feedcache.Store, log logger.LoggerInterface) *BazaarClient {
	cbCfg := circuitbreaker.DefaultConfig("hypixel-bazaar")
	cbCfg.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warn(context.Background(), "circuit breaker state change",
			"breaker", name, "from", from.String(), "to", to.String())
	}

	return &BazaarClient{
		http:    http,
		limiter: ratelimit.New(cfg.RequestsPerMinute),
		breaker: circuitbreaker.New[*bazaarResponse](cbCfg),
		cache:   cache,
		url:     cfg.URL,
		depth:   cfg.BookDepth,
		log:     log,
	}
}

// FetchProducts returns every listed product keyed by item id. Book sides
// are truncated to the configured depth here so the rest of the system
// never sees more levels than it may consume.
func (c *BazaarClient) FetchProducts(ctx context.Context) (map[string]domain.Product, error) {
	var resp bazaarResponse

	hit, err := c.cache.Load(ctx, bazaarFeed, &resp)
	if err != nil {
		return nil, err
	}

	if !hit {
		fetched, err := c.fetch(ctx)
		if err != nil {
			return nil, err
		}
		resp = *fetched

		if err := c.cache.Save(ctx, bazaarFeed, &resp); err != nil {
			c.log.Warn(ctx, "failed to cache bazaar feed", "error", err)
		}
	}

	products := make(map[string]domain.Product, len(resp.Products))
	for itemID, p := range resp.Products {
		products[itemID] = domain.Product{
			ItemID:         itemID,
			Book:           c.buildBook(p),
			BuyMovingWeek:  p.QuickStatus.BuyMovingWeek,
			SellMovingWeek: p.QuickStatus.SellMovingWeek,
		}
	}
	return products, nil
}

func (c *BazaarClient) fetch(ctx context.Context) (*bazaarResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, apperror.New(apperror.CodeRateLimitExceeded,
			apperror.WithContext(bazaarFeed),
			apperror.WithCause(err),
		)
	}

	result, err := c.breaker.Execute(func() (*bazaarResponse, error) {
		var result bazaarResponse

		req := c.http.NewRequestWithOptions(
			httpclient.WithLabels(httpclient.NewLabel("feed", "bazaar")),
		)
		resp, err := req.SetResult(&result).Get(ctx, c.url)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, apperror.Newf(apperror.CodeBazaarFetchFailed,
				"bazaar feed returned status %d", resp.StatusCode)
		}
		if !result.Success {
			return nil, apperror.New(apperror.CodeBazaarFetchFailed,
				apperror.WithContext("success=false"))
		}
		return &result, nil
	})
	if err != nil {
		return nil, c.wrapFetchErr(err)
	}
	return result, nil
}

func (c *BazaarClient) wrapFetchErr(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return apperror.New(apperror.CodeCircuitOpen,
			apperror.WithContext(bazaarFeed),
			apperror.WithCause(err),
		)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.New(apperror.CodeBazaarFetchFailed, apperror.WithCause(err))
}

// buildBook maps the two summary arrays onto the four book sides. The
// feed serves each array best-first already, so order is preserved.
func (c *BazaarClient) buildBook(p bazaarProduct) domain.Book {
	instantBuys := c.toOrders(p.BuySummary)
	instantSells := c.toOrders(p.SellSummary)

	return domain.Book{
		InstantBuys:   instantBuys,
		StandingBuys:  instantBuys,
		InstantSells:  instantSells,
		StandingSells: instantSells,
	}
}

func (c *BazaarClient) toOrders(entries []summaryEntry) []domain.Order {
	if len(entries) > c.depth {
		entries = entries[:c.depth]
	}
	orders := make([]domain.Order, 0, len(entries))
	for _, e := range entries {
		if e.Amount <= 0 || e.PricePerUnit <= 0 {
			continue
		}
		orders = append(orders, domain.Order{
			Quantity:  e.Amount,
			UnitPrice: decimal.NewFromFloat(e.PricePerUnit),
		})
	}
	return orders
}
