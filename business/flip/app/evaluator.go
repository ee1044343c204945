// Package app contains the flip evaluation service.
package app

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	craftingapp "github.com/fliplab/bzflip/business/crafting/app"
	"github.com/fliplab/bzflip/business/flip/domain"
	marketdomain "github.com/fliplab/bzflip/business/market/domain"
	tradingapp "github.com/fliplab/bzflip/business/trading/app"
	"github.com/fliplab/bzflip/internal/apperror"
	"github.com/fliplab/bzflip/internal/config"
	"github.com/fliplab/bzflip/internal/logger"
)

const meterName = "github.com/fliplab/bzflip/business/flip/app"

// Evaluator prices flips over the per-run market snapshot. Every
// evaluation opens a fresh trading session so strategies never observe
// each other's balances.
type Evaluator struct {
	snapshots SnapshotSource
	sessions  *tradingapp.SessionFactory
	resolver  *craftingapp.Resolver
	pricing   config.PricingConfig
	log       logger.LoggerInterface

	evaluated metric.Int64Counter
	failed    metric.Int64Counter
}

// NewEvaluator creates a flip evaluator.
func NewEvaluator(
	snapshots SnapshotSource,
	sessions *tradingapp.SessionFactory,
	resolver *craftingapp.Resolver,
	pricing config.PricingConfig,
	log logger.LoggerInterface,
) (*Evaluator, error) {
	meter := otel.Meter(meterName)

	evaluated, err := meter.Int64Counter("flips_evaluated_total",
		metric.WithDescription("Flips evaluated, by strategy"))
	if err != nil {
		return nil, err
	}

	failed, err := meter.Int64Counter("flips_failed_total",
		metric.WithDescription("Flip evaluations that failed, by strategy and code"))
	if err != nil {
		return nil, err
	}

	return &Evaluator{
		snapshots: snapshots,
		sessions:  sessions,
		resolver:  resolver,
		pricing:   pricing,
		log:       log,
		evaluated: evaluated,
		failed:    failed,
	}, nil
}

// Evaluate prices a single item under the given strategy.
func (e *Evaluator) Evaluate(ctx context.Context, itemID string, strategy domain.Strategy) (domain.Result, error) {
	snap, err := e.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return e.evaluate(ctx, snap, itemID, strategy)
}

// EvaluateAll prices every snapshot item under the given strategy,
// skipping items that fail, and returns up to top results ordered by
// profit descending. top <= 0 means no limit.
func (e *Evaluator) EvaluateAll(ctx context.Context, strategy domain.Strategy, top int) ([]domain.Result, error) {
	snap, err := e.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var results []domain.Result
	skipped := 0

	for _, itemID := range snap.ItemIDs() {
		result, err := e.evaluate(ctx, snap, itemID, strategy)
		if err != nil {
			// One bad item must not sink the scan.
			skipped++
			continue
		}
		results = append(results, result)
	}

	domain.SortByProfit(results)
	if top > 0 && len(results) > top {
		results = results[:top]
	}

	e.log.Info(ctx, "flip scan complete",
		"strategy", string(strategy),
		"results", len(results),
		"skipped", skipped,
	)
	return results, nil
}

func (e *Evaluator) evaluate(ctx context.Context, snap *marketdomain.Snapshot, itemID string, strategy domain.Strategy) (domain.Result, error) {
	attrs := metric.WithAttributes(attribute.String("strategy", string(strategy)))
	e.evaluated.Add(ctx, 1, attrs)

	var result domain.Result
	var err error

	switch strategy {
	case domain.StrategyMarket:
		result, err = e.marketFlip(ctx, snap, itemID)
	case domain.StrategyCraft:
		result, err = e.craftFlip(ctx, snap, itemID)
	case domain.StrategyNPC:
		result, err = e.npcFlip(ctx, snap, itemID)
	default:
		err = apperror.Newf(apperror.CodeInvalidInput, "unknown strategy %q", strategy)
	}

	if err != nil {
		e.failed.Add(ctx, 1, metric.WithAttributes(
			attribute.String("strategy", string(strategy)),
			attribute.String("code", string(apperror.GetCode(err))),
		))
		return nil, err
	}
	return result, nil
}

// marketFlip buys one unit and resells it on the bazaar.
func (e *Evaluator) marketFlip(ctx context.Context, snap *marketdomain.Snapshot, itemID string) (domain.Result, error) {
	if !snap.IsListed(itemID) {
		return nil, apperror.New(apperror.CodeNotFlippable, apperror.WithContext(itemID))
	}

	session := e.sessions.Open(snap)
	defer session.Close()

	if _, err := session.Buy(ctx, itemID, 1); err != nil {
		return nil, err
	}

	sellPrice, err := session.Sell(ctx, itemID, 1)
	if err != nil {
		return nil, err
	}

	profit := session.Balance()
	margin := decimal.Zero
	if sellPrice.IsPositive() {
		margin = profit.Div(sellPrice)
	}

	return domain.MarketFlip{
		Flip:         e.baseFlip(snap, itemID, domain.StrategyMarket, profit),
		SellPrice:    sellPrice,
		ProfitMargin: margin,
	}, nil
}

// craftFlip buys the item's base materials and sells one crafted unit.
// The item must be listed (so the sale has a book) and decomposable.
func (e *Evaluator) craftFlip(ctx context.Context, snap *marketdomain.Snapshot, itemID string) (domain.Result, error) {
	if !snap.IsListed(itemID) {
		return nil, apperror.New(apperror.CodeNotFlippable, apperror.WithContext(itemID))
	}

	materials, err := e.resolver.DecomposeToBaseMaterials(snap, itemID)
	if err != nil {
		return nil, apperror.New(apperror.CodeNotFlippable,
			apperror.WithContext(itemID),
			apperror.WithCause(err),
		)
	}

	session := e.sessions.Open(snap)
	defer session.Close()

	for _, materialID := range sortedKeys(materials) {
		if _, err := session.Buy(ctx, materialID, materials[materialID]); err != nil {
			return nil, err
		}
	}

	if _, err := session.Sell(ctx, itemID, 1); err != nil {
		return nil, err
	}

	return domain.CraftFlip{
		Flip:      e.baseFlip(snap, itemID, domain.StrategyCraft, session.Balance()),
		Materials: materials,
	}, nil
}

// npcFlip sells one unit to the NPC at its fixed price, then buys the
// unit back: directly when listed, otherwise via its decomposition.
func (e *Evaluator) npcFlip(ctx context.Context, snap *marketdomain.Snapshot, itemID string) (domain.Result, error) {
	npcPrice, sellable := snap.NPCSellPrice(itemID)
	if !sellable || !npcPrice.IsPositive() || !e.resolver.IsObtainable(snap, itemID, false) {
		return nil, apperror.New(apperror.CodeNotFlippable, apperror.WithContext(itemID))
	}

	session := e.sessions.Open(snap)
	defer session.Close()

	if _, err := session.SellAt(ctx, itemID, 1, npcPrice); err != nil {
		return nil, err
	}

	if snap.IsListed(itemID) {
		if _, err := session.Buy(ctx, itemID, 1); err != nil {
			return nil, err
		}
	} else {
		materials, err := e.resolver.DecomposeToBaseMaterials(snap, itemID)
		if err != nil {
			return nil, apperror.New(apperror.CodeNotFlippable,
				apperror.WithContext(itemID),
				apperror.WithCause(err),
			)
		}
		for _, materialID := range sortedKeys(materials) {
			if _, err := session.Buy(ctx, materialID, materials[materialID]); err != nil {
				return nil, err
			}
		}
	}

	profit := session.Balance()
	maxVolume := decimal.NewFromInt(e.pricing.NPCDailyLimit).Div(npcPrice).Floor().IntPart()

	return domain.NPCFlip{
		Flip:           e.baseFlip(snap, itemID, domain.StrategyNPC, profit),
		NPCSellPrice:   npcPrice,
		MaxDailyVolume: maxVolume,
		MaxDailyProfit: profit.Mul(decimal.NewFromInt(maxVolume)),
	}, nil
}

func (e *Evaluator) baseFlip(snap *marketdomain.Snapshot, itemID string, strategy domain.Strategy, profit decimal.Decimal) domain.Flip {
	return domain.Flip{
		ItemID:     itemID,
		Strategy:   strategy,
		Profit:     profit,
		BuyVolume:  snap.BuyMovingWeek(itemID),
		SellVolume: snap.SellMovingWeek(itemID),
	}
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
