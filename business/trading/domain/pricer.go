// Package domain contains the order book pricing logic for the trading context.
package domain

import (
	"github.com/shopspring/decimal"

	marketdomain "github.com/fliplab/bzflip/business/market/domain"
	"github.com/fliplab/bzflip/internal/apperror"
)

// PriceMode selects how an order book side is priced.
type PriceMode string

const (
	// ModeBestOrder prices the full quantity at the best resting price,
	// ignoring depth. Used for standing orders that join the book.
	ModeBestOrder PriceMode = "best_order"
	// ModeInstantFill walks the book consuming orders until the quantity
	// is filled, paying each level its own price.
	ModeInstantFill PriceMode = "instant_fill"
)

// Price computes the total cost or proceeds of trading qty units against
// the given side, best order first.
func Price(orders []marketdomain.Order, qty int64, mode PriceMode) (decimal.Decimal, error) {
	if qty <= 0 {
		return decimal.Zero, apperror.Newf(apperror.CodeInvalidInput, "quantity must be positive, got %d", qty)
	}

	switch mode {
	case ModeBestOrder:
		return priceBestOrder(orders, qty)
	case ModeInstantFill:
		return priceInstantFill(orders, qty)
	}
	return decimal.Zero, apperror.Newf(apperror.CodeInvalidInput, "unknown price mode %q", mode)
}

func priceBestOrder(orders []marketdomain.Order, qty int64) (decimal.Decimal, error) {
	if len(orders) == 0 {
		return decimal.Zero, apperror.New(apperror.CodeNoLiquidity)
	}
	return orders[0].UnitPrice.Mul(decimal.NewFromInt(qty)), nil
}

// priceInstantFill walks the book best-first. Running out of orders,
// including starting from an empty side, is a depth failure, not a
// liquidity one; NO_LIQUIDITY belongs to best-order mode.
func priceInstantFill(orders []marketdomain.Order, qty int64) (decimal.Decimal, error) {
	total := decimal.Zero
	remaining := qty

	for _, order := range orders {
		take := order.Quantity
		if take > remaining {
			take = remaining
		}
		total = total.Add(order.UnitPrice.Mul(decimal.NewFromInt(take)))
		remaining -= take

		if remaining == 0 {
			return total, nil
		}
	}

	return decimal.Zero, apperror.Newf(apperror.CodeInsufficientDepth,
		"book exhausted with %d of %d units unfilled", remaining, qty)
}
