// Package app contains the trading session application service.
package app

import (
	"context"

	"github.com/shopspring/decimal"

	marketdomain "github.com/fliplab/bzflip/business/market/domain"
	"github.com/fliplab/bzflip/business/trading/domain"
	"github.com/fliplab/bzflip/internal/apperror"
	"github.com/fliplab/bzflip/internal/config"
	"github.com/fliplab/bzflip/internal/logger"
)

// Session tracks a running balance over a sequence of simulated trades
// against a single market snapshot. A session starts open; once closed it
// rejects further trades but its balance stays readable. Sessions are not
// safe for concurrent use.
type Session struct {
	snap    *marketdomain.Snapshot
	pricing config.PricingConfig
	log     logger.LoggerInterface

	balance decimal.Decimal
	open    bool
}

// NewSession opens a session over the given snapshot.
func NewSession(snap *marketdomain.Snapshot, pricing config.PricingConfig, log logger.LoggerInterface) *Session {
	return &Session{
		snap:    snap,
		pricing: pricing,
		log:     log,
		balance: decimal.Zero,
		open:    true,
	}
}

// Close marks the session closed. Closing an already closed session is a
// no-op. The balance remains readable.
func (s *Session) Close() {
	s.open = false
}

// IsOpen reports whether the session still accepts trades.
func (s *Session) IsOpen() bool {
	return s.open
}

// Balance returns the running balance: negative after net buying,
// positive after net selling.
func (s *Session) Balance() decimal.Decimal {
	return s.balance
}

// Buy simulates buying qty units of an item. The cost (including the
// configured instant-buy upscale) is applied to the balance and the
// signed delta is returned, negative for a purchase.
func (s *Session) Buy(ctx context.Context, itemID string, qty int64) (decimal.Decimal, error) {
	if !s.open {
		return decimal.Zero, apperror.New(apperror.CodeSessionClosed, apperror.WithContext(itemID))
	}

	book, ok := s.snap.Book(itemID)
	if !ok {
		return decimal.Zero, apperror.New(apperror.CodeItemNotListed, apperror.WithContext(itemID))
	}

	side, mode := buySide(book, s.pricing.UseInstantBuy)
	base, err := domain.Price(side, qty, mode)
	if err != nil {
		return decimal.Zero, apperror.Wrap(err, apperror.CodeInternalError, itemID)
	}

	delta := base.Mul(s.pricing.BuyUpscaleMult()).Neg()
	s.balance = s.balance.Add(delta)

	s.log.Debug(ctx, "session buy", "item", itemID, "qty", qty, "delta", delta.String())
	return delta, nil
}

// Sell simulates selling qty units of an item against the book. The
// proceeds after the sell tax are added to the balance and returned.
func (s *Session) Sell(ctx context.Context, itemID string, qty int64) (decimal.Decimal, error) {
	if !s.open {
		return decimal.Zero, apperror.New(apperror.CodeSessionClosed, apperror.WithContext(itemID))
	}

	book, ok := s.snap.Book(itemID)
	if !ok {
		return decimal.Zero, apperror.New(apperror.CodeItemNotListed, apperror.WithContext(itemID))
	}

	side, mode := sellSide(book, s.pricing.UseInstantSell)
	base, err := domain.Price(side, qty, mode)
	if err != nil {
		return decimal.Zero, apperror.Wrap(err, apperror.CodeInternalError, itemID)
	}

	proceeds := base.Mul(s.pricing.SellTaxMult())
	s.balance = s.balance.Add(proceeds)

	s.log.Debug(ctx, "session sell", "item", itemID, "qty", qty, "proceeds", proceeds.String())
	return proceeds, nil
}

// SellAt simulates selling qty units at a fixed unit price, bypassing
// both the order book and the sell tax. Used for NPC buy-backs.
func (s *Session) SellAt(ctx context.Context, itemID string, qty int64, unitPrice decimal.Decimal) (decimal.Decimal, error) {
	if !s.open {
		return decimal.Zero, apperror.New(apperror.CodeSessionClosed, apperror.WithContext(itemID))
	}
	if qty <= 0 {
		return decimal.Zero, apperror.Newf(apperror.CodeInvalidInput, "quantity must be positive, got %d", qty)
	}

	proceeds := unitPrice.Mul(decimal.NewFromInt(qty))
	s.balance = s.balance.Add(proceeds)

	s.log.Debug(ctx, "session fixed-price sell", "item", itemID, "qty", qty, "proceeds", proceeds.String())
	return proceeds, nil
}

// buySide selects the book side and mode for a purchase: instant buys
// walk the offer book, standing buys price at the best competing offer.
func buySide(book marketdomain.Book, instant bool) ([]marketdomain.Order, domain.PriceMode) {
	if instant {
		return book.InstantBuys, domain.ModeInstantFill
	}
	return book.StandingSells, domain.ModeBestOrder
}

// sellSide selects the book side and mode for a sale: instant sells walk
// the bid book, standing sells price at the best competing bid.
func sellSide(book marketdomain.Book, instant bool) ([]marketdomain.Order, domain.PriceMode) {
	if instant {
		return book.InstantSells, domain.ModeInstantFill
	}
	return book.StandingBuys, domain.ModeBestOrder
}
