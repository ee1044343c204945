package app

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	marketdomain "github.com/fliplab/bzflip/business/market/domain"
	"github.com/fliplab/bzflip/internal/apperror"
	"github.com/fliplab/bzflip/internal/config"
	"github.com/fliplab/bzflip/internal/logger"
)

func testSnapshot() *marketdomain.Snapshot {
	// Distinct best prices per side so tests can tell which side was used:
	// instant buys 10, standing sells 11, instant sells 9, standing buys 8.
	book := marketdomain.Book{
		InstantBuys: []marketdomain.Order{
			{Quantity: 5, UnitPrice: decimal.NewFromInt(10)},
			{Quantity: 5, UnitPrice: decimal.NewFromInt(12)},
		},
		StandingSells: []marketdomain.Order{
			{Quantity: 5, UnitPrice: decimal.NewFromInt(11)},
		},
		InstantSells: []marketdomain.Order{
			{Quantity: 5, UnitPrice: decimal.NewFromInt(9)},
			{Quantity: 5, UnitPrice: decimal.NewFromInt(7)},
		},
		StandingBuys: []marketdomain.Order{
			{Quantity: 5, UnitPrice: decimal.NewFromInt(8)},
		},
	}

	return marketdomain.NewSnapshot(map[string]marketdomain.Product{
		"ENCHANTED_COAL": {ItemID: "ENCHANTED_COAL", Book: book},
	}, nil, nil, time.Now())
}

func testPricing() config.PricingConfig {
	return config.PricingConfig{
		UseInstantBuy:        false,
		UseInstantSell:       true,
		InstantBuyUpscale:    false,
		InstantBuyUpscalePct: 4,
		SellTaxPct:           0,
		NPCDailyLimit:        200_000_000,
	}
}

func testLogger() logger.LoggerInterface {
	return logger.New(io.Discard, logger.LevelError, "test", nil)
}

func TestSessionBuyStandingUsesBestCompetingOffer(t *testing.T) {
	s := NewSession(testSnapshot(), testPricing(), testLogger())

	delta, err := s.Buy(context.Background(), "ENCHANTED_COAL", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := decimal.NewFromInt(-22); !delta.Equal(want) {
		t.Errorf("delta: got %v, want %v", delta, want)
	}
	if want := decimal.NewFromInt(-22); !s.Balance().Equal(want) {
		t.Errorf("balance: got %v, want %v", s.Balance(), want)
	}
}

func TestSessionBuyInstantWalksOfferBook(t *testing.T) {
	pricing := testPricing()
	pricing.UseInstantBuy = true
	s := NewSession(testSnapshot(), pricing, testLogger())

	delta, err := s.Buy(context.Background(), "ENCHANTED_COAL", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := decimal.NewFromInt(-74); !delta.Equal(want) { // 5x10 + 2x12
		t.Errorf("delta: got %v, want %v", delta, want)
	}
}

func TestSessionBuyAppliesUpscale(t *testing.T) {
	pricing := testPricing()
	pricing.UseInstantBuy = true
	pricing.InstantBuyUpscale = true
	s := NewSession(testSnapshot(), pricing, testLogger())

	delta, err := s.Buy(context.Background(), "ENCHANTED_COAL", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := decimal.RequireFromString("-10.4"); !delta.Equal(want) {
		t.Errorf("delta: got %v, want %v", delta, want)
	}
}

func TestSessionSellInstantWalksBidBookAndTaxes(t *testing.T) {
	pricing := testPricing()
	pricing.SellTaxPct = 1.125
	s := NewSession(testSnapshot(), pricing, testLogger())

	proceeds, err := s.Sell(context.Background(), "ENCHANTED_COAL", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := decimal.RequireFromString("8.89875"); !proceeds.Equal(want) { // 9 x 0.98875
		t.Errorf("proceeds: got %v, want %v", proceeds, want)
	}
	if !s.Balance().Equal(decimal.RequireFromString("8.89875")) {
		t.Errorf("balance: got %v", s.Balance())
	}
}

func TestSessionSellStandingUsesBestCompetingBid(t *testing.T) {
	pricing := testPricing()
	pricing.UseInstantSell = false
	s := NewSession(testSnapshot(), pricing, testLogger())

	proceeds, err := s.Sell(context.Background(), "ENCHANTED_COAL", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := decimal.NewFromInt(24); !proceeds.Equal(want) { // 3x8, no tax
		t.Errorf("proceeds: got %v, want %v", proceeds, want)
	}
}

func TestSessionSellAtBypassesBookAndTax(t *testing.T) {
	pricing := testPricing()
	pricing.SellTaxPct = 1.125
	s := NewSession(testSnapshot(), pricing, testLogger())

	proceeds, err := s.SellAt(context.Background(), "GOLDEN_CARROT", 4, decimal.NewFromInt(7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := decimal.NewFromInt(28); !proceeds.Equal(want) {
		t.Errorf("proceeds: got %v, want %v", proceeds, want)
	}
}

func TestSessionRunningBalanceAccumulates(t *testing.T) {
	s := NewSession(testSnapshot(), testPricing(), testLogger())
	ctx := context.Background()

	if _, err := s.Buy(ctx, "ENCHANTED_COAL", 2); err != nil { // -22
		t.Fatal(err)
	}
	if _, err := s.Sell(ctx, "ENCHANTED_COAL", 2); err != nil { // +18
		t.Fatal(err)
	}

	if want := decimal.NewFromInt(-4); !s.Balance().Equal(want) {
		t.Errorf("balance: got %v, want %v", s.Balance(), want)
	}
}

func TestSessionBalanceIsSumOfSignedDeltas(t *testing.T) {
	pricing := testPricing()
	pricing.SellTaxPct = 1.125
	s := NewSession(testSnapshot(), pricing, testLogger())
	ctx := context.Background()

	sum := decimal.Zero

	delta, err := s.Buy(ctx, "ENCHANTED_COAL", 2)
	if err != nil {
		t.Fatal(err)
	}
	if !delta.IsNegative() {
		t.Errorf("buy delta must be negative, got %v", delta)
	}
	sum = sum.Add(delta)

	delta, err = s.Sell(ctx, "ENCHANTED_COAL", 1)
	if err != nil {
		t.Fatal(err)
	}
	if !delta.IsPositive() {
		t.Errorf("sell delta must be positive, got %v", delta)
	}
	sum = sum.Add(delta)

	delta, err = s.SellAt(ctx, "ENCHANTED_COAL", 3, decimal.NewFromInt(5))
	if err != nil {
		t.Fatal(err)
	}
	sum = sum.Add(delta)

	s.Close()

	if !s.Balance().Equal(sum) {
		t.Errorf("balance after close: got %v, want sum of deltas %v", s.Balance(), sum)
	}
}

func TestSessionClosedRejectsTrades(t *testing.T) {
	s := NewSession(testSnapshot(), testPricing(), testLogger())
	ctx := context.Background()

	if _, err := s.Buy(ctx, "ENCHANTED_COAL", 1); err != nil {
		t.Fatal(err)
	}
	s.Close()

	if _, err := s.Buy(ctx, "ENCHANTED_COAL", 1); !apperror.IsCode(err, apperror.CodeSessionClosed) {
		t.Errorf("Buy after close: got %v, want SESSION_CLOSED", err)
	}
	if _, err := s.Sell(ctx, "ENCHANTED_COAL", 1); !apperror.IsCode(err, apperror.CodeSessionClosed) {
		t.Errorf("Sell after close: got %v, want SESSION_CLOSED", err)
	}
	if _, err := s.SellAt(ctx, "ENCHANTED_COAL", 1, decimal.NewFromInt(1)); !apperror.IsCode(err, apperror.CodeSessionClosed) {
		t.Errorf("SellAt after close: got %v, want SESSION_CLOSED", err)
	}

	// Balance stays readable after close.
	if want := decimal.NewFromInt(-11); !s.Balance().Equal(want) {
		t.Errorf("balance after close: got %v, want %v", s.Balance(), want)
	}
	if s.IsOpen() {
		t.Error("session must report closed")
	}
}

func TestSessionUnlistedItem(t *testing.T) {
	s := NewSession(testSnapshot(), testPricing(), testLogger())

	if _, err := s.Buy(context.Background(), "MISSING", 1); !apperror.IsCode(err, apperror.CodeItemNotListed) {
		t.Errorf("got %v, want ITEM_NOT_LISTED", err)
	}
}

func TestSessionPricingFailureSurfacesCode(t *testing.T) {
	pricing := testPricing()
	pricing.UseInstantBuy = true
	s := NewSession(testSnapshot(), pricing, testLogger())

	_, err := s.Buy(context.Background(), "ENCHANTED_COAL", 100)
	if !apperror.IsCode(err, apperror.CodeInsufficientDepth) {
		t.Errorf("got %v, want INSUFFICIENT_DEPTH", err)
	}
	if !s.Balance().IsZero() {
		t.Errorf("failed trade must not move the balance, got %v", s.Balance())
	}
}
