// Package domain contains the core domain types for the market context.
package domain

import (
	"github.com/shopspring/decimal"
)

// Order is a single resting order on one side of an item's book.
// Quantity and UnitPrice are always positive.
type Order struct {
	Quantity  int64
	UnitPrice decimal.Decimal
}

// Total returns Quantity × UnitPrice.
func (o Order) Total() decimal.Decimal {
	return o.UnitPrice.Mul(decimal.NewFromInt(o.Quantity))
}

// BookSide identifies one of the four ordered sides of a book.
type BookSide string

const (
	// SideInstantBuy holds the offers consumed when buying instantly.
	SideInstantBuy BookSide = "instant_buy"
	// SideInstantSell holds the bids consumed when selling instantly.
	SideInstantSell BookSide = "instant_sell"
	// SideStandingSell holds the competing sell offers a standing buy undercuts.
	SideStandingSell BookSide = "standing_sell"
	// SideStandingBuy holds the competing buy orders a standing sell undercuts.
	SideStandingBuy BookSide = "standing_buy"
)

// Book is the order book for a single item: four independently ordered
// sides, best price first. Sides may be empty.
type Book struct {
	InstantBuys   []Order
	InstantSells  []Order
	StandingBuys  []Order
	StandingSells []Order
}

// Side returns the orders on the given side, best first.
func (b Book) Side(side BookSide) []Order {
	switch side {
	case SideInstantBuy:
		return b.InstantBuys
	case SideInstantSell:
		return b.InstantSells
	case SideStandingBuy:
		return b.StandingBuys
	case SideStandingSell:
		return b.StandingSells
	}
	return nil
}
