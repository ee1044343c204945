package app

import (
	marketdomain "github.com/fliplab/bzflip/business/market/domain"
	"github.com/fliplab/bzflip/internal/config"
	"github.com/fliplab/bzflip/internal/logger"
)

// SessionFactory opens trading sessions with a fixed pricing configuration.
// Each evaluation opens its own session so balances never leak between runs.
type SessionFactory struct {
	pricing config.PricingConfig
	log     logger.LoggerInterface
}

// NewSessionFactory creates a session factory.
func NewSessionFactory(pricing config.PricingConfig, log logger.LoggerInterface) *SessionFactory {
	return &SessionFactory{pricing: pricing, log: log}
}

// Open opens a fresh session over the snapshot.
func (f *SessionFactory) Open(snap *marketdomain.Snapshot) *Session {
	return NewSession(snap, f.pricing, f.log)
}
