package dataflows

import (
	"context"
	"fmt"

	"github.com/tikona/stockchat/internal/config"
)

// Provider fetches live fundamentals for a ticker symbol. Any transport or
// lookup failure surfaces as a single error whose text the caller displays
// verbatim.
type Provider interface {
	Name() string
	Fundamentals(ctx context.Context, symbol string) (*Fundamentals, error)
}

// NewProvider selects a market-data backend from configuration.
func NewProvider(cfg *config.Config) (Provider, error) {
	switch cfg.MarketProvider {
	case "", "yahoo":
		return NewYahooClient(cfg), nil
	case "finnhub":
		return NewFinnhubClient(cfg), nil
	default:
		return nil, fmt.Errorf("unknown market provider: %s", cfg.MarketProvider)
	}
}
