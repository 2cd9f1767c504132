package dataflows

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/piquette/finance-go/equity"

	"github.com/tikona/stockchat/internal/config"
)

// YahooClient fetches fundamentals from Yahoo Finance quotes. Yahoo quotes
// carry no sector, industry, country, ROE or debt/equity data; those fields
// degrade to N/A.
type YahooClient struct {
	cache *CacheManager
}

func NewYahooClient(cfg *config.Config) *YahooClient {
	cacheDir := filepath.Join(cfg.DataDir, "cache", "yahoo")
	cache := NewCacheManager(cacheDir, 15*time.Minute, cfg.CacheEnabled)

	return &YahooClient{
		cache: cache,
	}
}

func (yc *YahooClient) Name() string {
	return "yahoo"
}

// Fundamentals gets the key metrics for a symbol.
func (yc *YahooClient) Fundamentals(_ context.Context, symbol string) (*Fundamentals, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}

	symbol = NormalizeSymbol(symbol)

	var cached Fundamentals
	if yc.cache.Get("yahoo", "fundamentals", symbol, &cached) {
		return &cached, nil
	}

	q, err := equity.Get(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to get quote for %s: %w", symbol, err)
	}
	if q == nil {
		return nil, fmt.Errorf("no quote data for %s", symbol)
	}

	result := NewFundamentals(symbol)
	name := q.LongName
	if name == "" {
		name = q.ShortName
	}
	result.Set("Company Name", name)
	result.SetInt("Market Cap", q.MarketCap)
	result.SetFloat("Current Price", q.RegularMarketPrice)
	result.SetFloat("Previous Close", q.RegularMarketPreviousClose)
	result.SetFloat("PE Ratio", q.TrailingPE)
	result.SetFloat("EPS", q.EpsTrailingTwelveMonths)
	result.SetFloat("52 Week High", q.FiftyTwoWeekHigh)
	result.SetFloat("52 Week Low", q.FiftyTwoWeekLow)
	result.SetFloat("Dividend Yield", q.TrailingAnnualDividendYield)

	yc.cache.Set("yahoo", "fundamentals", symbol, result)

	return result, nil
}
