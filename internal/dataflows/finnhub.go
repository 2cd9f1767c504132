package dataflows

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/tikona/stockchat/internal/config"
)

// FinnhubClient fetches fundamentals from the Finnhub API. It fills the
// profile and ratio fields Yahoo quotes lack.
type FinnhubClient struct {
	client *resty.Client
	cache  *CacheManager
	apiKey string
}

func NewFinnhubClient(cfg *config.Config) *FinnhubClient {
	cacheDir := filepath.Join(cfg.DataDir, "cache", "finnhub")
	cache := NewCacheManager(cacheDir, 15*time.Minute, cfg.CacheEnabled)

	client := resty.New()
	client.SetBaseURL("https://finnhub.io/api/v1")
	client.SetTimeout(30 * time.Second)

	return &FinnhubClient{
		client: client,
		cache:  cache,
		apiKey: cfg.FinnhubAPIKey,
	}
}

func (fc *FinnhubClient) Name() string {
	return "finnhub"
}

type finnhubProfile struct {
	Name                 string  `json:"name"`
	Country              string  `json:"country"`
	FinnhubIndustry      string  `json:"finnhubIndustry"`
	MarketCapitalization float64 `json:"marketCapitalization"`
}

type finnhubQuote struct {
	Current       float64 `json:"c"`
	PreviousClose float64 `json:"pc"`
}

type finnhubMetrics struct {
	Metric map[string]json.Number `json:"metric"`
}

// Fundamentals gets the key metrics for a symbol from the profile, quote
// and basic-financials endpoints.
func (fc *FinnhubClient) Fundamentals(ctx context.Context, symbol string) (*Fundamentals, error) {
	if fc.apiKey == "" {
		return nil, fmt.Errorf("finnhub API key not configured")
	}
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}

	symbol = NormalizeSymbol(symbol)

	var cached Fundamentals
	if fc.cache.Get("finnhub", "fundamentals", symbol, &cached) {
		return &cached, nil
	}

	var profile finnhubProfile
	if err := fc.getJSON(ctx, "/stock/profile2", symbol, nil, &profile); err != nil {
		return nil, err
	}

	var quote finnhubQuote
	if err := fc.getJSON(ctx, "/quote", symbol, nil, &quote); err != nil {
		return nil, err
	}

	var metrics finnhubMetrics
	if err := fc.getJSON(ctx, "/stock/metric", symbol, map[string]string{"metric": "all"}, &metrics); err != nil {
		return nil, err
	}

	result := NewFundamentals(symbol)
	result.Set("Company Name", profile.Name)
	// Finnhub reports a single industry classification.
	result.Set("Sector", profile.FinnhubIndustry)
	result.Set("Industry", profile.FinnhubIndustry)
	result.Set("Country", profile.Country)
	if profile.MarketCapitalization > 0 {
		// Reported in millions.
		result.SetFloat("Market Cap", profile.MarketCapitalization*1e6)
	}
	result.SetFloat("Current Price", quote.Current)
	result.SetFloat("Previous Close", quote.PreviousClose)
	result.Set("PE Ratio", metricValue(metrics, "peTTM"))
	result.Set("EPS", metricValue(metrics, "epsTTM"))
	result.Set("ROE", metricValue(metrics, "roeTTM"))
	result.Set("Debt/Equity", metricValue(metrics, "totalDebt/totalEquityQuarterly"))
	result.Set("52 Week High", metricValue(metrics, "52WeekHigh"))
	result.Set("52 Week Low", metricValue(metrics, "52WeekLow"))
	result.Set("Dividend Yield", metricValue(metrics, "dividendYieldIndicatedAnnual"))

	fc.cache.Set("finnhub", "fundamentals", symbol, result)

	return result, nil
}

func (fc *FinnhubClient) getJSON(ctx context.Context, path, symbol string, extra map[string]string, out interface{}) error {
	req := fc.client.R().
		SetContext(ctx).
		SetQueryParam("symbol", symbol).
		SetQueryParam("token", fc.apiKey)
	for k, v := range extra {
		req.SetQueryParam(k, v)
	}

	resp, err := req.Get(path)
	if err != nil {
		return fmt.Errorf("failed to fetch %s for %s: %w", path, symbol, err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("finnhub API error %d: %s", resp.StatusCode(), resp.String())
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", path, err)
	}
	return nil
}

func metricValue(m finnhubMetrics, key string) string {
	if v, ok := m.Metric[key]; ok {
		return v.String()
	}
	return ""
}
