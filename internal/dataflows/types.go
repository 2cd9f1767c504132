package dataflows

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// NA is substituted for any field the provider did not return.
const NA = "N/A"

// FieldNames is the fixed set of fundamentals, in the order they are
// rendered into prompts.
var FieldNames = []string{
	"Company Name",
	"Sector",
	"Industry",
	"Country",
	"Market Cap",
	"Current Price",
	"Previous Close",
	"PE Ratio",
	"EPS",
	"ROE",
	"Debt/Equity",
	"52 Week High",
	"52 Week Low",
	"Dividend Yield",
}

// Fundamentals holds the fetched metrics for one symbol. Fields a provider
// could not supply stay unset and render as N/A. Values is exported so the
// file cache can round-trip it through JSON.
type Fundamentals struct {
	Symbol string            `json:"symbol"`
	Values map[string]string `json:"values"`
}

func NewFundamentals(symbol string) *Fundamentals {
	return &Fundamentals{
		Symbol: symbol,
		Values: make(map[string]string),
	}
}

func (f *Fundamentals) Set(name, value string) {
	if value == "" {
		return
	}
	if f.Values == nil {
		f.Values = make(map[string]string)
	}
	f.Values[name] = value
}

// SetFloat stores a numeric field, skipping zero values since the upstream
// APIs report absent metrics as zero.
func (f *Fundamentals) SetFloat(name string, v float64) {
	if v == 0 {
		return
	}
	f.Set(name, decimal.NewFromFloat(v).String())
}

func (f *Fundamentals) SetInt(name string, v int64) {
	if v == 0 {
		return
	}
	f.Set(name, fmt.Sprintf("%d", v))
}

func (f *Fundamentals) Get(name string) string {
	if v, ok := f.Values[name]; ok && v != "" {
		return v
	}
	return NA
}

// Lines renders every field as "<name>: <value>" in the fixed order.
func (f *Fundamentals) Lines() []string {
	lines := make([]string, 0, len(FieldNames))
	for _, name := range FieldNames {
		lines = append(lines, fmt.Sprintf("%s: %s", name, f.Get(name)))
	}
	return lines
}
