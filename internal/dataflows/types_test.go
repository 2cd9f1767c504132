package dataflows

import (
	"strings"
	"testing"
)

func TestFundamentalsLinesFixedOrder(t *testing.T) {
	f := NewFundamentals("AAPL")
	f.Set("Company Name", "Apple Inc.")
	f.SetFloat("Current Price", 178.5)
	f.SetInt("Market Cap", 2800000000000)

	lines := f.Lines()
	if len(lines) != len(FieldNames) {
		t.Fatalf("expected %d lines, got %d", len(FieldNames), len(lines))
	}

	if lines[0] != "Company Name: Apple Inc." {
		t.Errorf("unexpected first line: %s", lines[0])
	}
	for i, name := range FieldNames {
		if !strings.HasPrefix(lines[i], name+": ") {
			t.Errorf("line %d should start with %q, got %q", i, name, lines[i])
		}
	}
}

func TestFundamentalsMissingFieldsRenderNA(t *testing.T) {
	f := NewFundamentals("TSLA")

	for _, name := range FieldNames {
		if got := f.Get(name); got != NA {
			t.Errorf("field %s: expected %s, got %s", name, NA, got)
		}
	}
	if f.Get("Sector") != NA {
		t.Errorf("expected N/A for unset sector")
	}
}

func TestSetFloatSkipsZero(t *testing.T) {
	f := NewFundamentals("MSFT")
	f.SetFloat("PE Ratio", 0)
	f.SetInt("Market Cap", 0)

	if f.Get("PE Ratio") != NA {
		t.Errorf("zero float should stay N/A, got %s", f.Get("PE Ratio"))
	}
	if f.Get("Market Cap") != NA {
		t.Errorf("zero int should stay N/A, got %s", f.Get("Market Cap"))
	}
}

func TestValidateSymbol(t *testing.T) {
	tests := []struct {
		symbol  string
		wantErr bool
	}{
		{"AAPL", false},
		{" tsla ", false},
		{"", true},
		{"   ", true},
		{"WAYTOOLONGSYM", true},
	}

	for _, tt := range tests {
		err := ValidateSymbol(tt.symbol)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateSymbol(%q) error = %v, wantErr %v", tt.symbol, err, tt.wantErr)
		}
	}
}

func TestNormalizeSymbol(t *testing.T) {
	if got := NormalizeSymbol(" aapl "); got != "AAPL" {
		t.Errorf("expected AAPL, got %s", got)
	}
}
