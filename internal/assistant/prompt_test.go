package assistant

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/tikona/stockchat/internal/dataflows"
	"github.com/tikona/stockchat/internal/models"
)

// stubMarket serves canned fundamentals or a canned failure.
type stubMarket struct {
	fundamentals *dataflows.Fundamentals
	err          error
	calls        int
}

func (s *stubMarket) Name() string { return "stub" }

func (s *stubMarket) Fundamentals(_ context.Context, symbol string) (*dataflows.Fundamentals, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.fundamentals, nil
}

func userMsg(text string) models.Message {
	return models.Message{Role: models.RoleUser, Text: text}
}

func assistantMsg(text string) models.Message {
	return models.Message{Role: models.RoleAssistant, Text: text}
}

func TestBuildPromptEmptyHistoryNoSymbol(t *testing.T) {
	market := &stubMarket{}
	a := New(nil, market, nil, nil)

	prompt := a.BuildPrompt(context.Background(), nil, "What is a P/E ratio?", "")

	if !strings.Contains(prompt, "financial research assistant") {
		t.Error("prompt should contain the system instructions block")
	}
	if !strings.Contains(prompt, "Conversation Context:\n\n") {
		t.Error("prompt should contain an empty conversation context section")
	}
	if !strings.Contains(prompt, "User Query: What is a P/E ratio?") {
		t.Error("prompt should contain the literal user query")
	}
	if strings.Contains(prompt, "Live Stock Data") {
		t.Error("prompt should not contain a fundamentals section")
	}
	if market.calls != 0 {
		t.Error("no fundamentals fetch should happen without a symbol")
	}
}

func TestBuildPromptKeepsLastSixTurns(t *testing.T) {
	history := make([]models.Message, 0, 8)
	for i := 1; i <= 8; i++ {
		history = append(history, userMsg(fmt.Sprintf("question %d", i)))
	}

	a := New(nil, &stubMarket{}, nil, nil)
	prompt := a.BuildPrompt(context.Background(), history, "latest", "")

	for i := 1; i <= 2; i++ {
		if strings.Contains(prompt, fmt.Sprintf("question %d\n", i)) {
			t.Errorf("turn %d should have been dropped", i)
		}
	}
	for i := 3; i <= 8; i++ {
		if !strings.Contains(prompt, fmt.Sprintf("question %d", i)) {
			t.Errorf("turn %d should be present", i)
		}
	}

	// Chronological order within the kept window.
	if strings.Index(prompt, "question 3") > strings.Index(prompt, "question 8") {
		t.Error("kept turns must stay in chronological order")
	}
}

func TestBuildPromptContextSpeakerLabels(t *testing.T) {
	history := []models.Message{
		userMsg("how is apple doing?"),
		assistantMsg("apple is doing fine"),
	}

	a := New(nil, &stubMarket{}, nil, nil)
	prompt := a.BuildPrompt(context.Background(), history, "and tesla?", "")

	if !strings.Contains(prompt, "User: how is apple doing?\nAssistant: apple is doing fine") {
		t.Errorf("context lines mislabeled:\n%s", prompt)
	}
}

func TestBuildPromptWithFundamentals(t *testing.T) {
	f := dataflows.NewFundamentals("AAPL")
	f.Set("Company Name", "Apple Inc.")
	f.Set("Sector", "Technology")
	f.Set("Industry", "Consumer Electronics")
	f.Set("Country", "United States")
	f.Set("Market Cap", "2800000000000")
	f.Set("Current Price", "178.5")
	f.Set("Previous Close", "177.1")
	f.Set("PE Ratio", "29.4")
	f.Set("EPS", "6.07")
	f.Set("ROE", "1.47")
	f.Set("Debt/Equity", "176.3")
	f.Set("52 Week High", "199.6")
	f.Set("52 Week Low", "124.2")
	f.Set("Dividend Yield", "0.0055")

	history := make([]models.Message, 0, 8)
	for i := 1; i <= 8; i++ {
		history = append(history, userMsg(fmt.Sprintf("turn %d", i)))
	}

	a := New(nil, &stubMarket{fundamentals: f}, nil, nil)
	prompt := a.BuildPrompt(context.Background(), history, "analyze apple", "AAPL")

	idx := strings.Index(prompt, "Live Stock Data:")
	if idx < 0 {
		t.Fatal("prompt should contain the fundamentals block")
	}
	block := prompt[idx:]
	fieldLines := 0
	for _, name := range dataflows.FieldNames {
		if strings.Contains(block, name+": ") {
			fieldLines++
		}
	}
	if fieldLines != 14 {
		t.Errorf("expected 14 field lines, found %d", fieldLines)
	}
	if strings.Contains(block, dataflows.NA) {
		t.Error("no N/A expected when all fields are present")
	}

	if strings.Contains(prompt, "turn 1\n") || strings.Contains(prompt, "turn 2\n") {
		t.Error("context should contain only the last 6 turns")
	}
}

func TestBuildPromptFetchFailureBecomesNote(t *testing.T) {
	market := &stubMarket{err: fmt.Errorf("lookup timed out")}
	a := New(nil, market, nil, nil)

	prompt := a.BuildPrompt(context.Background(), nil, "analyze tesla", "TSLA")

	if !strings.Contains(prompt, "TSLA") || !strings.Contains(prompt, "lookup timed out") {
		t.Errorf("note should carry the symbol and failure reason:\n%s", prompt)
	}
	if strings.Contains(prompt, "Live Stock Data") {
		t.Error("no fundamentals lines expected after a fetch failure")
	}
}

func TestBuildPromptEndsWithAnswerCue(t *testing.T) {
	a := New(nil, &stubMarket{}, nil, nil)
	prompt := a.BuildPrompt(context.Background(), nil, "hello", "")

	if !strings.HasSuffix(prompt, "Answer:") {
		t.Errorf("prompt should end with the answer cue, got tail %q", prompt[len(prompt)-20:])
	}
}
