package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/tikona/stockchat/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "chat_history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "chat_history.db")

	first, err := Open(dbPath)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if err := first.Append(context.Background(), "s1", models.RoleUser, "hello", ""); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopening against an existing file must not error or lose rows.
	second, err := Open(dbPath)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer second.Close()

	msgs, err := second.History(context.Background(), "s1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message after reopen, got %d", len(msgs))
	}
}

func TestAppendHistoryRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Append(ctx, "s1", models.RoleUser, "what about apple?", "AAPL"); err != nil {
		t.Fatalf("Append user: %v", err)
	}
	if err := store.Append(ctx, "s1", models.RoleAssistant, "apple looks fine", "AAPL"); err != nil {
		t.Fatalf("Append assistant: %v", err)
	}

	msgs, err := store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}

	if msgs[0].Role != models.RoleUser || msgs[0].Text != "what about apple?" || msgs[0].StockSymbol != "AAPL" {
		t.Errorf("unexpected first message: %+v", msgs[0])
	}
	if msgs[1].Role != models.RoleAssistant || msgs[1].Text != "apple looks fine" {
		t.Errorf("unexpected second message: %+v", msgs[1])
	}
	for _, m := range msgs {
		if m.Id <= 0 {
			t.Errorf("expected store-assigned id, got %d", m.Id)
		}
		if _, err := time.Parse("2006-01-02 15:04:05", m.CreatedAt); err != nil {
			t.Errorf("bad created_at %q: %v", m.CreatedAt, err)
		}
	}
}

func TestHistoryOrderMatchesInsertion(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	texts := []string{"one", "two", "three", "four", "five"}
	for _, text := range texts {
		if err := store.Append(ctx, "s1", models.RoleUser, text, ""); err != nil {
			t.Fatalf("Append %s: %v", text, err)
		}
	}

	msgs, err := store.History(ctx, "s1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(msgs) != len(texts) {
		t.Fatalf("expected %d messages, got %d", len(texts), len(msgs))
	}
	for i, m := range msgs {
		if m.Text != texts[i] {
			t.Errorf("position %d: expected %q, got %q", i, texts[i], m.Text)
		}
		if i > 0 && msgs[i-1].Id >= m.Id {
			t.Errorf("ids not strictly increasing at position %d", i)
		}
	}
}

func TestHistoryUnknownSessionIsEmpty(t *testing.T) {
	store := openTestStore(t)

	msgs, err := store.History(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected empty history, got %d messages", len(msgs))
	}
}

func TestSearchExactSymbolMostRecentFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	// Force distinct created_at values so recency ordering is observable.
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	if err := store.Append(ctx, "s1", models.RoleUser, "apple question", "AAPL"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Append(ctx, "s2", models.RoleUser, "tesla question", "TSLA"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Append(ctx, "s2", models.RoleAssistant, "apple answer", "AAPL"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Append(ctx, "s3", models.RoleUser, "no symbol here", ""); err != nil {
		t.Fatalf("Append: %v", err)
	}

	msgs, err := store.Search(ctx, "AAPL")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 AAPL messages, got %d", len(msgs))
	}
	for _, m := range msgs {
		if m.StockSymbol != "AAPL" {
			t.Errorf("search returned symbol %q", m.StockSymbol)
		}
	}
	if msgs[0].Text != "apple answer" || msgs[1].Text != "apple question" {
		t.Errorf("expected most recent first, got %q then %q", msgs[0].Text, msgs[1].Text)
	}

	// Case-sensitive exact match only.
	lower, err := store.Search(ctx, "aapl")
	if err != nil {
		t.Fatalf("Search lower: %v", err)
	}
	if len(lower) != 0 {
		t.Fatalf("expected no matches for lowercase symbol, got %d", len(lower))
	}
}

func TestAppendRejectsUnknownRole(t *testing.T) {
	store := openTestStore(t)

	if err := store.Append(context.Background(), "s1", "system", "nope", ""); err == nil {
		t.Fatal("expected error for unknown role")
	}
}
