package assistant

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tikona/stockchat/internal/dataflows"
	"github.com/tikona/stockchat/internal/llm"
	"github.com/tikona/stockchat/internal/models"
)

// Store is the slice of the conversation store the assistant needs.
type Store interface {
	Append(ctx context.Context, sessionID, role, text, symbol string) error
	History(ctx context.Context, sessionID string) ([]models.Message, error)
	Search(ctx context.Context, symbol string) ([]models.Message, error)
}

// Assistant turns one user utterance into one persisted assistant reply.
type Assistant struct {
	store  Store
	market dataflows.Provider
	gen    llm.Provider
	log    *zap.Logger
}

func New(store Store, market dataflows.Provider, gen llm.Provider, log *zap.Logger) *Assistant {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assistant{
		store:  store,
		market: market,
		gen:    gen,
		log:    log,
	}
}

// BuildPrompt assembles the full prompt text. When symbol is set it fetches
// live fundamentals synchronously; a fetch failure degrades to an inline
// note rather than aborting the turn.
func (a *Assistant) BuildPrompt(ctx context.Context, history []models.Message, userMsg, symbol string) string {
	var (
		fundamentals *dataflows.Fundamentals
		fetchErr     error
	)
	if symbol != "" {
		fundamentals, fetchErr = a.market.Fundamentals(ctx, symbol)
		if fetchErr != nil {
			a.log.Warn("fundamentals fetch failed",
				zap.String("symbol", symbol),
				zap.Error(fetchErr))
		}
	}

	return renderPrompt(history, userMsg, renderStockBlock(fundamentals, symbol, fetchErr))
}

// CompleteTurn persists the user turn, builds the prompt from the reloaded
// history, calls the text-generation backend and persists the reply. A
// provider failure becomes the reply text; only storage faults abort the
// turn, since persistence is the one invariant this system guarantees.
func (a *Assistant) CompleteTurn(ctx context.Context, session *Session, userText, symbol string) (string, error) {
	if symbol != "" {
		symbol = dataflows.NormalizeSymbol(symbol)
	}

	if err := a.store.Append(ctx, session.ID, models.RoleUser, userText, symbol); err != nil {
		return "", fmt.Errorf("persist user turn: %w", err)
	}

	history, err := a.store.History(ctx, session.ID)
	if err != nil {
		return "", fmt.Errorf("load history: %w", err)
	}

	prompt := a.BuildPrompt(ctx, history, userText, symbol)

	reply, genErr := a.gen.Generate(ctx, prompt)
	if genErr != nil {
		a.log.Warn("generation failed", zap.String("provider", a.gen.Name()), zap.Error(genErr))
		reply = llm.RenderFailure(genErr)
	}

	// The reply carries the same symbol as the triggering user turn so a
	// symbol search surfaces both sides of the exchange.
	if err := a.store.Append(ctx, session.ID, models.RoleAssistant, reply, symbol); err != nil {
		return "", fmt.Errorf("persist assistant turn: %w", err)
	}

	session.History, err = a.store.History(ctx, session.ID)
	if err != nil {
		return "", fmt.Errorf("reload history: %w", err)
	}

	return reply, nil
}

// Resume rebuilds a session around an existing identifier.
func (a *Assistant) Resume(ctx context.Context, id string) (*Session, error) {
	return Resume(ctx, a.store, id)
}

// History returns the full transcript of a session in chronological order.
func (a *Assistant) History(ctx context.Context, sessionID string) ([]models.Message, error) {
	return a.store.History(ctx, sessionID)
}

// Search returns every stored message tagged with the symbol, most recent
// first, across all sessions.
func (a *Assistant) Search(ctx context.Context, symbol string) ([]models.Message, error) {
	return a.store.Search(ctx, dataflows.NormalizeSymbol(symbol))
}
