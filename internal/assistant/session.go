package assistant

import (
	"context"

	"github.com/google/uuid"

	"github.com/tikona/stockchat/internal/models"
)

// Session is the explicit unit of conversation state: an opaque identifier
// plus a cached copy of its history. A session has no stored existence of
// its own; clearing it means replacing it wholesale with a fresh one.
type Session struct {
	ID      string
	History []models.Message
}

func NewSession() *Session {
	return &Session{ID: uuid.NewString()}
}

// Resume rebuilds a session around an existing identifier, hydrating the
// cache from the store.
func Resume(ctx context.Context, store Store, id string) (*Session, error) {
	history, err := store.History(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Session{ID: id, History: history}, nil
}

// Clear abandons this session and returns a brand-new empty one. The old
// messages stay in the store; they are simply no longer the active session.
func (s *Session) Clear() *Session {
	return NewSession()
}
