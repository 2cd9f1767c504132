package models

// Roles a stored conversation turn may carry.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one persisted conversation turn. Id and CreatedAt are assigned
// by the store on insert, never by callers; messages are immutable once
// written.
type Message struct {
	Id          int64  `json:"id"`
	SessionId   string `json:"session_id"`
	Role        string `json:"role"`
	Text        string `json:"text"`
	StockSymbol string `json:"stock_symbol,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// IsValidRole reports whether role is one of the known turn roles.
func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAssistant
}
