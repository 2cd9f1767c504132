package assistant

import (
	"fmt"
	"strings"

	"github.com/tikona/stockchat/internal/models"
)

// ExportTranscript renders a history as plain text, one entry per message,
// blank-line separated.
func ExportTranscript(history []models.Message) string {
	entries := make([]string, 0, len(history))
	for _, m := range history {
		entries = append(entries, fmt.Sprintf("[%s] %s: %s", m.CreatedAt, strings.ToUpper(m.Role), m.Text))
	}
	return strings.Join(entries, "\n\n")
}
