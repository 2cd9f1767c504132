package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tikona/stockchat/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	assistantStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#EF4444"))
)

func renderTitle(text string) string {
	return titleStyle.Render(text)
}

func renderError(text string) string {
	return errorStyle.Render(text)
}

// renderMessage prints one transcript entry with a styled speaker label.
func renderMessage(m models.Message) string {
	label := assistantStyle.Render("Assistant")
	if m.Role == models.RoleUser {
		label = userStyle.Render("You")
	}

	meta := m.CreatedAt
	if m.StockSymbol != "" {
		meta = fmt.Sprintf("%s | %s", meta, m.StockSymbol)
	}

	return fmt.Sprintf("%s %s\n%s", label, metaStyle.Render(meta), m.Text)
}

func renderTranscript(history []models.Message) string {
	blocks := make([]string, 0, len(history))
	for _, m := range history {
		blocks = append(blocks, renderMessage(m))
	}
	return strings.Join(blocks, "\n\n")
}
