package assistant

import (
	"fmt"
	"strings"

	"github.com/tikona/stockchat/internal/dataflows"
	"github.com/tikona/stockchat/internal/models"
)

// contextWindow bounds how many recent turns are replayed into the prompt;
// older context is silently dropped.
const contextWindow = 6

const systemInstructions = "You are an intelligent financial research assistant built for Tikona Capital Finserv Pvt. Ltd., " +
	"specialized in stock market analysis, portfolio research, and AI-driven insights. " +
	"Provide structured, factual, and data-backed summaries. " +
	"Never leave placeholders like [Insert Data]. Always use the provided stock data.\n\n" +
	"When stock data is available, include:\n" +
	"- Company Overview\n" +
	"- Recent Performance\n" +
	"- Fundamental Metrics (PE, EPS, ROE, Market Cap, etc.)\n" +
	"- Technical / Comparative Insights\n" +
	"- Summary Insight (neutral, analytical tone)\n\n" +
	"End with a disclaimer: 'This information is factual and for educational purposes only. Not financial advice.'"

// renderContext formats the most recent turns as User:/Assistant: lines in
// chronological order.
func renderContext(history []models.Message) string {
	start := 0
	if len(history) > contextWindow {
		start = len(history) - contextWindow
	}

	lines := make([]string, 0, contextWindow)
	for _, m := range history[start:] {
		speaker := "Assistant"
		if m.Role == models.RoleUser {
			speaker = "User"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", speaker, m.Text))
	}
	return strings.Join(lines, "\n")
}

// renderStockBlock formats fetched fundamentals, or the inline note that
// replaces them when the fetch failed.
func renderStockBlock(fundamentals *dataflows.Fundamentals, symbol string, fetchErr error) string {
	if symbol == "" {
		return ""
	}
	if fetchErr != nil {
		return fmt.Sprintf("\n(Note: could not fetch live data for %s: %v)", symbol, fetchErr)
	}
	return "\nLive Stock Data:\n" + strings.Join(fundamentals.Lines(), "\n")
}

func renderPrompt(history []models.Message, userMsg, stockBlock string) string {
	return fmt.Sprintf("%s\n\nConversation Context:\n%s\n\nUser Query: %s\n%s\n\nAnswer:",
		systemInstructions, renderContext(history), userMsg, stockBlock)
}
