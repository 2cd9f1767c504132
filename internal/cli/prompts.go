package cli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

var tickerPattern = regexp.MustCompile(`^[A-Z0-9.-]+$`)

// PromptForQuestion asks the user what they want to know.
func PromptForQuestion() (string, error) {
	var question string
	prompt := &survey.Input{
		Message: "Your question:",
		Help:    "Ask about stocks, financial terms, or investment insights",
	}

	err := survey.AskOne(prompt, &question, survey.WithValidator(func(val interface{}) error {
		if strings.TrimSpace(val.(string)) == "" {
			return fmt.Errorf("question cannot be empty")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(question), nil
}

// PromptForSymbol asks for an optional ticker symbol; empty means the turn
// has no associated symbol.
func PromptForSymbol() (string, error) {
	var ticker string
	prompt := &survey.Input{
		Message: "Stock symbol (optional, e.g. AAPL, TSLA):",
		Help:    "Leave empty to ask without live stock data",
	}

	err := survey.AskOne(prompt, &ticker, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(strings.ToUpper(val.(string)))
		if str == "" {
			return nil
		}
		if len(str) > 10 {
			return fmt.Errorf("ticker symbol too long (max 10 characters)")
		}
		if !tickerPattern.MatchString(str) {
			return fmt.Errorf("invalid ticker format (use letters, numbers, dots, and hyphens only)")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(strings.ToUpper(ticker)), nil
}
