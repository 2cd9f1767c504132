package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tikona/stockchat/internal/assistant"
	"github.com/tikona/stockchat/internal/config"
)

// InteractiveSession handles the interactive chat loop.
type InteractiveSession struct {
	config  *config.Config
	svc     *assistant.Assistant
	session *assistant.Session
	reader  *bufio.Reader
}

func NewInteractiveSession(cfg *config.Config, svc *assistant.Assistant) *InteractiveSession {
	return &InteractiveSession{
		config:  cfg,
		svc:     svc,
		session: assistant.NewSession(),
		reader:  bufio.NewReader(os.Stdin),
	}
}

// Start begins the interactive session
func (s *InteractiveSession) Start() error {
	s.showWelcome()
	return s.runMainLoop()
}

func (s *InteractiveSession) showWelcome() {
	fmt.Println(renderTitle("Stock Chat Assistant"))
	fmt.Println()
	fmt.Println("Ask questions about stocks, financial terms, or investment insights.")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("   ask               - Ask a question (with optional stock symbol)")
	fmt.Println("   search <SYMBOL>   - Search past chats by stock symbol")
	fmt.Println("   show              - Show the current conversation")
	fmt.Println("   export            - Print the transcript as plain text")
	fmt.Println("   clear             - Start a fresh session")
	fmt.Println("   help              - Show this help")
	fmt.Println("   exit              - Quit")
	fmt.Println()
}

func (s *InteractiveSession) runMainLoop() error {
	for {
		fmt.Printf("stockchat [%s]> ", s.session.ID[:8])

		input, err := s.reader.ReadString('\n')
		if err != nil {
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		command := strings.ToLower(parts[0])

		switch command {
		case "exit", "quit", "q":
			fmt.Println("Bye!")
			return nil

		case "help", "h", "?":
			s.showWelcome()

		case "ask", "a":
			s.runAsk()

		case "search", "s":
			if len(parts) < 2 {
				fmt.Println(renderError("Usage: search <SYMBOL>"))
				continue
			}
			s.runSearch(parts[1])

		case "show":
			fmt.Println(renderTranscript(s.session.History))

		case "export":
			fmt.Println(assistant.ExportTranscript(s.session.History))

		case "clear":
			s.session = s.session.Clear()
			fmt.Println("Session cleared. Start a new chat!")

		default:
			fmt.Printf("Unknown command: %s. Type 'help' for available commands.\n", command)
		}

		fmt.Println()
	}
}

func (s *InteractiveSession) runAsk() {
	question, err := PromptForQuestion()
	if err != nil {
		fmt.Println(renderError(fmt.Sprintf("input error: %v", err)))
		return
	}
	symbol, err := PromptForSymbol()
	if err != nil {
		fmt.Println(renderError(fmt.Sprintf("input error: %v", err)))
		return
	}

	fmt.Println("Analyzing...")
	reply, err := s.svc.CompleteTurn(context.Background(), s.session, question, symbol)
	if err != nil {
		// Storage faults only; the turn is lost and the user must know.
		fmt.Println(renderError(fmt.Sprintf("turn failed: %v", err)))
		return
	}

	fmt.Println()
	fmt.Println(assistantStyle.Render("Assistant"))
	fmt.Println(reply)
}

func (s *InteractiveSession) runSearch(symbol string) {
	matches, err := s.svc.Search(context.Background(), symbol)
	if err != nil {
		fmt.Println(renderError(fmt.Sprintf("search failed: %v", err)))
		return
	}
	if len(matches) == 0 {
		fmt.Println("No messages found for that symbol.")
		return
	}

	fmt.Printf("Found %d related messages\n\n", len(matches))
	fmt.Println(renderTranscript(matches))
}
