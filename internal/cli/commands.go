package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tikona/stockchat/internal/assistant"
	"github.com/tikona/stockchat/internal/config"
	"github.com/tikona/stockchat/internal/dataflows"
	"github.com/tikona/stockchat/internal/llm"
	"github.com/tikona/stockchat/internal/logger"
	"github.com/tikona/stockchat/internal/server"
	"github.com/tikona/stockchat/internal/storage/sqlite"
)

const version = "1.0.0"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "stockchat",
		Short: "stockchat - AI stock research chat",
		Long: `stockchat is a chat assistant for stock research. Questions are augmented
with live fundamentals and answered by a hosted LLM; every conversation is
persisted locally for replay and symbol-based search.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("failed to create directories: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior: start interactive mode
			return withAssistant(cfg, func(svc *assistant.Assistant, _ *zap.Logger) error {
				return NewInteractiveSession(cfg, svc).Start()
			})
		},
	}

	rootCmd.AddCommand(newServeCmd(cfg))
	rootCmd.AddCommand(newAskCmd(cfg))
	rootCmd.AddCommand(newSearchCmd(cfg))
	rootCmd.AddCommand(newExportCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// withAssistant wires store, market data and LLM providers, runs fn, and
// tears the store down afterwards.
func withAssistant(cfg *config.Config, fn func(*assistant.Assistant, *zap.Logger) error) error {
	log := logger.New(cfg.LogPath, cfg.Debug)
	defer log.Sync()

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	market, err := dataflows.NewProvider(cfg)
	if err != nil {
		return err
	}

	gen, err := llm.NewProvider(context.Background(), cfg)
	if err != nil {
		return err
	}

	return fn(assistant.New(store, market, gen, log), log)
}

func newServeCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAssistant(cfg, func(svc *assistant.Assistant, log *zap.Logger) error {
				return server.New(cfg, svc, log).Run()
			})
		},
	}

	cmd.Flags().IntVar(&cfg.HTTPPort, "port", cfg.HTTPPort, "Port to listen on")

	return cmd
}

func newAskCmd(cfg *config.Config) *cobra.Command {
	var symbol string
	var sessionId string

	cmd := &cobra.Command{
		Use:   "ask [QUESTION]",
		Short: "Ask a single question and print the reply",
		Long: `Ask one question outside the interactive loop.
Example: stockchat ask "How did Apple do this quarter?" --symbol=AAPL`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAssistant(cfg, func(svc *assistant.Assistant, _ *zap.Logger) error {
				var session *assistant.Session
				if sessionId != "" {
					var err error
					session, err = svc.Resume(cmd.Context(), sessionId)
					if err != nil {
						return err
					}
				} else {
					session = assistant.NewSession()
				}

				reply, err := svc.CompleteTurn(cmd.Context(), session, args[0], symbol)
				if err != nil {
					return err
				}

				fmt.Printf("session: %s\n\n%s\n", session.ID, reply)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "", "Optional stock symbol, e.g. AAPL")
	cmd.Flags().StringVar(&sessionId, "session", "", "Continue an existing session")

	return cmd
}

func newSearchCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "search [SYMBOL]",
		Short: "Search stored messages by stock symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAssistant(cfg, func(svc *assistant.Assistant, _ *zap.Logger) error {
				matches, err := svc.Search(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if len(matches) == 0 {
					fmt.Println("No messages found for that symbol.")
					return nil
				}
				fmt.Println(renderTranscript(matches))
				return nil
			})
		},
	}
}

func newExportCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "export [SESSION_ID]",
		Short: "Print a session transcript as plain text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAssistant(cfg, func(svc *assistant.Assistant, _ *zap.Logger) error {
				history, err := svc.History(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Println(assistant.ExportTranscript(history))
				return nil
			})
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("stockchat v%s\n", version)
		},
	}
}
