package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lurnix/internal/api"
	"lurnix/internal/app"
	"lurnix/internal/config"
	"lurnix/internal/interview"
	"lurnix/internal/llm"
	"lurnix/internal/logging"
	"lurnix/internal/session"
	"lurnix/internal/speech"
	"lurnix/internal/store"
)

// runApp builds every dependency and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}

	log := logging.New(cfg.LogFile)
	defer func() { _ = log.Sync() }()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	opts := app.Options{
		Config:    cfg,
		Log:       log,
		Client:    api.New(cfg, log),
		Session:   session.New(st.SessionRepo()),
		Speech:    speech.New(cfg.SpeechEnabled, cfg.SpeechCommand),
		ExportDir: transcriptDir(),
	}

	llmCfg := llm.ConfigFromEnv()
	if llmCfg.Validate() != nil {
		if discovered, ok := llm.DiscoverConfig(); ok {
			llmCfg = discovered
		}
	}

	if err := llmCfg.Validate(); err != nil {
		// Interviews still work on the built-in question bank.
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Interview questions will come from the practice bank.")
		opts.Generator = interview.NewGenerator(nil, log)
	} else {
		provider, err := llm.NewProvider(ctx, llmCfg, st.EventRepo())
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider unavailable:", err)
			opts.Generator = interview.NewGenerator(nil, log)
		} else {
			opts.Generator = interview.NewGenerator(provider, log)
		}
	}

	return app.Run(opts)
}

// transcriptDir is where downloaded interview transcripts land.
func transcriptDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	if info, err := os.Stat(filepath.Join(home, "Downloads")); err == nil && info.IsDir() {
		return filepath.Join(home, "Downloads")
	}
	return home
}
