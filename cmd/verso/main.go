package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/bookverse/verso/internal/bookverse"
	"github.com/bookverse/verso/internal/catalog"
	"github.com/bookverse/verso/internal/config"
	"github.com/bookverse/verso/internal/log"
	"github.com/bookverse/verso/internal/session"
	"github.com/bookverse/verso/internal/store"
	"github.com/bookverse/verso/internal/tui"
)

const version = "1.0.0"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.BoolVar(showVersion, "v", false, "print version and exit")
	serverURL := flag.String("server", "", "BookVerse server URL (overrides config)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("verso %s\n", version)
		return
	}

	if err := run(*serverURL); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(serverOverride string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if serverOverride != "" {
		cfg.Server.URL = serverOverride
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting verso", "version", version)

	firstRun := false
	if !cfg.IsConfigured() {
		if err := runSetupFlow(cfg); err != nil {
			return err
		}
		firstRun = true
	}

	state, err := store.Open(config.DefaultStatePath())
	if err != nil {
		logger.Warn("state store unavailable, session will not persist", "error", err)
		state, _ = store.Open("")
	}
	defer state.Close()

	client := bookverse.NewClient(cfg.Server.URL, logger)
	sess := session.NewStore(client, state, logger)
	cat := catalog.NewService(client, logger)

	if firstRun {
		if err := offerTerminalLogin(sess); err != nil {
			return err
		}
	}

	model := tui.NewModel(sess, cat, state, client.BaseURL(), cfg.UI.ShowFeaturedRail, logger)

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow asks for the server URL on first launch
func runSetupFlow(cfg *config.Config) error {
	fmt.Println("Welcome to Verso!")
	fmt.Println()
	fmt.Print("Enter your BookVerse server URL (e.g., http://localhost:8000): ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read server URL: %w", err)
	}
	url := strings.TrimSpace(line)
	if url == "" {
		return fmt.Errorf("server URL is required")
	}
	cfg.Server.URL = url

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	return nil
}

// offerTerminalLogin lets the user sign in before the TUI starts. Skipped
// when stdin is not a terminal or the prompt is left empty.
func offerTerminalLogin(sess *session.Store) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil
	}

	fmt.Print("Email (leave empty to browse anonymously): ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	email := strings.TrimSpace(line)
	if email == "" {
		return nil
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := sess.Login(ctx, email, string(password)); err != nil {
		// A failed sign-in is not fatal, browsing works anonymously
		fmt.Printf("Sign-in failed: %v\n", err)
		fmt.Println("Continuing anonymously, press a in the app to retry.")
		return nil
	}

	fmt.Println("✓ Signed in!")
	return nil
}
