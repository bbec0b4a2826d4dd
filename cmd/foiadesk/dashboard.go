package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/foiadesk/foiadesk/internal/app"
	"github.com/foiadesk/foiadesk/internal/lockfile"
	"github.com/foiadesk/foiadesk/internal/logging"
	"github.com/foiadesk/foiadesk/internal/mailbox"
	"github.com/foiadesk/foiadesk/internal/store"
)

// runDashboard boots the full-screen TUI.
func runDashboard(ctx *commandContext) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("the dashboard needs a terminal; use subcommands for scripted access")
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	// One instance per cache directory; a second one would fight over
	// the SQLite snapshot.
	lock, err := lockfile.Acquire(cfg.CacheDir)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	closer, err := logging.Setup(cfg.CacheDir, logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		return err
	}
	defer closer.Close()

	cache, err := store.Open(filepath.Join(cfg.CacheDir, "cache.db"))
	if err != nil {
		return fmt.Errorf("opening snapshot cache: %w", err)
	}
	defer cache.Close()

	var inbox *mailbox.Inbox
	if cfg.Mailbox.Enabled {
		password := os.Getenv("FOIADESK_IMAP_PASSWORD")
		inbox, err = mailbox.NewInbox(cfg.Mailbox, password)
		if err != nil {
			return fmt.Errorf("configuring mailbox: %w", err)
		}
	}

	client, err := ctx.client()
	if err != nil {
		return err
	}

	root := app.New(cfg, client.Session(), client, cache, inbox, slog.Default())
	program := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
