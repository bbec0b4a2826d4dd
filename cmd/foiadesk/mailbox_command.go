package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/foiadesk/foiadesk/internal/mailbox"
)

func newMailboxCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mailbox",
		Short: "Agency response mailbox",
	}
	cmd.AddCommand(newMailboxCheckCommand(ctx))
	return cmd
}

func newMailboxCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the IMAP credentials in the config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Mailbox.Enabled {
				return errors.New("mailbox is not enabled in the config")
			}

			inbox, err := mailbox.NewInbox(cfg.Mailbox, os.Getenv("FOIADESK_IMAP_PASSWORD"))
			if err != nil {
				return err
			}
			if err := inbox.Validate(cmd.Context()); err != nil {
				return fmt.Errorf("mailbox check failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Mailbox OK: %s as %s\n",
				cfg.Mailbox.Host, cfg.Mailbox.Username)
			return nil
		},
	}
}
