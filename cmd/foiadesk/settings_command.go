package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newSettingsCommand(ctx *commandContext) *cobra.Command {
	var (
		keywordsFlag []string
		followUpFlag int
		intervalFlag int
		templateFlag string
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or update workspace settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}

			settings, err := client.GetSettings(cmd.Context())
			if err != nil {
				return err
			}

			changed := false
			if cmd.Flags().Changed("scan-keywords") {
				settings.ScanKeywords = keywordsFlag
				changed = true
			}
			if cmd.Flags().Changed("follow-up-days") {
				settings.FollowUpDays = followUpFlag
				changed = true
			}
			if cmd.Flags().Changed("scan-interval") {
				settings.ScanIntervalMin = intervalFlag
				changed = true
			}
			if cmd.Flags().Changed("request-template") {
				settings.DefaultRequestTemplate = templateFlag
				changed = true
			}

			if changed {
				if err := client.UpdateSettings(cmd.Context(), *settings); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Settings updated.")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "scan keywords:   %s\n",
				strings.Join(settings.ScanKeywords, ", "))
			fmt.Fprintf(cmd.OutOrStdout(), "scan interval:   %d min\n", settings.ScanIntervalMin)
			fmt.Fprintf(cmd.OutOrStdout(), "follow-up after: %d days\n", settings.FollowUpDays)
			if settings.DefaultRequestTemplate != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "request template:\n%s\n",
					settings.DefaultRequestTemplate)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&keywordsFlag, "scan-keywords", nil, "Replace the scan keyword list")
	cmd.Flags().IntVar(&followUpFlag, "follow-up-days", 0, "Days past due before a follow-up nudge")
	cmd.Flags().IntVar(&intervalFlag, "scan-interval", 0, "Minutes between news scans")
	cmd.Flags().StringVar(&templateFlag, "request-template", "", "Boilerplate for new FOIA drafts")
	return cmd
}
