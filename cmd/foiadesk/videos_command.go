package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/foiadesk/foiadesk/internal/api"
	"github.com/foiadesk/foiadesk/internal/model"
)

func newVideosCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "videos",
		Short: "Work with the video pipeline",
	}
	cmd.AddCommand(newVideosListCommand(ctx))
	cmd.AddCommand(newVideosShowCommand(ctx))
	cmd.AddCommand(newVideosScheduleCommand(ctx))
	return cmd
}

func newVideosListCommand(ctx *commandContext) *cobra.Command {
	var (
		statusFlag string
		editorFlag string
		pageFlag   int
		sizeFlag   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pipeline videos",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}

			page, err := client.ListVideos(cmd.Context(), api.VideoFilter{
				Status:   model.VideoStatus(statusFlag),
				Editor:   editorFlag,
				Page:     pageFlag,
				PageSize: sizeFlag,
			})
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(page.Items))
			for _, v := range page.Items {
				rows = append(rows, []string{
					v.ID, v.Title, string(v.Status), v.Editor,
					strconv.FormatInt(v.Views, 10),
					formatCents(v.RevenueCents),
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "TITLE", "STATUS", "EDITOR", "VIEWS", "REVENUE"},
				rows, 5, 6,
			))
			fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d (%d total)\n",
				page.Page, totalPages(page.Total, sizeFlag), page.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFlag, "status", "", "Filter by pipeline stage (raw_footage, editing, review, scheduled, published)")
	cmd.Flags().StringVar(&editorFlag, "editor", "", "Filter by assigned editor")
	cmd.Flags().IntVar(&pageFlag, "page", 1, "Page number")
	cmd.Flags().IntVar(&sizeFlag, "page-size", 20, "Rows per page")
	return cmd
}

func newVideosShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}

			video, err := client.GetVideo(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "title:   %s\n", video.Title)
			fmt.Fprintf(out, "status:  %s\n", video.Status)
			if video.Editor != "" {
				fmt.Fprintf(out, "editor:  %s\n", video.Editor)
			}
			if video.RequestID != "" {
				fmt.Fprintf(out, "request: %s\n", video.RequestID)
			}
			if video.DurationSec > 0 {
				fmt.Fprintf(out, "length:  %s\n",
					(time.Duration(video.DurationSec) * time.Second).String())
			}
			if video.ScheduledAt != nil {
				fmt.Fprintf(out, "publish: %s\n", video.ScheduledAt.Format(time.RFC3339))
			}
			if video.PublishedAt != nil {
				fmt.Fprintf(out, "live:    %s, %d views, %s\n",
					video.PublishedAt.Format("2006-01-02"),
					video.Views, formatCents(video.RevenueCents))
			}
			return nil
		},
	}
}

func newVideosScheduleCommand(ctx *commandContext) *cobra.Command {
	var atFlag string

	cmd := &cobra.Command{
		Use:   "schedule <id>",
		Short: "Schedule a reviewed video for publication",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			at, err := time.Parse(time.RFC3339, atFlag)
			if err != nil {
				return fmt.Errorf("parsing --at (want RFC 3339, e.g. 2026-09-01T09:00:00Z): %w", err)
			}

			client, err := ctx.client()
			if err != nil {
				return err
			}

			video, err := client.SchedulePublish(cmd.Context(), args[0], at)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Scheduled %q for %s\n",
				video.Title, at.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&atFlag, "at", "", "Publication time, RFC 3339")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

// formatCents renders attributed revenue stored in cents as dollars.
func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
