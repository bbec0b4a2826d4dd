package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/foiadesk/foiadesk/internal/api"
)

func newArticlesCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "articles",
		Short: "Work with news-scan hits",
	}
	cmd.AddCommand(newArticlesListCommand(ctx))
	cmd.AddCommand(newArticlesScanCommand(ctx))
	cmd.AddCommand(newArticlesReviewCommand(ctx))
	return cmd
}

func newArticlesListCommand(ctx *commandContext) *cobra.Command {
	var (
		unreviewedFlag bool
		pageFlag       int
		sizeFlag       int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scanned articles",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}

			page, err := client.ListArticles(cmd.Context(), api.ArticleFilter{
				Unreviewed: unreviewedFlag,
				Page:       pageFlag,
				PageSize:   sizeFlag,
			})
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(page.Items))
			for _, a := range page.Items {
				reviewed := ""
				if a.Reviewed {
					reviewed = "yes"
				}
				rows = append(rows, []string{
					a.ID, a.Outlet, a.Title,
					strings.Join(a.MatchedTerms, ", "), reviewed,
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "OUTLET", "TITLE", "MATCHED", "REVIEWED"},
				rows,
			))
			fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d (%d total)\n",
				page.Page, totalPages(page.Total, sizeFlag), page.Total)
			return nil
		},
	}

	cmd.Flags().BoolVar(&unreviewedFlag, "unreviewed", false, "Only articles not yet triaged")
	cmd.Flags().IntVar(&pageFlag, "page", 1, "Page number")
	cmd.Flags().IntVar(&sizeFlag, "page-size", 20, "Rows per page")
	return cmd
}

func newArticlesScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Trigger a news scan now",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}
			if err := client.TriggerScan(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				"Scan started; results arrive via the scan_complete event.")
			return nil
		},
	}
}

func newArticlesReviewCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "review <id>...",
		Short: "Mark scan hits as triaged",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}
			for _, id := range args {
				if err := client.MarkArticleReviewed(cmd.Context(), id); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reviewed %d article(s)\n", len(args))
			return nil
		},
	}
}
