package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/foiadesk/foiadesk/internal/api"
	"github.com/foiadesk/foiadesk/internal/model"
)

func newRequestsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requests",
		Short: "Inspect FOIA requests from the command line",
	}
	cmd.AddCommand(newRequestsListCommand(ctx))
	cmd.AddCommand(newRequestsCreateCommand(ctx))
	cmd.AddCommand(newRequestsSubmitCommand(ctx))
	return cmd
}

func newRequestsListCommand(ctx *commandContext) *cobra.Command {
	var (
		statusFlag  string
		overdueFlag bool
		pageFlag    int
		sizeFlag    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List FOIA requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}

			page, err := client.ListRequests(cmd.Context(), api.RequestFilter{
				Status:   model.RequestStatus(statusFlag),
				Overdue:  overdueFlag,
				Page:     pageFlag,
				PageSize: sizeFlag,
			})
			if err != nil {
				return err
			}

			now := time.Now()
			rows := make([][]string, 0, len(page.Items))
			for _, r := range page.Items {
				due := ""
				if r.DueAt != nil {
					due = r.DueAt.Format("2006-01-02")
					if r.Overdue(now) {
						due += " !"
					}
				}
				rows = append(rows, []string{
					r.ID, string(r.Status), r.TrackingNumber, r.AgencyName, r.Subject, due,
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "STATUS", "TRACKING", "AGENCY", "SUBJECT", "DUE"},
				rows,
			))
			fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d (%d total)\n",
				page.Page, totalPages(page.Total, sizeFlag), page.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFlag, "status", "", "Filter by lifecycle status")
	cmd.Flags().BoolVar(&overdueFlag, "overdue", false, "Only requests past their due date")
	cmd.Flags().IntVar(&pageFlag, "page", 1, "Page number")
	cmd.Flags().IntVar(&sizeFlag, "page-size", 20, "Rows per page")
	return cmd
}

func newRequestsCreateCommand(ctx *commandContext) *cobra.Command {
	var (
		agencyFlag  string
		subjectFlag string
		bodyFlag    string
		articleFlag string
		submitFlag  bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Draft a new FOIA request",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}

			body := bodyFlag
			if body == "" {
				// Empty body falls back to the workspace template.
				settings, err := client.GetSettings(cmd.Context())
				if err != nil {
					return err
				}
				body = settings.DefaultRequestTemplate
			}

			created, err := client.CreateRequest(cmd.Context(), model.Request{
				AgencyID:  agencyFlag,
				Subject:   subjectFlag,
				Body:      body,
				ArticleID: articleFlag,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Drafted %s\n", created.ID)

			if submitFlag {
				submitted, err := client.SubmitRequest(cmd.Context(), created.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Submitted %s (%s)\n", submitted.ID, submitted.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&agencyFlag, "agency", "", "Agency ID to file against")
	cmd.Flags().StringVar(&subjectFlag, "subject", "", "Short description of the records sought")
	cmd.Flags().StringVar(&bodyFlag, "body", "", "Full request text; defaults to the workspace template")
	cmd.Flags().StringVar(&articleFlag, "article", "", "Article ID that prompted this request")
	cmd.Flags().BoolVar(&submitFlag, "submit", false, "Submit immediately after drafting")
	_ = cmd.MarkFlagRequired("agency")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func newRequestsSubmitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "submit <id>...",
		Short: "Submit one or more drafted requests to their agencies",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				req, err := client.SubmitRequest(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Submitted %s (%s)\n", req.ID, req.Status)
				return nil
			}

			submitted, err := client.BatchSubmitRequests(cmd.Context(), args)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Submitted %d of %d requests\n", len(submitted), len(args))
			return nil
		},
	}
}

func totalPages(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = 20
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}
