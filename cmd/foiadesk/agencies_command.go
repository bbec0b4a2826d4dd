package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/foiadesk/foiadesk/internal/api"
	"github.com/foiadesk/foiadesk/internal/model"
)

func newAgenciesCommand(ctx *commandContext) *cobra.Command {
	var (
		jurisdictionFlag string
		pageFlag         int
		sizeFlag         int
	)

	cmd := &cobra.Command{
		Use:   "agencies",
		Short: "List the agency directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}

			page, err := client.ListAgencies(cmd.Context(), api.AgencyFilter{
				Jurisdiction: jurisdictionFlag,
				Page:         pageFlag,
				PageSize:     sizeFlag,
			})
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(page.Items))
			for _, a := range page.Items {
				rows = append(rows, []string{
					a.ID,
					a.Name,
					a.Jurisdiction,
					fmt.Sprintf("%d", a.RequestCount),
					fmt.Sprintf("%.1f", a.AvgResponseDays),
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"ID", "NAME", "JURISDICTION", "REQUESTS", "AVG DAYS"},
				rows,
				4, 5,
			))
			fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d (%d total)\n",
				page.Page, totalPages(page.Total, sizeFlag), page.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&jurisdictionFlag, "jurisdiction", "", "Filter by federal, state, or local")
	cmd.Flags().IntVar(&pageFlag, "page", 1, "Page number")
	cmd.Flags().IntVar(&sizeFlag, "page-size", 20, "Rows per page")

	cmd.AddCommand(newAgenciesShowCommand(ctx))
	cmd.AddCommand(newAgenciesCreateCommand(ctx))
	cmd.AddCommand(newAgenciesUpdateCommand(ctx))
	return cmd
}

func newAgenciesShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one agency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}

			agency, err := client.GetAgency(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "name:         %s\n", agency.Name)
			fmt.Fprintf(out, "jurisdiction: %s\n", agency.Jurisdiction)
			if agency.ContactEmail != "" {
				fmt.Fprintf(out, "contact:      %s\n", agency.ContactEmail)
			}
			if agency.Address != "" {
				fmt.Fprintf(out, "address:      %s\n", agency.Address)
			}
			fmt.Fprintf(out, "requests:     %d filed, %.1f day average turnaround\n",
				agency.RequestCount, agency.AvgResponseDays)
			return nil
		},
	}
}

func newAgenciesCreateCommand(ctx *commandContext) *cobra.Command {
	var (
		nameFlag         string
		jurisdictionFlag string
		contactFlag      string
		addressFlag      string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add an agency to the directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}

			created, err := client.CreateAgency(cmd.Context(), model.Agency{
				Name:         nameFlag,
				Jurisdiction: jurisdictionFlag,
				ContactEmail: contactFlag,
				Address:      addressFlag,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", created.Name, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&nameFlag, "name", "", "Full agency name")
	cmd.Flags().StringVar(&jurisdictionFlag, "jurisdiction", "", "federal, state, or local")
	cmd.Flags().StringVar(&contactFlag, "contact", "", "Contact email for requests")
	cmd.Flags().StringVar(&addressFlag, "address", "", "Mailing address for paper filings")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("jurisdiction")
	return cmd
}

func newAgenciesUpdateCommand(ctx *commandContext) *cobra.Command {
	var (
		nameFlag         string
		jurisdictionFlag string
		contactFlag      string
		addressFlag      string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an agency's directory entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}

			agency, err := client.GetAgency(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				agency.Name = nameFlag
			}
			if cmd.Flags().Changed("jurisdiction") {
				agency.Jurisdiction = jurisdictionFlag
			}
			if cmd.Flags().Changed("contact") {
				agency.ContactEmail = contactFlag
			}
			if cmd.Flags().Changed("address") {
				agency.Address = addressFlag
			}

			updated, err := client.UpdateAgency(cmd.Context(), *agency)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", updated.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&nameFlag, "name", "", "Full agency name")
	cmd.Flags().StringVar(&jurisdictionFlag, "jurisdiction", "", "federal, state, or local")
	cmd.Flags().StringVar(&contactFlag, "contact", "", "Contact email for requests")
	cmd.Flags().StringVar(&addressFlag, "address", "", "Mailing address for paper filings")
	return cmd
}
