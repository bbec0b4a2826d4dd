package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/foiadesk/foiadesk/internal/api"
	"github.com/foiadesk/foiadesk/internal/export"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outFlag string

	cmd := &cobra.Command{
		Use:       "export {requests|agencies|revenue|summary}",
		Short:     "Download a report file with today's date in the name",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"requests", "agencies", "revenue", "summary"},
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.client()
			if err != nil {
				return err
			}

			kind := api.ExportKind(args[0])
			data, contentType, err := client.DownloadExport(cmd.Context(), kind, nil)
			if err != nil {
				return err
			}

			path, err := export.Save(outFlag, string(kind), contentType, data, time.Now())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", path, len(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFlag, "out", "o", ".", "Directory to write the export into")
	return cmd
}
