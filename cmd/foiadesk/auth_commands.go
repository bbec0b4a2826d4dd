package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCommand(ctx *commandContext) *cobra.Command {
	var tokenFlag string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Validate and store an API token in the OS keyring",
		RunE: func(cmd *cobra.Command, args []string) error {
			token := tokenFlag
			if token == "" {
				token = os.Getenv("FOIADESK_TOKEN")
			}
			if token == "" {
				fmt.Fprint(cmd.OutOrStdout(), "API token: ")
				reader := bufio.NewReader(cmd.InOrStdin())
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("reading token: %w", err)
				}
				token = strings.TrimSpace(line)
			}
			if token == "" {
				return errors.New("no token provided")
			}

			client, err := ctx.client()
			if err != nil {
				return err
			}

			sess := ctx.session()
			if err := sess.SetToken(token); err != nil {
				return fmt.Errorf("storing credential: %w", err)
			}

			me, err := client.WhoAmI(cmd.Context())
			if err != nil {
				// WhoAmI already cleared the session on a 401.
				return fmt.Errorf("validating credential: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s <%s> (%s)\n", me.Name, me.Email, me.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&tokenFlag, "token", "", "API token (falls back to $FOIADESK_TOKEN, then a prompt)")
	return cmd
}

func newLogoutCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.session().Clear(); err != nil {
				return fmt.Errorf("clearing credential: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}
