package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// SignOutCmd creates the signOut command
func SignOutCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "signOut",
		Short: "Forget the stored Google token for this environment",
		Long: `Remove the stored Google OAuth token for the current environment.
The next session that needs Google Sheets will open the browser to sign in again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if app.SheetsClient == nil {
				fmt.Fprintln(out, "Google Sheets is not configured, nothing to sign out of")
				return nil
			}

			if err := app.SheetsClient.SignOut(); err != nil {
				return err
			}

			fmt.Fprintln(out, "✓ Signed out. The next session will ask you to sign in again")
			return nil
		},
	}
}
