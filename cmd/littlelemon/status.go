package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/kerbaras/littlelemon/pkg/app/styles"
	"github.com/kerbaras/littlelemon/pkg/services"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the menu sync state and the signed-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		controller, err := openCLI(cmd)
		if err != nil {
			return err
		}
		defer controller.Close()

		state, err := controller.SyncState()
		if err != nil {
			return err
		}
		items, err := controller.Menu()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Sync status: %s\n", styles.StatusStyle(string(state.Status)).Render(string(state.Status)))
		if state.Reason != "" {
			fmt.Fprintf(out, "Reason:      %s\n", state.Reason)
		}
		if !state.UpdatedAt.IsZero() {
			fmt.Fprintf(out, "Updated:     %s\n", state.UpdatedAt.Local().Format(time.RFC1123))
		}
		if state.AttemptID != "" {
			fmt.Fprintf(out, "Attempt:     %s\n", state.AttemptID)
		}
		fmt.Fprintf(out, "Cached:      %d dishes", len(items))
		if state.Skipped > 0 {
			fmt.Fprintf(out, " (%d skipped)", state.Skipped)
		}
		fmt.Fprintln(out)

		user, err := controller.Sessions().Current()
		switch {
		case errors.Is(err, services.ErrNoSession):
			fmt.Fprintln(out, "User:        not registered")
		case err != nil:
			return err
		default:
			fmt.Fprintf(out, "User:        %s <%s>\n", user.Name, user.Email)
		}
		return nil
	},
}
