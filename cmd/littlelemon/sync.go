package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/kerbaras/littlelemon/pkg/services"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download the menu into the local cache",
	Long:  "Fetch the remote menu and store it locally. Does nothing when the menu is already synced.",
	RunE: func(cmd *cobra.Command, args []string) error {
		controller, err := openCLI(cmd)
		if err != nil {
			return err
		}
		defer controller.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		syncer := controller.Syncer()
		task, err := syncer.Start(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		progress := syncer.GetProgressChannel()
	loop:
		for {
			select {
			case p := <-progress:
				printProgress(out, p)
			case <-task.Done():
				break loop
			}
		}
		// Progress published right before the task finished
		for drained := false; !drained; {
			select {
			case p := <-progress:
				printProgress(out, p)
			default:
				drained = true
			}
		}

		result, err := task.Wait()
		if err != nil {
			return fmt.Errorf("menu sync failed: %w", err)
		}
		if result.AlreadySynced {
			fmt.Fprintln(out, "✅ Menu already synced")
			return nil
		}
		fmt.Fprintf(out, "✅ Menu synced: %d stored, %d skipped\n", result.Stored, result.Skipped)
		return nil
	},
}

func printProgress(out io.Writer, p services.SyncProgress) {
	switch p.Status {
	case services.ProgressFetching:
		fmt.Fprintln(out, "📥 Fetching menu...")
	case services.ProgressStoring:
		fmt.Fprintf(out, "💾 Storing %d items (%d skipped)...\n", p.Fetched-p.Skipped, p.Skipped)
	case services.ProgressError:
		fmt.Fprintf(out, "❌ %s\n", p.Error)
	}
}
