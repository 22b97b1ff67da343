package root

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Upload today's health metrics to the backend",
		Long:  "Reads today's value for each tracked metric from the local sample store and uploads it. Metrics without data are skipped; one metric failing never blocks the others.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(cmd); err != nil {
				return err
			}
			a.state.SyncHealthData(cmd.Context())
			fmt.Println("Sync finished")
			return nil
		},
	}
}
