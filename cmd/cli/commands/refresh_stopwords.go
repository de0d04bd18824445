package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RefreshStopwordsCmd creates the refreshStopwords command
func RefreshStopwordsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "refreshStopwords",
		Short: "Rebuild the location stop-word set from the place/city catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.StopWords.Refresh(app.Ctx); err != nil {
				return err
			}

			fmt.Printf("\n✓ Stop-words refreshed: %d tokens\n\n", app.StopWords.Snapshot().Size())
			return nil
		},
	}
}
