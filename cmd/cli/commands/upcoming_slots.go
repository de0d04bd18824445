package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// UpcomingSlotsCmd creates the upcomingSlots command
func UpcomingSlotsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "upcomingSlots",
		Short: "List all upcoming slots from the scheduling backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			slots, err := app.Schedule.GetUpcomingSlots(app.Ctx)
			if err != nil {
				return err
			}

			app.Logger.Info("Upcoming slots fetched", zap.Int("count", len(slots)))

			fmt.Printf("\nFound %d upcoming slots:\n\n", len(slots))
			for _, slot := range slots {
				fmt.Printf("- [%d] %s, %s  %s-%s  (%d/%d booked)\n",
					slot.ID,
					slot.PlaceName,
					slot.CityName,
					slot.Start.Format("2006-01-02 15:04"),
					slot.End.Format("15:04"),
					slot.BookedCount,
					slot.Capacity,
				)
			}

			return nil
		},
	}
}
