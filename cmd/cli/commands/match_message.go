package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dkachan/shiftscout/pkg/clients/scheduleclient"
	"github.com/dkachan/shiftscout/pkg/core/model"
)

// MatchMessageCmd creates the matchMessage command
func MatchMessageCmd(app *AppContext) *cobra.Command {
	var bookForUserID int64

	cmd := &cobra.Command{
		Use:   "matchMessage <text>",
		Short: "Parse a message and match it against live slots ('-' reads stdin)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := messageText(args)
			if err != nil {
				return err
			}

			if err := app.StopWords.Refresh(app.Ctx); err != nil {
				return fmt.Errorf("failed to refresh stop-words: %w", err)
			}

			req := app.Parser.Parse(text)
			if req == nil {
				fmt.Println("\nNot a shift request: nothing to match.")
				return nil
			}

			var candidates []model.SlotCandidate
			if req.Date != nil {
				candidates, err = app.Schedule.GetSlotsForDate(app.Ctx, *req.Date)
			} else {
				candidates, err = app.Schedule.GetUpcomingSlots(app.Ctx)
			}
			if err != nil {
				return err
			}

			app.Logger.Info("Matching against candidates",
				zap.Int("count", len(candidates)),
				zap.Bool("date_scoped", req.Date != nil))

			result := app.Matcher.FindMatchingSlot(*req, candidates)
			if !result.Found() {
				fmt.Println("\nNo slot matched well enough.")
				return nil
			}

			if len(result.Slots) > 1 {
				fmt.Printf("\n%d near-tied slots matched:\n\n", len(result.Slots))
			} else {
				fmt.Printf("\n✓ Slot matched!\n\n")
			}
			for i, slot := range result.Slots {
				fmt.Printf("  %2d. %s\n", i+1, formatSlot(slot))
			}
			fmt.Println()

			if bookForUserID == 0 {
				return nil
			}
			return confirmBooking(app, bookForUserID, req.UserFullName, result.Slots)
		},
	}

	cmd.Flags().Int64Var(&bookForUserID, "book-for", 0, "Telegram user id to book the matched slot for (interactive confirmation)")
	return cmd
}

// confirmBooking walks the user through the matched slots one at a time,
// keeping the pending state in the booking cache between answers the way the
// chat flow keeps it between messages.
func confirmBooking(app *AppContext, userID int64, userFullName string, slots []model.SlotCandidate) error {
	token := app.Bookings.Store(0, userID, userFullName, slots)
	reader := bufio.NewReader(os.Stdin)

	for {
		state, ok := app.Bookings.Get(token)
		if !ok {
			fmt.Println("Booking offer expired.")
			return nil
		}
		if state.CurrentIndex >= len(state.Slots) {
			app.Bookings.Remove(token)
			fmt.Println("No more candidates.")
			return nil
		}

		slot := state.Slots[state.CurrentIndex]
		fmt.Printf("Book %s? [y/n/q] ", formatSlot(slot))

		answer, err := reader.ReadString('\n')
		if err != nil {
			app.Bookings.Remove(token)
			return fmt.Errorf("failed to read answer: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			app.Bookings.Remove(token)
			return bookSlot(app, userID, userFullName, slot.ID)
		case "n", "no":
			state.CurrentIndex++
			app.Bookings.Update(state)
		case "q", "quit":
			app.Bookings.Remove(token)
			return nil
		}
	}
}

func bookSlot(app *AppContext, userID int64, userFullName string, slotID int64) error {
	// re-fetch so a slot that filled up since matching is refused here rather
	// than by the backend
	slot, err := app.Schedule.GetSlotByID(app.Ctx, slotID)
	if err != nil {
		return err
	}
	if slot.Capacity > 0 && slot.BookedCount >= slot.Capacity {
		fmt.Printf("\nSlot %d is already full (%d/%d booked).\n", slot.ID, slot.BookedCount, slot.Capacity)
		return nil
	}

	first, last := splitFullName(userFullName)
	req := scheduleclient.BookingCreateRequest{
		TelegramUserID: userID,
		SlotID:         slotID,
		FirstName:      first,
		LastName:       last,
	}
	if err := app.Schedule.CreateBooking(app.Ctx, req); err != nil {
		return err
	}

	fmt.Printf("\n✓ Booked slot %d.\n", slotID)
	return nil
}

func formatSlot(slot model.SlotCandidate) string {
	return fmt.Sprintf("[%d] %s, %s  %s-%s  (%d/%d booked)",
		slot.ID,
		slot.PlaceName,
		slot.CityName,
		slot.Start.Format("2006-01-02 15:04"),
		slot.End.Format("15:04"),
		slot.BookedCount,
		slot.Capacity,
	)
}

func splitFullName(fullName string) (first, last string) {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
