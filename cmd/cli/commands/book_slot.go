package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// BookSlotCmd creates the bookSlot command
func BookSlotCmd(app *AppContext) *cobra.Command {
	var (
		userID   int64
		fullName string
	)

	cmd := &cobra.Command{
		Use:   "bookSlot <slot-id>",
		Short: "Book a slot directly by id, re-checking capacity first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slotID, err := parseSlotID(args[0])
			if err != nil {
				return err
			}
			return bookSlot(app, userID, fullName, slotID)
		},
	}

	cmd.Flags().Int64Var(&userID, "user-id", 0, "Telegram user id to book for")
	cmd.Flags().StringVar(&fullName, "name", "", "Full name to record on the booking")
	cmd.MarkFlagRequired("user-id")
	return cmd
}

func parseSlotID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid slot id %q", arg)
	}
	return id, nil
}
