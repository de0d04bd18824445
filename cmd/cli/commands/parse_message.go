package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// ParseMessageCmd creates the parseMessage command
func ParseMessageCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "parseMessage <text>",
		Short: "Parse a group-chat message into a structured shift request ('-' reads stdin)",
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
				fmt.Println("\nNot a shift request: no date/time signal, or no location and no name.")
				return nil
			}

			fmt.Printf("\n✓ Shift request recognised!\n\n")
			if req.Date != nil {
				fmt.Printf("Date:  %s\n", req.Date.Format("2006-01-02 (Monday)"))
			}
			if req.Start != nil {
				fmt.Printf("Start: %s\n", req.Start)
			}
			if req.End != nil {
				fmt.Printf("End:   %s\n", req.End)
			}
			if req.PlaceText != "" {
				fmt.Printf("Place: %s\n", req.PlaceText)
			}
			if req.UserFullName != "" {
				fmt.Printf("Name:  %s\n", req.UserFullName)
			}
			fmt.Println()

			return nil
		},
	}
}

// messageText joins the args into the message, reading stdin when the sole
// argument is "-" so multi-line messages survive shell quoting
func messageText(args []string) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read message from stdin: %w", err)
		}
		return string(data), nil
	}
	return strings.Join(args, " "), nil
}
