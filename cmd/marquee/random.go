package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newRandomCmd() *cobra.Command {
	var (
		filters filterFlags
		count   int
		format  string
	)

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Pick random games from the filtered catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return fmt.Errorf("count must be at least 1")
			}

			s, err := openSession(context.Background())
			if err != nil {
				return err
			}
			defer func() {
				_ = s.Close()
			}()

			if count == 1 && format == "text" {
				g, ok := s.Random(filters.filter(), filters.cabOnly)
				if !ok {
					return fmt.Errorf("no games match the filter")
				}
				printGameDetail(cmd, s, g)
				return nil
			}

			picks := s.RandomN(filters.filter(), count, filters.cabOnly)
			if len(picks) == 0 {
				return fmt.Errorf("no games match the filter")
			}

			switch format {
			case "text", "table":
				outputGameTable(cmd, picks, s.Statuses())
				return nil
			case "json":
				return outputGamesJSON(cmd, picks, s.Statuses())
			default:
				return fmt.Errorf("invalid format: %s (valid values: table, json)", format)
			}
		},
	}

	filters.register(cmd)
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of distinct games to pick")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text (detail for one pick), table, or json")

	return cmd
}
