package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newTodayCmd() *cobra.Command {
	var (
		filters filterFlags
		format  string
	)

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the Game of the Day",
		Long:  "Show the deterministic Game of the Day: the same date, dataset, and filter\nalways produce the same pick, with no state written anywhere.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(context.Background())
			if err != nil {
				return err
			}
			defer func() {
				_ = s.Close()
			}()

			g, seed, ok := s.Today(filters.filter(), filters.cabOnly)
			if !ok {
				return fmt.Errorf("no games match the filter")
			}

			date := fmt.Sprintf("%04d-%02d-%02d", seed/10000, (seed/100)%100, seed%100)

			switch format {
			case "text":
				fmt.Fprintf(cmd.OutOrStdout(), "Game of the Day for %s (profile %s)\n\n", date, s.Profile())
				printGameDetail(cmd, s, g)
				return nil
			case "json":
				out := todayOutput{Date: date, Game: gameDetailJSON(s, g)}
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(out)
			default:
				return fmt.Errorf("invalid format: %s (valid values: text, json)", format)
			}
		},
	}

	filters.register(cmd)
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")

	return cmd
}

type todayOutput struct {
	Date string          `json:"date"`
	Game gameOutputEntry `json:"game"`
}
