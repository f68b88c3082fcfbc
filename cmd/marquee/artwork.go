package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marquee-arcade/marquee/internal/artwork"
)

func newArtworkCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "artwork <rom, title, or key>",
		Short: "Resolve artwork for a game",
		Long:  "Resolve artwork for a game by probing the thumbnail host in category\npriority order: marquee, flyer, title screen, snapshot. --all prints every\ncandidate URL without probing.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(context.Background())
			if err != nil {
				return err
			}
			defer func() {
				_ = s.Close()
			}()

			g, ok := s.Find(args[0])
			if !ok {
				return fmt.Errorf("unknown game: %s", args[0])
			}

			if all {
				for _, c := range s.Artwork.Candidates(g.Rom, g.Title) {
					fmt.Fprintf(cmd.OutOrStdout(), "%-8s %-6s %s\n", artwork.Label(c.Category), c.MatchedBy, c.URL)
				}
				return nil
			}

			art, found := s.Artwork.Resolve(context.Background(), g.Rom, g.Title)
			if !found {
				fmt.Fprintln(cmd.OutOrStdout(), "no artwork found")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", art.URL)
			fmt.Fprintf(cmd.ErrOrStderr(), "category: %s, matched by: %s\n", artwork.Label(art.Category), art.MatchedBy)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Print all candidate URLs without probing")

	return cmd
}
