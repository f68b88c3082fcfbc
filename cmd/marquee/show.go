package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marquee-arcade/marquee/internal/artwork"
	"github.com/marquee-arcade/marquee/internal/catalog"
	"github.com/marquee-arcade/marquee/internal/identity"
	"github.com/marquee-arcade/marquee/internal/links"
	"github.com/marquee-arcade/marquee/internal/session"
	"github.com/marquee-arcade/marquee/internal/status"
)

func newShowCmd() *cobra.Command {
	var (
		format string
		noArt  bool
	)

	cmd := &cobra.Command{
		Use:   "show <rom, title, or key>",
		Short: "Show one game: record, status, quick links, artwork",
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

			switch format {
			case "text":
				printGameDetail(cmd, s, g)
				printLinks(cmd, g)
				if !noArt {
					printArtwork(cmd, s, g)
				}
				return nil
			case "json":
				out := showOutput{
					Game:  gameDetailJSON(s, g),
					Links: links.Curated(g.Title, g.Rom),
				}
				if !noArt {
					if art, found := s.Artwork.Resolve(context.Background(), g.Rom, g.Title); found {
						out.Artwork = &artworkOutput{
							URL:       art.URL,
							Category:  artwork.Label(art.Category),
							MatchedBy: string(art.MatchedBy),
						}
					}
				}
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(out)
			default:
				return fmt.Errorf("invalid format: %s (valid values: text, json)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&noArt, "no-art", false, "Skip the artwork existence probes")

	return cmd
}

type showOutput struct {
	Game    gameOutputEntry `json:"game"`
	Links   []links.Link    `json:"links"`
	Artwork *artworkOutput  `json:"artwork,omitempty"`
}

type artworkOutput struct {
	URL       string `json:"url"`
	Category  string `json:"category"`
	MatchedBy string `json:"matchedBy"`
}

func gameDetailJSON(s *session.Session, g catalog.Game) gameOutputEntry {
	key := identity.Key(g)
	return gameOutputEntry{
		Key:      key,
		Rom:      g.Rom,
		Title:    g.Title,
		Year:     g.Year,
		Company:  g.Company,
		Genre:    g.Genre,
		Platform: g.Platform,
		Status:   string(s.StatusOf(key)),
	}
}

func printGameDetail(cmd *cobra.Command, s *session.Session, g catalog.Game) {
	w := cmd.OutOrStdout()
	key := identity.Key(g)

	rom := g.Rom
	if rom == "" {
		rom = "(none)"
	}
	statusText := "(none)"
	if tag := s.StatusOf(key); tag != status.TagNone {
		statusText = status.Label(tag)
	}

	fmt.Fprintf(w, "Rom:      %s\n", rom)
	fmt.Fprintf(w, "Title:    %s\n", g.Title)
	fmt.Fprintf(w, "Year:     %d\n", g.Year)
	fmt.Fprintf(w, "Company:  %s\n", g.Company)
	fmt.Fprintf(w, "Genre:    %s\n", g.Genre)
	fmt.Fprintf(w, "Platform: %s\n", g.Platform)
	fmt.Fprintf(w, "Key:      %s\n", key)
	fmt.Fprintf(w, "Status:   %s\n", statusText)
}

func printLinks(cmd *cobra.Command, g catalog.Game) {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Links:")
	for _, l := range links.Curated(g.Title, g.Rom) {
		fmt.Fprintf(w, "  %s\n    %s\n", l.Label, l.URL)
	}
}

func printArtwork(cmd *cobra.Command, s *session.Session, g catalog.Game) {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	art, found := s.Artwork.Resolve(context.Background(), g.Rom, g.Title)
	if !found {
		fmt.Fprintln(w, "Artwork:  none found")
		return
	}
	fmt.Fprintf(w, "Artwork:  %s (%s, matched by %s)\n", art.URL, artwork.Label(art.Category), art.MatchedBy)
}
