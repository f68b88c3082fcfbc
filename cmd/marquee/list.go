package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marquee-arcade/marquee/internal/catalog"
	"github.com/marquee-arcade/marquee/internal/identity"
	"github.com/marquee-arcade/marquee/internal/status"
)

// filterFlags are the candidate-set flags shared by list, today, and random.
type filterFlags struct {
	yearFrom  int
	yearTo    int
	platforms []string
	genres    []string
	search    string
	cabOnly   bool
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.yearFrom, "year-from", 0, "Only games released in or after this year")
	cmd.Flags().IntVar(&f.yearTo, "year-to", 0, "Only games released in or before this year")
	cmd.Flags().StringSliceVar(&f.platforms, "platform", nil, "Only games on this platform (repeatable)")
	cmd.Flags().StringSliceVar(&f.genres, "genre", nil, "Only games in this genre (repeatable)")
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "Match against rom, title, company, genre, or platform")
	cmd.Flags().BoolVar(&f.cabOnly, "cab", false, "Only games the cabinet policy accepts")
}

func (f *filterFlags) filter() catalog.Filter {
	return catalog.Filter{
		YearMin:   f.yearFrom,
		YearMax:   f.yearTo,
		Platforms: f.platforms,
		Genres:    f.genres,
		Search:    f.search,
	}
}

func newListCmd() *cobra.Command {
	var (
		filters       filterFlags
		format        string
		listPlatforms bool
		listGenres    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog games matching the filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(context.Background())
			if err != nil {
				return err
			}
			defer func() {
				_ = s.Close()
			}()

			if listPlatforms || listGenres {
				values := s.Catalog.Platforms()
				if listGenres {
					values = s.Catalog.Genres()
				}
				for _, v := range values {
					fmt.Fprintln(cmd.OutOrStdout(), v)
				}
				return nil
			}

			games := s.Candidates(filters.filter(), filters.cabOnly)

			switch format {
			case "table":
				outputGameTable(cmd, games, s.Statuses())
				fmt.Fprintf(cmd.OutOrStdout(), "%d game(s)\n", len(games))
				return nil
			case "json":
				return outputGamesJSON(cmd, games, s.Statuses())
			case "csv":
				return outputGamesCSV(cmd.OutOrStdout(), games)
			default:
				return fmt.Errorf("invalid format: %s (valid values: table, json, csv)", format)
			}
		},
	}

	filters.register(cmd)
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table, json, or csv")
	cmd.Flags().BoolVar(&listPlatforms, "platforms", false, "List distinct platforms and exit")
	cmd.Flags().BoolVar(&listGenres, "genres", false, "List distinct genres and exit")

	return cmd
}

type gameOutputEntry struct {
	Key      string `json:"key"`
	Rom      string `json:"rom,omitempty"`
	Title    string `json:"title"`
	Year     int    `json:"year"`
	Company  string `json:"company,omitempty"`
	Genre    string `json:"genre,omitempty"`
	Platform string `json:"platform,omitempty"`
	Status   string `json:"status,omitempty"`
}

func outputGamesJSON(cmd *cobra.Command, games []catalog.Game, view map[string]status.Tag) error {
	output := make([]gameOutputEntry, 0, len(games))
	for _, g := range games {
		key := identity.Key(g)
		output = append(output, gameOutputEntry{
			Key:      key,
			Rom:      g.Rom,
			Title:    g.Title,
			Year:     g.Year,
			Company:  g.Company,
			Genre:    g.Genre,
			Platform: g.Platform,
			Status:   string(view[key]),
		})
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// outputGamesCSV writes the dataset projection of the filtered list, using
// the dataset's own column names so the output round-trips as a dataset.
func outputGamesCSV(w io.Writer, games []catalog.Game) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"rom", "game", "year", "company", "genre", "platform"}); err != nil {
		return err
	}
	for _, g := range games {
		row := []string{g.Rom, g.Title, strconv.Itoa(g.Year), g.Company, g.Genre, g.Platform}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func getTerminalWidth() int {
	// Try to get terminal width from stdout
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	// Default width if terminal size cannot be determined
	return 80
}

// gameColumnWidths sizes the flexible columns. Rom, year, and status have
// predictable widths; title gets the largest share of what remains, company
// and genre split the rest.
type gameColumnWidths struct {
	title   int
	company int
	genre   int
}

func calculateGameColumnWidths(termWidth int, games []catalog.Game) gameColumnWidths {
	romWidth := 3
	for _, g := range games {
		if w := runewidth.StringWidth(g.Rom); w > romWidth {
			romWidth = w
		}
	}
	if romWidth > 12 {
		romWidth = 12
	}

	yearWidth := 4
	statusWidth := runewidth.StringWidth(status.Label(status.TagWantToPlay))

	// Roughly 3 characters of border and padding per column.
	const numColumns = 6
	available := termWidth - numColumns*3 - romWidth - yearWidth - statusWidth

	widths := gameColumnWidths{
		title:   available * 5 / 10,
		company: available * 3 / 10,
		genre:   available * 2 / 10,
	}
	if widths.title < 20 {
		widths.title = 20
	}
	if widths.company < 12 {
		widths.company = 12
	}
	if widths.genre < 10 {
		widths.genre = 10
	}
	return widths
}

func outputGameTable(cmd *cobra.Command, games []catalog.Game, view map[string]status.Tag) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)

	widths := calculateGameColumnWidths(getTerminalWidth(), games)

	t.AppendHeader(table.Row{"Rom", "Title", "Year", "Company", "Genre", "Status"})

	// Cells are truncated before they reach go-pretty; its WidthMax does not
	// count wide runes correctly.
	for _, g := range games {
		t.AppendRow(table.Row{
			g.Rom,
			runewidth.Truncate(g.Title, widths.title, "..."),
			g.Year,
			runewidth.Truncate(g.Company, widths.company, "..."),
			runewidth.Truncate(g.Genre, widths.genre, "..."),
			status.Label(view[identity.Key(g)]),
		})
	}

	t.Render()
}
