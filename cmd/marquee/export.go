package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/marquee-arcade/marquee/internal/identity"
	"github.com/marquee-arcade/marquee/internal/session"
	"github.com/marquee-arcade/marquee/internal/status"
)

func newExportCmd() *cobra.Command {
	var (
		tagFlag string
		format  string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every game carrying a status tag as a flat report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tag, err := status.Parse(tagFlag)
			if err != nil {
				return fmt.Errorf("%v (valid tags: %s)", err, tagNames())
			}

			s, err := openSession(context.Background())
			if err != nil {
				return err
			}
			defer func() {
				_ = s.Close()
			}()

			entries, err := s.EntriesByTag(context.Background(), tag)
			if err != nil {
				return err
			}
			rows := exportRows(s, entries)

			w := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer func() {
					_ = f.Close()
				}()
				w = f
			}

			switch format {
			case "tsv":
				return outputExportTSV(w, rows)
			case "csv":
				return outputExportCSV(w, rows)
			case "table":
				outputExportTable(w, rows)
				return nil
			default:
				return fmt.Errorf("invalid format: %s (valid values: tsv, csv, table)", format)
			}
		},
	}

	cmd.Flags().StringVar(&tagFlag, "tag", string(status.TagFavorite), "Status tag to export")
	cmd.Flags().StringVar(&format, "format", "tsv", "Output format: tsv, csv, or table")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}

type exportRow struct {
	title   string
	year    string
	company string
	genre   string
	rom     string
}

// exportRows joins stored statuses back to catalog records. A key with no
// surviving dataset row still exports, with the key standing in for the title.
func exportRows(s *session.Session, entries []status.Entry) []exportRow {
	games := s.Catalog.Games()

	rows := make([]exportRow, 0, len(entries))
	for _, e := range entries {
		g, ok := identity.Find(games, e.GameKey)
		if !ok {
			rows = append(rows, exportRow{title: e.GameKey})
			continue
		}
		rows = append(rows, exportRow{
			title:   g.Title,
			year:    strconv.Itoa(g.Year),
			company: g.Company,
			genre:   g.Genre,
			rom:     g.Rom,
		})
	}
	return rows
}

func outputExportTSV(w io.Writer, rows []exportRow) error {
	if _, err := fmt.Fprintln(w, "title\tyear\tcompany\tgenre\trom"); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.title, r.year, r.company, r.genre, r.rom); err != nil {
			return err
		}
	}
	return nil
}

func outputExportCSV(w io.Writer, rows []exportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"title", "year", "company", "genre", "rom"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.title, r.year, r.company, r.genre, r.rom}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func outputExportTable(w io.Writer, rows []exportRow) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Title", "Year", "Company", "Genre", "Rom"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.title, r.year, r.company, r.genre, r.rom})
	}

	t.Render()
}
