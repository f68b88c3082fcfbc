package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/marquee-arcade/marquee/internal/identity"
	"github.com/marquee-arcade/marquee/internal/session"
	"github.com/marquee-arcade/marquee/internal/status"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Manage per-game statuses in the current profile",
	}

	cmd.AddCommand(newStatusSetCmd())
	cmd.AddCommand(newStatusClearCmd())
	cmd.AddCommand(newStatusGetCmd())
	cmd.AddCommand(newStatusListCmd())

	return cmd
}

func tagNames() string {
	names := make([]string, 0, len(status.Tags()))
	for _, t := range status.Tags() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}

func newStatusSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <game> <tag>",
		Short: "Assign a status tag to a game",
		Long:  "Assign a status tag to a game, replacing any previous tag.\nValid tags: " + tagNames(),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := status.Parse(args[1])
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

			key, err := resolveGameKey(s, args[0])
			if err != nil {
				return err
			}

			if err := s.SetStatus(context.Background(), key, tag); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, status.Label(tag))
			return nil
		},
	}

	return cmd
}

func newStatusClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear <game>",
		Short: "Remove a game's status tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(context.Background())
			if err != nil {
				return err
			}
			defer func() {
				_ = s.Close()
			}()

			key, err := resolveGameKey(s, args[0])
			if err != nil {
				return err
			}

			removed, err := s.ClearStatus(context.Background(), key)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s had no status\n", key)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", key)
			return nil
		},
	}

	return cmd
}

func newStatusGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <game>",
		Short: "Show a game's status tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(context.Background())
			if err != nil {
				return err
			}
			defer func() {
				_ = s.Close()
			}()

			key, err := resolveGameKey(s, args[0])
			if err != nil {
				return err
			}

			tag := s.StatusOf(key)
			if tag == status.TagNone {
				fmt.Fprintf(cmd.OutOrStdout(), "%s has no status\n", key)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, status.Label(tag))
			return nil
		},
	}

	return cmd
}

func newStatusListCmd() *cobra.Command {
	var (
		tagFlag    string
		format     string
		showCounts bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored statuses in the current profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(context.Background())
			if err != nil {
				return err
			}
			defer func() {
				_ = s.Close()
			}()

			ctx := context.Background()

			if showCounts {
				return outputStatusCounts(cmd, s)
			}

			var entries []status.Entry
			if tagFlag != "" {
				tag, err := status.Parse(tagFlag)
				if err != nil {
					return fmt.Errorf("%v (valid tags: %s)", err, tagNames())
				}
				entries, err = s.EntriesByTag(ctx, tag)
				if err != nil {
					return err
				}
			} else {
				entries, err = s.Entries(ctx)
				if err != nil {
					return err
				}
			}

			switch format {
			case "table":
				outputStatusTable(cmd, s, entries)
				return nil
			case "json":
				return outputStatusJSON(cmd, s, entries)
			default:
				return fmt.Errorf("invalid format: %s (valid values: table, json)", format)
			}
		},
	}

	cmd.Flags().StringVar(&tagFlag, "tag", "", "Only statuses with this tag")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	cmd.Flags().BoolVar(&showCounts, "counts", false, "Show per-tag totals instead of rows")

	return cmd
}

func outputStatusCounts(cmd *cobra.Command, s *session.Session) error {
	totals, err := s.Counts(context.Background())
	if err != nil {
		return err
	}

	for _, t := range totals {
		fmt.Fprintf(cmd.OutOrStdout(), "%-15s %d\n", t.Tag, t.Count)
	}
	return nil
}

type statusOutputEntry struct {
	Key     string `json:"key"`
	Tag     string `json:"tag"`
	Title   string `json:"title,omitempty"`
	Year    int    `json:"year,omitempty"`
	Updated string `json:"updated"`
}

func statusOutputEntries(s *session.Session, entries []status.Entry) []statusOutputEntry {
	games := s.Catalog.Games()

	out := make([]statusOutputEntry, 0, len(entries))
	for _, e := range entries {
		item := statusOutputEntry{
			Key:     e.GameKey,
			Tag:     string(e.Tag),
			Updated: e.UpdatedAt.Format(time.RFC3339),
		}
		// Keys can outlive the dataset rows they were minted from.
		if g, ok := identity.Find(games, e.GameKey); ok {
			item.Title = g.Title
			item.Year = g.Year
		}
		out = append(out, item)
	}
	return out
}

func outputStatusJSON(cmd *cobra.Command, s *session.Session, entries []status.Entry) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(statusOutputEntries(s, entries))
}

func outputStatusTable(cmd *cobra.Command, s *session.Session, entries []status.Entry) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"Key", "Tag", "Title", "Year", "Updated"})

	for _, item := range statusOutputEntries(s, entries) {
		title := item.Title
		if title == "" {
			title = "(not in dataset)"
		}
		year := ""
		if item.Year != 0 {
			year = fmt.Sprintf("%d", item.Year)
		}
		updated := item.Updated
		if ts, err := time.Parse(time.RFC3339, item.Updated); err == nil {
			updated = ts.Format("2006-01-02 15:04:05")
		}
		t.AppendRow(table.Row{
			runewidth.Truncate(item.Key, 40, "..."),
			status.Label(status.Tag(item.Tag)),
			runewidth.Truncate(title, 40, "..."),
			year,
			updated,
		})
	}

	t.Render()
	fmt.Fprintf(cmd.OutOrStdout(), "%d status(es)\n", len(entries))
}
