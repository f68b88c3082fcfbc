package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/marquee-arcade/marquee/internal/database"
	"github.com/marquee-arcade/marquee/internal/services"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage status profiles",
		Long:  "Manage status profiles. A profile is an isolated namespace: statuses set\nunder one profile are invisible to every other. Profiles are created on\nfirst use; deleting one removes every status stored under it.",
	}

	cmd.AddCommand(newProfileListCmd())
	cmd.AddCommand(newProfileDeleteCmd())

	return cmd
}

type profileOutputEntry struct {
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func newProfileListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbCtx, err := database.CreateDatabase("")
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			profiles, err := services.NewProfileService(dbCtx).List(context.Background())
			if err != nil {
				return err
			}

			switch format {
			case "table":
				t := table.NewWriter()
				t.SetOutputMirror(cmd.OutOrStdout())
				t.SetStyle(table.StyleLight)
				t.AppendHeader(table.Row{"Name", "Created", "Updated"})
				for _, p := range profiles {
					t.AppendRow(table.Row{
						p.Name,
						p.CreatedAt.Format("2006-01-02 15:04:05"),
						p.UpdatedAt.Format("2006-01-02 15:04:05"),
					})
				}
				t.Render()
				return nil
			case "json":
				output := make([]profileOutputEntry, 0, len(profiles))
				for _, p := range profiles {
					output = append(output, profileOutputEntry{
						Name:      p.Name,
						CreatedAt: p.CreatedAt.Format(time.RFC3339),
						UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
					})
				}
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(output)
			default:
				return fmt.Errorf("invalid format: %s (valid values: table, json)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")

	return cmd
}

func newProfileDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a profile and every status it holds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if !force {
				reader := bufio.NewReader(os.Stdin)
				fmt.Fprintf(cmd.ErrOrStderr(), "Delete profile '%s' and all its statuses? (y/N) ", name)
				answer, err := reader.ReadString('\n')
				if err != nil {
					return err
				}

				answer = strings.TrimSpace(strings.ToLower(answer))
				if answer != "y" {
					fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled")
					return nil
				}
			}

			dbCtx, err := database.CreateDatabase("")
			if err != nil {
				return err
			}
			defer func() {
				_ = database.CloseDatabase(dbCtx)
			}()

			deleted, err := services.NewProfileService(dbCtx).Delete(context.Background(), name)
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("profile '%s' not found", name)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile '%s'\n", name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}
