package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newFavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Export or import the favorites set as JSON",
	}

	cmd.AddCommand(newFavoritesExportCmd())
	cmd.AddCommand(newFavoritesImportCmd())

	return cmd
}

// favoritesDocument is the interchange format: a JSON object holding the
// identity keys of every favorite.
type favoritesDocument struct {
	Favorites []string `json:"favorites"`
}

func newFavoritesExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the favorites document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(context.Background())
			if err != nil {
				return err
			}
			defer func() {
				_ = s.Close()
			}()

			keys := s.Favorites()
			if keys == nil {
				keys = []string{}
			}

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

			encoder := json.NewEncoder(w)
			encoder.SetIndent("", "  ")
			return encoder.Encode(favoritesDocument{Favorites: keys})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}

func newFavoritesImportCmd() *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a favorites document",
		Long:  "Import a favorites document, tagging every listed key as a favorite.\nPass '-' to read from stdin. The default merges into the existing set;\n--replace drops favorites the document does not name.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}

			keys, err := parseFavoritesKeys(data)
			if err != nil {
				return err
			}

			s, err := openSession(context.Background())
			if err != nil {
				return err
			}
			defer func() {
				_ = s.Close()
			}()

			n, err := s.ImportFavorites(context.Background(), keys, replace)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d favorite(s)\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Drop favorites the document does not name")

	return cmd
}

// parseFavoritesKeys accepts the favorites document and, for convenience, a
// bare JSON array of keys.
func parseFavoritesKeys(data []byte) ([]string, error) {
	var doc favoritesDocument
	if err := json.Unmarshal(data, &doc); err == nil {
		return doc.Favorites, nil
	}

	var keys []string
	if err := json.Unmarshal(data, &keys); err == nil {
		return keys, nil
	}

	return nil, errors.New("invalid favorites document: expected a JSON object with a favorites array")
}
