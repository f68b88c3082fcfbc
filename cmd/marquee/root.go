package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marquee-arcade/marquee/internal/session"
)

var rootCmd = &cobra.Command{
	Use:     "marquee",
	Short:   "marquee - an arcade game catalog browser",
	Long:    "marquee browses an arcade game catalog (1978-2008) with per-profile statuses,\nfavorites, metadata lookups, artwork resolution, and a deterministic Game of the Day.",
	Version: version,
}

var profileFlag string

func init() {
	rootCmd.PersistentFlags().StringVar(&profileFlag, "profile", "", "Status profile namespace (default: MARQUEE_PROFILE or 'default')")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newTodayCmd())
	rootCmd.AddCommand(newRandomCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newProfileCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newFavoritesCmd())
	rootCmd.AddCommand(newLookupCmd())
	rootCmd.AddCommand(newArtworkCmd())
	rootCmd.AddCommand(newMCPCmd())
}

func openSession(ctx context.Context) (*session.Session, error) {
	return session.Open(ctx, session.Options{Profile: profileFlag})
}

func resolveGameKey(s *session.Session, ref string) (string, error) {
	key, ok := s.ResolveKey(ref)
	if !ok {
		return "", fmt.Errorf("unknown game: %s", ref)
	}
	return key, nil
}
