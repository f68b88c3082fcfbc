package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/marquee-arcade/marquee/internal/enrich"
)

func newLookupCmd() *cobra.Command {
	var (
		refresh bool
		raw     bool
		format  string
	)

	cmd := &cobra.Command{
		Use:   "lookup <rom or title>",
		Short: "Fetch game metadata from the Arcade Database",
		Long:  "Fetch game metadata from the Arcade Database service. Results, including\nfailures, are cached for the length of the session; --refresh forces a\nre-fetch and replaces whatever the cache holds.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(context.Background())
			if err != nil {
				return err
			}
			defer func() {
				_ = s.Close()
			}()

			// Catalog matches resolve to their rom code; anything else is
			// tried as a rom directly.
			rom := args[0]
			if g, ok := s.Find(args[0]); ok {
				rom = g.Rom
			}

			ctx := context.Background()
			var result *enrich.Result
			if refresh {
				result = s.Enrich.Refresh(ctx, rom)
			} else {
				result = s.Enrich.Lookup(ctx, rom)
			}

			if raw {
				return outputLookupRaw(cmd, result)
			}

			switch format {
			case "text":
				printLookupResult(cmd, result)
				return nil
			case "json":
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(lookupOutputFrom(result))
			default:
				return fmt.Errorf("invalid format: %s (valid values: text, json)", format)
			}
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Bypass the session cache and re-fetch")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the raw service payload")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")

	return cmd
}

func outputLookupRaw(cmd *cobra.Command, result *enrich.Result) error {
	if len(result.Raw) == 0 {
		return fmt.Errorf("no raw payload: lookup did not succeed")
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, result.Raw, "", "  "); err != nil {
		_, werr := cmd.OutOrStdout().Write(result.Raw)
		return werr
	}
	fmt.Fprintln(cmd.OutOrStdout(), buf.String())
	return nil
}

func printLookupResult(cmd *cobra.Command, result *enrich.Result) {
	w := cmd.OutOrStdout()

	if !result.OK() {
		fmt.Fprintf(w, "lookup failed (%s): %s\n", result.Failure.Kind, result.Failure.Detail)
		if result.Failure.FallbackURL != "" {
			fmt.Fprintf(w, "browse instead: %s\n", result.Failure.FallbackURL)
		}
		return
	}

	sum := result.Summary
	fields := []struct{ label, value string }{
		{"Title", sum.Title},
		{"Manufacturer", sum.Manufacturer},
		{"Year", sum.Year},
		{"Genre", sum.Genre},
		{"Players", sum.Players},
		{"Buttons", sum.Buttons},
		{"Controls", sum.Controls},
		{"Orientation", sum.Orientation},
		{"Status", sum.Status},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		fmt.Fprintf(w, "%-13s %s\n", f.label+":", f.value)
	}

	if sum.Description != "" {
		fmt.Fprintf(w, "\n%s\n", sum.Description)
	}

	if len(result.Images) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Images:")
		for _, u := range result.Images {
			fmt.Fprintf(w, "  %s\n", u)
		}
	}
}

type lookupSummaryOutput struct {
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Year         string `json:"year,omitempty"`
	Genre        string `json:"genre,omitempty"`
	Players      string `json:"players,omitempty"`
	Buttons      string `json:"buttons,omitempty"`
	Controls     string `json:"controls,omitempty"`
	Orientation  string `json:"orientation,omitempty"`
	Status       string `json:"status,omitempty"`
}

type lookupFailureOutput struct {
	Kind        string `json:"kind"`
	Detail      string `json:"detail,omitempty"`
	FallbackURL string `json:"fallbackUrl,omitempty"`
}

type lookupOutput struct {
	Rom       string               `json:"rom"`
	FetchedAt string               `json:"fetchedAt"`
	Summary   *lookupSummaryOutput `json:"summary,omitempty"`
	Images    []string             `json:"images,omitempty"`
	Failure   *lookupFailureOutput `json:"failure,omitempty"`
}

func lookupOutputFrom(result *enrich.Result) lookupOutput {
	out := lookupOutput{
		Rom:       result.Rom,
		FetchedAt: result.FetchedAt.Format(time.RFC3339),
		Images:    result.Images,
	}

	if result.OK() {
		s := result.Summary
		out.Summary = &lookupSummaryOutput{
			Title:        s.Title,
			Description:  s.Description,
			Manufacturer: s.Manufacturer,
			Year:         s.Year,
			Genre:        s.Genre,
			Players:      s.Players,
			Buttons:      s.Buttons,
			Controls:     s.Controls,
			Orientation:  s.Orientation,
			Status:       s.Status,
		}
		return out
	}

	out.Failure = &lookupFailureOutput{
		Kind:        string(result.Failure.Kind),
		Detail:      result.Failure.Detail,
		FallbackURL: result.Failure.FallbackURL,
	}
	return out
}
