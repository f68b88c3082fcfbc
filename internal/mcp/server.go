// Package mcp exposes the catalog, picker, status store, metadata lookup,
// and artwork resolver as Model Context Protocol tools over stdio. One
// server run is one session.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/marquee-arcade/marquee/internal/artwork"
	"github.com/marquee-arcade/marquee/internal/catalog"
	"github.com/marquee-arcade/marquee/internal/enrich"
	"github.com/marquee-arcade/marquee/internal/identity"
	"github.com/marquee-arcade/marquee/internal/links"
	"github.com/marquee-arcade/marquee/internal/session"
	"github.com/marquee-arcade/marquee/internal/status"
)

const defaultListLimit = 50

// Server wraps the MCP server with one marquee session.
type Server struct {
	server *mcp.Server
	sess   *session.Session
}

// NewServer opens a session and registers the tool surface.
func NewServer(ctx context.Context, profile, version string) (*Server, error) {
	sess, err := session.Open(ctx, session.Options{Profile: profile})
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "marquee",
		Version: version,
	}, nil)

	s := &Server{
		server: mcpServer,
		sess:   sess,
	}

	s.registerTools()

	return s, nil
}

// Run starts the MCP server with stdio transport.
func (s *Server) Run(ctx context.Context) error {
	defer func() {
		_ = s.sess.Close()
	}()
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "arcade_list",
		Description: "List arcade games matching a filter",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "arcade_today",
		Description: "Get the deterministic Game of the Day",
	}, s.handleToday)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "arcade_random",
		Description: "Pick random games from the filtered catalog",
	}, s.handleRandom)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "arcade_show",
		Description: "Show one game with its status and curated reference links",
	}, s.handleShow)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "arcade_status_set",
		Description: "Assign a status tag to a game in the current profile",
	}, s.handleStatusSet)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "arcade_status_clear",
		Description: "Remove a game's status tag",
	}, s.handleStatusClear)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "arcade_status_list",
		Description: "List stored statuses in the current profile",
	}, s.handleStatusList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "arcade_lookup",
		Description: "Fetch game metadata from the Arcade Database service",
	}, s.handleLookup)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "arcade_artwork",
		Description: "Resolve artwork for a game by probing the thumbnail host",
	}, s.handleArtwork)
}

// Input/Output types for each tool

type GameEntry struct {
	Key      string `json:"key"`
	Rom      string `json:"rom,omitempty"`
	Title    string `json:"title"`
	Year     int    `json:"year"`
	Company  string `json:"company,omitempty"`
	Genre    string `json:"genre,omitempty"`
	Platform string `json:"platform,omitempty"`
	Status   string `json:"status,omitempty"`
}

type ListInput struct {
	Search   *string `json:"search,omitempty" jsonschema:"description=Match against rom or title or company or genre or platform"`
	YearFrom *int    `json:"yearFrom,omitempty" jsonschema:"description=Only games released in or after this year"`
	YearTo   *int    `json:"yearTo,omitempty" jsonschema:"description=Only games released in or before this year"`
	Platform *string `json:"platform,omitempty" jsonschema:"description=Only games on this platform"`
	Genre    *string `json:"genre,omitempty" jsonschema:"description=Only games in this genre"`
	CabOnly  *bool   `json:"cabOnly,omitempty" jsonschema:"description=Only games the cabinet policy accepts"`
	Limit    *int    `json:"limit,omitempty" jsonschema:"description=Maximum entries to return (default 50)"`
}

type ListOutput struct {
	Games []GameEntry `json:"games"`
	Total int         `json:"total"`
}

type TodayInput struct {
	Search   *string `json:"search,omitempty" jsonschema:"description=Match against rom or title or company or genre or platform"`
	YearFrom *int    `json:"yearFrom,omitempty" jsonschema:"description=Only games released in or after this year"`
	YearTo   *int    `json:"yearTo,omitempty" jsonschema:"description=Only games released in or before this year"`
	Platform *string `json:"platform,omitempty" jsonschema:"description=Only games on this platform"`
	Genre    *string `json:"genre,omitempty" jsonschema:"description=Only games in this genre"`
	CabOnly  *bool   `json:"cabOnly,omitempty" jsonschema:"description=Only games the cabinet policy accepts"`
}

type TodayOutput struct {
	Date string    `json:"date"`
	Game GameEntry `json:"game"`
}

type RandomInput struct {
	Search   *string `json:"search,omitempty" jsonschema:"description=Match against rom or title or company or genre or platform"`
	YearFrom *int    `json:"yearFrom,omitempty" jsonschema:"description=Only games released in or after this year"`
	YearTo   *int    `json:"yearTo,omitempty" jsonschema:"description=Only games released in or before this year"`
	Platform *string `json:"platform,omitempty" jsonschema:"description=Only games on this platform"`
	Genre    *string `json:"genre,omitempty" jsonschema:"description=Only games in this genre"`
	CabOnly  *bool   `json:"cabOnly,omitempty" jsonschema:"description=Only games the cabinet policy accepts"`
	Count    *int    `json:"count,omitempty" jsonschema:"description=Number of distinct games to pick (default 1)"`
}

type RandomOutput struct {
	Games []GameEntry `json:"games"`
}

type ShowInput struct {
	Game string `json:"game" jsonschema:"required,description=Rom code or exact title or identity key"`
}

type LinkEntry struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type ShowOutput struct {
	Game  GameEntry   `json:"game"`
	Links []LinkEntry `json:"links"`
}

type StatusSetInput struct {
	Game string `json:"game" jsonschema:"required,description=Rom code or exact title or identity key"`
	Tag  string `json:"tag" jsonschema:"required,enum=favorite;want_to_play;played;dont_have_rom;not_playable,description=Status tag to assign"`
}

type StatusSetOutput struct {
	Key string `json:"key"`
	Tag string `json:"tag"`
}

type StatusClearInput struct {
	Game string `json:"game" jsonschema:"required,description=Rom code or exact title or identity key"`
}

type StatusClearOutput struct {
	Key     string `json:"key"`
	Removed bool   `json:"removed"`
}

type StatusListInput struct {
	Tag *string `json:"tag,omitempty" jsonschema:"enum=favorite;want_to_play;played;dont_have_rom;not_playable,description=Only statuses with this tag"`
}

type StatusEntry struct {
	Key     string `json:"key"`
	Tag     string `json:"tag"`
	Title   string `json:"title,omitempty"`
	Year    int    `json:"year,omitempty"`
	Updated string `json:"updated"`
}

type StatusListOutput struct {
	Statuses []StatusEntry `json:"statuses"`
}

type LookupInput struct {
	Game    string `json:"game" jsonschema:"required,description=Rom code or exact title or identity key"`
	Refresh *bool  `json:"refresh,omitempty" jsonschema:"description=Bypass the session cache and re-fetch"`
}

type LookupSummary struct {
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

type LookupFailure struct {
	Kind        string `json:"kind"`
	Detail      string `json:"detail,omitempty"`
	FallbackURL string `json:"fallbackUrl,omitempty"`
}

type LookupOutput struct {
	Rom       string         `json:"rom"`
	FetchedAt string         `json:"fetchedAt"`
	Summary   *LookupSummary `json:"summary,omitempty"`
	Images    []string       `json:"images,omitempty"`
	Failure   *LookupFailure `json:"failure,omitempty"`
}

type ArtworkInput struct {
	Game string `json:"game" jsonschema:"required,description=Rom code or exact title or identity key"`
	All  *bool  `json:"all,omitempty" jsonschema:"description=Return every candidate URL without probing"`
}

type ArtworkCandidate struct {
	URL       string `json:"url"`
	Category  string `json:"category"`
	MatchedBy string `json:"matchedBy"`
}

type ArtworkOutput struct {
	Found      bool               `json:"found"`
	URL        string             `json:"url,omitempty"`
	Category   string             `json:"category,omitempty"`
	MatchedBy  string             `json:"matchedBy,omitempty"`
	Candidates []ArtworkCandidate `json:"candidates,omitempty"`
}

// Helpers

func filterFrom(search, platform, genre *string, yearFrom, yearTo *int) catalog.Filter {
	f := catalog.Filter{}
	if search != nil {
		f.Search = *search
	}
	if platform != nil && *platform != "" {
		f.Platforms = []string{*platform}
	}
	if genre != nil && *genre != "" {
		f.Genres = []string{*genre}
	}
	if yearFrom != nil {
		f.YearMin = *yearFrom
	}
	if yearTo != nil {
		f.YearMax = *yearTo
	}
	return f
}

func (s *Server) gameEntry(g catalog.Game) GameEntry {
	key := identity.Key(g)
	return GameEntry{
		Key:      key,
		Rom:      g.Rom,
		Title:    g.Title,
		Year:     g.Year,
		Company:  g.Company,
		Genre:    g.Genre,
		Platform: g.Platform,
		Status:   string(s.sess.StatusOf(key)),
	}
}

// Tool handlers

func (s *Server) handleList(ctx context.Context, req *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, ListOutput, error) {
	f := filterFrom(input.Search, input.Platform, input.Genre, input.YearFrom, input.YearTo)
	cabOnly := input.CabOnly != nil && *input.CabOnly

	games := s.sess.Candidates(f, cabOnly)
	total := len(games)

	limit := defaultListLimit
	if input.Limit != nil && *input.Limit > 0 {
		limit = *input.Limit
	}
	if len(games) > limit {
		games = games[:limit]
	}

	entries := make([]GameEntry, 0, len(games))
	for _, g := range games {
		entries = append(entries, s.gameEntry(g))
	}

	return nil, ListOutput{Games: entries, Total: total}, nil
}

func (s *Server) handleToday(ctx context.Context, req *mcp.CallToolRequest, input TodayInput) (*mcp.CallToolResult, TodayOutput, error) {
	f := filterFrom(input.Search, input.Platform, input.Genre, input.YearFrom, input.YearTo)
	cabOnly := input.CabOnly != nil && *input.CabOnly

	g, seed, ok := s.sess.Today(f, cabOnly)
	if !ok {
		return nil, TodayOutput{}, fmt.Errorf("no games match the filter")
	}

	date := fmt.Sprintf("%04d-%02d-%02d", seed/10000, (seed/100)%100, seed%100)
	return nil, TodayOutput{Date: date, Game: s.gameEntry(g)}, nil
}

func (s *Server) handleRandom(ctx context.Context, req *mcp.CallToolRequest, input RandomInput) (*mcp.CallToolResult, RandomOutput, error) {
	f := filterFrom(input.Search, input.Platform, input.Genre, input.YearFrom, input.YearTo)
	cabOnly := input.CabOnly != nil && *input.CabOnly

	count := 1
	if input.Count != nil && *input.Count > 0 {
		count = *input.Count
	}

	picks := s.sess.RandomN(f, count, cabOnly)
	if len(picks) == 0 {
		return nil, RandomOutput{}, fmt.Errorf("no games match the filter")
	}

	entries := make([]GameEntry, 0, len(picks))
	for _, g := range picks {
		entries = append(entries, s.gameEntry(g))
	}

	return nil, RandomOutput{Games: entries}, nil
}

func (s *Server) handleShow(ctx context.Context, req *mcp.CallToolRequest, input ShowInput) (*mcp.CallToolResult, ShowOutput, error) {
	g, ok := s.sess.Find(input.Game)
	if !ok {
		return nil, ShowOutput{}, fmt.Errorf("unknown game: %s", input.Game)
	}

	curated := links.Curated(g.Title, g.Rom)
	linkEntries := make([]LinkEntry, 0, len(curated))
	for _, l := range curated {
		linkEntries = append(linkEntries, LinkEntry{Label: l.Label, URL: l.URL})
	}

	return nil, ShowOutput{Game: s.gameEntry(g), Links: linkEntries}, nil
}

func (s *Server) handleStatusSet(ctx context.Context, req *mcp.CallToolRequest, input StatusSetInput) (*mcp.CallToolResult, StatusSetOutput, error) {
	tag, err := status.Parse(input.Tag)
	if err != nil {
		return nil, StatusSetOutput{}, err
	}

	key, ok := s.sess.ResolveKey(input.Game)
	if !ok {
		return nil, StatusSetOutput{}, fmt.Errorf("unknown game: %s", input.Game)
	}

	if err := s.sess.SetStatus(ctx, key, tag); err != nil {
		return nil, StatusSetOutput{}, fmt.Errorf("failed to set status: %w", err)
	}

	return nil, StatusSetOutput{Key: key, Tag: string(tag)}, nil
}

func (s *Server) handleStatusClear(ctx context.Context, req *mcp.CallToolRequest, input StatusClearInput) (*mcp.CallToolResult, StatusClearOutput, error) {
	key, ok := s.sess.ResolveKey(input.Game)
	if !ok {
		return nil, StatusClearOutput{}, fmt.Errorf("unknown game: %s", input.Game)
	}

	removed, err := s.sess.ClearStatus(ctx, key)
	if err != nil {
		return nil, StatusClearOutput{}, fmt.Errorf("failed to clear status: %w", err)
	}

	return nil, StatusClearOutput{Key: key, Removed: removed}, nil
}

func (s *Server) handleStatusList(ctx context.Context, req *mcp.CallToolRequest, input StatusListInput) (*mcp.CallToolResult, StatusListOutput, error) {
	var (
		entries []status.Entry
		err     error
	)
	if input.Tag != nil && *input.Tag != "" {
		tag, perr := status.Parse(*input.Tag)
		if perr != nil {
			return nil, StatusListOutput{}, perr
		}
		entries, err = s.sess.EntriesByTag(ctx, tag)
	} else {
		entries, err = s.sess.Entries(ctx)
	}
	if err != nil {
		return nil, StatusListOutput{}, fmt.Errorf("failed to list statuses: %w", err)
	}

	games := s.sess.Catalog.Games()
	out := make([]StatusEntry, 0, len(entries))
	for _, e := range entries {
		item := StatusEntry{
			Key:     e.GameKey,
			Tag:     string(e.Tag),
			Updated: e.UpdatedAt.Format(time.RFC3339),
		}
		if g, ok := identity.Find(games, e.GameKey); ok {
			item.Title = g.Title
			item.Year = g.Year
		}
		out = append(out, item)
	}

	return nil, StatusListOutput{Statuses: out}, nil
}

func (s *Server) handleLookup(ctx context.Context, req *mcp.CallToolRequest, input LookupInput) (*mcp.CallToolResult, LookupOutput, error) {
	rom := input.Game
	if g, ok := s.sess.Find(input.Game); ok {
		rom = g.Rom
	}

	var result *enrich.Result
	if input.Refresh != nil && *input.Refresh {
		result = s.sess.Enrich.Refresh(ctx, rom)
	} else {
		result = s.sess.Enrich.Lookup(ctx, rom)
	}

	out := LookupOutput{
		Rom:       result.Rom,
		FetchedAt: result.FetchedAt.Format(time.RFC3339),
		Images:    result.Images,
	}

	if result.OK() {
		sum := result.Summary
		out.Summary = &LookupSummary{
			Title:        sum.Title,
			Description:  sum.Description,
			Manufacturer: sum.Manufacturer,
			Year:         sum.Year,
			Genre:        sum.Genre,
			Players:      sum.Players,
			Buttons:      sum.Buttons,
			Controls:     sum.Controls,
			Orientation:  sum.Orientation,
			Status:       sum.Status,
		}
		return nil, out, nil
	}

	out.Failure = &LookupFailure{
		Kind:        string(result.Failure.Kind),
		Detail:      result.Failure.Detail,
		FallbackURL: result.Failure.FallbackURL,
	}
	return nil, out, nil
}

func (s *Server) handleArtwork(ctx context.Context, req *mcp.CallToolRequest, input ArtworkInput) (*mcp.CallToolResult, ArtworkOutput, error) {
	g, ok := s.sess.Find(input.Game)
	if !ok {
		return nil, ArtworkOutput{}, fmt.Errorf("unknown game: %s", input.Game)
	}

	if input.All != nil && *input.All {
		candidates := s.sess.Artwork.Candidates(g.Rom, g.Title)
		out := ArtworkOutput{Candidates: make([]ArtworkCandidate, 0, len(candidates))}
		for _, c := range candidates {
			out.Candidates = append(out.Candidates, ArtworkCandidate{
				URL:       c.URL,
				Category:  artwork.Label(c.Category),
				MatchedBy: string(c.MatchedBy),
			})
		}
		return nil, out, nil
	}

	art, found := s.sess.Artwork.Resolve(ctx, g.Rom, g.Title)
	if !found {
		return nil, ArtworkOutput{Found: false}, nil
	}

	return nil, ArtworkOutput{
		Found:     true,
		URL:       art.URL,
		Category:  artwork.Label(art.Category),
		MatchedBy: string(art.MatchedBy),
	}, nil
}
