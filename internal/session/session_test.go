package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/marquee-arcade/marquee/internal/catalog"
	"github.com/marquee-arcade/marquee/internal/picker"
	"github.com/marquee-arcade/marquee/internal/services"
	"github.com/marquee-arcade/marquee/internal/status"
)

const testDataset = `rom,game,year,company,genre,platform
pacman,Pac-Man,1980,Namco,Maze,Arcade
galaga,Galaga,1981,Namco,Shooter,Arcade
mahjong,Royal Mahjong,1983,Nichibutsu,Mahjong,Arcade
sf2,Street Fighter II: The World Warrior,1991,Capcom,Fighter,Arcade
,Mystery Prototype,1999,Unknown Co,Platform,Arcade
`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "games.csv")
	if err := os.WriteFile(path, []byte(testDataset), 0o600); err != nil {
		t.Fatalf("failed to write dataset: %v", err)
	}
	return path
}

func openSession(t *testing.T, dbPath, profile string) *Session {
	t.Helper()
	s, err := Open(context.Background(), Options{
		DBPath:      dbPath,
		DatasetPath: writeDataset(t),
		Profile:     profile,
	})
	if err != nil {
		t.Fatalf("failed to open session: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func TestOpenLoadsCatalog(t *testing.T) {
	s := openSession(t, ":memory:", "test")

	if s.Catalog.Len() != 5 {
		t.Fatalf("expected 5 games, got %d", s.Catalog.Len())
	}
	if s.Profile() != "test" {
		t.Fatalf("expected profile 'test', got %q", s.Profile())
	}
	if got := s.StatusOf("rom:pacman"); got != status.TagNone {
		t.Fatalf("fresh session should report TagNone, got %q", got)
	}
}

func TestOpenFailsWithoutDataset(t *testing.T) {
	_, err := Open(context.Background(), Options{
		DBPath:      ":memory:",
		DatasetPath: filepath.Join(t.TempDir(), "missing.csv"),
		Profile:     "test",
	})
	if !errors.Is(err, catalog.ErrDataSourceUnavailable) {
		t.Fatalf("expected ErrDataSourceUnavailable, got %v", err)
	}
}

func TestSetStatusWriteThrough(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "status.db")
	ctx := context.Background()

	s := openSession(t, dbPath, "test")
	if err := s.SetStatus(ctx, "rom:pacman", status.TagFavorite); err != nil {
		t.Fatalf("failed to set status: %v", err)
	}
	if got := s.StatusOf("rom:pacman"); got != status.TagFavorite {
		t.Fatalf("view should reflect the write, got %q", got)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("failed to close session: %v", err)
	}

	reopened := openSession(t, dbPath, "test")
	if got := reopened.StatusOf("rom:pacman"); got != status.TagFavorite {
		t.Fatalf("status should survive a session restart, got %q", got)
	}
}

func TestFailedWriteLeavesViewUntouched(t *testing.T) {
	ctx := context.Background()
	s := openSession(t, ":memory:", "test")

	if err := s.SetStatus(ctx, "rom:galaga", status.TagPlayed); err != nil {
		t.Fatalf("failed to set status: %v", err)
	}

	// Kill the store underneath the session.
	if err := s.dbCtx.DB.Close(); err != nil {
		t.Fatalf("failed to close db: %v", err)
	}

	err := s.SetStatus(ctx, "rom:galaga", status.TagFavorite)
	if !errors.Is(err, services.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	if got := s.StatusOf("rom:galaga"); got != status.TagPlayed {
		t.Fatalf("failed write must not update the view, got %q", got)
	}
}

func TestClearStatus(t *testing.T) {
	ctx := context.Background()
	s := openSession(t, ":memory:", "test")

	if err := s.SetStatus(ctx, "rom:pacman", status.TagWantToPlay); err != nil {
		t.Fatalf("failed to set status: %v", err)
	}

	removed, err := s.ClearStatus(ctx, "rom:pacman")
	if err != nil {
		t.Fatalf("failed to clear status: %v", err)
	}
	if !removed {
		t.Fatal("expected clear to report removal")
	}
	if got := s.StatusOf("rom:pacman"); got != status.TagNone {
		t.Fatalf("cleared key should report TagNone, got %q", got)
	}

	removed, err = s.ClearStatus(ctx, "rom:pacman")
	if err != nil {
		t.Fatalf("second clear errored: %v", err)
	}
	if removed {
		t.Fatal("clearing an untagged key should report false")
	}
}

func TestImportFavorites(t *testing.T) {
	ctx := context.Background()
	s := openSession(t, ":memory:", "test")

	if err := s.SetStatus(ctx, "rom:sf2", status.TagPlayed); err != nil {
		t.Fatalf("failed to set status: %v", err)
	}

	n, err := s.ImportFavorites(ctx, []string{"rom:pacman", "rom:galaga", "rom:pacman"}, false)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 imported keys, got %d", n)
	}

	favs := s.Favorites()
	if len(favs) != 2 || favs[0] != "rom:galaga" || favs[1] != "rom:pacman" {
		t.Fatalf("unexpected favorites: %v", favs)
	}
	if got := s.StatusOf("rom:sf2"); got != status.TagPlayed {
		t.Fatalf("merge import must not disturb other tags, got %q", got)
	}

	// Replace mode drops favorites not named in the import.
	if _, err := s.ImportFavorites(ctx, []string{"rom:galaga"}, true); err != nil {
		t.Fatalf("replace import failed: %v", err)
	}
	favs = s.Favorites()
	if len(favs) != 1 || favs[0] != "rom:galaga" {
		t.Fatalf("unexpected favorites after replace: %v", favs)
	}
}

func TestTodayDeterministic(t *testing.T) {
	s := openSession(t, ":memory:", "test")
	s.tz = time.UTC
	s.now = func() time.Time {
		return time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)
	}

	first, seed, ok := s.Today(catalog.Filter{}, false)
	if !ok {
		t.Fatal("expected a pick")
	}
	if want := picker.DaySeed(s.now()); seed != want {
		t.Fatalf("expected seed %d, got %d", want, seed)
	}

	second, _, _ := s.Today(catalog.Filter{}, false)
	if first != second {
		t.Fatalf("same day produced different picks: %q vs %q", first.Title, second.Title)
	}

	// A different clock time on the same date must not change the pick.
	s.now = func() time.Time {
		return time.Date(2024, time.March, 5, 23, 59, 0, 0, time.UTC)
	}
	third, _, _ := s.Today(catalog.Filter{}, false)
	if first != third {
		t.Fatalf("pick changed within one day: %q vs %q", first.Title, third.Title)
	}
}

func TestCandidatesCabinetPolicy(t *testing.T) {
	s := openSession(t, ":memory:", "test")

	all := s.Candidates(catalog.Filter{}, false)
	if len(all) != 5 {
		t.Fatalf("expected 5 candidates, got %d", len(all))
	}

	cab := s.Candidates(catalog.Filter{}, true)
	if len(cab) != 4 {
		t.Fatalf("expected policy to drop one game, got %d", len(cab))
	}
	for _, g := range cab {
		if g.Rom == "mahjong" {
			t.Fatal("policy should exclude the mahjong title")
		}
	}
}

func TestRandomNRespectsCandidates(t *testing.T) {
	s := openSession(t, ":memory:", "test")

	picks := s.RandomN(catalog.Filter{Search: "namco"}, 10, false)
	if len(picks) != 2 {
		t.Fatalf("expected picks clamped to 2 matches, got %d", len(picks))
	}
	for _, g := range picks {
		if g.Company != "Namco" {
			t.Fatalf("pick %q escaped the filter", g.Title)
		}
	}
}

func TestFindResolvesReferences(t *testing.T) {
	s := openSession(t, ":memory:", "test")

	byRom, ok := s.Find("pacman")
	if !ok || byRom.Title != "Pac-Man" {
		t.Fatalf("rom lookup failed: %v %v", byRom, ok)
	}

	byKey, ok := s.Find("rom:pacman")
	if !ok || byKey != byRom {
		t.Fatalf("identity key lookup failed: %v %v", byKey, ok)
	}

	byTitle, ok := s.Find("pac-man")
	if !ok || byTitle != byRom {
		t.Fatalf("title lookup failed: %v %v", byTitle, ok)
	}

	meta, ok := s.Find("meta:Mystery Prototype|1999|Unknown Co")
	if !ok || meta.Title != "Mystery Prototype" {
		t.Fatalf("meta key lookup failed: %v %v", meta, ok)
	}

	if _, ok := s.Find("does-not-exist"); ok {
		t.Fatal("unknown reference should not resolve")
	}
}

func TestResolveKey(t *testing.T) {
	s := openSession(t, ":memory:", "test")

	key, ok := s.ResolveKey("PACMAN")
	if !ok || key != "rom:pacman" {
		t.Fatalf("expected rom:pacman, got %q (%v)", key, ok)
	}

	// A raw identity key passes through even when no record matches.
	key, ok = s.ResolveKey("rom:vanished")
	if !ok || key != "rom:vanished" {
		t.Fatalf("expected rom:vanished to pass through, got %q (%v)", key, ok)
	}

	if _, ok := s.ResolveKey("not a game"); ok {
		t.Fatal("expected unresolvable reference to fail")
	}
}

func TestProfileIsolation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "status.db")
	ctx := context.Background()

	alice := openSession(t, dbPath, "alice")
	if err := alice.SetStatus(ctx, "rom:pacman", status.TagFavorite); err != nil {
		t.Fatalf("failed to set status: %v", err)
	}
	if err := alice.Close(); err != nil {
		t.Fatalf("failed to close session: %v", err)
	}

	bob := openSession(t, dbPath, "bob")
	if got := bob.StatusOf("rom:pacman"); got != status.TagNone {
		t.Fatalf("profiles must not share statuses, got %q", got)
	}
}
