package picker

import (
	"testing"
	"time"

	"github.com/marquee-arcade/marquee/internal/catalog"
)

func fiveGames() []catalog.Game {
	return []catalog.Game{
		{Rom: "pacman", Title: "Pac-Man", Year: 1980},
		{Rom: "galaga", Title: "Galaga", Year: 1981},
		{Rom: "dkong", Title: "Donkey Kong", Year: 1981},
		{Rom: "sf2", Title: "Street Fighter II", Year: 1991},
		{Rom: "mslug", Title: "Metal Slug", Year: 1996},
	}
}

func TestDaySeedEncodesDate(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation failed: %v", err)
	}

	seed := DaySeed(time.Date(2024, time.January, 2, 15, 4, 5, 0, loc))
	if seed != 20240102 {
		t.Fatalf("DaySeed = %d, want 20240102", seed)
	}
}

func TestDaySeedIgnoresClockTime(t *testing.T) {
	loc := time.UTC
	morning := time.Date(2024, time.June, 15, 0, 0, 1, 0, loc)
	night := time.Date(2024, time.June, 15, 23, 59, 59, 0, loc)

	if DaySeed(morning) != DaySeed(night) {
		t.Fatal("seeds within one day must match")
	}
}

func TestDaySeedRespectsLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation failed: %v", err)
	}

	// 03:00 UTC on Jan 2 is still Jan 1 in New York.
	instant := time.Date(2024, time.January, 2, 3, 0, 0, 0, time.UTC)
	if got := DaySeed(instant.In(ny)); got != 20240101 {
		t.Fatalf("DaySeed in New York = %d, want 20240101", got)
	}
	if got := DaySeed(instant); got != 20240102 {
		t.Fatalf("DaySeed in UTC = %d, want 20240102", got)
	}
}

func TestDeterministicStability(t *testing.T) {
	games := fiveGames()

	first, ok := Deterministic(games, 20240101)
	if !ok {
		t.Fatal("expected a pick from a non-empty list")
	}
	for i := 0; i < 10; i++ {
		again, ok := Deterministic(games, 20240101)
		if !ok || again != first {
			t.Fatalf("pick changed between calls: %v then %v", first, again)
		}
	}
}

func TestDeterministicWrapsBySeed(t *testing.T) {
	games := fiveGames()

	day1, _ := Deterministic(games, 20240101)
	day2, _ := Deterministic(games, 20240102)

	if day1.Rom != "galaga" {
		t.Fatalf("seed 20240101 over 5 games should pick index 1, got %q", day1.Rom)
	}
	if day2.Rom != "dkong" {
		t.Fatalf("seed 20240102 over 5 games should pick index 2, got %q", day2.Rom)
	}
}

func TestDeterministicEmptyList(t *testing.T) {
	if _, ok := Deterministic(nil, 20240101); ok {
		t.Fatal("expected no pick from an empty list")
	}
}

func TestDeterministicDependsOnListOrder(t *testing.T) {
	games := fiveGames()
	reversed := make([]catalog.Game, len(games))
	for i, g := range games {
		reversed[len(games)-1-i] = g
	}

	a, _ := Deterministic(games, 20240103)
	b, _ := Deterministic(reversed, 20240103)
	if a == b {
		t.Fatal("expected pick to follow list order, not game identity")
	}
}

func TestRandomOne(t *testing.T) {
	games := fiveGames()

	got, ok := randomOne(games, func(n int) int {
		if n != len(games) {
			t.Fatalf("intn called with %d, want %d", n, len(games))
		}
		return 3
	})
	if !ok || got.Rom != "sf2" {
		t.Fatalf("randomOne = %v, %v", got, ok)
	}

	if _, ok := RandomOne(nil); ok {
		t.Fatal("expected no pick from an empty list")
	}
}

func TestRandomNSamplesWithoutReplacement(t *testing.T) {
	games := fiveGames()

	got := randomN(games, 3, func(n int) []int { return []int{4, 0, 2, 1, 3} })
	if len(got) != 3 {
		t.Fatalf("expected 3 picks, got %d", len(got))
	}
	if got[0].Rom != "mslug" || got[1].Rom != "pacman" || got[2].Rom != "dkong" {
		t.Fatalf("unexpected sample order: %v", got)
	}

	seen := make(map[string]bool)
	for _, g := range RandomN(games, len(games)) {
		if seen[g.Rom] {
			t.Fatalf("duplicate pick %q", g.Rom)
		}
		seen[g.Rom] = true
	}
	if len(seen) != len(games) {
		t.Fatalf("expected all games sampled, got %d", len(seen))
	}
}

func TestRandomNBounds(t *testing.T) {
	games := fiveGames()

	if got := RandomN(games, 0); got != nil {
		t.Fatalf("expected nil for n=0, got %v", got)
	}
	if got := RandomN(nil, 3); got != nil {
		t.Fatalf("expected nil for empty list, got %v", got)
	}
	if got := RandomN(games, 99); len(got) != len(games) {
		t.Fatalf("expected clamp to list size, got %d", len(got))
	}
}
