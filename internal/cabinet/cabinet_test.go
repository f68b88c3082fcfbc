package cabinet

import (
	"testing"

	"github.com/marquee-arcade/marquee/internal/catalog"
)

func TestDefaultPolicyBlocksGenres(t *testing.T) {
	policy := DefaultPolicy()

	blocked := []catalog.Game{
		{Title: "Royal Mahjong", Genre: "Mahjong"},
		{Title: "Lucky Wheel", Genre: "Casino / Cards"},
		{Title: "Quiz Show", Genre: "Quiz (English)"},
	}
	for _, g := range blocked {
		if policy.Compatible(g) {
			t.Errorf("expected %q to be blocked by genre %q", g.Title, g.Genre)
		}
	}

	allowed := []catalog.Game{
		{Title: "Pac-Man", Genre: "Maze"},
		{Title: "Street Fighter II", Genre: "Fighter / Versus"},
	}
	for _, g := range allowed {
		if !policy.Compatible(g) {
			t.Errorf("expected %q with genre %q to pass", g.Title, g.Genre)
		}
	}
}

func TestPolicyMatchesCaseInsensitively(t *testing.T) {
	policy := Policy{GenreBlocklist: []string{"pinball"}}

	if policy.Compatible(catalog.Game{Title: "Flip Out", Genre: "PINBALL"}) {
		t.Fatal("uppercase genre should still match the blocklist")
	}
}

func TestTitleBlocklist(t *testing.T) {
	policy := Policy{TitleBlocklist: []string{"bowling alley"}}

	if policy.Compatible(catalog.Game{Title: "Midnight Bowling Alley", Genre: "Sports"}) {
		t.Fatal("title fragment should block the game")
	}
	if !policy.Compatible(catalog.Game{Title: "Bowling Champ", Genre: "Sports"}) {
		t.Fatal("titles without the fragment should pass")
	}
}

func TestEmptyPolicyAcceptsEverything(t *testing.T) {
	var policy Policy

	games := []catalog.Game{
		{Title: "Royal Mahjong", Genre: "Mahjong"},
		{Title: "Pac-Man", Genre: "Maze"},
	}
	for _, g := range games {
		if !policy.Compatible(g) {
			t.Errorf("empty policy rejected %q", g.Title)
		}
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	policy := DefaultPolicy()

	games := []catalog.Game{
		{Title: "Galaga", Genre: "Shooter"},
		{Title: "Royal Mahjong", Genre: "Mahjong"},
		{Title: "Donkey Kong", Genre: "Platform"},
	}
	kept := policy.Filter(games)
	if len(kept) != 2 {
		t.Fatalf("expected 2 games, got %d", len(kept))
	}
	if kept[0].Title != "Galaga" || kept[1].Title != "Donkey Kong" {
		t.Fatalf("unexpected order: %q, %q", kept[0].Title, kept[1].Title)
	}
}
