package identity

import (
	"testing"

	"github.com/marquee-arcade/marquee/internal/catalog"
)

func TestKeyPrefersRom(t *testing.T) {
	g := catalog.Game{Rom: "pacman", Title: "Pac-Man", Year: 1980, Company: "Namco"}
	if got := Key(g); got != "rom:pacman" {
		t.Errorf("Key() = %q, want %q", got, "rom:pacman")
	}
}

func TestKeyRomCaseInsensitive(t *testing.T) {
	a := catalog.Game{Rom: "PacMan", Title: "Pac-Man", Year: 1980}
	b := catalog.Game{Rom: " pacman ", Title: "PAC-MAN", Year: 1981}
	if Key(a) != Key(b) {
		t.Errorf("case-differing rom codes resolved to different keys: %q vs %q", Key(a), Key(b))
	}
}

func TestKeyFallbackTuple(t *testing.T) {
	g := catalog.Game{Title: "Mystery Game", Year: 1985, Company: "Unknown Co"}
	want := "meta:Mystery Game|1985|Unknown Co"
	if got := Key(g); got != want {
		t.Errorf("Key() = %q, want %q", got, want)
	}
}

func TestKeyFallbackDistinguishesFields(t *testing.T) {
	base := catalog.Game{Title: "Raiden", Year: 1990, Company: "Seibu"}
	variants := []catalog.Game{
		{Title: "Raiden II", Year: 1990, Company: "Seibu"},
		{Title: "Raiden", Year: 1993, Company: "Seibu"},
		{Title: "Raiden", Year: 1990, Company: "Fabtek"},
	}
	for _, v := range variants {
		if Key(base) == Key(v) {
			t.Errorf("records differing in a tuple field collided: %+v vs %+v", base, v)
		}
	}
}

func TestKeyStableAcrossCalls(t *testing.T) {
	g := catalog.Game{Rom: "sf2", Title: "Street Fighter II", Year: 1991, Company: "Capcom"}
	first := Key(g)
	for i := 0; i < 5; i++ {
		if got := Key(g); got != first {
			t.Fatalf("Key() not deterministic: %q then %q", first, got)
		}
	}
}

func TestFromRom(t *testing.T) {
	if got := FromRom(" Galaga "); got != "rom:galaga" {
		t.Errorf("FromRom() = %q, want %q", got, "rom:galaga")
	}
}

func TestIsKey(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"rom:pacman", true},
		{"meta:Foo|1980|Bar", true},
		{"pacman", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsKey(c.in); got != c.want {
			t.Errorf("IsKey(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFind(t *testing.T) {
	games := []catalog.Game{
		{Rom: "pacman", Title: "Pac-Man", Year: 1980},
		{Title: "Mystery Game", Year: 1985, Company: "Unknown Co"},
	}

	got, ok := Find(games, "rom:pacman")
	if !ok || got.Title != "Pac-Man" {
		t.Errorf("Find(rom:pacman) = %+v, %v", got, ok)
	}

	got, ok = Find(games, "meta:Mystery Game|1985|Unknown Co")
	if !ok || got.Title != "Mystery Game" {
		t.Errorf("Find(meta tuple) = %+v, %v", got, ok)
	}

	if _, ok := Find(games, "rom:missing"); ok {
		t.Error("Find() matched a key not in the slice")
	}
}
