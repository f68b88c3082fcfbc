package artwork

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// artServer fakes the thumbnail host: paths listed in existing get a
// one-byte partial-content response, everything else a 404.
func artServer(t *testing.T, existing ...string) (*httptest.Server, *sync.Map) {
	t.Helper()
	known := make(map[string]bool, len(existing))
	for _, p := range existing {
		known[p] = true
	}

	var hits sync.Map
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Range"); got != "bytes=0-0" {
			t.Errorf("probe missing Range header, got %q", got)
		}
		count, _ := hits.LoadOrStore(r.URL.Path, 0)
		hits.Store(r.URL.Path, count.(int)+1)

		if !known[r.URL.Path] {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Range", "bytes 0-0/1024")
		w.WriteHeader(http.StatusPartialContent)
		_, _ = w.Write([]byte{0x89})
	}))
	t.Cleanup(ts.Close)
	return ts, &hits
}

func TestResolvePrefersMarqueeOverFlyer(t *testing.T) {
	ts, _ := artServer(t,
		"/Named_Marquees/pacman.png",
		"/Named_Flyers/pacman.png",
	)
	r := NewResolver(Options{BaseURL: ts.URL})

	art, ok := r.Resolve(context.Background(), "pacman", "Pac-Man")
	if !ok {
		t.Fatal("expected artwork")
	}
	if art.Category != "Named_Marquees" {
		t.Fatalf("expected marquee to win, got %q", art.Category)
	}
	if art.MatchedBy != MatchedByRom {
		t.Fatalf("expected rom match, got %q", art.MatchedBy)
	}
	if art.URL != ts.URL+"/Named_Marquees/pacman.png" {
		t.Fatalf("unexpected URL %q", art.URL)
	}
}

func TestResolveFallsThroughCategories(t *testing.T) {
	ts, _ := artServer(t, "/Named_Snaps/qbert.png")
	r := NewResolver(Options{BaseURL: ts.URL})

	art, ok := r.Resolve(context.Background(), "qbert", "Q*bert")
	if !ok {
		t.Fatal("expected artwork")
	}
	if art.Category != "Named_Snaps" {
		t.Fatalf("expected snap fallback, got %q", art.Category)
	}
}

func TestResolveTitleNamingWhenRomMissing(t *testing.T) {
	// The handler sees the decoded request path.
	ts, _ := artServer(t, "/Named_Flyers/Street Fighter II_ The World Warrior.png")
	r := NewResolver(Options{BaseURL: ts.URL})

	art, ok := r.Resolve(context.Background(), "", "Street Fighter II: The World Warrior")
	if !ok {
		t.Fatal("expected artwork via title naming")
	}
	if art.MatchedBy != MatchedByTitle {
		t.Fatalf("expected title match, got %q", art.MatchedBy)
	}
	if art.Category != "Named_Flyers" {
		t.Fatalf("unexpected category %q", art.Category)
	}
}

func TestResolveNoArtwork(t *testing.T) {
	ts, _ := artServer(t)
	r := NewResolver(Options{BaseURL: ts.URL})

	if _, ok := r.Resolve(context.Background(), "nothere", "No Such Game"); ok {
		t.Fatal("expected no artwork")
	}
}

func TestResolveNoIdentityNoProbes(t *testing.T) {
	ts, hits := artServer(t)
	r := NewResolver(Options{BaseURL: ts.URL})

	if _, ok := r.Resolve(context.Background(), "", "  "); ok {
		t.Fatal("expected no artwork for empty identity")
	}

	probed := 0
	hits.Range(func(_, _ any) bool {
		probed++
		return true
	})
	if probed != 0 {
		t.Fatalf("expected zero probes, saw %d paths", probed)
	}
}

func TestProbeCacheAvoidsRepeatRequests(t *testing.T) {
	ts, hits := artServer(t, "/Named_Marquees/galaga.png")
	r := NewResolver(Options{BaseURL: ts.URL})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, ok := r.Resolve(ctx, "galaga", "Galaga"); !ok {
			t.Fatal("expected artwork")
		}
	}

	count, _ := hits.Load("/Named_Marquees/galaga.png")
	if count.(int) != 1 {
		t.Fatalf("expected a single probe for the marquee, saw %d", count)
	}
}

func TestProbeCacheRemembersMisses(t *testing.T) {
	ts, hits := artServer(t)
	r := NewResolver(Options{BaseURL: ts.URL})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, ok := r.Resolve(ctx, "missing", ""); ok {
			t.Fatal("expected no artwork")
		}
	}

	hits.Range(func(path, count any) bool {
		if count.(int) != 1 {
			t.Fatalf("path %v probed %d times, want 1", path, count)
		}
		return true
	})
}

func TestCandidatesOrder(t *testing.T) {
	r := NewResolver(Options{BaseURL: "https://art.example"})

	got := r.Candidates("pacman", "Pac-Man")
	if len(got) != 8 {
		t.Fatalf("expected 8 candidates, got %d", len(got))
	}
	if got[0].URL != "https://art.example/Named_Marquees/pacman.png" || got[0].MatchedBy != MatchedByRom {
		t.Fatalf("unexpected first candidate %+v", got[0])
	}
	if got[1].MatchedBy != MatchedByTitle {
		t.Fatalf("expected title candidate second, got %+v", got[1])
	}
	if got[2].Category != "Named_Flyers" {
		t.Fatalf("expected flyers next, got %+v", got[2])
	}

	romOnly := r.Candidates("pacman", "")
	if len(romOnly) != 4 {
		t.Fatalf("expected 4 rom-only candidates, got %d", len(romOnly))
	}
}

func TestTitleFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Pac-Man", "Pac-Man"},
		{"Street Fighter II: The World Warrior", "Street%20Fighter%20II_%20The%20World%20Warrior"},
		{"Q*bert", "Q_bert"},
		{"R-Type", "R-Type"},
		{"Cadillacs & Dinosaurs", "Cadillacs%20_%20Dinosaurs"},
		{" padded ", "padded"},
	}
	for _, c := range cases {
		if got := TitleFileName(c.in); got != c.want {
			t.Errorf("TitleFileName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTitleFileNameStable(t *testing.T) {
	first := TitleFileName("Ghosts'n Goblins")
	for i := 0; i < 5; i++ {
		if got := TitleFileName("Ghosts'n Goblins"); got != first {
			t.Fatalf("naming unstable: %q then %q", first, got)
		}
	}
}
