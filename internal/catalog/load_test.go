package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = `rom,game,year,company,genre,platform
pacman,Pac-Man,1980,Namco,Maze,Arcade
dkong,Donkey Kong,1981.0,Nintendo,Platform,Arcade
,Mystery Game,1985,Unknown Co,Action,Arcade
badyear,No Year Game,,Nobody,Action,Arcade
notitle,,1990,Nobody,Action,Arcade
 SFII , Street Fighter II ,1991, Capcom ,Fighting,Arcade
`

func TestReadNormalizesAndDrops(t *testing.T) {
	store, err := Read(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}

	// badyear and notitle rows fail the ingestion invariant.
	if store.Len() != 4 {
		t.Fatalf("expected 4 records, got %d", store.Len())
	}

	games := store.Games()
	if games[0].Rom != "pacman" || games[0].Year != 1980 {
		t.Fatalf("unexpected first record: %#v", games[0])
	}
	if games[1].Year != 1981 {
		t.Fatalf("expected float year coerced to 1981, got %d", games[1].Year)
	}
	if games[2].Rom != "" || games[2].Title != "Mystery Game" {
		t.Fatalf("expected rom-less record preserved: %#v", games[2])
	}
	if games[3].Rom != "sfii" {
		t.Fatalf("expected rom lowercased and trimmed, got %q", games[3].Rom)
	}
	if games[3].Title != "Street Fighter II" || games[3].Company != "Capcom" {
		t.Fatalf("expected trimmed fields, got %#v", games[3])
	}
}

func TestReadAcceptsTitleHeaderAlias(t *testing.T) {
	store, err := Read(strings.NewReader("title,year\nGalaga,1981\n"))
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if store.Len() != 1 || store.Games()[0].Title != "Galaga" {
		t.Fatalf("unexpected store contents: %#v", store.Games())
	}
}

func TestReadEmptyInput(t *testing.T) {
	if _, err := Read(strings.NewReader("")); err == nil {
		t.Fatalf("expected error for empty dataset")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "data source unavailable") {
		t.Fatalf("expected ErrDataSourceUnavailable wrap, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o600); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	store, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if store.Len() != 4 {
		t.Fatalf("expected 4 records, got %d", store.Len())
	}
}
