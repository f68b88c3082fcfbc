package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrDataSourceUnavailable wraps any failure to open or parse the dataset.
// It is fatal to the command or server that needed the catalog.
var ErrDataSourceUnavailable = errors.New("catalog: data source unavailable")

// Load reads the dataset CSV at path and returns the catalog store.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataSourceUnavailable, err)
	}
	defer func() {
		_ = f.Close()
	}()

	store, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataSourceUnavailable, path, err)
	}
	return store, nil
}

// Read parses CSV rows into a Store. The first row is a header; recognized
// columns are rom, game (or title), year, company, genre, platform, matched
// case-insensitively. Unknown columns are ignored and missing ones read as
// empty. Rows that normalize to an empty title or an unparsable year are
// dropped here, not at query time.
func Read(r io.Reader) (*Store, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("empty dataset")
		}
		return nil, err
	}

	cols := columnIndex(header)

	var games []Game
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		g := normalize(Game{
			Rom:      field(row, cols.rom),
			Title:    field(row, cols.title),
			Company:  field(row, cols.company),
			Genre:    field(row, cols.genre),
			Platform: field(row, cols.platform),
		})
		g.Year = parseYear(field(row, cols.year))
		if !valid(g) {
			continue
		}
		games = append(games, g)
	}

	return NewStore(games), nil
}

type columns struct {
	rom, title, year, company, genre, platform int
}

func columnIndex(header []string) columns {
	cols := columns{rom: -1, title: -1, year: -1, company: -1, genre: -1, platform: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case "rom":
			cols.rom = i
		case "game", "title":
			cols.title = i
		case "year":
			cols.year = i
		case "company", "manufacturer":
			cols.company = i
		case "genre":
			cols.genre = i
		case "platform":
			cols.platform = i
		}
	}
	return cols
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// parseYear coerces a cell to an integer year, tolerating float renderings
// like "1984.0" that spreadsheet exports produce. Zero means unparsable.
func parseYear(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if y, err := strconv.Atoi(s); err == nil {
		return y
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0
	}
	return int(f)
}
