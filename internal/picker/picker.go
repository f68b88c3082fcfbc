// Package picker selects games from an already-filtered, already-ordered
// list. Selection never re-sorts its input: the stability of a pick is
// inherited from the stability of the list it is given.
package picker

import (
	"math/rand/v2"
	"time"

	"github.com/marquee-arcade/marquee/internal/catalog"
)

// DaySeed encodes a calendar date as YYYYMMDD, the seed for the daily pick.
// Two calls on the same civil day yield the same seed regardless of clock
// time; the day boundary follows the location of t.
func DaySeed(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// Deterministic picks the game at seed mod len(games). The same seed and
// the same list always produce the same game. Returns false for an empty
// list.
func Deterministic(games []catalog.Game, seed int) (catalog.Game, bool) {
	if len(games) == 0 {
		return catalog.Game{}, false
	}
	idx := seed % len(games)
	if idx < 0 {
		idx += len(games)
	}
	return games[idx], true
}

// RandomOne picks a uniformly random game. Returns false for an empty list.
func RandomOne(games []catalog.Game) (catalog.Game, bool) {
	return randomOne(games, rand.IntN)
}

// RandomN picks up to n distinct games without replacement, in random
// order. Asking for more games than exist returns them all.
func RandomN(games []catalog.Game, n int) []catalog.Game {
	return randomN(games, n, rand.Perm)
}

func randomOne(games []catalog.Game, intn func(int) int) (catalog.Game, bool) {
	if len(games) == 0 {
		return catalog.Game{}, false
	}
	return games[intn(len(games))], true
}

func randomN(games []catalog.Game, n int, perm func(int) []int) []catalog.Game {
	if n <= 0 || len(games) == 0 {
		return nil
	}
	if n > len(games) {
		n = len(games)
	}

	picked := make([]catalog.Game, 0, n)
	for _, idx := range perm(len(games))[:n] {
		picked = append(picked, games[idx])
	}
	return picked
}
