// Package bot provides simulated throwers used by the simulate command
// and by integration-style engine tests. Throwers read committed match
// state and pick the next dart; they never touch the match themselves.
package bot

import (
	rand "math/rand/v2"

	"github.com/mver/oche/internal/game"
)

// Thrower picks the next dart for a player given the match state.
type Thrower interface {
	Throw(m *game.Match, playerID string) game.Throw
}

// Clockwise sector order around a standard board, used to model darts
// drifting into a neighbouring sector.
var boardOrder = [20]int{20, 1, 18, 4, 13, 6, 10, 15, 2, 17, 3, 19, 7, 16, 8, 11, 14, 9, 12, 5}

func neighbours(sector int) (int, int) {
	for i, s := range boardOrder {
		if s == sector {
			return boardOrder[(i+19)%20], boardOrder[(i+1)%20]
		}
	}
	return sector, sector
}

// Aimer is a target-picking thrower with a crude accuracy model: each
// dart hits its target with probability accuracy, otherwise it lands
// as a single in the target sector or one of its neighbours.
//
// For countdown modes it plays a simple checkout chart that never
// busts when every dart lands; for cricket it closes its own sectors
// top down, then hammers whatever the opponents still have open.
type Aimer struct {
	rng      *rand.Rand
	accuracy float64
}

// NewAimer builds an aimer. Accuracy is clamped to [0, 1].
func NewAimer(rng *rand.Rand, accuracy float64) *Aimer {
	if accuracy < 0 {
		accuracy = 0
	}
	if accuracy > 1 {
		accuracy = 1
	}
	return &Aimer{rng: rng, accuracy: accuracy}
}

func (a *Aimer) Throw(m *game.Match, playerID string) game.Throw {
	return a.scatter(a.target(m, playerID))
}

func (a *Aimer) target(m *game.Match, playerID string) game.Throw {
	sc, err := m.ScoreOf(playerID)
	if err != nil {
		return game.MustThrow(20, 1)
	}
	switch s := sc.(type) {
	case game.LegsScore:
		return countdownTarget(s.Remaining)
	case game.SetsScore:
		return countdownTarget(s.Remaining)
	case game.CricketScore:
		return a.cricketTarget(m, playerID, s)
	}
	return game.MustThrow(20, 1)
}

// countdownTarget is a minimal checkout chart: score on trebles while
// high, steer onto an even number, finish on a double. Every leave is
// playable under double-out.
func countdownTarget(remaining int) game.Throw {
	switch {
	case remaining > 100:
		return game.MustThrow(20, 3)
	case remaining > 60:
		if remaining%2 == 1 {
			return game.MustThrow(19, 3)
		}
		return game.MustThrow(20, 3)
	case remaining > 40:
		return game.MustThrow(remaining-40, 1)
	case remaining == 1:
		return game.MustThrow(1, 1)
	case remaining%2 == 0:
		return game.MustThrow(remaining/2, 2)
	default:
		return game.MustThrow(1, 1)
	}
}

func (a *Aimer) cricketTarget(m *game.Match, playerID string, s game.CricketScore) game.Throw {
	hitsToClose := 3
	if c, ok := m.Mode().(*game.Cricket); ok {
		hitsToClose = c.Settings().HitsToClose
	}

	cricketOrder := []int{20, 19, 18, 17, 16, 15, game.SectorOuterBull}

	// Close our own sectors first, highest value first.
	for _, sector := range cricketOrder {
		if s.HitsOn(sector) < hitsToClose {
			return cricketThrowAt(sector)
		}
	}

	// Everything closed: pile points on the best sector an opponent
	// still has open.
	scores := m.Scores()
	for _, sector := range cricketOrder {
		for _, p := range m.Players() {
			if p.ID == playerID {
				continue
			}
			if other, ok := scores[p.ID].(game.CricketScore); ok && other.HitsOn(sector) < hitsToClose {
				return cricketThrowAt(sector)
			}
		}
	}

	// Nothing scores any more; keep throwing at the bull.
	return game.MustThrow(game.SectorOuterBull, 1)
}

func cricketThrowAt(sector int) game.Throw {
	if sector == game.SectorOuterBull {
		return game.MustThrow(sector, 1)
	}
	return game.MustThrow(sector, 3)
}

func (a *Aimer) scatter(target game.Throw) game.Throw {
	if a.rng.Float64() < a.accuracy {
		return target
	}
	if target.Sector == game.SectorOuterBull || target.Sector == game.SectorInnerBull {
		// Off the bull lands somewhere random on the board.
		return game.MustThrow(boardOrder[a.rng.IntN(20)], 1)
	}
	left, right := neighbours(target.Sector)
	switch a.rng.IntN(3) {
	case 0:
		return game.MustThrow(target.Sector, 1)
	case 1:
		return game.MustThrow(left, 1)
	default:
		return game.MustThrow(right, 1)
	}
}

// Wild throws uniformly at the whole board, multipliers included. It
// exists to fuzz engine invariants with sequences no sane player would
// produce.
type Wild struct {
	rng *rand.Rand
}

// NewWild builds a wild thrower.
func NewWild(rng *rand.Rand) *Wild {
	return &Wild{rng: rng}
}

func (w *Wild) Throw(*game.Match, string) game.Throw {
	sector := w.rng.IntN(22)
	switch sector {
	case 21:
		return game.MustThrow(game.SectorOuterBull, 1+w.rng.IntN(2))
	case 0:
		return game.MustThrow(game.SectorMiss, 1)
	default:
		return game.MustThrow(sector, 1+w.rng.IntN(3))
	}
}
