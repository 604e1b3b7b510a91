package game

import (
	"fmt"
	"strings"
)

// Score is one player's progress snapshot in a game mode. Scores are
// immutable values: evaluation returns a replacement, it never edits
// the snapshot a match has committed.
//
// The set of implementations is closed: LegsScore, SetsScore and
// CricketScore, one per mode family.
type Score interface {
	fmt.Stringer

	// score restricts implementations to this package.
	score()
}

// LegsScore is the ClassicLegs and FreeForAll snapshot: points left in
// the current leg and legs won in the match.
type LegsScore struct {
	Remaining int
	Legs      int
}

func (LegsScore) score() {}

func (s LegsScore) String() string {
	return fmt.Sprintf("%d (legs %d)", s.Remaining, s.Legs)
}

// SetsScore is the ClassicSets snapshot: points left in the current
// leg, legs won in the current set, and sets won in the match.
type SetsScore struct {
	Remaining int
	Legs      int
	Sets      int
}

func (SetsScore) score() {}

func (s SetsScore) String() string {
	return fmt.Sprintf("%d (legs %d, sets %d)", s.Remaining, s.Legs, s.Sets)
}

// Cricket tracks seven sectors, indexed in board order.
var cricketSectors = [...]int{20, 19, 18, 17, 16, 15, SectorOuterBull}

// NumCricketSectors is the number of sectors a cricket player closes.
const NumCricketSectors = len(cricketSectors)

// cricketSectorIndex maps a sector value to its counter slot. The
// inner and outer bull share a slot. Untracked sectors return ok=false.
func cricketSectorIndex(sector int) (int, bool) {
	switch {
	case sector >= 15 && sector <= 20:
		return 20 - sector, true
	case sector == SectorOuterBull || sector == SectorInnerBull:
		return NumCricketSectors - 1, true
	}
	return 0, false
}

// CricketScore is the Cricket snapshot: accumulated points plus a hit
// counter per tracked sector. Counters only grow and are capped at the
// mode's hits-to-close target.
type CricketScore struct {
	Points int
	Hits   [NumCricketSectors]int
}

func (CricketScore) score() {}

// HitsOn returns the hit counter for a sector value, or 0 for sectors
// cricket does not track.
func (s CricketScore) HitsOn(sector int) int {
	idx, ok := cricketSectorIndex(sector)
	if !ok {
		return 0
	}
	return s.Hits[idx]
}

// AllClosed reports whether every tracked sector has reached the
// hits-to-close target.
func (s CricketScore) AllClosed(hitsToClose int) bool {
	for _, h := range s.Hits {
		if h < hitsToClose {
			return false
		}
	}
	return true
}

func (s CricketScore) String() string {
	parts := make([]string, 0, NumCricketSectors)
	for i, sector := range cricketSectors {
		name := fmt.Sprintf("%d", sector)
		if sector == SectorOuterBull {
			name = "B"
		}
		parts = append(parts, fmt.Sprintf("%s:%d", name, s.Hits[i]))
	}
	return fmt.Sprintf("%d [%s]", s.Points, strings.Join(parts, " "))
}
