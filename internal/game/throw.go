package game

import "fmt"

// Special sector values. Regular sectors are 1-20; 0 records a miss.
const (
	SectorMiss      = 0
	SectorOuterBull = 25
	SectorInnerBull = 50
)

// Throw describes a single dart: the sector it landed in and the ring
// multiplier. Throws are immutable values, constructed once per dart.
type Throw struct {
	Sector     int
	Multiplier int
}

// NewThrow builds a validated throw. Sector must be 0, 1-20, 25 or 50;
// multiplier must be 1-3. Bulls have no treble ring, and the inner bull
// is already the double of the outer, so 25 allows multipliers 1-2 and
// 50 allows only 1.
func NewThrow(sector, multiplier int) (Throw, error) {
	t := Throw{Sector: sector, Multiplier: multiplier}
	if err := t.validate(); err != nil {
		return Throw{}, err
	}
	return t, nil
}

// MustThrow is NewThrow for throws known to be valid. It panics on
// invalid input and exists for tests and literals.
func MustThrow(sector, multiplier int) Throw {
	t, err := NewThrow(sector, multiplier)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Throw) validate() error {
	if t.Multiplier < 1 || t.Multiplier > 3 {
		return fmt.Errorf("%w: multiplier %d", ErrInvalidThrow, t.Multiplier)
	}
	switch {
	case t.Sector >= SectorMiss && t.Sector <= 20:
		return nil
	case t.Sector == SectorOuterBull:
		if t.Multiplier == 3 {
			return fmt.Errorf("%w: no treble bull", ErrInvalidThrow)
		}
		return nil
	case t.Sector == SectorInnerBull:
		if t.Multiplier != 1 {
			return fmt.Errorf("%w: inner bull has no multiplier ring", ErrInvalidThrow)
		}
		return nil
	}
	return fmt.Errorf("%w: sector %d", ErrInvalidThrow, t.Sector)
}

// Value returns the points scored by the dart in countdown modes.
func (t Throw) Value() int {
	return t.Sector * t.Multiplier
}

// IsDouble reports whether the dart landed in a double ring. The inner
// bull counts: it is the double of the outer bull.
func (t Throw) IsDouble() bool {
	return t.Multiplier == 2 || t.Sector == SectorInnerBull
}

// String renders the throw in conventional notation: "T20", "D16",
// "7", "25", "Bull" or "miss".
func (t Throw) String() string {
	switch t.Sector {
	case SectorMiss:
		return "miss"
	case SectorInnerBull:
		return "Bull"
	}
	switch t.Multiplier {
	case 2:
		return fmt.Sprintf("D%d", t.Sector)
	case 3:
		return fmt.Sprintf("T%d", t.Sector)
	}
	return fmt.Sprintf("%d", t.Sector)
}
