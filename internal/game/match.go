package game

import "fmt"

// ThrowRecord is one committed history entry. History is append-only
// and includes busted darts, so a scoreboard can replay the match.
type ThrowRecord struct {
	PlayerID string
	Throw    Throw
	Outcome  Outcome
	Progress Progress
}

// Match sequences darts and players for one running game. It owns the
// ordered player list, the committed score map, the throw history and
// the turn bookkeeping; the active mode owns the scoring decisions.
//
// Match is not safe for concurrent use. A host serving several callers
// must treat RegisterThrow as one critical section per match:
// evaluate-then-commit-or-rollback is a single atomic transaction.
type Match struct {
	id      string
	mode    Mode
	players []Player
	scores  map[string]Score
	history []ThrowRecord

	current int // index into players of whoever throws next
	darts   int // darts already thrown in the current turn

	// turnStart anchors the bust rollback: the thrower's score as it
	// was before their first dart. Populated at dart one, cleared at
	// turn end, never present for a player who is not mid-turn.
	turnStart map[string]Score

	finished bool
	winnerID string
}

// NewMatch validates the player list against the mode and builds a
// match with every player on the mode's starting score.
func NewMatch(id string, mode Mode, players []Player) (*Match, error) {
	if err := mode.ValidatePlayers(players); err != nil {
		return nil, err
	}
	scores := make(map[string]Score, len(players))
	for _, p := range players {
		if _, dup := scores[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate player id %q", ErrInvalidPlayerCount, p.ID)
		}
		scores[p.ID] = mode.InitialScore()
	}
	return &Match{
		id:      id,
		mode:    mode,
		players: append([]Player(nil), players...),
		scores:  scores,
	}, nil
}

// RegisterThrow applies one dart for playerID. On any error the match
// is exactly as it was before the call.
//
// A bust rolls the thrower back to their turn-start score and ends the
// turn; reaching the mode's darts-per-turn ends the turn; a win
// finishes the match permanently. The returned Result reflects the
// committed state, so on a bust Result.Score is the restored score.
func (m *Match) RegisterThrow(playerID string, t Throw) (Result, error) {
	if m.finished {
		return Result{}, ErrMatchFinished
	}
	if err := t.validate(); err != nil {
		return Result{}, err
	}
	if cur := m.players[m.current]; cur.ID != playerID {
		return Result{}, fmt.Errorf("%w: waiting on %s", ErrWrongTurn, cur.ID)
	}
	before, ok := m.scores[playerID]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrMissingScore, playerID)
	}

	if m.darts == 0 {
		m.turnStart = map[string]Score{playerID: before}
	}

	res, err := m.mode.EvaluateThrow(playerID, t, m.scores)
	if err != nil {
		if m.darts == 0 {
			m.turnStart = nil
		}
		return Result{}, err
	}

	m.history = append(m.history, ThrowRecord{
		PlayerID: playerID,
		Throw:    t,
		Outcome:  res.Outcome,
		Progress: res.Progress,
	})
	m.scores[playerID] = res.Score
	for id, sc := range res.Others {
		m.scores[id] = sc
	}

	switch res.Outcome {
	case OutcomeBust:
		m.scores[playerID] = m.turnStart[playerID]
		res.Score = m.scores[playerID]
		m.endTurn()
	case OutcomeWin:
		m.finished = true
		m.winnerID = res.WinnerID
		m.darts = 0
		m.turnStart = nil
	default:
		m.darts++
		if m.darts >= m.mode.DartsPerTurn() {
			m.endTurn()
		}
	}
	return res, nil
}

// endTurn resets the dart counter, drops the rollback anchor and
// rotates to the next player. Rotation is strictly cyclic; it never
// skips anyone.
func (m *Match) endTurn() {
	m.darts = 0
	m.turnStart = nil
	m.current = (m.current + 1) % len(m.players)
}

// ID returns the match identifier.
func (m *Match) ID() string { return m.id }

// Mode returns the active game mode.
func (m *Match) Mode() Mode { return m.mode }

// Players returns the ordered player list.
func (m *Match) Players() []Player {
	return append([]Player(nil), m.players...)
}

// Scores returns a copy of the committed score map.
func (m *Match) Scores() map[string]Score {
	out := make(map[string]Score, len(m.scores))
	for id, sc := range m.scores {
		out[id] = sc
	}
	return out
}

// ScoreOf returns one player's committed score.
func (m *Match) ScoreOf(playerID string) (Score, error) {
	sc, ok := m.scores[playerID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingScore, playerID)
	}
	return sc, nil
}

// History returns a copy of every registered throw, busts included.
func (m *Match) History() []ThrowRecord {
	return append([]ThrowRecord(nil), m.history...)
}

// CurrentPlayer returns whoever throws next. The value is meaningless
// once the match is finished.
func (m *Match) CurrentPlayer() Player { return m.players[m.current] }

// DartsThrown returns how many darts the current turn has used.
func (m *Match) DartsThrown() int { return m.darts }

// IsFinished reports whether the match has concluded.
func (m *Match) IsFinished() bool { return m.finished }

// WinnerID returns the winner's player ID, or "" while in progress.
func (m *Match) WinnerID() string { return m.winnerID }
