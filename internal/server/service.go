package server

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/mver/oche/internal/game"
	"github.com/mver/oche/internal/matchid"
)

// MatchService owns every running match and the preset registry built
// from configuration. All match access goes through here.
//
// Each match carries its own lock: a throw is one critical section
// from evaluation to commit, so no caller ever observes a partially
// applied dart.
type MatchService struct {
	logger *log.Logger
	clock  quartz.Clock
	ids    *matchid.Generator

	modes     map[string]game.Mode
	modeOrder []string

	mu      sync.RWMutex
	matches map[string]*matchEntry
}

type matchEntry struct {
	mu    sync.Mutex
	match *game.Match
}

// NewMatchService builds the service from configured presets.
func NewMatchService(cfg *Config, logger *log.Logger, clock quartz.Clock) (*MatchService, error) {
	if clock == nil {
		clock = quartz.NewReal()
	}
	modes := make(map[string]game.Mode, len(cfg.Modes))
	order := make([]string, 0, len(cfg.Modes))
	for _, mc := range cfg.Modes {
		mode, err := mc.Build()
		if err != nil {
			return nil, err
		}
		if _, dup := modes[mc.Name]; dup {
			return nil, fmt.Errorf("server: duplicate mode preset %q", mc.Name)
		}
		modes[mc.Name] = mode
		order = append(order, mc.Name)
	}
	return &MatchService{
		logger:    logger.WithPrefix("matches"),
		clock:     clock,
		ids:       matchid.NewGenerator(clock, nil),
		modes:     modes,
		modeOrder: order,
		matches:   make(map[string]*matchEntry),
	}, nil
}

// Modes lists the configured presets in configuration order.
func (s *MatchService) Modes() []ModeInfo {
	out := make([]ModeInfo, 0, len(s.modeOrder))
	for _, name := range s.modeOrder {
		mode := s.modes[name]
		out = append(out, ModeInfo{Name: name, Variant: mode.Name(), DartsPerTurn: mode.DartsPerTurn()})
	}
	return out
}

// CreateMatch starts a match on the named preset.
func (s *MatchService) CreateMatch(modeName string, players []game.Player) (MatchStateData, error) {
	mode, ok := s.modes[modeName]
	if !ok {
		return MatchStateData{}, fmt.Errorf("%w: %q", ErrUnknownMode, modeName)
	}

	id := s.ids.New()
	m, err := game.NewMatch(id, mode, players)
	if err != nil {
		return MatchStateData{}, err
	}

	s.mu.Lock()
	s.matches[id] = &matchEntry{match: m}
	s.mu.Unlock()

	s.logger.Info("Match created", "match", id, "mode", modeName, "players", len(players))
	return snapshot(m), nil
}

// RegisterThrow applies one dart to a match as a single atomic
// transaction and returns the result plus the post-throw state.
func (s *MatchService) RegisterThrow(matchID, playerID string, sector, multiplier int) (ThrowResultData, error) {
	entry, err := s.entry(matchID)
	if err != nil {
		return ThrowResultData{}, err
	}

	throw, err := game.NewThrow(sector, multiplier)
	if err != nil {
		return ThrowResultData{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	res, err := entry.match.RegisterThrow(playerID, throw)
	if err != nil {
		return ThrowResultData{}, err
	}

	data := ThrowResultData{
		MatchID:    matchID,
		PlayerID:   playerID,
		Throw:      throw.String(),
		Sector:     throw.Sector,
		Multiplier: throw.Multiplier,
		Outcome:    res.Outcome.String(),
		Winner:     res.WinnerID,
		State:      snapshot(entry.match),
	}
	if res.Progress != game.ProgressNone {
		data.Progress = res.Progress.String()
	}
	if res.Outcome == game.OutcomeWin {
		s.logger.Info("Match finished", "match", matchID, "winner", res.WinnerID)
	}
	return data, nil
}

// State returns the current public view of a match.
func (s *MatchService) State(matchID string) (MatchStateData, error) {
	entry, err := s.entry(matchID)
	if err != nil {
		return MatchStateData{}, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return snapshot(entry.match), nil
}

func (s *MatchService) entry(matchID string) (*matchEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.matches[matchID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMatchNotFound, matchID)
	}
	return entry, nil
}

// Clock exposes the service clock so connections stamp messages off
// the same (mockable) time source.
func (s *MatchService) Clock() quartz.Clock { return s.clock }

func snapshot(m *game.Match) MatchStateData {
	players := m.Players()
	infos := make([]PlayerInfo, len(players))
	for i, p := range players {
		infos[i] = PlayerInfo{ID: p.ID, Name: p.Name}
	}
	scores := make(map[string]ScoreInfo, len(players))
	for id, sc := range m.Scores() {
		scores[id] = scoreInfo(sc)
	}
	data := MatchStateData{
		MatchID:       m.ID(),
		Mode:          m.Mode().Name(),
		Players:       infos,
		Scores:        scores,
		DartsThrown:   m.DartsThrown(),
		ThrowCount:    len(m.History()),
		Finished:      m.IsFinished(),
		Winner:        m.WinnerID(),
	}
	if !m.IsFinished() {
		data.CurrentPlayer = m.CurrentPlayer().ID
	}
	return data
}
