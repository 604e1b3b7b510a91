package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mver/oche/internal/game"
)

// MessageType identifies a WebSocket message.
type MessageType string

const (
	// Client -> Server
	TypeCreateMatch MessageType = "create_match"
	TypeThrow       MessageType = "throw"
	TypeState       MessageType = "state"
	TypeListModes   MessageType = "list_modes"

	// Server -> Client
	TypeMatchCreated MessageType = "match_created"
	TypeThrowResult  MessageType = "throw_result"
	TypeMatchState   MessageType = "match_state"
	TypeModeList     MessageType = "mode_list"
	TypeError        MessageType = "error"
)

// Message is the WebSocket envelope shared by both directions.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage wraps a payload in an envelope stamped with the given time.
func NewMessage(messageType MessageType, data any, at time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{Type: messageType, Data: dataBytes, Timestamp: at}, nil
}

// Client -> Server payloads

type CreateMatchData struct {
	Mode    string       `json:"mode"`
	Players []PlayerInfo `json:"players"`
}

type PlayerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ThrowData struct {
	MatchID    string `json:"matchId"`
	PlayerID   string `json:"playerId"`
	Sector     int    `json:"sector"`
	Multiplier int    `json:"multiplier"`
}

type StateData struct {
	MatchID string `json:"matchId"`
}

// Server -> Client payloads

// ScoreInfo flattens the score variants for the wire; only the fields
// belonging to the match's mode are present.
type ScoreInfo struct {
	Remaining *int           `json:"remaining,omitempty"`
	Legs      *int           `json:"legs,omitempty"`
	Sets      *int           `json:"sets,omitempty"`
	Points    *int           `json:"points,omitempty"`
	Hits      map[string]int `json:"hits,omitempty"`
}

func intp(v int) *int { return &v }

func scoreInfo(sc game.Score) ScoreInfo {
	switch s := sc.(type) {
	case game.LegsScore:
		return ScoreInfo{Remaining: intp(s.Remaining), Legs: intp(s.Legs)}
	case game.SetsScore:
		return ScoreInfo{Remaining: intp(s.Remaining), Legs: intp(s.Legs), Sets: intp(s.Sets)}
	case game.CricketScore:
		hits := make(map[string]int, game.NumCricketSectors)
		for _, sector := range []int{20, 19, 18, 17, 16, 15} {
			hits[fmt.Sprintf("%d", sector)] = s.HitsOn(sector)
		}
		hits["bull"] = s.HitsOn(game.SectorOuterBull)
		return ScoreInfo{Points: intp(s.Points), Hits: hits}
	}
	return ScoreInfo{}
}

// MatchStateData is the full public view of a match, sent on creation,
// on request and inside every throw result.
type MatchStateData struct {
	MatchID       string               `json:"matchId"`
	Mode          string               `json:"mode"`
	Players       []PlayerInfo         `json:"players"`
	Scores        map[string]ScoreInfo `json:"scores"`
	CurrentPlayer string               `json:"currentPlayer"`
	DartsThrown   int                  `json:"dartsThrown"`
	ThrowCount    int                  `json:"throwCount"`
	Finished      bool                 `json:"finished"`
	Winner        string               `json:"winner,omitempty"`
}

type ThrowResultData struct {
	MatchID    string         `json:"matchId"`
	PlayerID   string         `json:"playerId"`
	Throw      string         `json:"throw"`
	Sector     int            `json:"sector"`
	Multiplier int            `json:"multiplier"`
	Outcome    string         `json:"outcome"`
	Progress   string         `json:"progress,omitempty"`
	Winner     string         `json:"winner,omitempty"`
	State      MatchStateData `json:"state"`
}

type ModeInfo struct {
	Name         string `json:"name"`
	Variant      string `json:"variant"`
	DartsPerTurn int    `json:"dartsPerTurn"`
}

type ModeListData struct {
	Modes []ModeInfo `json:"modes"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Service-level errors, alongside the engine's own taxonomy.
var (
	ErrMatchNotFound    = errors.New("server: match not found")
	ErrUnknownMode      = errors.New("server: unknown mode preset")
	ErrConnectionClosed = errors.New("server: connection closed")
)

// errorCode maps an error to the stable code clients dispatch on.
func errorCode(err error) string {
	switch {
	case errors.Is(err, game.ErrInvalidPlayerCount):
		return "invalid_player_count"
	case errors.Is(err, game.ErrWrongTurn):
		return "wrong_turn"
	case errors.Is(err, game.ErrMatchFinished):
		return "match_finished"
	case errors.Is(err, game.ErrInvalidThrow):
		return "invalid_throw"
	case errors.Is(err, game.ErrMissingScore):
		return "missing_score"
	case errors.Is(err, ErrMatchNotFound):
		return "match_not_found"
	case errors.Is(err, ErrUnknownMode):
		return "unknown_mode"
	}
	return "internal"
}
