package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/mver/oche/internal/game"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 45 * time.Second
	maxMessageSize = 8 << 10
)

// Connection wraps one WebSocket client. A connection is subscribed to
// at most one match at a time — the last one it created, threw at or
// asked about — and receives every committed throw on that match.
type Connection struct {
	conn    *websocket.Conn
	send    chan *Message
	server  *Server
	service *MatchService
	logger  *log.Logger

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	mu      sync.RWMutex
	matchID string
}

func newConnection(conn *websocket.Conn, server *Server, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		conn:    conn,
		send:    make(chan *Message, 64),
		server:  server,
		service: server.service,
		logger:  logger.WithPrefix("conn"),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// start launches the read and write pumps.
func (c *Connection) start() {
	go c.writePump()
	go c.readPump()
}

// close tears the connection down exactly once.
func (c *Connection) close() {
	c.closeOnce.Do(func() {
		c.cancel()
		_ = c.conn.Close()
	})
}

// MatchID returns the match this connection is subscribed to.
func (c *Connection) MatchID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.matchID
}

func (c *Connection) setMatchID(matchID string) {
	c.mu.Lock()
	c.matchID = matchID
	c.mu.Unlock()
}

// sendMessage queues a message; a full buffer drops the connection
// rather than blocking the rest of the server.
func (c *Connection) sendMessage(msg *Message) error {
	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
		c.logger.Warn("Send buffer full, dropping connection")
		c.close()
		return ErrConnectionClosed
	}
}

func (c *Connection) readPump() {
	defer func() {
		c.server.unregister(c)
		c.close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("Unexpected close", "error", err)
			}
			return
		}
		c.handleMessage(&msg)
	}
}

func (c *Connection) writePump() {
	ticker := c.service.Clock().NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Connection) handleMessage(msg *Message) {
	switch msg.Type {
	case TypeCreateMatch:
		c.handleCreateMatch(msg)
	case TypeThrow:
		c.handleThrow(msg)
	case TypeState:
		c.handleState(msg)
	case TypeListModes:
		c.handleListModes(msg)
	default:
		c.sendError(msg, "bad_request", fmt.Sprintf("unknown message type %q", msg.Type))
	}
}

func (c *Connection) handleCreateMatch(msg *Message) {
	var data CreateMatchData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		c.sendError(msg, "bad_request", "malformed create_match payload")
		return
	}
	players := make([]game.Player, len(data.Players))
	for i, p := range data.Players {
		players[i] = game.Player{ID: p.ID, Name: p.Name}
	}

	state, err := c.service.CreateMatch(data.Mode, players)
	if err != nil {
		c.sendError(msg, errorCode(err), err.Error())
		return
	}
	c.setMatchID(state.MatchID)
	c.reply(msg, TypeMatchCreated, state)
}

func (c *Connection) handleThrow(msg *Message) {
	var data ThrowData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		c.sendError(msg, "bad_request", "malformed throw payload")
		return
	}

	result, err := c.service.RegisterThrow(data.MatchID, data.PlayerID, data.Sector, data.Multiplier)
	if err != nil {
		c.sendError(msg, errorCode(err), err.Error())
		return
	}
	c.setMatchID(data.MatchID)
	c.reply(msg, TypeThrowResult, result)

	// Everyone else watching the match sees the committed throw too.
	if broadcast, err := NewMessage(TypeThrowResult, result, c.service.Clock().Now()); err == nil {
		c.server.broadcastToMatch(data.MatchID, broadcast, c)
	}
}

func (c *Connection) handleState(msg *Message) {
	var data StateData
	if err := json.Unmarshal(msg.Data, &data); err != nil {
		c.sendError(msg, "bad_request", "malformed state payload")
		return
	}
	state, err := c.service.State(data.MatchID)
	if err != nil {
		c.sendError(msg, errorCode(err), err.Error())
		return
	}
	c.setMatchID(data.MatchID)
	c.reply(msg, TypeMatchState, state)
}

func (c *Connection) handleListModes(msg *Message) {
	c.reply(msg, TypeModeList, ModeListData{Modes: c.service.Modes()})
}

func (c *Connection) reply(req *Message, messageType MessageType, data any) {
	msg, err := NewMessage(messageType, data, c.service.Clock().Now())
	if err != nil {
		c.logger.Error("Failed to build reply", "type", messageType, "error", err)
		return
	}
	msg.RequestID = req.RequestID
	_ = c.sendMessage(msg)
}

func (c *Connection) sendError(req *Message, code, detail string) {
	msg, err := NewMessage(TypeError, ErrorData{Code: code, Message: detail}, c.service.Clock().Now())
	if err != nil {
		return
	}
	msg.RequestID = req.RequestID
	_ = c.sendMessage(msg)
}
