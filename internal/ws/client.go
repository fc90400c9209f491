package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"rps_webapp/internal/game"
	"rps_webapp/internal/logger"
	"rps_webapp/internal/match"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second

	sendBuffer   = 64
	maxFrameSize = 4096
	rateWindow   = time.Second
)

// Game is the room and round surface a session drives.
type Game interface {
	CreateRoom(ctx context.Context, playerID int64, displayName string) (string, error)
	JoinRoom(ctx context.Context, code string, playerID int64, displayName string) (match.Seat, error)
	SubmitPlayerMove(ctx context.Context, code string, playerID int64, move game.Move) error
	Leave(ctx context.Context, code string, playerID int64) error
	PlayerDisconnected(ctx context.Context, playerID int64)
}

// Identity resolves the name shown to the opponent.
type Identity interface {
	DisplayName(ctx context.Context, playerID int64) (string, error)
}

type Client struct {
	ID     string
	UserID int64
	Conn   *websocket.Conn

	hub      *Hub
	game     Game
	identity Identity
	limiter  *limiter
	log      *slog.Logger

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func NewClient(userID int64, conn *websocket.Conn, hub *Hub, g Game, ids Identity, messageRate int) *Client {
	id := uuid.NewString()
	return &Client{
		ID:       id,
		UserID:   userID,
		Conn:     conn,
		hub:      hub,
		game:     g,
		identity: ids,
		limiter:  newLimiter(messageRate, rateWindow),
		log:      logger.With("session", id, "user_id", userID),
		send:     make(chan []byte, sendBuffer),
		done:     make(chan struct{}),
	}
}

// Run serves the session until the peer goes away or the session is closed.
// The client must already be registered with the hub.
func (c *Client) Run(ctx context.Context) {
	ctx = logger.NewContext(ctx, c.log)

	go c.writePump()
	c.reply(MsgReady, nil)

	c.readPump(ctx)

	c.hub.Unregister(c)
	c.close()
	c.game.PlayerDisconnected(ctx, c.UserID)
	c.log.Info("session closed")
}

// enqueue never blocks. A session that cannot keep up is closed; its
// disconnect is then handled like any other.
func (c *Client) enqueue(data []byte) bool {
	select {
	case <-c.done:
		eventsDropped.WithLabelValues("closed").Inc()
		return false
	default:
	}

	select {
	case c.send <- data:
		return true
	default:
		eventsDropped.WithLabelValues("overflow").Inc()
		c.log.Warn("send queue full, closing session")
		c.close()
		return false
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

func (c *Client) readPump(ctx context.Context) {
	c.Conn.SetReadLimit(maxFrameSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// unblock ReadMessage when the session is closed from our side
	go func() {
		<-c.done
		c.Conn.SetReadDeadline(time.Now())
	}()

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("read error", "error", err)
			}
			return
		}
		c.handle(ctx, raw)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.log.Debug("write error", "error", err)
				c.close()
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		case <-c.done:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.Conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func (c *Client) handle(ctx context.Context, raw []byte) {
	var in inbound
	if err := json.Unmarshal(raw, &in); err != nil {
		messagesReceived.WithLabelValues("malformed").Inc()
		c.replyError("bad_request", "message is not valid JSON")
		return
	}
	messagesReceived.WithLabelValues(knownType(in.Type)).Inc()

	if !c.limiter.Allow() {
		c.replyError("rate_limited", "too many messages")
		return
	}

	switch in.Type {
	case MsgCreateRoom:
		name := c.displayName(ctx)
		if _, err := c.game.CreateRoom(ctx, c.UserID, name); err != nil {
			c.replyMatchError("create_room", err)
		}

	case MsgJoinRoom:
		var p RoomPayload
		if !c.decode(in.Payload, &p) {
			return
		}
		name := c.displayName(ctx)
		seat, err := c.game.JoinRoom(ctx, p.Code, c.UserID, name)
		if err != nil {
			c.replyMatchError("join_room", err)
			return
		}
		c.reply(MsgRoomJoined, RoomJoinedPayload{Code: match.NormalizeCode(p.Code), Seat: int(seat)})

	case MsgSubmitMove:
		var p MovePayload
		if !c.decode(in.Payload, &p) {
			return
		}
		move, err := game.ParseMove(p.Move)
		if err != nil {
			c.replyMatchError("submit_move", err)
			return
		}
		code := match.NormalizeCode(p.Code)
		if err := c.game.SubmitPlayerMove(ctx, code, c.UserID, move); err != nil {
			c.replyMatchError("submit_move", err)
			return
		}
		c.reply(MsgMoveAccepted, MoveAcceptedPayload{Code: code, Move: move.String()})

	case MsgLeaveRoom:
		var p RoomPayload
		if !c.decode(in.Payload, &p) {
			return
		}
		if err := c.game.Leave(ctx, p.Code, c.UserID); err != nil {
			c.replyMatchError("leave_room", err)
			return
		}
		c.reply(MsgRoomLeft, RoomPayload{Code: match.NormalizeCode(p.Code)})

	case MsgPing:
		c.reply(MsgPong, nil)

	default:
		c.replyError("unknown_type", "unsupported message type")
	}
}

func (c *Client) displayName(ctx context.Context) string {
	if c.identity == nil {
		return ""
	}
	name, err := c.identity.DisplayName(ctx, c.UserID)
	if err != nil {
		c.log.Warn("display name lookup failed", "error", err)
		return ""
	}
	return strings.TrimSpace(name)
}

func (c *Client) decode(payload json.RawMessage, dst any) bool {
	if len(payload) == 0 {
		c.replyError("bad_request", "payload required")
		return false
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		c.replyError("bad_request", "payload is malformed")
		return false
	}
	return true
}

func (c *Client) replyMatchError(op string, err error) {
	code := match.ErrorCode(err)
	if code == "internal" || code == "registry_exhausted" {
		c.log.Error(op+" failed", "error", err)
	} else {
		c.log.Debug(op+" rejected", "code", code)
	}
	c.replyError(code, match.ErrorMessage(err))
}

func (c *Client) replyError(code, message string) {
	c.reply(MsgError, ErrorPayload{Code: code, Message: message})
}

func (c *Client) reply(typ string, payload any) {
	data, err := json.Marshal(Message{Type: typ, ID: uuid.NewString(), Payload: payload})
	if err != nil {
		c.log.Error("marshal reply failed", "type", typ, "error", err)
		return
	}
	c.enqueue(data)
}

func knownType(t string) string {
	switch t {
	case MsgCreateRoom, MsgJoinRoom, MsgSubmitMove, MsgLeaveRoom, MsgPing:
		return t
	}
	return "unknown"
}
