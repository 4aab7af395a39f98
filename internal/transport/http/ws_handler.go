package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"anagram-quiz-service/internal/app"
	"anagram-quiz-service/internal/domain"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type WSHandler struct {
	service  *app.GameService
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[string]int // open sockets per session
}

func NewWSHandler(service *app.GameService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		conns: make(map[string]int),
	}
}

func (h *WSHandler) attach(sessionID string) {
	h.mu.Lock()
	h.conns[sessionID]++
	h.mu.Unlock()
}

// detach ends the session once its last socket is gone.
func (h *WSHandler) detach(sessionID string) {
	h.mu.Lock()
	h.conns[sessionID]--
	last := h.conns[sessionID] <= 0
	if last {
		delete(h.conns, sessionID)
	}
	h.mu.Unlock()
	if last {
		h.service.End(context.Background(), sessionID)
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type tierPayload struct {
	Tier string `json:"tier"`
}

type guessPayload struct {
	Guess string `json:"guess"`
}

type savePayload struct {
	Name string `json:"name"`
}

type sessionPayload struct {
	SessionID string `json:"sessionId"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and runs one game session over the socket.
// The session id comes from ?sessionId= or is generated.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	ctx := r.Context()
	c := &wsConn{
		service:    h.service,
		sessionID:  sessionID,
		send:       make(chan outboundMessage[any], 16),
		done:       make(chan struct{}),
		writerDone: make(chan struct{}),
	}
	h.attach(sessionID)
	defer h.detach(sessionID)

	go func() {
		defer close(c.writerDone)
		for msg := range c.send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Warn().Err(err).Str("session", sessionID).Msg("ws write error")
				// unblocks the read loop
				_ = conn.Close()
				return
			}
		}
	}()

	c.reply("session", sessionPayload{SessionID: sessionID})
	// reconnecting to a live session resumes its updates
	if _, err := h.service.State(ctx, sessionID); err == nil {
		c.subscribe(ctx)
	}

	log.Debug().Str("session", sessionID).Msg("ws connected")
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		c.handle(ctx, inbound)
	}

	close(c.done)
	if c.stopUpdates != nil {
		c.stopUpdates()
		<-c.updatesDone
	}
	close(c.send)
	<-c.writerDone
	log.Debug().Str("session", sessionID).Msg("ws disconnected")
}

// wsConn is the per-socket state. Only the read loop touches it, apart from the
// forwarding goroutine which writes to send until done is closed.
// Nothing is queued once writerDone is closed.
type wsConn struct {
	service    *app.GameService
	sessionID  string
	send       chan outboundMessage[any]
	done       chan struct{}
	writerDone chan struct{}

	stopUpdates func()
	updatesDone chan struct{}
}

func (c *wsConn) handle(ctx context.Context, in inboundMessage) {
	switch in.Type {
	case "start":
		var p tierPayload
		if !c.decode(in.Payload, &p) {
			return
		}
		tier, err := optionalTier(p.Tier)
		if err != nil {
			c.fail(err)
			return
		}
		if _, err := c.service.Start(ctx, c.sessionID, tier); err != nil {
			c.fail(err)
			return
		}
		c.subscribe(ctx)
	case "guess":
		var p guessPayload
		if !c.decode(in.Payload, &p) {
			return
		}
		res, err := c.service.SubmitGuess(ctx, c.sessionID, p.Guess)
		if err != nil {
			c.fail(err)
			return
		}
		c.reply("verdict", res)
	case "hint":
		res, err := c.service.RequestHint(ctx, c.sessionID)
		if err != nil {
			c.fail(err)
			return
		}
		c.reply("hint", res)
	case "skip":
		if _, err := c.service.Skip(ctx, c.sessionID); err != nil {
			c.fail(err)
		}
	case "tier":
		var p tierPayload
		if !c.decode(in.Payload, &p) {
			return
		}
		tier, err := domain.ParseTier(p.Tier)
		if err != nil {
			c.fail(err)
			return
		}
		if _, err := c.service.ChangeTier(ctx, c.sessionID, tier); err != nil {
			c.fail(err)
		}
	case "advance":
		if _, err := c.service.AdvanceLevel(ctx, c.sessionID); err != nil {
			c.fail(err)
		}
	case "save":
		var p savePayload
		if !c.decode(in.Payload, &p) {
			return
		}
		lb, err := c.service.SaveScore(ctx, c.sessionID, p.Name)
		if err != nil {
			c.fail(err)
			return
		}
		c.reply("leaderboard", lb)
	case "leaderboard":
		c.reply("leaderboard", c.service.Leaderboard(ctx))
	default:
		c.reply("error", errorPayload{Message: "unsupported message type"})
	}
}

// subscribe forwards session snapshots as "state" frames. It is a no-op once running.
func (c *wsConn) subscribe(ctx context.Context) {
	if c.stopUpdates != nil {
		return
	}
	updates, cancel, err := c.service.Subscribe(ctx, c.sessionID)
	if err != nil {
		c.fail(err)
		return
	}
	c.stopUpdates = cancel
	c.updatesDone = make(chan struct{})

	go func() {
		defer close(c.updatesDone)
		for {
			select {
			case state, ok := <-updates:
				if !ok {
					return
				}
				select {
				case c.send <- outboundMessage[any]{Type: "state", Payload: state}:
				case <-c.done:
					return
				case <-c.writerDone:
					return
				}
			case <-c.done:
				return
			}
		}
	}()
}

func (c *wsConn) decode(raw json.RawMessage, v any) bool {
	if len(raw) == 0 {
		return true
	}
	if err := json.Unmarshal(raw, v); err != nil {
		c.reply("error", errorPayload{Message: "invalid payload"})
		return false
	}
	return true
}

func (c *wsConn) reply(typ string, payload any) {
	select {
	case c.send <- outboundMessage[any]{Type: typ, Payload: payload}:
	case <-c.writerDone:
	}
}

func (c *wsConn) fail(err error) {
	c.reply("error", errorPayload{Message: err.Error()})
}

func optionalTier(raw string) (domain.Tier, error) {
	if raw == "" {
		return "", nil
	}
	return domain.ParseTier(raw)
}
