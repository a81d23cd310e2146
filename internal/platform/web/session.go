package web

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/crescent-arcade/internal/core"
	"github.com/vovakirdan/crescent-arcade/internal/registry"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Largest screen a browser may ask for.
	maxScreenW = 200
	maxScreenH = 80

	// Buffered client events before new ones are dropped.
	eventBuffer = 64
)

// playSession runs one game for one websocket. The run loop is the only
// goroutine that touches the game or writes to the connection.
type playSession struct {
	id     string
	conn   *websocket.Conn
	game   registry.Game
	cfg    core.RuntimeConfig
	screen *core.Screen
	events chan ClientMessage
	logger *log.Logger

	tick     uint64
	lastRows []string
	last     State
}

func newPlaySession(id string, conn *websocket.Conn, game registry.Game, cfg core.RuntimeConfig, logger *log.Logger) *playSession {
	return &playSession{
		id:     id,
		conn:   conn,
		game:   game,
		cfg:    cfg,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		events: make(chan ClientMessage, eventBuffer),
		logger: logger.With("session", id, "game", game.ID()),
	}
}

// run mounts the game and drives it until the client leaves or ctx ends.
// The game is disposed on every exit path.
func (p *playSession) run(ctx context.Context) {
	defer p.conn.Close()
	defer p.game.Dispose()

	p.game.Mount(p.cfg)
	p.logger.Info("play session started")

	readDone := make(chan struct{})
	go p.readPump(readDone)

	ticker := time.NewTicker(p.cfg.TickDuration())
	defer ticker.Stop()
	pinger := time.NewTicker(pingPeriod)
	defer pinger.Stop()

	if err := p.sendFrame(true); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			p.closeWith(websocket.CloseGoingAway, "server shutting down")
			return

		case <-readDone:
			p.logger.Info("play session ended", "ticks", p.tick)
			return

		case <-pinger.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-ticker.C:
			in, quit := p.drain()
			if quit {
				p.closeWith(websocket.CloseNormalClosure, "bye")
				return
			}
			p.game.Step(in)
			p.tick++
			if err := p.sendFrame(false); err != nil {
				p.logger.Debug("write failed", "error", err)
				return
			}
		}
	}
}

// drain collects every queued client event into one input frame.
func (p *playSession) drain() (core.InputFrame, bool) {
	in := core.NewInputFrame()
	for {
		select {
		case msg := <-p.events:
			switch msg.Type {
			case MsgKey:
				a := actionForKey(strings.ToLower(msg.Key))
				if a == core.ActionQuit {
					return in, true
				}
				if a != core.ActionNone {
					in.Set(a)
				}
			case MsgClick:
				in.Click(msg.X, msg.Y)
			case MsgResize:
				p.resize(msg.W, msg.H)
			}
		default:
			return in, false
		}
	}
}

func (p *playSession) resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	w = core.Min(w, maxScreenW)
	h = core.Min(h, maxScreenH)
	p.cfg.ScreenW, p.cfg.ScreenH = w, h
	p.screen.Resize(w, h)
	p.lastRows = nil
}

// sendFrame renders the game and pushes it when anything visible changed.
func (p *playSession) sendFrame(force bool) error {
	p.game.Render(p.screen)
	rows := p.screen.Rows()
	state := stateOf(p.game.State())
	if !force && state == p.last && slices.Equal(rows, p.lastRows) {
		return nil
	}
	p.lastRows = rows
	p.last = state

	data, err := json.Marshal(Frame{
		Session: p.id,
		Game:    p.game.ID(),
		Tick:    p.tick,
		Rows:    rows,
		State:   state,
	})
	if err != nil {
		return err
	}
	p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return p.conn.WriteMessage(websocket.TextMessage, data)
}

func (p *playSession) closeWith(code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	//nolint:errcheck // Best-effort close frame, the connection is going away
	p.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

// readPump decodes client messages into the events channel until the
// connection fails, then closes done. Malformed messages are skipped.
func (p *playSession) readPump(done chan<- struct{}) {
	defer close(done)

	p.conn.SetReadLimit(maxMessageSize)
	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		p.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				p.logger.Warn("websocket error", "error", err)
			}
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			p.logger.Debug("ignoring malformed client message", "error", err)
			continue
		}
		select {
		case p.events <- msg:
		default:
			p.logger.Debug("dropping client event", "type", msg.Type)
		}
	}
}
