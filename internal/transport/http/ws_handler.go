package http

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

type WSHandler struct {
	service     *app.QuizService
	defaultBank string
	logger      *zap.Logger
	upgrader    websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, defaultBank string, logger *zap.Logger) *WSHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WSHandler{
		service:     service,
		defaultBank: defaultBank,
		logger:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Seq    int      `json:"seq"`
	Value  string   `json:"value"`
	Values []string `json:"values"`
}

type namePayload struct {
	Name string `json:"name"`
}

type replayPayload struct {
	Again bool `json:"again"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type welcomePayload struct {
	Name             string `json:"name"`
	TimeLimitSeconds int    `json:"timeLimitSeconds"`
}

type questionPayload struct {
	Seq         int             `json:"seq"`
	Number      int             `json:"number"`
	Total       int             `json:"total"`
	SecondsLeft int             `json:"secondsLeft"`
	Kind        domain.Kind     `json:"kind"`
	Prompt      string          `json:"prompt"`
	Options     []domain.Option `json:"options,omitempty"`
}

type feedbackPayload struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
}

type namedPayload struct {
	Name string `json:"name"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and runs one player's quiz over the socket.
// Query parameters: bank (optional) and name (optional; asked for when missing).
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	bankID := r.URL.Query().Get("bank")
	if bankID == "" {
		bankID = h.defaultBank
	}
	name := r.URL.Query().Get("name")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Time{})

	player := newWSPlayer(conn, h.logger)
	go player.readLoop()
	go player.writeLoop()

	var opts []app.EngineOption
	if name != "" {
		opts = append(opts, app.WithPlayerName(name))
	}
	if err := h.service.Play(r.Context(), bankID, player, player, opts...); err != nil {
		h.logger.Info("ws play ended with error", zap.String("bank", bankID), zap.Error(err))
		player.emit("error", errorPayload{Message: err.Error()})
	}
	player.close()
}

// ServeHealth reports liveness and the number of running plays.
func (h *WSHandler) ServeHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":      "ok",
		"activePlays": h.service.ActivePlays(),
	})
}

// wsPlayer adapts a websocket connection to app.Prompter and app.Display.
// A single goroutine writes to the connection and a single goroutine reads.
type wsPlayer struct {
	conn   *websocket.Conn
	logger *zap.Logger

	send       chan outboundMessage[any]
	inbound    chan inboundMessage
	writerDone chan struct{}
	done       chan struct{}

	sendMu sync.Mutex
	closed bool

	mu  sync.Mutex
	seq int
}

func newWSPlayer(conn *websocket.Conn, logger *zap.Logger) *wsPlayer {
	return &wsPlayer{
		conn:       conn,
		logger:     logger,
		send:       make(chan outboundMessage[any], 16),
		inbound:    make(chan inboundMessage, 16),
		writerDone: make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (p *wsPlayer) writeLoop() {
	defer close(p.writerDone)
	for msg := range p.send {
		_ = p.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := p.conn.WriteJSON(msg); err != nil {
			p.logger.Debug("ws write error", zap.Error(err))
			// keep draining so emit never blocks
			for range p.send {
			}
			return
		}
	}
}

func (p *wsPlayer) readLoop() {
	defer close(p.inbound)
	for {
		var msg inboundMessage
		if err := p.conn.ReadJSON(&msg); err != nil {
			return
		}
		select {
		case p.inbound <- msg:
		case <-p.done:
			return
		}
	}
}

// emit queues a message; it is a no-op once the player is closed, which
// happens while cancelled prompts may still be unwinding.
func (p *wsPlayer) emit(typ string, payload any) {
	p.sendMu.Lock()
	defer p.sendMu.Unlock()
	if p.closed {
		return
	}
	p.send <- outboundMessage[any]{Type: typ, Payload: payload}
}

// close flushes pending messages and sends a close frame.
func (p *wsPlayer) close() {
	p.sendMu.Lock()
	p.closed = true
	close(p.send)
	p.sendMu.Unlock()
	close(p.done)
	<-p.writerDone
	_ = p.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
		time.Now().Add(time.Second))
}

// await returns the payload of the next inbound message of type typ. Other
// message types are answered with an error and skipped.
func (p *wsPlayer) await(ctx context.Context, typ string) (json.RawMessage, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		select {
		case msg, ok := <-p.inbound:
			if !ok {
				return nil, domain.ErrInputAborted
			}
			if msg.Type == "quit" {
				return nil, domain.ErrInputAborted
			}
			if msg.Type != typ {
				p.emit("error", errorPayload{Message: "unexpected message type " + msg.Type})
				continue
			}
			return msg.Payload, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// awaitAnswer skips answers tagged with an earlier question's seq.
func (p *wsPlayer) awaitAnswer(ctx context.Context) (answerPayload, error) {
	p.mu.Lock()
	current := p.seq
	p.mu.Unlock()

	for {
		raw, err := p.await(ctx, "answer")
		if err != nil {
			return answerPayload{}, err
		}
		var payload answerPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			p.emit("error", errorPayload{Message: "invalid answer payload"})
			continue
		}
		if payload.Seq != 0 && payload.Seq != current {
			continue
		}
		return payload, nil
	}
}

func (p *wsPlayer) AskName(ctx context.Context) (string, error) {
	p.emit("namePrompt", struct{}{})
	raw, err := p.await(ctx, "name")
	if err != nil {
		return "", err
	}
	var payload namePayload
	_ = json.Unmarshal(raw, &payload)
	return payload.Name, nil
}

func (p *wsPlayer) AskSingleChoice(ctx context.Context, _ string, _ []domain.Option) (string, error) {
	payload, err := p.awaitAnswer(ctx)
	return payload.Value, err
}

func (p *wsPlayer) AskFreeText(ctx context.Context, _ string) (string, error) {
	payload, err := p.awaitAnswer(ctx)
	return payload.Value, err
}

func (p *wsPlayer) AskMultiChoice(ctx context.Context, _ string, _ []domain.Option) ([]string, error) {
	payload, err := p.awaitAnswer(ctx)
	if err != nil {
		return nil, err
	}
	if len(payload.Values) == 0 && payload.Value != "" {
		return []string{payload.Value}, nil
	}
	return payload.Values, nil
}

func (p *wsPlayer) AskReplay(ctx context.Context) (bool, error) {
	p.emit("replayPrompt", struct{}{})
	raw, err := p.await(ctx, "replay")
	if err != nil {
		return false, err
	}
	var payload replayPayload
	_ = json.Unmarshal(raw, &payload)
	return payload.Again, nil
}

func (p *wsPlayer) Welcome(name string, limit time.Duration) {
	p.emit("welcome", welcomePayload{Name: name, TimeLimitSeconds: int(limit / time.Second)})
}

func (p *wsPlayer) Question(number, total, secondsLeft int, q domain.Question) {
	p.mu.Lock()
	p.seq++
	seq := p.seq
	p.mu.Unlock()

	p.emit("question", questionPayload{
		Seq:         seq,
		Number:      number,
		Total:       total,
		SecondsLeft: secondsLeft,
		Kind:        q.Kind,
		Prompt:      q.Prompt,
		Options:     q.Options,
	})
}

func (p *wsPlayer) Feedback(correct bool, q domain.Question) {
	p.emit("feedback", feedbackPayload{Correct: correct, CorrectAnswer: q.CorrectLabel()})
}

func (p *wsPlayer) TimeUp(name string) {
	p.emit("timeUp", namedPayload{Name: name})
}

func (p *wsPlayer) TooSlow() {
	p.emit("tooSlow", struct{}{})
}

func (p *wsPlayer) Aborted() {
	p.emit("aborted", struct{}{})
}

func (p *wsPlayer) Summary(report app.Report) {
	p.emit("summary", report)
}

func (p *wsPlayer) Goodbye(name string) {
	p.emit("goodbye", namedPayload{Name: name})
}
