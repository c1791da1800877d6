package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/websocket"

	"github.com/san-kum/glassbrain/internal/brain"
)

// Decode-error tolerance and reconnect pacing for the network source.
const (
	wsMaxDecodeErrors = 8
	wsBackoffFloor    = time.Second
	wsBackoffCeil     = 30 * time.Second
)

// WS streams telemetry from the backend socket. Connection loss never
// surfaces to the frame loop: the source backs off, redials, and keeps
// publishing whatever arrives. Sporadic garbage frames are tolerated up
// to a cap per connection before forcing a redial.
type WS struct {
	url    string
	origin string

	mu   sync.Mutex
	conn *websocket.Conn
}

func NewWS(url string) *WS {
	return &WS{url: url, origin: originFor(url)}
}

func (w *WS) Name() string { return "ws" }

// Run dials and reads until the context ends.
func (w *WS) Run(ctx context.Context, h *Holder) error {
	backoff := wsBackoffFloor
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		conn, err := websocket.Dial(w.url, "", w.origin)
		if err != nil {
			fmt.Printf("feed: ws dial %s failed, retry in %s: %v\n", w.url, backoff, err)
			if !sleepCtx(ctx, backoff) {
				return ctx.Err()
			}
			if backoff *= 2; backoff > wsBackoffCeil {
				backoff = wsBackoffCeil
			}
			continue
		}
		backoff = wsBackoffFloor

		w.setConn(conn)
		err = w.readLoop(ctx, conn, h)
		w.setConn(nil)
		conn.Close()

		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Printf("feed: ws connection lost: %v\n", err)
	}
}

// readLoop decodes messages until the connection dies or garbage
// exceeds the per-connection budget.
func (w *WS) readLoop(ctx context.Context, conn *websocket.Conn, h *Holder) error {
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	dec := json.NewDecoder(conn)
	decodeErrors := 0
	for {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}

		snap, err := brain.Decode(raw)
		if err != nil {
			decodeErrors++
			if decodeErrors > wsMaxDecodeErrors {
				return fmt.Errorf("too many bad packets: %w", &brain.SourceError{Source: "ws", Wrapped: err})
			}
			continue
		}
		h.Publish(snap)
	}
}

// Send pushes a stimulus command to the backend. Fails when the socket
// is down; the caller surfaces that in its own status line.
func (w *WS) Send(s brain.Stimulus) error {
	w.mu.Lock()
	conn := w.conn
	w.mu.Unlock()
	if conn == nil {
		return &brain.SourceError{Source: "ws", Wrapped: fmt.Errorf("not connected")}
	}
	return websocket.JSON.Send(conn, map[string]brain.Stimulus{"Stimulus": s})
}

func (w *WS) setConn(conn *websocket.Conn) {
	w.mu.Lock()
	w.conn = conn
	w.mu.Unlock()
}

// originFor derives the handshake origin from the socket url.
func originFor(url string) string {
	switch {
	case strings.HasPrefix(url, "wss://"):
		return "https://" + strings.TrimPrefix(url, "wss://")
	case strings.HasPrefix(url, "ws://"):
		return "http://" + strings.TrimPrefix(url, "ws://")
	default:
		return "http://localhost"
	}
}

// sleepCtx waits d unless the context ends first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
