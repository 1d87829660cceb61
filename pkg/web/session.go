package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/xid"

	"github.com/mscrnt/gpu_memory_compare/pkg/memtype"
	"github.com/mscrnt/gpu_memory_compare/pkg/view"
)

const writeWait = 10 * time.Second

// Command is a message sent by the browser
type Command struct {
	Op     string `json:"op"` // toggle, metric or all
	Name   string `json:"name,omitempty"`
	Metric string `json:"metric,omitempty"`
}

// Message is pushed to the browser
type Message struct {
	Type  string      `json:"type"` // state or error
	State *view.State `json:"state,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Apply runs a command against v
func (c Command) Apply(v *view.View) error {
	switch c.Op {
	case "toggle":
		return v.Toggle(c.Name)
	case "metric":
		m, err := memtype.ParseMetric(c.Metric)
		if err != nil {
			return err
		}
		v.SetMetric(m)
		return nil
	case "all":
		v.SelectAll()
		return nil
	default:
		return fmt.Errorf("unknown op %q", c.Op)
	}
}

// latest holds at most one pending state, the newest seen
type latest struct {
	ch chan view.State
}

func newLatest() *latest {
	return &latest{ch: make(chan view.State, 1)}
}

func (l *latest) put(st view.State) {
	for {
		select {
		case l.ch <- st:
			return
		default:
		}
		select {
		case old := <-l.ch:
			if old.Version > st.Version {
				st = old
			}
		default:
		}
	}
}

// sessionHandler owns one view per websocket connection. The view is mounted
// for as long as the connection stays open.
func (s *Server) sessionHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("websocket upgrade failed: %v", err)
		return
	}
	id := xid.New().String()
	s.logger.Printf("session %s opened from %s", id, r.RemoteAddr)
	start := time.Now()

	v := view.New()
	pending := newLatest()
	errs := make(chan string, 8)
	unsubscribe := v.Subscribe(pending.put)
	v.Mount(view.NewTickerScheduler())

	defer func() {
		v.Unmount()
		unsubscribe()
		_ = conn.Close()
		s.logger.Printf("session %s closed after %s", id, time.Since(start).Round(time.Millisecond))
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var cmd Command
			if err := conn.ReadJSON(&cmd); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					s.logger.Printf("session %s read error: %v", id, err)
				}
				return
			}
			if err := cmd.Apply(v); err != nil {
				select {
				case errs <- err.Error():
				default:
				}
			}
		}
	}()

	// initial snapshot so the page renders before the first tick
	pending.put(v.State())

	var lastVersion uint64
	sent := false
	for {
		select {
		case <-done:
			return
		case msg := <-errs:
			if err := s.write(conn, Message{Type: "error", Error: msg}); err != nil {
				return
			}
		case st := <-pending.ch:
			if sent && st.Version <= lastVersion {
				continue
			}
			if err := s.write(conn, Message{Type: "state", State: &st}); err != nil {
				return
			}
			lastVersion, sent = st.Version, true
		}
	}
}

func (s *Server) write(conn *websocket.Conn, msg Message) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}
