package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/keggview/internal/session"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleEvents streams session events to the page. The current selection is
// sent first so a fresh page starts in sync.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade", "component", "server", "error", err)
		return
	}
	defer conn.Close()

	events, unsubscribe := s.sess.Subscribe()
	defer unsubscribe()

	// The page never sends anything; reading only detects the close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					slog.Debug("websocket read", "component", "server", "error", err)
				}
				return
			}
		}
	}()

	snap := s.sess.Selection()
	if !s.send(conn, session.Event{Type: session.EventSelection, Selection: &snap}) {
		return
	}

	for {
		select {
		case <-closed:
			return
		case ev, ok := <-events:
			if !ok || !s.send(conn, ev) {
				return
			}
		}
	}
}

func (s *Server) send(conn *websocket.Conn, ev session.Event) bool {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(ev); err != nil {
		slog.Debug("websocket write", "component", "server", "error", err)
		return false
	}
	return true
}
