package session

import "log/slog"

// Level is the severity of a Notice.
type Level string

const (
	Info    Level = "info"
	Warning Level = "warning"
	Error   Level = "error"
)

// Notice is a transient message for the user.
type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// EventType tags an Event.
type EventType string

const (
	EventSelection EventType = "selection"
	EventNotice    EventType = "notice"
	EventReload    EventType = "reload"
)

// Event is published to subscribers after every state change.
type Event struct {
	Type      EventType `json:"type"`
	Selection *Snapshot `json:"selection,omitempty"`
	Notice    *Notice   `json:"notice,omitempty"`
}

const subscriberBuffer = 16

// Subscribe returns a channel of events and a function that unsubscribes and
// closes it. Slow subscribers miss events rather than block the session.
func (s *Session) Subscribe() (<-chan Event, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan Event, subscriberBuffer)
	s.subs[id] = ch
	return ch, func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
}

func (s *Session) publish(ev Event) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (s *Session) notify(level Level, msg string) {
	switch level {
	case Error:
		slog.Warn(msg, "component", "session")
	default:
		slog.Debug(msg, "component", "session", "level", string(level))
	}
	s.publish(Event{Type: EventNotice, Notice: &Notice{Level: level, Message: msg}})
}
