package pvec

import (
	"github.com/google/uuid"
)

// Session is the owner token of a transient. A transient may only be used
// with the session it was derived with; sessions compare by identity.
//
// A Session is not bound to a goroutine. Handing a session to another
// goroutine hands over the right to mutate its transients.
type Session struct {
	id      uuid.UUID
	logger  *Logger
	metrics MetricsCollector
}

// NewSession creates a session with a fresh identity.
func NewSession(optFns ...Option) *Session {
	o := applyOptions(optFns)

	id := o.sessionID
	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Session{
		id:      id,
		logger:  o.logger.WithSession(id),
		metrics: o.metricsCollector,
	}
}

// ID returns the session identity. A nil session has the nil UUID.
func (s *Session) ID() uuid.UUID {
	if s == nil {
		return uuid.Nil
	}
	return s.id
}

func (s *Session) String() string {
	return s.ID().String()
}
