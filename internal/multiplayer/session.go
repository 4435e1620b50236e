package multiplayer

import "sync"

// SessionHandle is the transport-neutral interface for communicating with a session.
type SessionHandle interface {
	// ID returns the unique session identifier.
	ID() SessionID

	// Send delivers an event to the session. Must not block.
	Send(evt SessionEvent)

	// Done returns a channel that closes when the session ends.
	Done() <-chan struct{}
}

// ChannelSession is a SessionHandle backed by a buffered channel.
type ChannelSession struct {
	id       SessionID
	events   chan SessionEvent
	done     chan struct{}
	doneOnce sync.Once
	sendMu   sync.Mutex
}

// NewChannelSession creates a channel-backed session.
// eventBufferSize controls how many events can be buffered before dropping.
func NewChannelSession(id SessionID, eventBufferSize int) *ChannelSession {
	if eventBufferSize < 1 {
		eventBufferSize = 64
	}
	return &ChannelSession{
		id:     id,
		events: make(chan SessionEvent, eventBufferSize),
		done:   make(chan struct{}),
	}
}

// ID returns the session identifier.
func (s *ChannelSession) ID() SessionID {
	return s.id
}

// Send queues an event. When the buffer is full the oldest payload is
// dropped; snapshots supersede each other, so only the newest one matters.
// Status events are evicted only when nothing else is queued.
func (s *ChannelSession) Send(evt SessionEvent) {
	select {
	case <-s.done:
		return
	default:
	}

	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	select {
	case s.events <- evt:
		return
	default:
	}
	s.evictOne()
	select {
	case s.events <- evt:
	default:
	}
}

// evictOne removes the oldest queued payload, or the oldest event when only
// status events are queued. Must be called with sendMu held.
func (s *ChannelSession) evictOne() {
	queued := make([]SessionEvent, 0, cap(s.events))
drain:
	for {
		select {
		case e := <-s.events:
			queued = append(queued, e)
		default:
			break drain
		}
	}

	victim := 0
	for i, e := range queued {
		if _, ok := e.(StatusEvent); !ok {
			victim = i
			break
		}
	}
	if len(queued) > 0 {
		queued = append(queued[:victim], queued[victim+1:]...)
	}
	for _, e := range queued {
		select {
		case s.events <- e:
		default:
		}
	}
}

// Events returns the channel to receive events from.
func (s *ChannelSession) Events() <-chan SessionEvent {
	return s.events
}

// Done returns the done channel.
func (s *ChannelSession) Done() <-chan struct{} {
	return s.done
}

// Close marks the session as done. Safe to call multiple times.
func (s *ChannelSession) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

// SessionRegistry tracks live sessions. Safe for concurrent use.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[SessionID]SessionHandle
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[SessionID]SessionHandle),
	}
}

// Register adds a session to the registry.
func (r *SessionRegistry) Register(session SessionHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID()] = session
}

// Unregister removes a session from the registry.
func (r *SessionRegistry) Unregister(id SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Get retrieves a session by ID.
func (r *SessionRegistry) Get(id SessionID) (SessionHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Count returns the number of registered sessions.
func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
