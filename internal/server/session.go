package server

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ironsheep/image-redact-mcp/internal/redact"
)

// session is an open photo with its regions, kept between tool calls so the
// user can toggle regions and re-render.
type session struct {
	mu     sync.Mutex
	id     string
	path   string
	engine *redact.Engine
}

func (s *Server) openSession(path string, engine *redact.Engine) *session {
	sess := &session{
		id:     uuid.NewString(),
		path:   path,
		engine: engine,
	}
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	return sess
}

func (s *Server) session(id string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("unknown session: %q", id)
	}
	return sess, nil
}

// closeSession forgets the session and evicts its photo from the image cache
// unless another session still uses it.
func (s *Server) closeSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return fmt.Errorf("unknown session: %q", id)
	}
	delete(s.sessions, id)
	for _, other := range s.sessions {
		if other.path == sess.path {
			return nil
		}
	}
	s.cache.Evict(sess.path)
	return nil
}

func (s *Server) sessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
