package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"vet-clinic/internal/platform/flash"
	"vet-clinic/internal/ports/session"
)

type entry struct {
	data    session.Data
	expires time.Time
}

type store struct {
	mu   sync.Mutex
	byID map[string]entry
	now  func() time.Time
}

func NewStore() session.Store {
	return newStore(time.Now)
}

func newStore(now func() time.Time) *store {
	return &store{
		byID: make(map[string]entry),
		now:  now,
	}
}

func (s *store) Load(ctx context.Context, id string) (session.Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id = strings.TrimSpace(id)
	e, ok := s.byID[id]
	if !ok {
		return session.Data{}, session.ErrNotFound
	}
	if !e.expires.IsZero() && !s.now().Before(e.expires) {
		delete(s.byID, id)
		return session.Data{}, session.ErrNotFound
	}
	return copyData(e.data), nil
}

func (s *store) Save(ctx context.Context, id string, data session.Data, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exp time.Time
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.byID[id] = entry{data: copyData(data), expires: exp}
	return nil
}

func (s *store) Destroy(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.byID, id)
	return nil
}

func copyData(d session.Data) session.Data {
	if len(d.Flashes) > 0 {
		d.Flashes = append([]flash.Notice(nil), d.Flashes...)
	}
	return d
}
