package memory

import (
	"context"
	"strings"

	"vet-clinic/internal/domain/records"
	"vet-clinic/internal/domain/users"
)

type userRepo struct {
	s *Store
}

func (s *Store) Users() users.Repository {
	return &userRepo{s: s}
}

func (r *userRepo) List(ctx context.Context) ([]users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]users.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return users.User{}, records.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	username = strings.TrimSpace(username)
	for _, u := range r.s.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return users.User{}, records.ErrNotFound
}

func (r *userRepo) Create(ctx context.Context, u users.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errIDRequired
	}
	for _, other := range r.s.users {
		if other.ID == u.ID {
			return &records.ConflictError{Field: "id"}
		}
		if strings.EqualFold(other.Username, u.Username) {
			return &records.ConflictError{Field: "username"}
		}
	}
	r.s.users[u.ID] = u
	return nil
}

func (r *userRepo) Update(ctx context.Context, u users.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.users[u.ID]
	if !ok {
		return records.ErrNotFound
	}
	// el username es inmutable
	u.Username = current.Username
	r.s.users[u.ID] = u
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return records.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}
