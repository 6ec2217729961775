// Package memory is an in-process store driver. It enforces the same unique
// constraints as the relational schema and backs local runs and tests.
package memory

import (
	"sync"
	"time"
)

// Store holds every table behind a single lock.
type Store struct {
	mu    sync.RWMutex
	now   func() time.Time
	users *userTable
	posts *postTable
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		now:   time.Now,
		users: newUserTable(),
		posts: newPostTable(),
	}
}

// tick returns a strictly increasing timestamp so creation order is stable
// even when the clock resolution is coarse. Callers hold mu.
func (s *Store) tick(last time.Time) time.Time {
	t := s.now().UTC()
	if !t.After(last) {
		t = last.Add(time.Microsecond)
	}

	return t
}
