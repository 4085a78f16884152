package users

import (
	"sync"
)

// State owns the users collection and the id counter. Every operation
// takes the same mutex, so each one is atomic with respect to the rest;
// the lock is released with defer on every path.
type State struct {
	mu     sync.Mutex
	users  map[uint64]User
	nextID uint64
}

func NewState() *State {
	return &State{users: make(map[uint64]User)}
}

// List returns a snapshot of all live users in unspecified order.
func (s *State) List() []User {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]User, 0, len(s.users))
	for _, u := range s.users {
		all = append(all, u)
	}
	return all
}

func (s *State) Get(id uint64) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	return u, ok
}

// Create assigns the next id and inserts the user. Ids are never reused.
func (s *State) Create(proto ProtoUser) User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := User{
		ID:    s.nextID,
		Name:  proto.Name,
		Email: proto.Email,
	}
	s.users[u.ID] = u
	s.nextID++
	return u
}

// Update overwrites only the fields present in the patch; the rest,
// including the id, carry over from the current record.
func (s *State) Update(id uint64, patch UserUpdate) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, false
	}

	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	s.users[id] = u
	return u, true
}

// Delete removes the user and returns the removed record.
func (s *State) Delete(id uint64) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, false
	}
	delete(s.users, id)
	return u, true
}
