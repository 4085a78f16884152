package todos

import (
	"context"
	"sync"
)

// NewMemory returns an in-process Repo. Ids start at 1 so the backend is
// observably interchangeable with the database-assigned ones.
func NewMemory() Repo {
	return &memoryRepo{
		todos:  make(map[int64]Todo),
		nextID: 1,
	}
}

// memoryRepo serializes every operation through one mutex, same contract
// as users.State.
type memoryRepo struct {
	mu     sync.Mutex
	todos  map[int64]Todo
	nextID int64
}

func (m *memoryRepo) List(ctx context.Context) ([]Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make([]Todo, 0, len(m.todos))
	for _, t := range m.todos {
		all = append(all, t)
	}
	return all, nil
}

func (m *memoryRepo) Get(ctx context.Context, id int64) (Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.todos[id]
	if !ok {
		return Todo{}, ErrNotFound
	}
	return t, nil
}

func (m *memoryRepo) Create(ctx context.Context, spec CreateTodo) (Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t := Todo{
		ID:          m.nextID,
		Title:       spec.Title,
		Description: spec.Description,
		Done:        false,
	}
	m.todos[t.ID] = t
	m.nextID++
	return t, nil
}

func (m *memoryRepo) Update(ctx context.Context, id int64, patch UpdateTodo) (Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.todos[id]
	if !ok {
		return Todo{}, ErrNotFound
	}

	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Done != nil {
		t.Done = *patch.Done
	}
	m.todos[id] = t
	return t, nil
}

func (m *memoryRepo) Delete(ctx context.Context, id int64) (Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.todos[id]
	if !ok {
		return Todo{}, ErrNotFound
	}
	delete(m.todos, id)
	return t, nil
}

func (m *memoryRepo) Close(ctx context.Context) error {
	return nil
}
