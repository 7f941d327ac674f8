package memory

import (
	"context"
	"sort"
	"sync"

	"dogs-api/internal/domain/dogs"
)

type dogsRepo struct {
	mu     sync.RWMutex
	lastID int64
	byID   map[int64]dogs.Dog
}

// NewDogsRepo es el store en memoria, usado cuando no hay DSN de Postgres.
// Los ids arrancan en 1 y no se reutilizan.
func NewDogsRepo() dogs.Repository {
	return &dogsRepo{
		byID: make(map[int64]dogs.Dog),
	}
}

func (r *dogsRepo) Create(ctx context.Context, in dogs.CreateInput) (dogs.Dog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	d := dogs.Dog{
		ID:          r.lastID,
		Name:        in.Name,
		Breed:       in.Breed,
		Age:         in.Age,
		Description: in.Description,
	}
	r.byID[d.ID] = d
	return d, nil
}

func (r *dogsRepo) List(ctx context.Context) ([]dogs.Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dogs.Dog, 0, len(r.byID))
	for _, d := range r.byID {
		out = append(out, d)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (r *dogsRepo) GetByID(ctx context.Context, id int64) (dogs.Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	return d, nil
}

func (r *dogsRepo) Update(ctx context.Context, id int64, p dogs.Patch) (dogs.Dog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[id]
	if !ok {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	updated := p.Apply(current)
	r.byID[id] = updated
	return updated, nil
}

func (r *dogsRepo) Delete(ctx context.Context, id int64) (dogs.Dog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.byID[id]
	if !ok {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	delete(r.byID, id)
	return d, nil
}
