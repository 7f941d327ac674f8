package memory

import (
	"context"
	"sync"
	"testing"

	"dogs-api/internal/domain/dogs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDogsRepo_CRUD(t *testing.T) {
	repo := NewDogsRepo()
	ctx := context.Background()

	rex, err := repo.Create(ctx, dogs.CreateInput{Name: "Rex", Breed: "Lab", Age: 3, Description: "friendly"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rex.ID)

	got, err := repo.GetByID(ctx, rex.ID)
	require.NoError(t, err)
	assert.Equal(t, rex, got)

	name := "Max"
	updated, err := repo.Update(ctx, rex.ID, dogs.Patch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Max", updated.Name)
	assert.Equal(t, rex.Breed, updated.Breed)

	deleted, err := repo.Delete(ctx, rex.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, deleted)

	_, err = repo.GetByID(ctx, rex.ID)
	assert.ErrorIs(t, err, dogs.ErrNotFound)
	_, err = repo.Delete(ctx, rex.ID)
	assert.ErrorIs(t, err, dogs.ErrNotFound)
	_, err = repo.Update(ctx, rex.ID, dogs.Patch{Name: &name})
	assert.ErrorIs(t, err, dogs.ErrNotFound)
}

func TestDogsRepo_IDsNotReused(t *testing.T) {
	repo := NewDogsRepo()
	ctx := context.Background()

	a, _ := repo.Create(ctx, dogs.CreateInput{Name: "a"})
	_, _ = repo.Delete(ctx, a.ID)
	b, _ := repo.Create(ctx, dogs.CreateInput{Name: "b"})

	assert.Greater(t, b.ID, a.ID)
}

func TestDogsRepo_ListAscendingUnderConcurrency(t *testing.T) {
	repo := NewDogsRepo()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Create(ctx, dogs.CreateInput{Name: "dog"})
		}()
	}
	wg.Wait()

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 50)
	for i := range items {
		assert.Equal(t, int64(i+1), items[i].ID)
	}
}
