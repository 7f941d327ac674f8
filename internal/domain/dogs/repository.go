package dogs

import (
	"context"
	"errors"
)

// ErrNotFound lo devuelven los adapters cuando el id no existe.
var ErrNotFound = errors.New("dog not found")

type Repository interface {
	Create(ctx context.Context, in CreateInput) (Dog, error)
	List(ctx context.Context) ([]Dog, error)
	GetByID(ctx context.Context, id int64) (Dog, error)
	Update(ctx context.Context, id int64, p Patch) (Dog, error)
	Delete(ctx context.Context, id int64) (Dog, error)
}
