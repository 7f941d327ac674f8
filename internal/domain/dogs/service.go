package dogs

import (
	"context"
	"errors"
)

// ErrInvalidInput marca datos que el store no puede aceptar (tipo incorrecto en un campo conocido).
var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Dog, error) {
	return s.repo.Create(ctx, in)
}

// List devuelve todos los perros ordenados por id ascendente; nunca nil.
func (s *Service) List(ctx context.Context) ([]Dog, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Dog{}
	}
	return items, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Dog, error) {
	return s.repo.GetByID(ctx, id)
}

// Update aplica el patch. Sin campos no hay nada que escribir: se devuelve el registro actual.
func (s *Service) Update(ctx context.Context, id int64, p Patch) (Dog, error) {
	if p.IsEmpty() {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.Update(ctx, id, p)
}

// Delete devuelve el contenido previo del registro borrado.
func (s *Service) Delete(ctx context.Context, id int64) (Dog, error) {
	return s.repo.Delete(ctx, id)
}
