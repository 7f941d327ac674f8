package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dogs-api/internal/domain/dogs"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

const returningDog = "RETURNING id, name, breed, age, description"

var dogColumns = []string{"id", "name", "breed", "age", "description"}

// psql usa placeholders $1, $2... como espera pgx.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type DogsRepo struct {
	db *sqlx.DB
}

var _ dogs.Repository = (*DogsRepo)(nil)

func NewDogsRepo(db *sql.DB) *DogsRepo {
	return &DogsRepo{db: sqlx.NewDb(db, "pgx")}
}

func (r *DogsRepo) Create(ctx context.Context, in dogs.CreateInput) (dogs.Dog, error) {
	q := psql.Insert("dogs").
		Columns("name", "breed", "age", "description").
		Values(in.Name, in.Breed, in.Age, in.Description).
		Suffix(returningDog)

	return r.getOne(ctx, "create dog", q)
}

func (r *DogsRepo) List(ctx context.Context) ([]dogs.Dog, error) {
	query, args, err := psql.Select(dogColumns...).
		From("dogs").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	out := make([]dogs.Dog, 0)
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list dogs: %w", err)
	}
	return out, nil
}

func (r *DogsRepo) GetByID(ctx context.Context, id int64) (dogs.Dog, error) {
	q := psql.Select(dogColumns...).
		From("dogs").
		Where(sq.Eq{"id": id})

	return r.getOne(ctx, "get dog", q)
}

func (r *DogsRepo) Update(ctx context.Context, id int64, p dogs.Patch) (dogs.Dog, error) {
	set := patchColumns(p)
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	q := psql.Update("dogs").
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix(returningDog)

	return r.getOne(ctx, "update dog", q)
}

func (r *DogsRepo) Delete(ctx context.Context, id int64) (dogs.Dog, error) {
	q := psql.Delete("dogs").
		Where(sq.Eq{"id": id}).
		Suffix(returningDog)

	return r.getOne(ctx, "delete dog", q)
}

// Ping para el readiness check.
func (r *DogsRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *DogsRepo) getOne(ctx context.Context, op string, q sq.Sqlizer) (dogs.Dog, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return dogs.Dog{}, err
	}

	var d dogs.Dog
	if err := r.db.GetContext(ctx, &d, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dogs.Dog{}, dogs.ErrNotFound
		}
		return dogs.Dog{}, fmt.Errorf("%s: %w", op, err)
	}
	return d, nil
}

func patchColumns(p dogs.Patch) map[string]any {
	set := map[string]any{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Breed != nil {
		set["breed"] = *p.Breed
	}
	if p.Age != nil {
		set["age"] = *p.Age
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	return set
}
