package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"dogs-api/internal/domain/dogs"
	"dogs-api/internal/platform/logger"

	"github.com/redis/go-redis/v9"
)

const (
	keyGen    = "dogs:gen"
	keyPrefix = "dogs:g"
)

// DogsRepo es un read-through cache delante de otro dogs.Repository.
// Cachea el listado y los lookups por id bajo la generación actual (dogs:gen);
// cada escritura incrementa la generación, así una lectura que llenó el cache con
// datos viejos en paralelo a un update escribe en una generación que ya nadie lee.
// Un fallo de Redis nunca rompe la operación: se registra y se va al store.
type DogsRepo struct {
	rdb  *redis.Client
	ttl  time.Duration
	next dogs.Repository
	log  logger.Logger
}

var _ dogs.Repository = (*DogsRepo)(nil)

func NewDogsRepo(rdb *redis.Client, ttl time.Duration, next dogs.Repository, log logger.Logger) *DogsRepo {
	if log == nil {
		log = logger.Nop()
	}
	return &DogsRepo{
		rdb:  rdb,
		ttl:  ttl,
		next: next,
		log:  log.With(map[string]any{"component": "dogs_cache"}),
	}
}

func (c *DogsRepo) Create(ctx context.Context, in dogs.CreateInput) (dogs.Dog, error) {
	d, err := c.next.Create(ctx, in)
	if err != nil {
		return dogs.Dog{}, err
	}
	c.bump(ctx)
	return d, nil
}

func (c *DogsRepo) List(ctx context.Context) ([]dogs.Dog, error) {
	gen, ok := c.generation(ctx)
	if !ok {
		return c.next.List(ctx)
	}

	var cached []dogs.Dog
	if c.get(ctx, listKey(gen), &cached) {
		return cached, nil
	}

	items, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, listKey(gen), items)
	return items, nil
}

func (c *DogsRepo) GetByID(ctx context.Context, id int64) (dogs.Dog, error) {
	gen, ok := c.generation(ctx)
	if !ok {
		return c.next.GetByID(ctx, id)
	}

	var cached dogs.Dog
	if c.get(ctx, idKey(gen, id), &cached) {
		return cached, nil
	}

	d, err := c.next.GetByID(ctx, id)
	if err != nil {
		return dogs.Dog{}, err
	}
	c.set(ctx, idKey(gen, id), d)
	return d, nil
}

func (c *DogsRepo) Update(ctx context.Context, id int64, p dogs.Patch) (dogs.Dog, error) {
	d, err := c.next.Update(ctx, id, p)
	if err != nil {
		return dogs.Dog{}, err
	}
	c.bump(ctx)
	return d, nil
}

func (c *DogsRepo) Delete(ctx context.Context, id int64) (dogs.Dog, error) {
	d, err := c.next.Delete(ctx, id)
	if err != nil && !errors.Is(err, dogs.ErrNotFound) {
		return dogs.Dog{}, err
	}
	c.bump(ctx)
	return d, err
}

// Ping para el readiness check.
func (c *DogsRepo) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// generation se lee antes de ir al store. Sin Redis no se cachea nada.
func (c *DogsRepo) generation(ctx context.Context) (int64, bool) {
	gen, err := c.rdb.Get(ctx, keyGen).Int64()
	if err == redis.Nil {
		return 0, true
	}
	if err != nil {
		c.log.Warn("cache generation read failed", map[string]any{"error": err})
		return 0, false
	}
	return gen, true
}

// bump invalida todo lo cacheado pasando a la generación siguiente.
// Las claves viejas expiran solas por TTL.
func (c *DogsRepo) bump(ctx context.Context) {
	if err := c.rdb.Incr(ctx, keyGen).Err(); err != nil {
		c.log.Warn("cache invalidate failed", map[string]any{"error": err})
	}
}

func (c *DogsRepo) get(ctx context.Context, key string, dst any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.log.Warn("cache get failed", map[string]any{"key": key, "error": err})
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		c.log.Warn("cache entry corrupt", map[string]any{"key": key, "error": err})
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

func (c *DogsRepo) set(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		c.log.Warn("cache set failed", map[string]any{"key": key, "error": err})
	}
}

func listKey(gen int64) string {
	return keyPrefix + strconv.FormatInt(gen, 10) + ":list"
}

func idKey(gen, id int64) string {
	return keyPrefix + strconv.FormatInt(gen, 10) + ":id:" + strconv.FormatInt(id, 10)
}
