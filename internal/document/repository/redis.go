package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gogotex/docstore/internal/document"
	"github.com/redis/go-redis/v9"
)

const saveRetries = 3

// RedisRepo implements Repository on Redis. Each document is stored as JSON
// under "<prefix>doc:<id>"; the set "<prefix>ids" lists every stored id.
type RedisRepo struct {
	client *redis.Client
	prefix string
}

// NewRedisRepo creates a Redis-backed document repository. Prefix may be empty.
func NewRedisRepo(client *redis.Client, prefix string) *RedisRepo {
	if prefix == "" {
		prefix = "docstore:"
	}
	return &RedisRepo{client: client, prefix: prefix}
}

func (r *RedisRepo) key(id string) string { return r.prefix + "doc:" + id }

func (r *RedisRepo) idsKey() string { return r.prefix + "ids" }

// Save runs the read-modify-write under WATCH so a concurrent first insert
// of the same id cannot replace the created time.
func (r *RedisRepo) Save(ctx context.Context, doc *document.Document) (*document.Document, error) {
	if doc == nil {
		return nil, ErrInvalidDocument
	}
	if doc.ID == "" {
		doc.ID = newID()
	}
	key := r.key(doc.ID)
	callerCreated := doc.Created

	txf := func(tx *redis.Tx) error {
		existing, err := decode(tx.Get(ctx, key).Bytes())
		if err != nil {
			return err
		}
		switch {
		case existing != nil:
			doc.Created = existing.Created
		case callerCreated.IsZero():
			doc.Created = time.Now().UTC()
		default:
			doc.Created = callerCreated
		}
		b, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, b, 0)
			p.SAdd(ctx, r.idsKey(), doc.ID)
			return nil
		})
		return err
	}

	var err error
	for i := 0; i < saveRetries; i++ {
		err = r.client.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("redis save %s: %w", doc.ID, err)
	}
	return doc.Clone(), nil
}

func (r *RedisRepo) Search(ctx context.Context, req document.SearchRequest) ([]*document.Document, error) {
	ids, err := r.client.SMembers(ctx, r.idsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list ids: %w", err)
	}
	if len(ids) == 0 {
		return []*document.Document{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis load documents: %w", err)
	}
	docs := make([]*document.Document, 0, len(vals))
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			// listed id without a value
			continue
		}
		var d document.Document
		if err := json.Unmarshal([]byte(s), &d); err != nil {
			return nil, fmt.Errorf("redis decode document: %w", err)
		}
		docs = append(docs, &d)
	}
	return document.Filter(docs, req), nil
}

func (r *RedisRepo) FindByID(ctx context.Context, id string) (*document.Document, error) {
	d, err := decode(r.client.Get(ctx, r.key(id)).Bytes())
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", id, err)
	}
	return d, nil
}

func (r *RedisRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func decode(b []byte, err error) (*document.Document, error) {
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var d document.Document
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
