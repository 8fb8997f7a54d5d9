package writers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/helviojunior/brparser/pkg/models"
	"github.com/redis/go-redis/v9"
)

// RedisWriter pushes each extracted document, JSON encoded, onto a Redis
// list so downstream consumers can drain results as they are produced.
type RedisWriter struct {
	Client *redis.Client
	Key    string
}

// NewRedisWriter returns a new Redis list writer
func NewRedisWriter(uri string, key string) (*RedisWriter, error) {
	opt, err := redis.ParseURL(uri)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	if key == "" {
		key = "brparser"
	}

	return &RedisWriter{Client: client, Key: key}, nil
}

// Write the documents of a result to the list
func (rw *RedisWriter) Write(result *models.File) error {
	if len(result.Documents) == 0 {
		return nil
	}

	ctx := context.Background()

	lines := make([]interface{}, 0, len(result.Documents))
	for _, doc := range result.Documents {
		data, err := json.Marshal(&struct {
			File string          `json:"file"`
			Doc  models.Document `json:"document"`
		}{result.FileName, doc})
		if err != nil {
			return err
		}
		lines = append(lines, string(data))
	}

	return rw.Client.RPush(ctx, rw.Key, lines...).Err()
}
