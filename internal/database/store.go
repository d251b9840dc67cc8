package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
)

// Store lit et remplace des documents de collection entiers.
// Read renvoie (nil, nil) quand la collection n'existe pas encore.
type Store interface {
	Read(ctx context.Context, collection string) ([]byte, error)
	Write(ctx context.Context, collection string, data []byte) error
}

// =============================================
// BACKEND FICHIER (data/products.json, data/blog.json)
// =============================================

type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

func (s *FileStore) Read(_ context.Context, collection string) ([]byte, error) {
	data, err := os.ReadFile(s.path(collection))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lecture %s: %w", collection, err)
	}
	return data, nil
}

// Write passe par un fichier temporaire + rename pour ne jamais
// laisser un JSON tronqué sur disque
func (s *FileStore) Write(_ context.Context, collection string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("écriture %s: %w", collection, err)
	}
	tmp, err := os.CreateTemp(s.dir, collection+"-*.tmp")
	if err != nil {
		return fmt.Errorf("écriture %s: %w", collection, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("écriture %s: %w", collection, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("écriture %s: %w", collection, err)
	}
	if err := os.Rename(tmp.Name(), s.path(collection)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("écriture %s: %w", collection, err)
	}
	return nil
}

// =============================================
// BACKEND REDIS (clés "products" / "blog")
// =============================================

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Read(ctx context.Context, collection string) ([]byte, error) {
	data, err := s.client.Get(ctx, collection).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lecture %s: %w", collection, err)
	}
	return data, nil
}

func (s *RedisStore) Write(ctx context.Context, collection string, data []byte) error {
	if err := s.client.Set(ctx, collection, data, 0).Err(); err != nil {
		return fmt.Errorf("écriture %s: %w", collection, err)
	}
	return nil
}
