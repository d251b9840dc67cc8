package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"solarkits_back_end/internal/database"

	"github.com/gin-gonic/gin"
)

const (
	// Limites par endpoint
	LoginMaxAttempts = 5
	APIMaxRequests   = 100

	// Fenêtres de comptage
	LoginWindow = 15 * time.Minute
	APIWindow   = 15 * time.Minute
)

// counterStore abstrait le comptage fixed-window : Redis quand il est
// connecté, compteur en mémoire sinon (le limiteur ne doit jamais disparaître)
type counterStore interface {
	Get(ctx context.Context, key string) int
	Incr(ctx context.Context, key string, window time.Duration) int
	Reset(ctx context.Context, key string)
}

// --- Compteur Redis ---

type redisCounter struct{}

func (redisCounter) Get(ctx context.Context, key string) int {
	n, _ := database.Redis.Get(ctx, key).Int()
	return n
}

func (redisCounter) Incr(ctx context.Context, key string, window time.Duration) int {
	pipe := database.Redis.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	pipe.Exec(ctx)
	return int(incr.Val())
}

func (redisCounter) Reset(ctx context.Context, key string) {
	database.Redis.Del(ctx, key)
}

// --- Compteur en mémoire (fallback sans Redis) ---

type memoryEntry struct {
	count   int
	expires time.Time
}

type memoryCounter struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
}

var memCounter = &memoryCounter{entries: make(map[string]*memoryEntry)}

func (m *memoryCounter) Get(_ context.Context, key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[key]
	if !ok || time.Now().After(entry.expires) {
		return 0
	}
	return entry.count
}

func (m *memoryCounter) Incr(_ context.Context, key string, window time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[key]
	if !ok || time.Now().After(entry.expires) {
		entry = &memoryEntry{expires: time.Now().Add(window)}
		m.entries[key] = entry
	}
	entry.count++
	return entry.count
}

func (m *memoryCounter) Reset(_ context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

func limiterStore() counterStore {
	if database.Redis != nil {
		return redisCounter{}
	}
	return memCounter
}

// LoginRateLimit limite les tentatives de connexion par IP :
// 5 échecs max par fenêtre de 15 minutes, les connexions réussies
// sont exemptées et remettent le compteur à zéro
func LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		store := limiterStore()
		key := "login_attempts:" + c.ClientIP()

		attempts := store.Get(ctx, key)
		if attempts >= LoginMaxAttempts {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many login attempts, please try again later.",
				"retry_after": int(LoginWindow.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()

		// Échec → on incrémente ; succès → on repart de zéro
		switch c.Writer.Status() {
		case http.StatusUnauthorized:
			store.Incr(ctx, key, LoginWindow)
			remaining := LoginMaxAttempts - attempts - 1
			if remaining > 0 {
				c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
			}
		case http.StatusOK:
			store.Reset(ctx, key)
		}
	}
}

// APIRateLimit limite le nombre de requêtes par IP sur tout /api
// (100 par fenêtre de 15 minutes)
func APIRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		store := limiterStore()
		key := "api_requests:" + c.ClientIP()

		requests := store.Get(ctx, key)
		if requests >= APIMaxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests from this IP, please try again later.",
				"retry_after": int(APIWindow.Seconds()),
			})
			c.Abort()
			return
		}

		store.Incr(ctx, key, APIWindow)

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", APIMaxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", APIMaxRequests-requests-1))

		c.Next()
	}
}
