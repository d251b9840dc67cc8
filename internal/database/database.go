package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// --- Variables Globales ---
var (
	Redis     *redis.Client
	DataStore Store
)

// Noms de collections persistées
const (
	CollectionProducts = "products"
	CollectionBlog     = "blog"
)

// ConnectDatabases initialise Redis (si configuré) et le data store
// (fichier JSON par défaut, Redis si STORAGE_DRIVER=redis)
func ConnectDatabases() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	connectRedis(ctx)

	driver := os.Getenv("STORAGE_DRIVER")
	switch driver {
	case "redis":
		if Redis == nil {
			log.Fatal("❌ STORAGE_DRIVER=redis mais REDIS_HOST non configuré")
		}
		DataStore = NewRedisStore(Redis)
		log.Println("✅ Data store Redis actif (clés 'products' / 'blog')")
	case "", "file":
		dir := os.Getenv("DATA_DIR")
		if dir == "" {
			dir = "./data"
		}
		DataStore = NewFileStore(dir)
		log.Println("✅ Data store fichier actif :", dir)
	default:
		log.Fatalf("❌ STORAGE_DRIVER inconnu : %s", driver)
	}
}

// connectRedis est optionnel : sans REDIS_HOST on tourne sans Redis
// (le rate limiting bascule alors sur le compteur en mémoire)
func connectRedis(ctx context.Context) {
	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		log.Println("⚠️ REDIS_HOST non configuré — rate limiting en mémoire")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:         redisHost,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("❌ Erreur connexion Redis:", err)
	}
	Redis = client
	log.Println("✅ Connecté à Redis")
}
