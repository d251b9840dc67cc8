package main

import (
	"context"
	"log"
	"os"
	"time"

	"solarkits_back_end/internal/config"
	"solarkits_back_end/internal/database"
	"solarkits_back_end/internal/middleware"
	"solarkits_back_end/internal/routes"
	"solarkits_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()

	if os.Getenv("ADMIN_PASSWORD") == "" && os.Getenv("ADMIN_PASSWORD_HASH") == "" {
		log.Println("⚠️ Aucun mot de passe admin configuré — toutes les connexions échoueront")
	}

	database.ConnectDatabases()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	services.ConnectMinio(ctx)
	cancel()

	middleware.InitSessionStore()

	r := gin.Default()
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf(`
╔═══════════════════════════════════════════╗
║   🌞 SolarKits Backend                    ║
╠═══════════════════════════════════════════╣
║   Serveur lancé sur le port %s          ║
║   API: http://localhost:%s/api          ║
╚═══════════════════════════════════════════╝
`, port, port)

	r.Run(":" + port)
}
