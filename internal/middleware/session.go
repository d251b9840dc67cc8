package middleware

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const SessionName = "solarkits_admin"

var SessionStore *sessions.CookieStore

// InitSessionStore configure le cookie de session admin.
// Le cookie vaut 24h, httpOnly, SameSite Lax, Secure en production.
func InitSessionStore() {
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Fatal("❌ SESSION_SECRET manquant dans .env")
	}

	store := sessions.NewCookieStore([]byte(sessionSecret))
	store.MaxAge(86400)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400, // 24 heures
		HttpOnly: true,
		Secure:   os.Getenv("APP_ENV") == "production",
		SameSite: http.SameSiteLaxMode,
	}

	SessionStore = store
	log.Println("✅ Session store initialisé")
}

// AuthRequired protège les routes admin : session valide ou 401,
// sans jamais exécuter le handler protégé
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := SessionStore.Get(c.Request, SessionName)

		authenticated, ok := session.Values["authenticated"].(bool)
		if !ok || !authenticated {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Next()
	}
}
