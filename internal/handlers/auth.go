package handlers

import (
	"crypto/subtle"
	"net/http"
	"os"

	"solarkits_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// checkAdminPassword compare le mot de passe soumis au secret configuré.
// ADMIN_PASSWORD_HASH (bcrypt) prime sur ADMIN_PASSWORD ; sans secret
// configuré, toute connexion échoue.
func checkAdminPassword(password string) bool {
	if hash := os.Getenv("ADMIN_PASSWORD_HASH"); hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}

	secret := os.Getenv("ADMIN_PASSWORD")
	if secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(secret)) == 1
}

func Login(c *gin.Context) {
	var input struct {
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password is required"})
		return
	}

	if !checkAdminPassword(input.Password) {
		// Message volontairement générique : on ne dit pas quel contrôle a échoué
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	session, _ := middleware.SessionStore.Get(c.Request, middleware.SessionName)
	session.Values["authenticated"] = true
	if err := session.Save(c.Request, c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Login successful"})
}

// Logout invalide le cookie de session côté client. Idempotent.
func Logout(c *gin.Context) {
	session, _ := middleware.SessionStore.Get(c.Request, middleware.SessionName)
	session.Values["authenticated"] = false
	session.Options.MaxAge = -1
	session.Save(c.Request, c.Writer)

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
}

// CheckAuth est une sonde non bloquante : jamais d'erreur, juste l'état
func CheckAuth(c *gin.Context) {
	session, _ := middleware.SessionStore.Get(c.Request, middleware.SessionName)
	authenticated, _ := session.Values["authenticated"].(bool)

	c.JSON(http.StatusOK, gin.H{"authenticated": authenticated})
}
