package handlers

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"solarkits_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	MaxUploadFiles = 10
	MaxUploadSize  = 5 << 20 // 5 MB par fichier
)

// Extension ET type MIME déclaré doivent figurer dans la liste blanche
var (
	allowedExtensions = map[string]bool{
		".jpeg": true, ".jpg": true, ".png": true,
		".gif": true, ".webp": true, ".avif": true,
	}
	allowedMIMETypes = map[string]bool{
		"image/jpeg": true, "image/jpg": true, "image/png": true,
		"image/gif": true, "image/webp": true, "image/avif": true,
	}
)

func validateImageFile(fh *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return fmt.Errorf("invalid file type: %s", fh.Filename)
	}
	if !allowedMIMETypes[fh.Header.Get("Content-Type")] {
		return fmt.Errorf("invalid file type: %s", fh.Filename)
	}
	if fh.Size > MaxUploadSize {
		return fmt.Errorf("file too large: %s (max 5MB)", fh.Filename)
	}
	return nil
}

//
// =========================
// 🟢 UPLOAD IMAGES PRODUITS
// =========================
//

// UploadImages accepte jusqu'à 10 images en multipart (clé "images").
// Un seul fichier invalide rejette tout le lot : rien n'est stocké
// tant que la validation complète n'est pas passée.
func UploadImages(c *gin.Context) {
	ctx := context.Background()

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data"})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
		return
	}
	if len(files) > MaxUploadFiles {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Too many files (max %d)", MaxUploadFiles)})
		return
	}

	// Validation du lot complet avant le moindre stockage
	for _, fh := range files {
		if err := validateImageFile(fh); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	uploadedURLs := []string{}

	for _, fh := range files {
		file, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
			return
		}

		// Nom unique : timestamp + suffixe aléatoire, extension d'origine conservée
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		name := fmt.Sprintf("%d-%s%s", time.Now().UnixNano(), uuid.NewString()[:8], ext)

		url, err := services.SaveUpload(ctx, name, file, fh.Size, fh.Header.Get("Content-Type"))
		file.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
			return
		}

		uploadedURLs = append(uploadedURLs, url)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "files": uploadedURLs})
}

//
// =========================
// 🔴 SUPPRIMER UNE IMAGE
// =========================
//

func DeleteImage(c *gin.Context) {
	ctx := context.Background()

	// Base() neutralise toute tentative de traversée de chemin
	filename := filepath.Base(c.Param("filename"))

	err := services.RemoveUpload(ctx, filename)
	if os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Image deleted"})
}
