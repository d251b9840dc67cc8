package handlers

import (
	"context"
	"net/http"

	"solarkits_back_end/internal/database"

	"github.com/gin-gonic/gin"
)

// Projections publiques du storefront : mêmes données que l'admin,
// aucune session requise, lecture seule

func PublicProducts(c *gin.Context) {
	doc, err := database.ReadProducts(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read products"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

func PublicBlogPosts(c *gin.Context) {
	doc, err := database.ReadBlogPosts(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read blog posts"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// PublicBlogPost cherche par id d'abord, puis par slug
func PublicBlogPost(c *gin.Context) {
	doc, err := database.ReadBlogPosts(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read blog posts"})
		return
	}

	idOrSlug := c.Param("id")
	for _, post := range doc.Posts {
		if post.ID == idOrSlug {
			c.JSON(http.StatusOK, post)
			return
		}
	}
	for _, post := range doc.Posts {
		if post.Slug == idOrSlug {
			c.JSON(http.StatusOK, post)
			return
		}
	}

	c.JSON(http.StatusNotFound, gin.H{"error": "Blog post not found"})
}
