package blog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"solarkits_back_end/internal/database"
	"solarkits_back_end/internal/models"
	"solarkits_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

var (
	errNotFound    = errors.New("blog post not found")
	errDuplicateID = errors.New("duplicate blog post id")
)

func ListPosts(c *gin.Context) {
	doc, err := database.ReadBlogPosts(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read blog posts"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

func GetPost(c *gin.Context) {
	doc, err := database.ReadBlogPosts(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read blog posts"})
		return
	}

	id := c.Param("id")
	for _, post := range doc.Posts {
		if post.ID == id {
			c.JSON(http.StatusOK, post)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Blog post not found"})
}

func CreatePost(c *gin.Context) {
	var draft models.BlogPost

	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid blog post payload"})
		return
	}
	for field, value := range map[string]string{
		"title":   draft.Title,
		"excerpt": draft.Excerpt,
		"content": draft.Content,
		"author":  draft.Author,
	} {
		if value == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Field '%s' is required", field)})
			return
		}
	}

	err := database.UpdateBlogPosts(context.Background(), func(doc *models.BlogDocument) error {
		if draft.ID == "" {
			ids := make([]string, 0, len(doc.Posts))
			for _, post := range doc.Posts {
				ids = append(ids, post.ID)
			}
			draft.ID = fmt.Sprintf("blog-%03d", utils.MaxSequence(ids)+1)
		} else {
			for _, post := range doc.Posts {
				if post.ID == draft.ID {
					return errDuplicateID
				}
			}
		}

		if draft.Date == "" {
			draft.Date = time.Now().Format("2006-01-02")
		}
		// Slug dérivé du titre, jamais dédupliqué : en cas de collision le
		// lookup public par slug renvoie le post le plus récent
		if draft.Slug == "" {
			draft.Slug = utils.Slugify(draft.Title)
		}
		draft.Normalize()

		// Insertion en tête : le post le plus récent est toujours premier
		doc.Posts = append([]models.BlogPost{draft}, doc.Posts...)
		return nil
	})

	if errors.Is(err, errDuplicateID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Blog post id already exists"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save blog post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post": draft})
}

// UpdatePost : merge superficiel du patch sur l'existant, sans estampillage
// forcé (contrairement aux produits). L'id est immuable.
func UpdatePost(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid blog post payload"})
		return
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var shadow models.BlogPost
	if err := dec.Decode(&shadow); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid blog post payload"})
		return
	}

	id := c.Param("id")
	var updated models.BlogPost

	err = database.UpdateBlogPosts(context.Background(), func(doc *models.BlogDocument) error {
		idx := -1
		for i, post := range doc.Posts {
			if post.ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return errNotFound
		}

		merged, err := mergePost(doc.Posts[idx], raw)
		if err != nil {
			return err
		}
		merged.ID = id
		merged.Normalize()

		doc.Posts[idx] = merged
		updated = merged
		return nil
	})

	if errors.Is(err, errNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Blog post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update blog post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post": updated})
}

func DeletePost(c *gin.Context) {
	id := c.Param("id")

	err := database.UpdateBlogPosts(context.Background(), func(doc *models.BlogDocument) error {
		for i, post := range doc.Posts {
			if post.ID == id {
				doc.Posts = append(doc.Posts[:i], doc.Posts[i+1:]...)
				return nil
			}
		}
		return errNotFound
	})

	if errors.Is(err, errNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Blog post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete blog post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Blog post deleted"})
}

// mergePost : les clés présentes dans le patch remplacent celles de l'existant
func mergePost(existing models.BlogPost, patch []byte) (models.BlogPost, error) {
	existingJSON, err := json.Marshal(existing)
	if err != nil {
		return models.BlogPost{}, err
	}

	var existingMap, patchMap map[string]json.RawMessage
	if err := json.Unmarshal(existingJSON, &existingMap); err != nil {
		return models.BlogPost{}, err
	}
	if err := json.Unmarshal(patch, &patchMap); err != nil {
		return models.BlogPost{}, err
	}

	for key, value := range patchMap {
		existingMap[key] = value
	}

	mergedJSON, err := json.Marshal(existingMap)
	if err != nil {
		return models.BlogPost{}, err
	}

	var merged models.BlogPost
	if err := json.Unmarshal(mergedJSON, &merged); err != nil {
		return models.BlogPost{}, err
	}
	return merged, nil
}
