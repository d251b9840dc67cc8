package product

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"solarkits_back_end/internal/database"
	"solarkits_back_end/internal/models"
	"solarkits_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

var (
	errNotFound    = errors.New("product not found")
	errDuplicateID = errors.New("duplicate product id")
)

func today() string {
	return time.Now().Format("2006-01-02")
}

func ListProducts(c *gin.Context) {
	doc, err := database.ReadProducts(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read products"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

func GetProduct(c *gin.Context) {
	doc, err := database.ReadProducts(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read products"})
		return
	}

	id := c.Param("id")
	for _, p := range doc.Products {
		if p.ID == id {
			c.JSON(http.StatusOK, p)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
}

func CreateProduct(c *gin.Context) {
	var draft models.Product

	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product payload"})
		return
	}
	if draft.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Field 'name' is required"})
		return
	}
	if !models.IsValidCategory(draft.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	err := database.UpdateProducts(context.Background(), func(doc *models.ProductsDocument) error {
		if draft.ID == "" {
			ids := make([]string, 0, len(doc.Products))
			for _, p := range doc.Products {
				ids = append(ids, p.ID)
			}
			draft.ID = utils.NextSequenceID(utils.CategoryPrefix(draft.Category), ids)
		} else {
			for _, p := range doc.Products {
				if p.ID == draft.ID {
					return errDuplicateID
				}
			}
		}

		// Metadata estampillée côté serveur : seul 'featured' vient du draft
		now := today()
		draft.Metadata = models.ProductMetadata{
			DateAdded:      now,
			LastUpdated:    now,
			LastPriceCheck: now,
			Clicks:         0,
			Featured:       draft.Metadata.Featured,
		}
		draft.Normalize()

		doc.Products = append(doc.Products, draft)
		return nil
	})

	if errors.Is(err, errDuplicateID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product id already exists"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": draft})
}

// UpdateProduct applique un merge superficiel du patch sur l'existant,
// metadata fusionnée un niveau plus bas avec lastUpdated forcé à aujourd'hui
// (l'ordre compte : existant ← patch ← lastUpdated forcé). L'id est immuable.
func UpdateProduct(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product payload"})
		return
	}

	// Contrôle de schéma avant la couche service : champs connus, types corrects
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	var shadow models.Product
	if err := dec.Decode(&shadow); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product payload"})
		return
	}

	id := c.Param("id")
	var updated models.Product

	err = database.UpdateProducts(context.Background(), func(doc *models.ProductsDocument) error {
		idx := -1
		for i, p := range doc.Products {
			if p.ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return errNotFound
		}

		merged, err := mergeProduct(doc.Products[idx], raw)
		if err != nil {
			return err
		}
		merged.ID = id
		merged.Normalize()

		doc.Products[idx] = merged
		updated = merged
		return nil
	})

	if errors.Is(err, errNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "product": updated})
}

func DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	err := database.UpdateProducts(context.Background(), func(doc *models.ProductsDocument) error {
		for i, p := range doc.Products {
			if p.ID == id {
				doc.Products = append(doc.Products[:i], doc.Products[i+1:]...)
				return nil
			}
		}
		return errNotFound
	})

	if errors.Is(err, errNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted"})
}

// mergeProduct fusionne le patch JSON brut sur le produit existant :
// clés du patch par-dessus l'existant, metadata fusionnée champ par champ,
// puis lastUpdated écrasé en dernier
func mergeProduct(existing models.Product, patch []byte) (models.Product, error) {
	existingJSON, err := json.Marshal(existing)
	if err != nil {
		return models.Product{}, err
	}

	var existingMap, patchMap map[string]json.RawMessage
	if err := json.Unmarshal(existingJSON, &existingMap); err != nil {
		return models.Product{}, err
	}
	if err := json.Unmarshal(patch, &patchMap); err != nil {
		return models.Product{}, err
	}

	metaMap := map[string]json.RawMessage{}
	if rawMeta, ok := existingMap["metadata"]; ok {
		json.Unmarshal(rawMeta, &metaMap)
	}

	for key, value := range patchMap {
		existingMap[key] = value
	}
	if rawMeta, ok := patchMap["metadata"]; ok {
		patchMeta := map[string]json.RawMessage{}
		if err := json.Unmarshal(rawMeta, &patchMeta); err != nil {
			return models.Product{}, err
		}
		for key, value := range patchMeta {
			metaMap[key] = value
		}
	}
	stamp, _ := json.Marshal(today())
	metaMap["lastUpdated"] = stamp

	mergedMeta, err := json.Marshal(metaMap)
	if err != nil {
		return models.Product{}, err
	}
	existingMap["metadata"] = mergedMeta

	mergedJSON, err := json.Marshal(existingMap)
	if err != nil {
		return models.Product{}, err
	}

	var merged models.Product
	if err := json.Unmarshal(mergedJSON, &merged); err != nil {
		return models.Product{}, err
	}
	return merged, nil
}
