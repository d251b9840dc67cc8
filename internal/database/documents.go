package database

import (
	"context"
	"encoding/json"
	"sync"

	"solarkits_back_end/internal/models"
)

// Un mutex par collection : le cycle lecture → modification → réécriture
// n'est jamais exécuté par deux requêtes en même temps (sinon la dernière
// écriture écraserait silencieusement la première)
var collectionLocks = map[string]*sync.Mutex{
	CollectionProducts: {},
	CollectionBlog:     {},
}

func ReadProducts(ctx context.Context) (*models.ProductsDocument, error) {
	raw, err := DataStore.Read(ctx, CollectionProducts)
	if err != nil {
		return nil, err
	}
	doc := &models.ProductsDocument{Products: []models.Product{}}
	if raw == nil {
		return doc, nil
	}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, err
	}
	if doc.Products == nil {
		doc.Products = []models.Product{}
	}
	return doc, nil
}

func WriteProducts(ctx context.Context, doc *models.ProductsDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return DataStore.Write(ctx, CollectionProducts, data)
}

// UpdateProducts exécute fn sous le verrou de la collection puis persiste.
// Si fn renvoie une erreur, rien n'est écrit.
func UpdateProducts(ctx context.Context, fn func(doc *models.ProductsDocument) error) error {
	lock := collectionLocks[CollectionProducts]
	lock.Lock()
	defer lock.Unlock()

	doc, err := ReadProducts(ctx)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return WriteProducts(ctx, doc)
}

func ReadBlogPosts(ctx context.Context) (*models.BlogDocument, error) {
	raw, err := DataStore.Read(ctx, CollectionBlog)
	if err != nil {
		return nil, err
	}
	doc := &models.BlogDocument{Posts: []models.BlogPost{}}
	if raw == nil {
		return doc, nil
	}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, err
	}
	if doc.Posts == nil {
		doc.Posts = []models.BlogPost{}
	}
	return doc, nil
}

func WriteBlogPosts(ctx context.Context, doc *models.BlogDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return DataStore.Write(ctx, CollectionBlog, data)
}

func UpdateBlogPosts(ctx context.Context, fn func(doc *models.BlogDocument) error) error {
	lock := collectionLocks[CollectionBlog]
	lock.Lock()
	defer lock.Unlock()

	doc, err := ReadBlogPosts(ctx)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return WriteBlogPosts(ctx, doc)
}
