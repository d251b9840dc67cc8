package blog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"solarkits_back_end/internal/database"
	"solarkits_back_end/internal/middleware"
	"solarkits_back_end/internal/models"
	"solarkits_back_end/internal/routes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("ADMIN_PASSWORD", "sunshine")
	t.Setenv("UPLOAD_DIR", t.TempDir())

	gin.SetMode(gin.TestMode)
	database.DataStore = database.NewFileStore(t.TempDir())
	middleware.InitSessionStore()

	r := gin.New()
	routes.RegisterRoutes(r)
	return r
}

func doJSON(r *gin.Engine, method, path string, body any, ip string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = ip + ":54000"
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, ip string) []*http.Cookie {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/login", gin.H{"password": "sunshine"}, ip, nil)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Result().Cookies()
}

func postDraft(title string) gin.H {
	return gin.H{
		"title":   title,
		"excerpt": "Un résumé",
		"content": "Le contenu complet du post.",
		"author":  "SolarKits Team",
	}
}

func TestCreatePostDerivesSlugAndID(t *testing.T) {
	r := setupRouter(t)
	cookies := login(t, r, "198.18.0.1")

	w := doJSON(r, http.MethodPost, "/api/blog", postDraft("Solar 101: Getting Started!"), "198.18.0.1", cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool            `json:"success"`
		Post    models.BlogPost `json:"post"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "blog-001", resp.Post.ID)
	assert.Equal(t, "solar-101-getting-started", resp.Post.Slug)
	assert.Equal(t, time.Now().Format("2006-01-02"), resp.Post.Date)
}

func TestCreatePostRequiredFields(t *testing.T) {
	r := setupRouter(t)
	cookies := login(t, r, "198.18.0.2")

	draft := postDraft("Titre")
	delete(draft, "author")
	w := doJSON(r, http.MethodPost, "/api/blog", draft, "198.18.0.2", cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePostInsertsAtFront(t *testing.T) {
	r := setupRouter(t)
	cookies := login(t, r, "198.18.0.3")

	w := doJSON(r, http.MethodPost, "/api/blog", postDraft("Premier post"), "198.18.0.3", cookies)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodPost, "/api/blog", postDraft("Deuxième post"), "198.18.0.3", cookies)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/blog", nil, "198.18.0.3", cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var doc models.BlogDocument
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	require.Len(t, doc.Posts, 2)

	// Le plus récent d'abord, ids séquencés globalement
	assert.Equal(t, "blog-002", doc.Posts[0].ID)
	assert.Equal(t, "Deuxième post", doc.Posts[0].Title)
	assert.Equal(t, "blog-001", doc.Posts[1].ID)
}

func TestCreatePostKeepsSuppliedSlugAndDate(t *testing.T) {
	r := setupRouter(t)
	cookies := login(t, r, "198.18.0.4")

	draft := postDraft("Un titre quelconque")
	draft["slug"] = "mon-slug-perso"
	draft["date"] = "2024-06-30"
	w := doJSON(r, http.MethodPost, "/api/blog", draft, "198.18.0.4", cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Post models.BlogPost `json:"post"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "mon-slug-perso", resp.Post.Slug)
	assert.Equal(t, "2024-06-30", resp.Post.Date)
}

func TestUpdatePostShallowMergeWithoutStamping(t *testing.T) {
	r := setupRouter(t)
	cookies := login(t, r, "198.18.0.5")

	err := database.WriteBlogPosts(context.Background(), &models.BlogDocument{Posts: []models.BlogPost{{
		ID:      "blog-001",
		Slug:    "premier-post",
		Title:   "Premier post",
		Excerpt: "Résumé",
		Content: "Contenu",
		Author:  "SolarKits Team",
		Date:    "2024-01-15",
	}}})
	require.NoError(t, err)

	w := doJSON(r, http.MethodPut, "/api/blog/blog-001", gin.H{
		"title": "Premier post (édité)",
	}, "198.18.0.5", cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Post models.BlogPost `json:"post"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "Premier post (édité)", resp.Post.Title)
	// Les champs hors patch ne bougent pas — pas d'estampillage forcé
	assert.Equal(t, "Résumé", resp.Post.Excerpt)
	assert.Equal(t, "2024-01-15", resp.Post.Date)
	assert.Equal(t, "premier-post", resp.Post.Slug)
}

func TestUpdatePostNotFound(t *testing.T) {
	r := setupRouter(t)
	cookies := login(t, r, "198.18.0.6")

	w := doJSON(r, http.MethodPut, "/api/blog/blog-404", gin.H{"title": "X"}, "198.18.0.6", cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletePost(t *testing.T) {
	r := setupRouter(t)
	cookies := login(t, r, "198.18.0.7")

	err := database.WriteBlogPosts(context.Background(), &models.BlogDocument{Posts: []models.BlogPost{
		{ID: "blog-001", Title: "Premier"},
		{ID: "blog-002", Title: "Deuxième"},
	}})
	require.NoError(t, err)

	w := doJSON(r, http.MethodDelete, "/api/blog/blog-001", nil, "198.18.0.7", cookies)
	require.Equal(t, http.StatusOK, w.Code)

	doc, err := database.ReadBlogPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Posts, 1)
	assert.Equal(t, "blog-002", doc.Posts[0].ID)

	w = doJSON(r, http.MethodDelete, "/api/blog/blog-001", nil, "198.18.0.7", cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicBlogLookupByIDThenSlug(t *testing.T) {
	r := setupRouter(t)

	err := database.WriteBlogPosts(context.Background(), &models.BlogDocument{Posts: []models.BlogPost{
		{ID: "blog-002", Slug: "guide-batteries", Title: "Guide batteries"},
		{ID: "blog-001", Slug: "premier-post", Title: "Premier post"},
	}})
	require.NoError(t, err)

	// Par id
	w := doJSON(r, http.MethodGet, "/api/public/blog/blog-001", nil, "198.18.0.8", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var post models.BlogPost
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	assert.Equal(t, "Premier post", post.Title)

	// Repli sur le slug
	w = doJSON(r, http.MethodGet, "/api/public/blog/guide-batteries", nil, "198.18.0.8", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	assert.Equal(t, "blog-002", post.ID)

	// Inconnu → 404
	w = doJSON(r, http.MethodGet, "/api/public/blog/inconnu", nil, "198.18.0.8", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
