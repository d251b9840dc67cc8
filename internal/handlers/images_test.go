package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uploadPart struct {
	filename    string
	contentType string
	content     []byte
}

func multipartBody(t *testing.T, parts []uploadPart) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, p := range parts {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="images"; filename="%s"`, p.filename))
		header.Set("Content-Type", p.contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(p.content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func doUpload(r *gin.Engine, body *bytes.Buffer, contentType, ip string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.RemoteAddr = ip + ":52000"
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadValidImagesReturnsURLsInOrder(t *testing.T) {
	r := setupRouter(t)
	cookies := login(t, r, "198.51.100.1")

	body, ct := multipartBody(t, []uploadPart{
		{"panel.png", "image/png", []byte("png-data-1")},
		{"kit.jpg", "image/jpeg", []byte("jpg-data-2")},
		{"lamp.webp", "image/webp", []byte("webp-data-3")},
	})
	w := doUpload(r, body, ct, "198.51.100.1", cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool     `json:"success"`
		Files   []string `json:"files"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Files, 3)

	// Une URL par fichier, dans l'ordre d'entrée, extension d'origine conservée
	assert.True(t, strings.HasSuffix(resp.Files[0], ".png"), resp.Files[0])
	assert.True(t, strings.HasSuffix(resp.Files[1], ".jpg"), resp.Files[1])
	assert.True(t, strings.HasSuffix(resp.Files[2], ".webp"), resp.Files[2])

	// Les fichiers existent bien sur disque
	entries, err := os.ReadDir(os.Getenv("UPLOAD_DIR"))
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	r := setupRouter(t)
	cookies := login(t, r, "198.51.100.2")

	body, ct := multipartBody(t, []uploadPart{
		{"big.png", "image/png", make([]byte, 6<<20)}, // 6 MB
	})
	w := doUpload(r, body, ct, "198.51.100.2", cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadRejectsMismatchedMIME(t *testing.T) {
	r := setupRouter(t)
	cookies := login(t, r, "198.51.100.3")

	// .exe renommé en .png : extension ok, MIME déclaré non autorisé
	body, ct := multipartBody(t, []uploadPart{
		{"virus.png", "application/octet-stream", []byte("MZ...")},
	})
	w := doUpload(r, body, ct, "198.51.100.3", cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadRejectsDisallowedExtension(t *testing.T) {
	r := setupRouter(t)
	cookies := login(t, r, "198.51.100.4")

	body, ct := multipartBody(t, []uploadPart{
		{"script.exe", "image/png", []byte("MZ...")},
	})
	w := doUpload(r, body, ct, "198.51.100.4", cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadRejectsEmptyBatch(t *testing.T) {
	r := setupRouter(t)
	cookies := login(t, r, "198.51.100.5")

	body, ct := multipartBody(t, nil)
	w := doUpload(r, body, ct, "198.51.100.5", cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadRejectsWholeBatchOnSingleInvalidFile(t *testing.T) {
	r := setupRouter(t)
	cookies := login(t, r, "198.51.100.6")

	body, ct := multipartBody(t, []uploadPart{
		{"ok.png", "image/png", []byte("png-data")},
		{"bad.exe", "application/octet-stream", []byte("MZ...")},
	})
	w := doUpload(r, body, ct, "198.51.100.6", cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Rien n'a été stocké, même pas le fichier valide
	entries, err := os.ReadDir(os.Getenv("UPLOAD_DIR"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUploadRejectsTooManyFiles(t *testing.T) {
	r := setupRouter(t)
	cookies := login(t, r, "198.51.100.7")

	parts := make([]uploadPart, 11)
	for i := range parts {
		parts[i] = uploadPart{fmt.Sprintf("img-%d.png", i), "image/png", []byte("data")}
	}
	body, ct := multipartBody(t, parts)
	w := doUpload(r, body, ct, "198.51.100.7", cookies)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteImage(t *testing.T) {
	r := setupRouter(t)
	cookies := login(t, r, "198.51.100.8")

	body, ct := multipartBody(t, []uploadPart{
		{"panel.png", "image/png", []byte("png-data")},
	})
	w := doUpload(r, body, ct, "198.51.100.8", cookies)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Files []string `json:"files"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Files, 1)
	filename := filepath.Base(resp.Files[0])

	w = doJSON(r, http.MethodDelete, "/api/images/"+filename, nil, "198.51.100.8", cookies)
	require.Equal(t, http.StatusOK, w.Code)

	// Deuxième suppression → 404
	w = doJSON(r, http.MethodDelete, "/api/images/"+filename, nil, "198.51.100.8", cookies)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
