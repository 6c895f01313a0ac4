package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bajrang214/looptalk-server/config"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) *mux.Router {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		Addr:           ":0",
		UploadDir:      t.TempDir(),
		JWTSecret:      "test-secret",
		AllowedOrigins: []string{"http://localhost:3000"},
	}

	router, err := SetupRoutes(db, cfg)
	require.NoError(t, err)
	return router
}

// registerAndLogin creates an account and returns a session token and the
// user's id.
func registerAndLogin(t *testing.T, router *mux.Router, username string) (token, userID string) {
	t.Helper()

	body := fmt.Sprintf(`{"username":%q,"email":%q,"password":"supersecret"}`,
		username, username+"@example.com")
	w := doJSON(t, router, "POST", "/api/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code)

	body = fmt.Sprintf(`{"email":%q,"password":"supersecret"}`, username+"@example.com")
	w = doJSON(t, router, "POST", "/api/login", "", body)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)
	return res.Token, res.User.ID
}

func doJSON(t *testing.T, router *mux.Router, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// createPost posts a multipart form and returns the created post's id.
func createPost(t *testing.T, router *mux.Router, token, content, imageName string) string {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("content", content))
	if imageName != "" {
		part, err := writer.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/posts", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var post struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	require.NotEmpty(t, post.ID)
	return post.ID
}
