package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type postJSON struct {
	ID         string   `json:"id"`
	UserID     string   `json:"userId"`
	AuthorName string   `json:"authorName"`
	Content    string   `json:"content"`
	Image      string   `json:"image"`
	Likes      []string `json:"likes"`
	Comments   []struct {
		UserID     string `json:"userId"`
		AuthorName string `json:"authorName"`
		Text       string `json:"text"`
	} `json:"comments"`
}

func TestAuthRequired(t *testing.T) {
	router := setupTestRouter(t)

	// The public feed works without a credential
	w := doJSON(t, router, "GET", "/api/posts", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	// Everything mutating is rejected before any store access
	protected := []struct{ method, path string }{
		{"POST", "/api/posts"},
		{"PUT", "/api/posts/x/like"},
		{"PUT", "/api/posts/x/comment"},
		{"PUT", "/api/posts/x/comment/delete"},
		{"PUT", "/api/posts/x/edit"},
		{"DELETE", "/api/posts/x"},
		{"GET", "/api/user/me"},
		{"PUT", "/api/user/me"},
		{"GET", "/api/user/me/posts"},
	}
	for _, route := range protected {
		w := doJSON(t, router, route.method, route.path, "", "")
		require.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", route.method, route.path)
	}
}

func TestPreflight(t *testing.T) {
	router := setupTestRouter(t)

	req := httptest.NewRequest("OPTIONS", "/api/posts/x/like", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCreateAndListPosts(t *testing.T) {
	router := setupTestRouter(t)
	token, userID := registerAndLogin(t, router, "alice")

	createPost(t, router, token, "first post", "")
	createPost(t, router, token, "second post", "")

	w := doJSON(t, router, "GET", "/api/posts", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var posts []postJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	require.Len(t, posts, 2)

	// Newest first, with author names resolved
	require.Equal(t, "second post", posts[0].Content)
	require.Equal(t, "first post", posts[1].Content)
	for _, post := range posts {
		require.Equal(t, userID, post.UserID)
		require.Equal(t, "alice", post.AuthorName)
		require.Empty(t, post.Likes)
		require.Empty(t, post.Comments)
	}
}

func TestUploadedImageServed(t *testing.T) {
	router := setupTestRouter(t)
	token, _ := registerAndLogin(t, router, "alice")

	postID := createPost(t, router, token, "with image", "selfie.png")

	w := doJSON(t, router, "GET", "/api/posts", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var posts []postJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	require.Len(t, posts, 1)
	require.Equal(t, postID, posts[0].ID)
	require.Contains(t, posts[0].Image, "/uploads/")

	req := httptest.NewRequest("GET", posts[0].Image, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "fake image bytes", rec.Body.String())
}

func TestLikeToggleScenario(t *testing.T) {
	router := setupTestRouter(t)
	aliceToken, _ := registerAndLogin(t, router, "alice")
	bobToken, bobID := registerAndLogin(t, router, "bob")

	postID := createPost(t, router, aliceToken, "like me", "")

	var res struct {
		Msg   string `json:"msg"`
		Likes int    `json:"likes"`
	}

	// Bob likes Alice's post
	w := doJSON(t, router, "PUT", "/api/posts/"+postID+"/like", bobToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, "Like toggled", res.Msg)
	require.Equal(t, 1, res.Likes)

	var posts []postJSON
	w = doJSON(t, router, "GET", "/api/posts", "", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	require.Equal(t, []string{bobID}, posts[0].Likes)

	// Bob toggles again, restoring the original state
	w = doJSON(t, router, "PUT", "/api/posts/"+postID+"/like", bobToken, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Equal(t, 0, res.Likes)

	// Missing post
	w = doJSON(t, router, "PUT", "/api/posts/missing/like", bobToken, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentScenario(t *testing.T) {
	router := setupTestRouter(t)
	aliceToken, _ := registerAndLogin(t, router, "alice")
	bobToken, bobID := registerAndLogin(t, router, "bob")

	postID := createPost(t, router, aliceToken, "comment on me", "")

	// Empty and whitespace-only comments are rejected
	for _, body := range []string{`{"text":""}`, `{"text":"   "}`} {
		w := doJSON(t, router, "PUT", "/api/posts/"+postID+"/comment", bobToken, body)
		require.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}

	// Bob comments at index 0
	w := doJSON(t, router, "PUT", "/api/posts/"+postID+"/comment", bobToken, `{"text":"nice"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var posts []postJSON
	w = doJSON(t, router, "GET", "/api/posts", "", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	require.Len(t, posts[0].Comments, 1)
	require.Equal(t, bobID, posts[0].Comments[0].UserID)
	require.Equal(t, "bob", posts[0].Comments[0].AuthorName)
	require.Equal(t, "nice", posts[0].Comments[0].Text)

	// Alice is not the comment's author
	w = doJSON(t, router, "PUT", "/api/posts/"+postID+"/comment/delete", aliceToken, `{"index":0}`)
	require.Equal(t, http.StatusForbidden, w.Code)

	// Out-of-range index
	w = doJSON(t, router, "PUT", "/api/posts/"+postID+"/comment/delete", bobToken, `{"index":5}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	// Bob deletes his own comment
	w = doJSON(t, router, "PUT", "/api/posts/"+postID+"/comment/delete", bobToken, `{"index":0}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", "/api/posts", "", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	require.Empty(t, posts[0].Comments)
}

func TestEditAndDeleteOwnership(t *testing.T) {
	router := setupTestRouter(t)
	aliceToken, _ := registerAndLogin(t, router, "alice")
	bobToken, _ := registerAndLogin(t, router, "bob")

	postID := createPost(t, router, aliceToken, "original", "")

	// Only the author may edit
	w := doJSON(t, router, "PUT", "/api/posts/"+postID+"/edit", bobToken, `{"content":"hijacked"}`)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, "PUT", "/api/posts/"+postID+"/edit", aliceToken, `{"content":"updated"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var posts []postJSON
	w = doJSON(t, router, "GET", "/api/posts", "", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	require.Equal(t, "updated", posts[0].Content)

	// Only the author may delete
	w = doJSON(t, router, "DELETE", "/api/posts/"+postID, bobToken, "")
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, "DELETE", "/api/posts/"+postID, aliceToken, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", "/api/posts", "", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	require.Empty(t, posts)

	w = doJSON(t, router, "DELETE", "/api/posts/"+postID, aliceToken, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileEndpoints(t *testing.T) {
	router := setupTestRouter(t)
	token, userID := registerAndLogin(t, router, "alice")
	otherToken, _ := registerAndLogin(t, router, "bob")

	w := doJSON(t, router, "GET", "/api/user/me", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var me map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	require.Equal(t, userID, me["id"])
	require.Equal(t, "alice", me["username"])
	require.NotContains(t, w.Body.String(), "supersecret")

	// Each user's posts stay their own
	createPost(t, router, token, "alice's post", "")
	createPost(t, router, otherToken, "bob's post", "")

	w = doJSON(t, router, "GET", "/api/user/me/posts", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var posts []postJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
	require.Len(t, posts, 1)
	require.Equal(t, "alice's post", posts[0].Content)
	require.Equal(t, "alice", posts[0].AuthorName)
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	router := setupTestRouter(t)
	registerAndLogin(t, router, "alice")

	body := fmt.Sprintf(`{"username":"impostor","email":%q,"password":"othersecret"}`, "alice@example.com")
	w := doJSON(t, router, "POST", "/api/register", "", body)
	require.Equal(t, http.StatusConflict, w.Code)
}
