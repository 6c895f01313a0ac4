package controllers

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bajrang214/looptalk-server/app/middleware"
	"github.com/bajrang214/looptalk-server/app/models"
	"github.com/bajrang214/looptalk-server/app/repositories/mock"
	"github.com/bajrang214/looptalk-server/app/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

// fakeFileStore records saves without touching disk.
type fakeFileStore struct {
	saved []string
}

func (f *fakeFileStore) Save(file io.Reader, originalName string) (string, error) {
	f.saved = append(f.saved, originalName)
	return "/uploads/fake.png", nil
}

type testEnv struct {
	postController *PostController
	userController *UserController
	authController *AuthController
	postRepo       *mock.PostRepository
	userRepo       *mock.UserRepository
	files          *fakeFileStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	postRepo := mock.NewPostRepository()
	userRepo := mock.NewUserRepository()
	files := &fakeFileStore{}
	postService := services.NewPostService(postRepo, userRepo)
	userService := services.NewUserService(userRepo, []byte("test-secret"))

	return &testEnv{
		postController: NewPostController(postService, files),
		userController: NewUserController(userService, files),
		authController: NewAuthController(userService),
		postRepo:       postRepo,
		userRepo:       userRepo,
		files:          files,
	}
}

func (e *testEnv) seedUser(t *testing.T, id, username string) {
	t.Helper()
	require.NoError(t, e.userRepo.Create(&models.User{
		ID:       id,
		Username: username,
		Email:    username + "@example.com",
	}))
}

func (e *testEnv) seedPost(t *testing.T, authorID, content string) *models.Post {
	t.Helper()
	post := &models.Post{AuthorID: authorID, Content: content}
	require.NoError(t, e.postRepo.Create(post))
	return post
}

// authedRequest builds a request that already carries the caller id and the
// {id} route variable, bypassing the router.
func authedRequest(method, target, callerID, postID string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	if callerID != "" {
		req = middleware.WithCallerID(req, callerID)
	}
	if postID != "" {
		req = mux.SetURLVars(req, map[string]string{"id": postID})
	}
	return req
}

// multipartBody builds a multipart form with the given fields and an
// optional file field.
func multipartBody(t *testing.T, fields map[string]string, fileField, fileName string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}
