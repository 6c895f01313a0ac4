package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/bajrang214/looptalk-server/app/middleware"
	"github.com/bajrang214/looptalk-server/app/models"
	"github.com/bajrang214/looptalk-server/app/repositories"
	"github.com/bajrang214/looptalk-server/app/services"
	"github.com/bajrang214/looptalk-server/app/storage"

	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for feed posts
type PostController struct {
	postService *services.PostService
	files       storage.FileStore
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, files storage.FileStore) *PostController {
	return &PostController{
		postService: postService,
		files:       files,
	}
}

// Create handles POST /api/posts: multipart content plus an optional image.
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.CallerID(r)
	if !ok {
		sendMsg(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		sendMsg(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	content := r.FormValue("content")
	if strings.TrimSpace(content) == "" {
		sendMsg(w, http.StatusBadRequest, "Content is required")
		return
	}

	imagePath := ""
	file, header, err := r.FormFile("image")
	switch err {
	case nil:
		defer file.Close()
		imagePath, err = pc.files.Save(file, header.Filename)
		if err != nil {
			log.Printf("Image upload error: %v", err)
			sendMsg(w, http.StatusInternalServerError, "Server error while creating post")
			return
		}
	case http.ErrMissingFile:
		// image is optional
	default:
		sendMsg(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	post, err := pc.postService.CreatePost(callerID, content, imagePath)
	if err != nil {
		log.Printf("Create post error: %v", err)
		sendMsg(w, http.StatusInternalServerError, "Server error while creating post")
		return
	}

	sendJSON(w, http.StatusCreated, post)
}

// Index handles GET /api/posts, the public feed.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.postService.ListPosts()
	if err != nil {
		log.Printf("Get posts error: %v", err)
		sendMsg(w, http.StatusInternalServerError, "Failed to get posts")
		return
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	sendJSON(w, http.StatusOK, posts)
}

// MyPosts handles GET /api/user/me/posts.
func (pc *PostController) MyPosts(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.CallerID(r)
	if !ok {
		sendMsg(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	posts, err := pc.postService.ListPostsByAuthor(callerID)
	if err != nil {
		log.Printf("My posts error: %v", err)
		sendMsg(w, http.StatusInternalServerError, "Server error fetching user posts")
		return
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	sendJSON(w, http.StatusOK, posts)
}

// ToggleLike handles PUT /api/posts/{id}/like.
func (pc *PostController) ToggleLike(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.CallerID(r)
	if !ok {
		sendMsg(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	post, err := pc.postService.ToggleLike(mux.Vars(r)["id"], callerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			sendMsg(w, http.StatusNotFound, "Post not found")
			return
		}
		log.Printf("Like error: %v", err)
		sendMsg(w, http.StatusInternalServerError, "Server error")
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"msg":   "Like toggled",
		"likes": len(post.Likes),
	})
}

// AddComment handles PUT /api/posts/{id}/comment.
func (pc *PostController) AddComment(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.CallerID(r)
	if !ok {
		sendMsg(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.CommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendMsg(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		sendMsg(w, http.StatusBadRequest, "Empty comment")
		return
	}

	_, err := pc.postService.AddComment(mux.Vars(r)["id"], callerID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyComment):
			sendMsg(w, http.StatusBadRequest, "Empty comment")
		case errors.Is(err, repositories.ErrNotFound):
			sendMsg(w, http.StatusNotFound, "Post not found")
		default:
			log.Printf("Comment error: %v", err)
			sendMsg(w, http.StatusInternalServerError, "Server error while commenting")
		}
		return
	}

	sendMsg(w, http.StatusOK, "Comment added")
}

// DeleteComment handles PUT /api/posts/{id}/comment/delete. Comments are
// addressed by their position in the post's comment list.
func (pc *PostController) DeleteComment(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.CallerID(r)
	if !ok {
		sendMsg(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.DeleteCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendMsg(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		sendMsg(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	err := pc.postService.DeleteComment(mux.Vars(r)["id"], callerID, *req.Index)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			sendMsg(w, http.StatusNotFound, "Comment not found")
		case errors.Is(err, services.ErrForbidden):
			sendMsg(w, http.StatusForbidden, "Unauthorized to delete this comment")
		default:
			log.Printf("Delete comment error: %v", err)
			sendMsg(w, http.StatusInternalServerError, "Server error while deleting comment")
		}
		return
	}

	sendMsg(w, http.StatusOK, "Comment deleted")
}

// Edit handles PUT /api/posts/{id}/edit.
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.CallerID(r)
	if !ok {
		sendMsg(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.EditPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendMsg(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		sendMsg(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	err := pc.postService.EditPost(mux.Vars(r)["id"], callerID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			sendMsg(w, http.StatusNotFound, "Post not found")
		case errors.Is(err, services.ErrForbidden):
			sendMsg(w, http.StatusForbidden, "Unauthorized to edit this post")
		default:
			log.Printf("Edit post error: %v", err)
			sendMsg(w, http.StatusInternalServerError, "Server error while editing post")
		}
		return
	}

	sendMsg(w, http.StatusOK, "Post updated")
}

// Delete handles DELETE /api/posts/{id}.
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.CallerID(r)
	if !ok {
		sendMsg(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	err := pc.postService.DeletePost(mux.Vars(r)["id"], callerID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			sendMsg(w, http.StatusNotFound, "Post not found")
		case errors.Is(err, services.ErrForbidden):
			sendMsg(w, http.StatusForbidden, "Unauthorized to delete this post")
		default:
			log.Printf("Delete post error: %v", err)
			sendMsg(w, http.StatusInternalServerError, "Server error while deleting post")
		}
		return
	}

	sendMsg(w, http.StatusOK, "Post deleted successfully")
}
