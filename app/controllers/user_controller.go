package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/bajrang214/looptalk-server/app/middleware"
	"github.com/bajrang214/looptalk-server/app/repositories"
	"github.com/bajrang214/looptalk-server/app/services"
	"github.com/bajrang214/looptalk-server/app/storage"
)

// UserController handles the profile endpoints under /api/user/me.
type UserController struct {
	userService *services.UserService
	files       storage.FileStore
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService, files storage.FileStore) *UserController {
	return &UserController{
		userService: userService,
		files:       files,
	}
}

// Me handles GET /api/user/me. The password hash is excluded by the model's
// JSON tags.
func (uc *UserController) Me(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.CallerID(r)
	if !ok {
		sendMsg(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := uc.userService.Profile(callerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			sendMsg(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("Fetch profile error: %v", err)
		sendMsg(w, http.StatusInternalServerError, "Server error")
		return
	}

	sendJSON(w, http.StatusOK, user)
}

// UpdateMe handles PUT /api/user/me: multipart bio plus an optional profile
// image.
func (uc *UserController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.CallerID(r)
	if !ok {
		sendMsg(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		sendMsg(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	imagePath := ""
	file, header, err := r.FormFile("profileImage")
	switch err {
	case nil:
		defer file.Close()
		imagePath, err = uc.files.Save(file, header.Filename)
		if err != nil {
			log.Printf("Profile image upload error: %v", err)
			sendMsg(w, http.StatusInternalServerError, "Failed to update profile")
			return
		}
	case http.ErrMissingFile:
		// profile image is optional
	default:
		sendMsg(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	user, err := uc.userService.UpdateProfile(callerID, r.FormValue("bio"), imagePath)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			sendMsg(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("Update profile error: %v", err)
		sendMsg(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	sendJSON(w, http.StatusOK, user)
}
