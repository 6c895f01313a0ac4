package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/bajrang214/looptalk-server/app/models"
	"github.com/bajrang214/looptalk-server/app/services"
)

// AuthController handles registration and login.
type AuthController struct {
	userService *services.UserService
}

// NewAuthController creates a new AuthController
func NewAuthController(userService *services.UserService) *AuthController {
	return &AuthController{userService: userService}
}

// Register handles POST /api/register.
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendMsg(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		sendMsg(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := ac.userService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			sendMsg(w, http.StatusConflict, "User with this email already exists")
			return
		}
		log.Printf("Register error: %v", err)
		sendMsg(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	sendJSON(w, http.StatusCreated, user)
}

// Login handles POST /api/login.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendMsg(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := req.Validate(); err != nil {
		sendMsg(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	token, user, err := ac.userService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			sendMsg(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Printf("Login error: %v", err)
		sendMsg(w, http.StatusInternalServerError, "Server error")
		return
	}

	sendJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}
