package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/bajrang214/looptalk-server/app/models"
	"github.com/bajrang214/looptalk-server/app/repositories"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL is how long an issued session token stays valid.
const tokenTTL = 24 * time.Hour

// UserService handles accounts: registration, login with token issuance,
// and profile reads/updates.
type UserService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.UserRepository, jwtSecret []byte) *UserService {
	return &UserService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

// Register creates an account with a bcrypt-hashed password.
func (s *UserService) Register(username, email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and returns a signed session token along
// with the user.
func (s *UserService) Login(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, user, nil
}

// Profile returns the user's account. The password hash is excluded from
// serialization by the model, not here.
func (s *UserService) Profile(userID string) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// UpdateProfile sets the bio and, when imagePath is non-empty, the profile
// image.
func (s *UserService) UpdateProfile(userID, bio, imagePath string) (*models.User, error) {
	return s.userRepo.Mutate(userID, func(u *models.User) error {
		u.Bio = bio
		if imagePath != "" {
			u.ProfileImage = imagePath
		}
		return nil
	})
}
