package repositories

import "github.com/bajrang214/looptalk-server/app/models"

// PostRepository defines the interface for post data access. Authorization
// is not its concern; ownership rules live in the service layer.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id string) (*models.Post, error)
	List() ([]*models.Post, error)
	ListByAuthor(authorID string) ([]*models.Post, error)
	Mutate(id string, fn func(*models.Post) error) (*models.Post, error)
	Delete(id string) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Mutate(id string, fn func(*models.User) error) (*models.User, error)
}
