package mock

import (
	"sort"
	"sync"

	"github.com/bajrang214/looptalk-server/app/models"
	"github.com/bajrang214/looptalk-server/app/repositories"

	"github.com/google/uuid"
)

// PostRepository is an in-memory repositories.PostRepository for tests.
type PostRepository struct {
	posts map[string]*models.Post
	mutex sync.RWMutex

	// FailWrites makes every mutating call fail, for storage-error paths.
	FailWrites error
}

// UserRepository is an in-memory repositories.UserRepository for tests.
type UserRepository struct {
	users map[string]*models.User
	mutex sync.RWMutex
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts: make(map[string]*models.Post),
	}
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[string]*models.User),
	}
}

func (m *PostRepository) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.posts = make(map[string]*models.Post)
}

// PostRepository implementation

func (m *PostRepository) Create(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.FailWrites != nil {
		return m.FailWrites
	}
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	post.BeforeCreate()
	m.posts[post.ID] = post
	return nil
}

func (m *PostRepository) GetByID(id string) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

func (m *PostRepository) List() ([]*models.Post, error) {
	return m.list(func(*models.Post) bool { return true })
}

func (m *PostRepository) ListByAuthor(authorID string) ([]*models.Post, error) {
	return m.list(func(p *models.Post) bool { return p.AuthorID == authorID })
}

func (m *PostRepository) list(keep func(*models.Post) bool) ([]*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var posts []*models.Post
	for _, post := range m.posts {
		if keep(post) {
			posts = append(posts, post)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (m *PostRepository) Mutate(id string, fn func(*models.Post) error) (*models.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}

	// Apply fn to a copy so a failed mutation leaves the stored post
	// untouched, matching the transactional Badger behavior.
	updated := *post
	updated.Likes = append([]string(nil), post.Likes...)
	updated.Comments = append([]models.Comment(nil), post.Comments...)
	if err := fn(&updated); err != nil {
		return nil, err
	}
	if m.FailWrites != nil {
		return nil, m.FailWrites
	}
	m.posts[id] = &updated
	return &updated, nil
}

func (m *PostRepository) Delete(id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	if m.FailWrites != nil {
		return m.FailWrites
	}
	delete(m.posts, id)
	return nil
}

// UserRepository implementation

func (m *UserRepository) Create(user *models.User) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, existing := range m.users {
		if existing.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.BeforeCreate()
	m.users[user.ID] = user
	return nil
}

func (m *UserRepository) GetByID(id string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (m *UserRepository) GetByEmail(email string) (*models.User, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *UserRepository) Mutate(id string, fn func(*models.User) error) (*models.User, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	user, exists := m.users[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}

	updated := *user
	if err := fn(&updated); err != nil {
		return nil, err
	}
	m.users[id] = &updated
	return &updated, nil
}
