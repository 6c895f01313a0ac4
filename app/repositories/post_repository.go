package repositories

import (
	"sort"

	"github.com/bajrang214/looptalk-server/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create assigns the post an id and creation time and persists it.
func (r *BadgerPostRepository) Create(post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	post.BeforeCreate()

	data, err := marshalEntity(post)
	if err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(postKey(post.ID), data)
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id string) (*models.Post, error) {
	var post models.Post

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(postKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		})
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List retrieves all posts, newest first.
func (r *BadgerPostRepository) List() ([]*models.Post, error) {
	return r.list(func(*models.Post) bool { return true })
}

// ListByAuthor retrieves all posts by one author, newest first.
func (r *BadgerPostRepository) ListByAuthor(authorID string) ([]*models.Post, error) {
	return r.list(func(p *models.Post) bool { return p.AuthorID == authorID })
}

func (r *BadgerPostRepository) list(keep func(*models.Post) bool) ([]*models.Post, error) {
	var posts []*models.Post

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var post models.Post
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return err
			}
			if keep(&post) {
				posts = append(posts, &post)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Keys are uuids, so iteration order is meaningless; sort by creation
	// time, newest first.
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

// Mutate loads the post, applies fn and stores the result, all within a
// single Badger transaction. An error from fn aborts the write and is
// returned unwrapped so callers can test it with errors.Is.
func (r *BadgerPostRepository) Mutate(id string, fn func(*models.Post) error) (*models.Post, error) {
	var post models.Post

	err := r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(postKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		}); err != nil {
			return err
		}

		if err := fn(&post); err != nil {
			return err
		}

		data, err := marshalEntity(&post)
		if err != nil {
			return err
		}
		return txn.Set(postKey(id), data)
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete deletes a post by ID. Comments are embedded in the post document,
// so they go with it.
func (r *BadgerPostRepository) Delete(id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := postKey(id)

		// Verify post exists
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return txn.Delete(key)
	})
}
