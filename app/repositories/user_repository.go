package repositories

import (
	"github.com/bajrang214/looptalk-server/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// BadgerUserRepository implements UserRepository using BadgerDB. Next to the
// user document it maintains a useremail:<email> index key so logins can
// look the user up without scanning.
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Create persists a new user. Returns ErrDuplicate if the email is already
// registered.
func (r *BadgerUserRepository) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.BeforeCreate()

	data, err := marshalEntity(user)
	if err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(userEmailKey(user.Email))
		if err == nil {
			return ErrDuplicate
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		if err := txn.Set(userKey(user.ID), data); err != nil {
			return err
		}
		return txn.Set(userEmailKey(user.Email), []byte(user.ID))
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User

	err := r.db.View(func(txn *badger.Txn) error {
		return getUser(txn, id, &user)
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user through the email index.
func (r *BadgerUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userEmailKey(email))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var id string
		if err := item.Value(func(val []byte) error {
			id = string(val)
			return nil
		}); err != nil {
			return err
		}
		return getUser(txn, id, &user)
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Mutate loads the user, applies fn and stores the result within a single
// transaction. The email is treated as immutable here; fn must not change it.
func (r *BadgerUserRepository) Mutate(id string, fn func(*models.User) error) (*models.User, error) {
	var user models.User

	err := r.db.Update(func(txn *badger.Txn) error {
		if err := getUser(txn, id, &user); err != nil {
			return err
		}

		if err := fn(&user); err != nil {
			return err
		}

		data, err := marshalEntity(&user)
		if err != nil {
			return err
		}
		return txn.Set(userKey(id), data)
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func getUser(txn *badger.Txn, id string, user *models.User) error {
	item, err := txn.Get(userKey(id))
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, user)
	})
}
