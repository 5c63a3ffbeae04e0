package repositories

import (
	"context"
	"errors"
	"strconv"

	"blogapi/app/models"

	"github.com/dgraph-io/badger/v4"
)

// userRecord is the stored form of a user. models.User hides the password
// hash from JSON, so it cannot be marshalled directly.
type userRecord struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

func (u userRecord) toModel() *models.User {
	return &models.User{ID: u.ID, Username: u.Username, PasswordHash: u.PasswordHash}
}

// BadgerUserRepository implements UserRepository using BadgerDB
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Create stores a new user, failing with ErrDuplicate if the username is taken
func (r *BadgerUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		idxKey := usernameIndexKey(user.Username)
		_, err := txn.Get(idxKey)
		if err == nil {
			return ErrDuplicate
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		id, err := getNextID(txn, UserSeqKey)
		if err != nil {
			return err
		}
		user.ID = id

		data, err := marshalEntity(userRecord{ID: user.ID, Username: user.Username, PasswordHash: user.PasswordHash})
		if err != nil {
			return err
		}
		if err := txn.Set(userKey(user.ID), data); err != nil {
			return err
		}
		return txn.Set(idxKey, []byte(strconv.Itoa(user.ID)))
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	var rec userRecord
	err := r.db.View(func(txn *badger.Txn) error {
		return getEntity(txn, userKey(id), &rec)
	})
	if err != nil {
		return nil, err
	}
	return rec.toModel(), nil
}

// GetByUsername retrieves a user through the username index
func (r *BadgerUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	var rec userRecord
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(usernameIndexKey(username))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		raw, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(string(raw))
		if err != nil {
			return err
		}
		return getEntity(txn, userKey(id), &rec)
	})
	if err != nil {
		return nil, err
	}
	return rec.toModel(), nil
}
