package repositories

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"blogapi/app/config"
	"blogapi/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

// Store bundles the repositories of one storage backend.
type Store struct {
	Kind     string
	Posts    PostRepository
	Comments CommentRepository
	Users    UserRepository

	badgerDB *badger.DB
	gormDB   *gorm.DB
}

// Open connects to the backend selected in cfg and prepares its schema.
func Open(cfg config.Config) (*Store, error) {
	switch cfg.Storage {
	case config.StorageBadger:
		if err := os.MkdirAll(cfg.BadgerPath, 0755); err != nil {
			return nil, fmt.Errorf("failed to create badger directory: %w", err)
		}
		db, err := badger.Open(badgerOptions(cfg.BadgerPath))
		if err != nil {
			return nil, fmt.Errorf("failed to open badger: %w", err)
		}
		return NewBadgerStore(db), nil
	case config.StorageSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
			}
		}
		return OpenGorm("sqlite3", cfg.SQLitePath)
	case config.StoragePostgres:
		return OpenGorm("postgres", cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}

func badgerOptions(path string) badger.Options {
	return badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
}

// OpenGorm opens a relational database and migrates the schema.
func OpenGorm(dialect, dsn string) (*Store, error) {
	db, err := gorm.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}
	db.LogMode(false)
	if dialect == "sqlite3" {
		// One writer at a time; sqlite would otherwise answer "database is locked".
		db.DB().SetMaxOpenConns(1)
	}

	store := NewGormStore(db)
	if err := store.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewBadgerStore wraps an open badger database.
func NewBadgerStore(db *badger.DB) *Store {
	return &Store{
		Kind:     config.StorageBadger,
		Posts:    NewBadgerPostRepository(db),
		Comments: NewBadgerCommentRepository(db),
		Users:    NewBadgerUserRepository(db),
		badgerDB: db,
	}
}

// NewGormStore wraps an open relational database.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Kind:     db.Dialect().GetName(),
		Posts:    NewGormPostRepository(db),
		Comments: NewGormCommentRepository(db),
		Users:    NewGormUserRepository(db),
		gormDB:   db,
	}
}

// Migrate creates or updates the relational schema. Badger needs none.
func (s *Store) Migrate() error {
	if s.gormDB == nil {
		return nil
	}
	db := s.gormDB
	if err := db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}).Error; err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// sqlite cannot add constraints to an existing table; the repositories
	// enforce the same rules there.
	if db.Dialect().GetName() != "postgres" {
		return nil
	}
	foreignKeys := []struct {
		field, dest, onDelete string
	}{
		{"post_id", "posts(id)", "CASCADE"},
		{"parent_comment_id", "comments(id)", "SET NULL"},
	}
	for _, fk := range foreignKeys {
		keyName := db.Dialect().BuildKeyName("comments", fk.field, fk.dest, "foreign")
		if db.Dialect().HasForeignKey("comments", keyName) {
			continue
		}
		if err := db.Model(&models.Comment{}).AddForeignKey(fk.field, fk.dest, fk.onDelete, "CASCADE").Error; err != nil {
			return fmt.Errorf("failed to add foreign key %s: %w", fk.field, err)
		}
	}
	return nil
}

// Badger returns the underlying badger database, or nil for relational stores.
func (s *Store) Badger() *badger.DB {
	return s.badgerDB
}

func (s *Store) Close() error {
	if s.badgerDB != nil {
		if err := s.badgerDB.Close(); err != nil {
			return fmt.Errorf("failed to close badger: %w", err)
		}
	}
	if s.gormDB != nil {
		if err := s.gormDB.Close(); err != nil {
			return fmt.Errorf("failed to close the database connection: %w", err)
		}
	}
	log.Printf("Closed %s store", s.Kind)
	return nil
}
