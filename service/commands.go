package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"blogapi/app/auth"
	"blogapi/app/config"
	"blogapi/app/models"
	"blogapi/app/repositories"
	"blogapi/app/services"

	"github.com/dgraph-io/badger/v4"
)

// HandleCommand runs a blogapi subcommand and returns its exit code. The
// caller decides whether to exit the process.
func HandleCommand(args []string) int {
	if len(args) < 1 {
		PrintHelp()
		return 1
	}

	cmd := args[0]
	switch cmd {
	case "serve":
		return RunAppServer(args[1:])
	case "migrate":
		return migrate()
	case "clean":
		return clean()
	case "user":
		if len(args) != 4 || args[1] != "add" {
			fmt.Println("Error: usage is 'user add <username> <password>'")
			return 1
		}
		return addUser(args[2], args[3])
	case "token":
		if len(args) != 2 {
			fmt.Println("Error: username required for token")
			return 1
		}
		return issueToken(args[1])
	case "backup":
		file := ""
		if len(args) > 1 {
			file = args[1]
		}
		return backup(file)
	case "restore":
		if len(args) < 2 {
			fmt.Println("Error: backup file path required for restore")
			return 1
		}
		return restore(args[1])
	case "help":
		PrintHelp()
		return 0
	default:
		fmt.Printf("Unknown command: %s\n\n", cmd)
		PrintHelp()
		return 1
	}
}

// PrintHelp prints help for the subcommands.
func PrintHelp() {
	helpText := `Usage: blogapi <command> [options]

Commands:
  serve [--addr <addr>] [--storage <kind>]
                                  Run the blog API until interrupted
  migrate                         Create or update the database schema
  clean                           Delete the local sqlite or badger database
  user add <username> <password>  Create an API account
  token <username>                Print a bearer token for an account
  backup [file]                   Back up the badger database
  restore <file>                  Restore the badger database from a backup
  version                         Show version information
  help                            Display this help message

Configuration is read from the environment and an optional .env file
(BLOG_STORAGE, BLOG_SQLITE_PATH, BLOG_BADGER_PATH, DATABASE_URL, JWT_SECRET, ...).
`
	fmt.Println(helpText)
}

// withStore opens the configured store for a one-shot command.
func withStore(fn func(cfg config.Config, store *repositories.Store) int) int {
	cfg, ok := mustConfig()
	if !ok {
		return 1
	}
	store, err := openStore(cfg)
	if err != nil {
		fmt.Printf("Failed to open %s storage: %v\n", cfg.Storage, err)
		return 1
	}
	defer store.Close()
	return fn(cfg, store)
}

// migrate opens the store, which brings the schema up to date.
func migrate() int {
	return withStore(func(cfg config.Config, store *repositories.Store) int {
		fmt.Printf("Database migrated successfully (%s)\n", store.Kind)
		return 0
	})
}

func addUser(username, password string) int {
	return withStore(func(cfg config.Config, store *repositories.Store) int {
		users := services.NewUserService(store.Users, auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL))
		user, err := users.Register(context.Background(), &models.Credentials{Username: username, Password: password})
		if err != nil {
			fmt.Printf("Failed to create user: %v\n", err)
			return 1
		}
		fmt.Printf("User %s created with id %d\n", user.Username, user.ID)
		return 0
	})
}

func issueToken(username string) int {
	return withStore(func(cfg config.Config, store *repositories.Store) int {
		users := services.NewUserService(store.Users, auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL))
		token, expires, err := users.TokenFor(context.Background(), username)
		if errors.Is(err, services.ErrNotFound) {
			fmt.Printf("No such user: %s\n", username)
			return 1
		}
		if err != nil {
			fmt.Printf("Failed to issue token: %v\n", err)
			return 1
		}
		fmt.Println(token)
		fmt.Printf("Expires at %s\n", expires.Format(time.RFC3339))
		return 0
	})
}

// localPath returns the on-disk location of a file-backed store.
func localPath(cfg config.Config) (string, bool) {
	switch cfg.Storage {
	case config.StorageSQLite:
		return cfg.SQLitePath, true
	case config.StorageBadger:
		return cfg.BadgerPath, true
	default:
		return "", false
	}
}

// clean removes the database.
func clean() int {
	cfg, ok := mustConfig()
	if !ok {
		return 1
	}
	path, local := localPath(cfg)
	if !local {
		fmt.Printf("Clean is not supported for %s storage\n", cfg.Storage)
		return 1
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("Database is already clean (does not exist)")
		return 0
	}

	if !confirm("Are you sure you want to clean the database? This cannot be undone.") {
		fmt.Println("Operation cancelled")
		return 1
	}
	if err := os.RemoveAll(path); err != nil {
		fmt.Printf("Failed to clean database: %v\n", err)
		return 1
	}
	fmt.Println("Database cleaned successfully")
	return 0
}

func requireBadger(cfg config.Config, action string) bool {
	if cfg.Storage != config.StorageBadger {
		fmt.Printf("%s is only supported for badger storage (BLOG_STORAGE=%s)\n", action, cfg.Storage)
		return false
	}
	return true
}

// backup writes a full badger backup to file, or to a timestamped file
// under data/backups when file is empty.
func backup(file string) int {
	cfg, ok := mustConfig()
	if !ok || !requireBadger(cfg, "Backup") {
		return 1
	}
	if _, err := os.Stat(cfg.BadgerPath); os.IsNotExist(err) {
		fmt.Println("No database exists to backup")
		return 1
	}

	if file == "" {
		file = filepath.Join("data", "backups", fmt.Sprintf("backup_%d.bak", time.Now().Unix()))
	}
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		fmt.Printf("Failed to create backup directory: %v\n", err)
		return 1
	}

	return withStore(func(cfg config.Config, store *repositories.Store) int {
		f, err := os.Create(file)
		if err != nil {
			fmt.Printf("Failed to create backup file: %v\n", err)
			return 1
		}
		defer f.Close()

		if _, err := store.Badger().Backup(f, 0); err != nil {
			fmt.Printf("Failed to backup database: %v\n", err)
			return 1
		}
		fmt.Printf("Database backed up successfully to %s\n", file)
		return 0
	})
}

// restore replaces the badger database with the contents of a backup.
func restore(backupFile string) int {
	cfg, ok := mustConfig()
	if !ok || !requireBadger(cfg, "Restore") {
		return 1
	}

	fi, err := os.Stat(backupFile)
	if os.IsNotExist(err) {
		fmt.Printf("Backup file does not exist: %s\n", backupFile)
		return 1
	}
	if err != nil {
		fmt.Printf("Failed to stat backup file: %v\n", err)
		return 1
	}
	if fi.Size() == 0 {
		fmt.Printf("Backup file is empty: %s\n", backupFile)
		return 1
	}

	if _, err := os.Stat(cfg.BadgerPath); err == nil {
		if !confirm("Existing database found. Do you want to replace it?") {
			fmt.Println("Operation cancelled")
			return 1
		}
		if err := os.RemoveAll(cfg.BadgerPath); err != nil {
			fmt.Printf("Failed to remove existing database: %v\n", err)
			return 1
		}
	}

	return withStore(func(cfg config.Config, store *repositories.Store) int {
		f, err := os.Open(backupFile)
		if err != nil {
			fmt.Printf("Failed to open backup file: %v\n", err)
			return 1
		}
		defer f.Close()

		if err := loadBackup(store.Badger(), f); err != nil {
			fmt.Printf("Failed to restore database: %v\n", err)
			return 1
		}
		fmt.Println("Database restored successfully")
		return 0
	})
}

// loadBackup guards against badger panicking on a corrupt backup stream.
func loadBackup(db *badger.DB, f *os.File) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic occurred during restore: %v", r)
		}
	}()
	return db.Load(f, 4)
}
