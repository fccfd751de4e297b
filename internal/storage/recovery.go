package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/lynneapp/lynne/internal/logging"
)

// CheckIntegrity reads a sample of keys to detect value corruption.
func (d *DB) CheckIntegrity() error {
	if d == nil || d.db == nil {
		return fmt.Errorf("database not initialized")
	}

	var bad int
	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchSize = 10
		it := txn.NewIterator(opts)
		defer it.Close()

		count := 0
		for it.Rewind(); it.Valid() && count < 100; it.Next() {
			if err := it.Item().Value(func([]byte) error { return nil }); err != nil {
				bad++
			}
			count++
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("integrity scan: %w", err)
	}
	if bad > 0 {
		return fmt.Errorf("found %d unreadable values", bad)
	}
	return nil
}

// OpenWithIntegrityCheck opens the database and verifies it is readable.
// On a failed check the database is closed, a backup of the directory is
// attempted, and the check error is returned.
func OpenWithIntegrityCheck(opts Options) (*DB, error) {
	db, err := Open(opts)
	if err != nil {
		return nil, err
	}

	if err := db.CheckIntegrity(); err != nil {
		if db.path != "" {
			if backup, berr := CreateBackup(db.path); berr == nil {
				logging.Warn("database failed integrity check, backup created",
					"backup", backup)
			}
		}
		db.Close()
		return nil, err
	}
	return db, nil
}

// CreateBackup copies the database directory to a timestamped sibling
// under backups/ and returns the backup path.
func CreateBackup(dbPath string) (string, error) {
	if dbPath == "" {
		return "", fmt.Errorf("database path is empty")
	}

	backupDir := filepath.Join(filepath.Dir(dbPath), "backups")
	if err := os.MkdirAll(backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	backupPath := filepath.Join(backupDir, fmt.Sprintf("db-backup-%s", timestamp))

	if err := copyDir(dbPath, backupPath); err != nil {
		return "", fmt.Errorf("failed to copy database: %w", err)
	}

	logging.Info("database backup created", "path", backupPath)
	return backupPath, nil
}

func copyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, srcInfo.Mode()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}
		if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, srcInfo.Mode())
}
