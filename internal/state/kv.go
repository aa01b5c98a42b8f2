package state

import (
	"database/sql"
	"errors"

	dbutil "github.com/llehouerou/shelf/internal/db"
)

const (
	keyIndex  = "index"
	keyConfig = "config"
)

// get returns the value stored under key, or nil when absent.
func get(db *sql.DB, key string) ([]byte, error) {
	var value []byte
	err := db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// put replaces the value under key. The previous value stays in place unless
// the transaction commits.
func put(db *sql.DB, key string, value []byte) error {
	return dbutil.WithTx(db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO kv (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, key, value)
		return err
	})
}

func del(db *sql.DB, key string) error {
	return dbutil.WithTx(db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM kv WHERE key = ?`, key)
		return err
	})
}
