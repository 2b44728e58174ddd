package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketSelections = []byte("selections")

// record is the stored form of one remembered selection.
type record struct {
	ItemID    string    `json:"item_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store persists the last selected item per named source, so a restart
// can reconcile back onto it instead of snapping to the first tab.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the session database at path. An empty path
// yields a nil-db store whose operations are no-ops, for hosts that run
// with persistence disabled.
func Open(path string) (*Store, error) {
	if path == "" {
		return &Store{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open session db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSelections)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// SaveSelection remembers the selected item id for a source.
func (s *Store) SaveSelection(sourceName, itemID string) error {
	if s.db == nil {
		return nil
	}
	data, err := json.Marshal(record{ItemID: itemID, UpdatedAt: time.Now()})
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSelections).Put([]byte(sourceName), data)
	})
}

// LastSelection returns the remembered item id for a source, if any.
func (s *Store) LastSelection(sourceName string) (string, bool) {
	if s.db == nil {
		return "", false
	}
	var rec record
	found := false
	s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketSelections).Get([]byte(sourceName))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil
		}
		found = true
		return nil
	})
	return rec.ItemID, found
}

// Forget drops the remembered selection for a source.
func (s *Store) Forget(sourceName string) error {
	if s.db == nil {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSelections).Delete([]byte(sourceName))
	})
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
