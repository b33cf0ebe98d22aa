package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hokuto/jiten/internal/dict"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketKanji    = []byte("kanji")
	bucketRadicals = []byte("radicals")
	bucketMeta     = []byte("meta")
)

// Meta keys
const (
	keyLastCheck     = "last_check"
	versionKeyPrefix = "version:"
)

// Store holds the local dictionary database in BoltDB.
type Store struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path meta reads (promoted on access)
	cache map[string][]byte
}

func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		// Memory-only mode (no persistence)
		return &Store{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, "jiten.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	// Create buckets
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketKanji, bucketRadicals, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, cache: make(map[string][]byte)}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *Store) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	// Read from BoltDB
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *Store) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	// Update memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

func (s *Store) delete(bucket []byte, key string) {
	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	delete(s.cache, cacheKey)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b != nil {
			b.Delete([]byte(key))
		}
		return nil
	})
}

// === Kanji entries ===

// GetKanji looks up a single entry by its literal
func (s *Store) GetKanji(literal string) (dict.KanjiEntry, error) {
	var entry dict.KanjiEntry
	if s.db == nil {
		return entry, dict.ErrNotFound
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketKanji)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(literal)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return entry, dict.ErrNotFound
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		return entry, err
	}
	return entry, nil
}

// AllKanji returns every installed kanji entry
func (s *Store) AllKanji() ([]dict.KanjiEntry, error) {
	if s.db == nil {
		return nil, nil
	}

	var entries []dict.KanjiEntry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketKanji)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var entry dict.KanjiEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("corrupt entry %q: %w", k, err)
			}
			entries = append(entries, entry)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ReplaceKanji atomically swaps the kanji bucket contents for a new snapshot
// and records its version. Used by the update applier.
func (s *Store) ReplaceKanji(entries []dict.KanjiEntry, version dict.VersionInfo) error {
	if s.db == nil {
		return s.SaveVersion(dict.DataSetKanji, version)
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketKanji); err != nil {
			return err
		}
		b, err := tx.CreateBucket(bucketKanji)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			data, err := json.Marshal(entry)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(entry.Literal), data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace kanji data: %w", err)
	}

	return s.SaveVersion(dict.DataSetKanji, version)
}

// CountKanji returns the number of installed kanji entries
func (s *Store) CountKanji() int {
	if s.db == nil {
		return 0
	}
	var count int
	s.db.View(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucketKanji); b != nil {
			count = b.Stats().KeyN
		}
		return nil
	})
	return count
}

// === Versions ===

// Version returns the installed version record for a data set
func (s *Store) Version(kind dict.DataSetKind) (dict.VersionInfo, bool) {
	var info dict.VersionInfo
	ok := s.get(bucketMeta, versionKeyPrefix+string(kind), &info)
	return info, ok
}

// Versions returns all installed version records keyed by data set
func (s *Store) Versions() map[dict.DataSetKind]dict.VersionInfo {
	versions := make(map[dict.DataSetKind]dict.VersionInfo)
	for _, kind := range []dict.DataSetKind{dict.DataSetKanji, dict.DataSetRadicals} {
		if info, ok := s.Version(kind); ok {
			versions[kind] = info
		}
	}
	return versions
}

// SaveVersion records the installed version for a data set
func (s *Store) SaveVersion(kind dict.DataSetKind, info dict.VersionInfo) error {
	return s.set(bucketMeta, versionKeyPrefix+string(kind), info)
}

// DeleteVersion removes the version record for a data set
func (s *Store) DeleteVersion(kind dict.DataSetKind) {
	s.delete(bucketMeta, versionKeyPrefix+string(kind))
}

// Readiness derives the store lifecycle state from installed versions.
// A store with no kanji version record is empty regardless of bucket contents.
func (s *Store) Readiness() dict.Readiness {
	if _, ok := s.Version(dict.DataSetKanji); ok {
		return dict.ReadinessReady
	}
	return dict.ReadinessEmpty
}

// === Last check timestamp ===

// LastCheck returns the time of the last completed update check
func (s *Store) LastCheck() (time.Time, bool) {
	var unix int64
	if !s.get(bucketMeta, keyLastCheck, &unix) || unix == 0 {
		return time.Time{}, false
	}
	return time.Unix(unix, 0), true
}

// SaveLastCheck records the time of a completed update check
func (s *Store) SaveLastCheck(t time.Time) error {
	return s.set(bucketMeta, keyLastCheck, t.Unix())
}

// Destroy wipes all data sets and metadata
func (s *Store) Destroy() error {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketKanji, bucketRadicals, bucketMeta} {
			if err := tx.DeleteBucket(bucket); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(bucket); err != nil {
				return err
			}
		}
		return nil
	})
}
