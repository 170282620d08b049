package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/mmcdole/cinematch/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket and key names
var bucketPreferences = []byte("preferences")

const (
	keyLiked    = "liked_movies"
	keyDisliked = "disliked_movies"
)

// PreferenceStore implements domain.PreferenceStore using BoltDB.
type PreferenceStore struct {
	db     *bolt.DB
	logger *slog.Logger
	mu     sync.RWMutex // Protects memory cache

	// In-memory cache of encoded records (promoted on access)
	cache map[string][]byte
}

var _ domain.PreferenceStore = (*PreferenceStore)(nil)

// NewPreferenceStore opens (or creates) the preference database at path.
// An empty path keeps everything in memory.
func NewPreferenceStore(path string, logger *slog.Logger) (*PreferenceStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		// Memory-only mode (no persistence)
		return &PreferenceStore{logger: logger, cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPreferences)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &PreferenceStore{db: db, logger: logger, cache: make(map[string][]byte)}, nil
}

func (s *PreferenceStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

// read returns the raw record for key, consulting the memory cache first.
func (s *PreferenceStore) read(key string) []byte {
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return data
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPreferences)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to read preferences", "key", key, "error", err)
		return nil
	}
	if data == nil {
		return nil
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	return data
}

// titles decodes the title list under key. A record that is not a JSON
// array of non-empty strings is logged, purged, and read as empty.
func (s *PreferenceStore) titles(key string) []string {
	data := s.read(key)
	if len(data) == 0 {
		return []string{}
	}

	var titles []string
	if err := json.Unmarshal(data, &titles); err != nil {
		s.logger.Error("corrupt preference record, clearing", "key", key, "error", err)
		s.delete(key)
		return []string{}
	}
	// null elements decode to ""
	if slices.Contains(titles, "") {
		s.logger.Error("corrupt preference record, clearing", "key", key, "error", "empty title")
		s.delete(key)
		return []string{}
	}
	if titles == nil {
		return []string{}
	}
	return titles
}

// save persists the given records in a single transaction. The memory cache
// is updated even when the write fails so the session keeps working.
func (s *PreferenceStore) save(records map[string][]string) error {
	encoded := make(map[string][]byte, len(records))
	for key, titles := range records {
		if titles == nil {
			titles = []string{}
		}
		data, err := json.Marshal(titles)
		if err != nil {
			return err
		}
		encoded[key] = data
	}

	s.mu.Lock()
	for key, data := range encoded {
		s.cache[key] = data
	}
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketPreferences)
		if err != nil {
			return err
		}
		for key, data := range encoded {
			if err := b.Put([]byte(key), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// persist is the fire-and-forget wrapper around save.
func (s *PreferenceStore) persist(records map[string][]string) {
	if err := s.save(records); err != nil {
		s.logger.Error("failed to persist preferences", "error", err)
	}
}

func (s *PreferenceStore) delete(keys ...string) {
	s.mu.Lock()
	for _, key := range keys {
		delete(s.cache, key)
	}
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPreferences)
		if b == nil {
			return nil
		}
		for _, key := range keys {
			if err := b.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to delete preferences", "keys", keys, "error", err)
	}
}

func (s *PreferenceStore) add(key, title string) {
	titles := s.titles(key)
	if slices.Contains(titles, title) {
		return
	}
	s.persist(map[string][]string{key: append(titles, title)})
}

func (s *PreferenceStore) remove(key, title string) {
	titles := s.titles(key)
	s.persist(map[string][]string{key: without(titles, title)})
}

func without(titles []string, title string) []string {
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		if t != title {
			out = append(out, t)
		}
	}
	return out
}

// === Liked ===

func (s *PreferenceStore) GetLiked() []string {
	return s.titles(keyLiked)
}

func (s *PreferenceStore) AddLiked(title string) {
	s.add(keyLiked, title)
}

func (s *PreferenceStore) RemoveLiked(title string) {
	s.remove(keyLiked, title)
}

func (s *PreferenceStore) IsLiked(title string) bool {
	return slices.Contains(s.GetLiked(), title)
}

// === Disliked ===

func (s *PreferenceStore) GetDisliked() []string {
	return s.titles(keyDisliked)
}

func (s *PreferenceStore) AddDisliked(title string) {
	s.add(keyDisliked, title)
}

func (s *PreferenceStore) RemoveDisliked(title string) {
	s.remove(keyDisliked, title)
}

func (s *PreferenceStore) IsDisliked(title string) bool {
	return slices.Contains(s.GetDisliked(), title)
}

// === Combined ===

// SetPreference places title in the liked set, the disliked set, or neither,
// writing both records in one transaction.
func (s *PreferenceStore) SetPreference(title string, pref domain.Preference) {
	liked := without(s.GetLiked(), title)
	disliked := without(s.GetDisliked(), title)

	switch pref {
	case domain.PreferenceLike:
		liked = append(liked, title)
	case domain.PreferenceDislike:
		disliked = append(disliked, title)
	}

	s.logger.Debug("set preference", "title", title, "preference", pref.String())
	s.persist(map[string][]string{keyLiked: liked, keyDisliked: disliked})
}

func (s *PreferenceStore) Preference(title string) domain.Preference {
	switch {
	case s.IsLiked(title):
		return domain.PreferenceLike
	case s.IsDisliked(title):
		return domain.PreferenceDislike
	default:
		return domain.PreferenceNone
	}
}

// ClearAll deletes both records.
func (s *PreferenceStore) ClearAll() {
	s.delete(keyLiked, keyDisliked)
}

func (s *PreferenceStore) Stats() domain.Stats {
	liked := len(s.GetLiked())
	disliked := len(s.GetDisliked())
	return domain.Stats{
		LikedCount:    liked,
		DislikedCount: disliked,
		TotalCount:    liked + disliked,
	}
}
