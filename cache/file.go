package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/itbasis/go-clock"
)

// FileStore keeps one JSON file per key under a root directory.
type FileStore struct {
	root  string
	clock clock.Clock
}

type fileEntry struct {
	Expires time.Time       `json:"expires"`
	Data    json.RawMessage `json:"data"`
}

func NewFileStore(root string, clock clock.Clock) *FileStore {
	return &FileStore{root: root, clock: clock}
}

var keyReplacer = strings.NewReplacer("/", "_", ":", "_", "\\", "_", "..", "_")

func (s *FileStore) path(key string) string {
	return filepath.Join(s.root, keyReplacer.Replace(key)+".json")
}

func (s *FileStore) Get(ctx context.Context, key string, v any) error {
	b, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("error reading cache file for %s: %w", key, err)
	}

	var e fileEntry
	if err := json.Unmarshal(b, &e); err != nil {
		// A corrupt file is treated like a miss and gets rewritten on the next Set.
		return ErrCacheMiss
	}
	if !s.clock.Now().Before(e.Expires) {
		return ErrCacheMiss
	}

	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("error decoding cached value for %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("error encoding value for %s: %w", key, err)
	}
	b, err := json.Marshal(fileEntry{Expires: s.clock.Now().Add(ttl), Data: data})
	if err != nil {
		return fmt.Errorf("error encoding cache entry for %s: %w", key, err)
	}

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("error creating cache dir: %w", err)
	}

	// Write to a temp file first so a crash never leaves a half written entry.
	tmp, err := os.CreateTemp(s.root, "tmp-*")
	if err != nil {
		return fmt.Errorf("error creating cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error writing cache file: %w", err)
	}
	return os.Rename(tmp.Name(), s.path(key))
}
