package backend

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// CacheManager is a TTL'd JSON file cache. The stock-guide service uses it
// to mirror the one-hour cache the dashboard keeps; a nil *CacheManager is a
// disabled cache.
type CacheManager struct {
	cacheDir string
	ttl      time.Duration
}

func NewCacheManager(cacheDir string, ttl time.Duration) *CacheManager {
	return &CacheManager{cacheDir: cacheDir, ttl: ttl}
}

func (cm *CacheManager) key(source, method string, params any) string {
	data, _ := json.Marshal(params)
	return fmt.Sprintf("%s_%s_%x.json", source, method, md5.Sum(data))
}

// Get loads a cached value into result, reporting whether a fresh entry was
// found. Expired entries are removed on read.
func (cm *CacheManager) Get(source, method string, params any, result any) bool {
	if cm == nil {
		return false
	}

	path := filepath.Join(cm.cacheDir, cm.key(source, method, params))
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if time.Since(info.ModTime()) > cm.ttl {
		os.Remove(path)
		return false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, result) == nil
}

// Set stores a value; cache write failures are returned but callers treat
// them as non-fatal.
func (cm *CacheManager) Set(source, method string, params any, data any) error {
	if cm == nil {
		return nil
	}

	if err := os.MkdirAll(cm.cacheDir, 0o755); err != nil {
		return err
	}
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(cm.cacheDir, cm.key(source, method, params)), jsonData, 0o644)
}
