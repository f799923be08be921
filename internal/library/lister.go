// Package library exposes the generator output directories to the web
// UI: file listings, previews and downloads.
package library

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// FileInfo describes one output file relative to its listing root.
type FileInfo struct {
	Name    string    `json:"name"`
	RelPath string    `json:"rel_path"`
	SizeKB  int64     `json:"size_kb"`
	ModTime time.Time `json:"mtime"`
}

type listCache struct {
	version uint64
	scanned time.Time
	files   []FileInfo
}

type listerOptions struct {
	cacheTTL time.Duration
}

type Option func(*listerOptions)

func WithCacheTTL(ttl time.Duration) Option {
	return func(o *listerOptions) {
		o.cacheTTL = ttl
	}
}

// Lister walks output directories and caches the results briefly so that
// a polling UI does not re-scan the tree on every request.
type Lister struct {
	mu       sync.RWMutex
	cacheTTL time.Duration
	cache    map[string]*listCache
	version  uint64
}

func NewLister(opts ...Option) *Lister {
	options := listerOptions{
		cacheTTL: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(&options)
	}
	return &Lister{
		cacheTTL: options.cacheTTL,
		cache:    make(map[string]*listCache),
	}
}

// Invalidate drops all cached listings. Called when the settings change
// the output directories.
func (l *Lister) Invalidate() {
	l.mu.Lock()
	l.cache = make(map[string]*listCache)
	l.version++
	l.mu.Unlock()
}

// List returns every file under dir whose extension matches ext (e.g.
// ".txt"), sorted by path. A missing directory yields an empty list.
func (l *Lister) List(dir, ext string) ([]FileInfo, error) {
	key := dir + "|" + ext

	l.mu.RLock()
	version := l.version
	cacheTTL := l.cacheTTL
	if cached, ok := l.cache[key]; ok && cached.version == version && (cacheTTL <= 0 || time.Since(cached.scanned) < cacheTTL) {
		files := append([]FileInfo(nil), cached.files...)
		l.mu.RUnlock()
		return files, nil
	}
	l.mu.RUnlock()

	files, err := scanDir(dir, ext)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	if l.version == version {
		l.cache[key] = &listCache{version: version, scanned: time.Now(), files: append([]FileInfo(nil), files...)}
	}
	l.mu.Unlock()
	return files, nil
}

func scanDir(dir, ext string) ([]FileInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return []FileInfo{}, nil
		}
		return nil, err
	}

	files := make([]FileInfo, 0)
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), ext) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, FileInfo{
			Name:    d.Name(),
			RelPath: filepath.ToSlash(rel),
			SizeKB:  (info.Size() + 1023) / 1024,
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].RelPath < files[j].RelPath
	})
	return files, nil
}
