package wildcard

import (
	"bufio"
	"bytes"
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/promptstream/errors"
)

// DirName is the folder name bootstrapped next to an installation.
const DirName = "wildcards"

// FindOrCreateDir returns <base>/wildcards, creating it when missing.
func FindOrCreateDir(base string) (string, error) {
	abs, err := filepath.Abs(base)
	if err != nil {
		return "", fmt.Errorf("resolve wildcards base %s: %w", base, err)
	}

	dir := filepath.Join(abs, DirName)
	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		return dir, nil
	case err == nil:
		return "", fmt.Errorf("wildcards path %s is not a directory", dir)
	case !os.IsNotExist(err):
		return "", fmt.Errorf("stat wildcards dir: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create wildcards dir: %w", err)
	}
	return dir, nil
}

// Config configures a Manager.
type Config struct {
	// Dirs are searched in order; the first folder defining a name wins.
	Dirs []string

	// FS is searched after Dirs, typically an embed.FS of bundled wildcards.
	FS fs.FS

	// Logger receives warnings about unreadable files. Defaults to slog.Default().
	Logger *slog.Logger
}

// entry is one loaded wildcard.
type entry struct {
	name   string // display name as found on disk
	values []string
}

// Manager loads and caches wildcard files.
type Manager struct {
	mu     sync.RWMutex
	dirs   []string
	fsys   fs.FS
	cache  map[string]entry // folded name -> entry; nil until loaded
	logger *slog.Logger

	generation atomic.Uint64
}

// NewManager creates a wildcard manager.
func NewManager(cfg Config) *Manager {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		dirs:   append([]string(nil), cfg.Dirs...),
		fsys:   cfg.FS,
		logger: logger,
	}
}

// AddSearchDir adds a folder ahead of the existing ones.
func (m *Manager) AddSearchDir(dir string) {
	m.mu.Lock()
	m.dirs = append([]string{dir}, m.dirs...)
	m.mu.Unlock()
	m.ClearCache()
}

// Dirs returns the search folders in lookup order.
func (m *Manager) Dirs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.dirs...)
}

// Values returns the values of the named wildcard.
func (m *Manager) Values(name string) ([]string, error) {
	cache, err := m.loaded()
	if err != nil {
		return nil, err
	}

	e, ok := cache[normalize(name)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, errors.ErrWildcardNotFound)
	}
	return append([]string(nil), e.values...), nil
}

// Exists reports whether the named wildcard has values.
func (m *Manager) Exists(name string) bool {
	_, err := m.Values(name)
	return err == nil
}

// Names returns all wildcard names, sorted.
func (m *Manager) Names() ([]string, error) {
	cache, err := m.loaded()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(cache))
	for _, e := range cache {
		names = append(names, e.name)
	}
	sort.Strings(names)
	return names, nil
}

// ClearCache drops loaded wildcards and bumps the generation.
func (m *Manager) ClearCache() {
	m.mu.Lock()
	m.cache = nil
	m.mu.Unlock()
	m.generation.Add(1)
}

// Generation changes every time the cache is cleared. Expanders compare it
// before and after iterating to detect wildcards reloaded mid-sequence.
func (m *Manager) Generation() uint64 {
	return m.generation.Load()
}

// loaded returns the cache, loading it on first use.
func (m *Manager) loaded() (map[string]entry, error) {
	m.mu.RLock()
	cache := m.cache
	m.mu.RUnlock()
	if cache != nil {
		return cache, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cache != nil {
		return m.cache, nil
	}

	cache = make(map[string]entry)
	for _, dir := range m.dirs {
		if err := m.loadFS(cache, os.DirFS(dir), dir); err != nil {
			return nil, err
		}
	}
	if m.fsys != nil {
		if err := m.loadFS(cache, m.fsys, "embedded"); err != nil {
			return nil, err
		}
	}

	m.cache = cache
	return cache, nil
}

// loadFS adds every wildcard under fsys that is not already defined.
func (m *Manager) loadFS(cache map[string]entry, fsys fs.FS, label string) error {
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == "." && stderrors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll // missing search folder
			}
			m.logger.Warn("skipping unreadable wildcard path",
				slog.String("source", label),
				slog.String("path", p),
				slog.String("error", err.Error()))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if !isWildcardFile(p) {
			return nil
		}
		base := strings.TrimSuffix(p, path.Ext(p))

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			m.logger.Warn("skipping unreadable wildcard file",
				slog.String("source", label),
				slog.String("path", p),
				slog.String("error", err.Error()))
			return nil
		}

		switch ext {
		case ".txt":
			add(cache, base, parseLines(data))
		case ".yaml", ".yml", ".json":
			var doc any
			if err := yaml.Unmarshal(data, &doc); err != nil {
				m.logger.Warn("skipping malformed wildcard file",
					slog.String("source", label),
					slog.String("path", p),
					slog.String("error", err.Error()))
				return nil
			}
			flatten(cache, base, doc)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("load wildcards from %s: %w", label, err)
	}
	return nil
}

// add stores values under name unless an earlier source already defined it.
func add(cache map[string]entry, name string, values []string) {
	if len(values) == 0 {
		return
	}
	key := normalize(name)
	if _, exists := cache[key]; exists {
		return
	}
	cache[key] = entry{name: name, values: values}
}

// flatten walks a decoded structured file.
func flatten(cache map[string]entry, name string, node any) {
	switch v := node.(type) {
	case map[string]any:
		for key, child := range v {
			flatten(cache, name+"/"+key, child)
		}
	case map[any]any:
		for key, child := range v {
			flatten(cache, fmt.Sprintf("%s/%v", name, key), child)
		}
	case []any:
		values := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := scalar(item); ok {
				values = append(values, s)
			}
		}
		add(cache, name, values)
	default:
		if s, ok := scalar(v); ok {
			add(cache, name, []string{s})
		}
	}
}

func scalar(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		val = strings.TrimSpace(val)
		return val, val != ""
	case int, int64, float64, bool:
		return fmt.Sprintf("%v", val), true
	default:
		return "", false
	}
}

// parseLines splits a .txt wildcard file.
func parseLines(data []byte) []string {
	var values []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		values = append(values, line)
	}
	return values
}

// normalize maps a wildcard name to its lookup key.
func normalize(name string) string {
	name = strings.Trim(filepath.ToSlash(strings.TrimSpace(name)), "/")
	return cases.Fold().String(name)
}
