package application

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/mkessler/quickcap/internal/domain/category"
)

// CategoryService serves category metadata from an explicit in-process
// cache. The cache is loaded lazily on first use and only refreshed through
// Reload; staleness between reloads is accepted for this domain.
type CategoryService struct {
	store  category.Store
	logger *slog.Logger

	mu         sync.RWMutex
	cache      map[string]category.Category
	defaultKey string
	loaded     bool
}

func NewCategoryService(store category.Store, logger *slog.Logger) *CategoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryService{store: store, logger: logger}
}

// Reload drops the cache and reads the store again.
func (s *CategoryService) Reload() error {
	s.mu.Lock()
	s.loaded = false
	s.mu.Unlock()
	return s.ensureLoaded()
}

func (s *CategoryService) ensureLoaded() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}

	rows, err := s.store.All()
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}

	cache := make(map[string]category.Category, len(rows))
	defaultKey := category.DefaultKey
	for _, c := range rows {
		if c.Name == "" {
			c.Name = capitalize(c.Key)
		}
		cache[c.Key] = c
		if c.Default {
			defaultKey = c.Key
		}
	}

	s.cache = cache
	s.defaultKey = defaultKey
	s.loaded = true
	s.logger.Debug("category cache loaded", "count", len(cache), "default", defaultKey)
	return nil
}

// All returns every category, default first, then by name.
func (s *CategoryService) All() ([]category.Category, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]category.Category, 0, len(s.cache))
	for _, c := range s.cache {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Default != out[j].Default {
			return out[i].Default
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Resolve returns display metadata for a key. Unknown keys degrade to
// documented fallbacks so classification never blocks task creation.
func (s *CategoryService) Resolve(key string) category.Category {
	if err := s.ensureLoaded(); err != nil {
		s.logger.Warn("category lookup without cache", "error", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.cache[key]; ok {
		return c
	}
	return category.Category{
		Key:   key,
		Name:  capitalize(key),
		Icon:  category.FallbackIcon,
		Color: category.FallbackColor,
	}
}

// Infer scores every category by counting keywords that occur as substrings
// of the text and returns the strictly best-scoring key. Keys are visited in
// sorted order, so ties resolve to the lexicographically smallest key. A
// best score of zero falls back to the default category.
func (s *CategoryService) Infer(text string) string {
	if err := s.ensureLoaded(); err != nil {
		s.logger.Warn("category inference without cache", "error", err)
		return category.DefaultKey
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	lowered := strings.ToLower(text)

	keys := make([]string, 0, len(s.cache))
	for key := range s.cache {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	best, bestScore := s.defaultKey, 0
	for _, key := range keys {
		score := 0
		for _, keyword := range s.cache[key].Keywords {
			keyword = strings.ToLower(strings.TrimSpace(keyword))
			if keyword != "" && strings.Contains(lowered, keyword) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = key, score
		}
	}
	return best
}

// Save writes a category and refreshes the cache.
func (s *CategoryService) Save(c category.Category) error {
	if err := s.store.Save(c); err != nil {
		return err
	}
	return s.Reload()
}

// Delete removes a category; the store refuses default-flagged rows.
func (s *CategoryService) Delete(key string) error {
	if err := s.store.Delete(key); err != nil {
		return err
	}
	return s.Reload()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
