// Package category defines task categories and their backing store contract.
package category

import "errors"

// Display fallbacks for unknown category keys. Classification must never
// block task creation, so lookups degrade instead of failing.
const (
	FallbackIcon  = "📋"
	FallbackColor = "#6B7280"
)

// DefaultKey is used when no category matches and the store carries no
// default-flagged row.
const DefaultKey = "anfrage"

// ErrDefaultProtected is returned when deleting a default-flagged category.
var ErrDefaultProtected = errors.New("default category cannot be deleted")

// ErrNotFound is returned by store lookups for unknown keys.
var ErrNotFound = errors.New("category not found")

// Category describes one classification bucket. Keywords drive the
// substring-scoring fallback used when the AI omits a category.
type Category struct {
	Key      string   `yaml:"key" json:"key"`
	Name     string   `yaml:"name" json:"name"`
	Icon     string   `yaml:"icon" json:"icon"`
	Color    string   `yaml:"color" json:"color"`
	Keywords []string `yaml:"keywords" json:"keywords"`
	Default  bool     `yaml:"default" json:"default"`
}

// Store is the persistence contract for categories.
type Store interface {
	All() ([]Category, error)
	Save(c Category) error
	Delete(key string) error
}
