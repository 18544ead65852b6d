package storage

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mkessler/quickcap/internal/domain/category"
)

// CategoryStore persists the category catalog as one YAML document. The
// default category row cannot be deleted.
type CategoryStore struct {
	root string
}

func NewCategoryStore(root string) *CategoryStore {
	return &CategoryStore{root: root}
}

type categoryFile struct {
	Categories []category.Category `yaml:"categories"`
}

// stockCategories seeds a fresh install. The inference keywords are German
// because the catalog targets German-language order-desk notes.
func stockCategories() []category.Category {
	return []category.Category{
		{
			Key:      "kundenbestellung",
			Name:     "Kundenbestellung",
			Icon:     "🛒",
			Color:    "#2563EB",
			Keywords: []string{"bestellung", "bestellen", "kunde", "auftrag", "liefern"},
		},
		{
			Key:      "einkauf",
			Name:     "Einkauf",
			Icon:     "📦",
			Color:    "#7C3AED",
			Keywords: []string{"einkauf", "lieferant", "bestand", "nachbestellen", "lager"},
		},
		{
			Key:      "anfrage",
			Name:     "Anfrage",
			Icon:     "❓",
			Color:    "#0891B2",
			Keywords: []string{"anfrage", "frage", "angebot", "interesse", "information"},
			Default:  true,
		},
		{
			Key:      "reklamation",
			Name:     "Reklamation",
			Icon:     "⚠️",
			Color:    "#DC2626",
			Keywords: []string{"reklamation", "beschwerde", "defekt", "umtausch", "retoure"},
		},
		{
			Key:      "buchhaltung",
			Name:     "Buchhaltung",
			Icon:     "🧾",
			Color:    "#059669",
			Keywords: []string{"rechnung", "zahlung", "mahnung", "gutschrift", "buchhaltung"},
		},
		{
			Key:      "organisation",
			Name:     "Organisation",
			Icon:     "🗂️",
			Color:    "#D97706",
			Keywords: []string{"termin", "meeting", "planung", "organisation", "intern"},
		},
	}
}

// EnsureInstalled creates the config dir and seeds the stock catalog when no
// categories file exists yet.
func (s *CategoryStore) EnsureInstalled() error {
	if err := ensureConfigDir(s.root); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	path, err := ResolvePath(s.root, CategoriesFile)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return s.write(stockCategories())
}

func (s *CategoryStore) load() ([]category.Category, error) {
	path, err := ResolvePath(s.root, CategoriesFile)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return stockCategories(), nil
		}
		return nil, fmt.Errorf("read categories: %w", err)
	}

	var file categoryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal categories: %w", err)
	}
	return file.Categories, nil
}

func (s *CategoryStore) write(cats []category.Category) error {
	if err := ensureConfigDir(s.root); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	path, err := ResolvePath(s.root, CategoriesFile)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(categoryFile{Categories: cats})
	if err != nil {
		return fmt.Errorf("marshal categories: %w", err)
	}
	return writeFileAtomic(path, data)
}

// All returns every stored category.
func (s *CategoryStore) All() ([]category.Category, error) {
	return s.load()
}

// Save inserts or replaces the category with the same key.
func (s *CategoryStore) Save(cat category.Category) error {
	cat.Key = strings.ToLower(strings.TrimSpace(cat.Key))
	if cat.Key == "" {
		return fmt.Errorf("category key cannot be empty")
	}

	cats, err := s.load()
	if err != nil {
		return err
	}

	replaced := false
	for i, existing := range cats {
		if existing.Key == cat.Key {
			// The default flag stays with the row it was on.
			cat.Default = existing.Default
			cats[i] = cat
			replaced = true
			break
		}
	}
	if !replaced {
		cats = append(cats, cat)
	}
	return s.write(cats)
}

// Delete removes a category by key. The default category is protected.
func (s *CategoryStore) Delete(key string) error {
	key = strings.ToLower(strings.TrimSpace(key))

	cats, err := s.load()
	if err != nil {
		return err
	}

	for i, existing := range cats {
		if existing.Key != key {
			continue
		}
		if existing.Default {
			return category.ErrDefaultProtected
		}
		return s.write(append(cats[:i], cats[i+1:]...))
	}
	return category.ErrNotFound
}
