package storage

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mkessler/quickcap/internal/domain/settings"
)

// SettingsStore is the YAML-backed key-value settings store. SetAll writes
// the full mapping atomically; readers never see a partial update.
type SettingsStore struct {
	root string
}

func NewSettingsStore(root string) *SettingsStore {
	return &SettingsStore{root: root}
}

// EnsureInstalled bootstraps the config directory and an empty settings
// file. Safe to call repeatedly.
func (s *SettingsStore) EnsureInstalled() error {
	if err := ensureConfigDir(s.root); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	path, err := ResolvePath(s.root, SettingsFile)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return writeFileAtomic(path, []byte("{}\n"))
}

func (s *SettingsStore) load() (map[string]string, error) {
	path, err := ResolvePath(s.root, SettingsFile)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}

	values := map[string]string{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	return values, nil
}

func (s *SettingsStore) write(values map[string]string) error {
	if err := ensureConfigDir(s.root); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	path, err := ResolvePath(s.root, SettingsFile)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	return writeFileAtomic(path, data)
}

// Get returns the value for key, empty when unset.
func (s *SettingsStore) Get(key string) (string, error) {
	values, err := s.load()
	if err != nil {
		return "", err
	}
	return values[key], nil
}

// All returns a snapshot of every setting.
func (s *SettingsStore) All() (settings.Values, error) {
	values, err := s.load()
	if err != nil {
		return nil, err
	}
	return settings.Values(values), nil
}

// Set writes a single key.
func (s *SettingsStore) Set(key, value string) error {
	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.write(values)
}

// SetAll merges the given keys into the store in one write.
func (s *SettingsStore) SetAll(update map[string]string) error {
	values, err := s.load()
	if err != nil {
		return err
	}
	for k, v := range update {
		values[k] = v
	}
	return s.write(values)
}
