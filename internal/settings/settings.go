// Package settings persists categories, trigger codes, and scanner options
// to settings.yaml in the configuration directory.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/vkarlsson/scantrack/pkg/types"
)

const (
	settingsFileName = "settings"
	settingsFileType = "yaml"
	settingsFileExt  = "settings.yaml"

	keyCategories  = "categories"
	keyTriggers    = "triggers"
	keyScanTimeout = "scan_timeout_ms"

	// defaultScanTimeout is how long the scanning UI stays open without
	// scanner activity. Presentation knob, persisted here only.
	defaultScanTimeout = 10_000
)

// Store reads and writes settings.yaml through Viper. The category table and
// trigger set are seeded with defaults on first run.
type Store struct {
	mu   sync.Mutex
	path string
	v    *viper.Viper
}

var _ types.SettingsStore = (*Store)(nil)

// Open loads settings.yaml from configDir, creating the directory and a
// seeded settings file on first run.
func Open(configDir string) (*Store, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	v := viper.New()
	v.SetDefault(keyScanTimeout, defaultScanTimeout)
	v.SetConfigName(settingsFileName)
	v.SetConfigType(settingsFileType)
	v.AddConfigPath(configDir)

	s := &Store{
		path: filepath.Join(configDir, settingsFileExt),
		v:    v,
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read settings: %w", err)
		}
		if err := s.seedDefaults(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Path returns the location of the settings file.
func (s *Store) Path() string {
	return s.path
}

// seedDefaults writes a first-run settings file with the default category
// table and trigger set.
func (s *Store) seedDefaults() error {
	s.v.Set(keyCategories, types.DefaultCategories())
	s.v.Set(keyTriggers, types.DefaultTriggers())
	s.v.Set(keyScanTimeout, defaultScanTimeout)
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	return nil
}

// LoadCategories returns the category table keyed by uppercase prefix.
func (s *Store) LoadCategories() (map[string]types.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var list []types.Category
	if err := s.v.UnmarshalKey(keyCategories, &list); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}

	table := make(map[string]types.Category, len(list))
	for _, cat := range list {
		cat.Prefix = strings.ToUpper(cat.Prefix)
		table[cat.Prefix] = cat
	}
	return table, nil
}

// SaveCategories replaces the persisted category table. Categories are
// written as a list sorted by prefix so the file stays diff-friendly and
// prefix keys keep their case exactly.
func (s *Store) SaveCategories(table map[string]types.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]types.Category, 0, len(table))
	for prefix, cat := range table {
		cat.Prefix = strings.ToUpper(prefix)
		list = append(list, cat)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Prefix < list[j].Prefix })

	s.v.Set(keyCategories, list)
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// LoadTriggers returns the persisted trigger codes.
func (s *Store) LoadTriggers() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v.GetStringSlice(keyTriggers), nil
}

// SaveTriggers replaces the persisted trigger codes.
func (s *Store) SaveTriggers(codes []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.v.Set(keyTriggers, codes)
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// ScanTimeout returns the scanner inactivity timeout.
func (s *Store) ScanTimeout() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Duration(s.v.GetInt(keyScanTimeout)) * time.Millisecond
}

// SetScanTimeout persists the scanner inactivity timeout.
func (s *Store) SetScanTimeout(d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.v.Set(keyScanTimeout, int(d/time.Millisecond))
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
