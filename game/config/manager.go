package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/wricardo/mcp-training/labyrinth/game/engine"
	"github.com/wricardo/mcp-training/labyrinth/game/service"
)

var (
	ErrLevelNotFound = service.ErrLevelNotFound
	ErrInvalidLevel  = errors.New("invalid level")
)

const (
	levelExt    = ".txt"
	metadataExt = ".yaml"

	// DefaultLevelID is preferred as the default level when present
	DefaultLevelID = "classic"
)

// levelMetadata is the optional <id>.yaml sidecar of a level
type levelMetadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// Manager handles level loading and caching
type Manager struct {
	levelDir     string
	defaultLevel *engine.Level
	levels       map[string]*engine.Level
	mu           sync.RWMutex
}

// NewManager creates a new level manager
func NewManager(levelDir string) (*Manager, error) {
	// Ensure level directory exists
	if _, err := os.Stat(levelDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("level directory does not exist: %s", levelDir)
	}

	m := &Manager{
		levelDir: levelDir,
		levels:   make(map[string]*engine.Level),
	}

	if err := m.loadDefaultLevel(); err != nil {
		return nil, fmt.Errorf("failed to load default level: %w", err)
	}

	return m, nil
}

// LoadLevel loads a level by id
func (m *Manager) LoadLevel(id string) (*engine.Level, error) {
	id = strings.TrimSuffix(id, levelExt)

	m.mu.RLock()
	// Check cache first
	if level, exists := m.levels[id]; exists {
		m.mu.RUnlock()
		return level, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if level, exists := m.levels[id]; exists {
		return level, nil
	}

	if strings.ContainsAny(id, `/\`) || id == "" || id == "." || id == ".." {
		return nil, fmt.Errorf("%w: %q", ErrLevelNotFound, id)
	}

	level, err := m.readLevel(id)
	if err != nil {
		return nil, err
	}

	m.levels[id] = level
	return level, nil
}

// readLevel reads <id>.txt and its optional metadata from disk
func (m *Manager) readLevel(id string) (*engine.Level, error) {
	f, err := os.Open(filepath.Join(m.levelDir, id+levelExt))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", ErrLevelNotFound, id)
		}
		return nil, fmt.Errorf("failed to read level file: %w", err)
	}
	defer f.Close()

	level, err := engine.ParseLevel(id, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidLevel, id, err)
	}

	meta, err := m.readMetadata(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidLevel, id, err)
	}
	if meta != nil {
		if meta.Name != "" {
			level.Name = meta.Name
		}
		level.Description = meta.Description
	}

	return level, nil
}

func (m *Manager) readMetadata(id string) (*levelMetadata, error) {
	data, err := os.ReadFile(filepath.Join(m.levelDir, id+metadataExt))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read level metadata: %w", err)
	}

	var meta levelMetadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse level metadata: %w", err)
	}
	return &meta, nil
}

// ListLevels returns information about all valid levels, sorted by id
func (m *Manager) ListLevels() ([]*service.LevelInfo, error) {
	entries, err := os.ReadDir(m.levelDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read level directory: %w", err)
	}

	var levels []*service.LevelInfo

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), levelExt) {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), levelExt)

		level, err := m.LoadLevel(id)
		if err != nil {
			// Skip invalid levels
			continue
		}

		levels = append(levels, service.NewLevelInfo(entry.Name(), level))
	}

	sort.Slice(levels, func(i, j int) bool { return levels[i].LevelID < levels[j].LevelID })
	return levels, nil
}

// GetDefault returns the default level
func (m *Manager) GetDefault() *engine.Level {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultLevel
}

// SetDefault sets the default level by id
func (m *Manager) SetDefault(id string) error {
	level, err := m.LoadLevel(id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultLevel = level
	return nil
}

// RefreshCache drops all cached levels and reloads the default from disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.levels = make(map[string]*engine.Level)
	m.mu.Unlock()

	return m.loadDefaultLevel()
}

// loadDefaultLevel picks classic, then the first valid level, then a built-in one
func (m *Manager) loadDefaultLevel() error {
	level, err := m.LoadLevel(DefaultLevelID)
	if err != nil {
		levels, listErr := m.ListLevels()
		if listErr != nil || len(levels) == 0 {
			level = createMinimalLevel()
		} else if level, err = m.LoadLevel(levels[0].LevelID); err != nil {
			level = createMinimalLevel()
		}
	}

	m.mu.Lock()
	m.defaultLevel = level
	m.mu.Unlock()
	return nil
}

// SaveLevel writes a level and its metadata to disk
func (m *Manager) SaveLevel(id string, level *engine.Level) error {
	id = strings.TrimSuffix(id, levelExt)
	if level == nil {
		return fmt.Errorf("%w: level is nil", ErrInvalidLevel)
	}

	saved := *level
	saved.ID = id
	saved.Layout = append([]string(nil), level.Layout...)
	if saved.Name == "" {
		saved.Name = id
	}

	if err := engine.ValidateLevel(&saved); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}
	// Re-parse so the stored layout only uses map characters
	normalized, err := engine.ParseLevel(id, strings.NewReader(saved.Text()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLevel, err)
	}
	saved.Layout = normalized.Layout

	levelPath := filepath.Join(m.levelDir, id+levelExt)
	if err := os.WriteFile(levelPath, []byte(saved.Text()), 0644); err != nil {
		return fmt.Errorf("failed to write level file: %w", err)
	}

	meta, err := yaml.Marshal(&levelMetadata{Name: saved.Name, Description: saved.Description})
	if err != nil {
		return fmt.Errorf("failed to marshal level metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(m.levelDir, id+metadataExt), meta, 0644); err != nil {
		return fmt.Errorf("failed to write level metadata: %w", err)
	}

	// Update cache
	m.mu.Lock()
	m.levels[id] = &saved
	m.mu.Unlock()

	return nil
}

// createMinimalLevel creates a minimal valid level
func createMinimalLevel() *engine.Level {
	return &engine.Level{
		ID:          "default",
		Name:        "default",
		Description: "Default minimal level",
		Width:       5,
		Height:      5,
		Layout: []string{
			"S....",
			".WWW.",
			".W...",
			".W.W.",
			"...WE",
		},
	}
}
