package query

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

type ProfileCache struct {
	queriesDir string
	cache      map[string]*Profile
	mu         sync.RWMutex
}

func NewProfileCache(queriesDir string) *ProfileCache {
	return &ProfileCache{
		queriesDir: queriesDir,
		cache:      make(map[string]*Profile),
	}
}

// Run loads every *.yml profile in the queries directory. A missing directory
// is not an error.
func (pc *ProfileCache) Run() error {
	if _, err := os.Stat(pc.queriesDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(pc.queriesDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".yml")

		profile, err := pc.LoadProfile(name)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Query profile loaded", "profile", name, "query", profile.Query, "page_size", profile.PageSize)
	}

	return nil
}

func (pc *ProfileCache) LoadProfile(name string) (*Profile, error) {
	profileFile := filepath.Join(pc.queriesDir, name+".yml")

	data, err := os.ReadFile(profileFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	profile.Name = name

	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", profileFile, err)
	}

	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.cache[name] = &profile

	return &profile, nil
}

func (pc *ProfileCache) GetProfile(name string) (*Profile, error) {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	profile, ok := pc.cache[name]
	if !ok {
		return nil, fmt.Errorf("query profile with name '%s' not found", name)
	}
	return profile, nil
}

func (pc *ProfileCache) GetProfileCount() int {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return len(pc.cache)
}
