package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// PacksConfig holds dynamic pack definitions (read/write).
// A pack is an independent tag registry with its own database.
type PacksConfig struct {
	Packs map[string]PackEntry `yaml:"packs,omitempty"`
}

// PackEntry holds configuration for a specific pack.
type PackEntry struct {
	Description string `yaml:"description,omitempty"`
}

// LoadPacks loads pack configuration from the .tag directory.
func LoadPacks(basePath string) (*PacksConfig, error) {
	data, err := os.ReadFile(PacksFilePath(basePath))
	if os.IsNotExist(err) {
		return &PacksConfig{
			Packs: make(map[string]PackEntry),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading packs file: %w", err)
	}

	var cfg PacksConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing packs file: %w", err)
	}

	if cfg.Packs == nil {
		cfg.Packs = make(map[string]PackEntry)
	}

	return &cfg, nil
}

// Save writes the packs configuration to the packs file.
func (p *PacksConfig) Save(basePath string) error {
	configDir := filepath.Join(basePath, DefaultConfigDir)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling packs config: %w", err)
	}

	if err := os.WriteFile(PacksFilePath(basePath), data, 0600); err != nil {
		return fmt.Errorf("writing packs file: %w", err)
	}

	return nil
}

// Add adds a pack to the configuration.
func (p *PacksConfig) Add(name string, entry PackEntry) {
	if p.Packs == nil {
		p.Packs = make(map[string]PackEntry)
	}
	p.Packs[name] = entry
}

// Remove removes a pack from the configuration.
func (p *PacksConfig) Remove(name string) {
	delete(p.Packs, name)
}

// Names returns the configured pack names, sorted.
func (p *PacksConfig) Names() []string {
	names := make([]string, 0, len(p.Packs))
	for name := range p.Packs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the configuration for a specific pack.
func (p *PacksConfig) Get(name string) (*PackEntry, error) {
	if len(p.Packs) == 0 {
		return nil, errors.New("no packs configured")
	}

	entry, ok := p.Packs[name]
	if !ok {
		names := p.Names()
		if len(names) > 5 {
			names = append(names[:5], "...")
		}
		return nil, fmt.Errorf("pack %q not found (available: %s)", name, strings.Join(names, ", "))
	}

	return &entry, nil
}

// Exists checks if a pack exists in the configuration.
func (p *PacksConfig) Exists(name string) bool {
	_, ok := p.Packs[name]
	return ok
}
