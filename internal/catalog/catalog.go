// Copyright 2025 Marathe Group
// Licensed under the EUPL-1.2

// Package catalog provides the read-only list of sellable projects.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed catalog.toml
var defaultCatalog []byte

// Project is a sellable catalog item.
type Project struct {
	Name     string `toml:"name" json:"name"`
	Price    string `toml:"price" json:"price"`
	ImageURL string `toml:"image_url" json:"image_url,omitempty"`
}

// Catalog is an immutable, ordered project list.
type Catalog struct {
	projects []Project
	byName   map[string]Project
}

type catalogFile struct {
	Projects []Project `toml:"projects"`
}

// Load reads a catalog from a TOML file. An empty path loads the
// embedded default catalog.
func Load(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog: %w", err)
		}
		data = b
	}

	var file catalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(file.Projects) == 0 {
		return nil, fmt.Errorf("catalog has no projects")
	}

	byName := make(map[string]Project, len(file.Projects))
	for _, p := range file.Projects {
		byName[p.Name] = p
	}

	return &Catalog{projects: file.Projects, byName: byName}, nil
}

// All returns the projects in catalog order.
func (c *Catalog) All() []Project {
	out := make([]Project, len(c.projects))
	copy(out, c.projects)
	return out
}

// Get returns the project with the given name.
func (c *Catalog) Get(name string) (Project, bool) {
	p, ok := c.byName[name]
	return p, ok
}

// Names returns the project names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.projects))
	for i, p := range c.projects {
		names[i] = p.Name
	}
	return names
}
