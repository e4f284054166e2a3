// Package catalog holds the static content of the game: excavation sites,
// forensics tool descriptions and artifact types.
//
// The default catalog is embedded into the binary (catalog.yaml) and can be
// replaced at startup with a YAML file of the same shape. A Catalog is
// validated once on load and is read-only afterwards.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/emaildig/internal/common"
	"github.com/dmitrijs2005/emaildig/internal/models"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// catalogFile is the YAML document layout.
type catalogFile struct {
	Tools         []models.ToolInfo     `yaml:"tools"`
	ArtifactTypes []models.ArtifactType `yaml:"artifact_types"`
	Sites         []models.Site         `yaml:"sites"`
}

// Catalog is the immutable content library supplied to the engine.
type Catalog struct {
	tools     []models.ToolInfo
	artifacts []models.ArtifactType
	sites     []models.Site

	toolByID     map[models.ToolID]int
	artifactByID map[string]int
	siteByID     map[string]int
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// LoadFile reads and validates a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", common.ErrInvalidCatalog, err)
	}
	return New(f.Tools, f.ArtifactTypes, f.Sites)
}

// New builds a Catalog from already decoded records and validates it.
func New(tools []models.ToolInfo, artifacts []models.ArtifactType, sites []models.Site) (*Catalog, error) {
	c := &Catalog{
		tools:        tools,
		artifacts:    artifacts,
		sites:        sites,
		toolByID:     make(map[models.ToolID]int, len(tools)),
		artifactByID: make(map[string]int, len(artifacts)),
		siteByID:     make(map[string]int, len(sites)),
	}

	for i, t := range tools {
		if !t.ID.Valid() {
			return nil, fmt.Errorf("%w: unknown tool %q", common.ErrInvalidCatalog, t.ID)
		}
		if _, dup := c.toolByID[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate tool %q", common.ErrInvalidCatalog, t.ID)
		}
		c.toolByID[t.ID] = i
	}

	for i, a := range artifacts {
		if a.ID == "" {
			return nil, fmt.Errorf("%w: artifact type id is required", common.ErrInvalidCatalog)
		}
		if !a.Rarity.Valid() {
			return nil, fmt.Errorf("%w: artifact type %s: unknown rarity %q", common.ErrInvalidCatalog, a.ID, a.Rarity)
		}
		if _, dup := c.artifactByID[a.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate artifact type %q", common.ErrInvalidCatalog, a.ID)
		}
		c.artifactByID[a.ID] = i
	}

	names := make(map[string]struct{}, len(sites))
	for i := range sites {
		if err := sites[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidCatalog, err)
		}
		if _, dup := c.siteByID[sites[i].ID]; dup {
			return nil, fmt.Errorf("%w: duplicate site %q", common.ErrInvalidCatalog, sites[i].ID)
		}
		// unlocked artifacts are keyed by site name
		if _, dup := names[sites[i].Name]; dup {
			return nil, fmt.Errorf("%w: duplicate site name %q", common.ErrInvalidCatalog, sites[i].Name)
		}
		c.siteByID[sites[i].ID] = i
		names[sites[i].Name] = struct{}{}
	}

	return c, nil
}

// Sites returns a copy of the sites in catalog order.
func (c *Catalog) Sites() []models.Site {
	out := make([]models.Site, len(c.sites))
	for i := range c.sites {
		out[i] = cloneSite(c.sites[i])
	}
	return out
}

// Site looks a site up by id. The result is a copy.
func (c *Catalog) Site(id string) (*models.Site, error) {
	i, ok := c.siteByID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownSite, id)
	}
	s := cloneSite(c.sites[i])
	return &s, nil
}

func cloneSite(s models.Site) models.Site {
	s.Emails = slices.Clone(s.Emails)
	return s
}

// Tools returns a copy of the tool descriptions in catalog order.
func (c *Catalog) Tools() []models.ToolInfo {
	return slices.Clone(c.tools)
}

// Tool looks a tool description up by id. Tools missing from the catalog
// still resolve to a description named by their id.
func (c *Catalog) Tool(id models.ToolID) (models.ToolInfo, error) {
	if i, ok := c.toolByID[id]; ok {
		return c.tools[i], nil
	}
	if id.Valid() {
		return models.ToolInfo{ID: id, Name: string(id)}, nil
	}
	return models.ToolInfo{}, fmt.Errorf("%w: %q", common.ErrUnknownTool, id)
}

// ArtifactTypes returns a copy of the artifact types in catalog order.
func (c *Catalog) ArtifactTypes() []models.ArtifactType {
	return slices.Clone(c.artifacts)
}

// ArtifactType looks an artifact type up by id.
func (c *Catalog) ArtifactType(id string) (models.ArtifactType, bool) {
	i, ok := c.artifactByID[id]
	if !ok {
		return models.ArtifactType{}, false
	}
	return c.artifacts[i], true
}

// ArtifactName returns the display name of an artifact type, or the raw id
// when the catalog has no such type (e.g. "general-phishing").
func (c *Catalog) ArtifactName(id string) string {
	if a, ok := c.ArtifactType(id); ok {
		return a.Name
	}
	return id
}

// Describe returns the artifact type for id, or a generic common-rarity
// record named by the id when the catalog has none.
func (c *Catalog) Describe(id string) models.ArtifactType {
	if a, ok := c.ArtifactType(id); ok {
		return a
	}
	return models.ArtifactType{ID: id, Name: id, Icon: "🏺", Rarity: models.RarityCommon}
}
