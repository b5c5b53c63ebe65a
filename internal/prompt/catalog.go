package prompt

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed roles.yaml
var defaultRolesYAML []byte

// Experience levels recognized by the role catalog
const (
	LevelJunior = "junior"
	LevelMiddle = "middle"
	LevelSenior = "senior"
	LevelLead   = "lead"
)

var levelAliases = map[string]string{
	"jr":           LevelJunior,
	"mid":          LevelMiddle,
	"middle":       LevelMiddle,
	"intermediate": LevelMiddle,
	"sr":           LevelSenior,
	"principal":    LevelLead,
	"staff":        LevelLead,
}

type LevelProfile struct {
	Expectations string `yaml:"expectations"`
	Style        string `yaml:"style"`
}

type Role struct {
	ID          string                  `yaml:"id"`
	Name        string                  `yaml:"name"`
	Description string                  `yaml:"description"`
	FocusAreas  []string                `yaml:"focus_areas"`
	Levels      map[string]LevelProfile `yaml:"levels"`
}

// Level returns the profile for a level name or one of its aliases
func (r *Role) Level(level string) (LevelProfile, bool) {
	lp, ok := r.Levels[NormalizeLevel(level)]
	return lp, ok
}

// Catalog is the set of interview roles keyed by id
type Catalog struct {
	roles map[string]*Role
}

type catalogFile struct {
	Roles []*Role `yaml:"roles"`
}

// LoadCatalog parses a YAML role catalog
func LoadCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse role catalog: %w", err)
	}

	catalog := &Catalog{roles: make(map[string]*Role, len(file.Roles))}
	for _, role := range file.Roles {
		id := normalizeID(role.ID)
		if id == "" {
			return nil, fmt.Errorf("role catalog: role %q has no id", role.Name)
		}
		if _, exists := catalog.roles[id]; exists {
			return nil, fmt.Errorf("role catalog: duplicate role id %q", id)
		}

		levels := make(map[string]LevelProfile, len(role.Levels))
		for name, lp := range role.Levels {
			levels[NormalizeLevel(name)] = lp
		}
		role.ID = id
		role.Levels = levels
		catalog.roles[id] = role
	}

	return catalog, nil
}

// DefaultCatalog returns the role catalog embedded in the binary
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(defaultRolesYAML)
}

// Role looks up a role by id, ignoring case and surrounding whitespace
func (c *Catalog) Role(id string) (*Role, bool) {
	role, ok := c.roles[normalizeID(id)]
	return role, ok
}

func (c *Catalog) Len() int {
	return len(c.roles)
}

// NormalizeLevel lowercases a level name and resolves aliases
func NormalizeLevel(level string) string {
	level = strings.ToLower(strings.TrimSpace(level))
	if canonical, ok := levelAliases[level]; ok {
		return canonical
	}
	return level
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
