package content

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Sound describes a playable audio asset.
type Sound struct {
	Name        string  `yaml:"-"`
	Path        string  `yaml:"path"`
	Volume      float32 `yaml:"volume"`
	MinDistance float32 `yaml:"min_distance"`
	MaxDistance float32 `yaml:"max_distance"`
	Loop        bool    `yaml:"loop"`
}

// Material is a named set of surface colours used for material swaps.
type Material struct {
	Name          string     `yaml:"-"`
	DiffuseColor  [3]float32 `yaml:"diffuse_color"`
	SpecularColor [3]float32 `yaml:"specular_color"`
	Emissive      float32    `yaml:"emissive"`
	Alpha         float32    `yaml:"alpha"`
}

// Grant says what picking an item up gives the player.
type Grant string

const (
	GrantFlashlight  Grant = "flashlight"
	GrantBreadcrumbs Grant = "breadcrumbs"
	GrantKey         Grant = "key"
)

type Item struct {
	Name        string `yaml:"-"`
	DisplayName string `yaml:"display_name"`
	Grants      Grant  `yaml:"grants"`
	Amount      int    `yaml:"amount"`
}

type LightSpec struct {
	Mode      string     `yaml:"mode"`
	Color     [3]float32 `yaml:"color"`
	Intensity float32    `yaml:"intensity"`
	Range     float32    `yaml:"range"`
}

type ScriptSpec struct {
	Name       string                 `yaml:"name"`
	Properties map[string]interface{} `yaml:"properties"`
}

// Prefab is a template GameObject that behaviours can spawn at runtime.
type Prefab struct {
	Name           string       `yaml:"-"`
	Tag            string       `yaml:"tag"`
	Mesh           string       `yaml:"mesh"`
	Material       string       `yaml:"material"`
	ColliderRadius float32      `yaml:"collider_radius"`
	Light          *LightSpec   `yaml:"light"`
	Scripts        []ScriptSpec `yaml:"scripts"`
}

type document struct {
	Sounds    map[string]Sound    `yaml:"sounds"`
	Materials map[string]Material `yaml:"materials"`
	Items     map[string]Item     `yaml:"items"`
	Prefabs   map[string]Prefab   `yaml:"prefabs"`
}

// Table is the content/asset lookup shared by behaviours. It is safe to
// Replace from a reload while readers hold the previous entries by value.
type Table struct {
	mu        sync.RWMutex
	path      string
	sounds    map[string]Sound
	materials map[string]Material
	items     map[string]Item
	prefabs   map[string]Prefab
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		sounds:    make(map[string]Sound),
		materials: make(map[string]Material),
		items:     make(map[string]Item),
		prefabs:   make(map[string]Prefab),
	}
}

// Load reads and parses a YAML content file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: load %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("content: parse %s: %w", path, err)
	}
	t.path = path
	return t, nil
}

// Parse builds a table from YAML bytes, filling defaults and validating entries.
func Parse(data []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	t := NewTable()
	for name, s := range doc.Sounds {
		if s.Path == "" {
			return nil, fmt.Errorf("sound %q: missing path", name)
		}
		s.Name = name
		if s.Volume == 0 {
			s.Volume = 1
		}
		if s.MinDistance <= 0 {
			s.MinDistance = 1
		}
		if s.MaxDistance <= 0 {
			s.MaxDistance = 20
		}
		if s.MaxDistance < s.MinDistance {
			return nil, fmt.Errorf("sound %q: max_distance %.2f below min_distance %.2f", name, s.MaxDistance, s.MinDistance)
		}
		t.sounds[name] = s
	}
	for name, m := range doc.Materials {
		m.Name = name
		if m.Alpha == 0 {
			m.Alpha = 1
		}
		t.materials[name] = m
	}
	for name, it := range doc.Items {
		it.Name = name
		switch it.Grants {
		case GrantFlashlight, GrantBreadcrumbs, GrantKey:
		default:
			return nil, fmt.Errorf("item %q: unknown grant %q", name, it.Grants)
		}
		if it.Amount <= 0 {
			it.Amount = 1
		}
		if it.DisplayName == "" {
			it.DisplayName = name
		}
		t.items[name] = it
	}
	for name, p := range doc.Prefabs {
		p.Name = name
		for i, s := range p.Scripts {
			if s.Name == "" {
				return nil, fmt.Errorf("prefab %q: script %d has no name", name, i)
			}
		}
		t.prefabs[name] = p
	}
	return t, nil
}

// Path is the file the table was loaded from, if any.
func (t *Table) Path() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.path
}

// Replace swaps in the entries of other, keeping this table's identity.
func (t *Table) Replace(other *Table) {
	other.mu.RLock()
	sounds, materials, items, prefabs := other.sounds, other.materials, other.items, other.prefabs
	other.mu.RUnlock()

	t.mu.Lock()
	t.sounds, t.materials, t.items, t.prefabs = sounds, materials, items, prefabs
	t.mu.Unlock()
}

func (t *Table) Sound(name string) (Sound, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.sounds[name]
	return s, ok
}

func (t *Table) Material(name string) (Material, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	m, ok := t.materials[name]
	return m, ok
}

func (t *Table) Item(name string) (Item, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	it, ok := t.items[name]
	return it, ok
}

func (t *Table) Prefab(name string) (Prefab, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.prefabs[name]
	return p, ok
}

// AddSound registers or overwrites a sound. Used by tools and tests.
func (t *Table) AddSound(s Sound) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sounds[s.Name] = s
}

func (t *Table) AddMaterial(m Material) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.materials[m.Name] = m
}

func (t *Table) AddItem(it Item) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items[it.Name] = it
}

func (t *Table) AddPrefab(p Prefab) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.prefabs[p.Name] = p
}
