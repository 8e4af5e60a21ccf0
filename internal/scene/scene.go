package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"Hollowmere/internal/behaviour"
	"Hollowmere/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// CurrentVersion is the newest document layout this package reads and writes.
const CurrentVersion = 1

type Document struct {
	Name        string       `json:"name"`
	Version     int          `json:"version"`
	GameObjects []GameObject `json:"game_objects"`
}

// GameObject is the saved form of a behaviour.GameObject. ParentID refers to
// the ID of another entry in the same document; zero means a root.
type GameObject struct {
	ID         uint64      `json:"id"`
	ParentID   uint64      `json:"parent_id,omitempty"`
	Name       string      `json:"name"`
	Tag        string      `json:"tag,omitempty"`
	Active     bool        `json:"active"`
	Position   [3]float32  `json:"position"`
	Rotation   [3]float32  `json:"rotation"` // Euler angles, degrees
	Scale      [3]float32  `json:"scale"`
	Components []Component `json:"components,omitempty"`
}

type Component struct {
	Type       string                 `json:"type"`
	Category   string                 `json:"category"`
	Enabled    bool                   `json:"enabled"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// Capture snapshots every object in cm, parents before children.
func Capture(cm *behaviour.ComponentManager, name string) *Document {
	doc := &Document{Name: name, Version: CurrentVersion}

	var visit func(obj *behaviour.GameObject, parentID uint64)
	visit = func(obj *behaviour.GameObject, parentID uint64) {
		if obj.Destroyed() {
			return
		}
		t := obj.Transform
		doc.GameObjects = append(doc.GameObjects, GameObject{
			ID:         obj.ID(),
			ParentID:   parentID,
			Name:       obj.Name,
			Tag:        obj.Tag,
			Active:     obj.Active,
			Position:   [3]float32(t.Position),
			Rotation:   QuatToEulerArray(t.Rotation),
			Scale:      [3]float32(t.Scale),
			Components: serializeComponents(obj.Components),
		})
		for _, child := range obj.Children() {
			visit(child, obj.ID())
		}
	}

	for _, obj := range cm.GetAllGameObjects() {
		if obj.Parent() == nil {
			visit(obj, 0)
		}
	}
	return doc
}

func serializeComponents(components []behaviour.Component) []Component {
	result := make([]Component, 0, len(components))
	for _, comp := range components {
		sc := Component{
			Type:     behaviour.GetComponentTypeName(comp),
			Category: string(behaviour.GetComponentCategory(comp)),
			Enabled:  comp.GetEnabled(),
		}
		if s, ok := comp.(behaviour.Serializable); ok {
			sc.Properties = s.Serialize()
		}
		result = append(result, sc)
	}
	return result
}

// Save writes cm to path as indented JSON.
func Save(path string, cm *behaviour.ComponentManager, name string) error {
	data, err := json.MarshalIndent(Capture(cm, name), "", "  ")
	if err != nil {
		return fmt.Errorf("scene: marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("scene: write %s: %w", path, err)
	}
	return nil
}

// Decode parses a scene document and checks its version.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Version == 0 {
		doc.Version = CurrentVersion
	}
	if doc.Version > CurrentVersion {
		return nil, fmt.Errorf("unsupported scene version %d (newest is %d)", doc.Version, CurrentVersion)
	}
	return &doc, nil
}

// Load reads path and builds its objects into cm.
func Load(path string, cm *behaviour.ComponentManager) ([]*behaviour.GameObject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: load %s: %w", path, err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("scene: parse %s: %w", path, err)
	}
	objects, err := doc.Build(cm)
	if err != nil {
		return nil, fmt.Errorf("scene: build %s: %w", path, err)
	}
	logger.Log.Info("Scene loaded",
		zap.String("scene", doc.Name),
		zap.String("path", path),
		zap.Int("objects", len(objects)))
	return objects, nil
}

// Build creates every object, links parents and registers the roots with cm.
// Nothing is registered when an error is returned.
func (d *Document) Build(cm *behaviour.ComponentManager) ([]*behaviour.GameObject, error) {
	objects := make([]*behaviour.GameObject, 0, len(d.GameObjects))
	byID := make(map[uint64]*behaviour.GameObject, len(d.GameObjects))

	for i := range d.GameObjects {
		so := &d.GameObjects[i]
		obj, err := buildObject(so)
		if err != nil {
			return nil, err
		}
		if so.ID != 0 {
			if _, dup := byID[so.ID]; dup {
				return nil, fmt.Errorf("duplicate object id %d", so.ID)
			}
			byID[so.ID] = obj
		}
		objects = append(objects, obj)
	}

	for i, so := range d.GameObjects {
		if so.ParentID == 0 {
			continue
		}
		parent, ok := byID[so.ParentID]
		if !ok {
			return nil, fmt.Errorf("object %q: unknown parent id %d", so.Name, so.ParentID)
		}
		for a := parent; a != nil; a = a.Parent() {
			if a == objects[i] {
				return nil, fmt.Errorf("object %q: parent cycle through id %d", so.Name, so.ParentID)
			}
		}
		parent.AddChild(objects[i])
	}

	for _, obj := range objects {
		if obj.Parent() == nil {
			cm.RegisterGameObject(obj)
		}
	}
	return objects, nil
}

func buildObject(so *GameObject) (*behaviour.GameObject, error) {
	obj := behaviour.NewGameObject(so.Name)
	obj.Tag = so.Tag
	obj.Active = so.Active
	obj.Transform.Position = mgl32.Vec3(so.Position)
	obj.Transform.Rotation = EulerToQuat(mgl32.Vec3(so.Rotation))
	obj.Transform.Scale = mgl32.Vec3(so.Scale)
	if obj.Transform.Scale == (mgl32.Vec3{}) {
		obj.Transform.Scale = mgl32.Vec3{1, 1, 1}
	}

	for _, sc := range so.Components {
		comp := createComponent(sc.Type)
		if comp == nil {
			logger.Log.Warn("Skipping unknown component type",
				zap.String("object", so.Name),
				zap.String("type", sc.Type))
			continue
		}
		if s, ok := comp.(behaviour.Serializable); ok {
			if err := s.Deserialize(behaviour.Properties(sc.Properties)); err != nil {
				return nil, fmt.Errorf("object %q component %s: %w", so.Name, sc.Type, err)
			}
		}
		obj.AddComponent(comp)
		comp.SetEnabled(sc.Enabled)
	}
	return obj, nil
}

func createComponent(typeName string) behaviour.Component {
	if comp := behaviour.CreateBuiltInComponent(typeName); comp != nil {
		return comp
	}
	return behaviour.CreateScript(typeName)
}
