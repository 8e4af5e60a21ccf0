package scene

import (
	"fmt"

	"Hollowmere/internal/behaviour"
	"Hollowmere/internal/content"

	"github.com/go-gl/mathgl/mgl32"
)

// Instantiate builds the named content prefab at position and registers it
// with cm. Start runs on the next frame like any other new object.
func Instantiate(cm *behaviour.ComponentManager, table *content.Table, name string, position mgl32.Vec3) (*behaviour.GameObject, error) {
	prefab, ok := table.Prefab(name)
	if !ok {
		return nil, fmt.Errorf("scene: unknown prefab %q", name)
	}
	obj, err := Build(table, prefab)
	if err != nil {
		return nil, err
	}
	obj.Transform.SetPosition(position)
	cm.RegisterGameObject(obj)
	return obj, nil
}

// Build assembles an unregistered GameObject from a prefab.
func Build(table *content.Table, prefab content.Prefab) (*behaviour.GameObject, error) {
	obj := behaviour.NewGameObject(prefab.Name)
	obj.Tag = prefab.Tag

	if prefab.Mesh != "" || prefab.Material != "" {
		mesh := behaviour.NewMeshComponent()
		mesh.MeshPath = prefab.Mesh
		if prefab.Material != "" {
			mat, ok := table.Material(prefab.Material)
			if !ok {
				return nil, fmt.Errorf("scene: prefab %q: unknown material %q", prefab.Name, prefab.Material)
			}
			mesh.SetMaterial(MeshMaterial(mat))
		}
		obj.AddComponent(mesh)
	}

	if prefab.ColliderRadius > 0 {
		col := behaviour.NewColliderComponent()
		col.Radius = prefab.ColliderRadius
		obj.AddComponent(col)
	}

	if spec := prefab.Light; spec != nil {
		light := behaviour.NewLightComponent()
		if spec.Mode != "" {
			light.LightMode = spec.Mode
		}
		if spec.Color != ([3]float32{}) {
			light.Color = spec.Color
		}
		if spec.Intensity > 0 {
			light.Intensity = spec.Intensity
		}
		if spec.Range > 0 {
			light.Range = spec.Range
		}
		obj.AddComponent(light)
	}

	for _, s := range prefab.Scripts {
		comp := behaviour.CreateScript(s.Name)
		if comp == nil {
			return nil, fmt.Errorf("scene: prefab %q: unknown script %q", prefab.Name, s.Name)
		}
		if ser, ok := comp.(behaviour.Serializable); ok {
			if err := ser.Deserialize(behaviour.Properties(s.Properties)); err != nil {
				return nil, fmt.Errorf("scene: prefab %q script %s: %w", prefab.Name, s.Name, err)
			}
		}
		obj.AddComponent(comp)
	}
	return obj, nil
}

// MeshMaterial converts a content material for a MeshComponent.
func MeshMaterial(m content.Material) behaviour.Material {
	return behaviour.Material{
		Name:          m.Name,
		DiffuseColor:  m.DiffuseColor,
		SpecularColor: m.SpecularColor,
		Emissive:      m.Emissive,
		Alpha:         m.Alpha,
	}
}
