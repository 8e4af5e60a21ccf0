package behaviour

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ComponentType defines the category of a component
type ComponentType string

const (
	ComponentTypeMesh     ComponentType = "Mesh"
	ComponentTypeScript   ComponentType = "Script"
	ComponentTypeCollider ComponentType = "Collider"
	ComponentTypeLight    ComponentType = "Light"
	ComponentTypeCamera   ComponentType = "Camera"
	ComponentTypeCustom   ComponentType = "Custom"
)

// TypedComponent extends Component with type information
type TypedComponent interface {
	Component
	GetComponentType() ComponentType
	GetTypeName() string
}

// MeshComponent holds a reference to a mesh and the material it is drawn with
type MeshComponent struct {
	BaseComponent
	MeshPath     string `json:"mesh_path"`
	MaterialName string `json:"material_name"`

	DiffuseColor  [3]float32 `json:"diffuse_color"`
	SpecularColor [3]float32 `json:"specular_color"`
	Emissive      float32    `json:"emissive"`
	Alpha         float32    `json:"alpha"`
}

// Material is the subset of MeshComponent that material swaps replace.
type Material struct {
	Name          string
	DiffuseColor  [3]float32
	SpecularColor [3]float32
	Emissive      float32
	Alpha         float32
}

func NewMeshComponent() *MeshComponent {
	return &MeshComponent{
		DiffuseColor:  [3]float32{0.8, 0.8, 0.8},
		SpecularColor: [3]float32{1.0, 1.0, 1.0},
		Alpha:         1.0,
	}
}

func (m *MeshComponent) GetComponentType() ComponentType {
	return ComponentTypeMesh
}

func (m *MeshComponent) GetTypeName() string {
	return "MeshComponent"
}

// Material returns the currently applied material.
func (m *MeshComponent) Material() Material {
	return Material{
		Name:          m.MaterialName,
		DiffuseColor:  m.DiffuseColor,
		SpecularColor: m.SpecularColor,
		Emissive:      m.Emissive,
		Alpha:         m.Alpha,
	}
}

// SetMaterial swaps the applied material.
func (m *MeshComponent) SetMaterial(mat Material) {
	m.MaterialName = mat.Name
	m.DiffuseColor = mat.DiffuseColor
	m.SpecularColor = mat.SpecularColor
	m.Emissive = mat.Emissive
	m.Alpha = mat.Alpha
}

func (m *MeshComponent) Serialize() Properties {
	return Properties{
		"mesh_path":      m.MeshPath,
		"material_name":  m.MaterialName,
		"diffuse_color":  m.DiffuseColor,
		"specular_color": m.SpecularColor,
		"emissive":       m.Emissive,
		"alpha":          m.Alpha,
	}
}

func (m *MeshComponent) Deserialize(p Properties) error {
	var err error
	if m.MeshPath, err = p.String("mesh_path", m.MeshPath); err != nil {
		return err
	}
	if m.MaterialName, err = p.String("material_name", m.MaterialName); err != nil {
		return err
	}
	if m.DiffuseColor, err = p.Color3("diffuse_color", m.DiffuseColor); err != nil {
		return err
	}
	if m.SpecularColor, err = p.Color3("specular_color", m.SpecularColor); err != nil {
		return err
	}
	if m.Emissive, err = p.Float32("emissive", m.Emissive); err != nil {
		return err
	}
	m.Alpha, err = p.Float32("alpha", m.Alpha)
	return err
}

// LightComponent holds light data
type LightComponent struct {
	BaseComponent
	LightMode string // "directional", "point", "spot"
	Color     [3]float32
	Intensity float32
	Range     float32
	SpotAngle float32 // degrees, spot lights only
	Direction mgl32.Vec3
}

func NewLightComponent() *LightComponent {
	return &LightComponent{
		LightMode: "point",
		Color:     [3]float32{1.0, 1.0, 1.0},
		Intensity: 1.0,
		Range:     10.0,
		SpotAngle: 45.0,
		Direction: mgl32.Vec3{0, 0, -1},
	}
}

func (l *LightComponent) GetComponentType() ComponentType {
	return ComponentTypeLight
}

func (l *LightComponent) GetTypeName() string {
	return "LightComponent"
}

func (l *LightComponent) Serialize() Properties {
	return Properties{
		"light_mode": l.LightMode,
		"color":      l.Color,
		"intensity":  l.Intensity,
		"range":      l.Range,
		"spot_angle": l.SpotAngle,
		"direction":  l.Direction,
	}
}

func (l *LightComponent) Deserialize(p Properties) error {
	var err error
	if l.LightMode, err = p.String("light_mode", l.LightMode); err != nil {
		return err
	}
	if l.Color, err = p.Color3("color", l.Color); err != nil {
		return err
	}
	if l.Intensity, err = p.Float32("intensity", l.Intensity); err != nil {
		return err
	}
	if l.Range, err = p.Float32("range", l.Range); err != nil {
		return err
	}
	if l.SpotAngle, err = p.Float32("spot_angle", l.SpotAngle); err != nil {
		return err
	}
	l.Direction, err = p.Vec3("direction", l.Direction)
	return err
}

// CameraComponent holds camera data
type CameraComponent struct {
	BaseComponent
	FOV    float32
	Near   float32
	Far    float32
	IsMain bool // Is this the main game camera?
}

func NewCameraComponent() *CameraComponent {
	return &CameraComponent{
		FOV:    60.0,
		Near:   0.1,
		Far:    500.0,
		IsMain: false,
	}
}

func (c *CameraComponent) GetComponentType() ComponentType {
	return ComponentTypeCamera
}

func (c *CameraComponent) GetTypeName() string {
	return "CameraComponent"
}

func (c *CameraComponent) Serialize() Properties {
	return Properties{
		"fov":     c.FOV,
		"near":    c.Near,
		"far":     c.Far,
		"is_main": c.IsMain,
	}
}

func (c *CameraComponent) Deserialize(p Properties) error {
	var err error
	if c.FOV, err = p.Float32("fov", c.FOV); err != nil {
		return err
	}
	if c.Near, err = p.Float32("near", c.Near); err != nil {
		return err
	}
	if c.Far, err = p.Float32("far", c.Far); err != nil {
		return err
	}
	c.IsMain, err = p.Bool("is_main", c.IsMain)
	return err
}

// ColliderShape selects the raycast volume of a ColliderComponent
type ColliderShape string

const (
	ColliderSphere ColliderShape = "sphere"
	ColliderBox    ColliderShape = "box"
)

// ColliderComponent is the raycast volume of an object, centred at the
// object's world position plus Offset.
type ColliderComponent struct {
	BaseComponent
	Shape       ColliderShape
	Radius      float32
	HalfExtents mgl32.Vec3
	Offset      mgl32.Vec3
}

func NewColliderComponent() *ColliderComponent {
	return &ColliderComponent{
		Shape:       ColliderSphere,
		Radius:      0.5,
		HalfExtents: mgl32.Vec3{0.5, 0.5, 0.5},
	}
}

func (c *ColliderComponent) GetComponentType() ComponentType {
	return ComponentTypeCollider
}

func (c *ColliderComponent) GetTypeName() string {
	return "ColliderComponent"
}

// Center is the collider centre in world space.
func (c *ColliderComponent) Center() mgl32.Vec3 {
	obj := c.GetGameObject()
	if obj == nil {
		return c.Offset
	}
	return mgl32.TransformCoordinate(c.Offset, obj.Transform.WorldMatrix())
}

func (c *ColliderComponent) Serialize() Properties {
	return Properties{
		"shape":        string(c.Shape),
		"radius":       c.Radius,
		"half_extents": c.HalfExtents,
		"offset":       c.Offset,
	}
}

func (c *ColliderComponent) Deserialize(p Properties) error {
	shape, err := p.String("shape", string(c.Shape))
	if err != nil {
		return err
	}
	c.Shape = ColliderShape(shape)
	if c.Radius, err = p.Float32("radius", c.Radius); err != nil {
		return err
	}
	if c.HalfExtents, err = p.Vec3("half_extents", c.HalfExtents); err != nil {
		return err
	}
	c.Offset, err = p.Vec3("offset", c.Offset)
	return err
}

// Helper function to get component type name
func GetComponentTypeName(comp Component) string {
	if typed, ok := comp.(TypedComponent); ok {
		return typed.GetTypeName()
	}
	if name, ok := ScriptName(comp); ok {
		return name
	}
	return "Unknown"
}

// Helper function to get component category
func GetComponentCategory(comp Component) ComponentType {
	if typed, ok := comp.(TypedComponent); ok {
		return typed.GetComponentType()
	}
	if _, ok := ScriptName(comp); ok {
		return ComponentTypeScript
	}
	return ComponentTypeCustom
}

// BuiltInComponents returns a list of built-in component types that can be added
func BuiltInComponents() []string {
	return []string{
		"MeshComponent",
		"LightComponent",
		"CameraComponent",
		"ColliderComponent",
	}
}

// CreateBuiltInComponent creates a built-in component by name
func CreateBuiltInComponent(name string) Component {
	switch name {
	case "MeshComponent":
		return NewMeshComponent()
	case "LightComponent":
		return NewLightComponent()
	case "CameraComponent":
		return NewCameraComponent()
	case "ColliderComponent":
		return NewColliderComponent()
	default:
		return nil
	}
}

// ComponentOf returns the first component on obj assignable to T.
func ComponentOf[T any](obj *GameObject) (T, bool) {
	var zero T
	if obj == nil {
		return zero, false
	}
	for _, comp := range obj.Components {
		if c, ok := comp.(T); ok {
			return c, true
		}
	}
	return zero, false
}

// ComponentInParent searches obj and then its ancestors.
func ComponentInParent[T any](obj *GameObject) (T, bool) {
	for o := obj; o != nil; o = o.Parent() {
		if c, ok := ComponentOf[T](o); ok {
			return c, true
		}
	}
	var zero T
	return zero, false
}

// ComponentsInChildren collects matches from obj and all its descendants, depth first.
func ComponentsInChildren[T any](obj *GameObject) []T {
	var result []T
	if obj == nil {
		return result
	}
	for _, comp := range obj.Components {
		if c, ok := comp.(T); ok {
			result = append(result, c)
		}
	}
	for _, child := range obj.Children() {
		result = append(result, ComponentsInChildren[T](child)...)
	}
	return result
}
