package behaviour

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Component is the base interface for all components
// Components can be attached to game objects
type Component interface {
	// Lifecycle methods
	Awake()       // Called when component is attached
	Start()       // Called before first Update
	Update()      // Called every frame
	FixedUpdate() // Called at fixed time intervals
	OnDestroy()   // Called when component/object is destroyed

	// Component info
	GetEnabled() bool
	SetEnabled(bool)
	GetGameObject() *GameObject
	SetGameObject(*GameObject)
}

// Enabler is implemented by components that react to being switched on or off,
// either directly or through their GameObject's active state.
type Enabler interface {
	OnEnable()
	OnDisable()
}

// Serializable components persist their fields into a scene document.
type Serializable interface {
	Serialize() Properties
	Deserialize(Properties) error
}

// Inspectable components draw their own editor widgets.
type Inspectable interface {
	RenderUI()
}

// BaseComponent provides default implementations for all Component methods
// User scripts can embed this to only override methods they need
type BaseComponent struct {
	enabled    bool
	gameObject *GameObject
}

func (c *BaseComponent) Awake()       {}
func (c *BaseComponent) Start()       {}
func (c *BaseComponent) Update()      {}
func (c *BaseComponent) FixedUpdate() {}
func (c *BaseComponent) OnDestroy()   {}

func (c *BaseComponent) GetEnabled() bool {
	return c.enabled
}

func (c *BaseComponent) SetEnabled(enabled bool) {
	c.enabled = enabled
}

func (c *BaseComponent) GetGameObject() *GameObject {
	return c.gameObject
}

func (c *BaseComponent) SetGameObject(obj *GameObject) {
	c.gameObject = obj
}

// GameObject represents an object in the scene
type GameObject struct {
	Name       string
	Tag        string
	Active     bool
	Transform  *Transform
	Components []Component

	id           uint64
	scene        *ComponentManager
	pendingStart []Component
	destroyed    bool
}

// Transform holds local position, rotation and scale relative to Parent
type Transform struct {
	BaseComponent
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
	Parent   *Transform
	Children []*Transform
}

// Transform methods
func (t *Transform) Translate(delta mgl32.Vec3) {
	t.Position = t.Position.Add(delta)
}

func (t *Transform) Rotate(axis mgl32.Vec3, angle float32) {
	rotation := mgl32.QuatRotate(angle, axis)
	t.Rotation = t.Rotation.Mul(rotation)
}

func (t *Transform) SetPosition(pos mgl32.Vec3) {
	t.Position = pos
}

func (t *Transform) SetRotation(rot mgl32.Quat) {
	t.Rotation = rot
}

func (t *Transform) SetScale(scale mgl32.Vec3) {
	t.Scale = scale
}

// LocalMatrix composes translation, rotation and scale.
func (t *Transform) LocalMatrix() mgl32.Mat4 {
	rot := t.Rotation
	if rot == (mgl32.Quat{}) {
		rot = mgl32.QuatIdent()
	}
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(rot.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

func (t *Transform) WorldMatrix() mgl32.Mat4 {
	if t.Parent == nil {
		return t.LocalMatrix()
	}
	return t.Parent.WorldMatrix().Mul4(t.LocalMatrix())
}

func (t *Transform) WorldPosition() mgl32.Vec3 {
	return t.WorldMatrix().Col(3).Vec3()
}

// SetWorldPosition moves the transform so its world position equals pos.
func (t *Transform) SetWorldPosition(pos mgl32.Vec3) {
	if t.Parent == nil {
		t.Position = pos
		return
	}
	inv := t.Parent.WorldMatrix().Inv()
	t.Position = mgl32.TransformCoordinate(pos, inv)
}

func (t *Transform) WorldRotation() mgl32.Quat {
	rot := t.Rotation
	if rot == (mgl32.Quat{}) {
		rot = mgl32.QuatIdent()
	}
	if t.Parent == nil {
		return rot
	}
	return t.Parent.WorldRotation().Mul(rot)
}

func (t *Transform) Forward() mgl32.Vec3 {
	return t.WorldRotation().Rotate(mgl32.Vec3{0, 0, -1})
}

func (t *Transform) Up() mgl32.Vec3 {
	return t.WorldRotation().Rotate(mgl32.Vec3{0, 1, 0})
}

func (t *Transform) Right() mgl32.Vec3 {
	return t.WorldRotation().Rotate(mgl32.Vec3{1, 0, 0})
}

// GameObject methods
func NewGameObject(name string) *GameObject {
	obj := &GameObject{
		Name:       name,
		Active:     true,
		Components: make([]Component, 0),
		Transform: &Transform{
			Position: mgl32.Vec3{0, 0, 0},
			Rotation: mgl32.QuatIdent(),
			Scale:    mgl32.Vec3{1, 1, 1},
		},
	}
	obj.Transform.SetGameObject(obj)
	return obj
}

// ID is assigned when the object is registered with a ComponentManager; zero before that.
func (obj *GameObject) ID() uint64 {
	return obj.id
}

// Scene returns the manager this object is registered with, or nil.
func (obj *GameObject) Scene() *ComponentManager {
	return obj.scene
}

func (obj *GameObject) AddComponent(component Component) {
	component.SetGameObject(obj)
	component.SetEnabled(true)
	obj.Components = append(obj.Components, component)
	obj.pendingStart = append(obj.pendingStart, component)
	component.Awake()
}

// GetComponent returns the first component whose type name matches.
func (obj *GameObject) GetComponent(componentType string) Component {
	for _, comp := range obj.Components {
		if comp != nil && GetComponentTypeName(comp) == componentType {
			return comp
		}
	}
	return nil
}

func (obj *GameObject) GetComponents(componentType string) []Component {
	var result []Component
	for _, comp := range obj.Components {
		if comp != nil && GetComponentTypeName(comp) == componentType {
			result = append(result, comp)
		}
	}
	return result
}

func (obj *GameObject) RemoveComponent(component Component) {
	for i, comp := range obj.Components {
		if comp == component {
			comp.OnDestroy()
			obj.Components = append(obj.Components[:i], obj.Components[i+1:]...)
			obj.dropPending(comp)
			return
		}
	}
}

func (obj *GameObject) dropPending(component Component) {
	for i, comp := range obj.pendingStart {
		if comp == component {
			obj.pendingStart = append(obj.pendingStart[:i], obj.pendingStart[i+1:]...)
			return
		}
	}
}

// SetComponentEnabled toggles a component and fires OnEnable/OnDisable when the
// effective state changes.
func SetComponentEnabled(comp Component, enabled bool) {
	if comp.GetEnabled() == enabled {
		return
	}
	comp.SetEnabled(enabled)
	obj := comp.GetGameObject()
	if obj != nil && !obj.ActiveInHierarchy() {
		return
	}
	if e, ok := comp.(Enabler); ok {
		if enabled {
			e.OnEnable()
		} else {
			e.OnDisable()
		}
	}
}

// Parent returns the GameObject owning the parent transform, if any.
func (obj *GameObject) Parent() *GameObject {
	if obj.Transform.Parent == nil {
		return nil
	}
	return obj.Transform.Parent.GetGameObject()
}

// Children returns the direct child GameObjects.
func (obj *GameObject) Children() []*GameObject {
	children := make([]*GameObject, 0, len(obj.Transform.Children))
	for _, t := range obj.Transform.Children {
		if child := t.GetGameObject(); child != nil {
			children = append(children, child)
		}
	}
	return children
}

// Root walks up to the top-most ancestor.
func (obj *GameObject) Root() *GameObject {
	root := obj
	for root.Parent() != nil {
		root = root.Parent()
	}
	return root
}

// AddChild parents child under obj, keeping its local transform.
// If obj is already registered the child subtree is registered too.
func (obj *GameObject) AddChild(child *GameObject) {
	if old := child.Parent(); old != nil {
		old.detachChild(child)
	}
	child.Transform.Parent = obj.Transform
	obj.Transform.Children = append(obj.Transform.Children, child.Transform)
	if obj.scene != nil && child.scene == nil {
		obj.scene.RegisterGameObject(child)
	}
}

func (obj *GameObject) detachChild(child *GameObject) {
	for i, t := range obj.Transform.Children {
		if t == child.Transform {
			obj.Transform.Children = append(obj.Transform.Children[:i], obj.Transform.Children[i+1:]...)
			break
		}
	}
	child.Transform.Parent = nil
}

// FindChild returns the first direct child with the given name.
func (obj *GameObject) FindChild(name string) *GameObject {
	for _, child := range obj.Children() {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// ActiveInHierarchy is true when obj and all its ancestors are active.
func (obj *GameObject) ActiveInHierarchy() bool {
	for o := obj; o != nil; o = o.Parent() {
		if !o.Active {
			return false
		}
	}
	return true
}

// SetActive changes the active flag and notifies enabled components of the
// resulting hierarchy transitions.
func (obj *GameObject) SetActive(active bool) {
	if obj.Active == active {
		return
	}
	wasActive := obj.ActiveInHierarchy()
	obj.Active = active
	nowActive := obj.ActiveInHierarchy()
	if wasActive != nowActive {
		obj.notifyActive(nowActive)
	}
}

func (obj *GameObject) notifyActive(active bool) {
	for _, comp := range obj.Components {
		if !comp.GetEnabled() {
			continue
		}
		if e, ok := comp.(Enabler); ok {
			if active {
				e.OnEnable()
			} else {
				e.OnDisable()
			}
		}
	}
	for _, child := range obj.Children() {
		if child.Active {
			child.notifyActive(active)
		}
	}
}

func (obj *GameObject) internalUpdate() {
	if !obj.ActiveInHierarchy() {
		return
	}

	for _, comp := range obj.Components {
		if comp.GetEnabled() && !obj.isPending(comp) {
			comp.Update()
		}
	}
}

func (obj *GameObject) internalFixedUpdate() {
	if !obj.ActiveInHierarchy() {
		return
	}

	for _, comp := range obj.Components {
		if comp.GetEnabled() && !obj.isPending(comp) {
			comp.FixedUpdate()
		}
	}
}

// internalStart runs Start on every pending component that is enabled and
// active. Disabled components stay pending until they are enabled.
func (obj *GameObject) internalStart() {
	if len(obj.pendingStart) == 0 || !obj.ActiveInHierarchy() {
		return
	}

	pending := obj.pendingStart
	obj.pendingStart = nil
	for _, comp := range pending {
		if comp.GetEnabled() {
			comp.Start()
		} else {
			obj.pendingStart = append(obj.pendingStart, comp)
		}
	}
}

func (obj *GameObject) isPending(comp Component) bool {
	for _, p := range obj.pendingStart {
		if p == comp {
			return true
		}
	}
	return false
}

// Destroyed reports whether Destroy has run on this object.
func (obj *GameObject) Destroyed() bool {
	return obj.destroyed
}

func (obj *GameObject) Destroy() {
	if obj.destroyed {
		return
	}
	obj.destroyed = true
	for _, comp := range obj.Components {
		comp.OnDestroy()
	}
	obj.Active = false
}
