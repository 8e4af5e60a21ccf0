package behaviour

import (
	"github.com/kamstrup/intmap"
)

// FrameTime is the clock visible to components during a pass.
type FrameTime struct {
	DeltaTime      float32 // seconds since the previous Update pass
	FixedDeltaTime float32 // step used by the current FixedUpdate pass
	Elapsed        float32 // total Update time since the manager started
	Frame          uint64
}

// Time mirrors the clock of the manager currently running a pass.
var Time FrameTime

// ComponentManager manages all GameObjects and their components
// It is the scene holder components use to find, create and remove objects.
type ComponentManager struct {
	gameObjects []*GameObject
	toDestroy   []*GameObject
	byID        *intmap.Map[uint64, *GameObject]
	nextID      uint64
	time        FrameTime
}

var GlobalComponentManager = NewComponentManager()

func NewComponentManager() *ComponentManager {
	return &ComponentManager{
		gameObjects: make([]*GameObject, 0),
		toDestroy:   make([]*GameObject, 0),
		byID:        intmap.New[uint64, *GameObject](64),
		nextID:      1,
	}
}

// RegisterGameObject adds a GameObject and its whole child subtree to the manager.
// Start runs on the next UpdateAll.
func (cm *ComponentManager) RegisterGameObject(obj *GameObject) {
	if obj.scene == cm {
		return
	}
	obj.scene = cm
	obj.id = cm.nextID
	cm.nextID++
	cm.gameObjects = append(cm.gameObjects, obj)
	cm.byID.Put(obj.id, obj)

	for _, child := range obj.Children() {
		cm.RegisterGameObject(child)
	}
}

// UnregisterGameObject removes obj and its children immediately and destroys them.
func (cm *ComponentManager) UnregisterGameObject(obj *GameObject) {
	for _, child := range obj.Children() {
		cm.UnregisterGameObject(child)
	}
	for i, o := range cm.gameObjects {
		if o == obj {
			cm.gameObjects = append(cm.gameObjects[:i], cm.gameObjects[i+1:]...)
			cm.byID.Del(obj.id)
			if parent := obj.Parent(); parent != nil {
				parent.detachChild(obj)
			}
			obj.Destroy()
			obj.scene = nil
			return
		}
	}
}

// FindGameObject finds a GameObject by name
func (cm *ComponentManager) FindGameObject(name string) *GameObject {
	for _, obj := range cm.gameObjects {
		if obj.Name == name {
			return obj
		}
	}
	return nil
}

// FindByID looks up a GameObject by the ID assigned at registration.
func (cm *ComponentManager) FindByID(id uint64) *GameObject {
	obj, ok := cm.byID.Get(id)
	if !ok {
		return nil
	}
	return obj
}

// FindGameObjectsWithTag finds all GameObjects with a specific tag
func (cm *ComponentManager) FindGameObjectsWithTag(tag string) []*GameObject {
	var result []*GameObject
	for _, obj := range cm.gameObjects {
		if obj.Tag == tag {
			result = append(result, obj)
		}
	}
	return result
}

// Time returns the clock of the last pass.
func (cm *ComponentManager) Time() FrameTime {
	return cm.time
}

// UpdateAll starts pending components and calls Update on all active GameObjects
func (cm *ComponentManager) UpdateAll(deltaTime float32) {
	// Process destroyed objects
	if len(cm.toDestroy) > 0 {
		pending := cm.toDestroy
		cm.toDestroy = nil
		for _, obj := range pending {
			cm.UnregisterGameObject(obj)
		}
	}

	cm.time.DeltaTime = deltaTime
	cm.time.Elapsed += deltaTime
	cm.time.Frame++
	cm.publishTime()

	// Objects registered during this pass wait for the next one
	objects := append([]*GameObject(nil), cm.gameObjects...)
	for _, obj := range objects {
		obj.internalStart()
	}
	for _, obj := range objects {
		if !obj.destroyed {
			obj.internalUpdate()
		}
	}
}

// FixedUpdateAll calls FixedUpdate on all active GameObjects
func (cm *ComponentManager) FixedUpdateAll(fixedDeltaTime float32) {
	cm.time.FixedDeltaTime = fixedDeltaTime
	cm.publishTime()

	objects := append([]*GameObject(nil), cm.gameObjects...)
	for _, obj := range objects {
		if !obj.destroyed {
			obj.internalFixedUpdate()
		}
	}
}

func (cm *ComponentManager) publishTime() {
	Time = cm.time
}

// DestroyGameObject marks a GameObject for destruction (will be removed next frame)
func (cm *ComponentManager) DestroyGameObject(obj *GameObject) {
	for _, o := range cm.toDestroy {
		if o == obj {
			return
		}
	}
	cm.toDestroy = append(cm.toDestroy, obj)
}

// GetAllGameObjects returns all registered GameObjects
func (cm *ComponentManager) GetAllGameObjects() []*GameObject {
	return cm.gameObjects
}

// Clear removes all GameObjects
func (cm *ComponentManager) Clear() {
	for _, obj := range cm.gameObjects {
		obj.Destroy()
		obj.scene = nil
	}
	cm.gameObjects = cm.gameObjects[:0]
	cm.toDestroy = cm.toDestroy[:0]
	cm.byID.Clear()
}
