package scripts

import (
	"Hollowmere/internal/behaviour"
	"Hollowmere/internal/input"
	"Hollowmere/internal/raycast"
	"Hollowmere/internal/services"

	"github.com/inkyblackness/imgui-go/v4"
)

// InteractorBehaviour casts a ray along its object's forward axis each frame
// and keeps the closest enabled InteractableBehaviour as its hover target.
// It usually sits on the player camera.
type InteractorBehaviour struct {
	behaviour.BaseComponent
	Reach     float32
	Suspended bool

	target *InteractableBehaviour
}

func init() {
	behaviour.RegisterScript("InteractorBehaviour", func() behaviour.Component {
		return NewInteractor()
	})
}

func NewInteractor() *InteractorBehaviour {
	return &InteractorBehaviour{Reach: 2.5}
}

func (i *InteractorBehaviour) Update() {
	if i.Suspended {
		i.setTarget(nil)
		return
	}
	i.setTarget(i.findTarget())

	if i.target != nil && services.Get().Input.Pressed(input.Interact) {
		i.target.Interact(i.GetGameObject())
	}
}

func (i *InteractorBehaviour) findTarget() *InteractableBehaviour {
	obj := i.GetGameObject()
	cm := obj.Scene()
	if cm == nil {
		return nil
	}
	self := obj.Root()
	ray := raycast.Ray{Origin: obj.Transform.WorldPosition(), Direction: obj.Transform.Forward()}

	hit, ok := raycast.Cast(cm.GetAllGameObjects(), ray, i.Reach, func(o *behaviour.GameObject) bool {
		if o.Root() == self {
			return false
		}
		in, ok := behaviour.ComponentOf[*InteractableBehaviour](o)
		return ok && in.GetEnabled()
	})
	if !ok {
		return nil
	}
	in, _ := behaviour.ComponentOf[*InteractableBehaviour](hit.Object)
	return in
}

func (i *InteractorBehaviour) setTarget(next *InteractableBehaviour) {
	if next == i.target {
		return
	}
	owner := i.GetGameObject()
	if i.target != nil {
		i.target.OffHover(owner)
	}
	i.target = next
	if next != nil {
		next.OnHover(owner)
	}
}

// SetSuspended stops targeting, clearing the current hover.
func (i *InteractorBehaviour) SetSuspended(suspended bool) {
	i.Suspended = suspended
	if suspended {
		i.setTarget(nil)
	}
}

func (i *InteractorBehaviour) Target() *InteractableBehaviour {
	return i.target
}

// Prompt is the current target's prompt, empty when nothing is targeted.
func (i *InteractorBehaviour) Prompt() string {
	if i.target == nil {
		return ""
	}
	return i.target.Prompt
}

func (i *InteractorBehaviour) OnEnable() {}

func (i *InteractorBehaviour) OnDisable() {
	i.setTarget(nil)
}

func (i *InteractorBehaviour) OnDestroy() {
	i.setTarget(nil)
}

func (i *InteractorBehaviour) Serialize() behaviour.Properties {
	return behaviour.Properties{
		"reach":     i.Reach,
		"suspended": i.Suspended,
	}
}

func (i *InteractorBehaviour) Deserialize(p behaviour.Properties) error {
	var err error
	if i.Reach, err = p.Float32("reach", i.Reach); err != nil {
		return err
	}
	i.Suspended, err = p.Bool("suspended", i.Suspended)
	return err
}

func (i *InteractorBehaviour) RenderUI() {
	imgui.DragFloatV("Reach", &i.Reach, 0.05, 0.1, 20, "%.2f", 0)
	if imgui.Checkbox("Suspended", &i.Suspended) {
		i.SetSuspended(i.Suspended)
	}
	if i.target != nil {
		imgui.Text("Target: " + i.target.GetGameObject().Name)
	} else {
		imgui.Text("Target: none")
	}
}
