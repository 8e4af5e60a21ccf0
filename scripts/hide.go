package scripts

import (
	"Hollowmere/internal/behaviour"
	"Hollowmere/internal/input"
	"Hollowmere/internal/services"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
)

// HideBehaviour is a hiding spot such as a locker or a wardrobe. Interacting
// moves the interactor's root object inside and suspends its interactors
// until the player leaves.
type HideBehaviour struct {
	behaviour.BaseComponent
	HidePoint  mgl32.Vec3 // local to this object
	ExitOffset mgl32.Vec3 // world offset added to the stored position on exit
	EnterSound string
	ExitSound  string
	ExitDelay  float32

	occupant     *behaviour.GameObject
	returnTo     mgl32.Vec3
	hiddenFor    float32
	enteredFrame uint64
	leftFrame    uint64
	leftByInput  bool
}

func init() {
	behaviour.RegisterScript("HideBehaviour", func() behaviour.Component {
		return &HideBehaviour{ExitDelay: 0.5}
	})
}

func (h *HideBehaviour) OnInteract(interactor *behaviour.GameObject) {
	if interactor == nil || h.occupant != nil {
		return
	}
	// The press that exits must not re-enter through a later interactor
	if h.leftByInput && behaviour.Time.Frame == h.leftFrame {
		return
	}
	root := interactor.Root()
	h.occupant = root
	h.returnTo = root.Transform.WorldPosition()
	h.hiddenFor = 0
	h.enteredFrame = behaviour.Time.Frame

	root.Transform.SetWorldPosition(worldPoint(h.GetGameObject(), h.HidePoint))
	h.suspendInteractors(true)
	playAt(h.EnterSound, h.GetGameObject().Transform.WorldPosition())
}

func (h *HideBehaviour) Update() {
	if h.occupant == nil {
		return
	}
	if h.occupant.Destroyed() {
		h.occupant = nil
		return
	}
	h.hiddenFor += deltaTime()

	// The press that entered must not also exit
	if behaviour.Time.Frame == h.enteredFrame || h.hiddenFor < h.ExitDelay {
		return
	}
	in := services.Get().Input
	if in.Pressed(input.Interact) || in.Pressed(input.ExitHide) {
		h.Exit()
		h.leftFrame = behaviour.Time.Frame
		h.leftByInput = true
	}
}

// Exit releases the occupant, if any.
func (h *HideBehaviour) Exit() {
	if h.occupant == nil {
		return
	}
	h.occupant.Transform.SetWorldPosition(h.returnTo.Add(h.ExitOffset))
	h.suspendInteractors(false)
	h.occupant = nil
	playAt(h.ExitSound, h.GetGameObject().Transform.WorldPosition())
}

func (h *HideBehaviour) suspendInteractors(suspended bool) {
	for _, in := range behaviour.ComponentsInChildren[*InteractorBehaviour](h.occupant) {
		in.SetSuspended(suspended)
	}
}

func (h *HideBehaviour) Occupant() *behaviour.GameObject {
	return h.occupant
}

// IsHidden reports whether obj, or the hierarchy it belongs to, occupies a
// hiding spot in its scene.
func IsHidden(obj *behaviour.GameObject) bool {
	if obj == nil || obj.Scene() == nil {
		return false
	}
	root := obj.Root()
	for _, o := range obj.Scene().GetAllGameObjects() {
		for _, comp := range o.Components {
			if h, ok := comp.(*HideBehaviour); ok && h.occupant == root {
				return true
			}
		}
	}
	return false
}

func (h *HideBehaviour) OnEnable() {}

func (h *HideBehaviour) OnDisable() {
	h.Exit()
}

func (h *HideBehaviour) OnDestroy() {
	h.Exit()
}

func (h *HideBehaviour) Serialize() behaviour.Properties {
	return behaviour.Properties{
		"hide_point":  h.HidePoint,
		"exit_offset": h.ExitOffset,
		"enter_sound": h.EnterSound,
		"exit_sound":  h.ExitSound,
		"exit_delay":  h.ExitDelay,
	}
}

func (h *HideBehaviour) Deserialize(p behaviour.Properties) error {
	var err error
	if h.HidePoint, err = p.Vec3("hide_point", h.HidePoint); err != nil {
		return err
	}
	if h.ExitOffset, err = p.Vec3("exit_offset", h.ExitOffset); err != nil {
		return err
	}
	if h.EnterSound, err = p.String("enter_sound", h.EnterSound); err != nil {
		return err
	}
	if h.ExitSound, err = p.String("exit_sound", h.ExitSound); err != nil {
		return err
	}
	h.ExitDelay, err = p.Float32("exit_delay", h.ExitDelay)
	return err
}

func (h *HideBehaviour) RenderUI() {
	imgui.DragFloat3("Hide Point", (*[3]float32)(&h.HidePoint))
	imgui.DragFloat3("Exit Offset", (*[3]float32)(&h.ExitOffset))
	imgui.InputTextV("Enter Sound", &h.EnterSound, 0, nil)
	imgui.InputTextV("Exit Sound", &h.ExitSound, 0, nil)
	imgui.DragFloatV("Exit Delay", &h.ExitDelay, 0.05, 0, 10, "%.2f s", 0)
	if h.occupant != nil {
		imgui.Text("Occupied by " + h.occupant.Name)
		if imgui.Button("Eject") {
			h.Exit()
		}
	}
}
