package scripts

import (
	"Hollowmere/internal/behaviour"
	"Hollowmere/internal/logger"
	"Hollowmere/internal/scene"
	"Hollowmere/internal/services"

	"github.com/inkyblackness/imgui-go/v4"
	"go.uber.org/zap"
)

// InteractableBehaviour marks an object the player can aim at and use.
// Interactions are forwarded to every InteractionListener on the same
// object, then to callbacks registered with AddListener.
type InteractableBehaviour struct {
	behaviour.BaseComponent
	Prompt            string
	HighlightMaterial string
	MaxDistance       float32 // 0 defers to the interactor's reach
	Cooldown          float32
	OneShot           bool
	InteractSound     string

	hovered   bool
	hoveredBy *behaviour.GameObject
	original  behaviour.Material
	swapped   bool
	cooldown  float32
	used      bool
	listeners []func(interactor *behaviour.GameObject)
}

func init() {
	behaviour.RegisterScript("InteractableBehaviour", func() behaviour.Component {
		return NewInteractable()
	})
}

func NewInteractable() *InteractableBehaviour {
	return &InteractableBehaviour{
		Prompt:   "Interact",
		Cooldown: 0.25,
	}
}

func (i *InteractableBehaviour) Update() {
	if i.cooldown > 0 {
		i.cooldown -= deltaTime()
	}
}

// AddListener registers fn to run after the component listeners.
func (i *InteractableBehaviour) AddListener(fn func(interactor *behaviour.GameObject)) {
	i.listeners = append(i.listeners, fn)
}

func (i *InteractableBehaviour) Hovered() bool {
	return i.hovered
}

// Used reports whether a OneShot interactable has fired.
func (i *InteractableBehaviour) Used() bool {
	return i.used
}

func (i *InteractableBehaviour) OnHover(interactor *behaviour.GameObject) {
	if i.hovered {
		return
	}
	i.hovered = true
	i.hoveredBy = interactor

	if i.HighlightMaterial == "" {
		return
	}
	mesh, ok := behaviour.ComponentOf[*behaviour.MeshComponent](i.GetGameObject())
	if !ok {
		return
	}
	mat, ok := services.Get().Content.Material(i.HighlightMaterial)
	if !ok {
		logger.Log.Warn("Highlight material not found",
			zap.String("object", i.GetGameObject().Name),
			zap.String("material", i.HighlightMaterial))
		return
	}
	i.original = mesh.Material()
	mesh.SetMaterial(scene.MeshMaterial(mat))
	i.swapped = true
}

func (i *InteractableBehaviour) OffHover(interactor *behaviour.GameObject) {
	if !i.hovered {
		return
	}
	i.hovered = false
	i.hoveredBy = nil

	if !i.swapped {
		return
	}
	i.swapped = false
	if mesh, ok := behaviour.ComponentOf[*behaviour.MeshComponent](i.GetGameObject()); ok {
		mesh.SetMaterial(i.original)
	}
}

// CanInteract applies the enabled, cooldown, one-shot and distance rules.
func (i *InteractableBehaviour) CanInteract(interactor *behaviour.GameObject) bool {
	obj := i.GetGameObject()
	if obj == nil || !i.GetEnabled() || !obj.ActiveInHierarchy() {
		return false
	}
	if i.cooldown > 0 || (i.OneShot && i.used) {
		return false
	}
	if i.MaxDistance > 0 && interactor != nil {
		d := interactor.Transform.WorldPosition().Sub(obj.Transform.WorldPosition()).Len()
		if d > i.MaxDistance {
			return false
		}
	}
	return true
}

// Interact dispatches to listeners and reports whether the interaction happened.
func (i *InteractableBehaviour) Interact(interactor *behaviour.GameObject) bool {
	if !i.CanInteract(interactor) {
		return false
	}
	obj := i.GetGameObject()
	pos := obj.Transform.WorldPosition()

	// Listeners may remove components or deactivate the object
	components := append([]behaviour.Component(nil), obj.Components...)
	for _, comp := range components {
		if comp == behaviour.Component(i) || !comp.GetEnabled() {
			continue
		}
		if l, ok := comp.(InteractionListener); ok {
			l.OnInteract(interactor)
		}
	}
	for _, fn := range i.listeners {
		fn(interactor)
	}

	playAt(i.InteractSound, pos)
	i.cooldown = i.Cooldown
	if i.OneShot {
		i.used = true
		behaviour.SetComponentEnabled(i, false)
	}
	return true
}

func (i *InteractableBehaviour) OnEnable() {}

func (i *InteractableBehaviour) OnDisable() {
	i.OffHover(i.hoveredBy)
}

func (i *InteractableBehaviour) OnDestroy() {
	i.OffHover(i.hoveredBy)
	i.listeners = nil
}

func (i *InteractableBehaviour) Serialize() behaviour.Properties {
	return behaviour.Properties{
		"prompt":             i.Prompt,
		"highlight_material": i.HighlightMaterial,
		"max_distance":       i.MaxDistance,
		"cooldown":           i.Cooldown,
		"one_shot":           i.OneShot,
		"interact_sound":     i.InteractSound,
	}
}

func (i *InteractableBehaviour) Deserialize(p behaviour.Properties) error {
	var err error
	if i.Prompt, err = p.String("prompt", i.Prompt); err != nil {
		return err
	}
	if i.HighlightMaterial, err = p.String("highlight_material", i.HighlightMaterial); err != nil {
		return err
	}
	if i.MaxDistance, err = p.Float32("max_distance", i.MaxDistance); err != nil {
		return err
	}
	if i.Cooldown, err = p.Float32("cooldown", i.Cooldown); err != nil {
		return err
	}
	if i.OneShot, err = p.Bool("one_shot", i.OneShot); err != nil {
		return err
	}
	i.InteractSound, err = p.String("interact_sound", i.InteractSound)
	return err
}

func (i *InteractableBehaviour) RenderUI() {
	imgui.InputTextV("Prompt", &i.Prompt, 0, nil)
	imgui.InputTextV("Highlight Material", &i.HighlightMaterial, 0, nil)
	imgui.DragFloatV("Max Distance", &i.MaxDistance, 0.05, 0, 50, "%.2f", 0)
	imgui.DragFloatV("Cooldown", &i.Cooldown, 0.05, 0, 30, "%.2f s", 0)
	imgui.Checkbox("One Shot", &i.OneShot)
	imgui.InputTextV("Interact Sound", &i.InteractSound, 0, nil)
	if i.hovered {
		imgui.Text("Hovered")
	}
	if i.used {
		imgui.Text("Used")
	}
}
