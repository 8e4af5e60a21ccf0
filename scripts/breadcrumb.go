package scripts

import (
	"fmt"
	"math"
	"sort"

	"Hollowmere/internal/behaviour"

	"github.com/inkyblackness/imgui-go/v4"
)

// BreadcrumbBehaviour is a glowing marker dropped to mark a path. The
// light on the same object pulses and fades out before the crumb expires.
type BreadcrumbBehaviour struct {
	behaviour.BaseComponent
	Index         int
	Lifetime      float32 // seconds, 0 lasts forever
	FadeTime      float32
	GlowIntensity float32
	PulseSpeed    float32
	Collectable   bool
	PlaceSound    string

	light     *behaviour.LightComponent
	age       float32
	intensity float32
	gone      bool
}

func init() {
	behaviour.RegisterScript("BreadcrumbBehaviour", func() behaviour.Component {
		return NewBreadcrumb()
	})
}

func NewBreadcrumb() *BreadcrumbBehaviour {
	return &BreadcrumbBehaviour{
		FadeTime:      3,
		GlowIntensity: 1.2,
		PulseSpeed:    2,
		Collectable:   true,
	}
}

func (b *BreadcrumbBehaviour) Start() {
	obj := b.GetGameObject()
	if light, ok := behaviour.ComponentOf[*behaviour.LightComponent](obj); ok {
		b.light = light
	}
	playAt(b.PlaceSound, obj.Transform.WorldPosition())
	b.apply()
}

func (b *BreadcrumbBehaviour) Update() {
	if b.gone {
		return
	}
	b.age += deltaTime()
	if b.Lifetime > 0 && b.age >= b.Lifetime {
		b.remove()
		return
	}
	b.apply()
}

func (b *BreadcrumbBehaviour) apply() {
	pulse := 0.75 + 0.25*float32(math.Sin(float64(b.age*b.PulseSpeed)))
	b.intensity = b.GlowIntensity * pulse
	if b.Lifetime > 0 && b.FadeTime > 0 {
		if remaining := b.Lifetime - b.age; remaining < b.FadeTime {
			b.intensity *= remaining / b.FadeTime
		}
	}
	if b.light != nil {
		b.light.Intensity = b.intensity
	}
}

func (b *BreadcrumbBehaviour) remove() {
	b.gone = true
	b.intensity = 0
	if b.light != nil {
		b.light.Intensity = 0
	}
	destroy(b.GetGameObject())
}

// OnInteract picks a collectable crumb back up.
func (b *BreadcrumbBehaviour) OnInteract(interactor *behaviour.GameObject) {
	if !b.Collectable || b.gone || interactor == nil {
		return
	}
	inv, ok := behaviour.ComponentInParent[*InventoryBehaviour](interactor)
	if !ok || !inv.ReturnBreadcrumb() {
		return
	}
	b.remove()
}

func (b *BreadcrumbBehaviour) Age() float32 {
	return b.age
}

func (b *BreadcrumbBehaviour) Intensity() float32 {
	return b.intensity
}

// Expired reports whether the crumb has been collected or timed out.
func (b *BreadcrumbBehaviour) Expired() bool {
	return b.gone
}

// Trail returns the live breadcrumbs in cm ordered by Index.
func Trail(cm *behaviour.ComponentManager) []*BreadcrumbBehaviour {
	var trail []*BreadcrumbBehaviour
	for _, obj := range cm.GetAllGameObjects() {
		if obj.Destroyed() {
			continue
		}
		if bc, ok := behaviour.ComponentOf[*BreadcrumbBehaviour](obj); ok && !bc.gone {
			trail = append(trail, bc)
		}
	}
	sort.SliceStable(trail, func(i, j int) bool { return trail[i].Index < trail[j].Index })
	return trail
}

func (b *BreadcrumbBehaviour) Serialize() behaviour.Properties {
	return behaviour.Properties{
		"index":          b.Index,
		"lifetime":       b.Lifetime,
		"fade_time":      b.FadeTime,
		"glow_intensity": b.GlowIntensity,
		"pulse_speed":    b.PulseSpeed,
		"collectable":    b.Collectable,
		"place_sound":    b.PlaceSound,
		"age":            b.age,
	}
}

func (b *BreadcrumbBehaviour) Deserialize(p behaviour.Properties) error {
	var err error
	if b.Index, err = p.Int("index", b.Index); err != nil {
		return err
	}
	if b.Lifetime, err = p.Float32("lifetime", b.Lifetime); err != nil {
		return err
	}
	if b.FadeTime, err = p.Float32("fade_time", b.FadeTime); err != nil {
		return err
	}
	if b.GlowIntensity, err = p.Float32("glow_intensity", b.GlowIntensity); err != nil {
		return err
	}
	if b.PulseSpeed, err = p.Float32("pulse_speed", b.PulseSpeed); err != nil {
		return err
	}
	if b.Collectable, err = p.Bool("collectable", b.Collectable); err != nil {
		return err
	}
	if b.PlaceSound, err = p.String("place_sound", b.PlaceSound); err != nil {
		return err
	}
	b.age, err = p.Float32("age", b.age)
	return err
}

func (b *BreadcrumbBehaviour) RenderUI() {
	imgui.Text(fmt.Sprintf("Trail index: %d", b.Index))
	imgui.DragFloatV("Lifetime", &b.Lifetime, 0.5, 0, 3600, "%.0f s", 0)
	imgui.DragFloatV("Fade Time", &b.FadeTime, 0.1, 0, 60, "%.1f s", 0)
	imgui.DragFloatV("Glow", &b.GlowIntensity, 0.05, 0, 10, "%.2f", 0)
	imgui.DragFloatV("Pulse Speed", &b.PulseSpeed, 0.05, 0, 20, "%.2f", 0)
	imgui.Checkbox("Collectable", &b.Collectable)
	imgui.InputTextV("Place Sound", &b.PlaceSound, 0, nil)
}
