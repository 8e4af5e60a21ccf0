package scripts

import (
	"math"

	"Hollowmere/internal/audio"
	"Hollowmere/internal/behaviour"
	"Hollowmere/internal/input"
	"Hollowmere/internal/logger"
	"Hollowmere/internal/services"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
	"go.uber.org/zap"
)

type FlashlightState int

const (
	FlashlightOff FlashlightState = iota
	FlashlightOn
	FlashlightFlickering
	FlashlightCharging
	FlashlightDepleted
)

func (s FlashlightState) String() string {
	switch s {
	case FlashlightOn:
		return "On"
	case FlashlightFlickering:
		return "Flickering"
	case FlashlightCharging:
		return "Charging"
	case FlashlightDepleted:
		return "Depleted"
	default:
		return "Off"
	}
}

// FlashlightBehaviour drains a battery while lit and drives the intensity
// of the LightComponent on the same object. Below FlickerThreshold the beam
// flickers with perlin noise, harder as the battery empties.
type FlashlightBehaviour struct {
	behaviour.BaseComponent
	Battery    float32
	MaxBattery float32
	DrainRate  float32 // per second while lit
	ChargeRate float32 // per second while the charge input is held

	FlickerThreshold float32
	FlickerSpeed     float32
	FlickerDepth     float32

	BaseIntensity      float32
	MinIntensityFactor float32 // intensity fraction at an empty battery

	On          bool
	ClickSound  string
	ChargeSound string

	light        *behaviour.LightComponent
	noise        *perlin.Perlin
	charging     bool
	chargeSource audio.Source
	intensity    float32
}

func init() {
	behaviour.RegisterScript("FlashlightBehaviour", func() behaviour.Component {
		return NewFlashlight()
	})
}

func NewFlashlight() *FlashlightBehaviour {
	return &FlashlightBehaviour{
		Battery:            100,
		MaxBattery:         100,
		DrainRate:          1.5,
		ChargeRate:         12,
		FlickerThreshold:   20,
		FlickerSpeed:       8,
		FlickerDepth:       0.9,
		BaseIntensity:      2.5,
		MinIntensityFactor: 0.35,
		On:                 true,
	}
}

func (f *FlashlightBehaviour) Start() {
	obj := f.GetGameObject()
	if light, ok := behaviour.ComponentOf[*behaviour.LightComponent](obj); ok {
		f.light = light
	} else {
		logger.Log.Warn("Flashlight has no LightComponent", zap.String("object", obj.Name))
	}
	f.noise = perlin.NewPerlin(2, 2, 3, int64(obj.ID()))
	f.Battery = mgl32.Clamp(f.Battery, 0, f.MaxBattery)
	if f.Battery == 0 {
		f.On = false
	}

	if f.ChargeSound != "" {
		svc := services.Get()
		if snd, ok := svc.Content.Sound(f.ChargeSound); ok {
			snd.Loop = true
			src, err := svc.Audio.NewSource(snd)
			if err != nil {
				logger.Log.Warn("Failed to create charge sound", zap.String("sound", f.ChargeSound), zap.Error(err))
			} else {
				f.chargeSource = src
			}
		} else {
			logger.Log.Warn("Sound not found in content table", zap.String("sound", f.ChargeSound))
		}
	}
	f.apply()
}

func (f *FlashlightBehaviour) Update() {
	in := services.Get().Input
	if in.Pressed(input.ToggleFlashlight) {
		f.Toggle()
	}
	f.setCharging(in.Held(input.ChargeFlashlight))
	f.Step(deltaTime())
}

// Step advances the battery by dt seconds and updates the light.
func (f *FlashlightBehaviour) Step(dt float32) {
	switch {
	case f.charging:
		f.AddCharge(f.ChargeRate * dt)
	case f.On:
		f.Battery -= f.DrainRate * dt
		if f.Battery <= 0 {
			f.Battery = 0
			f.On = false
			f.click()
			logger.Log.Debug("Flashlight depleted", zap.String("object", f.GetGameObject().Name))
		}
	}
	if f.chargeSource != nil {
		f.chargeSource.SetPosition(f.GetGameObject().Transform.WorldPosition())
	}
	f.apply()
}

// Toggle flips the switch and reports whether the light is now on. An empty
// battery refuses to turn on but still clicks.
func (f *FlashlightBehaviour) Toggle() bool {
	f.click()
	if f.On {
		f.On = false
	} else if f.Battery > 0 {
		f.On = true
	}
	f.apply()
	return f.On
}

// AddCharge adds to the battery, clamped to MaxBattery.
func (f *FlashlightBehaviour) AddCharge(amount float32) {
	f.Battery = mgl32.Clamp(f.Battery+amount, 0, f.MaxBattery)
}

func (f *FlashlightBehaviour) State() FlashlightState {
	switch {
	case f.charging:
		return FlashlightCharging
	case f.On && f.Battery < f.FlickerThreshold:
		return FlashlightFlickering
	case f.On:
		return FlashlightOn
	case f.Battery <= 0:
		return FlashlightDepleted
	default:
		return FlashlightOff
	}
}

// Level is the battery fraction in [0, 1].
func (f *FlashlightBehaviour) Level() float32 {
	if f.MaxBattery <= 0 {
		return 0
	}
	return mgl32.Clamp(f.Battery/f.MaxBattery, 0, 1)
}

// Intensity is the value last written to the light.
func (f *FlashlightBehaviour) Intensity() float32 {
	return f.intensity
}

func (f *FlashlightBehaviour) computeIntensity() float32 {
	if !f.On || !f.GetEnabled() {
		return 0
	}
	floor := mgl32.Clamp(f.MinIntensityFactor, 0, 1)
	intensity := f.BaseIntensity * (floor + (1-floor)*f.Level())

	if f.FlickerThreshold > 0 && f.Battery < f.FlickerThreshold && f.noise != nil {
		lowness := 1 - f.Battery/f.FlickerThreshold
		n := float32(math.Abs(f.noise.Noise1D(float64(behaviour.Time.Elapsed * f.FlickerSpeed))))
		intensity *= mgl32.Clamp(1-f.FlickerDepth*lowness*n*2, 0, 1)
	}
	return intensity
}

func (f *FlashlightBehaviour) apply() {
	f.intensity = f.computeIntensity()
	if f.light != nil {
		f.light.Intensity = f.intensity
	}
}

func (f *FlashlightBehaviour) setCharging(held bool) {
	if held == f.charging {
		return
	}
	f.charging = held
	if f.chargeSource == nil {
		return
	}
	if held {
		f.chargeSource.Play()
	} else {
		f.chargeSource.Stop()
	}
}

func (f *FlashlightBehaviour) click() {
	if obj := f.GetGameObject(); obj != nil {
		playAt(f.ClickSound, obj.Transform.WorldPosition())
	}
}

func (f *FlashlightBehaviour) OnEnable() {
	f.apply()
}

func (f *FlashlightBehaviour) OnDisable() {
	f.setCharging(false)
	f.intensity = 0
	if f.light != nil {
		f.light.Intensity = 0
	}
}

func (f *FlashlightBehaviour) OnDestroy() {
	if f.chargeSource != nil {
		_ = f.chargeSource.Close()
		f.chargeSource = nil
	}
}

func (f *FlashlightBehaviour) Serialize() behaviour.Properties {
	return behaviour.Properties{
		"battery":              f.Battery,
		"max_battery":          f.MaxBattery,
		"drain_rate":           f.DrainRate,
		"charge_rate":          f.ChargeRate,
		"flicker_threshold":    f.FlickerThreshold,
		"flicker_speed":        f.FlickerSpeed,
		"flicker_depth":        f.FlickerDepth,
		"base_intensity":       f.BaseIntensity,
		"min_intensity_factor": f.MinIntensityFactor,
		"on":                   f.On,
		"click_sound":          f.ClickSound,
		"charge_sound":         f.ChargeSound,
	}
}

func (f *FlashlightBehaviour) Deserialize(p behaviour.Properties) error {
	floats := []struct {
		key string
		dst *float32
	}{
		{"battery", &f.Battery},
		{"max_battery", &f.MaxBattery},
		{"drain_rate", &f.DrainRate},
		{"charge_rate", &f.ChargeRate},
		{"flicker_threshold", &f.FlickerThreshold},
		{"flicker_speed", &f.FlickerSpeed},
		{"flicker_depth", &f.FlickerDepth},
		{"base_intensity", &f.BaseIntensity},
		{"min_intensity_factor", &f.MinIntensityFactor},
	}
	for _, fl := range floats {
		v, err := p.Float32(fl.key, *fl.dst)
		if err != nil {
			return err
		}
		*fl.dst = v
	}

	var err error
	if f.On, err = p.Bool("on", f.On); err != nil {
		return err
	}
	if f.ClickSound, err = p.String("click_sound", f.ClickSound); err != nil {
		return err
	}
	if f.ChargeSound, err = p.String("charge_sound", f.ChargeSound); err != nil {
		return err
	}
	if f.MaxBattery < 0 {
		f.MaxBattery = 0
	}
	f.Battery = mgl32.Clamp(f.Battery, 0, f.MaxBattery)
	return nil
}

func (f *FlashlightBehaviour) RenderUI() {
	imgui.Text("State: " + f.State().String())
	imgui.SliderFloatV("Battery", &f.Battery, 0, f.MaxBattery, "%.1f", 0)
	imgui.DragFloatV("Max Battery", &f.MaxBattery, 1, 1, 1000, "%.0f", 0)
	imgui.DragFloatV("Drain Rate", &f.DrainRate, 0.05, 0, 50, "%.2f /s", 0)
	imgui.DragFloatV("Charge Rate", &f.ChargeRate, 0.1, 0, 100, "%.1f /s", 0)

	if imgui.CollapsingHeaderV("Flicker", imgui.TreeNodeFlagsDefaultOpen) {
		imgui.DragFloatV("Threshold", &f.FlickerThreshold, 0.5, 0, f.MaxBattery, "%.1f", 0)
		imgui.DragFloatV("Speed", &f.FlickerSpeed, 0.1, 0, 50, "%.1f", 0)
		imgui.SliderFloatV("Depth", &f.FlickerDepth, 0, 1, "%.2f", 0)
	}

	imgui.DragFloatV("Base Intensity", &f.BaseIntensity, 0.05, 0, 20, "%.2f", 0)
	imgui.SliderFloatV("Min Intensity", &f.MinIntensityFactor, 0, 1, "%.2f", 0)
	if imgui.Checkbox("On", &f.On) {
		f.apply()
	}
	imgui.InputTextV("Click Sound", &f.ClickSound, 0, nil)
	imgui.InputTextV("Charge Sound", &f.ChargeSound, 0, nil)
}
