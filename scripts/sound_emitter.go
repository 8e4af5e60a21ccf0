package scripts

import (
	"math/rand"

	"Hollowmere/internal/audio"
	"Hollowmere/internal/behaviour"
	"Hollowmere/internal/logger"
	"Hollowmere/internal/services"

	"github.com/inkyblackness/imgui-go/v4"
	"go.uber.org/zap"
)

// SoundEmitterBehaviour plays a content sound from the object's position.
// With MaxInterval set and Loop off it replays at random intervals, which is
// how ambient drips and creaks are placed.
type SoundEmitterBehaviour struct {
	behaviour.BaseComponent
	Sound       string
	Volume      float32
	Loop        bool
	PlayOnStart bool

	MinInterval float32
	MaxInterval float32

	ConeInner     float32 // degrees, 360 is omnidirectional
	ConeOuter     float32
	ConeOuterGain float32

	source audio.Source
	timer  float32
}

func init() {
	behaviour.RegisterScript("SoundEmitterBehaviour", func() behaviour.Component {
		return NewSoundEmitter()
	})
}

func NewSoundEmitter() *SoundEmitterBehaviour {
	return &SoundEmitterBehaviour{
		Volume:        1,
		PlayOnStart:   true,
		ConeInner:     360,
		ConeOuter:     360,
		ConeOuterGain: 1,
	}
}

func (e *SoundEmitterBehaviour) Start() {
	if e.Sound == "" {
		return
	}
	svc := services.Get()
	snd, ok := svc.Content.Sound(e.Sound)
	if !ok {
		logger.Log.Warn("Sound emitter has unknown sound",
			zap.String("object", e.GetGameObject().Name),
			zap.String("sound", e.Sound))
		return
	}
	snd.Loop = e.Loop

	src, err := svc.Audio.NewSource(snd)
	if err != nil {
		logger.Log.Error("Failed to create sound source",
			zap.String("object", e.GetGameObject().Name),
			zap.Error(err))
		return
	}
	e.source = src
	e.source.SetVolume(e.Volume)
	e.source.SetCone(e.cone())
	e.syncTransform()

	if e.PlayOnStart {
		e.source.Play()
	}
	e.timer = e.nextInterval()
}

func (e *SoundEmitterBehaviour) Update() {
	if e.source == nil {
		return
	}
	e.syncTransform()

	if e.Loop || e.MaxInterval <= 0 {
		return
	}
	e.timer -= deltaTime()
	if e.timer <= 0 {
		e.source.Play()
		e.timer = e.nextInterval()
	}
}

func (e *SoundEmitterBehaviour) OnEnable() {
	if e.source != nil {
		e.source.Resume()
	}
}

func (e *SoundEmitterBehaviour) OnDisable() {
	if e.source != nil {
		e.source.Pause()
	}
}

func (e *SoundEmitterBehaviour) OnDestroy() {
	if e.source != nil {
		if err := e.source.Close(); err != nil {
			logger.Log.Warn("Failed to close sound source", zap.String("sound", e.Sound), zap.Error(err))
		}
		e.source = nil
	}
}

// Play restarts the sound from the beginning.
func (e *SoundEmitterBehaviour) Play() {
	if e.source != nil {
		e.source.Play()
	}
}

func (e *SoundEmitterBehaviour) Stop() {
	if e.source != nil {
		e.source.Stop()
	}
}

func (e *SoundEmitterBehaviour) IsPlaying() bool {
	return e.source != nil && e.source.IsPlaying()
}

func (e *SoundEmitterBehaviour) syncTransform() {
	t := e.GetGameObject().Transform
	e.source.SetPosition(t.WorldPosition())
	e.source.SetDirection(t.Forward())
}

func (e *SoundEmitterBehaviour) cone() audio.Cone {
	return audio.Cone{InnerAngle: e.ConeInner, OuterAngle: e.ConeOuter, OuterGain: e.ConeOuterGain}
}

func (e *SoundEmitterBehaviour) nextInterval() float32 {
	if e.MaxInterval <= e.MinInterval {
		return e.MinInterval
	}
	return e.MinInterval + rand.Float32()*(e.MaxInterval-e.MinInterval)
}

func (e *SoundEmitterBehaviour) Serialize() behaviour.Properties {
	return behaviour.Properties{
		"sound":           e.Sound,
		"volume":          e.Volume,
		"loop":            e.Loop,
		"play_on_start":   e.PlayOnStart,
		"min_interval":    e.MinInterval,
		"max_interval":    e.MaxInterval,
		"cone_inner":      e.ConeInner,
		"cone_outer":      e.ConeOuter,
		"cone_outer_gain": e.ConeOuterGain,
	}
}

func (e *SoundEmitterBehaviour) Deserialize(p behaviour.Properties) error {
	var err error
	if e.Sound, err = p.String("sound", e.Sound); err != nil {
		return err
	}
	if e.Volume, err = p.Float32("volume", e.Volume); err != nil {
		return err
	}
	if e.Loop, err = p.Bool("loop", e.Loop); err != nil {
		return err
	}
	if e.PlayOnStart, err = p.Bool("play_on_start", e.PlayOnStart); err != nil {
		return err
	}
	if e.MinInterval, err = p.Float32("min_interval", e.MinInterval); err != nil {
		return err
	}
	if e.MaxInterval, err = p.Float32("max_interval", e.MaxInterval); err != nil {
		return err
	}
	if e.ConeInner, err = p.Float32("cone_inner", e.ConeInner); err != nil {
		return err
	}
	if e.ConeOuter, err = p.Float32("cone_outer", e.ConeOuter); err != nil {
		return err
	}
	e.ConeOuterGain, err = p.Float32("cone_outer_gain", e.ConeOuterGain)
	return err
}

func (e *SoundEmitterBehaviour) RenderUI() {
	imgui.InputTextV("Sound", &e.Sound, 0, nil)
	imgui.SliderFloatV("Volume", &e.Volume, 0, 1, "%.2f", 0)
	imgui.Checkbox("Loop", &e.Loop)
	imgui.Checkbox("Play On Start", &e.PlayOnStart)

	imgui.Separator()
	imgui.Text("Random replay (0 = off)")
	imgui.DragFloatV("Min Interval", &e.MinInterval, 0.1, 0, 600, "%.1f s", 0)
	imgui.DragFloatV("Max Interval", &e.MaxInterval, 0.1, 0, 600, "%.1f s", 0)

	imgui.Separator()
	imgui.SliderFloatV("Cone Inner", &e.ConeInner, 0, 360, "%.0f deg", 0)
	imgui.SliderFloatV("Cone Outer", &e.ConeOuter, 0, 360, "%.0f deg", 0)
	imgui.SliderFloatV("Outer Gain", &e.ConeOuterGain, 0, 1, "%.2f", 0)

	if e.source != nil {
		e.source.SetVolume(e.Volume)
		e.source.SetCone(e.cone())
		if e.IsPlaying() {
			imgui.Text("Status: playing")
		} else {
			imgui.Text("Status: stopped")
		}
	}
}
