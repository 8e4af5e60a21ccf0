package scripts

import (
	"testing"

	"Hollowmere/internal/audio"
	"Hollowmere/internal/behaviour"
	"Hollowmere/internal/content"
	"Hollowmere/internal/input"
	"Hollowmere/internal/services"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

const testContent = `
sounds:
  click: {path: click.wav}
  hum: {path: hum.wav, loop: true}
  drip: {path: drip.wav, min_distance: 1, max_distance: 10}
  pickup: {path: pickup.wav}
  locker: {path: locker.wav}
materials:
  glow: {diffuse_color: [1, 1, 0.6], emissive: 1}
items:
  flashlight: {grants: flashlight}
  crumbs: {grants: breadcrumbs, amount: 5}
  cellar_key: {grants: key, display_name: Cellar Key}
prefabs:
  breadcrumb:
    tag: breadcrumb
    collider_radius: 0.2
    light: {mode: point, intensity: 1}
    scripts:
      - name: InteractableBehaviour
        properties: {prompt: Collect, cooldown: 0}
      - name: BreadcrumbBehaviour
        properties: {lifetime: 10, fade_time: 2}
`

type testVoice struct {
	sound   string
	loop    bool
	playing bool
	plays   int
	closed  bool
	volume  float64
}

func (v *testVoice) Play() {
	v.playing = true
	v.plays++
}

func (v *testVoice) Pause()                { v.playing = false }
func (v *testVoice) IsPlaying() bool       { return v.playing }
func (v *testVoice) Rewind() error         { return nil }
func (v *testVoice) SetVolume(vol float64) { v.volume = vol }

func (v *testVoice) Close() error {
	v.closed = true
	v.playing = false
	return nil
}

type recordingLoader struct {
	voices []*testVoice
}

func (l *recordingLoader) Load(sound content.Sound, loop bool) (audio.Voice, error) {
	v := &testVoice{sound: sound.Name, loop: loop}
	l.voices = append(l.voices, v)
	return v, nil
}

// played counts voices that were started for a sound.
func (l *recordingLoader) played(name string) int {
	n := 0
	for _, v := range l.voices {
		if v.sound == name && v.plays > 0 {
			n++
		}
	}
	return n
}

func (l *recordingLoader) last(name string) *testVoice {
	for i := len(l.voices) - 1; i >= 0; i-- {
		if l.voices[i].sound == name {
			return l.voices[i]
		}
	}
	return nil
}

type harness struct {
	t      *testing.T
	cm     *behaviour.ComponentManager
	in     *input.State
	loader *recordingLoader
	mixer  *audio.Mixer
	table  *content.Table
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	table, err := content.Parse([]byte(testContent))
	require.NoError(t, err)

	h := &harness{
		t:      t,
		cm:     behaviour.NewComponentManager(),
		in:     input.NewState(),
		loader: &recordingLoader{},
		table:  table,
	}
	h.mixer = audio.NewMixer(h.loader)
	services.Set(services.Services{Audio: h.mixer, Content: table, Input: h.in})
	t.Cleanup(services.Reset)
	return h
}

// frame runs one Update pass and the audio update.
func (h *harness) frame(dt float32) {
	h.cm.UpdateAll(dt)
	h.mixer.Update()
}

func (h *harness) frames(n int, dt float32) {
	for i := 0; i < n; i++ {
		h.frame(dt)
	}
}

// tap presses a for exactly one frame.
func (h *harness) tap(a input.Action) {
	h.in.Press(a)
	h.frame(0.016)
	h.in.Release(a)
}

func (h *harness) spawn(name string, pos mgl32.Vec3, comps ...behaviour.Component) *behaviour.GameObject {
	obj := behaviour.NewGameObject(name)
	obj.Transform.SetPosition(pos)
	for _, c := range comps {
		obj.AddComponent(c)
	}
	h.cm.RegisterGameObject(obj)
	return obj
}

// player builds a Player root with an inventory and a Camera child carrying
// the interactor, looking down -Z.
func (h *harness) player(pos mgl32.Vec3) (*behaviour.GameObject, *InventoryBehaviour, *InteractorBehaviour) {
	inv := NewInventory()
	root := behaviour.NewGameObject("Player")
	root.Transform.SetPosition(pos)
	root.AddComponent(inv)

	interactor := NewInteractor()
	cam := behaviour.NewGameObject("Camera")
	cam.AddComponent(interactor)
	root.AddChild(cam)

	h.cm.RegisterGameObject(root)
	return root, inv, interactor
}

// target builds an interactable object with a collider and the given listeners.
func (h *harness) target(name string, pos mgl32.Vec3, comps ...behaviour.Component) (*behaviour.GameObject, *InteractableBehaviour) {
	in := NewInteractable()
	all := append([]behaviour.Component{behaviour.NewMeshComponent(), behaviour.NewColliderComponent(), in}, comps...)
	return h.spawn(name, pos, all...), in
}
