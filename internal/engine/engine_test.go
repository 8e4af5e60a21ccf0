package engine

import (
	"errors"
	"testing"

	"Hollowmere/internal/audio"
	"Hollowmere/internal/behaviour"
	"Hollowmere/internal/config"
	"Hollowmere/internal/input"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	behaviour.BaseComponent
	updates, fixed int
	lastDelta      float32
}

func (c *counter) Update() {
	c.updates++
	c.lastDelta = behaviour.Time.DeltaTime
}

func (c *counter) FixedUpdate() { c.fixed++ }

type closeFunc func() error

func (f closeFunc) Close() error { return f() }

func newTestEngine(t *testing.T, fixed, maxFrame float32) (*Engine, *counter, *audio.Mixer) {
	t.Helper()
	cfg := config.Default()
	cfg.FixedTimestep = fixed
	cfg.MaxFrameTime = maxFrame

	cm := behaviour.NewComponentManager()
	c := &counter{}
	obj := behaviour.NewGameObject("Counter")
	obj.AddComponent(c)
	cm.RegisterGameObject(obj)

	mixer := audio.NewMixer(audio.SilentLoader{})
	e, err := New(cfg, behaviour.NewBehaviourManager(cm), input.NewState(), mixer)
	require.NoError(t, err)
	return e, c, mixer
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.FixedTimestep = 0
	_, err := New(cfg, behaviour.NewBehaviourManager(nil), input.NewState(), audio.NewMixer(audio.SilentLoader{}))
	assert.Error(t, err)
}

func TestTickAccumulatesFixedSteps(t *testing.T) {
	e, c, _ := newTestEngine(t, 0.25, 2)

	assert.Equal(t, 2, e.Tick(0.5))
	assert.Equal(t, 0, e.Tick(0.125))
	assert.Equal(t, 1, e.Tick(0.125))
	assert.Equal(t, 3, c.fixed)
	assert.Equal(t, 3, c.updates)
}

func TestTickClampsFrameTime(t *testing.T) {
	e, c, _ := newTestEngine(t, 0.25, 1)

	assert.Equal(t, 4, e.Tick(3))
	assert.Equal(t, float32(1), c.lastDelta)
	assert.Equal(t, 0, e.Tick(-1))
}

func TestTickDropsBacklog(t *testing.T) {
	e, c, _ := newTestEngine(t, 0.25, 10)

	assert.Equal(t, maxFixedSteps, e.Tick(5))
	assert.Equal(t, maxFixedSteps, c.fixed)
	assert.Equal(t, 0, e.Tick(0), "the backlog is not carried into later frames")
}

func TestListenerFollowsMainCamera(t *testing.T) {
	e, _, mixer := newTestEngine(t, 0.25, 1)
	cm := e.manager.Components()

	side := behaviour.NewGameObject("Side")
	side.AddComponent(behaviour.NewCameraComponent())
	side.Transform.SetPosition(mgl32.Vec3{9, 0, 0})
	cm.RegisterGameObject(side)

	e.Tick(0.25)
	assert.Equal(t, mgl32.Vec3{9, 0, 0}, mixer.Listener().Position)

	mainCam := behaviour.NewCameraComponent()
	mainCam.IsMain = true
	player := behaviour.NewGameObject("Player")
	player.AddComponent(mainCam)
	player.Transform.SetPosition(mgl32.Vec3{1, 2, 3})
	cm.RegisterGameObject(player)

	e.Tick(0.25)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, mixer.Listener().Position)
	assert.InDelta(t, -1, mixer.Listener().Forward.Z(), 1e-6)
}

func TestRunHeadlessClearsEdges(t *testing.T) {
	e, c, _ := newTestEngine(t, 0.25, 1)
	e.input.Press(input.Interact)

	e.RunHeadless(3)
	assert.Equal(t, 3, c.updates)
	assert.Equal(t, 3, c.fixed)
	assert.False(t, e.input.Pressed(input.Interact))
	assert.True(t, e.input.Held(input.Interact))
}

func TestCloseRunsClosersInReverse(t *testing.T) {
	e, _, _ := newTestEngine(t, 0.25, 1)
	var order []string
	e.OnClose(closeFunc(func() error { order = append(order, "first"); return nil }))
	e.OnClose(closeFunc(func() error { order = append(order, "second"); return errors.New("boom") }))

	err := e.Close()
	assert.ErrorContains(t, err, "boom")
	assert.Equal(t, []string{"second", "first"}, order)
	assert.Empty(t, e.manager.Components().GetAllGameObjects())
	assert.NoError(t, e.Close())
}
