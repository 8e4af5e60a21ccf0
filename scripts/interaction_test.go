package scripts

import (
	"testing"

	"Hollowmere/internal/behaviour"
	"Hollowmere/internal/input"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingListener struct {
	behaviour.BaseComponent
	log *[]string
	by  *behaviour.GameObject
}

func (r *recordingListener) OnInteract(interactor *behaviour.GameObject) {
	r.by = interactor
	*r.log = append(*r.log, "component")
}

func TestInteractorHoversClosestTarget(t *testing.T) {
	h := newHarness(t)
	_, _, interactor := h.player(mgl32.Vec3{})
	lever, in := h.target("Lever", mgl32.Vec3{0, 0, -2})
	in.HighlightMaterial = "glow"
	in.Prompt = "Pull"
	h.target("Far Lever", mgl32.Vec3{0, 0, -2.4})

	h.frame(0.016)
	require.Same(t, in, interactor.Target())
	assert.True(t, in.Hovered())
	assert.Equal(t, "Pull", interactor.Prompt())

	mesh, _ := behaviour.ComponentOf[*behaviour.MeshComponent](lever)
	assert.Equal(t, "glow", mesh.MaterialName)
	assert.Equal(t, float32(1), mesh.Emissive)

	lever.Transform.SetPosition(mgl32.Vec3{5, 0, -2})
	h.frame(0.016)
	assert.False(t, in.Hovered())
	assert.Equal(t, "", mesh.MaterialName, "original material restored")
	assert.Equal(t, float32(0), mesh.Emissive)
	require.NotNil(t, interactor.Target())
	assert.Equal(t, "Far Lever", interactor.Target().GetGameObject().Name)
}

func TestInteractorRespectsReachAndOwnHierarchy(t *testing.T) {
	h := newHarness(t)
	player, _, interactor := h.player(mgl32.Vec3{})
	player.AddComponent(behaviour.NewColliderComponent())
	player.AddComponent(NewInteractable())
	h.target("Door", mgl32.Vec3{0, 0, -3.2})

	h.frame(0.016)
	assert.Nil(t, interactor.Target(), "door is beyond reach and the player is ignored")

	interactor.Reach = 5
	h.frame(0.016)
	require.NotNil(t, interactor.Target())
	assert.Equal(t, "Door", interactor.Target().GetGameObject().Name)
}

func TestInteractDispatchOrder(t *testing.T) {
	h := newHarness(t)
	_, _, interactor := h.player(mgl32.Vec3{})
	var log []string
	listener := &recordingListener{log: &log}
	_, in := h.target("Switch", mgl32.Vec3{0, 0, -2}, listener)
	in.InteractSound = "click"
	in.AddListener(func(*behaviour.GameObject) { log = append(log, "callback") })

	h.frame(0.016)
	h.tap(input.Interact)
	assert.Equal(t, []string{"component", "callback"}, log)
	assert.Same(t, interactor.GetGameObject(), listener.by)
	assert.Equal(t, 1, h.loader.played("click"))
}

func TestInteractCooldownAndOneShot(t *testing.T) {
	h := newHarness(t)
	player, _, _ := h.player(mgl32.Vec3{})
	lever, in := h.target("Lever", mgl32.Vec3{0, 0, -2})
	in.Cooldown = 0.5
	in.HighlightMaterial = "glow"
	h.frame(0.016)
	mesh, _ := behaviour.ComponentOf[*behaviour.MeshComponent](lever)
	require.Equal(t, "glow", mesh.MaterialName)

	assert.True(t, in.Interact(player))
	assert.False(t, in.Interact(player), "on cooldown")
	h.frames(40, 0.016)
	assert.True(t, in.Interact(player))

	in.OneShot = true
	in.Cooldown = 0
	h.frames(40, 0.016)
	require.True(t, in.Hovered())

	assert.True(t, in.Interact(player))
	assert.True(t, in.Used())
	assert.False(t, in.GetEnabled())
	assert.False(t, in.Hovered(), "disabling clears the hover")
	assert.Equal(t, "", mesh.MaterialName)

	behaviour.SetComponentEnabled(in, true)
	assert.False(t, in.Interact(player), "one-shot stays used")
}

func TestInteractMaxDistance(t *testing.T) {
	h := newHarness(t)
	player, _, _ := h.player(mgl32.Vec3{})
	_, in := h.target("Valve", mgl32.Vec3{0, 0, -2})
	in.MaxDistance = 1
	h.frame(0.016)

	assert.False(t, in.Interact(player))
	player.Transform.SetPosition(mgl32.Vec3{0, 0, -1.5})
	assert.True(t, in.Interact(player))
}

func TestSuspendedInteractorClearsHover(t *testing.T) {
	h := newHarness(t)
	_, _, interactor := h.player(mgl32.Vec3{})
	_, in := h.target("Lever", mgl32.Vec3{0, 0, -2})
	h.frame(0.016)
	require.True(t, in.Hovered())

	interactor.SetSuspended(true)
	assert.False(t, in.Hovered())
	assert.Nil(t, interactor.Target())

	h.tap(input.Interact)
	assert.Nil(t, interactor.Target())
	assert.Equal(t, "", interactor.Prompt())

	interactor.SetSuspended(false)
	h.frame(0.016)
	assert.True(t, in.Hovered())

	behaviour.SetComponentEnabled(interactor, false)
	assert.False(t, in.Hovered())
}
