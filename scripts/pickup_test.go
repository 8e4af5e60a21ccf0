package scripts

import (
	"testing"

	"Hollowmere/internal/behaviour"
	"Hollowmere/internal/input"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPickup(item string) *PickupBehaviour {
	p := behaviour.CreateScript("PickupBehaviour").(*PickupBehaviour)
	p.Item = item
	p.PickupSound = "pickup"
	return p
}

func TestPickupGrantsAndDestroys(t *testing.T) {
	h := newHarness(t)
	_, inv, _ := h.player(mgl32.Vec3{})
	pickup := newPickup("flashlight")
	h.target("Flashlight Pickup", mgl32.Vec3{0, 0, -2}, pickup)
	h.frame(0.016)

	h.tap(input.Interact)
	assert.True(t, inv.HasFlashlight)
	assert.True(t, pickup.PickedUp())
	assert.Equal(t, 1, h.loader.played("pickup"))

	h.frame(0.016)
	assert.Nil(t, h.cm.FindGameObject("Flashlight Pickup"))
}

func TestPickupRefusedStays(t *testing.T) {
	h := newHarness(t)
	_, inv, _ := h.player(mgl32.Vec3{})
	inv.HasFlashlight = true
	pickup := newPickup("flashlight")
	obj, _ := h.target("Spare Flashlight", mgl32.Vec3{0, 0, -2}, pickup)
	h.frame(0.016)

	h.tap(input.Interact)
	h.frame(0.016)
	assert.False(t, pickup.PickedUp())
	assert.Same(t, obj, h.cm.FindGameObject("Spare Flashlight"))
	assert.Equal(t, 0, h.loader.played("pickup"))
}

func TestPickupDeactivatesWhenNotDestroyed(t *testing.T) {
	h := newHarness(t)
	_, inv, _ := h.player(mgl32.Vec3{})
	pickup := newPickup("crumbs")
	pickup.DestroyOnPickup = false
	pickup.Amount = 3
	obj, _ := h.target("Crumb Pouch", mgl32.Vec3{0, 0, -2}, pickup)
	h.frame(0.016)

	h.tap(input.Interact)
	assert.Equal(t, 3, inv.Breadcrumbs)
	assert.False(t, obj.Active)
	h.frame(0.016)
	assert.NotNil(t, h.cm.FindGameObject("Crumb Pouch"))
}

func TestPickupWithoutInventoryOrItem(t *testing.T) {
	h := newHarness(t)
	stranger := h.spawn("Stranger", mgl32.Vec3{})
	pickup := newPickup("cellar_key")
	h.target("Key", mgl32.Vec3{0, 0, -2}, pickup)
	h.frame(0.016)

	pickup.OnInteract(stranger)
	assert.False(t, pickup.PickedUp())

	player, _, _ := h.player(mgl32.Vec3{})
	pickup.Item = "no_such_item"
	pickup.OnInteract(player)
	assert.False(t, pickup.PickedUp())

	pickup.Item = "cellar_key"
	pickup.OnInteract(player.FindChild("Camera"))
	assert.True(t, pickup.PickedUp())
	inv, ok := behaviour.ComponentOf[*InventoryBehaviour](player)
	require.True(t, ok)
	assert.True(t, inv.HasKey("cellar_key"))
}
