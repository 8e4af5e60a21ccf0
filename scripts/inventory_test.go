package scripts

import (
	"testing"

	"Hollowmere/internal/behaviour"
	"Hollowmere/internal/input"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playerWithFlashlight adds a Flashlight object under the player's camera.
func playerWithFlashlight(h *harness) (*behaviour.GameObject, *InventoryBehaviour, *behaviour.GameObject) {
	player, inv, _ := h.player(mgl32.Vec3{})
	fl := behaviour.NewGameObject("Flashlight")
	fl.AddComponent(behaviour.NewLightComponent())
	fl.AddComponent(NewFlashlight())
	player.FindChild("Camera").AddChild(fl)
	return player, inv, fl
}

func TestCycleHandOrder(t *testing.T) {
	h := newHarness(t)
	_, inv, fl := playerWithFlashlight(h)
	inv.HasFlashlight = true
	inv.Breadcrumbs = 2
	h.frame(0.016)
	assert.Equal(t, HandEmpty, inv.Hand)
	assert.False(t, fl.Active, "flashlight hidden while not in hand")

	h.tap(input.CycleHand)
	assert.Equal(t, HandFlashlight, inv.Hand)
	assert.True(t, fl.Active)

	h.tap(input.CycleHand)
	assert.Equal(t, HandBreadcrumbs, inv.Hand)
	assert.False(t, fl.Active)

	h.tap(input.CycleHand)
	assert.Equal(t, HandEmpty, inv.Hand)
}

func TestCycleHandSkipsUnusable(t *testing.T) {
	h := newHarness(t)
	_, inv, _ := h.player(mgl32.Vec3{})
	h.frame(0.016)

	assert.False(t, inv.CycleHand(), "nothing to hold")
	assert.Equal(t, HandEmpty, inv.Hand)

	inv.Breadcrumbs = 1
	assert.True(t, inv.CycleHand())
	assert.Equal(t, HandBreadcrumbs, inv.Hand)
	assert.True(t, inv.CycleHand())
	assert.Equal(t, HandEmpty, inv.Hand)

	assert.False(t, inv.SetHand(HandFlashlight))
	assert.Equal(t, HandEmpty, inv.Hand)
}

func TestDropBreadcrumbs(t *testing.T) {
	h := newHarness(t)
	player, inv, _ := h.player(mgl32.Vec3{3, 0, 0})
	inv.Breadcrumbs = 2
	inv.DropOffset = mgl32.Vec3{0, 0, -1}
	h.frame(0.016)
	require.True(t, inv.SetHand(HandBreadcrumbs))

	h.tap(input.UseItem)
	assert.Equal(t, 1, inv.Breadcrumbs)
	crumbs := h.cm.FindGameObjectsWithTag("breadcrumb")
	require.Len(t, crumbs, 1)
	assert.Equal(t, mgl32.Vec3{3, 0, -1}, crumbs[0].Transform.Position)

	player.Transform.SetPosition(mgl32.Vec3{3, 0, -5})
	h.tap(input.UseItem)
	assert.Equal(t, 0, inv.Breadcrumbs)
	assert.Equal(t, 2, inv.DroppedCount())
	assert.Equal(t, HandEmpty, inv.Hand, "empty pouch falls back to an empty hand")

	h.frame(0.016)
	trail := Trail(h.cm)
	require.Len(t, trail, 2)
	assert.Equal(t, 0, trail[0].Index)
	assert.Equal(t, 1, trail[1].Index)
	assert.Equal(t, mgl32.Vec3{3, 0, -6}, trail[1].GetGameObject().Transform.Position)

	assert.Nil(t, inv.DropBreadcrumb(), "nothing left to drop")
}

func TestAddItemRules(t *testing.T) {
	h := newHarness(t)
	_, inv, _ := h.player(mgl32.Vec3{})
	inv.MaxBreadcrumbs = 7

	assert.True(t, inv.AddItem("flashlight", 0))
	assert.False(t, inv.AddItem("flashlight", 0), "only one flashlight")

	assert.True(t, inv.AddItem("crumbs", 0))
	assert.Equal(t, 5, inv.Breadcrumbs)
	assert.True(t, inv.AddItem("crumbs", 0), "partial fit is accepted")
	assert.Equal(t, 7, inv.Breadcrumbs)
	assert.False(t, inv.AddItem("crumbs", 1), "pouch is full")

	assert.True(t, inv.AddItem("cellar_key", 1))
	assert.False(t, inv.AddItem("cellar_key", 1))
	assert.True(t, inv.HasKey("cellar_key"))
	assert.Equal(t, []string{"cellar_key"}, inv.Keys)

	assert.False(t, inv.AddItem("unknown", 1))
}

func TestInventoryDeserialize(t *testing.T) {
	inv := NewInventory()
	err := inv.Deserialize(behaviour.Properties{
		"keys":            []interface{}{"b", "a", "b"},
		"breadcrumbs":     50.0,
		"max_breadcrumbs": 4.0,
		"hand":            9.0,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, inv.Keys)
	assert.True(t, inv.HasKey("a"))
	assert.Equal(t, 4, inv.Breadcrumbs)
	assert.Equal(t, HandEmpty, inv.Hand, "out of range hand is ignored")

	assert.Error(t, inv.Deserialize(behaviour.Properties{"keys": "a"}))
}

func TestAddKeyToBareInventory(t *testing.T) {
	newHarness(t)
	inv := &InventoryBehaviour{}

	assert.True(t, inv.AddItem("cellar_key", 1))
	assert.True(t, inv.HasKey("cellar_key"))
	assert.False(t, inv.AddItem("cellar_key", 1))
}
