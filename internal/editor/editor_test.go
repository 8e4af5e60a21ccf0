package editor

import (
	"testing"

	"Hollowmere/internal/behaviour"
	_ "Hollowmere/scripts"

	"github.com/inkyblackness/imgui-go/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHierarchyOrdersParentsFirst(t *testing.T) {
	cm := behaviour.NewComponentManager()
	player := behaviour.NewGameObject("Player")
	camera := behaviour.NewGameObject("Camera")
	hand := behaviour.NewGameObject("Hand")
	camera.AddChild(hand)
	player.AddChild(camera)
	cm.RegisterGameObject(player)
	cm.RegisterGameObject(behaviour.NewGameObject("Door"))

	entries := Hierarchy(cm)
	require.Len(t, entries, 4)
	names := make([]string, len(entries))
	depths := make([]int, len(entries))
	for i, e := range entries {
		names[i] = e.Object.Name
		depths[i] = e.Depth
	}
	assert.Equal(t, []string{"Player", "Camera", "Hand", "Door"}, names)
	assert.Equal(t, []int{0, 1, 2, 0}, depths)
}

func TestComponentIcon(t *testing.T) {
	assert.Equal(t, "[S]", ComponentIcon(behaviour.GetComponentCategory(behaviour.CreateScript("FlashlightBehaviour"))))
	assert.Equal(t, "[Col]", ComponentIcon(behaviour.ComponentTypeCollider))
	assert.Equal(t, "[C]", ComponentIcon(behaviour.ComponentTypeCustom))
}

// Draws every built-in and every registered script inside a real imgui frame.
func TestRenderInspectorFrame(t *testing.T) {
	ctx := imgui.CreateContext(nil)
	defer ctx.Destroy()
	io := imgui.CurrentIO()
	io.SetDisplaySize(imgui.Vec2{X: 1280, Y: 720})
	io.Fonts().TextureDataAlpha8()

	cm := behaviour.NewComponentManager()
	obj := behaviour.NewGameObject("Everything")
	for _, name := range behaviour.BuiltInComponents() {
		obj.AddComponent(behaviour.CreateBuiltInComponent(name))
	}
	for _, name := range behaviour.GetAvailableScripts() {
		obj.AddComponent(behaviour.CreateScript(name))
	}
	cm.RegisterGameObject(obj)

	var selected *behaviour.GameObject
	for frame := 0; frame < 2; frame++ {
		imgui.NewFrame()
		imgui.Begin("Hierarchy")
		selected = RenderHierarchy(cm, selected)
		imgui.End()
		imgui.Begin("Inspector")
		RenderInspector(obj)
		RenderInspector(nil)
		imgui.End()
		imgui.Render()
	}
	assert.Nil(t, selected, "nothing was clicked")
	assert.Len(t, obj.Components, len(behaviour.BuiltInComponents())+len(behaviour.GetAvailableScripts()))
}
