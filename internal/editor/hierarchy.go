package editor

import (
	"fmt"
	"strings"

	"Hollowmere/internal/behaviour"

	"github.com/inkyblackness/imgui-go/v4"
)

// HierarchyEntry is one row of the scene hierarchy.
type HierarchyEntry struct {
	Object *behaviour.GameObject
	Depth  int
}

// Hierarchy lists the live objects of cm depth first, parents before children.
func Hierarchy(cm *behaviour.ComponentManager) []HierarchyEntry {
	var entries []HierarchyEntry
	var walk func(obj *behaviour.GameObject, depth int)
	walk = func(obj *behaviour.GameObject, depth int) {
		if obj.Destroyed() {
			return
		}
		entries = append(entries, HierarchyEntry{Object: obj, Depth: depth})
		for _, child := range obj.Children() {
			walk(child, depth+1)
		}
	}
	for _, obj := range cm.GetAllGameObjects() {
		if obj.Parent() == nil {
			walk(obj, 0)
		}
	}
	return entries
}

// RenderHierarchy draws the object list of cm and returns the selection,
// which is selected unless a row was clicked.
func RenderHierarchy(cm *behaviour.ComponentManager, selected *behaviour.GameObject) *behaviour.GameObject {
	if !imgui.CollapsingHeaderV("[GO] GameObjects", imgui.TreeNodeFlagsDefaultOpen) {
		return selected
	}
	for _, entry := range Hierarchy(cm) {
		obj := entry.Object
		imgui.PushID(fmt.Sprintf("gameobj_%d", obj.ID()))
		label := strings.Repeat("  ", entry.Depth+1) + objectIcon(obj) + " " + obj.Name
		if !obj.Active {
			label += " (inactive)"
		}
		if imgui.SelectableV(label, obj == selected, 0, imgui.Vec2{}) {
			selected = obj
		}
		imgui.PopID()
	}
	return selected
}

func objectIcon(obj *behaviour.GameObject) string {
	if _, ok := behaviour.ComponentOf[*behaviour.CameraComponent](obj); ok {
		return "[Cam]"
	}
	if _, ok := behaviour.ComponentOf[*behaviour.LightComponent](obj); ok {
		return "[L]"
	}
	if _, ok := behaviour.ComponentOf[*behaviour.MeshComponent](obj); ok {
		return "[M]"
	}
	return "[GO]"
}
