package editor

import (
	"fmt"

	"Hollowmere/internal/behaviour"
	"Hollowmere/internal/scene"

	"github.com/inkyblackness/imgui-go/v4"
)

// RenderInspector draws obj's header fields, its transform and one
// collapsing header per component. It must be called inside an imgui frame.
func RenderInspector(obj *behaviour.GameObject) {
	if obj == nil {
		imgui.Text("No object selected")
		return
	}

	imgui.InputTextV("Name", &obj.Name, 0, nil)
	imgui.InputTextV("Tag", &obj.Tag, 0, nil)
	active := obj.Active
	if imgui.Checkbox("Active", &active) {
		obj.SetActive(active)
	}
	imgui.Text(fmt.Sprintf("ID: %d", obj.ID()))

	if imgui.CollapsingHeaderV("Transform", imgui.TreeNodeFlagsDefaultOpen) {
		renderTransform(obj.Transform)
	}

	// RemoveComponent edits the slice being drawn
	components := append([]behaviour.Component(nil), obj.Components...)
	for i, comp := range components {
		imgui.PushID(fmt.Sprintf("comp_%d", i))
		label := ComponentIcon(behaviour.GetComponentCategory(comp)) + " " + behaviour.GetComponentTypeName(comp)
		if imgui.CollapsingHeaderV(label, imgui.TreeNodeFlagsDefaultOpen) {
			enabled := comp.GetEnabled()
			if imgui.Checkbox("Enabled", &enabled) {
				behaviour.SetComponentEnabled(comp, enabled)
			}
			renderComponentInspector(comp)
			imgui.Spacing()
			if imgui.Button("Remove##comp") {
				obj.RemoveComponent(comp)
			}
		}
		imgui.PopID()
	}

	imgui.Separator()
	renderAddComponent(obj)
}

func renderTransform(t *behaviour.Transform) {
	imgui.DragFloat3("Position", (*[3]float32)(&t.Position))

	euler := scene.QuatToEulerArray(t.Rotation)
	if imgui.DragFloat3("Rotation", &euler) {
		t.Rotation = scene.EulerToQuat(euler)
	}

	imgui.DragFloat3("Scale", (*[3]float32)(&t.Scale))
}

func renderComponentInspector(comp behaviour.Component) {
	switch c := comp.(type) {
	case *behaviour.MeshComponent:
		renderMeshComponentInspector(c)
	case *behaviour.LightComponent:
		renderLightComponentInspector(c)
	case *behaviour.CameraComponent:
		renderCameraComponentInspector(c)
	case *behaviour.ColliderComponent:
		renderColliderComponentInspector(c)
	case behaviour.Inspectable:
		c.RenderUI()
	default:
		imgui.Text("No inspector for this component")
	}
}

func renderMeshComponentInspector(c *behaviour.MeshComponent) {
	imgui.InputTextV("Mesh Path", &c.MeshPath, imgui.InputTextFlagsReadOnly, nil)
	imgui.InputTextV("Material", &c.MaterialName, 0, nil)

	imgui.Separator()
	imgui.ColorEdit3V("Diffuse", &c.DiffuseColor, 0)
	imgui.ColorEdit3V("Specular", &c.SpecularColor, 0)
	imgui.SliderFloatV("Emissive", &c.Emissive, 0, 5, "%.2f", 0)
	imgui.SliderFloatV("Alpha", &c.Alpha, 0, 1, "%.2f", 0)
}

var lightModes = []string{"directional", "point", "spot"}

func renderLightComponentInspector(c *behaviour.LightComponent) {
	currentIdx := 0
	for i, m := range lightModes {
		if m == c.LightMode {
			currentIdx = i
			break
		}
	}
	if imgui.BeginCombo("Mode", lightModes[currentIdx]) {
		for i, m := range lightModes {
			if imgui.SelectableV(m, i == currentIdx, 0, imgui.Vec2{}) {
				c.LightMode = m
			}
		}
		imgui.EndCombo()
	}

	imgui.ColorEdit3V("Color", &c.Color, 0)
	imgui.SliderFloatV("Intensity", &c.Intensity, 0, 10, "%.1f", 0)

	if c.LightMode == "point" || c.LightMode == "spot" {
		imgui.DragFloatV("Range", &c.Range, 1, 1, 1000, "%.0f", 0)
	}
	if c.LightMode == "spot" {
		imgui.SliderFloatV("Spot Angle", &c.SpotAngle, 1, 179, "%.0f deg", 0)
	}
	if c.LightMode != "point" {
		imgui.DragFloat3("Direction", (*[3]float32)(&c.Direction))
	}
}

func renderCameraComponentInspector(c *behaviour.CameraComponent) {
	imgui.SliderFloatV("FOV", &c.FOV, 10, 120, "%.0f", 0)
	imgui.DragFloatV("Near", &c.Near, 0.01, 0.01, 100, "%.2f", 0)
	imgui.DragFloatV("Far", &c.Far, 10, 100, 100000, "%.0f", 0)
	imgui.Checkbox("Main Camera", &c.IsMain)
}

var colliderShapes = []behaviour.ColliderShape{behaviour.ColliderSphere, behaviour.ColliderBox}

func renderColliderComponentInspector(c *behaviour.ColliderComponent) {
	if imgui.BeginCombo("Shape", string(c.Shape)) {
		for _, s := range colliderShapes {
			if imgui.SelectableV(string(s), s == c.Shape, 0, imgui.Vec2{}) {
				c.Shape = s
			}
		}
		imgui.EndCombo()
	}
	if c.Shape == behaviour.ColliderBox {
		imgui.DragFloat3("Half Extents", (*[3]float32)(&c.HalfExtents))
	} else {
		imgui.DragFloatV("Radius", &c.Radius, 0.01, 0.01, 100, "%.2f", 0)
	}
	imgui.DragFloat3("Offset", (*[3]float32)(&c.Offset))
}

func renderAddComponent(obj *behaviour.GameObject) {
	if !imgui.CollapsingHeaderV("Add Component", imgui.TreeNodeFlagsNone) {
		return
	}
	for _, name := range behaviour.BuiltInComponents() {
		if imgui.Button(name) {
			obj.AddComponent(behaviour.CreateBuiltInComponent(name))
		}
	}
	imgui.Separator()
	for _, name := range behaviour.GetAvailableScripts() {
		if imgui.Button(name) {
			obj.AddComponent(behaviour.CreateScript(name))
		}
	}
}

// ComponentIcon is the short tag shown before a component's name.
func ComponentIcon(category behaviour.ComponentType) string {
	switch category {
	case behaviour.ComponentTypeMesh:
		return "[M]"
	case behaviour.ComponentTypeScript:
		return "[S]"
	case behaviour.ComponentTypeLight:
		return "[L]"
	case behaviour.ComponentTypeCamera:
		return "[Cam]"
	case behaviour.ComponentTypeCollider:
		return "[Col]"
	}
	return "[C]"
}
