package scripts

import (
	"sort"

	"Hollowmere/internal/behaviour"
	"Hollowmere/internal/content"
	"Hollowmere/internal/input"
	"Hollowmere/internal/logger"
	"Hollowmere/internal/scene"
	"Hollowmere/internal/services"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
	"go.uber.org/zap"
)

// HandState is what the player is holding.
type HandState int

const (
	HandEmpty HandState = iota
	HandFlashlight
	HandBreadcrumbs
	handStateCount
)

func (h HandState) String() string {
	switch h {
	case HandFlashlight:
		return "Flashlight"
	case HandBreadcrumbs:
		return "Breadcrumbs"
	default:
		return "Empty"
	}
}

// InventoryBehaviour tracks the player's items and what is in hand.
// FlashlightObject names a descendant that is active only while the
// flashlight is held.
type InventoryBehaviour struct {
	behaviour.BaseComponent
	HasFlashlight    bool
	Breadcrumbs      int
	MaxBreadcrumbs   int
	Keys             []string
	Hand             HandState
	FlashlightObject string
	BreadcrumbPrefab string
	DropOffset       mgl32.Vec3

	keys    map[string]bool
	dropped int
}

func init() {
	behaviour.RegisterScript("InventoryBehaviour", func() behaviour.Component {
		return NewInventory()
	})
}

func NewInventory() *InventoryBehaviour {
	return &InventoryBehaviour{
		MaxBreadcrumbs:   12,
		FlashlightObject: "Flashlight",
		BreadcrumbPrefab: "breadcrumb",
		DropOffset:       mgl32.Vec3{0, -1, -0.6},
		keys:             make(map[string]bool),
	}
}

func (inv *InventoryBehaviour) Awake() {
	inv.syncKeys()
}

func (inv *InventoryBehaviour) Start() {
	if !inv.SetHand(inv.Hand) {
		inv.SetHand(HandEmpty)
	}
}

func (inv *InventoryBehaviour) Update() {
	in := services.Get().Input
	if in.Pressed(input.CycleHand) {
		inv.CycleHand()
	}
	if in.Pressed(input.UseItem) && inv.Hand == HandBreadcrumbs {
		inv.DropBreadcrumb()
	}
	if !inv.usable(inv.Hand) {
		inv.SetHand(HandEmpty)
	}
}

func (inv *InventoryBehaviour) usable(h HandState) bool {
	switch h {
	case HandEmpty:
		return true
	case HandFlashlight:
		return inv.HasFlashlight
	case HandBreadcrumbs:
		return inv.Breadcrumbs > 0
	}
	return false
}

// CycleHand moves to the next usable hand state in declaration order,
// wrapping around. It reports false when no other state is usable.
func (inv *InventoryBehaviour) CycleHand() bool {
	for step := HandState(1); step < handStateCount; step++ {
		next := (inv.Hand + step) % handStateCount
		if inv.usable(next) {
			return inv.SetHand(next)
		}
	}
	return false
}

// SetHand switches to h if it is usable and shows or hides the flashlight.
func (inv *InventoryBehaviour) SetHand(h HandState) bool {
	if h < 0 || h >= handStateCount || !inv.usable(h) {
		return false
	}
	inv.Hand = h
	if fl := inv.flashlight(); fl != nil {
		fl.SetActive(h == HandFlashlight)
	}
	return true
}

func (inv *InventoryBehaviour) flashlight() *behaviour.GameObject {
	obj := inv.GetGameObject()
	if obj == nil || inv.FlashlightObject == "" {
		return nil
	}
	return findDescendant(obj, inv.FlashlightObject)
}

// AddItem applies the grant of a content item. It returns false when the
// item is unknown or nothing could be taken.
func (inv *InventoryBehaviour) AddItem(name string, amount int) bool {
	item, ok := services.Get().Content.Item(name)
	if !ok {
		logger.Log.Warn("Unknown item", zap.String("item", name))
		return false
	}
	if amount <= 0 {
		amount = item.Amount
	}

	switch item.Grants {
	case content.GrantFlashlight:
		if inv.HasFlashlight {
			return false
		}
		inv.HasFlashlight = true
		return true

	case content.GrantBreadcrumbs:
		space := inv.MaxBreadcrumbs - inv.Breadcrumbs
		if space <= 0 {
			return false
		}
		if amount > space {
			amount = space
		}
		inv.Breadcrumbs += amount
		return true

	case content.GrantKey:
		if inv.keys == nil {
			inv.syncKeys()
		}
		if inv.keys[name] {
			return false
		}
		inv.keys[name] = true
		inv.Keys = append(inv.Keys, name)
		sort.Strings(inv.Keys)
		return true
	}
	return false
}

// ReturnBreadcrumb puts one collected breadcrumb back if there is room.
func (inv *InventoryBehaviour) ReturnBreadcrumb() bool {
	if inv.Breadcrumbs >= inv.MaxBreadcrumbs {
		return false
	}
	inv.Breadcrumbs++
	return true
}

func (inv *InventoryBehaviour) HasKey(name string) bool {
	return inv.keys[name]
}

// DroppedCount is the number of breadcrumbs dropped so far.
func (inv *InventoryBehaviour) DroppedCount() int {
	return inv.dropped
}

// DropBreadcrumb spawns the breadcrumb prefab at DropOffset and numbers it
// in the trail.
func (inv *InventoryBehaviour) DropBreadcrumb() *behaviour.GameObject {
	obj := inv.GetGameObject()
	if inv.Breadcrumbs <= 0 || obj.Scene() == nil {
		return nil
	}
	pos := worldPoint(obj, inv.DropOffset)
	crumb, err := scene.Instantiate(obj.Scene(), services.Get().Content, inv.BreadcrumbPrefab, pos)
	if err != nil {
		logger.Log.Warn("Failed to drop breadcrumb", zap.String("prefab", inv.BreadcrumbPrefab), zap.Error(err))
		return nil
	}
	if bc, ok := behaviour.ComponentOf[*BreadcrumbBehaviour](crumb); ok {
		bc.Index = inv.dropped
	}
	inv.dropped++
	inv.Breadcrumbs--
	if inv.Breadcrumbs == 0 && inv.Hand == HandBreadcrumbs {
		inv.SetHand(HandEmpty)
	}
	return crumb
}

func (inv *InventoryBehaviour) syncKeys() {
	inv.keys = make(map[string]bool, len(inv.Keys))
	unique := make([]string, 0, len(inv.Keys))
	for _, k := range inv.Keys {
		if !inv.keys[k] {
			inv.keys[k] = true
			unique = append(unique, k)
		}
	}
	inv.Keys = unique
	sort.Strings(inv.Keys)
}

func (inv *InventoryBehaviour) Serialize() behaviour.Properties {
	return behaviour.Properties{
		"has_flashlight":    inv.HasFlashlight,
		"breadcrumbs":       inv.Breadcrumbs,
		"max_breadcrumbs":   inv.MaxBreadcrumbs,
		"keys":              append([]string(nil), inv.Keys...),
		"hand":              int(inv.Hand),
		"flashlight_object": inv.FlashlightObject,
		"breadcrumb_prefab": inv.BreadcrumbPrefab,
		"drop_offset":       inv.DropOffset,
		"dropped":           inv.dropped,
	}
}

func (inv *InventoryBehaviour) Deserialize(p behaviour.Properties) error {
	var err error
	if inv.HasFlashlight, err = p.Bool("has_flashlight", inv.HasFlashlight); err != nil {
		return err
	}
	if inv.Breadcrumbs, err = p.Int("breadcrumbs", inv.Breadcrumbs); err != nil {
		return err
	}
	if inv.MaxBreadcrumbs, err = p.Int("max_breadcrumbs", inv.MaxBreadcrumbs); err != nil {
		return err
	}
	if inv.Keys, err = p.Strings("keys", inv.Keys); err != nil {
		return err
	}
	hand, err := p.Int("hand", int(inv.Hand))
	if err != nil {
		return err
	}
	if hand >= 0 && hand < int(handStateCount) {
		inv.Hand = HandState(hand)
	}
	if inv.FlashlightObject, err = p.String("flashlight_object", inv.FlashlightObject); err != nil {
		return err
	}
	if inv.BreadcrumbPrefab, err = p.String("breadcrumb_prefab", inv.BreadcrumbPrefab); err != nil {
		return err
	}
	if inv.DropOffset, err = p.Vec3("drop_offset", inv.DropOffset); err != nil {
		return err
	}
	if inv.dropped, err = p.Int("dropped", inv.dropped); err != nil {
		return err
	}
	if inv.Breadcrumbs < 0 {
		inv.Breadcrumbs = 0
	}
	if inv.Breadcrumbs > inv.MaxBreadcrumbs {
		inv.Breadcrumbs = inv.MaxBreadcrumbs
	}
	inv.syncKeys()
	return nil
}

func (inv *InventoryBehaviour) RenderUI() {
	imgui.Text("Hand: " + inv.Hand.String())
	if imgui.Button("Cycle Hand") {
		inv.CycleHand()
	}
	imgui.Checkbox("Has Flashlight", &inv.HasFlashlight)

	crumbs := int32(inv.Breadcrumbs)
	limit := int32(inv.MaxBreadcrumbs)
	if imgui.SliderInt("Breadcrumbs", &crumbs, 0, limit) {
		inv.Breadcrumbs = int(crumbs)
	}
	if imgui.DragInt("Max Breadcrumbs", &limit) && limit >= 0 {
		inv.MaxBreadcrumbs = int(limit)
	}

	imgui.InputTextV("Flashlight Object", &inv.FlashlightObject, 0, nil)
	imgui.InputTextV("Breadcrumb Prefab", &inv.BreadcrumbPrefab, 0, nil)
	imgui.DragFloat3("Drop Offset", (*[3]float32)(&inv.DropOffset))

	imgui.Separator()
	imgui.Text("Keys:")
	if len(inv.Keys) == 0 {
		imgui.Text("  none")
	}
	for _, k := range inv.Keys {
		imgui.Bullet()
		imgui.SameLine()
		imgui.Text(k)
	}
}
