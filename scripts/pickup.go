package scripts

import (
	"Hollowmere/internal/behaviour"
	"Hollowmere/internal/logger"
	"Hollowmere/internal/services"

	"github.com/inkyblackness/imgui-go/v4"
	"go.uber.org/zap"
)

// PickupBehaviour hands a content item to the interactor's inventory.
type PickupBehaviour struct {
	behaviour.BaseComponent
	Item            string
	Amount          int // 0 uses the item's amount
	PickupSound     string
	DestroyOnPickup bool

	pickedUp bool
}

func init() {
	behaviour.RegisterScript("PickupBehaviour", func() behaviour.Component {
		return &PickupBehaviour{DestroyOnPickup: true}
	})
}

func (p *PickupBehaviour) OnInteract(interactor *behaviour.GameObject) {
	if p.pickedUp || interactor == nil {
		return
	}
	obj := p.GetGameObject()

	inv, ok := behaviour.ComponentInParent[*InventoryBehaviour](interactor)
	if !ok {
		logger.Log.Debug("Interactor has no inventory", zap.String("interactor", interactor.Name))
		return
	}
	item, ok := services.Get().Content.Item(p.Item)
	if !ok {
		logger.Log.Warn("Pickup has unknown item",
			zap.String("object", obj.Name),
			zap.String("item", p.Item))
		return
	}
	amount := p.Amount
	if amount <= 0 {
		amount = item.Amount
	}
	if !inv.AddItem(p.Item, amount) {
		return
	}

	p.pickedUp = true
	playAt(p.PickupSound, obj.Transform.WorldPosition())
	logger.Log.Info("Item picked up",
		zap.String("item", item.DisplayName),
		zap.Int("amount", amount))

	if p.DestroyOnPickup {
		destroy(obj)
	} else {
		obj.SetActive(false)
	}
}

func (p *PickupBehaviour) PickedUp() bool {
	return p.pickedUp
}

func (p *PickupBehaviour) Serialize() behaviour.Properties {
	return behaviour.Properties{
		"item":              p.Item,
		"amount":            p.Amount,
		"pickup_sound":      p.PickupSound,
		"destroy_on_pickup": p.DestroyOnPickup,
	}
}

func (p *PickupBehaviour) Deserialize(props behaviour.Properties) error {
	var err error
	if p.Item, err = props.String("item", p.Item); err != nil {
		return err
	}
	if p.Amount, err = props.Int("amount", p.Amount); err != nil {
		return err
	}
	if p.PickupSound, err = props.String("pickup_sound", p.PickupSound); err != nil {
		return err
	}
	p.DestroyOnPickup, err = props.Bool("destroy_on_pickup", p.DestroyOnPickup)
	return err
}

func (p *PickupBehaviour) RenderUI() {
	imgui.InputTextV("Item", &p.Item, 0, nil)
	amount := int32(p.Amount)
	if imgui.DragInt("Amount", &amount) {
		if amount < 0 {
			amount = 0
		}
		p.Amount = int(amount)
	}
	imgui.InputTextV("Pickup Sound", &p.PickupSound, 0, nil)
	imgui.Checkbox("Destroy On Pickup", &p.DestroyOnPickup)
}
