package behaviour

import (
	"encoding/json"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPropertiesDefaultsForMissingKeys(t *testing.T) {
	p := Properties{}

	f, err := p.Float32("speed", 2.5)
	if err != nil || f != 2.5 {
		t.Errorf("Expected default 2.5, got %v (%v)", f, err)
	}
	s, err := p.String("name", "x")
	if err != nil || s != "x" {
		t.Errorf("Expected default 'x', got %q (%v)", s, err)
	}
}

func TestPropertiesTypeMismatch(t *testing.T) {
	p := Properties{"speed": "fast", "on": 1.0}

	if _, err := p.Float32("speed", 0); err == nil {
		t.Error("Expected error for string where number was expected")
	}
	if _, err := p.Bool("on", false); err == nil {
		t.Error("Expected error for number where bool was expected")
	}
}

func TestPropertiesSurviveJSON(t *testing.T) {
	light := NewLightComponent()
	light.Color = [3]float32{0.1, 0.2, 0.3}
	light.Direction = mgl32.Vec3{0, -1, 0}
	light.Intensity = 4

	data, err := json.Marshal(light.Serialize())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded Properties
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	restored := NewLightComponent()
	if err := restored.Deserialize(decoded); err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	if restored.Color != light.Color || restored.Direction != light.Direction || restored.Intensity != 4 {
		t.Errorf("Light did not survive JSON: %+v", restored)
	}
}

func TestPropertiesStrings(t *testing.T) {
	p := Properties{"keys": []interface{}{"red", "blue"}, "bad": []interface{}{1.0}}

	keys, err := p.Strings("keys", nil)
	if err != nil || len(keys) != 2 || keys[1] != "blue" {
		t.Errorf("Unexpected keys %v (%v)", keys, err)
	}
	if _, err := p.Strings("bad", nil); err == nil {
		t.Error("Expected error for non-string element")
	}
}
