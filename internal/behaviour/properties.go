package behaviour

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Properties is the serialized form of a component. Values may be native Go
// types (when built in memory) or the float64 / []interface{} shapes produced
// by JSON decoding; the getters accept both.
type Properties map[string]interface{}

// Float32 returns the value at key, or def when the key is missing.
func (p Properties) Float32(key string, def float32) (float32, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return def, nil
	}
	f, ok := toFloat(v)
	if !ok {
		return def, fmt.Errorf("property %q: expected number, got %T", key, v)
	}
	return float32(f), nil
}

func (p Properties) Int(key string, def int) (int, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return def, nil
	}
	f, ok := toFloat(v)
	if !ok {
		return def, fmt.Errorf("property %q: expected number, got %T", key, v)
	}
	return int(f), nil
}

func (p Properties) Bool(key string, def bool) (bool, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return def, fmt.Errorf("property %q: expected bool, got %T", key, v)
	}
	return b, nil
}

func (p Properties) String(key string, def string) (string, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return def, fmt.Errorf("property %q: expected string, got %T", key, v)
	}
	return s, nil
}

// Strings reads a list of strings.
func (p Properties) Strings(key string, def []string) ([]string, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return def, nil
	}
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...), nil
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return def, fmt.Errorf("property %q: expected string list, got element %T", key, item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return def, fmt.Errorf("property %q: expected string list, got %T", key, v)
}

func (p Properties) Vec3(key string, def mgl32.Vec3) (mgl32.Vec3, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return def, nil
	}
	arr, ok := toFloat3(v)
	if !ok {
		return def, fmt.Errorf("property %q: expected 3 numbers, got %v", key, v)
	}
	return mgl32.Vec3(arr), nil
}

func (p Properties) Color3(key string, def [3]float32) ([3]float32, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return def, nil
	}
	arr, ok := toFloat3(v)
	if !ok {
		return def, fmt.Errorf("property %q: expected 3 numbers, got %v", key, v)
	}
	return arr, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func toFloat3(v interface{}) ([3]float32, bool) {
	var out [3]float32
	switch arr := v.(type) {
	case [3]float32:
		return arr, true
	case mgl32.Vec3:
		return [3]float32(arr), true
	case []float32:
		if len(arr) != 3 {
			return out, false
		}
		copy(out[:], arr)
		return out, true
	case []float64:
		if len(arr) != 3 {
			return out, false
		}
		for i := range arr {
			out[i] = float32(arr[i])
		}
		return out, true
	case []interface{}:
		if len(arr) != 3 {
			return out, false
		}
		for i, item := range arr {
			f, ok := toFloat(item)
			if !ok {
				return out, false
			}
			out[i] = float32(f)
		}
		return out, true
	}
	return out, false
}
