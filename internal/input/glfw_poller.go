package input

import (
	"fmt"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var keyNames = map[string]glfw.Key{
	"SPACE":       glfw.KeySpace,
	"TAB":         glfw.KeyTab,
	"ENTER":       glfw.KeyEnter,
	"ESCAPE":      glfw.KeyEscape,
	"LEFT_SHIFT":  glfw.KeyLeftShift,
	"LEFT_CTRL":   glfw.KeyLeftControl,
	"LEFT_ALT":    glfw.KeyLeftAlt,
	"RIGHT_SHIFT": glfw.KeyRightShift,
	"BACKSPACE":   glfw.KeyBackspace,
	"UP":          glfw.KeyUp,
	"DOWN":        glfw.KeyDown,
	"LEFT":        glfw.KeyLeft,
	"RIGHT":       glfw.KeyRight,
}

var mouseNames = map[string]glfw.MouseButton{
	"MOUSE_LEFT":   glfw.MouseButtonLeft,
	"MOUSE_RIGHT":  glfw.MouseButtonRight,
	"MOUSE_MIDDLE": glfw.MouseButtonMiddle,
}

type binding struct {
	key     glfw.Key
	button  glfw.MouseButton
	isMouse bool
}

// GLFWPoller samples a glfw window into a State once per frame.
type GLFWPoller struct {
	window   *glfw.Window
	state    *State
	bindings map[Action][]binding
}

func NewGLFWPoller(window *glfw.Window, state *State) *GLFWPoller {
	return &GLFWPoller{
		window:   window,
		state:    state,
		bindings: make(map[Action][]binding),
	}
}

// Bind adds a key or mouse button by name ("E", "F", "TAB", "MOUSE_LEFT", ...).
func (p *GLFWPoller) Bind(a Action, name string) error {
	b, err := parseBinding(name)
	if err != nil {
		return fmt.Errorf("bind %s: %w", a, err)
	}
	p.bindings[a] = append(p.bindings[a], b)
	return nil
}

func parseBinding(name string) (binding, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if btn, ok := mouseNames[name]; ok {
		return binding{button: btn, isMouse: true}, nil
	}
	if key, ok := keyNames[name]; ok {
		return binding{key: key}, nil
	}
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'A' && c <= 'Z':
			return binding{key: glfw.KeyA + glfw.Key(c-'A')}, nil
		case c >= '0' && c <= '9':
			return binding{key: glfw.Key0 + glfw.Key(c-'0')}, nil
		}
	}
	return binding{}, fmt.Errorf("unknown key %q", name)
}

// Poll reads every bound action and advances the state.
func (p *GLFWPoller) Poll() {
	if p.window == nil {
		return
	}
	for a, list := range p.bindings {
		down := false
		for _, b := range list {
			if b.isMouse {
				down = down || p.window.GetMouseButton(b.button) == glfw.Press
			} else {
				down = down || p.window.GetKey(b.key) == glfw.Press
			}
		}
		p.state.Set(a, down)
	}
	p.state.Advance()
}
