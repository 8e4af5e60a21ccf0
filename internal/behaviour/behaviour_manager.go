package behaviour

// FrameHook is a per-frame system that is not attached to a GameObject,
// such as content reloading or audio listener sync.
type FrameHook interface {
	Start()
	Update(deltaTime float32)
	UpdateFixed(fixedDeltaTime float32)
}

type hookWrapper struct {
	hook    FrameHook
	started bool
}

// BehaviourManager runs frame hooks and then drives its ComponentManager.
type BehaviourManager struct {
	hooks      []hookWrapper
	components *ComponentManager
}

var GlobalBehaviourManager = NewBehaviourManager(GlobalComponentManager)

func NewBehaviourManager(components *ComponentManager) *BehaviourManager {
	return &BehaviourManager{components: components}
}

// Components returns the driven ComponentManager.
func (m *BehaviourManager) Components() *ComponentManager {
	return m.components
}

func (m *BehaviourManager) Add(hook FrameHook) {
	m.hooks = append(m.hooks, hookWrapper{hook: hook})
}

func (m *BehaviourManager) Remove(hook FrameHook) {
	for i := range m.hooks {
		if m.hooks[i].hook == hook {
			// Remove by swapping with last element and truncating
			m.hooks[i] = m.hooks[len(m.hooks)-1]
			m.hooks = m.hooks[:len(m.hooks)-1]
			return
		}
	}
}

// Clear removes all hooks from the manager
func (m *BehaviourManager) Clear() {
	m.hooks = m.hooks[:0]
}

func (m *BehaviourManager) startHooks() {
	for i := range m.hooks {
		if !m.hooks[i].started {
			m.hooks[i].hook.Start()
			m.hooks[i].started = true
		}
	}
}

func (m *BehaviourManager) UpdateAll(deltaTime float32) {
	m.startHooks()
	for i := range m.hooks {
		m.hooks[i].hook.Update(deltaTime)
	}

	if m.components != nil {
		m.components.UpdateAll(deltaTime)
	}
}

func (m *BehaviourManager) UpdateAllFixed(fixedDeltaTime float32) {
	m.startHooks()
	for i := range m.hooks {
		m.hooks[i].hook.UpdateFixed(fixedDeltaTime)
	}

	if m.components != nil {
		m.components.FixedUpdateAll(fixedDeltaTime)
	}
}
