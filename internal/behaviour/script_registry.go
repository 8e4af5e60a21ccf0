package behaviour

import (
	"reflect"
	"sort"
)

type ScriptConstructor func() Component

var (
	scriptRegistry = make(map[string]ScriptConstructor)
	scriptNames    = make(map[reflect.Type]string)
)

// RegisterScript makes a script constructible by name. The constructor is
// called once to learn the script's dynamic type for ScriptName.
func RegisterScript(name string, constructor ScriptConstructor) {
	scriptRegistry[name] = constructor
	if sample := constructor(); sample != nil {
		scriptNames[reflect.TypeOf(sample)] = name
	}
}

func GetAvailableScripts() []string {
	names := make([]string, 0, len(scriptRegistry))
	for name := range scriptRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func CreateScript(name string) Component {
	if constructor, exists := scriptRegistry[name]; exists {
		return constructor()
	}
	return nil
}

// ScriptName returns the registered name of comp's type.
func ScriptName(comp Component) (string, bool) {
	if comp == nil {
		return "", false
	}
	name, ok := scriptNames[reflect.TypeOf(comp)]
	return name, ok
}
