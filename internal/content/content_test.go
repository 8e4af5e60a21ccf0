package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
sounds:
  click:
    path: sounds/click.wav
    volume: 0.5
  drone:
    path: sounds/drone.wav
    min_distance: 2
    max_distance: 30
    loop: true
materials:
  highlight:
    diffuse_color: [1.0, 0.9, 0.4]
    emissive: 0.6
items:
  flashlight:
    display_name: Flashlight
    grants: flashlight
  crumbs:
    grants: breadcrumbs
    amount: 5
prefabs:
  breadcrumb:
    tag: Breadcrumb
    mesh: meshes/crumb.obj
    material: highlight
    collider_radius: 0.25
    light:
      mode: point
      color: [0.6, 1.0, 0.7]
      intensity: 0.8
      range: 3
    scripts:
      - name: BreadcrumbBehaviour
        properties:
          lifetime: 120
`

func TestParseFillsDefaults(t *testing.T) {
	table, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	click, ok := table.Sound("click")
	require.True(t, ok)
	assert.Equal(t, "click", click.Name)
	assert.Equal(t, float32(0.5), click.Volume)
	assert.Equal(t, float32(1), click.MinDistance)
	assert.Equal(t, float32(20), click.MaxDistance)

	drone, _ := table.Sound("drone")
	assert.True(t, drone.Loop)
	assert.Equal(t, float32(1), drone.Volume)

	mat, ok := table.Material("highlight")
	require.True(t, ok)
	assert.Equal(t, float32(1), mat.Alpha)
	assert.Equal(t, [3]float32{1.0, 0.9, 0.4}, mat.DiffuseColor)

	crumbs, _ := table.Item("crumbs")
	assert.Equal(t, GrantBreadcrumbs, crumbs.Grants)
	assert.Equal(t, 5, crumbs.Amount)
	assert.Equal(t, "crumbs", crumbs.DisplayName)

	flashlight, _ := table.Item("flashlight")
	assert.Equal(t, 1, flashlight.Amount)

	prefab, ok := table.Prefab("breadcrumb")
	require.True(t, ok)
	require.NotNil(t, prefab.Light)
	assert.Equal(t, float32(0.8), prefab.Light.Intensity)
	require.Len(t, prefab.Scripts, 1)
	assert.Equal(t, 120, prefab.Scripts[0].Properties["lifetime"])
}

func TestParseRejectsInvalidEntries(t *testing.T) {
	cases := map[string]string{
		"missing path":   "sounds:\n  a: {volume: 1}\n",
		"inverted range": "sounds:\n  a: {path: a.wav, min_distance: 10, max_distance: 2}\n",
		"unknown grant":  "items:\n  a: {grants: jetpack}\n",
		"unnamed script": "prefabs:\n  a:\n    scripts:\n      - properties: {}\n",
		"bad yaml":       "sounds: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLookupMissing(t *testing.T) {
	table := NewTable()
	_, ok := table.Sound("nope")
	assert.False(t, ok)
	_, ok = table.Prefab("nope")
	assert.False(t, ok)
}

func TestLoadWrapsErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content: load")
}

func TestReplaceKeepsIdentity(t *testing.T) {
	table := NewTable()
	table.AddSound(Sound{Name: "old", Path: "old.wav"})

	fresh, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	table.Replace(fresh)

	_, ok := table.Sound("old")
	assert.False(t, ok)
	_, ok = table.Sound("click")
	assert.True(t, ok)
}

func TestReloadHookAppliesChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sounds:\n  a: {path: a.wav}\n"), 0644))

	table, err := Load(path)
	require.NoError(t, err)

	w := &Watcher{Events: make(chan string, 4), Errors: make(chan error, 1)}
	hook := NewReloadHook(table, w)

	require.NoError(t, os.WriteFile(path, []byte("sounds:\n  b: {path: b.wav}\n"), 0644))
	w.Events <- filepath.Join(dir, "other.yaml")
	w.Events <- path
	hook.Update(0.016)

	_, ok := table.Sound("b")
	assert.True(t, ok, "table should be reloaded")
	_, ok = table.Sound("a")
	assert.False(t, ok)
}

func TestReloadHookKeepsTableOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sounds:\n  a: {path: a.wav}\n"), 0644))
	table, err := Load(path)
	require.NoError(t, err)

	w := &Watcher{Events: make(chan string, 1), Errors: make(chan error, 1)}
	hook := NewReloadHook(table, w)

	require.NoError(t, os.WriteFile(path, []byte("sounds: ["), 0644))
	w.Events <- path
	hook.Update(0.016)

	_, ok := table.Sound("a")
	assert.True(t, ok, "broken file should not wipe the table")
}

func TestIsContentFile(t *testing.T) {
	assert.True(t, isContentFile("a/content.yaml"))
	assert.True(t, isContentFile("b.YML"))
	assert.False(t, isContentFile("scene.json"))
}
