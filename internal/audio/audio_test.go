package audio

import (
	"errors"
	"testing"

	"Hollowmere/internal/content"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVoice struct {
	playing bool
	volume  float64
	rewinds int
	closed  bool
	loop    bool
}

func (v *fakeVoice) Play()                 { v.playing = true }
func (v *fakeVoice) Pause()                { v.playing = false }
func (v *fakeVoice) IsPlaying() bool       { return v.playing }
func (v *fakeVoice) SetVolume(vol float64) { v.volume = vol }

func (v *fakeVoice) Rewind() error {
	v.rewinds++
	return nil
}

func (v *fakeVoice) Close() error {
	v.closed = true
	v.playing = false
	return nil
}

type fakeLoader struct {
	voices []*fakeVoice
	err    error
}

func (l *fakeLoader) Load(sound content.Sound, loop bool) (Voice, error) {
	if l.err != nil {
		return nil, l.err
	}
	v := &fakeVoice{loop: loop}
	l.voices = append(l.voices, v)
	return v, nil
}

func testSound() content.Sound {
	return content.Sound{Name: "drip", Path: "drip.wav", Volume: 1, MinDistance: 1, MaxDistance: 11}
}

func TestAttenuation(t *testing.T) {
	tests := []struct {
		name     string
		distance float32
		want     float32
	}{
		{"inside min", 0.5, 1},
		{"at min", 1, 1},
		{"halfway", 6, 0.5},
		{"at max", 11, 0},
		{"beyond max", 50, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Attenuation(tt.distance, 1, 11), 1e-5)
		})
	}

	assert.Equal(t, float32(0), Attenuation(3, 5, 5), "degenerate range is silent past min")
}

func TestConeGain(t *testing.T) {
	cone := Cone{InnerAngle: 90, OuterAngle: 180, OuterGain: 0.2}
	forward := mgl32.Vec3{0, 0, -1}

	assert.InDelta(t, 1, cone.ConeGain(forward, mgl32.Vec3{0, 0, -5}), 1e-5, "on axis")
	assert.InDelta(t, 0.2, cone.ConeGain(forward, mgl32.Vec3{0, 0, 5}), 1e-5, "behind")
	// 67.5 degrees is halfway between the 45 and 90 degree half-angles
	dir := mgl32.QuatRotate(mgl32.DegToRad(67.5), mgl32.Vec3{0, 1, 0}).Rotate(forward)
	assert.InDelta(t, 0.6, cone.ConeGain(forward, dir), 1e-3)

	assert.Equal(t, float32(1), Omni.ConeGain(forward, mgl32.Vec3{0, 0, 1}))
	assert.Equal(t, float32(1), cone.ConeGain(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}))
}

func TestMixerSourceGain(t *testing.T) {
	loader := &fakeLoader{}
	m := NewMixer(loader)
	m.SetListener(Listener{Position: mgl32.Vec3{0, 0, 0}, Forward: mgl32.Vec3{0, 0, -1}})

	snd := testSound()
	snd.Volume = 0.8
	src, err := m.NewSource(snd)
	require.NoError(t, err)
	src.SetVolume(0.5)
	src.SetPosition(mgl32.Vec3{6, 0, 0})
	src.Play()
	m.Update()

	assert.InDelta(t, 0.8*0.5*0.5, src.Gain(), 1e-5)
	assert.InDelta(t, 0.2, loader.voices[0].volume, 1e-5)

	m.SetMasterVolume(0.5)
	m.Update()
	assert.InDelta(t, 0.1, src.Gain(), 1e-5)

	src.SetPosition(mgl32.Vec3{0, 0, 20})
	m.Update()
	assert.Equal(t, float32(0), src.Gain())
}

func TestSourcePauseResumeStop(t *testing.T) {
	m := NewMixer(&fakeLoader{})
	src, err := m.NewSource(testSound())
	require.NoError(t, err)

	src.Resume()
	assert.False(t, src.IsPlaying(), "resume without pause does nothing")

	src.Play()
	assert.True(t, src.IsPlaying())
	src.Pause()
	assert.False(t, src.IsPlaying())
	src.Resume()
	assert.True(t, src.IsPlaying())
	src.Stop()
	assert.False(t, src.IsPlaying())
	src.Resume()
	assert.False(t, src.IsPlaying(), "resume after stop does nothing")
}

func TestOneShotIsReaped(t *testing.T) {
	loader := &fakeLoader{}
	m := NewMixer(loader)

	require.NoError(t, m.PlayOneShot(testSound(), mgl32.Vec3{1, 0, 0}))
	require.Len(t, loader.voices, 1)
	assert.True(t, loader.voices[0].playing)
	assert.False(t, loader.voices[0].loop)

	m.Update()
	assert.Equal(t, 1, m.Sources())

	loader.voices[0].playing = false
	m.Update()
	assert.Equal(t, 0, m.Sources())
	assert.True(t, loader.voices[0].closed)
}

func TestSetLoopingReloadsVoice(t *testing.T) {
	loader := &fakeLoader{}
	m := NewMixer(loader)
	src, err := m.NewSource(testSound())
	require.NoError(t, err)
	src.Play()

	src.SetLooping(true)
	require.Len(t, loader.voices, 2)
	assert.True(t, loader.voices[0].closed)
	assert.True(t, loader.voices[1].loop)
	assert.True(t, src.IsPlaying())

	src.SetLooping(true)
	assert.Len(t, loader.voices, 2, "no reload without a change")
}

func TestMixerCloseAndLoadError(t *testing.T) {
	loader := &fakeLoader{}
	m := NewMixer(loader)
	src, err := m.NewSource(testSound())
	require.NoError(t, err)
	require.NoError(t, m.Close())
	assert.True(t, loader.voices[0].closed)
	src.Play()
	assert.False(t, src.IsPlaying())

	loader.err = errors.New("no such file")
	_, err = m.NewSource(testSound())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "drip")
	assert.Error(t, m.PlayOneShot(testSound(), mgl32.Vec3{}))
}

func TestSilentLoader(t *testing.T) {
	m := NewMixer(SilentLoader{})
	src, err := m.NewSource(testSound())
	require.NoError(t, err)
	src.Play()
	m.Update()
	assert.True(t, src.IsPlaying())
	assert.NoError(t, src.Close())
	assert.False(t, src.IsPlaying())
}

func TestSilentOneShotsAreReaped(t *testing.T) {
	m := NewMixer(SilentLoader{})
	require.NoError(t, m.PlayOneShot(testSound(), mgl32.Vec3{}))
	m.Update()
	m.Update()
	assert.Equal(t, 0, m.Sources())

	loop := testSound()
	loop.Loop = true
	src, err := m.NewSource(loop)
	require.NoError(t, err)
	src.Play()
	for i := 0; i < 5; i++ {
		m.Update()
	}
	assert.True(t, src.IsPlaying(), "looping silent voices keep playing")
	assert.Equal(t, 1, m.Sources())
}
