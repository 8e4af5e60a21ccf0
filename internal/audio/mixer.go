package audio

import (
	"fmt"

	"Hollowmere/internal/content"
	"Hollowmere/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Voice is a playback handle from a backend. *ebiten audio.Player satisfies it.
type Voice interface {
	Play()
	Pause()
	IsPlaying() bool
	Rewind() error
	SetVolume(volume float64)
	Close() error
}

// VoiceLoader opens a voice for a sound asset.
type VoiceLoader interface {
	Load(sound content.Sound, loop bool) (Voice, error)
}

// Source is a positioned sound in the scene.
type Source interface {
	Play()
	Stop()
	Pause()
	Resume()
	IsPlaying() bool
	SetPosition(mgl32.Vec3)
	SetDirection(mgl32.Vec3)
	SetCone(Cone)
	SetVolume(float32)
	SetLooping(bool)
	Gain() float32
	Close() error
}

// Engine is the audio surface behaviours talk to.
type Engine interface {
	NewSource(sound content.Sound) (Source, error)
	PlayOneShot(sound content.Sound, position mgl32.Vec3) error
	SetListener(Listener)
	Listener() Listener
	Update()
	Close() error
}

// Mixer implements Engine: it owns every source and recomputes their
// spatial volume once per frame.
type Mixer struct {
	loader   VoiceLoader
	listener Listener
	master   float32
	sources  []*source
}

func NewMixer(loader VoiceLoader) *Mixer {
	return &Mixer{
		loader:   loader,
		master:   1,
		listener: Listener{Forward: mgl32.Vec3{0, 0, -1}},
	}
}

// SetMasterVolume scales every source, clamped to [0, 1].
func (m *Mixer) SetMasterVolume(v float32) {
	m.master = mgl32.Clamp(v, 0, 1)
}

func (m *Mixer) SetListener(l Listener) {
	m.listener = l
}

func (m *Mixer) Listener() Listener {
	return m.listener
}

func (m *Mixer) NewSource(sound content.Sound) (Source, error) {
	s, err := m.newSource(sound, sound.Loop)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (m *Mixer) newSource(sound content.Sound, loop bool) (*source, error) {
	voice, err := m.loader.Load(sound, loop)
	if err != nil {
		return nil, fmt.Errorf("audio: load %s: %w", sound.Name, err)
	}
	s := &source{
		mixer:  m,
		sound:  sound,
		voice:  voice,
		volume: 1,
		loop:   loop,
		cone:   Omni,
	}
	m.sources = append(m.sources, s)
	s.apply()
	return s, nil
}

// PlayOneShot plays a non-looping copy of sound at position and forgets it
// once it finishes.
func (m *Mixer) PlayOneShot(sound content.Sound, position mgl32.Vec3) error {
	s, err := m.newSource(sound, false)
	if err != nil {
		return err
	}
	s.position = position
	s.oneShot = true
	s.Play()
	return nil
}

// Update recomputes gains and reaps finished one-shots.
func (m *Mixer) Update() {
	live := m.sources[:0]
	for _, s := range m.sources {
		if s.closed {
			continue
		}
		if s.oneShot && !s.voice.IsPlaying() {
			s.closeVoice()
			continue
		}
		s.apply()
		live = append(live, s)
	}
	for i := len(live); i < len(m.sources); i++ {
		m.sources[i] = nil
	}
	m.sources = live
}

// Sources is the number of live sources.
func (m *Mixer) Sources() int {
	return len(m.sources)
}

func (m *Mixer) Close() error {
	var firstErr error
	for _, s := range m.sources {
		if err := s.closeVoice(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.sources = nil
	return firstErr
}

type source struct {
	mixer     *Mixer
	sound     content.Sound
	voice     Voice
	position  mgl32.Vec3
	direction mgl32.Vec3
	cone      Cone
	volume    float32
	loop      bool
	oneShot   bool
	playing   bool
	paused    bool
	closed    bool
	gain      float32
}

func (s *source) apply() {
	g := SpatialGain(s.mixer.listener, s.position, s.direction, s.cone, s.sound.MinDistance, s.sound.MaxDistance)
	s.gain = mgl32.Clamp(s.sound.Volume*s.volume*s.mixer.master*g, 0, 1)
	s.voice.SetVolume(float64(s.gain))
}

func (s *source) Play() {
	if s.closed {
		return
	}
	if err := s.voice.Rewind(); err != nil {
		logger.Log.Warn("Failed to rewind sound", zap.String("sound", s.sound.Name), zap.Error(err))
	}
	s.apply()
	s.voice.Play()
	s.playing = true
	s.paused = false
}

func (s *source) Stop() {
	if s.closed {
		return
	}
	s.voice.Pause()
	s.playing = false
	s.paused = false
}

func (s *source) Pause() {
	if s.closed || !s.playing {
		return
	}
	s.voice.Pause()
	s.paused = true
}

func (s *source) Resume() {
	if s.closed || !s.paused {
		return
	}
	s.voice.Play()
	s.paused = false
}

func (s *source) IsPlaying() bool {
	return !s.closed && s.playing && !s.paused && s.voice.IsPlaying()
}

func (s *source) SetPosition(p mgl32.Vec3)  { s.position = p }
func (s *source) SetDirection(d mgl32.Vec3) { s.direction = d }
func (s *source) SetCone(c Cone)            { s.cone = c }
func (s *source) SetVolume(v float32)       { s.volume = mgl32.Clamp(v, 0, 1) }

// SetLooping reloads the voice because backends fix looping at load time.
func (s *source) SetLooping(loop bool) {
	if s.closed || loop == s.loop {
		return
	}
	voice, err := s.mixer.loader.Load(s.sound, loop)
	if err != nil {
		logger.Log.Warn("Failed to reload sound for looping change", zap.String("sound", s.sound.Name), zap.Error(err))
		return
	}
	wasPlaying := s.IsPlaying()
	_ = s.voice.Close()
	s.voice = voice
	s.loop = loop
	if wasPlaying {
		s.Play()
	}
}

func (s *source) Gain() float32 {
	return s.gain
}

func (s *source) Close() error {
	return s.closeVoice()
}

func (s *source) closeVoice() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.playing = false
	return s.voice.Close()
}
