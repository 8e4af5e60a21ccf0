package audio

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"Hollowmere/internal/content"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// EbitenLoader decodes wav files from disk into ebiten audio players.
// Only one ebiten audio context may exist per process.
type EbitenLoader struct {
	ctx  *audio.Context
	root string

	mu    sync.Mutex
	cache map[string][]byte
}

// NewEbitenLoader creates the process audio context. Relative sound paths
// resolve against root.
func NewEbitenLoader(sampleRate int, root string) *EbitenLoader {
	return &EbitenLoader{
		ctx:   audio.NewContext(sampleRate),
		root:  root,
		cache: make(map[string][]byte),
	}
}

func (l *EbitenLoader) Load(sound content.Sound, loop bool) (Voice, error) {
	b, err := l.read(sound.Path)
	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(strings.ToLower(sound.Path), ".wav") {
		// Already-decoded PCM in ebiten's native format.
		return l.ctx.NewPlayerFromBytes(b), nil
	}

	stream, err := wav.DecodeWithSampleRate(l.ctx.SampleRate(), bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode wav %q: %w", sound.Path, err)
	}
	if loop {
		return l.ctx.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	}
	return l.ctx.NewPlayer(stream)
}

func (l *EbitenLoader) read(path string) ([]byte, error) {
	if !filepath.IsAbs(path) && l.root != "" {
		path = filepath.Join(l.root, path)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok := l.cache[path]; ok {
		return b, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l.cache[path] = b
	return b, nil
}

// SilentLoader produces voices that make no sound. Headless runs and tests
// use it. A looping silent voice plays until it is paused; any other voice
// finishes once it has been seen playing, so one-shots get reaped.
type SilentLoader struct{}

func (SilentLoader) Load(sound content.Sound, loop bool) (Voice, error) {
	return &silentVoice{loop: loop}, nil
}

type silentVoice struct {
	loop    bool
	playing bool
	seen    bool
	volume  float64
}

func (v *silentVoice) Play() {
	v.playing = true
	v.seen = false
}

func (v *silentVoice) IsPlaying() bool {
	if v.playing && !v.loop {
		if v.seen {
			v.playing = false
		}
		v.seen = true
	}
	return v.playing
}

func (v *silentVoice) Pause()                { v.playing = false }
func (v *silentVoice) Rewind() error         { return nil }
func (v *silentVoice) SetVolume(vol float64) { v.volume = vol }

func (v *silentVoice) Close() error {
	v.playing = false
	return nil
}
