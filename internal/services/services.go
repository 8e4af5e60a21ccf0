// Package services holds the process-wide collaborators behaviours reach for
// at runtime: the audio engine, the content table and the input reader.
package services

import (
	"sync"

	"Hollowmere/internal/audio"
	"Hollowmere/internal/content"
	"Hollowmere/internal/input"
)

type Services struct {
	Audio   audio.Engine
	Content *content.Table
	Input   input.Reader
}

var (
	mu      sync.RWMutex
	current = Defaults()
)

// Defaults returns a silent mixer, an empty table and an idle input state.
func Defaults() Services {
	return Services{
		Audio:   audio.NewMixer(audio.SilentLoader{}),
		Content: content.NewTable(),
		Input:   input.NewState(),
	}
}

// Get returns the current collaborators.
func Get() Services {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Set installs s. Nil fields are filled from Defaults.
func Set(s Services) {
	if s.Audio == nil || s.Content == nil || s.Input == nil {
		def := Defaults()
		if s.Audio == nil {
			s.Audio = def.Audio
		}
		if s.Content == nil {
			s.Content = def.Content
		}
		if s.Input == nil {
			s.Input = def.Input
		}
	}
	mu.Lock()
	current = s
	mu.Unlock()
}

// Reset restores Defaults.
func Reset() {
	Set(Defaults())
}
