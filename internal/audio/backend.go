package audio

import (
	"os"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
)

// Backend plays loaded sound clips identified by handle.
type Backend interface {
	Load(path string) (uint64, error)
	Play(id uint64)
	Stop(id uint64)
	IsPlaying(id uint64) bool
	SetVolume(id uint64, volume float32)
	Unload(id uint64)
}

// RaylibBackend plays sounds through the raylib audio device.
type RaylibBackend struct {
	mu     sync.Mutex
	sounds map[uint64]rl.Sound
	nextID uint64
}

// NewRaylibBackend opens the audio device.
func NewRaylibBackend() *RaylibBackend {
	rl.InitAudioDevice()
	return &RaylibBackend{sounds: make(map[uint64]rl.Sound)}
}

// Close unloads every sound and shuts the audio device down
func (b *RaylibBackend) Close() {
	b.mu.Lock()
	for id, s := range b.sounds {
		rl.UnloadSound(s)
		delete(b.sounds, id)
	}
	b.mu.Unlock()
	rl.CloseAudioDevice()
}

func (b *RaylibBackend) Load(path string) (uint64, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, errors.Wrap(err, "load sound")
	}
	sound := rl.LoadSound(path)
	if !rl.IsSoundValid(sound) {
		return 0, errors.Errorf("load sound %s: unsupported or empty file", path)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.sounds[b.nextID] = sound
	return b.nextID, nil
}

func (b *RaylibBackend) Play(id uint64) {
	if s, ok := b.sound(id); ok {
		rl.PlaySound(s)
	}
}

func (b *RaylibBackend) Stop(id uint64) {
	if s, ok := b.sound(id); ok {
		rl.StopSound(s)
	}
}

func (b *RaylibBackend) IsPlaying(id uint64) bool {
	if s, ok := b.sound(id); ok {
		return rl.IsSoundPlaying(s)
	}
	return false
}

func (b *RaylibBackend) SetVolume(id uint64, volume float32) {
	if s, ok := b.sound(id); ok {
		rl.SetSoundVolume(s, volume)
	}
}

func (b *RaylibBackend) Unload(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if s, ok := b.sounds[id]; ok {
		rl.UnloadSound(s)
		delete(b.sounds, id)
	}
}

func (b *RaylibBackend) sound(id uint64) (rl.Sound, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.sounds[id]
	return s, ok
}
