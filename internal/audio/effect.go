package audio

import (
	"path/filepath"

	"busic/internal/logging"

	"github.com/sirupsen/logrus"
)

// Manager loads named sound effects from a directory of .wav files.
type Manager struct {
	backend Backend
	dir     string
	volume  float32
}

func NewManager(backend Backend, dir string, volume float32) *Manager {
	return &Manager{backend: backend, dir: dir, volume: volume}
}

// SoundEffect is one playable instance of a named clip. A clip that failed to load is silent.
type SoundEffect struct {
	Name    string
	backend Backend
	id      uint64
	loaded  bool
}

// Effect loads <dir>/<name>.wav and plays it once as a preview.
func (m *Manager) Effect(name string) *SoundEffect {
	e := &SoundEffect{Name: name, backend: m.backend}
	path := filepath.Join(m.dir, name+".wav")
	id, err := m.backend.Load(path)
	if err != nil {
		logging.L().WithFields(logrus.Fields{"sound": name, "error": err}).Warn("audio: effect unavailable")
		return e
	}
	e.id = id
	e.loaded = true
	m.backend.SetVolume(id, m.volume)
	e.Play(false)
	return e
}

// Play starts the clip if it is idle; a playing clip is rewound when restart is set.
func (e *SoundEffect) Play(restart bool) {
	if e == nil || !e.loaded {
		return
	}
	if !e.backend.IsPlaying(e.id) {
		e.backend.Play(e.id)
	} else if restart {
		e.backend.Stop(e.id)
		e.backend.Play(e.id)
	}
}

func (e *SoundEffect) Close() {
	if e == nil || !e.loaded {
		return
	}
	e.backend.Unload(e.id)
	e.loaded = false
}
