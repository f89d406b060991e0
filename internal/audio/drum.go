package audio

import "fmt"

type DrumKind int

const (
	Kick DrumKind = iota
	HighHat
	Snare
)

var drumSamples = map[DrumKind]string{
	Kick:    "kick",
	HighHat: "high-hat",
	Snare:   "snare",
}

var drumNames = map[DrumKind]string{
	Kick:    "Kick",
	HighHat: "HighHat",
	Snare:   "Snare",
}

func (k DrumKind) String() string {
	if name, ok := drumNames[k]; ok {
		return name
	}
	return fmt.Sprintf("DrumKind(%d)", int(k))
}

// Drum is a percussion voice that always restarts its sample when hit.
type Drum struct {
	Kind   DrumKind
	effect *SoundEffect
}

func (m *Manager) Drum(kind DrumKind) *Drum {
	return &Drum{Kind: kind, effect: m.Effect(drumSamples[kind])}
}

func (d *Drum) Play() {
	d.effect.Play(true)
}

func (d *Drum) Close() {
	d.effect.Close()
}
