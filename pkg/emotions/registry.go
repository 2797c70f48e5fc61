package emotions

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// Registry holds the profile of every label.
type Registry struct {
	mu       sync.RWMutex
	profiles map[Label]*Profile
}

// NewRegistry creates a registry populated with the built-in names,
// voice lines and tracks.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[Label]*Profile, len(all))}
	for _, l := range all {
		p := &Profile{
			Label: l,
			Name:  builtinNames[l],
			Lines: builtinLines[l],
		}
		if t, ok := builtinTracks[l]; ok {
			track := t
			p.Track = &track
		}
		r.profiles[l] = p
	}
	return r
}

// Get returns a copy of the profile for l.
func (r *Registry) Get(l Label) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[l]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrNotFound, l)
	}
	return *p, nil
}

// Lines returns the voice lines of l.
func (r *Registry) Lines(l Label) ([]string, error) {
	p, err := r.Get(l)
	if err != nil {
		return nil, err
	}
	return p.Lines[:], nil
}

// Pick selects one of the five lines of l uniformly at random and
// returns its index and text. A nil rng uses the global source.
func (r *Registry) Pick(l Label, rng *rand.Rand) (int, string, error) {
	p, err := r.Get(l)
	if err != nil {
		return 0, "", err
	}

	var idx int
	if rng != nil {
		idx = rng.IntN(LinesPerLabel)
	} else {
		idx = rand.IntN(LinesPerLabel)
	}
	return idx, p.Lines[idx], nil
}

// SetLines replaces the voice lines of l.
func (r *Registry) SetLines(l Label, lines [LinesPerLabel]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[l]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, l)
	}
	p.Lines = lines
	return nil
}

// MoodLabels returns the labels that own background music.
func (r *Registry) MoodLabels() []Label {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Label
	for _, l := range all {
		if r.profiles[l].HasMusic() {
			out = append(out, l)
		}
	}
	return out
}
