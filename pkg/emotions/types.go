// Package emotions defines the emotion labels reported by the face API and
// what emotional-helper says and plays for each of them.
//
// Nine labels form a closed set. Each carries five candidate voice lines;
// the five mood-bearing labels (angry, disgust, fear, happy, sad) also carry
// a looping background track and an icon.
package emotions

import "strings"

// Label is an emotion type as returned by the face detection API.
type Label string

// Emotion labels. None means no usable result.
const (
	None     Label = ""
	Angry    Label = "angry"
	Disgust  Label = "disgust"
	Fear     Label = "fear"
	Happy    Label = "happy"
	Sad      Label = "sad"
	Surprise Label = "surprise"
	Neutral  Label = "neutral"
	Pouty    Label = "pouty"
	Grimace  Label = "grimace"
)

// LinesPerLabel is the number of candidate voice lines for every label.
const LinesPerLabel = 5

// DisplayPrefix precedes the emotion name on screen.
const DisplayPrefix = "您当前情绪为"

// IdleIcon is the icon shown when no mood music is held.
const IdleIcon = "disc"

var all = []Label{Angry, Disgust, Fear, Happy, Sad, Surprise, Neutral, Pouty, Grimace}

// All returns the nine labels in a stable order.
func All() []Label {
	out := make([]Label, len(all))
	copy(out, all)
	return out
}

// Parse maps an API emotion type onto the closed label set.
func Parse(s string) (Label, bool) {
	l := Label(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range all {
		if l == known {
			return l, true
		}
	}
	return None, false
}

// IsNone reports whether l carries no emotion.
func (l Label) IsNone() bool { return l == None }

func (l Label) String() string {
	if l == None {
		return "none"
	}
	return string(l)
}

// Track is the background music attached to a mood-bearing label.
type Track struct {
	// File is the track file name inside the music directory.
	File string `json:"file"`

	// Title is the "song - artist" text shown while it plays.
	Title string `json:"title"`

	// Icon is the image name (without extension) inside the icon directory.
	Icon string `json:"icon"`
}

// Profile is everything the helper shows, says and plays for one label.
type Profile struct {
	Label Label
	Name  string
	Lines [LinesPerLabel]string
	Track *Track
}

// HasMusic reports whether the label owns a looping background track.
func (p Profile) HasMusic() bool { return p.Track != nil }

// Display returns the on-screen emotion text, e.g. "您当前情绪为：开心".
func (p Profile) Display() string {
	return DisplayPrefix + "：" + p.Name
}
