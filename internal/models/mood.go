package models

import "fmt"

// Mood is one of five ordered severity levels, ranked 1 (worst) to 5 (best).
// It is used both as an entry value and as a histogram bucket key.
type Mood int

const (
	MoodVeryBad   Mood = 1
	MoodBad       Mood = 2
	MoodNeutral   Mood = 3
	MoodGood      Mood = 4
	MoodExcellent Mood = 5
)

// moodInfo holds the presentation attributes associated with each mood level.
type moodInfo struct {
	label string
	emoji string
	color string
}

var moodTable = map[Mood]moodInfo{
	MoodVeryBad:   {label: "Muito Mal", emoji: "😞", color: "bg-red-500"},
	MoodBad:       {label: "Mal", emoji: "🙁", color: "bg-orange-400"},
	MoodNeutral:   {label: "Neutro", emoji: "😐", color: "bg-slate-300"},
	MoodGood:      {label: "Bem", emoji: "🙂", color: "bg-blue-400"},
	MoodExcellent: {label: "Muito Bem", emoji: "😄", color: "bg-emerald-500"},
}

// MoodDisplayOrder is the fixed order moods appear in histograms and
// reports: best first.
var MoodDisplayOrder = [5]Mood{MoodExcellent, MoodGood, MoodNeutral, MoodBad, MoodVeryBad}

// Valid reports whether m is one of the five defined levels.
func (m Mood) Valid() bool {
	_, ok := moodTable[m]
	return ok
}

// Label returns the display label for the mood.
func (m Mood) Label() string {
	return moodTable[m].label
}

// Emoji returns the emoji glyph for the mood.
func (m Mood) Emoji() string {
	return moodTable[m].emoji
}

// Color returns the histogram bar color class for the mood.
func (m Mood) Color() string {
	return moodTable[m].color
}

// ParseMood converts a numeric rank into a Mood, rejecting values outside
// the closed 1..5 set.
func ParseMood(rank int) (Mood, error) {
	m := Mood(rank)
	if !m.Valid() {
		return 0, fmt.Errorf("invalid mood rank %d", rank)
	}
	return m, nil
}
