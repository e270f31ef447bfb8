// Package models defines the client-side records of Sense & Say: phrases on
// the board and the user's profile preferences.
package models

import "strings"

// PaletteSize is the number of card colors a phrase can use.
const PaletteSize = 5

// DefaultIconName is given to phrases the user types in.
const DefaultIconName = "textformat"

// Phrase is one tappable card on the board. ID never changes after creation;
// matching across lists is by text, ignoring case.
type Phrase struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	ColorIndex int    `json:"colorIndex"`
	IconName   string `json:"iconName,omitempty"`
}

// PaletteIndex is the card color to draw. Stored indexes past the palette
// wrap around.
func (p Phrase) PaletteIndex() int {
	if p.ColorIndex < 0 {
		return 0
	}
	return p.ColorIndex % PaletteSize
}

// TextKey is the comparison key used for duplicate detection and merging.
func TextKey(text string) string {
	return strings.ToLower(text)
}

// SameText reports whether two phrases match case-insensitively.
func (p Phrase) SameText(other Phrase) bool {
	return TextKey(p.Text) == TextKey(other.Text)
}

// ContainsText reports whether list holds a phrase whose text matches text
// case-insensitively.
func ContainsText(list []Phrase, text string) bool {
	key := TextKey(text)
	for _, p := range list {
		if TextKey(p.Text) == key {
			return true
		}
	}
	return false
}
