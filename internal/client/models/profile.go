package models

import "fmt"

// Communication modes.
const (
	ModeTextToSpeech = "Text-to-Speech"
	ModeVisualCards  = "Visual Cards"
)

// Ambient sounds.
const (
	SoundCalm       = "Calm"
	SoundWhiteNoise = "White Noise"
	SoundRain       = "Rain"
)

var (
	Modes  = []string{ModeTextToSpeech, ModeVisualCards}
	Sounds = []string{SoundCalm, SoundWhiteNoise, SoundRain}
)

// Allowed daily target ranges.
const (
	MinDailyBreaks = 1
	MaxDailyBreaks = 10
	MinDailyComms  = 1
	MaxDailyComms  = 20
)

// Profile holds the user's preferences. It is always saved as a whole.
type Profile struct {
	Name             string
	Age              string
	PreferredMode    string
	FavoriteSound    string
	ColorSensitive   bool
	Goals            []string
	DailyBreaks      int
	DailyComms       int
	EmergencyContact string
}

// DefaultProfile is what a user without a stored profile sees.
func DefaultProfile() Profile {
	return Profile{
		PreferredMode: ModeTextToSpeech,
		FavoriteSound: SoundCalm,
		Goals:         []string{},
		DailyBreaks:   3,
		DailyComms:    5,
	}
}

// EnlargeCards is true when the board should show bigger cards.
func (p Profile) EnlargeCards() bool {
	return p.PreferredMode == ModeVisualCards || p.ColorSensitive
}

// Validate checks enumerated fields and daily target ranges.
func (p Profile) Validate() error {
	if !oneOf(p.PreferredMode, Modes) {
		return fmt.Errorf("preferred mode must be one of %q", Modes)
	}
	if !oneOf(p.FavoriteSound, Sounds) {
		return fmt.Errorf("favorite sound must be one of %q", Sounds)
	}
	if p.DailyBreaks < MinDailyBreaks || p.DailyBreaks > MaxDailyBreaks {
		return fmt.Errorf("daily breaks must be between %d and %d", MinDailyBreaks, MaxDailyBreaks)
	}
	if p.DailyComms < MinDailyComms || p.DailyComms > MaxDailyComms {
		return fmt.Errorf("daily communications must be between %d and %d", MinDailyComms, MaxDailyComms)
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}
