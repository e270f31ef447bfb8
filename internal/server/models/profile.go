package models

import "time"

// Profile is the per-user preferences document. It is always written whole.
type Profile struct {
	UserID           string
	Name             string
	Age              string
	PreferredMode    string
	FavoriteSound    string
	ColorSensitive   bool
	Goals            []string
	DailyBreaks      int
	DailyComms       int
	EmergencyContact string
	UpdatedAt        time.Time
}
