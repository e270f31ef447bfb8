package models

import "time"

// Phrase is one entry of a user's phrases subcollection.
type Phrase struct {
	UserID     string
	ID         string
	Text       string
	ColorIndex int
	IconName   string
	CreatedAt  time.Time
}
