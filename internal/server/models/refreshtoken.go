package models

import "time"

type RefreshToken struct {
	UserID   string
	Token    string
	AuthTime time.Time
	Expires  time.Time
}
