package services

import (
	"slices"

	"github.com/dmitrijs2005/senseandsay/internal/client/models"
)

// Merge combines the device list with the account list. Each cloud phrase
// replaces the first merged entry with the same text (ignoring case) or is
// appended when there is none. Local-only phrases keep their order, ids play
// no part in matching, and neither input is modified.
func Merge(local, cloud []models.Phrase) []models.Phrase {
	merged := slices.Clone(local)
	if merged == nil {
		merged = make([]models.Phrase, 0, len(cloud))
	}

	for _, c := range cloud {
		i := slices.IndexFunc(merged, c.SameText)
		if i >= 0 {
			merged[i] = c
			continue
		}
		merged = append(merged, c)
	}
	return merged
}
