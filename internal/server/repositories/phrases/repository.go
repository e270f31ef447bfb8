// Package phrases stores each user's phrases subcollection.
package phrases

import (
	"context"

	"github.com/dmitrijs2005/senseandsay/internal/server/models"
)

type Repository interface {
	// List returns the user's phrases in creation order.
	List(ctx context.Context, userID string) ([]models.Phrase, error)
	// Upsert writes the phrase under (UserID, ID), replacing any existing one.
	Upsert(ctx context.Context, p *models.Phrase) error
	// Delete is a no-op for a missing ID.
	Delete(ctx context.Context, userID, id string) error
	DeleteAll(ctx context.Context, userID string) error
}
