// Package profiles stores the per-user preferences document.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/senseandsay/internal/server/models"
)

type Repository interface {
	// Get returns common.ErrorNotFound when the user has never saved a profile.
	Get(ctx context.Context, userID string) (*models.Profile, error)
	// Upsert replaces the whole document.
	Upsert(ctx context.Context, p *models.Profile) error
	Delete(ctx context.Context, userID string) error
}
