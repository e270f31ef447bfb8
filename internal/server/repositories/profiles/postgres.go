package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/senseandsay/internal/common"
	"github.com/dmitrijs2005/senseandsay/internal/dbx"
	"github.com/dmitrijs2005/senseandsay/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	query :=
		`SELECT name, age, preferred_mode, favorite_sound, color_sensitive, goals,
		        daily_breaks, daily_comms, emergency_contact, updated_at
		 FROM profiles
		 WHERE user_id = $1
		 `

	p := &models.Profile{UserID: userID}
	var goals string
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.Name, &p.Age, &p.PreferredMode, &p.FavoriteSound, &p.ColorSensitive, &goals,
		&p.DailyBreaks, &p.DailyComms, &p.EmergencyContact, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if goals != "" {
		if err := json.Unmarshal([]byte(goals), &p.Goals); err != nil {
			return nil, fmt.Errorf("decode goals: %w", err)
		}
	}

	return p, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, p *models.Profile) error {
	goals := p.Goals
	if goals == nil {
		goals = []string{}
	}
	encoded, err := json.Marshal(goals)
	if err != nil {
		return fmt.Errorf("encode goals: %w", err)
	}

	query :=
		`INSERT INTO profiles (user_id, name, age, preferred_mode, favorite_sound, color_sensitive,
		                       goals, daily_breaks, daily_comms, emergency_contact, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now())
		 ON CONFLICT (user_id) DO UPDATE SET
		    name = EXCLUDED.name,
		    age = EXCLUDED.age,
		    preferred_mode = EXCLUDED.preferred_mode,
		    favorite_sound = EXCLUDED.favorite_sound,
		    color_sensitive = EXCLUDED.color_sensitive,
		    goals = EXCLUDED.goals,
		    daily_breaks = EXCLUDED.daily_breaks,
		    daily_comms = EXCLUDED.daily_comms,
		    emergency_contact = EXCLUDED.emergency_contact,
		    updated_at = now()
		 `

	_, err = r.db.ExecContext(ctx, query,
		p.UserID, p.Name, p.Age, p.PreferredMode, p.FavoriteSound, p.ColorSensitive,
		string(encoded), p.DailyBreaks, p.DailyComms, p.EmergencyContact)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID string) error {
	query := `DELETE FROM profiles WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
