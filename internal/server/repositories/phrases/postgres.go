package phrases

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/senseandsay/internal/dbx"
	"github.com/dmitrijs2005/senseandsay/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context, userID string) ([]models.Phrase, error) {
	query :=
		`SELECT id, text, color_index, icon_name, created_at
		 FROM phrases
		 WHERE user_id = $1
		 ORDER BY created_at, id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Phrase, 0)
	for rows.Next() {
		p := models.Phrase{UserID: userID}
		if err := rows.Scan(&p.ID, &p.Text, &p.ColorIndex, &p.IconName, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, p *models.Phrase) error {
	query :=
		`INSERT INTO phrases (user_id, id, text, color_index, icon_name)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, id) DO UPDATE SET
		    text = EXCLUDED.text,
		    color_index = EXCLUDED.color_index,
		    icon_name = EXCLUDED.icon_name
		 `
	if _, err := r.db.ExecContext(ctx, query, p.UserID, p.ID, p.Text, p.ColorIndex, p.IconName); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM phrases WHERE user_id = $1 AND id = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteAll(ctx context.Context, userID string) error {
	query := `DELETE FROM phrases WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
