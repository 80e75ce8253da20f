// Package repositories persists template snapshots. The editing model is
// saved after every mutation and reloaded at process start, so the snapshot
// column always reflects the latest state of the editing session.
package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eyevinn-osaas/ograf-editor/internal/httpkit"
	"github.com/eyevinn-osaas/ograf-editor/internal/models"
)

var ErrTemplateNotFound = errors.New("template not found")
var ErrTemplateExists = errors.New("template id already exists")

// TemplateSummary is the listing row; the snapshot itself is loaded on
// demand.
type TemplateSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type TemplateRepository struct {
	db *pgxpool.Pool
}

func NewTemplateRepository(db *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Create inserts a new template. An existing id yields ErrTemplateExists.
func (r *TemplateRepository) Create(ctx context.Context, snap models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO templates (id, name, description, snapshot, created_at, updated_at)
		VALUES ($1,$2,$3,$4::jsonb,now(),now())
	`, snap.Manifest.ID, snap.Manifest.Name, snap.Manifest.Description, data)

	if err != nil {
		if httpkit.IsUniqueViolation(err) {
			return ErrTemplateExists
		}
		return err
	}
	return nil
}

// Save upserts the snapshot, reviving a soft-deleted row with the same id.
func (r *TemplateRepository) Save(ctx context.Context, snap models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO templates (id, name, description, snapshot, created_at, updated_at)
		VALUES ($1,$2,$3,$4::jsonb,now(),now())
		ON CONFLICT (id) DO UPDATE
		SET name=$2, description=$3, snapshot=$4::jsonb, updated_at=now(), deleted_at=NULL
	`, snap.Manifest.ID, snap.Manifest.Name, snap.Manifest.Description, data)
	return err
}

// Load returns the stored snapshot for id.
func (r *TemplateRepository) Load(ctx context.Context, id string) (models.Snapshot, error) {
	var data []byte
	err := r.db.QueryRow(ctx, `
		SELECT snapshot
		FROM templates
		WHERE id=$1 AND deleted_at IS NULL
	`, id).Scan(&data)

	if err != nil {
		if httpkit.IsNoRows(err) {
			return models.Snapshot{}, ErrTemplateNotFound
		}
		return models.Snapshot{}, err
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return models.Snapshot{}, err
	}
	return snap, nil
}

// List returns summaries of all live templates, newest first.
func (r *TemplateRepository) List(ctx context.Context) ([]TemplateSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM templates
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []TemplateSummary{}
	for rows.Next() {
		var s TemplateSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Exists reports whether a live template with id is stored.
func (r *TemplateRepository) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.db.QueryRow(ctx, `
		SELECT 1 FROM templates WHERE id=$1 AND deleted_at IS NULL
	`, id).Scan(&one)
	if err != nil {
		if httpkit.IsNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Delete soft-deletes a template.
func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE templates SET deleted_at=now() WHERE id=$1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}
	return nil
}
