package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eyevinn-osaas/ograf-editor/internal/httpkit"
)

// Publish statuses.
const (
	PublishQueued = "queued"
	PublishDone   = "done"
	PublishFailed = "failed"
)

// ErrNoPublishes means the template has never been published.
var ErrNoPublishes = errors.New("template has no publishes")

// PublishRecord tracks one publish run of a template.
type PublishRecord struct {
	ID         int64      `json:"id"`
	TemplateID string     `json:"template_id"`
	Status     string     `json:"status"`
	ObjectKeys []string   `json:"object_keys,omitempty"`
	Error      string     `json:"error,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

type PublishRepository struct {
	db *pgxpool.Pool
}

func NewPublishRepository(db *pgxpool.Pool) *PublishRepository {
	return &PublishRepository{db: db}
}

// Enqueue records a queued publish and returns its id.
func (r *PublishRepository) Enqueue(ctx context.Context, templateID string) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO publishes (template_id, status)
		VALUES ($1,$2)
		RETURNING id
	`, templateID, PublishQueued).Scan(&id)
	return id, err
}

// MarkDone records the uploaded object keys and closes the run.
func (r *PublishRepository) MarkDone(ctx context.Context, id int64, objectKeys []string) error {
	keys, err := json.Marshal(objectKeys)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		UPDATE publishes SET status=$2, object_keys=$3::jsonb, finished_at=now() WHERE id=$1
	`, id, PublishDone, keys)
	return err
}

// MarkFailed closes the run with an error message.
func (r *PublishRepository) MarkFailed(ctx context.Context, id int64, message string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE publishes SET status=$2, error=$3, finished_at=now() WHERE id=$1
	`, id, PublishFailed, message)
	return err
}

// Latest returns the most recent publish for a template.
func (r *PublishRepository) Latest(ctx context.Context, templateID string) (PublishRecord, error) {
	var rec PublishRecord
	var keys []byte
	err := r.db.QueryRow(ctx, `
		SELECT id, template_id, status, object_keys, COALESCE(error, ''), created_at, finished_at
		FROM publishes
		WHERE template_id=$1
		ORDER BY created_at DESC
		LIMIT 1
	`, templateID).Scan(&rec.ID, &rec.TemplateID, &rec.Status, &keys, &rec.Error, &rec.CreatedAt, &rec.FinishedAt)

	if err != nil {
		if httpkit.IsNoRows(err) {
			return PublishRecord{}, ErrNoPublishes
		}
		return PublishRecord{}, err
	}
	if len(keys) > 0 {
		_ = json.Unmarshal(keys, &rec.ObjectKeys)
	}
	return rec, nil
}
