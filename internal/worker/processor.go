package worker

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eyevinn-osaas/ograf-editor/internal/cache"
	"github.com/eyevinn-osaas/ograf-editor/internal/graphic"
	"github.com/eyevinn-osaas/ograf-editor/internal/pkg/errors"
	"github.com/eyevinn-osaas/ograf-editor/internal/pkg/logger"
	"github.com/eyevinn-osaas/ograf-editor/internal/ports"
	"github.com/eyevinn-osaas/ograf-editor/internal/repositories"
	"github.com/eyevinn-osaas/ograf-editor/internal/storage"
)

// Processor turns one queued publish into an uploaded artifact bundle:
// manifest.json plus the generated component module.
type Processor struct {
	pool      *pgxpool.Pool
	sp        storage.Provider
	log       *logger.Logger
	templates *repositories.TemplateRepository
	publishes *repositories.PublishRepository
	artifacts *cache.ArtifactCache
}

func NewProcessor(d Deps) *Processor {
	log := d.Log
	if log == nil {
		log = logger.NewDefault()
	}

	return &Processor{
		pool:      d.Pool,
		sp:        d.SP,
		log:       log.WithComponent("processor"),
		templates: repositories.NewTemplateRepository(d.Pool),
		publishes: repositories.NewPublishRepository(d.Pool),
		artifacts: cache.NewArtifactCache(d.RDB),
	}
}

// ProcessJob handles one publish job; the payload is the publish row id.
func (p *Processor) ProcessJob(ctx context.Context, payload string) error {
	publishID, err := strconv.ParseInt(strings.TrimSpace(payload), 10, 64)
	if err != nil {
		return errors.Wrap(err, "processor.parse", "malformed job payload")
	}

	templateID, err := p.fetchTemplateID(ctx, publishID)
	if err != nil {
		return errors.Wrap(err, "processor.fetch", "failed to resolve publish job")
	}

	ctx = logger.ContextWithTemplateID(ctx, templateID)
	log := p.log.FromContext(ctx)

	keys, err := p.publish(ctx, templateID)
	if err != nil {
		if markErr := p.publishes.MarkFailed(ctx, publishID, err.Error()); markErr != nil {
			log.Error("failed to record publish failure", "error", markErr.Error())
		}
		return err
	}

	if err := p.publishes.MarkDone(ctx, publishID, keys); err != nil {
		return errors.Wrap(err, "processor.done", "failed to record publish result")
	}

	log.Info("template published", "objects", keys)
	return nil
}

// publish regenerates the artifact from the stored snapshot and uploads the
// bundle. Regeneration is deterministic, so a re-run of the same snapshot
// overwrites the bundle with identical bytes.
func (p *Processor) publish(ctx context.Context, templateID string) ([]string, error) {
	snap, err := p.templates.Load(ctx, templateID)
	if err != nil {
		return nil, errors.Wrap(err, "processor.load", "failed to load template snapshot")
	}

	tpl, err := graphic.FromSnapshot(snap)
	if err != nil {
		return nil, errors.Wrap(err, "processor.model", "stored snapshot is not a valid template")
	}

	artifact, err := tpl.Artifact()
	if err != nil {
		return nil, errors.Wrap(err, "processor.generate", "artifact generation failed")
	}

	manifest, err := json.MarshalIndent(tpl.Manifest(), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "processor.manifest", "manifest encoding failed")
	}

	uploads := []struct {
		key         string
		contentType string
		body        string
	}{
		{templateID + "/manifest.json", "application/json", string(manifest)},
		{templateID + "/" + tpl.Manifest().Main, "text/javascript", artifact},
	}

	keys := make([]string, 0, len(uploads))
	for _, up := range uploads {
		out, err := p.sp.PutObject(ctx, ports.PutObjectInput{
			ObjectKey:   up.key,
			ContentType: up.contentType,
			Reader:      strings.NewReader(up.body),
			Size:        int64(len(up.body)),
		})
		if err != nil {
			return nil, errors.Wrapf(err, "processor.upload", "upload of %s failed", up.key)
		}
		keys = append(keys, out.ObjectKey)
	}

	// refresh the read-side cache while we hold the fresh text
	if err := p.artifacts.Set(ctx, templateID, artifact); err != nil {
		p.log.FromContext(ctx).Warn("artifact cache refresh failed", "error", err.Error())
	}

	return keys, nil
}

func (p *Processor) fetchTemplateID(ctx context.Context, publishID int64) (string, error) {
	var templateID string
	err := p.pool.QueryRow(ctx, `
		SELECT template_id FROM publishes WHERE id=$1
	`, publishID).Scan(&templateID)
	return templateID, err
}
