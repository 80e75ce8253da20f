package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/eyevinn-osaas/ograf-editor/internal/graphic"
	"github.com/eyevinn-osaas/ograf-editor/internal/httpkit"
	"github.com/eyevinn-osaas/ograf-editor/internal/models"
	"github.com/eyevinn-osaas/ograf-editor/internal/repositories"
)

type CreateTemplateRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Preset      string `json:"preset"`
}

// PostTemplate creates a new template from a preset.
func (h *Handler) PostTemplate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateTemplateRequest
	if err := httpkit.DecodeJSON(r, &req); err != nil {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", "invalid json body", nil)
		return
	}

	req.ID = strings.TrimSpace(req.ID)
	if !models.IsSlug(req.ID) {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", "id must be a slug (lowercase letters, digits, - and _)", map[string]any{"field": "id"})
		return
	}

	preset, err := graphic.ParsePreset(req.Preset)
	if err != nil {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", err.Error(), map[string]any{"field": "preset"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = req.ID
	}

	tpl, err := graphic.NewFromPreset(preset, req.ID, name, req.Description)
	if err != nil {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	if err := h.templates.Create(ctx, tpl.Snapshot()); err != nil {
		if errors.Is(err, repositories.ErrTemplateExists) {
			httpkit.WriteErr(w, 409, "CONFLICT", "template id already exists", map[string]any{"template_id": req.ID})
			return
		}
		h.log.FromContext(ctx).Error("template insert failed", "error", err.Error())
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "db insert failed", nil)
		return
	}

	httpkit.WriteJSON(w, 201, map[string]any{"template": tpl.Snapshot()})
}

func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.templates.List(ctx)
	if err != nil {
		h.log.FromContext(ctx).Error("template list failed", "error", err.Error())
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "db query failed", nil)
		return
	}

	httpkit.WriteJSON(w, 200, map[string]any{"templates": items})
}

func (h *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "templateId")

	snap, ok := h.loadSnapshot(w, r, templateID)
	if !ok {
		return
	}

	httpkit.WriteJSON(w, 200, map[string]any{"template": snap})
}

func (h *Handler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	templateID := chi.URLParam(r, "templateId")

	if err := h.templates.Delete(ctx, templateID); err != nil {
		if errors.Is(err, repositories.ErrTemplateNotFound) {
			writeTemplateNotFound(w, templateID)
			return
		}
		h.log.FromContext(ctx).Error("template delete failed", "error", err.Error())
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "db delete failed", nil)
		return
	}

	// a deleted template has no playout presence or cached artifact
	h.host.Teardown(templateID)
	if err := h.artifacts.Invalidate(ctx, templateID); err != nil {
		h.log.FromContext(ctx).Warn("artifact cache invalidation failed", "error", err.Error())
	}

	// best-effort removal of the latest published bundle
	if rec, err := h.publishes.Latest(ctx, templateID); err == nil {
		for _, key := range rec.ObjectKeys {
			if err := h.sp.DeleteObject(ctx, key); err != nil {
				h.log.FromContext(ctx).Warn("published object delete failed", "object_key", key, "error", err.Error())
			}
		}
	}

	w.WriteHeader(204)
}

// ImportTemplate ingests a serialized snapshot. The on_conflict query
// parameter picks the policy when the id is already taken: replace, skip or
// rename (default skip).
func (h *Handler) ImportTemplate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	policy := graphic.ConflictSkip
	if raw := strings.TrimSpace(r.URL.Query().Get("on_conflict")); raw != "" {
		var err error
		policy, err = graphic.ParseConflictPolicy(raw)
		if err != nil {
			httpkit.WriteErr(w, 400, "VALIDATION_ERROR", err.Error(), map[string]any{"field": "on_conflict"})
			return
		}
	}

	var snap models.Snapshot
	if err := httpkit.DecodeJSON(r, &snap); err != nil {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", "invalid json body", nil)
		return
	}

	tpl, err := graphic.FromSnapshot(snap)
	if err != nil {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	exists, err := h.templates.Exists(ctx, tpl.ID())
	if err != nil {
		h.log.FromContext(ctx).Error("template lookup failed", "error", err.Error())
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "db query failed", nil)
		return
	}

	outcome := "created"
	if exists {
		switch policy {
		case graphic.ConflictSkip:
			httpkit.WriteJSON(w, 200, map[string]any{
				"outcome":     "skipped",
				"template_id": tpl.ID(),
			})
			return
		case graphic.ConflictReplace:
			outcome = "replaced"
		case graphic.ConflictRename:
			if err := tpl.Rename(graphic.RenamedID(tpl.ID())); err != nil {
				httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "rename failed", nil)
				return
			}
			outcome = "renamed"
		}
	}

	if err := h.templates.Save(ctx, tpl.Snapshot()); err != nil {
		h.log.FromContext(ctx).Error("template import save failed", "error", err.Error())
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "db upsert failed", nil)
		return
	}
	if outcome == "replaced" {
		if err := h.artifacts.Invalidate(ctx, tpl.ID()); err != nil {
			h.log.FromContext(ctx).Warn("artifact cache invalidation failed", "error", err.Error())
		}
	}

	httpkit.WriteJSON(w, 201, map[string]any{
		"outcome":     outcome,
		"template_id": tpl.ID(),
		"template":    tpl.Snapshot(),
	})
}

// ExportTemplate returns the full snapshot as a download.
func (h *Handler) ExportTemplate(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "templateId")

	snap, ok := h.loadSnapshot(w, r, templateID)
	if !ok {
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+templateID+`.json"`)
	httpkit.WriteJSON(w, 200, snap)
}

// loadSnapshot fetches a template snapshot and writes the error response
// itself on failure.
func (h *Handler) loadSnapshot(w http.ResponseWriter, r *http.Request, templateID string) (models.Snapshot, bool) {
	ctx := r.Context()

	snap, err := h.templates.Load(ctx, templateID)
	if err != nil {
		if errors.Is(err, repositories.ErrTemplateNotFound) {
			writeTemplateNotFound(w, templateID)
			return models.Snapshot{}, false
		}
		h.log.FromContext(ctx).Error("template load failed", "error", err.Error())
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "db query failed", nil)
		return models.Snapshot{}, false
	}
	return snap, true
}

func writeTemplateNotFound(w http.ResponseWriter, templateID string) {
	httpkit.WriteErr(w, 404, "NOT_FOUND", "template not found", map[string]any{"template_id": templateID})
}
