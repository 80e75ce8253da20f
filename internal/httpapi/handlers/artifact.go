package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eyevinn-osaas/ograf-editor/internal/graphic"
	"github.com/eyevinn-osaas/ograf-editor/internal/httpkit"
)

// GetArtifact serves the generated component source. The redis cache holds
// the text between mutations; on a miss the artifact is regenerated from the
// stored snapshot and the snapshot re-saved so the embedded copy stays
// current.
func (h *Handler) GetArtifact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	templateID := chi.URLParam(r, "templateId")

	if src, ok := h.artifacts.Get(ctx, templateID); ok {
		httpkit.WriteText(w, 200, "text/javascript; charset=utf-8", src)
		return
	}

	snap, ok := h.loadSnapshot(w, r, templateID)
	if !ok {
		return
	}

	tpl, err := graphic.FromSnapshot(snap)
	if err != nil {
		h.log.FromContext(ctx).Error("stored snapshot is invalid", "template_id", templateID, "error", err.Error())
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "stored template is corrupt", nil)
		return
	}

	src, err := tpl.Artifact()
	if err != nil {
		h.log.FromContext(ctx).Error("artifact generation failed", "template_id", templateID, "error", err.Error())
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "artifact generation failed", nil)
		return
	}

	if snap.Artifact != src {
		if err := h.templates.Save(ctx, tpl.Snapshot()); err != nil {
			h.log.FromContext(ctx).Warn("snapshot refresh failed", "error", err.Error())
		}
	}
	if err := h.artifacts.Set(ctx, templateID, src); err != nil {
		h.log.FromContext(ctx).Warn("artifact cache set failed", "error", err.Error())
	}

	httpkit.WriteText(w, 200, "text/javascript; charset=utf-8", src)
}
