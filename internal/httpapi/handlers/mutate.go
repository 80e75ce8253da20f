package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eyevinn-osaas/ograf-editor/internal/graphic"
	"github.com/eyevinn-osaas/ograf-editor/internal/httpkit"
)

var errElementNotFound = errors.New("element not found")

// mutateTemplate is the shared load-mutate-save path of every editing
// endpoint: rebuild the model from its stored snapshot, apply the mutation,
// persist the new snapshot and drop the cached artifact. body, when non-nil,
// supplies the 200 response payload; a nil body yields 204.
func (h *Handler) mutateTemplate(w http.ResponseWriter, r *http.Request, templateID string, mutate func(*graphic.Template) error, body func() any) {
	ctx := r.Context()

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

	if err := mutate(tpl); err != nil {
		if errors.Is(err, errElementNotFound) {
			httpkit.WriteErr(w, 404, "NOT_FOUND", "element not found", map[string]any{
				"template_id": templateID,
				"element_id":  chi.URLParam(r, "elementId"),
			})
			return
		}
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	if err := h.templates.Save(ctx, tpl.Snapshot()); err != nil {
		h.log.FromContext(ctx).Error("template save failed", "error", err.Error())
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "db upsert failed", nil)
		return
	}
	if err := h.artifacts.Invalidate(ctx, templateID); err != nil {
		h.log.FromContext(ctx).Warn("artifact cache invalidation failed", "error", err.Error())
	}

	if body == nil {
		w.WriteHeader(204)
		return
	}
	httpkit.WriteJSON(w, 200, body())
}
