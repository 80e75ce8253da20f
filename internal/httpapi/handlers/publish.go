package handlers

import (
	"errors"
	"io"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/eyevinn-osaas/ograf-editor/internal/httpkit"
	"github.com/eyevinn-osaas/ograf-editor/internal/repositories"
)

// PostPublish queues a publish run: a row in the publishes table plus the
// row id on the redis queue. The worker does the upload.
func (h *Handler) PostPublish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	templateID := chi.URLParam(r, "templateId")

	// the publish row references the template, so verify it first
	if _, ok := h.loadSnapshot(w, r, templateID); !ok {
		return
	}

	publishID, err := h.publishes.Enqueue(ctx, templateID)
	if err != nil {
		h.log.FromContext(ctx).Error("publish enqueue failed", "error", err.Error())
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "db insert failed", nil)
		return
	}

	if err := h.queue.Push(ctx, strconv.FormatInt(publishID, 10)); err != nil {
		h.log.FromContext(ctx).Error("queue push failed", "error", err.Error())
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "queue push failed", nil)
		return
	}

	httpkit.WriteJSON(w, 202, map[string]any{
		"publish": map[string]any{
			"id":          publishID,
			"template_id": templateID,
			"status":      "queued",
		},
	})
}

// GetPublish reports the latest publish run of a template.
func (h *Handler) GetPublish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	templateID := chi.URLParam(r, "templateId")

	rec, err := h.publishes.Latest(ctx, templateID)
	if err != nil {
		if errors.Is(err, repositories.ErrNoPublishes) {
			httpkit.WriteErr(w, 404, "NOT_FOUND", "template has no publishes", map[string]any{"template_id": templateID})
			return
		}
		h.log.FromContext(ctx).Error("publish lookup failed", "error", err.Error())
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "db query failed", nil)
		return
	}

	httpkit.WriteJSON(w, 200, map[string]any{"publish": rec})
}

// GetPublishObject streams one object of the template's latest published
// bundle through the storage provider. Only keys the publish actually
// uploaded are served.
func (h *Handler) GetPublishObject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	templateID := chi.URLParam(r, "templateId")
	objectKey := chi.URLParam(r, "*")

	rec, err := h.publishes.Latest(ctx, templateID)
	if err != nil {
		if errors.Is(err, repositories.ErrNoPublishes) {
			httpkit.WriteErr(w, 404, "NOT_FOUND", "template has no publishes", map[string]any{"template_id": templateID})
			return
		}
		h.log.FromContext(ctx).Error("publish lookup failed", "error", err.Error())
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "db query failed", nil)
		return
	}

	if !slices.Contains(rec.ObjectKeys, objectKey) {
		httpkit.WriteErr(w, 404, "NOT_FOUND", "object is not part of the published bundle", map[string]any{
			"template_id": templateID,
			"object_key":  objectKey,
		})
		return
	}

	rc, contentType, size, err := h.sp.GetObject(ctx, objectKey)
	if err != nil {
		h.log.FromContext(ctx).Error("published object read failed", "object_key", objectKey, "error", err.Error())
		httpkit.WriteErr(w, 500, "INTERNAL_ERROR", "storage read failed", nil)
		return
	}
	defer rc.Close()

	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	if size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	}
	w.WriteHeader(200)
	_, _ = io.Copy(w, rc)
}
