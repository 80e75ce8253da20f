package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eyevinn-osaas/ograf-editor/internal/graphic"
	"github.com/eyevinn-osaas/ograf-editor/internal/httpkit"
	"github.com/eyevinn-osaas/ograf-editor/internal/models"
)

// PostElement adds an element to the template canvas.
func (h *Handler) PostElement(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "templateId")

	var spec graphic.ElementSpec
	if err := httpkit.DecodeJSON(r, &spec); err != nil {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", "invalid json body", nil)
		return
	}

	var added models.Element
	h.mutateTemplate(w, r, templateID, func(tpl *graphic.Template) error {
		el, err := tpl.AddElement(spec)
		if err != nil {
			return err
		}
		added = el
		return nil
	}, func() any {
		return map[string]any{"element": added}
	})
}

// PatchElement applies a partial update to one element. An unknown element id
// is a 404: the HTTP surface reports what the model silently tolerates.
func (h *Handler) PatchElement(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "templateId")
	elementID := chi.URLParam(r, "elementId")

	var patch graphic.ElementPatch
	if err := httpkit.DecodeJSON(r, &patch); err != nil {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", "invalid json body", nil)
		return
	}

	var updated models.Element
	h.mutateTemplate(w, r, templateID, func(tpl *graphic.Template) error {
		if _, ok := tpl.ElementByID(elementID); !ok {
			return errElementNotFound
		}
		if err := tpl.UpdateElement(elementID, patch); err != nil {
			return err
		}
		updated, _ = tpl.ElementByID(elementID)
		return nil
	}, func() any {
		return map[string]any{"element": updated}
	})
}

// DeleteElement removes an element from the canvas.
func (h *Handler) DeleteElement(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "templateId")
	elementID := chi.URLParam(r, "elementId")

	h.mutateTemplate(w, r, templateID, func(tpl *graphic.Template) error {
		if !tpl.RemoveElement(elementID) {
			return errElementNotFound
		}
		return nil
	}, nil)
}
