package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eyevinn-osaas/ograf-editor/internal/graphic"
	"github.com/eyevinn-osaas/ograf-editor/internal/httpkit"
	"github.com/eyevinn-osaas/ograf-editor/internal/models"
)

type PutPropertyRequest struct {
	Type    string `json:"type"`
	Title   string `json:"title,omitempty"`
	Default any    `json:"default"`
}

// PutProperty adds or replaces one schema property; order of existing
// properties is preserved.
func (h *Handler) PutProperty(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "templateId")
	propName := chi.URLParam(r, "propName")

	var req PutPropertyRequest
	if err := httpkit.DecodeJSON(r, &req); err != nil {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", "invalid json body", nil)
		return
	}
	if req.Title == "" {
		req.Title = propName
	}

	var schema models.Schema
	h.mutateTemplate(w, r, templateID, func(tpl *graphic.Template) error {
		if err := tpl.AddProperty(propName, req.Type, req.Title, req.Default); err != nil {
			return err
		}
		schema = tpl.Manifest().Schema
		return nil
	}, func() any {
		return map[string]any{"schema": schema}
	})
}

// DeleteProperty removes a schema property; a missing name is still a 204.
func (h *Handler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "templateId")
	propName := chi.URLParam(r, "propName")

	h.mutateTemplate(w, r, templateID, func(tpl *graphic.Template) error {
		tpl.RemoveProperty(propName)
		return nil
	}, nil)
}
