package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eyevinn-osaas/ograf-editor/internal/graphic"
	"github.com/eyevinn-osaas/ograf-editor/internal/httpkit"
	"github.com/eyevinn-osaas/ograf-editor/internal/models"
)

type PatchAnimationRequest struct {
	SlideInDuration   *int    `json:"slideInDuration,omitempty"`
	SlideOutDuration  *int    `json:"slideOutDuration,omitempty"`
	SlideInType       *string `json:"slideInType,omitempty"`
	SlideOutType      *string `json:"slideOutType,omitempty"`
	SlideInDirection  *string `json:"slideInDirection,omitempty"`
	SlideOutDirection *string `json:"slideOutDirection,omitempty"`
}

// PatchAnimation merges the request into the current animation settings and
// validates the result as a whole.
func (h *Handler) PatchAnimation(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "templateId")

	var req PatchAnimationRequest
	if err := httpkit.DecodeJSON(r, &req); err != nil {
		httpkit.WriteErr(w, 400, "VALIDATION_ERROR", "invalid json body", nil)
		return
	}

	var settings models.AnimationSettings
	h.mutateTemplate(w, r, templateID, func(tpl *graphic.Template) error {
		s := tpl.Animation()
		if req.SlideInDuration != nil {
			s.SlideInDuration = *req.SlideInDuration
		}
		if req.SlideOutDuration != nil {
			s.SlideOutDuration = *req.SlideOutDuration
		}
		if req.SlideInType != nil {
			s.SlideInType = *req.SlideInType
		}
		if req.SlideOutType != nil {
			s.SlideOutType = *req.SlideOutType
		}
		if req.SlideInDirection != nil {
			s.SlideInDirection = *req.SlideInDirection
		}
		if req.SlideOutDirection != nil {
			s.SlideOutDirection = *req.SlideOutDirection
		}

		if err := tpl.SetAnimation(s); err != nil {
			return err
		}
		settings = tpl.Animation()
		return nil
	}, func() any {
		return map[string]any{"animation": settings}
	})
}
