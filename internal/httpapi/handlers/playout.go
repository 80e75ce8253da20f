package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/eyevinn-osaas/ograf-editor/internal/httpkit"
	"github.com/eyevinn-osaas/ograf-editor/internal/pkg/errors"
)

type PlayoutRequest struct {
	SkipAnimation bool           `json:"skipAnimation,omitempty"`
	Action        string         `json:"action,omitempty"`
	Data          map[string]any `json:"data,omitempty"`
}

// PlayoutLoad mounts the template's current snapshot in the sandbox,
// replacing any previous instance of the same template.
func (h *Handler) PlayoutLoad(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "templateId")

	snap, ok := h.loadSnapshot(w, r, templateID)
	if !ok {
		return
	}

	<-h.host.Load(snap)
	httpkit.WriteJSON(w, 200, map[string]any{"state": "loaded"})
}

func (h *Handler) PlayoutPlay(w http.ResponseWriter, r *http.Request) {
	h.playoutCommand(w, r, func(templateID string, req PlayoutRequest) (<-chan struct{}, error) {
		return h.host.Play(templateID, req.SkipAnimation)
	})
}

func (h *Handler) PlayoutStop(w http.ResponseWriter, r *http.Request) {
	h.playoutCommand(w, r, func(templateID string, req PlayoutRequest) (<-chan struct{}, error) {
		return h.host.Stop(templateID, req.SkipAnimation)
	})
}

func (h *Handler) PlayoutUpdate(w http.ResponseWriter, r *http.Request) {
	h.playoutCommand(w, r, func(templateID string, req PlayoutRequest) (<-chan struct{}, error) {
		return h.host.Update(templateID, req.Data)
	})
}

// PlayoutAction invokes a custom action by name. Unknown actions are
// accepted and complete without effect.
func (h *Handler) PlayoutAction(w http.ResponseWriter, r *http.Request) {
	h.playoutCommand(w, r, func(templateID string, req PlayoutRequest) (<-chan struct{}, error) {
		name := strings.TrimSpace(req.Action)
		if name == "" {
			return nil, errors.Validation("action name is required")
		}
		return h.host.CustomAction(templateID, name, req.Data)
	})
}

// playoutCommand decodes the shared request shape, issues the command and
// answers 202 immediately: animated transitions settle on the sandbox clock,
// not the request's.
func (h *Handler) playoutCommand(w http.ResponseWriter, r *http.Request, cmd func(string, PlayoutRequest) (<-chan struct{}, error)) {
	templateID := chi.URLParam(r, "templateId")

	var req PlayoutRequest
	if r.ContentLength != 0 {
		if err := httpkit.DecodeJSON(r, &req); err != nil {
			httpkit.WriteErr(w, 400, "VALIDATION_ERROR", "invalid json body", nil)
			return
		}
	}

	if _, err := cmd(templateID, req); err != nil {
		if errors.IsNotFound(err) {
			httpkit.WriteErr(w, 404, "NOT_FOUND", "template is not loaded", map[string]any{"template_id": templateID})
			return
		}
		httpkit.WriteErr(w, errors.GetHTTPStatus(err), string(errors.GetCode(err)), err.Error(), nil)
		return
	}

	httpkit.WriteJSON(w, 202, map[string]any{"accepted": true})
}
