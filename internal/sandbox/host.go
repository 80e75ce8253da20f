// Package sandbox hosts playing graphics. It owns the component-tag
// registry and keeps exactly one instance per active template, relaying
// load/play/stop/update commands to it in the order the editor issues them.
package sandbox

import (
	"sync"

	"github.com/eyevinn-osaas/ograf-editor/internal/models"
	"github.com/eyevinn-osaas/ograf-editor/internal/pkg/errors"
	"github.com/eyevinn-osaas/ograf-editor/internal/pkg/logger"
	"github.com/eyevinn-osaas/ograf-editor/internal/player"
)

type Host struct {
	mu        sync.Mutex
	registry  *player.Registry
	sched     player.Scheduler
	instances map[string]*player.Instance
	log       *logger.Logger
}

// NewHost builds a sandbox. A nil scheduler selects the wall clock.
func NewHost(sched player.Scheduler, log *logger.Logger) *Host {
	if sched == nil {
		sched = player.SystemScheduler()
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &Host{
		registry:  player.NewRegistry(),
		sched:     sched,
		instances: map[string]*player.Instance{},
		log:       log.WithComponent("sandbox"),
	}
}

// Load (re)registers the template's tag and loads a fresh instance for it,
// replacing any previous instance of the same template. The returned channel
// closes once the instance is loaded.
func (h *Host) Load(snap models.Snapshot) <-chan struct{} {
	h.mu.Lock()
	defer h.mu.Unlock()

	tag := snap.Manifest.ID + "-graphic"
	sched := h.sched
	h.registry.Redefine(tag, func() *player.Instance {
		return player.NewInstance(snap, sched)
	})

	if old, ok := h.instances[snap.Manifest.ID]; ok {
		old.Dispose()
	}

	factory, _ := h.registry.Get(tag)
	in := factory()
	h.instances[snap.Manifest.ID] = in

	h.log.Debug("instance loaded", "template_id", snap.Manifest.ID, "tag", tag)
	return in.Load()
}

// Play relays a play command to the template's instance.
func (h *Host) Play(templateID string, skipAnimation bool) (<-chan struct{}, error) {
	in, err := h.instance(templateID)
	if err != nil {
		return nil, err
	}
	return in.Play(skipAnimation), nil
}

// Stop relays a stop command to the template's instance.
func (h *Host) Stop(templateID string, skipAnimation bool) (<-chan struct{}, error) {
	in, err := h.instance(templateID)
	if err != nil {
		return nil, err
	}
	return in.Stop(skipAnimation), nil
}

// Update relays a data update to the template's instance.
func (h *Host) Update(templateID string, data map[string]any) (<-chan struct{}, error) {
	in, err := h.instance(templateID)
	if err != nil {
		return nil, err
	}
	return in.Update(data), nil
}

// CustomAction relays a named action to the template's instance.
func (h *Host) CustomAction(templateID, name string, data map[string]any) (<-chan struct{}, error) {
	in, err := h.instance(templateID)
	if err != nil {
		return nil, err
	}
	return in.CustomAction(name, data), nil
}

// Instance returns the live instance for a template, if loaded.
func (h *Host) Instance(templateID string) (*player.Instance, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	in, ok := h.instances[templateID]
	return in, ok
}

// Teardown disposes the template's instance and drops its tag registration.
// Unknown templates are a no-op.
func (h *Host) Teardown(templateID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if in, ok := h.instances[templateID]; ok {
		in.Dispose()
		delete(h.instances, templateID)
	}
	h.registry.Remove(templateID + "-graphic")
	h.log.Debug("instance torn down", "template_id", templateID)
}

// Tags lists registered component tags.
func (h *Host) Tags() []string {
	return h.registry.Tags()
}

func (h *Host) instance(templateID string) (*player.Instance, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	in, ok := h.instances[templateID]
	if !ok {
		return nil, errors.NotFound("instance", templateID)
	}
	return in, nil
}
