// Package graphic holds the mutable editing model of a template: manifest,
// elements and animation settings, plus the mutators the editor drives. The
// model caches its generated artifact and invalidates the cache on every
// mutation; regeneration happens lazily on the next Artifact call.
//
// A template has a single logical owner (the editing session) and carries no
// internal locking. Wrap it behind the owning goroutine if shared.
package graphic

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/eyevinn-osaas/ograf-editor/internal/codegen"
	"github.com/eyevinn-osaas/ograf-editor/internal/models"
)

// Template is the in-memory editing model.
type Template struct {
	manifest  models.Manifest
	elements  []models.Element
	animation models.AnimationSettings

	artifact      string
	artifactValid bool
}

// ElementSpec describes a new element for AddElement. The id is always
// assigned by the model.
type ElementSpec struct {
	Type    string            `json:"type"`
	X       float64           `json:"x"`
	Y       float64           `json:"y"`
	Width   float64           `json:"width"`
	Height  float64           `json:"height"`
	Content string            `json:"content,omitempty"`
	Style   map[string]string `json:"style,omitempty"`
}

// ElementPatch is a partial element update; nil fields are left untouched.
type ElementPatch struct {
	Type    *string            `json:"type,omitempty"`
	X       *float64           `json:"x,omitempty"`
	Y       *float64           `json:"y,omitempty"`
	Width   *float64           `json:"width,omitempty"`
	Height  *float64           `json:"height,omitempty"`
	Content *string            `json:"content,omitempty"`
	Style   *map[string]string `json:"style,omitempty"`
}

// ID returns the template's manifest id.
func (t *Template) ID() string {
	return t.manifest.ID
}

// Manifest returns a copy of the manifest.
func (t *Template) Manifest() models.Manifest {
	m := t.manifest
	m.Schema.Properties = t.manifest.Schema.Properties.Clone()
	m.CustomActions = append([]models.CustomAction(nil), t.manifest.CustomActions...)
	return m
}

// Elements returns a copy of the element list in canvas order.
func (t *Template) Elements() []models.Element {
	out := make([]models.Element, len(t.elements))
	for i, el := range t.elements {
		out[i] = el.Clone()
	}
	return out
}

// Animation returns the current animation settings.
func (t *Template) Animation() models.AnimationSettings {
	return t.animation
}

// AddElement appends a new element with a freshly generated unique id and
// returns it.
func (t *Template) AddElement(spec ElementSpec) (models.Element, error) {
	if !models.ValidElementType(spec.Type) {
		return models.Element{}, fmt.Errorf("graphic: unknown element type %q", spec.Type)
	}

	el := models.Element{
		ID:      uuid.NewString(),
		Type:    spec.Type,
		X:       spec.X,
		Y:       spec.Y,
		Width:   spec.Width,
		Height:  spec.Height,
		Content: spec.Content,
		Style:   spec.Style,
	}
	if !el.GeometryFinite() {
		return models.Element{}, fmt.Errorf("graphic: element geometry must be finite")
	}

	t.elements = append(t.elements, el)
	t.invalidate()
	return el.Clone(), nil
}

// RemoveElement deletes the element with the given id and reports whether it
// existed.
func (t *Template) RemoveElement(id string) bool {
	for i, el := range t.elements {
		if el.ID == id {
			t.elements = append(t.elements[:i], t.elements[i+1:]...)
			t.invalidate()
			return true
		}
	}
	return false
}

// ElementByID looks up an element. A missing id is not an error.
func (t *Template) ElementByID(id string) (models.Element, bool) {
	for _, el := range t.elements {
		if el.ID == id {
			return el.Clone(), true
		}
	}
	return models.Element{}, false
}

// UpdateElement merges patch into the matching element. An unknown id is a
// silent no-op; callers that need existence feedback check ElementByID first.
func (t *Template) UpdateElement(id string, patch ElementPatch) error {
	for i := range t.elements {
		if t.elements[i].ID != id {
			continue
		}

		el := t.elements[i].Clone()
		if patch.Type != nil {
			if !models.ValidElementType(*patch.Type) {
				return fmt.Errorf("graphic: unknown element type %q", *patch.Type)
			}
			el.Type = *patch.Type
		}
		if patch.X != nil {
			el.X = *patch.X
		}
		if patch.Y != nil {
			el.Y = *patch.Y
		}
		if patch.Width != nil {
			el.Width = *patch.Width
		}
		if patch.Height != nil {
			el.Height = *patch.Height
		}
		if patch.Content != nil {
			el.Content = *patch.Content
		}
		if patch.Style != nil {
			el.Style = *patch.Style
		}
		if !el.GeometryFinite() {
			return fmt.Errorf("graphic: element geometry must be finite")
		}

		t.elements[i] = el
		t.invalidate()
		return nil
	}
	return nil
}

// AddProperty adds or replaces a schema property.
func (t *Template) AddProperty(name, typ, title string, def any) error {
	if name == "" {
		return fmt.Errorf("graphic: property name is required")
	}
	switch typ {
	case models.PropString, models.PropNumber, models.PropBoolean:
	default:
		return fmt.Errorf("graphic: unknown property type %q", typ)
	}

	t.manifest.Schema.Properties.Set(name, models.SchemaProperty{
		Type:    typ,
		Title:   title,
		Default: def,
	})
	t.invalidate()
	return nil
}

// RemoveProperty deletes a schema property; a missing name is a no-op.
func (t *Template) RemoveProperty(name string) {
	if _, ok := t.manifest.Schema.Properties.Get(name); !ok {
		return
	}
	t.manifest.Schema.Properties.Delete(name)
	t.invalidate()
}

// SetAnimation replaces the animation settings after validating them.
func (t *Template) SetAnimation(s models.AnimationSettings) error {
	if s.SlideInDuration <= 0 || s.SlideOutDuration <= 0 {
		return fmt.Errorf("graphic: slide durations must be positive")
	}
	if !models.ValidEasing(s.SlideInType) || !models.ValidEasing(s.SlideOutType) {
		return fmt.Errorf("graphic: unknown easing type")
	}
	if !models.ValidDirection(s.SlideInDirection) {
		return fmt.Errorf("graphic: unknown slide-in direction %q", s.SlideInDirection)
	}
	if s.SlideOutDirection != "" && !models.ValidDirection(s.SlideOutDirection) {
		return fmt.Errorf("graphic: unknown slide-out direction %q", s.SlideOutDirection)
	}

	t.animation = s
	t.invalidate()
	return nil
}

// Artifact returns the generated component source, regenerating it only if a
// mutation invalidated the cached copy.
func (t *Template) Artifact() (string, error) {
	if t.artifactValid {
		return t.artifact, nil
	}

	src, err := codegen.Generate(t.manifest, t.elements, &t.animation)
	if err != nil {
		return "", err
	}
	t.artifact = src
	t.artifactValid = true
	return src, nil
}

// Snapshot returns the persisted form of the template, including the cached
// artifact text when one is present.
func (t *Template) Snapshot() models.Snapshot {
	snap := models.Snapshot{
		Manifest:  t.Manifest(),
		Elements:  t.Elements(),
		Animation: t.animation,
	}
	if t.artifactValid {
		snap.Artifact = t.artifact
	}
	return snap
}

// FromSnapshot rebuilds a template from its persisted form, validating the
// model invariants (slug id, unique element ids, finite geometry).
func FromSnapshot(snap models.Snapshot) (*Template, error) {
	if !models.IsSlug(snap.Manifest.ID) {
		return nil, fmt.Errorf("graphic: manifest id %q is not a valid slug", snap.Manifest.ID)
	}

	seen := map[string]bool{}
	for _, el := range snap.Elements {
		if el.ID == "" {
			return nil, fmt.Errorf("graphic: element without id")
		}
		if seen[el.ID] {
			return nil, fmt.Errorf("graphic: duplicate element id %q", el.ID)
		}
		seen[el.ID] = true
		if !models.ValidElementType(el.Type) {
			return nil, fmt.Errorf("graphic: element %s has unknown type %q", el.ID, el.Type)
		}
		if !el.GeometryFinite() {
			return nil, fmt.Errorf("graphic: element %s has non-finite geometry", el.ID)
		}
	}

	anim := snap.Animation
	if anim == (models.AnimationSettings{}) {
		anim = models.DefaultAnimationSettings()
	}

	t := &Template{
		manifest:  snap.Manifest,
		animation: anim,
	}
	t.manifest.Schema.Properties = snap.Manifest.Schema.Properties.Clone()
	for _, el := range snap.Elements {
		t.elements = append(t.elements, el.Clone())
	}
	if snap.Artifact != "" {
		t.artifact = snap.Artifact
		t.artifactValid = true
	}
	return t, nil
}

// Serialize encodes the template snapshot as JSON.
func (t *Template) Serialize() ([]byte, error) {
	return json.Marshal(t.Snapshot())
}

// Deserialize decodes a snapshot produced by Serialize.
func Deserialize(data []byte) (*Template, error) {
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("graphic: decode snapshot: %w", err)
	}
	return FromSnapshot(snap)
}

func (t *Template) invalidate() {
	t.artifact = ""
	t.artifactValid = false
}
