package graphic

import (
	"fmt"

	"github.com/eyevinn-osaas/ograf-editor/internal/models"
)

// Preset is a named starting configuration for a new template.
type Preset string

const (
	PresetLowerThird Preset = "lowerThird"
	PresetTitle      Preset = "title"
	PresetBug        Preset = "bug"
	PresetCustom     Preset = "custom"
)

// ParsePreset validates a preset name.
func ParsePreset(s string) (Preset, error) {
	switch Preset(s) {
	case PresetLowerThird, PresetTitle, PresetBug, PresetCustom:
		return Preset(s), nil
	}
	return "", fmt.Errorf("graphic: unknown preset %q", s)
}

// NewFromPreset creates a template from a preset. The id must match the
// manifest slug pattern; name and description are free-form.
func NewFromPreset(preset Preset, id, name, description string) (*Template, error) {
	if !models.IsSlug(id) {
		return nil, fmt.Errorf("graphic: template id %q is not a valid slug", id)
	}

	t := &Template{
		manifest: models.Manifest{
			ID:          id,
			Version:     "1.0.0",
			Name:        name,
			Description: description,
			Author:      models.Author{Name: "ograf-editor"},
			Main:        "graphic.mjs",
			Schema: models.Schema{
				Properties: models.NewSchemaProperties(),
			},
			SupportsRealTime:    true,
			SupportsNonRealTime: true,
			StepCount:           1,
			CustomActions: []models.CustomAction{
				{ID: "slideIn", Name: "Slide In", Description: "Animate the graphic in"},
				{ID: "slideOut", Name: "Slide Out", Description: "Animate the graphic out"},
			},
		},
		animation: models.DefaultAnimationSettings(),
	}

	switch preset {
	case PresetLowerThird:
		t.elements = lowerThirdElements()
		t.addPresetProperty("name", "Name", "John Doe")
		t.addPresetProperty("title", "Title", "Presenter")
	case PresetTitle:
		t.elements = titleElements()
		t.addPresetProperty("title", "Title", "Main Title")
		t.addPresetProperty("subtitle", "Subtitle", "")
	case PresetBug:
		t.elements = bugElements()
		t.addPresetProperty("logo", "Logo URL", "")
	case PresetCustom:
		t.elements = customElements()
		t.addPresetProperty("text", "Text", "Hello")
	default:
		return nil, fmt.Errorf("graphic: unknown preset %q", preset)
	}

	return t, nil
}

func (t *Template) addPresetProperty(name, title string, def any) {
	t.manifest.Schema.Properties.Set(name, models.SchemaProperty{
		Type:    models.PropString,
		Title:   title,
		Default: def,
	})
}

func lowerThirdElements() []models.Element {
	return []models.Element{
		{
			ID: "background", Type: models.ElementRect,
			X: 60, Y: 840, Width: 960, Height: 160,
			Style: map[string]string{
				"backgroundColor": "rgba(16, 24, 48, 0.92)",
				"borderRadius":    "6px",
			},
		},
		{
			ID: "name", Type: models.ElementText,
			X: 100, Y: 860, Width: 880, Height: 60,
			Content: "{{name}}",
			Style: map[string]string{
				"fontSize":   "40px",
				"fontWeight": "700",
				"color":      "#ffffff",
			},
		},
		{
			ID: "title", Type: models.ElementText,
			X: 100, Y: 925, Width: 880, Height: 45,
			Content: "{{title}}",
			Style: map[string]string{
				"fontSize": "28px",
				"color":    "#a8b8e0",
			},
		},
	}
}

func titleElements() []models.Element {
	return []models.Element{
		{
			ID: "background", Type: models.ElementRect,
			X: 310, Y: 380, Width: 1300, Height: 320,
			Style: map[string]string{
				"backgroundColor": "rgba(10, 10, 24, 0.85)",
				"borderRadius":    "10px",
			},
		},
		{
			ID: "title", Type: models.ElementText,
			X: 360, Y: 440, Width: 1200, Height: 100,
			Content: "{{title}}",
			Style: map[string]string{
				"fontSize":   "72px",
				"fontWeight": "700",
				"color":      "#ffffff",
				"textAlign":  "center",
			},
		},
		{
			ID: "subtitle", Type: models.ElementText,
			X: 360, Y: 560, Width: 1200, Height: 60,
			Content: "{{subtitle}}",
			Style: map[string]string{
				"fontSize":  "36px",
				"color":     "#c0c8e8",
				"textAlign": "center",
			},
		},
	}
}

func bugElements() []models.Element {
	return []models.Element{
		{
			ID: "background", Type: models.ElementCircle,
			X: 1700, Y: 60, Width: 160, Height: 160,
			Style: map[string]string{
				"backgroundColor": "rgba(255, 255, 255, 0.9)",
			},
		},
		{
			ID: "logo", Type: models.ElementImage,
			X: 1720, Y: 80, Width: 120, Height: 120,
			Content: "{{logo}}",
			Style: map[string]string{
				"objectFit": "contain",
			},
		},
	}
}

func customElements() []models.Element {
	return []models.Element{
		{
			ID: "text", Type: models.ElementText,
			X: 100, Y: 100, Width: 600, Height: 80,
			Content: "{{text}}",
			Style: map[string]string{
				"fontSize": "32px",
				"color":    "#ffffff",
			},
		},
	}
}
