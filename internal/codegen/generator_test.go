package codegen

import (
	"strings"
	"testing"

	"github.com/eyevinn-osaas/ograf-editor/internal/models"
)

func testManifest() models.Manifest {
	props := models.NewSchemaProperties()
	props.Set("name", models.SchemaProperty{Type: models.PropString, Title: "Name", Default: "Jane Doe"})
	props.Set("title", models.SchemaProperty{Type: models.PropString, Title: "Title", Default: "Anchor"})

	return models.Manifest{
		ID:                  "lower-third-demo",
		Version:             "1.0.0",
		Name:                "Lower Third Demo",
		Author:              models.Author{Name: "ograf-editor"},
		Main:                "graphic.mjs",
		Schema:              models.Schema{Properties: props},
		SupportsRealTime:    true,
		SupportsNonRealTime: true,
		StepCount:           1,
		CustomActions: []models.CustomAction{
			{ID: "slideIn", Name: "Slide In"},
			{ID: "slideOut", Name: "Slide Out"},
		},
	}
}

func testElements() []models.Element {
	return []models.Element{
		{
			ID: "background", Type: models.ElementRect,
			X: 50, Y: 800, Width: 900, Height: 150,
			Style: map[string]string{"backgroundColor": "#1a1a2e", "borderRadius": "8px"},
		},
		{
			ID: "name", Type: models.ElementText,
			X: 80, Y: 820, Width: 600, Height: 50,
			Content: "{{name}}",
			Style:   map[string]string{"fontSize": "32px", "color": "#ffffff"},
		},
	}
}

func TestGenerateDeterministic(t *testing.T) {
	m := testManifest()
	els := testElements()
	anim := models.DefaultAnimationSettings()

	first, err := Generate(m, els, &anim)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := Generate(m, els, &anim)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if first != second {
		t.Error("expected byte-identical output for unchanged inputs")
	}
}

func TestGenerateContract(t *testing.T) {
	m := testManifest()
	out, err := Generate(m, testElements(), nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	wantFragments := []string{
		"class LowerThirdDemo extends HTMLElement",
		"customElements.get('lower-third-demo-graphic')",
		"customElements.define('lower-third-demo-graphic', LowerThirdDemo)",
		"export default LowerThirdDemo",
		"async load()",
		"async dispose()",
		"async playAction(skipAnimation)",
		"async stopAction(skipAnimation)",
		"async updateAction(data)",
		"async customAction(name, data)",
	}
	for _, frag := range wantFragments {
		if !strings.Contains(out, frag) {
			t.Errorf("artifact missing %q", frag)
		}
	}
}

func TestGenerateEmbedsDefaultsWhenSettingsAbsent(t *testing.T) {
	out, err := Generate(testManifest(), nil, nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	for _, frag := range []string{
		`"slideInDuration": 500`,
		`"slideOutDuration": 500`,
		`"slideInType": "ease-out"`,
		`"slideOutType": "ease-in"`,
		`"slideInDirection": "left"`,
		`"slideOutDirection": "left"`,
	} {
		if !strings.Contains(out, frag) {
			t.Errorf("artifact missing default setting %q", frag)
		}
	}
}

func TestStyleBlock(t *testing.T) {
	block := StyleBlock(testElements())

	wantFragments := []string{
		"#el-background {",
		"background-color: #1a1a2e;",
		"border-radius: 8px;",
		"#el-name {",
		"font-size: 32px;",
		"color: #ffffff;",
	}
	for _, frag := range wantFragments {
		if !strings.Contains(block, frag) {
			t.Errorf("style block missing %q; got:\n%s", frag, block)
		}
	}

	// sorted keys keep the block stable across runs
	if StyleBlock(testElements()) != block {
		t.Error("style block not deterministic")
	}
}

func TestGenerateEmbedsElements(t *testing.T) {
	out, err := Generate(testManifest(), testElements(), nil)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !strings.Contains(out, `"id": "background"`) {
		t.Error("artifact missing embedded background element")
	}
	if !strings.Contains(out, `"content": "{{name}}"`) {
		t.Error("artifact missing placeholder content")
	}
}
