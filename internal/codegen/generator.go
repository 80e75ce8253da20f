// Package codegen turns a template snapshot into the source text of a
// self-registering OGraf web component. Generation is pure and
// deterministic: the same manifest, elements and animation settings always
// produce byte-identical output, which is what makes artifact caching and
// editor diffing possible.
package codegen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/eyevinn-osaas/ograf-editor/internal/models"
)

type artifactView struct {
	ClassName     string
	Tag           string
	ManifestID    string
	Version       string
	ElementsJSON  string
	AnimationJSON string
	StyleJSON     string
}

// The generated source contains literal {{...}} placeholder syntax, so the
// Go template uses [[...]] delimiters instead.
var artifactTmpl = template.Must(template.New("artifact").Delims("[[", "]]").Parse(artifactSource))

// Generate renders the artifact source for the given snapshot parts. When
// anim is nil the documented default animation settings are embedded. It
// never fails on a model that satisfies the model invariants.
func Generate(manifest models.Manifest, elements []models.Element, anim *models.AnimationSettings) (string, error) {
	settings := models.DefaultAnimationSettings()
	if anim != nil {
		settings = *anim
	}

	elementsJSON, err := marshalIndented(elementsOrEmpty(elements), 0)
	if err != nil {
		return "", fmt.Errorf("codegen: marshal elements: %w", err)
	}
	animationJSON, err := marshalIndented(settings, 0)
	if err != nil {
		return "", fmt.Errorf("codegen: marshal animation: %w", err)
	}

	styleJSON, err := json.Marshal(baseStyles + StyleBlock(elements))
	if err != nil {
		return "", fmt.Errorf("codegen: marshal styles: %w", err)
	}

	view := artifactView{
		ClassName:     PascalCase(manifest.ID),
		Tag:           TagName(manifest.ID),
		ManifestID:    manifest.ID,
		Version:       manifest.Version,
		ElementsJSON:  elementsJSON,
		AnimationJSON: animationJSON,
		StyleJSON:     string(styleJSON),
	}

	var b bytes.Buffer
	if err := artifactTmpl.Execute(&b, view); err != nil {
		return "", fmt.Errorf("codegen: render artifact: %w", err)
	}
	return b.String(), nil
}

// StyleBlock emits one CSS rule per element, keyed by element id, with the
// style map converted to kebab-case properties. Keys are sorted so output is
// stable regardless of map iteration order.
func StyleBlock(elements []models.Element) string {
	var b strings.Builder
	for i, el := range elements {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "#el-%s {\n", el.ID)

		keys := make([]string, 0, len(el.Style))
		for k := range el.Style {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			fmt.Fprintf(&b, "  %s: %s;\n", KebabCase(k), el.Style[k])
		}
		b.WriteString("}\n")
	}
	return b.String()
}

func elementsOrEmpty(elements []models.Element) []models.Element {
	if elements == nil {
		return []models.Element{}
	}
	return elements
}

func marshalIndented(v any, depth int) (string, error) {
	data, err := json.MarshalIndent(v, strings.Repeat("  ", depth), "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
