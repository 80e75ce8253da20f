package models

import "math"

// Element types supported by the editor canvas.
const (
	ElementText   = "text"
	ElementImage  = "image"
	ElementRect   = "rect"
	ElementCircle = "circle"
)

// Element is a single positioned item on the graphic canvas. Content may
// contain {{propertyName}} placeholders that the runtime substitutes with
// live data. Style maps camelCase CSS property names to string values
// (e.g. fontSize → "20px").
type Element struct {
	ID      string            `json:"id"`
	Type    string            `json:"type"`
	X       float64           `json:"x"`
	Y       float64           `json:"y"`
	Width   float64           `json:"width"`
	Height  float64           `json:"height"`
	Content string            `json:"content,omitempty"`
	Style   map[string]string `json:"style,omitempty"`
}

// Clone returns an independent copy of the element.
func (e Element) Clone() Element {
	out := e
	if e.Style != nil {
		out.Style = make(map[string]string, len(e.Style))
		for k, v := range e.Style {
			out.Style[k] = v
		}
	}
	return out
}

// GeometryFinite reports whether all numeric geometry fields are finite.
func (e Element) GeometryFinite() bool {
	for _, v := range []float64{e.X, e.Y, e.Width, e.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ValidElementType reports whether t is one of the supported element types.
func ValidElementType(t string) bool {
	switch t {
	case ElementText, ElementImage, ElementRect, ElementCircle:
		return true
	}
	return false
}
