package models

import "regexp"

// slugRe matches the ids accepted for a graphic manifest.
var slugRe = regexp.MustCompile(`^[a-z0-9-_]+$`)

// IsSlug reports whether id is a valid manifest id.
func IsSlug(id string) bool {
	return slugRe.MatchString(id)
}

type Author struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type CustomAction struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Schema struct {
	Properties SchemaProperties `json:"properties"`
}

// Manifest describes a graphic: identity, data schema and playout
// capabilities. It is the persisted/exchanged metadata format.
type Manifest struct {
	ID                  string         `json:"id"`
	Version             string         `json:"version"`
	Name                string         `json:"name"`
	Description         string         `json:"description,omitempty"`
	Author              Author         `json:"author"`
	Main                string         `json:"main"`
	Schema              Schema         `json:"schema"`
	SupportsRealTime    bool           `json:"supportsRealTime"`
	SupportsNonRealTime bool           `json:"supportsNonRealTime"`
	StepCount           int            `json:"stepCount"`
	CustomActions       []CustomAction `json:"customActions"`
}
