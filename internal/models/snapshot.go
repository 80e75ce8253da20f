package models

// Snapshot is the full persisted/exchanged form of a template: everything
// needed to rebuild the editing model, including the cached artifact text if
// one was generated.
type Snapshot struct {
	Manifest  Manifest          `json:"manifest"`
	Elements  []Element         `json:"elements"`
	Animation AnimationSettings `json:"animation"`
	Artifact  string            `json:"artifact,omitempty"`
}
