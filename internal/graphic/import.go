package graphic

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/eyevinn-osaas/ograf-editor/internal/models"
)

// ConflictPolicy tells an import how to treat an id collision with an
// existing template. It is supplied explicitly by the caller; the service
// never blocks on an interactive confirmation.
type ConflictPolicy string

const (
	// ConflictReplace overwrites the stored template with the import.
	ConflictReplace ConflictPolicy = "replace"
	// ConflictSkip leaves the stored template untouched and drops the import.
	ConflictSkip ConflictPolicy = "skip"
	// ConflictRename imports under a fresh id derived from the original.
	ConflictRename ConflictPolicy = "rename"
)

// ParseConflictPolicy validates a policy name.
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch ConflictPolicy(s) {
	case ConflictReplace, ConflictSkip, ConflictRename:
		return ConflictPolicy(s), nil
	}
	return "", fmt.Errorf("graphic: unknown conflict policy %q", s)
}

// RenamedID derives a new slug from id by appending a short random suffix.
// The result still matches the manifest slug pattern.
func RenamedID(id string) string {
	return id + "-" + uuid.NewString()[:8]
}

// Rename changes the template's manifest id, invalidating the cached
// artifact since the generated class and tag names derive from it.
func (t *Template) Rename(id string) error {
	if !models.IsSlug(id) {
		return fmt.Errorf("graphic: template id %q is not a valid slug", id)
	}
	t.manifest.ID = id
	t.invalidate()
	return nil
}
