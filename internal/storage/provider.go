package storage

import "github.com/eyevinn-osaas/ograf-editor/internal/ports"

// Provider is the storage contract shared by the API and the publish
// worker; an alias keeps call sites short.
type Provider = ports.StorageProvider
