package ports

import "errors"

var (
	// ErrConcurrentModification is returned when an optimistic version check
	// fails because another writer got there first. This is the only error
	// kind callers should automatically retry (bounded, with backoff); the
	// losing writer's transaction left no partial effect.
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrManifestLocked is the veto from the external manifest collaborator:
	// a parcel on a locked manifest must not be mutated.
	ErrManifestLocked = errors.New("manifest is locked")
)
