package fingerprint

// BuildSpec is the full set of inputs that decide whether two builds may
// share a cache tag. It is constructed once per invocation and never
// modified.
type BuildSpec struct {
	// Dockerfile is the path of the Dockerfile whose raw bytes seed the tag.
	// A missing or unreadable Dockerfile aborts the whole computation.
	Dockerfile string

	// Target is the build stage the tag is computed for. An unset target is
	// hashed as the empty string, not skipped, so "no target" and an
	// explicitly empty target produce the same tag.
	Target string

	// Architecture is the platform string mixed into the tag, typically the
	// machine hardware name.
	Architecture string

	// BuildArgs are KEY or KEY=VALUE entries. Entries without a value are
	// resolved against the environment snapshot at fingerprint time. Order
	// is significant: it is part of the tag.
	BuildArgs []string

	// AdditionalArgs is an opaque blob that influences the tag without
	// structural parsing. Empty means absent and contributes nothing.
	AdditionalArgs string

	// CacheOn are dependency patterns, either <glob> or <glob>#<jq-expr>.
	// The compound form hashes the values the jq expression extracts from
	// each matched JSON file instead of the raw file bytes. Order is
	// significant.
	CacheOn []string

	// ContextDir anchors CacheOn patterns. Empty means the current
	// directory.
	ContextDir string
}

// Env is the read-only environment snapshot used to resolve valueless build
// args. The fingerprinter never reads ambient process state; the caller
// decides what the environment is.
type Env map[string]string
