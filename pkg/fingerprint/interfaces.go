// Package fingerprint computes deterministic cache tags for container image
// builds. A tag is a short hex fingerprint of everything that decides whether
// two builds may share a cached layer: the Dockerfile bytes, the target stage,
// the architecture, the build arguments, an opaque extra-arguments blob, and
// the content of any declared file dependencies.
package fingerprint

import (
	"github.com/cachetag/cachetag/pkg/digest"
	"github.com/cachetag/cachetag/pkg/glob"
)

// Digester is the content-hashing primitive the tag composition runs on. It
// must be a pure function of its input and must never change for the life of
// a cache: swapping the hash invalidates every previously published tag.
type Digester interface {
	// FromString returns the lowercase hex digest of s.
	FromString(s string) string
	// FromFile returns the digest of the file's raw byte content.
	FromFile(path string) (string, error)
}

// Expander resolves a dependency glob into the ordered list of regular files
// it matches. Implementations must return a stable order for identical
// filesystem states.
type Expander interface {
	Expand(pattern, cwd string) ([]string, error)
}

// contentDigester is the default Digester, backed by pkg/digest.
type contentDigester struct{}

func (contentDigester) FromString(s string) string { return digest.FromString(s) }

func (contentDigester) FromFile(path string) (string, error) { return digest.FromFile(path) }

// globExpander is the default Expander, backed by pkg/glob.
type globExpander struct{}

func (globExpander) Expand(pattern, cwd string) ([]string, error) {
	return glob.Expand(pattern, cwd)
}
