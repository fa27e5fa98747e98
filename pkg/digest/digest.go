// Package digest provides the content-hashing primitive behind cache tags.
package digest

import (
	"io"
	"os"

	godigest "github.com/opencontainers/go-digest"
	"github.com/pkg/errors"
)

// Algorithm is the hash every digest in a cache history is computed with.
// Changing it invalidates every previously published tag, so it is pinned by
// a golden test and must never move.
const Algorithm = godigest.SHA256

// FromBytes returns the lowercase hex digest of b.
func FromBytes(b []byte) string {
	return Algorithm.FromBytes(b).Encoded()
}

// FromString returns the lowercase hex digest of s.
func FromString(s string) string {
	return Algorithm.FromString(s).Encoded()
}

// FromFile returns the digest of the file's raw byte content. The content is
// streamed through the hash; the handle does not outlive the call.
func FromFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to open %s for hashing", path)
	}
	defer f.Close()

	digester := Algorithm.Digester()
	if _, err := io.Copy(digester.Hash(), f); err != nil {
		return "", errors.Wrapf(err, "failed to hash %s", path)
	}

	return digester.Digest().Encoded(), nil
}
