package fingerprint

import (
	"path/filepath"
	"strings"
)

// TagLength is the number of hex characters in a published tag.
const TagLength = 7

// Fingerprinter computes cache tags. The zero value is not usable; construct
// one with New or NewWith.
type Fingerprinter struct {
	digester Digester
	expander Expander
}

// New returns a Fingerprinter backed by the default content digester and
// glob expander.
func New() *Fingerprinter {
	return NewWith(contentDigester{}, globExpander{})
}

// NewWith returns a Fingerprinter running on the given hash and filesystem
// walk implementations.
func NewWith(d Digester, e Expander) *Fingerprinter {
	return &Fingerprinter{digester: d, expander: e}
}

// ComputeTag produces the cache tag for spec. Each input's digest is appended
// to a running buffer as hex text, with no separator, in a fixed order:
// Dockerfile bytes, target, architecture, each build arg, the additional-args
// blob if present, then every dependency file matched by the CacheOn
// patterns. The tag is the first TagLength characters of the buffer's digest.
//
// The composition is positional on purpose: reordering build args or
// patterns changes the tag, and the separator-free concatenation must never
// change or every existing cache entry becomes unreachable.
func (f *Fingerprinter) ComputeTag(spec BuildSpec, env Env) (string, error) {
	var buf strings.Builder

	d, err := f.digester.FromFile(spec.Dockerfile)
	if err != nil {
		return "", newConfigError(err, "dockerfile %s is not readable", spec.Dockerfile)
	}
	buf.WriteString(d)

	buf.WriteString(f.digester.FromString(spec.Target))
	buf.WriteString(f.digester.FromString(spec.Architecture))

	for _, arg := range spec.BuildArgs {
		buf.WriteString(f.digester.FromString(resolveBuildArg(arg, env)))
	}

	if spec.AdditionalArgs != "" {
		buf.WriteString(f.digester.FromString(spec.AdditionalArgs))
	}

	for _, pattern := range spec.CacheOn {
		if err := f.appendDependency(&buf, pattern, spec.ContextDir); err != nil {
			return "", err
		}
	}

	return f.digester.FromString(buf.String())[:TagLength], nil
}

// resolveBuildArg turns a bare KEY entry into KEY=value using the environment
// snapshot. Unset variables resolve to the empty string. Entries that already
// carry a value pass through untouched.
func resolveBuildArg(arg string, env Env) string {
	if strings.Contains(arg, "=") {
		return arg
	}
	return arg + "=" + env[arg]
}

// appendDependency expands one CacheOn pattern and appends the digest of
// every matched file. A pattern matching nothing appends nothing; that is
// not an error.
func (f *Fingerprinter) appendDependency(buf *strings.Builder, pattern, cwd string) error {
	pat, query, compound := strings.Cut(pattern, "#")

	files, err := f.expander.Expand(pat, cwd)
	if err != nil {
		return newConfigError(err, "cannot expand dependency pattern %q", pattern)
	}

	for _, file := range files {
		path := file
		if cwd != "" {
			path = filepath.Join(cwd, file)
		}

		if compound {
			digests, err := f.jsonKeyDigests(path, query)
			if err != nil {
				return err
			}
			for _, d := range digests {
				buf.WriteString(d)
			}
			continue
		}

		d, err := f.digester.FromFile(path)
		if err != nil {
			return newDependencyError(err, "cannot hash dependency %s", path)
		}
		buf.WriteString(d)
	}

	return nil
}
