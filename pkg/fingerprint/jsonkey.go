package fingerprint

import (
	"os"

	"github.com/goccy/go-json"
	"github.com/itchyny/gojq"
)

// jsonKeyDigests parses path as JSON, evaluates the jq expression against the
// document and returns one digest per emitted value, in emission order. A
// query emitting nothing contributes nothing.
func (f *Fingerprinter) jsonKeyDigests(path, expr string) ([]string, error) {
	query, err := gojq.Parse(expr)
	if err != nil {
		return nil, newConfigError(err, "invalid JSON key expression %q", expr)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, newDependencyError(err, "cannot read JSON dependency %s", path)
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		// Substituting an empty value here would let two dissimilar
		// configurations hash identically.
		return nil, newDependencyError(err, "JSON dependency %s is malformed", path)
	}

	var digests []string
	iter := query.Run(doc)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if qerr, isErr := v.(error); isErr {
			return nil, newDependencyError(qerr, "JSON key expression %q failed on %s", expr, path)
		}
		digests = append(digests, f.digester.FromString(textualForm(v)))
	}

	return digests, nil
}

// textualForm renders an extracted JSON value the way jq -r prints it:
// strings contribute their raw content, everything else its compact JSON
// encoding.
func textualForm(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	out, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(out)
}
