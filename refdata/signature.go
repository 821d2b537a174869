// Package refdata loads the precomputed lookup tables the pipelines query:
// signature cross-reference maps, ontology maps, per-family thresholds,
// hierarchies, clan membership, model maps and score statistics. The package
// only loads and queries; reference-data construction happens elsewhere.
package refdata

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// SignatureKey identifies a signature within one member database.
type SignatureKey struct {
	DB        string
	Signature string
}

// SignatureMap maps (database key, signature id) to the ordered list of
// cross-reference ids, in first-seen file order.
type SignatureMap map[SignatureKey][]string

// LoadSignatureMap parses "db\tsignature\tcrossref" lines. Short lines are
// skipped.
func LoadSignatureMap(path string) (SignatureMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := make(SignatureMap)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 3 {
			continue
		}
		key := SignatureKey{DB: parts[0], Signature: parts[1]}
		m[key] = append(m[key], parts[2])
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read signature map %s: %w", path, err)
	}
	return m, nil
}

// LoadDescriptions parses "id\tdescription" lines into a description table.
func LoadDescriptions(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := make(map[string]string)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		id, desc, found := strings.Cut(line, "\t")
		if !found || id == "" {
			continue
		}
		m[id] = strings.TrimSpace(desc)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read description table %s: %w", path, err)
	}
	return m, nil
}
