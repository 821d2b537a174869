package refdata

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// crossRefMarker tags the cross-reference id on a data line of the ontology
// mapping file.
const crossRefMarker = "InterPro:"

// LoadOntologyMap parses the flat cross-reference to ontology-term mapping.
// Comment lines start with "!". A data line carries the cross-reference id
// after the marker, a ">" separator, and the ontology term in the last
// semicolon-delimited field. Term order is first-seen file order.
func LoadOntologyMap(path string) (map[string][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := make(map[string][]string)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}
		if !strings.Contains(line, crossRefMarker) {
			continue
		}
		idPart, rest, found := strings.Cut(line, ">")
		if !found {
			continue
		}
		idFields := strings.Fields(strings.ReplaceAll(idPart, crossRefMarker, ""))
		if len(idFields) == 0 {
			continue
		}
		id := idFields[0]
		segments := strings.Split(rest, ";")
		term := strings.TrimSpace(segments[len(segments)-1])
		if !strings.HasPrefix(term, "GO:") {
			continue
		}
		m[id] = append(m[id], term)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ontology map %s: %w", path, err)
	}
	return m, nil
}
