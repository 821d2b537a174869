package refdata

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// unnamedFamily marks classification entries with no curated name.
const unnamedFamily = "FAMILY NOT NAMED"

// LoadFamilyNames parses the family name table from the latest-versioned
// classification file matching the glob pattern. Returns an empty table when
// no file matches. Lines are "id\tname"; subfamily entries (ids containing
// ":") and unnamed families are skipped.
func LoadFamilyNames(pattern string) (map[string]string, error) {
	candidates, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad classification glob %s: %w", pattern, err)
	}
	if len(candidates) == 0 {
		return map[string]string{}, nil
	}
	sort.Strings(candidates)
	path := candidates[len(candidates)-1]

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := make(map[string]string)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		parts := strings.Split(sc.Text(), "\t")
		if len(parts) < 2 {
			continue
		}
		id := strings.TrimSpace(parts[0])
		name := strings.TrimSpace(parts[1])
		if id == "" || name == "" || name == unnamedFamily {
			continue
		}
		if strings.Contains(id, ":") {
			continue
		}
		m[id] = name
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read classification file %s: %w", path, err)
	}
	return m, nil
}
