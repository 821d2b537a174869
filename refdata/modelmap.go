package refdata

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadModelMap parses "model\tcanonical" lines mapping raw model names to
// canonical family ids.
func LoadModelMap(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := make(map[string]string)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		model, canonical, found := strings.Cut(sc.Text(), "\t")
		if !found {
			continue
		}
		model = strings.TrimSpace(model)
		canonical = strings.TrimSpace(canonical)
		if model == "" || canonical == "" {
			continue
		}
		m[model] = canonical
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read model map %s: %w", path, err)
	}
	return m, nil
}
