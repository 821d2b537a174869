package refdata

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Clans maps a family name to its clan (structural group) id. Families
// absent from the table are never treated as structurally related to any
// other family.
type Clans map[string]string

// LoadClans parses "family\tclan" lines; extra columns are ignored.
func LoadClans(path string) (Clans, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := make(Clans)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		parts := strings.Split(sc.Text(), "\t")
		if len(parts) < 2 {
			continue
		}
		family := strings.TrimSpace(parts[0])
		clan := strings.TrimSpace(parts[1])
		if family == "" || clan == "" {
			continue
		}
		m[family] = clan
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read clan table %s: %w", path, err)
	}
	return m, nil
}
