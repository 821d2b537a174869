package refdata

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Threshold holds the per-family score cutoffs on the bit-score scale.
type Threshold struct {
	Seq float64
	Dom float64
}

// Thresholds maps a family name to its cutoffs. Absence of an entry means no
// threshold is enforced for that family.
type Thresholds map[string]Threshold

// LoadThresholds parses "name\tseq\tdom" lines. Lines with unparsable
// numbers are skipped rather than failing the load.
func LoadThresholds(path string) (Thresholds, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := make(Thresholds)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		parts := strings.Split(sc.Text(), "\t")
		if len(parts) < 3 {
			continue
		}
		seq, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			continue
		}
		dom, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil {
			continue
		}
		m[parts[0]] = Threshold{Seq: seq, Dom: dom}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read threshold table %s: %w", path, err)
	}
	return m, nil
}
