package refdata

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Stat holds the score distribution statistics of one family.
type Stat struct {
	Mean   float64
	StdDev float64
}

// FamilyStats maps a family id to its score statistics.
type FamilyStats map[string]Stat

// childListToken introduces the optional child-id list on a stats block
// header line.
const childListToken = "child:"

// LoadFamilyStats parses record-oriented statistics blocks. A block starts
// with a header line beginning with ">", carrying the family id and an
// optional child list; the following line begins with two floats (mean,
// stddev). Blocks end at the next header line. Besides the statistics the
// loader returns the parent -> children edges recovered from the headers,
// which define the family hierarchy's direct-child view.
func LoadFamilyStats(path string) (FamilyStats, map[string][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	stats := make(FamilyStats)
	children := make(map[string][]string)

	var currentID string
	haveStats := false

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			fields := strings.Fields(line[1:])
			if len(fields) == 0 {
				currentID = ""
				continue
			}
			currentID = fields[0]
			haveStats = false
			for i, tok := range fields[1:] {
				if tok == childListToken {
					children[currentID] = append(children[currentID], fields[i+2:]...)
					break
				}
			}
			continue
		}
		if currentID == "" || haveStats {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		mean, err1 := strconv.ParseFloat(fields[0], 64)
		stddev, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		stats[currentID] = Stat{Mean: mean, StdDev: stddev}
		haveStats = true
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read statistics file %s: %w", path, err)
	}
	return stats, children, nil
}
