package refdata

import (
	"fmt"
	"os"
	"path/filepath"
)

// Needs declares which reference files one pipeline run loads, as paths
// relative to the data directory (Names is a glob pattern). An empty field
// means the corresponding table is not loaded.
//
// Filter tables (Thresholds, Clans, Hierarchy, Names, Stats, the fallback
// ThresholdsOptional) are permissive: a missing file behaves as an empty
// table, so affected rows pass unfiltered. Structural tables (ModelMap) and
// annotation tables (Signatures, CrossRefDescs, Ontology) are required: a
// missing file fails the run before any output is written.
type Needs struct {
	Thresholds         string
	ThresholdsOptional string // explicit threshold file tried before Stats
	Clans              string
	Hierarchy          string
	ModelMap           string
	Names              string
	Stats              string

	Signatures    string
	CrossRefDescs string
	Ontology      string
}

// Set holds the loaded reference tables for one run. Tables that were not
// requested, or whose optional file was absent, are empty but non-nil (the
// Hierarchy pointer stays nil when no hierarchy was loaded).
type Set struct {
	Thresholds    Thresholds
	Clans         Clans
	Hierarchy     *Hierarchy
	ModelMap      map[string]string
	Names         map[string]string
	Stats         FamilyStats
	Signatures    SignatureMap
	CrossRefDescs map[string]string
	Ontology      map[string][]string
}

// Load reads the requested reference tables from dataDir.
func Load(dataDir string, needs Needs) (*Set, error) {
	s := &Set{
		Thresholds:    make(Thresholds),
		Clans:         make(Clans),
		ModelMap:      map[string]string{},
		Names:         map[string]string{},
		Stats:         make(FamilyStats),
		Signatures:    make(SignatureMap),
		CrossRefDescs: map[string]string{},
		Ontology:      map[string][]string{},
	}

	if needs.Thresholds != "" {
		t, err := LoadThresholds(filepath.Join(dataDir, needs.Thresholds))
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		if err == nil {
			s.Thresholds = t
		}
	}
	if needs.ThresholdsOptional != "" {
		t, err := LoadThresholds(filepath.Join(dataDir, needs.ThresholdsOptional))
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		if err == nil {
			s.Thresholds = t
		}
	}
	if needs.Clans != "" {
		c, err := LoadClans(filepath.Join(dataDir, needs.Clans))
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		if err == nil {
			s.Clans = c
		}
	}
	if needs.Hierarchy != "" {
		h, err := LoadHierarchy(filepath.Join(dataDir, needs.Hierarchy))
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		if err == nil {
			s.Hierarchy = h
		}
	}
	if needs.Names != "" {
		n, err := LoadFamilyNames(filepath.Join(dataDir, needs.Names))
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		if err == nil {
			s.Names = n
		}
	}
	if needs.Stats != "" {
		stats, children, err := LoadFamilyStats(filepath.Join(dataDir, needs.Stats))
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		if err == nil {
			s.Stats = stats
			if s.Hierarchy == nil && len(children) > 0 {
				s.Hierarchy = NewHierarchy(children)
			}
		}
	}

	if needs.ModelMap != "" {
		m, err := LoadModelMap(filepath.Join(dataDir, needs.ModelMap))
		if err != nil {
			return nil, requiredErr(dataDir, needs.ModelMap, err)
		}
		s.ModelMap = m
	}
	if needs.Signatures != "" {
		m, err := LoadSignatureMap(filepath.Join(dataDir, needs.Signatures))
		if err != nil {
			return nil, requiredErr(dataDir, needs.Signatures, err)
		}
		s.Signatures = m
	}
	if needs.CrossRefDescs != "" {
		m, err := LoadDescriptions(filepath.Join(dataDir, needs.CrossRefDescs))
		if err != nil {
			return nil, requiredErr(dataDir, needs.CrossRefDescs, err)
		}
		s.CrossRefDescs = m
	}
	if needs.Ontology != "" {
		m, err := LoadOntologyMap(filepath.Join(dataDir, needs.Ontology))
		if err != nil {
			return nil, requiredErr(dataDir, needs.Ontology, err)
		}
		s.Ontology = m
	}
	return s, nil
}

func requiredErr(dataDir, rel string, err error) error {
	if os.IsNotExist(err) {
		return fmt.Errorf("required reference file missing: %s", filepath.Join(dataDir, rel))
	}
	return err
}
