// Package pipelines implements the per-database post-processing engine:
// table I/O, identifier normalization, the shared filter primitives, the
// database stage compositions and the annotation joiner. A run is a strictly
// synchronous batch: the whole table is read once, transformed in memory and
// written once.
package pipelines

import (
	"strings"

	"github.com/profscan/profscan-go/refdata"
	"github.com/profscan/profscan-go/utils"
)

// Env carries the loaded reference data and resolved tuning that one run's
// stages operate against.
type Env struct {
	Ref *refdata.Set
	Cfg utils.DatabaseSettings
}

// Stage is one step of a database pipeline: a function over the row
// collection plus the run environment. Stages either rewrite rows in place
// or return a filtered collection.
type Stage struct {
	Name string
	Run  func(env *Env, rows []*HitRow) []*HitRow
}

// Descriptor describes one database's post-processing: its cross-reference
// key, its ordered stage list and its reference-data requirements.
type Descriptor struct {
	Key    string // registry key, the lower-cased database name
	XMLKey string // key into the signature cross-reference map
	Stages []Stage
	Needs  refdata.Needs
}

// RunStages applies the descriptor's stages in order.
func (d *Descriptor) RunStages(env *Env, rows []*HitRow) []*HitRow {
	for _, st := range d.Stages {
		rows = st.Run(env, rows)
	}
	return rows
}

// Lookup returns the descriptor for a database name. Unregistered names are
// not an error: they get a pass-through descriptor with no stages whose
// cross-reference key is the uppercased name.
func Lookup(name string) (*Descriptor, bool) {
	key := strings.ToLower(name)
	if d, ok := registry[key]; ok {
		return d, true
	}
	return &Descriptor{Key: key, XMLKey: strings.ToUpper(name)}, false
}

// Databases returns the registered database keys.
func Databases() []string {
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	return keys
}
