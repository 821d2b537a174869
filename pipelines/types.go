package pipelines

import "strconv"

// Column names of the hit table. Input tables carry the first group
// (optionally prefixed by an Analysis column); the annotation columns are
// appended on output when the corresponding lookup is requested.
const (
	ColAnalysis    = "Analysis"
	ColTarget      = "target"
	ColName        = "NAME"
	ColAccession   = "ACC"
	ColDescription = "DESC"
	ColTargetStart = "target_start"
	ColTargetEnd   = "target_end"
	ColQueryStart  = "query_start"
	ColQueryEnd    = "query_end"
	ColScore       = "score"
	ColBias        = "bias"
	ColEvalue      = "evalue"
	ColCellFrac    = "cell_frac"

	ColCrossRefs     = "InterPro"
	ColCrossRefDescs = "IPR_desc"
	ColOntology      = "GO"
)

// HitRow is one profile match between a target protein and a family model.
// Rows are created once from the parsed input table and then mutated in
// place by pipeline stages (identifier rewrites, field backfills) or dropped.
type HitRow struct {
	Analysis    string
	Target      string
	Name        string
	Accession   string
	Description string

	// Numeric columns keep their raw input text so that rows the engine
	// does not touch are written back byte for byte. Typed access goes
	// through the permissive accessors below.
	TargetStart string
	TargetEnd   string
	QueryStart  string
	QueryEnd    string
	Score       string
	Bias        string
	Evalue      string
	CellFrac    string

	// Annotation columns attached by the joiner.
	CrossRefs     []string
	CrossRefDescs []string
	Ontology      []string

	// Extra holds input columns the engine does not recognize, keyed by
	// column name. They are re-emitted in their original header position.
	Extra map[string]string
}

// ScoreValue returns the bit score. A missing or malformed score is treated
// as 0 so the row degrades to the least favorable candidate instead of
// failing the run.
func (r *HitRow) ScoreValue() float64 {
	v, err := strconv.ParseFloat(r.Score, 64)
	if err != nil {
		return 0
	}
	return v
}

// EvalueValue returns the e-value. A missing or malformed e-value is treated
// as 1.0, the most permissive value for cutoff filters.
func (r *HitRow) EvalueValue() float64 {
	v, err := strconv.ParseFloat(r.Evalue, 64)
	if err != nil {
		return 1.0
	}
	return v
}

// Coords returns the match interval on the target protein as an inclusive
// coordinate pair. ok is false when either bound is unparsable or the
// interval is degenerate (end-start <= 0); such rows are never compared in
// overlap computations.
func (r *HitRow) Coords() (start, end int, ok bool) {
	s, err := strconv.Atoi(r.TargetStart)
	if err != nil {
		return 0, 0, false
	}
	e, err := strconv.Atoi(r.TargetEnd)
	if err != nil {
		return 0, 0, false
	}
	if e-s <= 0 {
		return 0, 0, false
	}
	return s, e, true
}

// ID returns the identifier used for hierarchy and annotation lookups:
// the accession when present, otherwise the internal model name.
func (r *HitRow) ID() string {
	if r.Accession != "" {
		return r.Accession
	}
	return r.Name
}

// field returns the output value for a named column.
func (r *HitRow) field(col string) string {
	switch col {
	case ColAnalysis:
		return r.Analysis
	case ColTarget:
		return r.Target
	case ColName:
		return r.Name
	case ColAccession:
		return r.Accession
	case ColDescription:
		return r.Description
	case ColTargetStart:
		return r.TargetStart
	case ColTargetEnd:
		return r.TargetEnd
	case ColQueryStart:
		return r.QueryStart
	case ColQueryEnd:
		return r.QueryEnd
	case ColScore:
		return r.Score
	case ColBias:
		return r.Bias
	case ColEvalue:
		return r.Evalue
	case ColCellFrac:
		return r.CellFrac
	case ColCrossRefs:
		return joinList(r.CrossRefs)
	case ColCrossRefDescs:
		return joinList(r.CrossRefDescs)
	case ColOntology:
		return joinList(r.Ontology)
	default:
		return r.Extra[col]
	}
}

// setField stores an input value under a named column.
func (r *HitRow) setField(col, val string) {
	switch col {
	case ColAnalysis:
		r.Analysis = val
	case ColTarget:
		r.Target = val
	case ColName:
		r.Name = val
	case ColAccession:
		r.Accession = val
	case ColDescription:
		r.Description = val
	case ColTargetStart:
		r.TargetStart = val
	case ColTargetEnd:
		r.TargetEnd = val
	case ColQueryStart:
		r.QueryStart = val
	case ColQueryEnd:
		r.QueryEnd = val
	case ColScore:
		r.Score = val
	case ColBias:
		r.Bias = val
	case ColEvalue:
		r.Evalue = val
	case ColCellFrac:
		r.CellFrac = val
	default:
		if r.Extra == nil {
			r.Extra = make(map[string]string)
		}
		r.Extra[col] = val
	}
}

// Table is an in-memory hit table: the input header (in file order) and the
// ordered row collection the pipeline stages operate on.
type Table struct {
	Header []string
	Rows   []*HitRow
}
