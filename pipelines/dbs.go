package pipelines

import (
	"strings"

	"github.com/profscan/profscan-go/refdata"
)

// Public identifier prefixes of the registered databases.
const (
	ssfPrefix  = "SSF"
	pthrPrefix = "PTHR"
)

// filterStage builds a stage that keeps the rows the predicate accepts.
func filterStage(name string, keep func(env *Env, r *HitRow) bool) Stage {
	return Stage{Name: name, Run: func(env *Env, rows []*HitRow) []*HitRow {
		kept := make([]*HitRow, 0, len(rows))
		for _, r := range rows {
			if keep(env, r) {
				kept = append(kept, r)
			}
		}
		return kept
	}}
}

// rewriteStage builds a stage that mutates every row in place.
func rewriteStage(name string, rewrite func(env *Env, r *HitRow)) Stage {
	return Stage{Name: name, Run: func(env *Env, rows []*HitRow) []*HitRow {
		for _, r := range rows {
			rewrite(env, r)
		}
		return rows
	}}
}

// registry maps the lower-cased database name to its pipeline descriptor.
// Databases listed with no stages (pirsr, antifam) carry custom
// cross-reference keys but no filtering logic.
var registry = map[string]*Descriptor{
	"panther": {
		Key:    "panther",
		XMLKey: "PANTHER",
		Needs:  refdata.Needs{Names: "panther/PANTHER*_HMM_classifications"},
		Stages: []Stage{
			rewriteStage("canonical-id", func(env *Env, r *HitRow) {
				base := BaseFamilyID(StripIterationSuffix(r.Name), pthrPrefix)
				r.Name = base
				r.Accession = base
			}),
			rewriteStage("backfill-description", func(env *Env, r *HitRow) {
				if strings.TrimSpace(r.Description) == "" {
					r.Description = env.Ref.Names[r.Accession]
				}
			}),
			{Name: "best-hit", Run: func(env *Env, rows []*HitRow) []*HitRow {
				return BestHitPerTarget(rows)
			}},
		},
	},

	// At most one family annotation per protein: the best-scoring match.
	"hamap": {
		Key:    "hamap",
		XMLKey: "HAMAP",
		Stages: []Stage{
			rewriteStage("backfill-accession", func(env *Env, r *HitRow) {
				if strings.TrimSpace(r.Accession) == "" {
					r.Accession = r.Name
				}
			}),
			{Name: "best-hit", Run: func(env *Env, rows []*HitRow) []*HitRow {
				return BestHitPerTarget(rows)
			}},
		},
	},

	"superfamily": {
		Key:    "superfamily",
		XMLKey: "SSF",
		Stages: []Stage{
			filterStage("evalue-cutoff", func(env *Env, r *HitRow) bool {
				return r.EvalueValue() <= env.Cfg.EvalueCutoff
			}),
			rewriteStage("canonical-id", func(env *Env, r *HitRow) {
				id := CanonicalGroupID(r.ID(), ssfPrefix)
				r.Name = id
				r.Accession = id
			}),
			// Cross-family collapsing: all surviving ids for a target
			// compete in one overlap pass.
			{Name: "collapse-overlaps", Run: func(env *Env, rows []*HitRow) []*HitRow {
				return NonOverlappingPerKey(rows, byTarget, env.Cfg.OverlapThreshold)
			}},
		},
	},

	"pfam": {
		Key:    "pfam",
		XMLKey: "PFAM",
		Needs: refdata.Needs{
			Thresholds: "pfam/pfam_a.ga",
			Clans:      "pfam/pfam_clans.tsv",
		},
		Stages: []Stage{
			filterStage("domain-threshold", func(env *Env, r *HitRow) bool {
				th, ok := env.Ref.Thresholds[r.Name]
				return !ok || r.ScoreValue() >= th.Dom
			}),
			rewriteStage("strip-version", func(env *Env, r *HitRow) {
				r.Accession = StripVersion(r.Accession)
			}),
			// The sequence threshold applies to the summed domain scores of
			// all hits a (target, model) pair produced; a failing group is
			// dropped whole.
			{Name: "sequence-threshold", Run: func(env *Env, rows []*HitRow) []*HitRow {
				sums := make(map[string]float64)
				for _, r := range rows {
					sums[r.Target+"\x00"+r.Name] += r.ScoreValue()
				}
				kept := make([]*HitRow, 0, len(rows))
				for _, r := range rows {
					if th, ok := env.Ref.Thresholds[r.Name]; ok && sums[r.Target+"\x00"+r.Name] < th.Seq {
						continue
					}
					kept = append(kept, r)
				}
				return kept
			}},
			{Name: "clan-dedup", Run: func(env *Env, rows []*HitRow) []*HitRow {
				return ClanOverlapDedup(rows, func(r *HitRow) string {
					return env.Ref.Clans[r.Name]
				}, env.Cfg.OverlapThreshold)
			}},
		},
	},

	// The model name is an internal id here; the public accession is
	// promoted to the identifier column.
	"ncbifam": {
		Key:    "ncbifam",
		XMLKey: "NCBIFAM",
		Needs:  refdata.Needs{Thresholds: "ncbifam/ncbifam.tc"},
		Stages: []Stage{
			filterStage("sequence-threshold", func(env *Env, r *HitRow) bool {
				th, ok := env.Ref.Thresholds[r.Name]
				return !ok || r.ScoreValue() >= th.Seq
			}),
			rewriteStage("canonical-id", func(env *Env, r *HitRow) {
				acc := StripVersion(r.ID())
				r.Name = acc
				r.Accession = acc
			}),
		},
	},

	"sfld": {
		Key:    "sfld",
		XMLKey: "SFLD",
		Needs: refdata.Needs{
			Thresholds: "sfld/sfld.ga",
			Hierarchy:  "sfld/sfld_hierarchy.tsv",
		},
		Stages: []Stage{
			filterStage("domain-threshold", func(env *Env, r *HitRow) bool {
				th, ok := env.Ref.Thresholds[r.Name]
				return !ok || r.ScoreValue() >= th.Dom
			}),
			{Name: "hierarchy-prune", Run: func(env *Env, rows []*HitRow) []*HitRow {
				return HierarchyPrune(rows, env.Ref.Hierarchy)
			}},
		},
	},

	"pirsf": {
		Key:    "pirsf",
		XMLKey: "PIRSF",
		Needs: refdata.Needs{
			ThresholdsOptional: "pirsf/pirsf.thresholds",
			Stats:              "pirsf/pirsf.dat",
		},
		Stages: []Stage{
			// An explicit threshold wins; otherwise the cutoff is derived
			// from the family's score distribution.
			filterStage("score-threshold", func(env *Env, r *HitRow) bool {
				if th, ok := env.Ref.Thresholds[r.Name]; ok {
					return r.ScoreValue() >= th.Seq
				}
				if st, ok := env.Ref.Stats[r.Name]; ok {
					cutoff := st.Mean - env.Cfg.StdDevMultiplier*st.StdDev
					if cutoff < 0 {
						cutoff = 0
					}
					return r.ScoreValue() >= cutoff
				}
				return true
			}),
			rewriteStage("backfill-description", func(env *Env, r *HitRow) {
				if strings.TrimSpace(r.Description) == "" {
					r.Description = r.Name
				}
			}),
			{Name: "hierarchy-prune", Run: func(env *Env, rows []*HitRow) []*HitRow {
				return HierarchyPrune(rows, env.Ref.Hierarchy)
			}},
		},
	},

	"cath": {
		Key:    "cath",
		XMLKey: "CATHGENE3D",
		Needs:  refdata.Needs{ModelMap: "cath/model2family.tsv"},
		Stages: []Stage{
			{Name: "map-model", Run: func(env *Env, rows []*HitRow) []*HitRow {
				kept := make([]*HitRow, 0, len(rows))
				for _, r := range rows {
					family, ok := env.Ref.ModelMap[StripIterationSuffix(r.Name)]
					if !ok {
						continue
					}
					r.Name = family
					r.Accession = family
					kept = append(kept, r)
				}
				return kept
			}},
			filterStage("acceptance-gate", func(env *Env, r *HitRow) bool {
				return r.EvalueValue() <= env.Cfg.EvalueCutoff && r.ScoreValue() >= env.Cfg.MinScore
			}),
			{Name: "collapse-overlaps", Run: func(env *Env, rows []*HitRow) []*HitRow {
				return NonOverlappingPerKey(rows, byTarget, env.Cfg.OverlapThreshold)
			}},
		},
	},

	"pirsr":   {Key: "pirsr", XMLKey: "PIRSR"},
	"antifam": {Key: "antifam", XMLKey: "ANTIFAM"},
}
