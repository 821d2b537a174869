package pipelines

import (
	"sort"
	"strings"

	"github.com/profscan/profscan-go/refdata"
)

// Annotate attaches cross-reference ids, their descriptions and (optionally)
// ontology terms to each row. The lookup key is (xmlKey, accession); when the
// direct lookup misses and the accession carries a dotted suffix, the
// version-stripped form is retried. Descriptions stay aligned positionally
// with the cross-reference list, skipping ids with no known description, so
// the description list may be shorter than the id list. Ontology terms are
// the deduplicated union over all cross-reference ids, sorted
// lexicographically.
func Annotate(rows []*HitRow, xmlKey string, ref *refdata.Set, withOntology bool) {
	for _, r := range rows {
		acc := strings.TrimSpace(r.ID())
		refs := ref.Signatures[refdata.SignatureKey{DB: xmlKey, Signature: acc}]
		if len(refs) == 0 && strings.Contains(acc, ".") {
			refs = ref.Signatures[refdata.SignatureKey{DB: xmlKey, Signature: StripVersion(acc)}]
		}
		r.CrossRefs = refs

		descs := make([]string, 0, len(refs))
		for _, id := range refs {
			if d, ok := ref.CrossRefDescs[id]; ok && d != "" {
				descs = append(descs, d)
			}
		}
		r.CrossRefDescs = descs

		if withOntology {
			seen := make(map[string]bool)
			var terms []string
			for _, id := range refs {
				for _, term := range ref.Ontology[id] {
					if !seen[term] {
						seen[term] = true
						terms = append(terms, term)
					}
				}
			}
			sort.Strings(terms)
			r.Ontology = terms
		}
	}
}
