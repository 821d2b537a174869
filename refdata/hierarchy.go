package refdata

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Hierarchy is a forest over family identifiers encoding specificity levels.
// It exposes the two views the pipelines need: direct children of a node and
// the full (transitive) ancestor set of a node. Depth is unbounded and
// multiple independent trees are allowed.
type Hierarchy struct {
	children  map[string][]string
	parents   map[string][]string
	ancestors map[string]map[string]bool
}

// NewHierarchy builds a hierarchy from a parent -> direct children adjacency
// map. The ancestor closure is computed once here; cycles in the input are
// tolerated (traversal stops at already-visited nodes) so ancestor sets are
// always finite.
func NewHierarchy(children map[string][]string) *Hierarchy {
	h := &Hierarchy{
		children:  make(map[string][]string, len(children)),
		parents:   make(map[string][]string),
		ancestors: make(map[string]map[string]bool),
	}
	for parent, kids := range children {
		for _, kid := range kids {
			h.addEdge(parent, kid)
		}
	}
	h.buildClosure()
	return h
}

func (h *Hierarchy) addEdge(parent, child string) {
	if parent == "" || child == "" || parent == child {
		return
	}
	for _, existing := range h.children[parent] {
		if existing == child {
			return
		}
	}
	h.children[parent] = append(h.children[parent], child)
	h.parents[child] = append(h.parents[child], parent)
}

func (h *Hierarchy) buildClosure() {
	for node := range h.parents {
		set := make(map[string]bool)
		h.collectAncestors(node, set)
		h.ancestors[node] = set
	}
}

func (h *Hierarchy) collectAncestors(node string, set map[string]bool) {
	for _, p := range h.parents[node] {
		if set[p] {
			continue
		}
		set[p] = true
		h.collectAncestors(p, set)
	}
}

// Children returns the direct children of a node, nil when it has none.
func (h *Hierarchy) Children(id string) []string {
	return h.children[id]
}

// Ancestors returns the set of proper ancestors of a node. The returned map
// must not be modified.
func (h *Hierarchy) Ancestors(id string) map[string]bool {
	return h.ancestors[id]
}

// IsAncestor reports whether anc is a direct or transitive ancestor of id.
func (h *Hierarchy) IsAncestor(anc, id string) bool {
	return h.ancestors[id][anc]
}

// Len returns the number of nodes with at least one edge.
func (h *Hierarchy) Len() int {
	nodes := make(map[string]bool)
	for p, kids := range h.children {
		nodes[p] = true
		for _, k := range kids {
			nodes[k] = true
		}
	}
	return len(nodes)
}

// LoadHierarchy parses a hierarchy path table: each line lists a root-to-leaf
// path of whitespace-delimited ids, and every adjacent pair defines a
// parent/child edge. Lines with fewer than two ids contribute no edges.
func LoadHierarchy(path string) (*Hierarchy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	children := make(map[string][]string)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids := strings.Fields(line)
		for i := 0; i+1 < len(ids); i++ {
			children[ids[i]] = append(children[ids[i]], ids[i+1])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read hierarchy file %s: %w", path, err)
	}
	return NewHierarchy(children), nil
}
