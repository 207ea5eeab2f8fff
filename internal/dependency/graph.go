// Package dependency builds the rule-dependency graph over a Framework's
// literals, detects whether it is cyclic, and lists the cycles found by a
// depth-first search.
//
// The dependency graph has one vertex per literal in L and one directed
// edge conclusion -> premise per (rule, premise) pair, including premises
// that are themselves assumptions (spec.md §4.2: circularity is checked
// over the whole language, not just non-assumption literals — the
// non-circular invariant in §3 restricts to non-assumption literals only
// after the rewrite has run).
//
// Cycle enumeration reuses lvlath/dfs's three-color DFS structure, adapted
// from string vertex IDs to framework.Literal and from lvlath's
// undirected/mixed edge handling (which this domain never needs — the
// dependency graph is always directed) to a simpler, purely directed
// back-edge check.
package dependency

import (
	"fmt"
	"sort"

	"github.com/arg-systems/abaplus/internal/depgraph"
	"github.com/arg-systems/abaplus/internal/framework"
)

// Build constructs the rule-dependency graph for fw: one vertex per literal,
// one directed edge conclusion->premise per (rule, premise) pair.
func Build(fw *framework.Framework) *depgraph.Graph {
	g := depgraph.New()
	for _, l := range fw.Language() {
		g.AddVertex(l)
	}
	for _, r := range fw.Rules() {
		for _, p := range r.Premises {
			// Parallel edges across multiple rules sharing a (conclusion,
			// premise) pair collapse naturally: AddEdge reports false (and
			// is a no-op) on a duplicate, which is exactly the dedup this
			// graph wants.
			g.AddEdge(r.Conclusion, p)
		}
	}
	return g
}

// color marks a vertex's visitation state during cycle enumeration.
type color int

const (
	white color = iota
	gray
	black
)

// Cycles reports whether fw's dependency graph has a cycle and lists the
// elementary cycles its DFS closes. Nodes and, within each DFS step,
// neighbors are visited in sorted order so the result is deterministic
// (spec.md §4.2's tie-break rule). Each back edge to a vertex on the current
// DFS path yields one cycle; a cycle that only closes through an
// already-finished vertex is not listed, so the list need not hold every
// elementary cycle, while the boolean is exact. Each cycle is returned as a
// sorted-tuple canonical signature, duplicates by rotation or reversal
// collapsed.
func Cycles(fw *framework.Framework) (bool, [][]framework.Literal, error) {
	g := Build(fw)

	verts := g.Vertices() // already sorted by depgraph.Graph.Vertices()
	state := make(map[framework.Literal]color, len(verts))
	path := make([]framework.Literal, 0, len(verts))
	seen := make(map[string]struct{}, len(verts))
	var cycles [][]framework.Literal

	for _, v := range verts {
		if state[v] == white {
			visit(g, v, state, &path, seen, &cycles)
		}
	}

	sort.Slice(cycles, func(i, j int) bool { return join(cycles[i]) < join(cycles[j]) })

	if len(cycles) == 0 {
		return false, nil, nil
	}
	return true, cycles, nil
}

// CycleSubgraph returns the induced subgraph of fw's dependency graph
// restricted to literals that participate in at least one elementary
// cycle, for diagnostics and external visualization of a circular
// framework. Returns an empty graph if fw is not circular.
func CycleSubgraph(fw *framework.Framework) (*depgraph.Graph, error) {
	g := Build(fw)
	_, cycles, err := Cycles(fw)
	if err != nil {
		return nil, fmt.Errorf("dependency: CycleSubgraph: %w", err)
	}

	keep := make(map[framework.Literal]bool)
	for _, cycle := range cycles {
		for _, l := range cycle {
			keep[l] = true
		}
	}
	return g.InducedSubgraph(keep), nil
}

// visit performs the recursive DFS step from vertex id, recording any
// Gray->Gray back-edge it discovers as a new cycle.
func visit(g *depgraph.Graph, id framework.Literal, state map[framework.Literal]color, path *[]framework.Literal, seen map[string]struct{}, cycles *[][]framework.Literal) {
	state[id] = gray
	*path = append(*path, id)

	for _, nbr := range g.Neighbors(id) {
		switch state[nbr] {
		case white:
			visit(g, nbr, state, path, seen, cycles)
		case gray:
			record(nbr, *path, seen, cycles)
		}
	}

	*path = (*path)[:len(*path)-1]
	state[id] = black
}

// record extracts the cycle ending at start from the current DFS path,
// canonicalizes it (sorted vertex set), and appends it to cycles if its
// signature has not been seen before.
func record(start framework.Literal, path []framework.Literal, seen map[string]struct{}, cycles *[][]framework.Literal) {
	idx := indexOf(path, start)
	seq := append([]framework.Literal(nil), path[idx:]...)

	sig, canon := canonical(seq)
	if _, exists := seen[sig]; !exists {
		seen[sig] = struct{}{}
		*cycles = append(*cycles, canon)
	}
}

func indexOf(s []framework.Literal, val framework.Literal) int {
	for i, x := range s {
		if x == val {
			return i
		}
	}
	return -1
}

func join(c []framework.Literal) string {
	sig := ""
	for i, l := range c {
		if i > 0 {
			sig += ","
		}
		sig += string(l)
	}
	return sig
}

// canonical returns the deduplication signature and the sorted-tuple
// canonical form of an elementary cycle, per spec.md §4.2 ("sorted-tuple
// canonical form"). Unlike lvlath/dfs's cycle detector (which must preserve
// traversal order to describe a walkable path in an undirected/mixed
// graph), the ABA+ dependency graph only needs cycle *membership*, so the
// canonical form here is simply the sorted vertex set rather than a minimal
// rotation of a closed walk.
func canonical(cycle []framework.Literal) (string, []framework.Literal) {
	out := append([]framework.Literal(nil), cycle...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return join(out), out
}
