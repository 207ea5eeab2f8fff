// Package noncircular implements the non-circular rewrite (spec.md §4.3):
// level-indexing every non-assumption literal so the rule-dependency graph,
// restricted to non-assumption literals, becomes acyclic by construction.
// Argument derivation (internal/derive) only terminates soundly over a
// non-circular framework's fixed point, which is why this rewrite exists as
// a separate, static pass rather than a cycle-breaking heuristic inside the
// derivation loop itself (spec.md §9's design note).
package noncircular

import (
	"fmt"

	"github.com/arg-systems/abaplus/internal/framework"
)

// Metadata describes the size of a non-circular rewrite, reported in the
// envelope's transformation_info field (spec.md §6).
type Metadata struct {
	// K is |L \ A|, the number of level-index copies created per non-assumption literal.
	K int
	// NewLiterals lists every fresh s_j literal added to L°.
	NewLiterals []framework.Literal
	// RulesAdded is the number of rules in the rewritten framework's R°.
	RulesAdded int
}

// Rewrite produces a framework equivalent to fw whose dependency graph,
// restricted to non-assumption literals, is acyclic (spec.md §3 invariant
// 6). Preferences and the contrariness of original assumptions are carried
// over unchanged.
func Rewrite(fw *framework.Framework) (*framework.Framework, Metadata, error) {
	nonAssumptions := nonAssumptionLiterals(fw)
	k := len(nonAssumptions)

	// symbolOf[(s, j)] = s_j, defined only for s in N (spec.md §4.3).
	symbolOf := make(map[framework.Literal][]framework.Literal, len(nonAssumptions))
	newLanguage := append([]framework.Literal(nil), fw.Language()...)
	newAssumptions := append([]framework.Literal(nil), fw.Assumptions()...)
	contraries := fw.Contraries()

	for _, s := range nonAssumptions {
		levels := make([]framework.Literal, k+1) // 1-indexed; index 0 unused
		for j := 1; j <= k; j++ {
			sj := framework.Literal(fmt.Sprintf("%s_%d", s, j))
			levels[j] = sj
			newLanguage = append(newLanguage, sj)
			newAssumptions = append(newAssumptions, sj)
			if c, ok := contraries[s]; ok {
				contraries[sj] = c
			} else {
				contraries[sj] = s
			}
		}
		symbolOf[s] = levels
	}

	isNonAssumption := func(l framework.Literal) bool {
		_, ok := symbolOf[l]
		return ok
	}
	substitute := func(p framework.Literal, j int) framework.Literal {
		if fw.IsAssumption(p) {
			return p
		}
		return symbolOf[p][j]
	}

	var newRules []framework.Rule
	for _, r := range fw.Rules() {
		if !isNonAssumption(r.Conclusion) {
			// Conclusion is already an assumption; level-indexing does not
			// apply to it (spec.md §4.3 only indexes non-assumption
			// literals), so the rule passes through unchanged.
			newRules = append(newRules, r)
			continue
		}
		levels := symbolOf[r.Conclusion]
		if r.IsFact() {
			for j := 1; j <= k; j++ {
				newRules = append(newRules, framework.Rule{
					Name:       fmt.Sprintf("%s_%d", r.Name, j),
					Conclusion: levels[j],
					Premises:   nil,
				})
			}
			continue
		}
		for j := 2; j <= k; j++ {
			premises := make([]framework.Literal, len(r.Premises))
			for i, p := range r.Premises {
				premises[i] = substitute(p, j-1)
			}
			newRules = append(newRules, framework.Rule{
				Name:       fmt.Sprintf("%s_%d", r.Name, j),
				Conclusion: levels[j],
				Premises:   premises,
			})
		}
	}

	rewritten, err := framework.NewFramework(newLanguage, newAssumptions, contraries, newRules, fw.Preferences())
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("noncircular: Rewrite: %w", err)
	}

	newLiterals := make([]framework.Literal, 0, k*len(nonAssumptions))
	for _, levels := range symbolOf {
		newLiterals = append(newLiterals, levels[1:]...)
	}

	return rewritten, Metadata{K: k, NewLiterals: newLiterals, RulesAdded: len(newRules)}, nil
}

// nonAssumptionLiterals returns N = L \ A in sorted order.
func nonAssumptionLiterals(fw *framework.Framework) []framework.Literal {
	assum := make(map[framework.Literal]struct{})
	for _, a := range fw.Assumptions() {
		assum[a] = struct{}{}
	}
	var out []framework.Literal
	for _, l := range fw.Language() {
		if _, ok := assum[l]; !ok {
			out = append(out, l)
		}
	}
	return out
}
