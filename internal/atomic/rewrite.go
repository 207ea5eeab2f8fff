// Package atomic implements the atomic rewrite (spec.md §4.4): every
// non-assumption literal appearing in a rule body is replaced by a fresh
// "derived" assumption, so every rule premise in the rewritten framework is
// an assumption. Argument derivation (internal/derive) and the attack
// calculator (internal/attack) are only well-defined over such an atomic
// framework (spec.md §1).
package atomic

import (
	"fmt"

	"github.com/arg-systems/abaplus/internal/framework"
)

// Rewrite produces a framework equivalent to fw in which every rule premise
// is an assumption (spec.md §3 invariant 5). For each non-assumption
// literal ℓ appearing in a rule body it introduces two fresh assumptions:
//
//   - ℓ_d ("derived"), contrary ℓ_nd
//   - ℓ_nd ("non-derived"), contrary ℓ
//
// No auxiliary rule ℓ_d ← ℓ is emitted: this is the majority-draft reading
// of the original source that spec.md §9 adopts, so ℓ_d remains a pure
// assumption attackable only via ℓ_nd.
func Rewrite(fw *framework.Framework) (*framework.Framework, error) {
	bodyLiterals := nonAssumptionBodyLiterals(fw)

	newLanguage := append([]framework.Literal(nil), fw.Language()...)
	newAssumptions := append([]framework.Literal(nil), fw.Assumptions()...)
	contraries := fw.Contraries()

	derivedOf := make(map[framework.Literal]framework.Literal, len(bodyLiterals))
	for _, l := range bodyLiterals {
		d := framework.Literal(fmt.Sprintf("%s_d", l))
		nd := framework.Literal(fmt.Sprintf("%s_nd", l))
		derivedOf[l] = d

		newLanguage = append(newLanguage, d, nd)
		newAssumptions = append(newAssumptions, d, nd)
		contraries[d] = nd
		contraries[nd] = l
	}

	substitute := func(p framework.Literal) framework.Literal {
		if fw.IsAssumption(p) {
			return p
		}
		return derivedOf[p]
	}

	newRules := make([]framework.Rule, 0, len(fw.Rules()))
	for _, r := range fw.Rules() {
		premises := make([]framework.Literal, len(r.Premises))
		for i, p := range r.Premises {
			premises[i] = substitute(p)
		}
		newRules = append(newRules, framework.Rule{
			Name:       "atom_" + r.Name,
			Conclusion: r.Conclusion,
			Premises:   premises,
		})
	}

	rewritten, err := framework.NewFramework(newLanguage, newAssumptions, contraries, newRules, fw.Preferences())
	if err != nil {
		return nil, fmt.Errorf("atomic: Rewrite: %w", err)
	}
	return rewritten, nil
}

// nonAssumptionBodyLiterals returns every non-assumption literal that appears
// as a premise of some rule in fw, once each, in order of first appearance
// across fw's canonical rule order.
func nonAssumptionBodyLiterals(fw *framework.Framework) []framework.Literal {
	seen := make(map[framework.Literal]struct{})
	var out []framework.Literal
	for _, r := range fw.Rules() {
		for _, p := range r.Premises {
			if fw.IsAssumption(p) {
				continue
			}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}
