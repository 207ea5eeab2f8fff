// Package derive computes the least fixed point of arguments an ABA+
// framework supports (spec.md §4.5). Starting from the base arguments
// (a, {a}) for every assumption a, it repeatedly closes the argument set
// under rule application until no new (claim, support) pair appears.
package derive

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/arg-systems/abaplus/internal/framework"
)

// MaxIterations is the safety cap on fixed-point rounds (spec.md §4.5, §9).
// Over a finite language, convergence is guaranteed well before this; an
// implementation that exhausts it has a bug to diagnose, not a larger
// input to accommodate.
const MaxIterations = 100

// Derive returns the argument sequence fw supports, in derivation order:
// the base assumption arguments first (sorted), then rule-derived arguments
// in discovery order. An argument's position in the returned slice is its
// external ID (spec.md §3, §4.5).
//
// fw must already be atomic (every rule premise an assumption); the
// pipeline runs internal/atomic's Rewrite before calling Derive.
func Derive(ctx context.Context, fw *framework.Framework, logger hclog.Logger) ([]framework.Argument, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	args := make([]framework.Argument, 0, len(fw.Assumptions()))
	byClaim := make(map[framework.Literal][]framework.Support)
	seen := make(map[string]struct{})

	add := func(claim framework.Literal, support framework.Support) {
		key := string(claim) + "|" + support.Key()
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		args = append(args, framework.Argument{ID: len(args), Claim: claim, Support: support})
		byClaim[claim] = append(byClaim[claim], support)
	}

	for _, a := range fw.Assumptions() {
		add(a, framework.NewSupport(a))
	}

	rules := fw.Rules()
	for iteration := 0; iteration < MaxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("derive: Derive: %w: %w", framework.ErrCancelled, err)
		}

		// Snapshot the claim->supports index at the start of this round so
		// combinations are computed against the previous round's arguments
		// only (semi-naive evaluation); newly discovered arguments become
		// visible starting next round.
		snapshot := make(map[framework.Literal][]framework.Support, len(byClaim))
		for claim, supports := range byClaim {
			snapshot[claim] = append([]framework.Support(nil), supports...)
		}

		changed := false
		for _, r := range rules {
			for _, support := range combinations(r.Premises, snapshot) {
				before := len(args)
				add(r.Conclusion, support)
				if len(args) != before {
					changed = true
				}
			}
		}

		if !changed {
			return args, nil
		}
	}

	logger.Warn("derivation did not converge", "iteration_cap", MaxIterations, "argument_count", len(args))
	return nil, fmt.Errorf("derive: Derive: %w after %d arguments", framework.ErrDerivationOverflow, len(args))
}

// combinations returns every union-of-supports combination that satisfies
// premises, given the claim->supports index snapshot. A rule with an empty
// body yields exactly one (empty) combination. If any premise has no
// satisfying argument, it returns nil (the rule contributes nothing this
// round, per spec.md §4.5).
func combinations(premises []framework.Literal, byClaim map[framework.Literal][]framework.Support) []framework.Support {
	if len(premises) == 0 {
		return []framework.Support{framework.NewSupport()}
	}

	perPremise := make([][]framework.Support, len(premises))
	for i, p := range premises {
		supports, ok := byClaim[p]
		if !ok || len(supports) == 0 {
			return nil
		}
		perPremise[i] = supports
	}

	combos := []framework.Support{framework.NewSupport()}
	for _, supports := range perPremise {
		next := make([]framework.Support, 0, len(combos)*len(supports))
		for _, acc := range combos {
			for _, s := range supports {
				next = append(next, acc.Union(s))
			}
		}
		combos = next
	}
	return combos
}
