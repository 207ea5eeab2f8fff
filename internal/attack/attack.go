// Package attack computes the ABA+ attack relations over a derived argument
// sequence: standard (classical ABA), normal, and reverse (spec.md §4.6).
// The ABA+ attack relation proper is the union of Normal and Reverse;
// Standard attacks are retained only as a diagnostic.
package attack

import (
	"context"
	"fmt"

	"github.com/arg-systems/abaplus/internal/framework"
)

// Result holds the three attack sets computed over one argument sequence.
type Result struct {
	Standard []framework.Attack
	Normal   []framework.Attack
	Reverse  []framework.Attack
}

// ABAPlus returns the union of Normal and Reverse attacks: the ABA+ attack
// relation proper (spec.md §4.6).
func (r Result) ABAPlus() []framework.Attack {
	out := make([]framework.Attack, 0, len(r.Normal)+len(r.Reverse))
	out = append(out, r.Normal...)
	out = append(out, r.Reverse...)
	return out
}

// Compute derives Standard, Normal, and Reverse attacks over args under fw.
// Self-attacks (X == Y) are excluded from all three sets (spec.md §4.6, §8).
// ctx is polled once per outer (attacker) loop iteration, per spec.md §5.
func Compute(ctx context.Context, fw *framework.Framework, args []framework.Argument) (Result, error) {
	standard, err := standardAttacks(ctx, fw, args)
	if err != nil {
		return Result{}, fmt.Errorf("attack: Compute: %w", err)
	}
	normal, err := normalAttacks(ctx, fw, args, standard)
	if err != nil {
		return Result{}, fmt.Errorf("attack: Compute: %w", err)
	}
	reverse, err := reverseAttacks(ctx, fw, args)
	if err != nil {
		return Result{}, fmt.Errorf("attack: Compute: %w", err)
	}
	return Result{Standard: standard, Normal: normal, Reverse: reverse}, nil
}

// standardAttacks implements spec.md §4.6's Standard attack definition: for
// distinct X, Y and every a in S_Y with C(a) == claim(X), emit one record.
func standardAttacks(ctx context.Context, fw *framework.Framework, args []framework.Argument) ([]framework.Attack, error) {
	var out []framework.Attack
	for _, x := range args {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", framework.ErrCancelled, err)
		}
		for _, y := range args {
			if x.ID == y.ID {
				continue
			}
			for _, a := range y.Support.Sorted() {
				contrary, err := fw.ContraryOf(a)
				if err != nil {
					return nil, err
				}
				if contrary == x.Claim {
					out = append(out, framework.Attack{
						Kind:       framework.Standard,
						AttackerID: x.ID,
						TargetID:   y.ID,
						Via:        a,
					})
				}
			}
		}
	}
	return out, nil
}

// normalAttacks filters standard into Normal: an attack survives iff no
// assumption in the attacker's support is strictly less preferred than the
// assumption being targeted (spec.md §4.6).
func normalAttacks(ctx context.Context, fw *framework.Framework, args []framework.Argument, standard []framework.Attack) ([]framework.Attack, error) {
	byID := indexByID(args)
	var out []framework.Attack
	for i, a := range standard {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("%w: %w", framework.ErrCancelled, err)
			}
		}
		attacker := byID[a.AttackerID]
		weaker := false
		for _, x := range attacker.Support.Sorted() {
			rel, err := fw.Prefer(x, a.Via)
			if err != nil {
				return nil, err
			}
			if rel == framework.Less {
				weaker = true
				break
			}
		}
		if !weaker {
			out = append(out, framework.Attack{Kind: framework.Normal, AttackerID: a.AttackerID, TargetID: a.TargetID, Via: a.Via})
		}
	}
	return out, nil
}

// reverseAttacks implements spec.md §4.6's Reverse attack definition: for
// distinct X, Y and every x in S_X with C(x) == claim(Y) (so Y would
// standardly attack X at x), if some y' in S_Y has prefer(y', x) == Less,
// emit exactly one Reverse record using the first such y' in sorted order.
func reverseAttacks(ctx context.Context, fw *framework.Framework, args []framework.Argument) ([]framework.Attack, error) {
	var out []framework.Attack
	for _, x := range args {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", framework.ErrCancelled, err)
		}
		for _, y := range args {
			if x.ID == y.ID {
				continue
			}
			for _, target := range x.Support.Sorted() {
				contrary, err := fw.ContraryOf(target)
				if err != nil {
					return nil, err
				}
				if contrary != y.Claim {
					continue
				}
				weak, ok, err := firstWeakWitness(fw, y.Support, target)
				if err != nil {
					return nil, err
				}
				if ok {
					out = append(out, framework.Attack{
						Kind:       framework.Reverse,
						AttackerID: x.ID,
						TargetID:   y.ID,
						Via:        target,
						Weak:       weak,
					})
				}
			}
		}
	}
	return out, nil
}

// firstWeakWitness returns the first y' in ySupport (sorted order) with
// prefer(y', target) == Less.
func firstWeakWitness(fw *framework.Framework, ySupport framework.Support, target framework.Literal) (framework.Literal, bool, error) {
	for _, yPrime := range ySupport.Sorted() {
		rel, err := fw.Prefer(yPrime, target)
		if err != nil {
			return "", false, err
		}
		if rel == framework.Less {
			return yPrime, true, nil
		}
	}
	return "", false, nil
}

func indexByID(args []framework.Argument) map[int]framework.Argument {
	out := make(map[int]framework.Argument, len(args))
	for _, a := range args {
		out[a.ID] = a
	}
	return out
}
