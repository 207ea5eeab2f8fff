// Package pipeline wires components C1-C7 into the three operation entry
// points spec.md §6 names (analyze, transform_atomic, transform_non_circular).
// It contains no reasoning logic of its own — only orchestration shared by
// internal/server and cmd/abaplus, which would otherwise duplicate it.
package pipeline

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/arg-systems/abaplus/internal/atomic"
	"github.com/arg-systems/abaplus/internal/attack"
	"github.com/arg-systems/abaplus/internal/dependency"
	"github.com/arg-systems/abaplus/internal/derive"
	"github.com/arg-systems/abaplus/internal/framework"
	"github.com/arg-systems/abaplus/internal/noncircular"
	"github.com/arg-systems/abaplus/internal/report"
)

// Mode selects which of spec.md §6's three operation entry points to run.
type Mode string

const (
	// Analyze runs the full pipeline: circularity check, atomic rewrite,
	// derivation, attack computation.
	Analyze Mode = "analyze"
	// TransformAtomic returns only the atomic-rewritten framework info.
	TransformAtomic Mode = "transform_atomic"
	// TransformNonCircular returns only the non-circular-rewritten
	// framework info.
	TransformNonCircular Mode = "transform_non_circular"
)

// Run executes mode over fw and returns the assembled Report. It never
// returns a Go error for a reasoning failure: those are represented as a
// {success:false} Report (spec.md §7). A non-nil error return means the
// caller gave Run something it cannot execute at all (an unknown mode).
func Run(ctx context.Context, fw *framework.Framework, mode Mode, logger hclog.Logger) (report.Report, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	isCircular, cycles, err := dependency.Cycles(fw)
	if err != nil {
		return report.Failure(framework.KindUnknown, err), nil
	}

	switch mode {
	case TransformNonCircular:
		rewritten, meta, err := noncircular.Rewrite(fw)
		if err != nil {
			return report.Failure(framework.KindUnknown, err), nil
		}
		return report.Assemble(fw, rewritten, isCircular, cycles, nil, attack.Result{}, &meta), nil

	case TransformAtomic:
		rewritten, err := atomic.Rewrite(fw)
		if err != nil {
			return report.Failure(framework.KindUnknown, err), nil
		}
		return report.Assemble(fw, rewritten, isCircular, cycles, nil, attack.Result{}, nil), nil

	case Analyze:
		if isCircular {
			return report.CircularOnly(fw, cycles), nil
		}
		rewritten, err := atomic.Rewrite(fw)
		if err != nil {
			return report.Failure(framework.KindUnknown, err), nil
		}
		args, err := derive.Derive(ctx, rewritten, logger)
		if err != nil {
			return report.Failure(framework.KindDerivationOverflow, err), nil
		}
		attacks, err := attack.Compute(ctx, rewritten, args)
		if err != nil {
			return report.Failure(framework.KindCancelled, err), nil
		}
		return report.Assemble(fw, rewritten, false, nil, args, attacks, nil), nil

	default:
		return report.Report{}, fmt.Errorf("pipeline: Run: unknown mode %q", mode)
	}
}
