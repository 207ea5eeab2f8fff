// Package report assembles the structured Output envelope (spec.md §6) from
// a pipeline run's framework, arguments, and attacks. It is a pure
// structural assembler: no business logic lives here beyond the formatting
// of human-readable attack descriptions.
package report

import (
	"fmt"

	"github.com/arg-systems/abaplus/internal/attack"
	"github.com/arg-systems/abaplus/internal/framework"
	"github.com/arg-systems/abaplus/internal/noncircular"
)

// ArgumentView is the JSON projection of a framework.Argument.
type ArgumentView struct {
	ID         int      `json:"id"`
	Conclusion string   `json:"conclusion"`
	Support    []string `json:"support"`
}

// AttackCounts mirrors spec.md §6's attacks field.
type AttackCounts struct {
	Standard      int `json:"standard"`
	Normal        int `json:"normal"`
	Reverse       int `json:"reverse"`
	TotalABAPlus  int `json:"total_aba_plus"`
}

// AttackDetailEntry is one human-readable attack record.
type AttackDetailEntry struct {
	Description string `json:"description"`
	From        int    `json:"from"`
	To          int    `json:"to"`
}

// AttackDetails groups per-kind attack detail lists.
type AttackDetails struct {
	Standard []AttackDetailEntry `json:"standard"`
	Normal   []AttackDetailEntry `json:"normal"`
	Reverse  []AttackDetailEntry `json:"reverse"`
}

// RuleView is the JSON projection of a framework.Rule.
type RuleView struct {
	Name       string   `json:"name"`
	Conclusion string   `json:"conclusion"`
	Premises   []string `json:"premises"`
}

// FrameworkInfo echoes the original (pre-rewrite) framework, including the
// parsed rules (original_source's ABAFramework.__str__ / the Flask app's
// framework_info.original_rules field, dropped by the spec.md distillation
// and restored here — spec.md's Non-goals do not exclude it).
type FrameworkInfo struct {
	OriginalLanguage    []string            `json:"original_language"`
	OriginalAssumptions []string            `json:"original_assumptions"`
	OriginalContraries  map[string]string   `json:"original_contraries"`
	Preferences         [][2]string         `json:"preferences"`
	OriginalRules       []RuleView          `json:"original_rules"`
}

// AtomicFrameworkInfo describes the rewritten framework of a run: the atomic
// rewrite under analyze and transform_atomic (under analyze it is the
// framework argument derivation and attack computation ran over), the
// non-circular rewrite under transform_non_circular. The transform modes run
// no derivation or attack computation.
type AtomicFrameworkInfo struct {
	Language    []string          `json:"language"`
	Assumptions []string          `json:"assumptions"`
	Contraries  map[string]string `json:"contraries"`
	RulesCount  int               `json:"rules_count"`
	Rules       []RuleView        `json:"rules"`
}

// TransformationInfo carries non-circular rewrite metadata (spec.md §4.7,
// §6); present only when transform_non_circular ran.
type TransformationInfo struct {
	K           int      `json:"k"`
	NewLiterals []string `json:"new_literals"`
	RulesAdded  int      `json:"rules_added"`
}

// Report is the structured result envelope (spec.md §6).
type Report struct {
	Success              bool                 `json:"success"`
	IsCircular           bool                 `json:"is_circular"`
	CircularDependencies [][]string           `json:"circular_dependencies"`
	Arguments            []ArgumentView       `json:"arguments"`
	Attacks              AttackCounts         `json:"attacks"`
	AttackDetails        AttackDetails        `json:"attack_details"`
	FrameworkInfo        FrameworkInfo        `json:"framework_info"`
	AtomicFramework      *AtomicFrameworkInfo `json:"atomic_framework,omitempty"`
	TransformationInfo   *TransformationInfo  `json:"transformation_info,omitempty"`
	Error                string               `json:"error,omitempty"`
}

// Failure builds the {success:false, error:<message>} envelope (spec.md §7).
func Failure(kind framework.ErrorKind, err error) Report {
	return Report{
		Success: false,
		Error:   fmt.Sprintf("%s: %s", kind, err),
	}
}

// CircularOnly builds the envelope returned by analyze when the framework is
// circular: only the circularity diagnosis is populated (spec.md §6).
func CircularOnly(original *framework.Framework, cycles [][]framework.Literal) Report {
	return Report{
		Success:              true,
		IsCircular:           true,
		CircularDependencies: literalCycles(cycles),
		FrameworkInfo:        frameworkInfo(original),
	}
}

// Assemble builds the full envelope for a completed pipeline run.
func Assemble(original, rewritten *framework.Framework, isCircular bool, cycles [][]framework.Literal, args []framework.Argument, attacks attack.Result, ncMeta *noncircular.Metadata) Report {
	r := Report{
		Success:              true,
		IsCircular:           isCircular,
		CircularDependencies: literalCycles(cycles),
		Arguments:            argumentViews(args),
		Attacks: AttackCounts{
			Standard:     len(attacks.Standard),
			Normal:       len(attacks.Normal),
			Reverse:      len(attacks.Reverse),
			TotalABAPlus: len(attacks.Normal) + len(attacks.Reverse),
		},
		AttackDetails: AttackDetails{
			Standard: attackDetails(attacks.Standard, args),
			Normal:   attackDetails(attacks.Normal, args),
			Reverse:  reverseDetails(attacks.Reverse, args),
		},
		FrameworkInfo: frameworkInfo(original),
	}

	atomicInfo := atomicFrameworkInfo(rewritten)
	r.AtomicFramework = &atomicInfo

	if ncMeta != nil {
		r.TransformationInfo = &TransformationInfo{
			K:           ncMeta.K,
			NewLiterals: literalStrings(ncMeta.NewLiterals),
			RulesAdded:  ncMeta.RulesAdded,
		}
	}

	return r
}

func literalCycles(cycles [][]framework.Literal) [][]string {
	out := make([][]string, len(cycles))
	for i, c := range cycles {
		out[i] = literalStrings(c)
	}
	return out
}

func literalStrings(lits []framework.Literal) []string {
	out := make([]string, len(lits))
	for i, l := range lits {
		out[i] = string(l)
	}
	return out
}

func argumentViews(args []framework.Argument) []ArgumentView {
	out := make([]ArgumentView, len(args))
	for i, a := range args {
		out[i] = ArgumentView{ID: a.ID, Conclusion: string(a.Claim), Support: literalStrings(a.Support.Sorted())}
	}
	return out
}

func ruleViews(rules []framework.Rule) []RuleView {
	out := make([]RuleView, len(rules))
	for i, r := range rules {
		out[i] = RuleView{Name: r.Name, Conclusion: string(r.Conclusion), Premises: literalStrings(r.Premises)}
	}
	return out
}

func frameworkInfo(fw *framework.Framework) FrameworkInfo {
	contraries := make(map[string]string, len(fw.Contraries()))
	for a, c := range fw.Contraries() {
		contraries[string(a)] = string(c)
	}
	prefs := fw.Preferences()
	prefPairs := make([][2]string, len(prefs))
	for i, p := range prefs {
		prefPairs[i] = [2]string{string(p.Better), string(p.Worse)}
	}
	return FrameworkInfo{
		OriginalLanguage:    literalStrings(fw.Language()),
		OriginalAssumptions: literalStrings(fw.Assumptions()),
		OriginalContraries:  contraries,
		Preferences:         prefPairs,
		OriginalRules:       ruleViews(fw.Rules()),
	}
}

func atomicFrameworkInfo(fw *framework.Framework) AtomicFrameworkInfo {
	contraries := make(map[string]string, len(fw.Contraries()))
	for a, c := range fw.Contraries() {
		contraries[string(a)] = string(c)
	}
	rules := fw.Rules()
	return AtomicFrameworkInfo{
		Language:    literalStrings(fw.Language()),
		Assumptions: literalStrings(fw.Assumptions()),
		Contraries:  contraries,
		RulesCount:  len(rules),
		Rules:       ruleViews(rules),
	}
}

func attackDetails(attacks []framework.Attack, args []framework.Argument) []AttackDetailEntry {
	claimOf := claimIndex(args)
	out := make([]AttackDetailEntry, len(attacks))
	for i, a := range attacks {
		var desc string
		switch a.Kind {
		case framework.Standard:
			desc = fmt.Sprintf("Argument %d (%s) attacks Argument %d via assumption '%s'", a.AttackerID, claimOf[a.AttackerID], a.TargetID, a.Via)
		case framework.Normal:
			desc = fmt.Sprintf("NORMAL attack: Argument %d -> Argument %d (via '%s')", a.AttackerID, a.TargetID, a.Via)
		default:
			desc = fmt.Sprintf("Argument %d attacks Argument %d via '%s'", a.AttackerID, a.TargetID, a.Via)
		}
		out[i] = AttackDetailEntry{Description: desc, From: a.AttackerID, To: a.TargetID}
	}
	return out
}

func reverseDetails(attacks []framework.Attack, args []framework.Argument) []AttackDetailEntry {
	claimOf := claimIndex(args)
	out := make([]AttackDetailEntry, len(attacks))
	for i, a := range attacks {
		desc := fmt.Sprintf(
			"REVERSE attack: Argument %d (X) -> Argument %d (Y) - Y attacks X via '%s'=C('%s') but y'='%s' < x='%s'",
			a.AttackerID, a.TargetID, claimOf[a.TargetID], a.Via, a.Weak, a.Via,
		)
		out[i] = AttackDetailEntry{Description: desc, From: a.AttackerID, To: a.TargetID}
	}
	return out
}

func claimIndex(args []framework.Argument) map[int]string {
	out := make(map[int]string, len(args))
	for _, a := range args {
		out[a.ID] = string(a.Claim)
	}
	return out
}
