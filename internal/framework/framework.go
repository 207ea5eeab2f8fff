package framework

import (
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"
)

// Framework is the immutable 5-tuple (L, A, C, R, P) described in the
// specification's data model. It is constructed once by NewFramework; every
// rewrite returns a new value instead of mutating this one.
type Framework struct {
	language    map[Literal]struct{}
	assumptions map[Literal]struct{}
	contraries  map[Literal]Literal
	rules       []Rule
	preferences []Preference

	// sortedAssumptions caches the canonical entry-point ordering of A, and
	// rules is stored already sorted (spec: "canonical sort of A and R at
	// entry"), so downstream components never need to re-sort either.
	sortedAssumptions []Literal
}

// NewFramework validates and constructs a Framework. All invariants from
// the data model (assumption closure, literal closure, contrary totality,
// preference irreflexivity, preference domain) are checked; every violation
// found is returned together as a *multierror.Error rather than stopping at
// the first one.
func NewFramework(language, assumptions []Literal, contraries map[Literal]Literal, rules []Rule, preferences []Preference) (*Framework, error) {
	var result error

	langSet := make(map[Literal]struct{}, len(language))
	for _, l := range language {
		langSet[l] = struct{}{}
	}

	assumSet := make(map[Literal]struct{}, len(assumptions))
	for _, a := range assumptions {
		if _, ok := langSet[a]; !ok {
			result = multierror.Append(result, fmt.Errorf("assumption %q: %w", a, ErrUnknownLiteral))
		}
		assumSet[a] = struct{}{}
	}

	contraryCopy := make(map[Literal]Literal, len(contraries))
	for a, c := range contraries {
		if _, ok := assumSet[a]; !ok {
			result = multierror.Append(result, fmt.Errorf("contrary key %q: %w", a, ErrNotAssumption))
		}
		if _, ok := langSet[c]; !ok {
			result = multierror.Append(result, fmt.Errorf("contrary value %q: %w", c, ErrUnknownLiteral))
		}
		contraryCopy[a] = c
	}
	for a := range assumSet {
		if _, ok := contraryCopy[a]; !ok {
			result = multierror.Append(result, fmt.Errorf("assumption %q: %w", a, ErrUndefinedContrary))
		}
	}

	rulesCopy := make([]Rule, len(rules))
	for i, r := range rules {
		if _, ok := langSet[r.Conclusion]; !ok {
			result = multierror.Append(result, fmt.Errorf("rule %q conclusion %q: %w", r.Name, r.Conclusion, ErrUnknownLiteral))
		}
		premisesCopy := make([]Literal, len(r.Premises))
		for j, p := range r.Premises {
			if _, ok := langSet[p]; !ok {
				result = multierror.Append(result, fmt.Errorf("rule %q premise %q: %w", r.Name, p, ErrUnknownLiteral))
			}
			premisesCopy[j] = p
		}
		rulesCopy[i] = Rule{Name: r.Name, Conclusion: r.Conclusion, Premises: premisesCopy}
	}
	sort.Slice(rulesCopy, func(i, j int) bool {
		if rulesCopy[i].Conclusion != rulesCopy[j].Conclusion {
			return rulesCopy[i].Conclusion < rulesCopy[j].Conclusion
		}
		return rulesCopy[i].Name < rulesCopy[j].Name
	})

	prefsCopy := make([]Preference, len(preferences))
	for i, p := range preferences {
		if _, ok := assumSet[p.Better]; !ok {
			result = multierror.Append(result, fmt.Errorf("preference better %q: %w", p.Better, ErrPreferenceDomain))
		}
		if _, ok := assumSet[p.Worse]; !ok {
			result = multierror.Append(result, fmt.Errorf("preference worse %q: %w", p.Worse, ErrPreferenceDomain))
		}
		if p.Better == p.Worse {
			result = multierror.Append(result, fmt.Errorf("preference %q: %w", p.Better, ErrReflexivePreference))
		}
		prefsCopy[i] = p
	}

	if result != nil {
		return nil, result
	}

	sortedAssumptions := make([]Literal, 0, len(assumSet))
	for a := range assumSet {
		sortedAssumptions = append(sortedAssumptions, a)
	}
	sort.Slice(sortedAssumptions, func(i, j int) bool { return sortedAssumptions[i] < sortedAssumptions[j] })

	return &Framework{
		language:          langSet,
		assumptions:       assumSet,
		contraries:        contraryCopy,
		rules:             rulesCopy,
		preferences:       prefsCopy,
		sortedAssumptions: sortedAssumptions,
	}, nil
}

// Language returns the framework's literals in sorted order.
func (f *Framework) Language() []Literal {
	out := make([]Literal, 0, len(f.language))
	for l := range f.language {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Assumptions returns the framework's assumptions in sorted order.
func (f *Framework) Assumptions() []Literal {
	out := make([]Literal, len(f.sortedAssumptions))
	copy(out, f.sortedAssumptions)
	return out
}

// IsLiteral reports whether l belongs to L.
func (f *Framework) IsLiteral(l Literal) bool {
	_, ok := f.language[l]
	return ok
}

// IsAssumption reports whether l belongs to A.
func (f *Framework) IsAssumption(l Literal) bool {
	_, ok := f.assumptions[l]
	return ok
}

// Contraries returns a copy of the contrariness map.
func (f *Framework) Contraries() map[Literal]Literal {
	out := make(map[Literal]Literal, len(f.contraries))
	for a, c := range f.contraries {
		out[a] = c
	}
	return out
}

// Rules returns the rules in their canonical (conclusion, name) order.
func (f *Framework) Rules() []Rule {
	out := make([]Rule, len(f.rules))
	copy(out, f.rules)
	return out
}

// Preferences returns the preference pairs as given, with no transitive or
// reflexive closure computed.
func (f *Framework) Preferences() []Preference {
	out := make([]Preference, len(f.preferences))
	copy(out, f.preferences)
	return out
}

// ContraryOf looks up C(a). It returns ErrUndefinedContrary if a is not an
// assumption with a defined contrary; NewFramework already guarantees every
// assumption has one, so this only fails for literals outside A, and that
// error also matches ErrNotAssumption.
func (f *Framework) ContraryOf(a Literal) (Literal, error) {
	if !f.IsAssumption(a) {
		return "", fmt.Errorf("ContraryOf(%q): %w: %w", a, ErrUndefinedContrary, ErrNotAssumption)
	}
	c, ok := f.contraries[a]
	if !ok {
		return "", fmt.Errorf("ContraryOf(%q): %w", a, ErrUndefinedContrary)
	}
	return c, nil
}

// Prefer returns the preference relation between two assumptions x and y.
// Both must be in A.
func (f *Framework) Prefer(x, y Literal) (Relation, error) {
	if !f.IsAssumption(x) {
		return Incomparable, fmt.Errorf("Prefer(%q, _): %w", x, ErrNotAssumption)
	}
	if !f.IsAssumption(y) {
		return Incomparable, fmt.Errorf("Prefer(_, %q): %w", y, ErrNotAssumption)
	}
	for _, p := range f.preferences {
		if p.Better == x && p.Worse == y {
			return Greater, nil
		}
		if p.Better == y && p.Worse == x {
			return Less, nil
		}
	}
	return Incomparable, nil
}
