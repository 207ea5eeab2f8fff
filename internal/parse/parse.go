// Package parse translates the line-oriented surface syntax (spec.md §6)
// into a framework.Framework. It is a thin, stateless translator: the only
// semantic validation it performs is line-level syntax; everything about
// the 5-tuple's own invariants is left to framework.NewFramework.
package parse

import (
	"fmt"
	"strings"

	"github.com/arg-systems/abaplus/internal/framework"
)

// Parse reads the line-oriented format described in spec.md §6:
//
//	L: [l1, l2, …]
//	A: [a1, a2, …]
//	C(a): c
//	[ruleName]: head <- p1, p2, …
//	PREF: b1, b2, … > w
//
// Duplicate L:/A: lines replace prior values, matching the original
// parser's unconditional overwrite semantics. Blank lines and surrounding
// whitespace are insignificant. Any line matching none of the five forms
// is rejected with ErrMalformedInput naming the offending line number.
func Parse(text string) (*framework.Framework, error) {
	var language, assumptions []framework.Literal
	contraries := make(map[framework.Literal]framework.Literal)
	var rules []framework.Rule
	var preferences []framework.Preference

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lineNo := i + 1

		switch {
		case strings.HasPrefix(line, "L:"):
			language = splitItems(line[len("L:"):])

		case strings.HasPrefix(line, "A:"):
			assumptions = splitItems(line[len("A:"):])

		case strings.HasPrefix(line, "C(") && strings.Contains(line, "):"):
			a, c, err := parseContrary(line)
			if err != nil {
				return nil, malformed(lineNo, line, err)
			}
			contraries[a] = c

		case strings.HasPrefix(line, "[") && strings.Contains(line, "]:"):
			r, err := parseRule(line)
			if err != nil {
				return nil, malformed(lineNo, line, err)
			}
			rules = append(rules, r)

		case strings.HasPrefix(line, "PREF:"):
			prefs, err := parsePreference(line)
			if err != nil {
				return nil, malformed(lineNo, line, err)
			}
			preferences = append(preferences, prefs...)

		default:
			return nil, malformed(lineNo, line, fmt.Errorf("unrecognized line form"))
		}
	}

	fw, err := framework.NewFramework(language, assumptions, contraries, rules, preferences)
	if err != nil {
		return nil, fmt.Errorf("parse: Parse: %w", err)
	}
	return fw, nil
}

func malformed(lineNo int, line string, cause error) error {
	return fmt.Errorf("parse: line %d %q: %w: %w", lineNo, line, framework.ErrMalformedInput, cause)
}

// splitItems parses a "[a, b, c]" or bare "a, b, c" item list into literals,
// dropping empty entries produced by trailing commas or stray brackets.
func splitItems(rest string) []framework.Literal {
	rest = strings.Trim(strings.TrimSpace(rest), "[]")
	if rest == "" {
		return nil
	}
	parts := strings.Split(rest, ",")
	out := make([]framework.Literal, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, framework.Literal(p))
	}
	return out
}

// parseContrary parses "C(a): c".
func parseContrary(line string) (framework.Literal, framework.Literal, error) {
	colon := strings.Index(line, ":")
	if colon < 0 {
		return "", "", fmt.Errorf("missing ':' in contrary declaration")
	}
	head := line[:colon]
	if !strings.HasSuffix(head, ")") {
		return "", "", fmt.Errorf("missing ')' in contrary declaration")
	}
	a := strings.TrimSpace(head[len("C(") : len(head)-1])
	c := strings.TrimSpace(line[colon+1:])
	if a == "" || c == "" {
		return "", "", fmt.Errorf("empty contrary operand")
	}
	return framework.Literal(a), framework.Literal(c), nil
}

// parseRule parses "[name]: head <- p1, p2, …" or "[name]: head" (a fact).
func parseRule(line string) (framework.Rule, error) {
	closeBracket := strings.Index(line, "]:")
	name := strings.TrimSpace(line[1:closeBracket])
	body := strings.TrimSpace(line[closeBracket+2:])
	if name == "" || body == "" {
		return framework.Rule{}, fmt.Errorf("empty rule name or body")
	}

	if !strings.Contains(body, "<-") {
		return framework.Rule{Name: name, Conclusion: framework.Literal(body), Premises: nil}, nil
	}

	parts := strings.SplitN(body, "<-", 2)
	conclusion := strings.TrimSpace(parts[0])
	if conclusion == "" {
		return framework.Rule{}, fmt.Errorf("empty rule conclusion")
	}
	premises := splitItems(parts[1])
	return framework.Rule{Name: name, Conclusion: framework.Literal(conclusion), Premises: premises}, nil
}

// parsePreference parses "PREF: b1, b2, … > w" into one Preference per
// better item, all sharing the same worse operand. The original Python
// parser only ever handled a single better item; spec.md §6 extends this
// to a list, so multiple betters are supported here.
func parsePreference(line string) ([]framework.Preference, error) {
	body := strings.TrimSpace(line[len("PREF:"):])
	if !strings.Contains(body, ">") {
		return nil, fmt.Errorf("missing '>' in preference declaration")
	}
	parts := strings.SplitN(body, ">", 2)
	betters := splitItems(parts[0])
	worse := strings.TrimSpace(parts[1])
	if len(betters) == 0 || worse == "" {
		return nil, fmt.Errorf("empty preference operand")
	}
	out := make([]framework.Preference, len(betters))
	for i, b := range betters {
		out[i] = framework.Preference{Better: b, Worse: framework.Literal(worse)}
	}
	return out, nil
}
