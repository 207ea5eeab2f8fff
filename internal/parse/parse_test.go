package parse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arg-systems/abaplus/internal/framework"
	"github.com/arg-systems/abaplus/internal/parse"
)

func TestParse_S1(t *testing.T) {
	text := `
L: [a, b, p, q]
A: [a, b]
C(a): p
C(b): q
[r1]: p <- b
[r2]: q <- a
PREF: a > b
`
	fw, err := parse.Parse(text)
	require.NoError(t, err)
	assert.Equal(t, []framework.Literal{"a", "b"}, fw.Assumptions())

	c, err := fw.ContraryOf("a")
	require.NoError(t, err)
	assert.Equal(t, framework.Literal("p"), c)

	rel, err := fw.Prefer("a", "b")
	require.NoError(t, err)
	assert.Equal(t, framework.Greater, rel)

	rules := fw.Rules()
	require.Len(t, rules, 2)
}

func TestParse_FactRuleHasNoPremises(t *testing.T) {
	text := `
L: [a, p]
A: [a]
C(a): p
[r1]: p
`
	fw, err := parse.Parse(text)
	require.NoError(t, err)
	rules := fw.Rules()
	require.Len(t, rules, 1)
	assert.True(t, rules[0].IsFact())
}

func TestParse_DuplicateLanguageLineOverwrites(t *testing.T) {
	text := `
L: [a]
A: [a]
C(a): a
L: [a, b]
A: [a, b]
C(b): a
`
	fw, err := parse.Parse(text)
	require.NoError(t, err)
	assert.ElementsMatch(t, []framework.Literal{"a", "b"}, fw.Assumptions())
}

func TestParse_MultiBetterPreference(t *testing.T) {
	text := `
L: [a, b, c]
A: [a, b, c]
C(a): a
C(b): b
C(c): c
PREF: a, b > c
`
	fw, err := parse.Parse(text)
	require.NoError(t, err)

	rel, err := fw.Prefer("a", "c")
	require.NoError(t, err)
	assert.Equal(t, framework.Greater, rel)

	rel, err = fw.Prefer("b", "c")
	require.NoError(t, err)
	assert.Equal(t, framework.Greater, rel)
}

func TestParse_MalformedLineReportsLineNumber(t *testing.T) {
	text := "L: [a]\nA: [a]\nC(a): a\nthis is not a valid line\n"
	_, err := parse.Parse(text)
	require.Error(t, err)
	assert.ErrorIs(t, err, framework.ErrMalformedInput)
	assert.Contains(t, err.Error(), "line 4")
}

func TestParse_BlankLinesIgnored(t *testing.T) {
	text := "\n\nL: [a]\n\nA: [a]\nC(a): a\n\n"
	fw, err := parse.Parse(text)
	require.NoError(t, err)
	assert.Equal(t, []framework.Literal{"a"}, fw.Assumptions())
}
