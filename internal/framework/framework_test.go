package framework_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arg-systems/abaplus/internal/framework"
)

func validFramework(t *testing.T) *framework.Framework {
	t.Helper()
	fw, err := framework.NewFramework(
		[]framework.Literal{"a", "b", "p", "q"},
		[]framework.Literal{"a", "b"},
		map[framework.Literal]framework.Literal{"a": "p", "b": "q"},
		[]framework.Rule{
			{Name: "r1", Conclusion: "p", Premises: []framework.Literal{"b"}},
		},
		[]framework.Preference{{Better: "a", Worse: "b"}},
	)
	require.NoError(t, err)
	return fw
}

func TestNewFramework_Valid(t *testing.T) {
	fw := validFramework(t)
	assert.Equal(t, []framework.Literal{"a", "b"}, fw.Assumptions())
	assert.True(t, fw.IsLiteral("p"))
	assert.False(t, fw.IsAssumption("p"))
}

func TestNewFramework_AggregatesAllViolations(t *testing.T) {
	_, err := framework.NewFramework(
		[]framework.Literal{"a"},
		[]framework.Literal{"a", "ghost"},
		map[framework.Literal]framework.Literal{"a": "nowhere"},
		[]framework.Rule{{Name: "r", Conclusion: "missing", Premises: []framework.Literal{"also-missing"}}},
		[]framework.Preference{{Better: "a", Worse: "a"}},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, framework.ErrUnknownLiteral)
	assert.ErrorIs(t, err, framework.ErrReflexivePreference)
}

func TestNewFramework_UndefinedContrary(t *testing.T) {
	_, err := framework.NewFramework(
		[]framework.Literal{"a", "p"},
		[]framework.Literal{"a"},
		nil,
		nil,
		nil,
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, framework.ErrUndefinedContrary)
}

func TestContraryOf(t *testing.T) {
	fw := validFramework(t)
	c, err := fw.ContraryOf("a")
	require.NoError(t, err)
	assert.Equal(t, framework.Literal("p"), c)

	_, err = fw.ContraryOf("p")
	assert.ErrorIs(t, err, framework.ErrNotAssumption)
}

func TestPrefer(t *testing.T) {
	fw := validFramework(t)

	rel, err := fw.Prefer("a", "b")
	require.NoError(t, err)
	assert.Equal(t, framework.Greater, rel)

	rel, err = fw.Prefer("b", "a")
	require.NoError(t, err)
	assert.Equal(t, framework.Less, rel)

	_, err = fw.Prefer("p", "a")
	assert.ErrorIs(t, err, framework.ErrNotAssumption)
}

func TestRulesCanonicalOrder(t *testing.T) {
	fw, err := framework.NewFramework(
		[]framework.Literal{"a", "p"},
		[]framework.Literal{"a"},
		map[framework.Literal]framework.Literal{"a": "p"},
		[]framework.Rule{
			{Name: "zzz", Conclusion: "p"},
			{Name: "aaa", Conclusion: "p"},
		},
		nil,
	)
	require.NoError(t, err)
	rules := fw.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, "aaa", rules[0].Name)
	assert.Equal(t, "zzz", rules[1].Name)
}

func TestSupportKeyIsOrderIndependent(t *testing.T) {
	s1 := framework.NewSupport("b", "a")
	s2 := framework.NewSupport("a", "b")
	assert.Equal(t, s1.Key(), s2.Key())
}
