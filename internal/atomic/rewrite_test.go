package atomic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arg-systems/abaplus/internal/atomic"
	"github.com/arg-systems/abaplus/internal/framework"
)

func TestRewrite_AllPremisesAreAssumptions(t *testing.T) {
	fw, err := framework.NewFramework(
		[]framework.Literal{"a", "b", "p", "q"},
		[]framework.Literal{"a", "b"},
		map[framework.Literal]framework.Literal{"a": "p", "b": "q"},
		[]framework.Rule{
			{Name: "r1", Conclusion: "p", Premises: []framework.Literal{"b"}},
			{Name: "r2", Conclusion: "q", Premises: []framework.Literal{"a"}},
		},
		[]framework.Preference{{Better: "a", Worse: "b"}},
	)
	require.NoError(t, err)

	rewritten, err := atomic.Rewrite(fw)
	require.NoError(t, err)

	// p and q are non-assumption literals never appearing in a rule body,
	// so only literals actually used as premises get a derived pair.
	assert.True(t, rewritten.IsAssumption("a"))
	assert.True(t, rewritten.IsAssumption("b"))

	for _, r := range rewritten.Rules() {
		for _, p := range r.Premises {
			assert.True(t, rewritten.IsAssumption(p), "every premise of %q must be an assumption", r.Name)
		}
	}
}

func TestRewrite_NoAuxiliaryDerivedRule(t *testing.T) {
	fw, err := framework.NewFramework(
		[]framework.Literal{"a", "p", "s"},
		[]framework.Literal{"a"},
		map[framework.Literal]framework.Literal{"a": "s"},
		[]framework.Rule{
			{Name: "r1", Conclusion: "s", Premises: []framework.Literal{"p"}},
		},
		nil,
	)
	require.NoError(t, err)

	rewritten, err := atomic.Rewrite(fw)
	require.NoError(t, err)

	// p is non-assumption and appears in a rule body, so p_d/p_nd exist...
	assert.True(t, rewritten.IsAssumption("p_d"))
	assert.True(t, rewritten.IsAssumption("p_nd"))

	// ...but no rule concludes p_d: it is a pure assumption, never derived.
	for _, r := range rewritten.Rules() {
		assert.NotEqual(t, framework.Literal("p_d"), r.Conclusion)
	}
}

func TestRewrite_AssumptionPremisesUntouched(t *testing.T) {
	fw, err := framework.NewFramework(
		[]framework.Literal{"a", "s"},
		[]framework.Literal{"a"},
		map[framework.Literal]framework.Literal{"a": "s"},
		[]framework.Rule{{Name: "r1", Conclusion: "s", Premises: []framework.Literal{"a"}}},
		nil,
	)
	require.NoError(t, err)

	rewritten, err := atomic.Rewrite(fw)
	require.NoError(t, err)

	rules := rewritten.Rules()
	require.Len(t, rules, 1)
	assert.Equal(t, []framework.Literal{"a"}, rules[0].Premises)
}
