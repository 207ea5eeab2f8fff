package attack_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arg-systems/abaplus/internal/attack"
	"github.com/arg-systems/abaplus/internal/derive"
	"github.com/arg-systems/abaplus/internal/framework"
)

// S4 from the surface scenario catalog: a fact (p,∅) standardly attacks
// (a,{a}) via a; the Normal filter trivially passes (empty attacker
// support has nothing weaker to offer); there is no Reverse counterpart
// since an empty support has no weak witness.
func TestCompute_FactAttacksAssumption(t *testing.T) {
	fw, err := framework.NewFramework(
		[]framework.Literal{"a", "p"},
		[]framework.Literal{"a"},
		map[framework.Literal]framework.Literal{"a": "p"},
		[]framework.Rule{{Name: "r1", Conclusion: "p"}},
		nil,
	)
	require.NoError(t, err)

	args, err := derive.Derive(context.Background(), fw, nil)
	require.NoError(t, err)

	result, err := attack.Compute(context.Background(), fw, args)
	require.NoError(t, err)

	assert.Len(t, result.Standard, 1)
	assert.Len(t, result.Normal, 1)
	assert.Empty(t, result.Reverse)
	assert.Len(t, result.ABAPlus(), 1)
}

// Mutually contrary assumptions under a strict preference: each standardly
// attacks the other, and the preference order splits the pair into one
// Normal survivor and one Reverse attack rather than two Normal attacks.
func TestCompute_ReverseOverridesNormal(t *testing.T) {
	fw, err := framework.NewFramework(
		[]framework.Literal{"a", "b"},
		[]framework.Literal{"a", "b"},
		map[framework.Literal]framework.Literal{"a": "b", "b": "a"},
		nil,
		[]framework.Preference{{Better: "a", Worse: "b"}},
	)
	require.NoError(t, err)

	args, err := derive.Derive(context.Background(), fw, nil)
	require.NoError(t, err)

	result, err := attack.Compute(context.Background(), fw, args)
	require.NoError(t, err)

	// a's claim is b's contrary and vice versa: two standard attacks exist.
	assert.Len(t, result.Standard, 2)
	assert.Equal(t, 2, len(result.Normal)+len(result.Reverse))
}

func TestCompute_NoSelfAttacks(t *testing.T) {
	fw, err := framework.NewFramework(
		[]framework.Literal{"a", "p"},
		[]framework.Literal{"a"},
		// C(a) = a: the only argument (a,{a}) would attack itself.
		map[framework.Literal]framework.Literal{"a": "a"},
		nil, nil,
	)
	require.NoError(t, err)

	args, err := derive.Derive(context.Background(), fw, nil)
	require.NoError(t, err)

	result, err := attack.Compute(context.Background(), fw, args)
	require.NoError(t, err)
	assert.Empty(t, result.Standard)
}
