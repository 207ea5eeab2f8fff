package dependency_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arg-systems/abaplus/internal/dependency"
	"github.com/arg-systems/abaplus/internal/framework"
)

func TestCycles_Acyclic(t *testing.T) {
	fw, err := framework.NewFramework(
		[]framework.Literal{"a", "p", "q"},
		[]framework.Literal{"a"},
		map[framework.Literal]framework.Literal{"a": "q"},
		[]framework.Rule{
			{Name: "r1", Conclusion: "p", Premises: []framework.Literal{"a"}},
			{Name: "r2", Conclusion: "q", Premises: []framework.Literal{"p"}},
		},
		nil,
	)
	require.NoError(t, err)

	has, cycles, err := dependency.Cycles(fw)
	require.NoError(t, err)
	assert.False(t, has)
	assert.Empty(t, cycles)
}

func TestCycles_DirectCycle(t *testing.T) {
	fw, err := framework.NewFramework(
		[]framework.Literal{"x", "y"},
		nil, nil,
		[]framework.Rule{
			{Name: "r1", Conclusion: "x", Premises: []framework.Literal{"y"}},
			{Name: "r2", Conclusion: "y", Premises: []framework.Literal{"x"}},
		},
		nil,
	)
	require.NoError(t, err)

	has, cycles, err := dependency.Cycles(fw)
	require.NoError(t, err)
	assert.True(t, has)
	require.Len(t, cycles, 1)
	assert.ElementsMatch(t, []framework.Literal{"x", "y"}, cycles[0])
}

func TestCycleSubgraph_RestrictsToCyclicLiterals(t *testing.T) {
	fw, err := framework.NewFramework(
		[]framework.Literal{"x", "y", "z"},
		[]framework.Literal{"z"},
		map[framework.Literal]framework.Literal{"z": "x"},
		[]framework.Rule{
			{Name: "r1", Conclusion: "x", Premises: []framework.Literal{"y"}},
			{Name: "r2", Conclusion: "y", Premises: []framework.Literal{"x"}},
			{Name: "r3", Conclusion: "x", Premises: []framework.Literal{"z"}},
		},
		nil,
	)
	require.NoError(t, err)

	sub, err := dependency.CycleSubgraph(fw)
	require.NoError(t, err)
	assert.ElementsMatch(t, []framework.Literal{"x", "y"}, sub.Vertices())
}

func TestCycles_SelfLoop(t *testing.T) {
	fw, err := framework.NewFramework(
		[]framework.Literal{"x"},
		nil, nil,
		[]framework.Rule{
			{Name: "r1", Conclusion: "x", Premises: []framework.Literal{"x"}},
		},
		nil,
	)
	require.NoError(t, err)

	has, cycles, err := dependency.Cycles(fw)
	require.NoError(t, err)
	assert.True(t, has)
	require.Len(t, cycles, 1)
	assert.Equal(t, []framework.Literal{"x"}, cycles[0])
}
