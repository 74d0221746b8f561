package integrationtest

import (
	"context"
	"testing"

	"github.com/randalmurphal/flowgraph/pkg/flowgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/promptstream/node"
	"github.com/randalmurphal/promptstream/random"
	"github.com/randalmurphal/promptstream/testutil"
)

// TestGraphConstruction verifies that prompt nodes can be used to build a flowgraph.
func TestGraphConstruction(t *testing.T) {
	sampler, err := node.NewSampler(node.Config{Expander: testutil.NewExpander(0)})
	require.NoError(t, err)

	graph := flowgraph.NewGraph[node.State]().
		AddNode("sample", sampler.Node).
		AddNode("shared", node.StreamNode).
		AddEdge("sample", "shared").
		AddEdge("shared", flowgraph.END).
		SetEntry("sample")

	compiled, err := graph.Compile()
	require.NoError(t, err, "graph should compile")
	assert.NotNil(t, compiled, "compiled graph should not be nil")
}

// TestNodeWrappers verifies that wrapped nodes compile correctly.
// Note: node.NodeFunc needs to be converted to flowgraph.NodeFunc[State]
func TestNodeWrappers(t *testing.T) {
	sampler, err := node.NewSampler(node.Config{Expander: testutil.NewExpander(0)})
	require.NoError(t, err)

	withTiming := flowgraph.NodeFunc[node.State](node.WithTiming(sampler.Node))
	withRecover := flowgraph.NodeFunc[node.State](node.WithRecover(node.StreamNode))

	graph := flowgraph.NewGraph[node.State]().
		AddNode("timed", withTiming).
		AddNode("recovered", withRecover).
		AddEdge("timed", "recovered").
		AddEdge("recovered", flowgraph.END).
		SetEntry("timed")

	compiled, err := graph.Compile()
	require.NoError(t, err, "wrapped nodes should compile")
	assert.NotNil(t, compiled)
}

// TestNodeSitesAreIndependent verifies that two samplers in one graph keep
// separate positions even for the same template.
func TestNodeSitesAreIndependent(t *testing.T) {
	first, err := node.NewSampler(node.Config{Expander: testutil.NewExpander(0), Random: random.New(1)})
	require.NoError(t, err)
	second, err := node.NewSampler(node.Config{Expander: testutil.NewExpander(0), Random: random.New(1)})
	require.NoError(t, err)

	graph := flowgraph.NewGraph[node.State]().
		AddNode("first", first.Node).
		AddNode("second", second.Node).
		AddEdge("first", "second").
		AddEdge("second", flowgraph.END).
		SetEntry("first")

	compiled, err := graph.Compile()
	require.NoError(t, err)

	ctx := flowgraph.NewContext(context.Background())
	for range 2 {
		_, err := compiled.Run(ctx, node.NewState("T", 0))
		require.NoError(t, err)
	}

	result, err := compiled.Run(ctx, node.NewState("T", 0))
	require.NoError(t, err)
	assert.Equal(t, []string{"T#3", "T#3"}, result.Prompts, "each site advanced on its own")
	assert.NotEqual(t, first.Stream().ID(), second.Stream().ID())
}

// TestStatePassthrough verifies that State passes through nodes correctly.
func TestStatePassthrough(t *testing.T) {
	passthrough := func(ctx flowgraph.Context, state node.State) (node.State, error) {
		state.Text = state.Text + " again"
		return state, nil
	}

	graph := flowgraph.NewGraph[node.State]().
		AddNode("passthrough", passthrough).
		AddEdge("passthrough", flowgraph.END).
		SetEntry("passthrough")

	compiled, err := graph.Compile()
	require.NoError(t, err)

	state := node.NewState("once", 3).WithRunID("run-1")
	result, err := compiled.Run(flowgraph.NewContext(context.Background()), state)
	require.NoError(t, err)

	assert.Equal(t, "once again", result.Text, "state should be modified by passthrough")
	assert.Equal(t, "run-1", result.RunID, "original RunID should be preserved")
	assert.Equal(t, int64(3), result.Seed)
}
