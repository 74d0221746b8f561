// Package node binds prompt streams to flowgraph graphs.
//
// A Sampler owns one stream.Stream and exposes it as a graph node. Every
// execution of the node pulls the next prompt for State.Text, so a graph that
// runs the node repeatedly walks through the template's expansions in order.
//
// Hosts must re-run the node on every execution even when its inputs are
// unchanged; see AlwaysReevaluate and IsChanged.
//
// Core types:
//   - State: Graph state carrying the template, seed, and rendered prompt
//   - Sampler: Node that renders one prompt per execution
//   - NodeFunc: Function signature for prompt nodes
//
// Nodes:
//   - Sampler.Node: Renders from the sampler's own stream
//   - StreamNode: Renders from the stream injected with context.WithStream
//
// Wrappers:
//   - WithTiming: Debug-logs node duration
//   - WithRecover: Converts node panics into errors
//
// Example usage:
//
//	sampler, err := node.NewSampler(node.Config{
//	    ExpanderFactory: func(m *wildcard.Manager) stream.Expander { return myExpander{m} },
//	    WildcardsDir:    installDir,
//	})
//	graph := flowgraph.NewGraph[node.State]().
//	    AddNode("sample", sampler.Node).
//	    AddEdge("sample", flowgraph.END).
//	    SetEntry("sample")
package node
