// Package nodelink renders task graphs as node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// tasks appear as boxes and each arrow points from a task to a task it
// depends on.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// To mark the tasks involved in a cycle, pass them as Highlight:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Highlight: g.CycleMembers()})
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG] or [RenderPNG]
//   - Saved and processed with external Graphviz tools
//
// The generated DOT uses top-to-bottom layout (rankdir=TB) with rounded
// box nodes, so dependents sit above their dependencies.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
package nodelink
