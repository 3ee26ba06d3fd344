// Package task defines the named unit of work that a task graph is built from.
//
// A [Node] carries an immutable identifier and a set of identifiers it depends
// on. Nodes are populated first, possibly by several goroutines at once, and
// then handed to [github.com/matzehuels/taskdag/pkg/taskgraph.Build], which
// resolves every dependency identifier against the complete id → node mapping.
//
// # Building Nodes
//
//	a := task.MustNew("fetch")
//	b := task.MustNew("compile").AddDependence("fetch")
//	c := task.MustNew("package").AddDependence("compile").AddDependence("fetch")
//	tasks := task.Index(a, b, c)
//
// # Self-Dependencies
//
// A node never depends on itself. [Node.AddDependence] ignores its own
// identifier and counts the attempt so callers can report it via
// [Node.SelfReferences].
//
// # Duplicate Identifiers
//
// [Index] keeps the last node registered for an identifier. Callers that need
// to detect duplicates should check [Node.ID] against the map before inserting.
package task
