// Package graph holds the dependency graph the evaluation scheduler runs
// over: entities grouped into layers, the operation nodes they own, and the
// directed relations between those nodes.
//
// The graph owns every node and relation it creates; callers hold plain
// pointers into it and never free anything themselves. Construction is not
// safe to interleave with evaluation, but per-node scheduling state
// (the pending counter and the claimed flag) is atomic so evaluation can
// mutate it from any worker.
//
// Cyclic relations are first-class: a relation flagged cyclic is excluded
// from readiness accounting on both sides, which is what lets a graph with
// cycles evaluate without deadlocking. Flagging cycles is the caller's job;
// this package does not detect them.
package graph
