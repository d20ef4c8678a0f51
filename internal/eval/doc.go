// Package eval is the evaluation scheduler: given a graph with some
// operations tagged for update, it runs exactly those operations on a worker
// pool while respecting dependency order.
//
// The protocol is lock-free. A pre-pass computes, per node, how many of its
// non-cyclic in-layer dependencies need updating; during the pass each
// completed dependency atomically decrements that counter, and whoever
// brings it to zero races an atomic claim flag for the right to submit the
// node. The claim flag is the sole exactly-once guarantee.
//
// Workers do not return to the pool between a node and its only successor:
// when a finished node has exactly one outgoing relation and that child is
// ready, the worker claims it and continues in place. Long non-branching
// chains therefore cost one pool submission total.
package eval
