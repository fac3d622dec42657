// Package stop implements early-stopping policies for iterative model
// training. A Handler observes a stream of per-epoch measured metrics and
// decides whether training should halt.
//
// # Reading Guide
//
// Start with these three files to understand the decision core:
//   - metric.go: the monitored metric names and their improvement direction
//   - history.go: the append-only record of check calls
//   - earlystop.go: the threshold and patience rules applied on each check
//
// # Handler Variants
//
// The extension point is the single-method Handler interface:
//   - EarlyStopping: watches one metric; stops on a threshold crossing or
//     on lack of improvement within a patience window
//   - NoopHandler: never stops (placeholder policy)
//   - SequentialHandler: fans each check out to child handlers and combines
//     their decisions with a logical OR
//
// Handlers can be constructed directly or loaded from a YAML policy bundle
// (bundle.go).
package stop
