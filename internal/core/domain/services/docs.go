// Package services provides the domain services of order fulfillment that do
// not belong to a single aggregate.
//
// The package includes:
//   - PromiseEvaluator: decides GREEN/YELLOW/RED for a requested ship date under
//     a location's cutoff rules, ship days and blackout windows
//   - CapacityEstimator: the advisory capacity heuristic used by the evaluator,
//     with a threshold and a processing-time strategy
//   - FulfillmentTracker: validates and executes split shipments against an
//     order, drives split status changes and derives order progress
//
// Services are pure: they take aggregates and rule data as arguments, return
// results and audit events, and leave loading and saving to the use cases.
package services
