// Package rules holds the cutoff and ship-day calendar of a location: one
// CutoffRuleSet per location with a DivisionRule per division code and a list
// of blackout windows. Rule sets are supplied by a rules collaborator and are
// read-only for the promise evaluator.
package rules
