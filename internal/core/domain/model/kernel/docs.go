// Package kernel holds the identifier value object shared by every aggregate
// in the fulfillment domain. Identifiers are immutable and safe for concurrent use.
package kernel
