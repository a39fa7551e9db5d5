// Package ports declares the collaborators the fulfillment core depends on:
// repositories for orders, split shipments, split events and cutoff rules, a
// unit of work spanning them, and a per-order lock.
package ports
