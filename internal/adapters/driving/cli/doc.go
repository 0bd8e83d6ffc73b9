// Package cli implements the policyaudit command-line interface. It is
// the driving adapter: commands wire the configuration, the model
// services, and the vector index into the core services and print the
// results.
package cli
