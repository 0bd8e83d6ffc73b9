// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): the embedding service, the judge model,
// the vision description service, the vector index, and normalisers.
//
// Implementations live under internal/adapters/driven and
// internal/index.
package driven
