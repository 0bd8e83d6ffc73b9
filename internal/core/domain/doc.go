// Package domain contains the core business entities for the policy
// audit pipeline: documents, chunks, audit requests, retrieval results,
// and verdicts. It has no dependencies on adapters or infrastructure.
package domain
