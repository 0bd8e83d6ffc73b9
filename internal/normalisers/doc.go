// Package normalisers contains the normaliser registry and the
// modality-specific normalisers that reduce PDF, image, and plain text
// inputs to auditable text.
package normalisers
