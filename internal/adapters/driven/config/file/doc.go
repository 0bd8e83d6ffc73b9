// Package file provides the TOML-backed configuration store. The
// config file lives in the policyaudit config directory and covers the
// embedding, judge, and vision services, the index location, and the
// chunking, retrieval, and audit parameters.
package file
