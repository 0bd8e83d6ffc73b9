// Package services implements the driving ports: the retriever, the
// audit orchestrator, and the offline indexing pipeline. Services hold
// only immutable references (the loaded index, service clients) and
// are safe for concurrent use.
package services
