// Package core contains the Sync domain contracts, entities, and operations.
// Transport and credential adapters depend on this package; core must not
// depend on a concrete transport or secret backend.
package core
