// Package store defines interfaces for task persistence. The interfaces
// abstract the underlying storage mechanism from the service layer, so the
// rules about active and deleted collections stay independent of whether
// tasks live in PostgreSQL or in memory.
package store
