// Package model defines domain entities for the application.
package model

import "time"

// BootstrapRecord is the sentinel row written by the bootstrap migration.
// It confirms the migration runner could reach and write to the store.
type BootstrapRecord struct {
	ID        int64     `json:"id"`         // Fixed sentinel identifier
	CreatedAt time.Time `json:"created_at"` // Set by the store at insertion
}

// BootstrapID is the fixed identifier of the sentinel row.
// Exactly one row with this id exists after the migration runs.
const BootstrapID int64 = 1
