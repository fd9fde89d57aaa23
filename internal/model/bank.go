package model

import "time"

// Bank is a custodian bank or broker that holds positions.
type Bank struct {
	ID        int // assigned by the store, never by the import engine
	Name      string
	Notes     string
	CreatedAt time.Time
}
