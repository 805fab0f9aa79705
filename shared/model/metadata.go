package model

import "time"

// Metadata carries the audit columns shared by every table. The timestamp
// fields deliberately have no db tags: the generic repository skips untagged
// fields on insert, so created_at/modified_at come from the column defaults.
type Metadata struct {
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
	CreatedBy  string    `db:"created_by"`
	ModifiedBy string    `db:"modified_by"`
}
