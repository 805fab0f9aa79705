package model

import (
	"time"

	"zifaf/shared/model"
)

const (
	TableName  = "visits"
	EntityName = "visit"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldVendorID  = "vendor_id"
	FieldVisitDate = "visit_date"
	FieldVisitTime = "visit_time"
	FieldAccepted  = "accepted"
)

// Visit is a customer request to tour a vendor before booking. Acceptance is
// one-way: once the owner accepts there is no transition back.
type Visit struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	VendorID  string    `db:"vendor_id"`
	VisitDate time.Time `db:"visit_date"`
	VisitTime string    `db:"visit_time"`
	Accepted  bool      `db:"accepted"`
	model.Metadata
}
